package main

import (
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/knightofkalki/portfolio/internal/typewriter"
)

// handleHeroStream streams the hero banner's descriptors.
func (a *app) handleHeroStream(c *gin.Context) {
	a.streamTypewriter(c, "hero", mustHeroConfig(a.site))
}

// handleAnimatedStream streams one animated tagline by slug.
func (a *app) handleAnimatedStream(c *gin.Context) {
	slug := c.Param("slug")
	animated, ok := a.site.FindAnimated(slug)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown animated text"})
		return
	}
	cfg, err := animated.Config()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	a.streamTypewriter(c, "animated/"+slug, cfg)
}

// streamTypewriter runs one cycler for the lifetime of the request and
// sends a "frame" event per change. The cycler is cancelled when the
// client goes away; a non-looping cycler ends the stream with "done".
func (a *app) streamTypewriter(c *gin.Context, name string, cfg typewriter.Config) {
	cycler, err := typewriter.New(cfg, a.scheduler)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	defer cycler.Cancel()

	ctx := c.Request.Context()
	frames := make(chan typewriter.Frame, 8)
	cycler.Subscribe(func(text string, typing bool) {
		select {
		case frames <- typewriter.Frame{Text: text, Typing: typing}:
		case <-ctx.Done():
		}
	})

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.SSEvent("frame", cycler.Frame())
	c.Writer.Flush()

	log.Printf("Typewriter stream %s opened", name)
	defer log.Printf("Typewriter stream %s closed", name)

	cycler.Start()
	c.Stream(func(w io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case f := <-frames:
			c.SSEvent("frame", f)
			return true
		case <-cycler.Finished():
			for {
				select {
				case f := <-frames:
					c.SSEvent("frame", f)
				default:
					c.SSEvent("done", cycler.Frame())
					return false
				}
			}
		}
	})
}
