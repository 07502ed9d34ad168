package main

import (
	"context"
	"html/template"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	flag "github.com/spf13/pflag"

	"github.com/knightofkalki/portfolio/internal/content"
	"github.com/knightofkalki/portfolio/internal/store"
	"github.com/knightofkalki/portfolio/internal/typewriter"
)

// app holds everything the handlers share.
type app struct {
	site  *content.Content
	about template.HTML
	store *store.Store

	mailer    mailer
	scheduler typewriter.Scheduler
	scroll    *scrollSessions
	now       func() time.Time

	adminToken    string
	hashingSalt   string
	adminUsername string
	adminPassword string
}

func newApp(site *content.Content, db *store.Store) (*app, error) {
	about, err := renderMarkdown(site.About)
	if err != nil {
		return nil, err
	}
	a := &app{
		site:      site,
		about:     about,
		store:     db,
		mailer:    smtpMailerFromEnv(),
		scheduler: typewriter.RealScheduler{},
		scroll:    newScrollSessions(scrollSessionIdle, time.Now),
		now:       time.Now,
	}
	a.initAdmin()
	return a, nil
}

func (a *app) router() *gin.Engine {
	r := gin.Default()
	r.SetHTMLTemplate(loadTemplates())
	r.StaticFS("/static", staticFS())

	r.Use(a.visitorTrackingMiddleware())

	// Home page route
	r.GET("/", func(c *gin.Context) {
		hero, err := typewriter.NewMachine(mustHeroConfig(a.site))
		if err != nil {
			log.Printf("Error building hero typewriter: %v", err)
			c.String(http.StatusInternalServerError, "internal error")
			return
		}
		c.HTML(http.StatusOK, "index.html", gin.H{
			"site":  a.site,
			"about": a.about,
			"hero":  hero.Frame(),
			"year":  a.now().Year(),
		})
	})

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/api/content", func(c *gin.Context) {
		c.JSON(http.StatusOK, a.site)
	})

	// Typewriter frames as server-sent events
	r.GET("/typewriter/hero", a.handleHeroStream)
	r.GET("/typewriter/animated/:slug", a.handleAnimatedStream)

	// Scroll position tracking for nav highlighting
	r.POST("/api/scroll/sessions", a.handleCreateScrollSession)
	r.POST("/api/scroll/sessions/:id", a.handleScrollSample)

	// HTMX contact form endpoint - returns just the form HTML
	r.GET("/contact-form", func(c *gin.Context) {
		c.HTML(http.StatusOK, "contact.html", gin.H{
			"title": "Contact Me",
		})
	})
	r.POST("/contact", a.handleContact)

	a.setupAdminRoutes(r)
	return r
}

func mustHeroConfig(site *content.Content) typewriter.Config {
	cfg, err := site.HeroConfig()
	if err != nil {
		// content.Parse already validated it
		panic(err)
	}
	return cfg
}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dbPath := os.Getenv("DATABASE_PATH")
	if dbPath == "" {
		dbPath = "portfolio.db"
	}

	addr := flag.String("addr", ":"+port, "listen address")
	dbFlag := flag.String("db", dbPath, "SQLite database path")
	contentFlag := flag.String("content", os.Getenv("CONTENT_FILE"), "content YAML file (embedded default when empty)")
	flag.Parse()

	site, err := content.Load(*contentFlag)
	if err != nil {
		log.Fatalf("Failed to load content: %v", err)
	}

	db, err := store.Open(*dbFlag)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	a, err := newApp(site, db)
	if err != nil {
		log.Fatalf("Failed to initialise site: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.cleanupOldVisitorData(ctx)
	go a.scroll.run(ctx, time.Minute)

	log.Printf("Portfolio for %s listening on %s", site.Profile.Name, *addr)
	if err := a.router().Run(*addr); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
