package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/knightofkalki/portfolio/internal/scrollspy"
)

const (
	scrollSessionIdle  = 30 * time.Minute
	maxScrollSessions  = 10000
	maxTrackedSections = 64
)

var errTooManySessions = errors.New("too many scroll sessions")

// scrollSessions keeps one scrollspy.Tracker per open page. Each page
// measures its sections once, registers them, then posts scroll
// samples.
type scrollSessions struct {
	mu       sync.Mutex
	sessions map[string]*scrollSession
	idle     time.Duration
	now      func() time.Time
}

type scrollSession struct {
	mu       sync.Mutex
	tracker  *scrollspy.Tracker
	lastSeen time.Time
}

func newScrollSessions(idle time.Duration, now func() time.Time) *scrollSessions {
	return &scrollSessions{
		sessions: make(map[string]*scrollSession),
		idle:     idle,
		now:      now,
	}
}

func (s *scrollSessions) create(sections []scrollspy.Section, opts ...scrollspy.Option) (string, error) {
	tracker, err := scrollspy.New(sections, opts...)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sessions) >= maxScrollSessions {
		return "", errTooManySessions
	}
	id := uuid.NewString()
	s.sessions[id] = &scrollSession{tracker: tracker, lastSeen: s.now()}
	return id, nil
}

// sample feeds one scroll offset to a session's tracker. ok is false
// for an unknown or expired session.
func (s *scrollSessions) sample(id string, y float64) (active string, changed, ok bool) {
	s.mu.Lock()
	session, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return "", false, false
	}

	session.mu.Lock()
	defer session.mu.Unlock()
	previous := session.tracker.Active()
	active, _ = session.tracker.OnScroll(y)
	session.lastSeen = s.now()
	return active, active != previous, true
}

// sweep drops sessions idle for longer than the idle timeout.
func (s *scrollSessions) sweep() int {
	cutoff := s.now().Add(-s.idle)

	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for id, session := range s.sessions {
		session.mu.Lock()
		stale := session.lastSeen.Before(cutoff)
		session.mu.Unlock()
		if stale {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

func (s *scrollSessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *scrollSessions) run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.sweep(); n > 0 {
				log.Printf("Expired %d idle scroll sessions", n)
			}
		}
	}
}

type createScrollSessionRequest struct {
	Sections []scrollspy.Section `json:"sections" binding:"required"`
	Margin   *float64            `json:"margin"`
}

type scrollSampleRequest struct {
	Y *float64 `json:"y" binding:"required"`
}

func (a *app) handleCreateScrollSession(c *gin.Context) {
	var req createScrollSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Sections) > maxTrackedSections {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too many sections"})
		return
	}

	var opts []scrollspy.Option
	if req.Margin != nil {
		opts = append(opts, scrollspy.WithMargin(*req.Margin))
	}
	id, err := a.scroll.create(req.Sections, opts...)
	switch {
	case errors.Is(err, errTooManySessions):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"session": id})
}

func (a *app) handleScrollSample(c *gin.Context) {
	var req scrollSampleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	active, changed, ok := a.scroll.sample(c.Param("id"), *req.Y)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown scroll session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": active, "changed": changed})
}
