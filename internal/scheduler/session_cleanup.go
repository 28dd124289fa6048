// Package scheduler runs the portal's periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/nasugbu/geoportal/internal/database"
)

// SessionCleanupScheduler periodically removes expired session rows.
// The session store's own cleanup goroutine is disabled in favour of this
// job so shutdown ordering stays with the entrypoint.
type SessionCleanupScheduler struct {
	db       *database.Database
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

// NewSessionCleanupScheduler creates a new scheduler instance.
func NewSessionCleanupScheduler(db *database.Database, schedule string) *SessionCleanupScheduler {
	return &SessionCleanupScheduler{
		db:       db,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the cleanup schedule.
func (s *SessionCleanupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}
	if s.schedule == "" {
		log.Printf("Session cleanup scheduler: disabled")
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runCleanup)
	if err != nil {
		return fmt.Errorf("failed to schedule session cleanup: %w", err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Session cleanup scheduler: running with schedule %q", s.schedule)
	return nil
}

// Stop halts the schedule, waiting for an in-flight run to finish or the
// context to expire.
func (s *SessionCleanupScheduler) Stop(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.isRunning = false
}

func (s *SessionCleanupScheduler) runCleanup() {
	removed, err := s.db.PruneExpiredSessions()
	if err != nil {
		log.Printf("Session cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("Session cleanup removed %d expired sessions", removed)
	}
}
