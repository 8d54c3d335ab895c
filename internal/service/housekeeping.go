package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/courtside/leagueauth/internal/store"
)

// HousekeepingService periodically deletes dead rows so the sessions and
// invite_keys tables don't grow without bound.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService creates a housekeeping worker. A non-positive
// interval defaults to 1 hour.
func NewHousekeepingService(st store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    st,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the background worker. Call Stop to shut it down.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping started", "interval", s.Interval)
}

// Stop shuts the worker down, blocking until any in-progress cleanup is done.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.cleanup()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopCh:
			return
		}
	}
}

// cleanup deletes expired sessions and dead invite keys. The deletions are
// independent; one failing doesn't stop the other.
func (s *HousekeepingService) cleanup() {
	ctx := context.Background()
	now := time.Now().UTC()

	if err := s.Store.Sessions().DeleteExpiredSessions(ctx, now); err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
	}

	if err := s.Store.InviteKeys().DeleteDeadInviteKeys(ctx, now); err != nil {
		s.Logger.Error("failed to delete dead invite keys", "error", err)
	}

	s.Logger.Debug("housekeeping cleanup completed")
}
