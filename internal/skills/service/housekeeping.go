package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/myskills/internal/skills/store"
)

// HousekeepingService deletes expired sessions in the background.
type HousekeepingService struct {
	Store    store.Store
	Logger   *slog.Logger
	Interval time.Duration

	stopCh chan struct{}
	doneCh chan struct{}
}

// NewHousekeepingService returns a stopped service; intervals <= 0 mean
// one hour.
func NewHousekeepingService(store store.Store, logger *slog.Logger, interval time.Duration) *HousekeepingService {
	if interval <= 0 {
		interval = time.Hour
	}

	return &HousekeepingService{
		Store:    store,
		Logger:   logger,
		Interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
}

// Start launches the worker. It sweeps once immediately.
func (s *HousekeepingService) Start() {
	go s.run()
	s.Logger.Info("housekeeping service started", "interval", s.Interval)
}

// Stop blocks until any sweep in progress has finished.
func (s *HousekeepingService) Stop() {
	close(s.stopCh)
	<-s.doneCh
	s.Logger.Info("housekeeping service stopped")
}

func (s *HousekeepingService) run() {
	defer close(s.doneCh)

	ticker := time.NewTicker(s.Interval)
	defer ticker.Stop()

	s.Sweep(context.Background(), time.Now())

	for {
		select {
		case now := <-ticker.C:
			s.Sweep(context.Background(), now)
		case <-s.stopCh:
			return
		}
	}
}

// Sweep deletes sessions that expired at or before now.
func (s *HousekeepingService) Sweep(ctx context.Context, now time.Time) int64 {
	n, err := s.Store.Sessions().DeleteExpiredSessions(ctx, now)
	if err != nil {
		s.Logger.Error("failed to delete expired sessions", "error", err)
		return 0
	}

	s.Logger.Debug("housekeeping sweep completed", "expired_sessions", n)
	return n
}
