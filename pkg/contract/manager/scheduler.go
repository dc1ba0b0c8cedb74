package manager

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/robfig/cron/v3"
)

// ResyncScheduler triggers periodic full contract reloads on a cron
// schedule. File watching catches individual saves; the scheduled resync
// repairs drift the watcher can miss (network filesystems, missed events
// during long runs).
type ResyncScheduler struct {
	manager  *Manager
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu      sync.Mutex
	running bool
}

// NewResyncScheduler creates a scheduler that reloads the manager's
// contracts on the given cron schedule.
//
// Common schedules:
//   - "@every 5m"  - every five minutes
//   - "0 * * * *"  - top of every hour
func NewResyncScheduler(manager *Manager, schedule string) *ResyncScheduler {
	return &ResyncScheduler{
		manager:  manager,
		schedule: schedule,
		cron:     cron.New(),
		logger:   slog.Default().With("component", "contract.resync"),
	}
}

// Start begins scheduled resync. It fails if the cron expression is invalid
// or the scheduler is already running.
func (s *ResyncScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return fmt.Errorf("resync scheduler already running")
	}

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.logger.Debug("scheduled contract resync")
		if err := s.manager.ReloadContracts(context.Background()); err != nil {
			s.logger.Error("scheduled resync failed, previous contracts remain active",
				"error", err,
			)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid resync schedule %q: %w", s.schedule, err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info("resync scheduler started", "schedule", s.schedule)
	return nil
}

// Stop halts scheduled resync and waits for any in-flight reload.
func (s *ResyncScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.running = false
	s.logger.Info("resync scheduler stopped")
}
