package reminder

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Scheduler runs the sweeper on a ticker until Stop or context cancellation.
type Scheduler struct {
	sweeper  *Sweeper
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	done     chan struct{}
}

func NewScheduler(sweeper *Sweeper, interval time.Duration, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		sweeper:  sweeper,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("starting reminder scheduler", zap.Duration("interval", s.interval))
	go s.run(ctx)
}

// Stop waits for an in-flight sweep to finish.
func (s *Scheduler) Stop() {
	s.logger.Info("stopping reminder scheduler")
	close(s.stopChan)
	<-s.done
}

func (s *Scheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.sweep(ctx)
		case <-s.stopChan:
			return
		case <-ctx.Done():
			s.logger.Info("reminder scheduler cancelled")
			return
		}
	}
}

func (s *Scheduler) sweep(ctx context.Context) {
	stats, err := s.sweeper.Sweep(ctx, time.Now())
	if err != nil {
		s.logger.Error("reminder sweep failed", zap.Error(err))
		return
	}
	if stats.Sent+stats.Failed > 0 {
		s.logger.Info("reminder sweep",
			zap.Int("sent", stats.Sent),
			zap.Int("failed", stats.Failed),
			zap.Int("skipped", stats.Skipped),
		)
	}
}
