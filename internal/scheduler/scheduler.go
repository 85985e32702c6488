// Package scheduler runs periodic background jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

const jobTimeout = time.Minute

// UnreadCounter reports how many contact submissions are still unread.
type UnreadCounter interface {
	CountUnread(ctx context.Context) (int64, error)
}

// Scheduler wraps a cron runner with the application's jobs.
type Scheduler struct {
	cron   *cron.Cron
	log    *zap.Logger
	unread UnreadCounter
	gauge  func(float64)
}

// New builds a scheduler whose inbox job passes the unread count to gauge.
func New(log *zap.Logger, unread UnreadCounter, gauge func(float64)) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		log:    log,
		unread: unread,
		gauge:  gauge,
	}
}

// Start registers the jobs on spec (a cron expression or @every descriptor),
// runs the inbox job once immediately and starts the runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.RefreshUnread); err != nil {
		return fmt.Errorf("schedule inbox job %q: %w", spec, err)
	}
	s.RefreshUnread()
	s.cron.Start()
	s.log.Info("scheduler started", zap.String("schedule", spec))
	return nil
}

// Stop halts the runner and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

// RefreshUnread recomputes the unread contacts gauge.
func (s *Scheduler) RefreshUnread() {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	n, err := s.unread.CountUnread(ctx)
	if err != nil {
		s.log.Error("count unread contacts failed", zap.Error(err))
		return
	}
	s.gauge(float64(n))
}
