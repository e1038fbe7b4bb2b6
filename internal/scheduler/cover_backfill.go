// Package scheduler runs periodic maintenance jobs on a cron schedule.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/covers"
)

// DefaultBatchSize caps how many books one backfill run looks at.
const DefaultBatchSize = 50

var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// ValidateSchedule checks a standard 5-field cron expression.
func ValidateSchedule(schedule string) error {
	_, err := cronParser.Parse(schedule)
	return err
}

// Backfiller is implemented by covers.Enricher.
type Backfiller interface {
	Backfill(ctx context.Context, limit int) (covers.BackfillResult, error)
}

// CoverBackfillScheduler periodically looks up covers for books that were
// stored without one.
type CoverBackfillScheduler struct {
	backfiller Backfiller
	schedule   string
	batchSize  int
	logger     *zap.Logger

	cron       *cron.Cron
	entryID    cron.EntryID
	mu         sync.RWMutex
	isRunning  bool
	cancelFunc context.CancelFunc
}

func NewCoverBackfillScheduler(backfiller Backfiller, schedule string, logger *zap.Logger) *CoverBackfillScheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoverBackfillScheduler{
		backfiller: backfiller,
		schedule:   schedule,
		batchSize:  DefaultBatchSize,
		logger:     logger.Named("cover_backfill"),
		cron:       cron.New(cron.WithParser(cronParser)),
	}
}

// Start schedules the backfill job. It stops on its own when ctx is done.
func (s *CoverBackfillScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	if err := ValidateSchedule(s.schedule); err != nil {
		return fmt.Errorf("invalid cron schedule '%s': %w", s.schedule, err)
	}

	runCtx, cancel := context.WithCancel(ctx)

	entryID, err := s.cron.AddFunc(s.schedule, func() {
		s.runBackfill(runCtx)
	})
	if err != nil {
		cancel()
		return fmt.Errorf("failed to schedule backfill job: %w", err)
	}
	s.entryID = entryID
	s.cancelFunc = cancel

	s.cron.Start()
	s.isRunning = true

	s.logger.Info("started",
		zap.String("schedule", s.schedule),
		zap.Timep("next_run", s.nextRunLocked()))

	go func() {
		<-runCtx.Done()
		s.Stop()
	}()

	return nil
}

// Stop cancels an in-flight run and waits for it to return.
func (s *CoverBackfillScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	s.cancelFunc()
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.cron.Remove(s.entryID)

	s.isRunning = false
	s.cancelFunc = nil

	s.logger.Info("stopped")
}

// RunNow performs one backfill pass synchronously.
func (s *CoverBackfillScheduler) RunNow(ctx context.Context) (covers.BackfillResult, error) {
	return s.backfiller.Backfill(ctx, s.batchSize)
}

func (s *CoverBackfillScheduler) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isRunning
}

func (s *CoverBackfillScheduler) nextRunLocked() *time.Time {
	for _, entry := range s.cron.Entries() {
		if entry.ID == s.entryID {
			t := entry.Next
			return &t
		}
	}
	return nil
}

func (s *CoverBackfillScheduler) runBackfill(ctx context.Context) {
	start := time.Now()
	result, err := s.RunNow(ctx)
	if err != nil {
		s.logger.Error("backfill failed", zap.Error(err))
		return
	}
	s.logger.Info("backfill finished",
		zap.Int("processed", result.Processed),
		zap.Int("updated", result.Updated),
		zap.Int("failed", result.Failed),
		zap.Duration("duration", time.Since(start).Round(time.Millisecond)))
}
