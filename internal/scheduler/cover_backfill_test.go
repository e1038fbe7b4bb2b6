package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/mrlokans/homelibrary/internal/covers"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fakeBackfiller struct {
	mu     sync.Mutex
	limits []int
	result covers.BackfillResult
	err    error
}

func (f *fakeBackfiller) Backfill(_ context.Context, limit int) (covers.BackfillResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.limits = append(f.limits, limit)
	return f.result, f.err
}

func TestValidateSchedule(t *testing.T) {
	assert.NoError(t, ValidateSchedule("0 3 * * *"))
	assert.NoError(t, ValidateSchedule("*/15 * * * *"))
	assert.Error(t, ValidateSchedule("0 0 3 * * *"), "seconds field is not accepted")
	assert.Error(t, ValidateSchedule("nonsense"))
	assert.Error(t, ValidateSchedule(""))
}

func TestCoverBackfillScheduler_StartStop(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	s := NewCoverBackfillScheduler(&fakeBackfiller{}, "0 3 * * *", zap.New(core))

	require.NoError(t, s.Start(context.Background()))
	assert.True(t, s.IsRunning())

	started := logs.FilterMessage("started").All()
	require.Len(t, started, 1)
	next, ok := started[0].ContextMap()["next_run"].(time.Time)
	require.True(t, ok, "next_run is logged as a time")
	assert.Equal(t, 3, next.Hour())
	assert.Equal(t, 0, next.Minute())

	require.NoError(t, s.Start(context.Background()), "second start is a no-op")
	assert.Equal(t, 1, logs.FilterMessage("started").Len())

	s.Stop()
	assert.False(t, s.IsRunning())
	assert.Equal(t, 1, logs.FilterMessage("stopped").Len())

	s.Stop()
}

func TestCoverBackfillScheduler_InvalidSchedule(t *testing.T) {
	s := NewCoverBackfillScheduler(&fakeBackfiller{}, "every day", nil)

	err := s.Start(context.Background())
	require.Error(t, err)
	assert.False(t, s.IsRunning())
}

func TestCoverBackfillScheduler_StopsWithContext(t *testing.T) {
	s := NewCoverBackfillScheduler(&fakeBackfiller{}, "0 3 * * *", nil)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, s.Start(ctx))

	cancel()
	assert.Eventually(t, func() bool { return !s.IsRunning() }, 2*time.Second, 10*time.Millisecond)
}

func TestCoverBackfillScheduler_RunNow(t *testing.T) {
	backfiller := &fakeBackfiller{result: covers.BackfillResult{Processed: 3, Updated: 2, Failed: 1}}
	s := NewCoverBackfillScheduler(backfiller, "0 3 * * *", nil)

	result, err := s.RunNow(context.Background())
	require.NoError(t, err)
	assert.Equal(t, backfiller.result, result)
	assert.Equal(t, []int{DefaultBatchSize}, backfiller.limits)
}

func TestCoverBackfillScheduler_RunBackfillLogsErrors(t *testing.T) {
	backfiller := &fakeBackfiller{err: errors.New("database is locked")}
	s := NewCoverBackfillScheduler(backfiller, "0 3 * * *", nil)

	assert.NotPanics(t, func() { s.runBackfill(context.Background()) })
	assert.Len(t, backfiller.limits, 1)
}
