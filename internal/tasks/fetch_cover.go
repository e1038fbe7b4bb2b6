package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"
	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/covers"
	"github.com/mrlokans/homelibrary/internal/entities"
	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

// FetchCoverTask looks up and stores a cover for one book.
type FetchCoverTask struct {
	BookID int64 `json:"book_id"`
}

func (t FetchCoverTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "fetch_cover",
		MaxAttempts: 3,
		Backoff:     time.Minute,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// CoverEnricher is implemented by covers.Enricher.
type CoverEnricher interface {
	EnrichByID(ctx context.Context, id int64) error
}

// FetchCoverProcessor returns the processor for FetchCoverTask. Outcomes
// that a retry cannot change (no cover anywhere, book deleted meanwhile) end
// the task successfully.
func FetchCoverProcessor(enricher CoverEnricher, logger *zap.Logger) backlite.QueueProcessor[FetchCoverTask] {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, task FetchCoverTask) error {
		if enricher == nil {
			return fmt.Errorf("cover enricher not configured")
		}

		err := enricher.EnrichByID(ctx, task.BookID)
		switch {
		case err == nil:
			return nil
		case apperrors.Is(err, covers.ErrNoCover):
			logger.Info("no cover found", zap.Int64("book_id", task.BookID))
			return nil
		case apperrors.Is(err, apperrors.ErrNotFound):
			logger.Info("book gone before cover lookup", zap.Int64("book_id", task.BookID))
			return nil
		default:
			return fmt.Errorf("fetch cover for book %d: %w", task.BookID, err)
		}
	}
}

func NewFetchCoverQueue(enricher CoverEnricher, logger *zap.Logger) backlite.Queue {
	return backlite.NewQueue(FetchCoverProcessor(enricher, logger))
}

// CoverEnqueuer defers the post-create cover lookup to the queue instead of
// doing it inside the request.
type CoverEnqueuer struct {
	client *Client
	logger *zap.Logger
}

func NewCoverEnqueuer(client *Client, logger *zap.Logger) *CoverEnqueuer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CoverEnqueuer{client: client, logger: logger.Named("tasks")}
}

// AfterCreate enqueues a fetch_cover task. Enqueue failures are logged.
func (e *CoverEnqueuer) AfterCreate(_ context.Context, book *entities.Book) {
	ids, err := e.client.Add(FetchCoverTask{BookID: book.ID}).Save()
	if err != nil {
		e.logger.Warn("failed to enqueue cover lookup", zap.Int64("book_id", book.ID), zap.Error(err))
		return
	}
	e.logger.Debug("cover lookup enqueued", zap.Int64("book_id", book.ID), zap.Strings("task_ids", ids))
}
