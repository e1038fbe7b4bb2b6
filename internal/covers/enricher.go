package covers

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/mrlokans/homelibrary/internal/entities"
)

// BookStore is the slice of the books repository the enricher needs.
type BookStore interface {
	GetByID(ctx context.Context, id int64) (*entities.Book, error)
	UpdateCover(ctx context.Context, id int64, coverURL string) error
	MissingCovers(ctx context.Context, limit int) ([]entities.Book, error)
}

// BackfillResult summarizes one backfill run.
type BackfillResult struct {
	Processed int
	Updated   int
	Failed    int
}

// Enricher fills in cover_image for books that lack one.
type Enricher struct {
	finder Finder
	books  BookStore
	logger *zap.Logger
}

func NewEnricher(finder Finder, books BookStore, logger *zap.Logger) *Enricher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Enricher{finder: finder, books: books, logger: logger.Named("covers")}
}

// AfterCreate runs right after a book is inserted. A failed lookup is logged
// and otherwise ignored; the book simply stays without a cover.
func (e *Enricher) AfterCreate(ctx context.Context, book *entities.Book) {
	if err := e.Enrich(ctx, book); err != nil {
		e.logger.Warn("cover lookup failed",
			zap.Int64("book_id", book.ID),
			zap.String("title", book.Title),
			zap.Error(err))
	}
}

// Enrich looks up a cover for book, stores it and refreshes book in place.
// Books that already have a cover are left alone.
func (e *Enricher) Enrich(ctx context.Context, book *entities.Book) error {
	if book.HasCover() {
		return nil
	}

	coverURL, err := e.finder.FindCover(ctx, book.Title, book.Author)
	if err != nil {
		return err
	}

	if err := e.books.UpdateCover(ctx, book.ID, coverURL); err != nil {
		return fmt.Errorf("store cover for book %d: %w", book.ID, err)
	}

	fresh, err := e.books.GetByID(ctx, book.ID)
	if err != nil {
		return fmt.Errorf("reload book %d: %w", book.ID, err)
	}
	*book = *fresh

	e.logger.Info("cover stored", zap.Int64("book_id", book.ID), zap.String("cover_image", coverURL))
	return nil
}

// EnrichByID loads the book and enriches it.
func (e *Enricher) EnrichByID(ctx context.Context, id int64) error {
	book, err := e.books.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("get book %d: %w", id, err)
	}
	return e.Enrich(ctx, book)
}

// Backfill enriches up to limit books that still have no cover. Individual
// failures are counted, not returned.
func (e *Enricher) Backfill(ctx context.Context, limit int) (BackfillResult, error) {
	var result BackfillResult

	books, err := e.books.MissingCovers(ctx, limit)
	if err != nil {
		return result, fmt.Errorf("list books without covers: %w", err)
	}

	for i := range books {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.Processed++
		if err := e.Enrich(ctx, &books[i]); err != nil {
			result.Failed++
			e.logger.Warn("backfill cover lookup failed", zap.Int64("book_id", books[i].ID), zap.Error(err))
			continue
		}
		result.Updated++
	}
	return result, nil
}
