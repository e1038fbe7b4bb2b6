package books

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/entities"
)

// Each related collection is loaded with one query per chunk of requested
// book ids. The collections load concurrently; the first failure cancels the
// rest and no partial result is returned.

// idsPerQuery is lowered in tests.
var idsPerQuery = database.MaxQueryIDs

// labelSource describes where a book's tags or genres live.
type labelSource struct {
	table     string
	joinTable string
	column    string
}

var (
	tagSource   = labelSource{table: "tags", joinTable: "book_tags", column: "tag_id"}
	genreSource = labelSource{table: "genres", joinTable: "book_genres", column: "genre_id"}
)

type labelRow struct {
	BookID int64
	ID     int64
	Name   string
	Color  string
}

type journalRow struct {
	ID        int64
	BookID    int64
	Title     string
	Content   string
	CreatedAt string
	UpdatedAt string
	UserID    int64
	UserName  string
	UserColor string
}

type ratingRow struct {
	ID        int64
	UserID    int64
	BookID    int64
	Rating    float64
	CreatedAt string
	UpdatedAt string
	UserName  string
	UserColor string
}

type statusRow struct {
	ID         int64
	UserID     int64
	BookID     int64
	StatusID   int64
	StatusName string
	CreatedAt  string
	UpdatedAt  string
	UserName   string
	UserColor  string
}

type currentStatusRow struct {
	BookID   int64
	StatusID int64
}

// GetAllWithDetails returns every book with details, most recently updated
// first.
func (r *Repository) GetAllWithDetails(ctx context.Context, currentUserID *int64) ([]entities.BookWithDetails, error) {
	books, err := r.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return r.Details(ctx, books, currentUserID)
}

// SearchWithDetails returns books whose title, author or series contain term.
func (r *Repository) SearchWithDetails(ctx context.Context, term string, currentUserID *int64) ([]entities.BookWithDetails, error) {
	books, err := r.Search(ctx, term)
	if err != nil {
		return nil, fmt.Errorf("search books: %w", err)
	}
	return r.Details(ctx, books, currentUserID)
}

// GetWithDetails returns a single book with details.
func (r *Repository) GetWithDetails(ctx context.Context, id int64, currentUserID *int64) (*entities.BookWithDetails, error) {
	book, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	details, err := r.Details(ctx, []entities.Book{*book}, currentUserID)
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// Details assembles one BookWithDetails per input book, in input order.
func (r *Repository) Details(ctx context.Context, books []entities.Book, currentUserID *int64) ([]entities.BookWithDetails, error) {
	if len(books) == 0 {
		return []entities.BookWithDetails{}, nil
	}

	ids := make([]int64, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}

	var (
		tags, genres map[int64][]entities.BookTag
		journals     map[int64][]entities.BookJournal
		ratings      map[int64][]entities.BookRating
		statuses     map[int64][]entities.BookStatus
		current      map[int64]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	db := r.db.WithContext(gctx)

	g.Go(func() (err error) {
		tags, err = fetchLabels(db, tagSource, ids)
		return err
	})
	g.Go(func() (err error) {
		genres, err = fetchLabels(db, genreSource, ids)
		return err
	})
	g.Go(func() (err error) {
		journals, err = fetchJournals(db, ids)
		return err
	})
	g.Go(func() (err error) {
		ratings, err = fetchRatings(db, ids)
		return err
	})
	g.Go(func() (err error) {
		statuses, err = fetchStatuses(db, ids)
		return err
	})
	if currentUserID != nil {
		userID := *currentUserID
		g.Go(func() (err error) {
			current, err = fetchCurrentUserStatuses(db, ids, userID)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("load book details: %w", err)
	}

	result := make([]entities.BookWithDetails, len(books))
	for i, book := range books {
		details := entities.BookWithDetails{
			Book:     book,
			Tags:     orEmpty(tags[book.ID]),
			Genres:   orEmpty(genres[book.ID]),
			Journals: orEmpty(journals[book.ID]),
			Ratings:  orEmpty(ratings[book.ID]),
			Statuses: orEmpty(statuses[book.ID]),
		}
		if statusID, ok := current[book.ID]; ok {
			details.CurrentUserStatus = &statusID
		}
		result[i] = details
	}
	return result, nil
}

func orEmpty[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

func fetchLabels(db *gorm.DB, src labelSource, ids []int64) (map[int64][]entities.BookTag, error) {
	rows, err := database.QueryInChunks(ids, idsPerQuery, func(chunk []int64) (rows []labelRow, err error) {
		err = db.Raw(
			"SELECT j.book_id, t.id, t.name, t.color FROM "+src.table+" t"+
				" INNER JOIN "+src.joinTable+" j ON t.id = j."+src.column+
				" WHERE j.book_id IN ? ORDER BY t.name, t.id",
			chunk,
		).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", src.table, err)
	}

	out := make(map[int64][]entities.BookTag)
	for _, row := range rows {
		out[row.BookID] = append(out[row.BookID], entities.BookTag{ID: row.ID, Name: row.Name, Color: row.Color})
	}
	return out, nil
}

func fetchJournals(db *gorm.DB, ids []int64) (map[int64][]entities.BookJournal, error) {
	rows, err := database.QueryInChunks(ids, idsPerQuery, func(chunk []int64) (rows []journalRow, err error) {
		err = db.Raw(`SELECT je.id, je.book_id, je.title, je.content, je.created_at, je.updated_at,
				u.id AS user_id, u.name AS user_name, u.color AS user_color
			FROM journal_entries je
			INNER JOIN users u ON je.user_id = u.id
			WHERE je.book_id IN ?
			ORDER BY je.created_at DESC, je.id DESC`, chunk).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch journals: %w", err)
	}

	out := make(map[int64][]entities.BookJournal)
	for _, row := range rows {
		out[row.BookID] = append(out[row.BookID], entities.BookJournal{
			ID:        row.ID,
			Title:     row.Title,
			Content:   row.Content,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			User:      entities.UserSummary{ID: row.UserID, Name: row.UserName, Color: row.UserColor},
		})
	}
	return out, nil
}

func fetchRatings(db *gorm.DB, ids []int64) (map[int64][]entities.BookRating, error) {
	rows, err := database.QueryInChunks(ids, idsPerQuery, func(chunk []int64) (rows []ratingRow, err error) {
		err = db.Raw(`SELECT r.id, r.user_id, r.book_id, r.rating, r.created_at, r.updated_at,
				u.name AS user_name, u.color AS user_color
			FROM ratings r
			INNER JOIN users u ON r.user_id = u.id
			WHERE r.book_id IN ?
			ORDER BY r.created_at DESC, r.id DESC`, chunk).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch ratings: %w", err)
	}

	out := make(map[int64][]entities.BookRating)
	for _, row := range rows {
		out[row.BookID] = append(out[row.BookID], entities.BookRating{
			ID:        row.ID,
			UserID:    row.UserID,
			BookID:    row.BookID,
			Rating:    row.Rating,
			CreatedAt: row.CreatedAt,
			UpdatedAt: row.UpdatedAt,
			User:      entities.UserSummary{ID: row.UserID, Name: row.UserName, Color: row.UserColor},
		})
	}
	return out, nil
}

func fetchStatuses(db *gorm.DB, ids []int64) (map[int64][]entities.BookStatus, error) {
	rows, err := database.QueryInChunks(ids, idsPerQuery, func(chunk []int64) (rows []statusRow, err error) {
		err = db.Raw(`SELECT rs.id, rs.user_id, rs.book_id, rs.status_id, s.name AS status_name,
				rs.created_at, rs.updated_at, u.name AS user_name, u.color AS user_color
			FROM reading_status rs
			INNER JOIN users u ON rs.user_id = u.id
			INNER JOIN status s ON rs.status_id = s.id
			WHERE rs.book_id IN ?
			ORDER BY rs.created_at DESC, rs.id DESC`, chunk).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch statuses: %w", err)
	}

	out := make(map[int64][]entities.BookStatus)
	for _, row := range rows {
		out[row.BookID] = append(out[row.BookID], entities.BookStatus{
			ID:         row.ID,
			UserID:     row.UserID,
			BookID:     row.BookID,
			StatusID:   row.StatusID,
			StatusName: row.StatusName,
			CreatedAt:  row.CreatedAt,
			UpdatedAt:  row.UpdatedAt,
			User:       entities.UserSummary{ID: row.UserID, Name: row.UserName, Color: row.UserColor},
		})
	}
	return out, nil
}

func fetchCurrentUserStatuses(db *gorm.DB, ids []int64, userID int64) (map[int64]int64, error) {
	rows, err := database.QueryInChunks(ids, idsPerQuery, func(chunk []int64) (rows []currentStatusRow, err error) {
		err = db.Raw(
			"SELECT book_id, status_id FROM reading_status WHERE user_id = ? AND book_id IN ?",
			userID, chunk,
		).Scan(&rows).Error
		return rows, err
	})
	if err != nil {
		return nil, fmt.Errorf("fetch current user statuses: %w", err)
	}

	out := make(map[int64]int64, len(rows))
	for _, row := range rows {
		out[row.BookID] = row.StatusID
	}
	return out, nil
}
