package demo

import (
	"context"
	"fmt"

	"github.com/mrlokans/homelibrary/internal/database"
	"github.com/mrlokans/homelibrary/internal/database/books"
	"github.com/mrlokans/homelibrary/internal/database/journals"
	"github.com/mrlokans/homelibrary/internal/database/lists"
	"github.com/mrlokans/homelibrary/internal/database/ratings"
	"github.com/mrlokans/homelibrary/internal/database/statuses"
	"github.com/mrlokans/homelibrary/internal/database/tags"
	"github.com/mrlokans/homelibrary/internal/database/users"
	"github.com/mrlokans/homelibrary/internal/entities"
)

type sampleBook struct {
	title   string
	author  string
	series  string
	cover   string
	tags    []string
	genres  []string
	rating  float64
	status  int64
	journal string
}

var (
	sampleUsers = []struct{ name, color string }{
		{"Alex", "#4f46e5"},
		{"Sam", "#db2777"},
	}

	sampleTags = map[string]string{
		"favourite": "#f59e0b",
		"signed":    "#10b981",
		"borrowed":  "#6366f1",
	}

	sampleGenres = map[string]string{
		"Science Fiction": "#0ea5e9",
		"Fantasy":         "#8b5cf6",
		"Programming":     "#22c55e",
		"Classics":        "#a16207",
	}

	sampleBooks = []sampleBook{
		{
			title: "Dune", author: "Frank Herbert", series: "Dune",
			cover:  "https://covers.openlibrary.org/b/id/11481354-L.jpg",
			tags:   []string{"favourite"},
			genres: []string{"Science Fiction", "Classics"},
			rating: 5, status: entities.StatusRead,
			journal: "The spice must flow.",
		},
		{
			title: "The Hobbit", author: "J.R.R. Tolkien", series: "Middle-earth",
			cover:  "https://covers.openlibrary.org/b/id/6979861-L.jpg",
			tags:   []string{"signed"},
			genres: []string{"Fantasy", "Classics"},
			rating: 4.5, status: entities.StatusRead,
		},
		{
			title: "The Rust Programming Language", author: "Steve Klabnik",
			cover:  "https://covers.openlibrary.org/b/id/8752936-L.jpg",
			genres: []string{"Programming"},
			status: entities.StatusReading,
			journal: "Ownership finally clicked in chapter 4.",
		},
		{
			title: "The Left Hand of Darkness", author: "Ursula K. Le Guin", series: "Hainish Cycle",
			tags:   []string{"borrowed"},
			genres: []string{"Science Fiction"},
			status: entities.StatusTBR,
		},
	}
)

// SeedResult counts what Seed created.
type SeedResult struct {
	Users int
	Books int
	Lists int
}

// Seed fills an empty, migrated database with a small sample library:
// two users, labelled books, journals, ratings, statuses and a list.
func Seed(ctx context.Context, db *database.Database) (SeedResult, error) {
	var result SeedResult

	userRepo := users.NewRepository(db.DB)
	var userIDs []int64
	for _, u := range sampleUsers {
		user, err := userRepo.Create(ctx, u.name, u.color, nil)
		if err != nil {
			return result, fmt.Errorf("seed user %q: %w", u.name, err)
		}
		userIDs = append(userIDs, user.ID)
		result.Users++
	}
	owner := userIDs[0]

	tagIDs, err := seedLabels(ctx, tags.NewRepository(db.DB), owner, sampleTags)
	if err != nil {
		return result, err
	}
	genreIDs, err := seedLabels(ctx, tags.NewGenreRepository(db.DB), owner, sampleGenres)
	if err != nil {
		return result, err
	}

	bookRepo := books.NewRepository(db.DB)
	journalRepo := journals.NewRepository(db.DB)
	ratingRepo := ratings.NewRepository(db.DB)
	statusRepo := statuses.NewRepository(db.DB)

	var bookIDs []int64
	for _, sb := range sampleBooks {
		in := entities.NewBook{
			UserID: owner,
			Title:  sb.title,
			Author: sb.author,
			Tags:   pick(tagIDs, sb.tags),
			Genres: pick(genreIDs, sb.genres),
		}
		if sb.series != "" {
			in.Series = &sb.series
		}
		if sb.cover != "" {
			in.CoverImage = &sb.cover
		}

		book, err := bookRepo.Create(ctx, in)
		if err != nil {
			return result, fmt.Errorf("seed book %q: %w", sb.title, err)
		}
		bookIDs = append(bookIDs, book.ID)
		result.Books++

		if sb.journal != "" {
			if _, err := journalRepo.Create(ctx, book.ID, owner, "Notes", sb.journal); err != nil {
				return result, fmt.Errorf("seed journal for %q: %w", sb.title, err)
			}
		}
		if sb.rating > 0 {
			if _, err := ratingRepo.Upsert(ctx, owner, book.ID, sb.rating); err != nil {
				return result, fmt.Errorf("seed rating for %q: %w", sb.title, err)
			}
		}
		if _, err := statusRepo.Upsert(ctx, owner, book.ID, sb.status); err != nil {
			return result, fmt.Errorf("seed status for %q: %w", sb.title, err)
		}
	}

	if _, err := lists.NewRepository(db.DB).Create(ctx, owner, 1, "Summer reading", bookIDs[:2]); err != nil {
		return result, fmt.Errorf("seed list: %w", err)
	}
	result.Lists++

	return result, nil
}

func seedLabels(ctx context.Context, repo *tags.Repository, userID int64, labels map[string]string) (map[string]int64, error) {
	ids := make(map[string]int64, len(labels))
	for name, color := range labels {
		label, err := repo.Create(ctx, userID, name, color)
		if err != nil {
			return nil, fmt.Errorf("seed %s %q: %w", repo.Kind(), name, err)
		}
		ids[name] = label.ID
	}
	return ids, nil
}

func pick(ids map[string]int64, names []string) []int64 {
	if len(names) == 0 {
		return nil
	}
	out := make([]int64, 0, len(names))
	for _, name := range names {
		out = append(out, ids[name])
	}
	return out
}
