package entities

import "strings"

// Timestamps are generated by SQLite as text ("2006-01-02 15:04:05.000") and
// passed through untouched.

type User struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	AvatarImage *string `json:"avatar_image"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
	LastLogin   *string `json:"last_login"`
}

type Book struct {
	ID         int64   `json:"id"`
	UserID     int64   `json:"user_id"`
	CoverImage *string `json:"cover_image"`
	Title      string  `json:"title"`
	Author     string  `json:"author"`
	Series     *string `json:"series"`
	CreatedAt  string  `json:"created_at"`
	UpdatedAt  string  `json:"updated_at"`
}

// HasCover reports whether the book carries a non-blank cover reference.
func (b *Book) HasCover() bool {
	return b.CoverImage != nil && strings.TrimSpace(*b.CoverImage) != ""
}

type Tag struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Genre rows have exactly the tag shape; they live in their own table.
type Genre = Tag

type JournalEntry struct {
	ID        int64  `json:"id"`
	BookID    int64  `json:"book_id"`
	UserID    int64  `json:"user_id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Rating struct {
	ID        int64   `json:"id"`
	UserID    int64   `json:"user_id"`
	BookID    int64   `json:"book_id"`
	Rating    float64 `json:"rating"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

type ReadingStatus struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	BookID    int64  `json:"book_id"`
	StatusID  int64  `json:"status_id"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type List struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	TypeID    int64  `json:"type_id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
