package entities

// UserSummary is the author annotation attached to journals, ratings and
// statuses in a BookWithDetails.
type UserSummary struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// BookTag is a tag or genre as embedded in a book view.
type BookTag struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type BookJournal struct {
	ID        int64       `json:"id"`
	Title     string      `json:"title"`
	Content   string      `json:"content"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	User      UserSummary `json:"user"`
}

type BookRating struct {
	ID        int64       `json:"id"`
	UserID    int64       `json:"user_id"`
	BookID    int64       `json:"book_id"`
	Rating    float64     `json:"rating"`
	CreatedAt string      `json:"created_at"`
	UpdatedAt string      `json:"updated_at"`
	User      UserSummary `json:"user"`
}

type BookStatus struct {
	ID         int64       `json:"id"`
	UserID     int64       `json:"user_id"`
	BookID     int64       `json:"book_id"`
	StatusID   int64       `json:"status_id"`
	StatusName string      `json:"status_name"`
	CreatedAt  string      `json:"created_at"`
	UpdatedAt  string      `json:"updated_at"`
	User       UserSummary `json:"user"`
}

// BookWithDetails is the read-only aggregate returned by the book endpoints.
// Collections are never nil so they serialize as [].
type BookWithDetails struct {
	Book
	Tags              []BookTag     `json:"tags"`
	Genres            []BookTag     `json:"genres"`
	Journals          []BookJournal `json:"journals"`
	Ratings           []BookRating  `json:"ratings"`
	Statuses          []BookStatus  `json:"statuses"`
	CurrentUserStatus *int64        `json:"current_user_status,omitempty"`
}

type BookInList struct {
	ID         int64   `json:"id"`
	CoverImage *string `json:"cover_image"`
	StatusName *string `json:"status_name"`
}

type ListUser struct {
	ID          int64   `json:"id"`
	Name        string  `json:"name"`
	Color       string  `json:"color"`
	AvatarImage *string `json:"avatar_image"`
}

type ListWithBooks struct {
	List
	Books []BookInList `json:"books"`
	User  ListUser     `json:"user"`
}
