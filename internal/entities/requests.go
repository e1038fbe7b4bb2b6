package entities

// NewBook carries the fields of a book create. Nil Tags or Genres leave the
// relation untouched; an empty slice is an explicit empty set.
type NewBook struct {
	UserID     int64
	CoverImage *string
	Title      string
	Author     string
	Series     *string
	Tags       []int64
	Genres     []int64
}

// BookChanges is a partial book update. Unset fields keep their current
// value; a set Tags or Genres replaces the whole relation (null clears it).
type BookChanges struct {
	Title      Nullable[string]  `json:"title"`
	Author     Nullable[string]  `json:"author"`
	CoverImage Nullable[string]  `json:"cover_image"`
	Series     Nullable[string]  `json:"series"`
	Tags       Nullable[[]int64] `json:"tags"`
	Genres     Nullable[[]int64] `json:"genres"`
}

// UserChanges updates a user. Avatar follows three-state semantics.
type UserChanges struct {
	Name        *string           `json:"name"`
	Color       *string           `json:"color"`
	AvatarImage Nullable[string] `json:"avatar_image"`
}

// JournalChanges updates a journal entry; nil fields keep their value.
type JournalChanges struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// ListChanges updates a list; a non-nil Books replaces the membership.
type ListChanges struct {
	Name   *string  `json:"name"`
	TypeID *int64   `json:"type_id"`
	Books  *[]int64 `json:"books"`
}
