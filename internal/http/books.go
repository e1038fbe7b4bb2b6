package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/homelibrary/internal/entities"
)

type BooksController struct {
	books BookService
}

func NewBooksController(books BookService) *BooksController {
	return &BooksController{books: books}
}

type createBookRequest struct {
	Title      string  `json:"title" binding:"notblank"`
	Author     string  `json:"author" binding:"notblank"`
	CoverImage *string `json:"cover_image"`
	Series     *string `json:"series"`
	Tags       []int64 `json:"tags"`
	Genres     []int64 `json:"genres"`
}

// List handles GET /books, optionally filtered by ?search=.
func (bc *BooksController) List(c *gin.Context) {
	books, err := bc.books.List(c.Request.Context(), c.Query("search"), optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, books)
}

// Create handles POST /books. The book belongs to the current user.
func (bc *BooksController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createBookRequest
	if !bindJSON(c, &req) {
		return
	}

	book, err := bc.books.Create(c.Request.Context(), entities.NewBook{
		UserID:     userID,
		CoverImage: req.CoverImage,
		Title:      req.Title,
		Author:     req.Author,
		Series:     req.Series,
		Tags:       req.Tags,
		Genres:     req.Genres,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, book)
}

// Get handles GET /books/:id.
func (bc *BooksController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	book, err := bc.books.Get(c.Request.Context(), id, optionalUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Update handles PUT /books/:id with a partial body.
func (bc *BooksController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var changes entities.BookChanges
	if !bindJSON(c, &changes) {
		return
	}

	book, err := bc.books.Update(c.Request.Context(), id, changes, &userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, book)
}

// Delete handles DELETE /books/:id.
func (bc *BooksController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := bc.books.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
