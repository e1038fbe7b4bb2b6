package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/homelibrary/internal/entities"
)

type JournalsController struct {
	journals JournalStore
}

func NewJournalsController(journals JournalStore) *JournalsController {
	return &JournalsController{journals: journals}
}

type createJournalRequest struct {
	Title   string `json:"title" binding:"notblank"`
	Content string `json:"content"`
}

func (jc *JournalsController) ListAll(c *gin.Context) {
	entries, err := jc.journals.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (jc *JournalsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entry, err := jc.journals.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// ListForBook handles GET /books/:id/journals, newest first.
func (jc *JournalsController) ListForBook(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	entries, err := jc.journals.ListForBook(c.Request.Context(), bookID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entries)
}

// Create handles POST /books/:id/journals.
func (jc *JournalsController) Create(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createJournalRequest
	if !bindJSON(c, &req) {
		return
	}

	entry, err := jc.journals.Create(c.Request.Context(), bookID, userID, strings.TrimSpace(req.Title), req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, entry)
}

// Update handles PUT /books/:id/journals/:journal_id.
func (jc *JournalsController) Update(c *gin.Context) {
	bookID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	journalID, ok := parseIDParam(c, "journal_id")
	if !ok {
		return
	}
	if _, ok := requireUserID(c); !ok {
		return
	}

	var changes entities.JournalChanges
	if !bindJSON(c, &changes) {
		return
	}
	if changes.Title != nil {
		title := strings.TrimSpace(*changes.Title)
		if title == "" {
			respondBadRequest(c, "title must not be empty")
			return
		}
		changes.Title = &title
	}

	entry, err := jc.journals.Update(c.Request.Context(), bookID, journalID, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
