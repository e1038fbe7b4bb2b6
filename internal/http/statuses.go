package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// StatusesController serves the current user's reading status of a book.
type StatusesController struct {
	statuses StatusStore
}

func NewStatusesController(statuses StatusStore) *StatusesController {
	return &StatusesController{statuses: statuses}
}

type statusRequest struct {
	StatusID *int64 `json:"status_id" binding:"required,readingstatus"`
}

type statusResponse struct {
	StatusID *int64 `json:"status_id"`
}

func (sc *StatusesController) Get(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	status, err := sc.statuses.Get(c.Request.Context(), userID, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp statusResponse
	if status != nil {
		resp.StatusID = &status.StatusID
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert handles POST /books/:id/status.
func (sc *StatusesController) Upsert(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	var req statusRequest
	if !bindJSON(c, &req) {
		return
	}

	status, err := sc.statuses.Upsert(c.Request.Context(), userID, bookID, *req.StatusID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (sc *StatusesController) Delete(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	if err := sc.statuses.Delete(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
