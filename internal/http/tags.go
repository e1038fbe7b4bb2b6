package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// LabelsController serves /tags and /genres, which differ only in storage.
type LabelsController struct {
	store LabelStore
}

func NewLabelsController(store LabelStore) *LabelsController {
	return &LabelsController{store: store}
}

type labelRequest struct {
	Name  string `json:"name" binding:"notblank"`
	Color string `json:"color" binding:"required"`
}

// List handles GET /tags, optionally filtered by ?name=.
func (lc *LabelsController) List(c *gin.Context) {
	items, err := lc.store.List(c.Request.Context(), strings.TrimSpace(c.Query("name")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (lc *LabelsController) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	item, err := lc.store.GetByID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Create handles POST /tags. The label belongs to the current user.
func (lc *LabelsController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req labelRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := lc.store.Create(c.Request.Context(), userID, strings.TrimSpace(req.Name), req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, item)
}

func (lc *LabelsController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	if _, ok := requireUserID(c); !ok {
		return
	}

	var req labelRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := lc.store.Update(c.Request.Context(), id, strings.TrimSpace(req.Name), req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

// Delete handles DELETE /tags/:id. Book links go with it.
func (lc *LabelsController) Delete(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := lc.store.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
