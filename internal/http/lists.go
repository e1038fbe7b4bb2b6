package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/homelibrary/internal/entities"
)

// ListsController serves reading lists. Every route acts on behalf of the
// current user and only sees that user's lists.
type ListsController struct {
	lists ListStore
}

func NewListsController(lists ListStore) *ListsController {
	return &ListsController{lists: lists}
}

type createListRequest struct {
	TypeID *int64  `json:"type_id" binding:"required"`
	Name   string  `json:"name" binding:"notblank"`
	Books  []int64 `json:"books"`
}

func (lc *ListsController) List(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	lists, err := lc.lists.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, lists)
}

func (lc *ListsController) Get(c *gin.Context) {
	id, userID, ok := listAndUser(c)
	if !ok {
		return
	}

	list, err := lc.lists.Get(c.Request.Context(), id, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (lc *ListsController) Create(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req createListRequest
	if !bindJSON(c, &req) {
		return
	}

	list, err := lc.lists.Create(c.Request.Context(), userID, *req.TypeID, strings.TrimSpace(req.Name), req.Books)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, list)
}

// Update handles PUT /lists/:id. A books array replaces the membership.
func (lc *ListsController) Update(c *gin.Context) {
	id, userID, ok := listAndUser(c)
	if !ok {
		return
	}

	var changes entities.ListChanges
	if !bindJSON(c, &changes) {
		return
	}
	if changes.Name != nil {
		name := strings.TrimSpace(*changes.Name)
		if name == "" {
			respondBadRequest(c, "name must not be empty")
			return
		}
		changes.Name = &name
	}

	list, err := lc.lists.Update(c.Request.Context(), id, userID, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func (lc *ListsController) Delete(c *gin.Context) {
	id, userID, ok := listAndUser(c)
	if !ok {
		return
	}

	if err := lc.lists.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func listAndUser(c *gin.Context) (id, userID int64, ok bool) {
	if id, ok = parseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	if userID, ok = requireUserID(c); !ok {
		return 0, 0, false
	}
	return id, userID, true
}
