package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/homelibrary/internal/entities"
)

type UsersController struct {
	users UserStore
}

func NewUsersController(users UserStore) *UsersController {
	return &UsersController{users: users}
}

type createUserRequest struct {
	Name        string  `json:"name" binding:"notblank"`
	Color       string  `json:"color" binding:"required"`
	AvatarImage *string `json:"avatar_image"`
}

type selectUserRequest struct {
	ID int64 `json:"id" binding:"required"`
}

func (uc *UsersController) List(c *gin.Context) {
	users, err := uc.users.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (uc *UsersController) Create(c *gin.Context) {
	var req createUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.users.Create(c.Request.Context(), strings.TrimSpace(req.Name), req.Color, req.AvatarImage)
	if err != nil {
		respondError(c, err)
		return
	}
	respondCreated(c, user)
}

// Select handles POST /users/select and records the login time.
func (uc *UsersController) Select(c *gin.Context) {
	var req selectUserRequest
	if !bindJSON(c, &req) {
		return
	}

	user, err := uc.users.Select(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (uc *UsersController) Update(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var changes entities.UserChanges
	if !bindJSON(c, &changes) {
		return
	}

	user, err := uc.users.Update(c.Request.Context(), id, changes)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
