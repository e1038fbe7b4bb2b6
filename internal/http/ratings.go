package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/homelibrary/internal/entities"
)

// RatingsController serves the current user's rating of a book.
type RatingsController struct {
	ratings RatingStore
}

func NewRatingsController(ratings RatingStore) *RatingsController {
	return &RatingsController{ratings: ratings}
}

type ratingRequest struct {
	Rating entities.Nullable[float64] `json:"rating"`
}

type ratingResponse struct {
	Rating *float64 `json:"rating"`
}

// Get handles GET /books/:id/ratings.
func (rc *RatingsController) Get(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	rating, err := rc.ratings.Get(c.Request.Context(), userID, bookID)
	if err != nil {
		respondError(c, err)
		return
	}

	var resp ratingResponse
	if rating != nil {
		resp.Rating = &rating.Rating
	}
	c.JSON(http.StatusOK, resp)
}

// Upsert handles POST /books/:id/ratings. A null rating clears it.
func (rc *RatingsController) Upsert(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	var req ratingRequest
	if !bindJSON(c, &req) {
		return
	}

	switch {
	case !req.Rating.Set:
		respondBadRequest(c, "rating is required")
		return
	case req.Rating.IsNull():
		if err := rc.ratings.Delete(c.Request.Context(), userID, bookID); err != nil {
			respondError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
		return
	}

	if err := validateVar(req.Rating.Value, "halfstep"); err != nil {
		respondBadRequest(c, "rating must be between 0 and 5 in steps of 0.5")
		return
	}

	rating, err := rc.ratings.Upsert(c.Request.Context(), userID, bookID, req.Rating.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

// Delete handles DELETE /books/:id/ratings.
func (rc *RatingsController) Delete(c *gin.Context) {
	bookID, userID, ok := bookAndUser(c)
	if !ok {
		return
	}

	if err := rc.ratings.Delete(c.Request.Context(), userID, bookID); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// bookAndUser parses the book id path parameter and the required user header.
func bookAndUser(c *gin.Context) (bookID, userID int64, ok bool) {
	if bookID, ok = parseIDParam(c, "id"); !ok {
		return 0, 0, false
	}
	if userID, ok = requireUserID(c); !ok {
		return 0, 0, false
	}
	return bookID, userID, true
}
