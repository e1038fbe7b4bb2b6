package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	apperrors "github.com/mrlokans/homelibrary/internal/errors"
)

// HeaderCurrentUser carries the id of the acting user. It is trusted as is.
const HeaderCurrentUser = "currentUserId"

// --- Response Types ---

// ErrorResponse is the standard error response format for all API errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`    // machine-readable error code
	Details any    `json:"details,omitempty"` // additional context (validation errors, etc.)
}

// FieldError describes one failed binding rule.
type FieldError struct {
	Field string `json:"field"`
	Rule  string `json:"rule"`
}

// --- Error Response Helpers ---

// respondBadRequest sends a 400 Bad Request response.
func respondBadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: message, Code: string(apperrors.CodeValidation)})
}

// respondError maps err to its status code. Domain errors keep their message;
// anything else is logged and answered with a generic 500.
func respondError(c *gin.Context, err error) {
	status := apperrors.StatusOf(err)
	if status >= http.StatusInternalServerError {
		loggerFrom(c).Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.JSON(status, ErrorResponse{Error: "internal server error", Code: string(apperrors.CodeInternal)})
		return
	}

	var domainErr *apperrors.Error
	if apperrors.As(err, &domainErr) {
		c.JSON(status, ErrorResponse{Error: domainErr.Message, Code: string(domainErr.Code), Details: domainErr.Details})
		return
	}
	c.JSON(status, ErrorResponse{Error: err.Error()})
}

// respondBindError answers a request whose body failed to bind.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if apperrors.As(err, &verrs) {
		details := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, FieldError{Field: fe.Field(), Rule: fe.Tag()})
		}
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid request body",
			Code:    string(apperrors.CodeValidation),
			Details: details,
		})
		return
	}
	respondBadRequest(c, "invalid request body: "+err.Error())
}

// --- Success Response Helpers ---

// respondCreated sends a 201 Created response with data.
func respondCreated(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, data)
}

// --- Parameter Parsing ---

// bindJSON decodes and validates the body into obj, answering 400 on failure.
func bindJSON(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		respondBindError(c, err)
		return false
	}
	return true
}

// parseIDParam extracts a positive integer id from URL parameters.
// Returns the parsed ID or responds with a 400 error and returns 0, false.
func parseIDParam(c *gin.Context, paramName string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(paramName), 10, 64)
	if err != nil || id <= 0 {
		respondBadRequest(c, "invalid "+paramName)
		return 0, false
	}
	return id, true
}

// requireUserID reads the currentUserId header, answering 400 when it is
// missing or not a number.
func requireUserID(c *gin.Context) (int64, bool) {
	raw := strings.TrimSpace(c.GetHeader(HeaderCurrentUser))
	if raw == "" {
		respondBadRequest(c, HeaderCurrentUser+" header is required")
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		respondBadRequest(c, "invalid "+HeaderCurrentUser+" header")
		return 0, false
	}
	return id, true
}

// optionalUserID reads the currentUserId header on routes where it only
// personalizes the response. Unparsable values are ignored.
func optionalUserID(c *gin.Context) *int64 {
	id, err := strconv.ParseInt(strings.TrimSpace(c.GetHeader(HeaderCurrentUser)), 10, 64)
	if err != nil {
		return nil
	}
	return &id
}
