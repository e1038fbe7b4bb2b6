// Package demo provides the read-only demo mode and the sample library used
// to seed demo and development databases.
package demo

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Middleware blocks write operations in demo mode.
// Read-only operations (GET) are always allowed, as are a few writes that
// change nothing visitors share, such as picking the active user.
type Middleware struct {
	enabled bool
	allowed map[string]bool
}

// NewMiddleware creates a demo mode middleware.
func NewMiddleware(enabled bool) *Middleware {
	return &Middleware{
		enabled: enabled,
		allowed: map[string]bool{
			http.MethodPost + " /users/select": true,
		},
	}
}

// Handler returns a Gin middleware that blocks write operations.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !m.enabled {
			c.Next()
			return
		}

		switch c.Request.Method {
		case http.MethodGet, http.MethodHead, http.MethodOptions:
			c.Next()
			return
		}

		if m.allowed[c.Request.Method+" "+c.Request.URL.Path] {
			c.Next()
			return
		}

		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"error":     "This action is disabled in demo mode",
			"code":      "DEMO_MODE",
			"demo_mode": true,
		})
	}
}
