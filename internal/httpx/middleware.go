// Package httpx holds the gin middlewares and error mapping shared by the HTTP services.
package httpx

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/MikeMC777/stylehub-storefront/internal/apperr"
	"github.com/MikeMC777/stylehub-storefront/internal/product"
	"github.com/MikeMC777/stylehub-storefront/internal/session"
	"github.com/MikeMC777/stylehub-storefront/internal/validate"
)

const (
	HeaderRequestID = "X-Request-ID"
	HeaderSessionID = "X-Session-ID"

	ctxSession = "session"
)

func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Set("rid", rid)
		c.Writer.Header().Set(HeaderRequestID, rid)
		c.Next()
	}
}

func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		rid, _ := c.Get("rid")
		sid := c.Writer.Header().Get(HeaderSessionID)
		log.Printf("[http] rid=%v sid=%s %s %s status=%d dur=%s",
			rid, sid, c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

// Session resolves X-Session-ID (minting one when absent), echoes it back and
// stores the session for handlers.
func Session(m *session.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid := c.GetHeader(HeaderSessionID)
		if sid == "" {
			sid = uuid.NewString()
		}
		s, err := m.Get(sid)
		if err != nil {
			Error(c, err)
			c.Abort()
			return
		}
		c.Writer.Header().Set(HeaderSessionID, sid)
		c.Set(ctxSession, s)
		c.Next()
	}
}

// CurrentSession returns the session set by the Session middleware.
func CurrentSession(c *gin.Context) *session.Session {
	s, _ := c.MustGet(ctxSession).(*session.Session)
	return s
}

// Status maps an error to its HTTP status.
func Status(err error) int {
	switch {
	case errors.Is(err, product.ErrSuperseded):
		return http.StatusConflict
	case apperr.Is(err, apperr.NotFound):
		return http.StatusNotFound
	case apperr.Is(err, apperr.Validation):
		return http.StatusBadRequest
	case apperr.Is(err, apperr.ExternalSource):
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

// Error writes {"error": ...} with the mapped status. Validation errors also list their fields.
func Error(c *gin.Context, err error) {
	code := Status(err)
	if code == http.StatusInternalServerError {
		rid, _ := c.Get("rid")
		log.Printf("[http] rid=%v internal error: %v", rid, err)
	}
	body := gin.H{"error": err.Error()}
	if fields := validate.Fields(err); len(fields) > 0 {
		body["fields"] = fields
	}
	c.JSON(code, body)
}
