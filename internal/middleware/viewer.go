package middleware

import (
	"net/http"

	"board-view-api/internal/upstream"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ViewerCookie identifies a browser across requests, like local storage does.
const ViewerCookie = "tm_viewer"

const viewerCookieMaxAge = 400 * 24 * 60 * 60

// ViewerMiddleware assigns every browser a stable viewer id.
func ViewerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := c.Cookie(ViewerCookie)
		if err != nil || uuid.Validate(id) != nil {
			id = uuid.NewString()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(ViewerCookie, id, viewerCookieMaxAge, "/", "", false, true)
		}
		c.Set(KeyViewerID, id)
		c.Next()
	}
}

// ViewerID returns the id set by ViewerMiddleware.
func ViewerID(c *gin.Context) string {
	return c.GetString(KeyViewerID)
}

// Credentials collects the board backend cookies the browser sent along.
// The CSRF token may also come in the X-CSRFToken header.
func Credentials(c *gin.Context) upstream.Credentials {
	creds := upstream.Credentials{CSRFToken: c.GetHeader(upstream.CSRFHeader)}
	if creds.CSRFToken == "" {
		creds.CSRFToken, _ = c.Cookie(upstream.CSRFCookie)
	}
	creds.SessionID, _ = c.Cookie(upstream.SessionCookie)
	return creds
}
