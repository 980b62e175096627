package handlers

import (
	"errors"
	"net/http"

	"board-view-api/internal/consent"
	"board-view-api/internal/middleware"
	"board-view-api/internal/models"

	"github.com/gin-gonic/gin"
)

// ConsentRequest carries the button the viewer clicked on the banner.
type ConsentRequest struct {
	Choice models.ConsentChoice `json:"choice" binding:"required"`
}

func viewer(c *gin.Context) consent.Viewer {
	return consent.Viewer{
		ID:            middleware.ViewerID(c),
		Authenticated: middleware.IsAuthenticated(c),
		Creds:         middleware.Credentials(c),
	}
}

// GetConsent handles GET /accounts/cookie-consent/
// Tells the page whether the banner must be shown.
func (h *Handlers) GetConsent(c *gin.Context) {
	state, err := h.Consent.Load(c.Request.Context(), viewer(c))
	if err != nil {
		h.logger(c).WithError(err).Error("load consent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load consent"})
		return
	}
	c.JSON(http.StatusOK, state)
}

// PostConsent handles POST /accounts/cookie-consent/
// Records the choice and applies its cookie side effects.
func (h *Handlers) PostConsent(c *gin.Context) {
	var req ConsentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	fx, err := h.Consent.Choose(c.Request.Context(), viewer(c), req.Choice)
	if err != nil {
		if errors.Is(err, consent.ErrInvalidChoice) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger(c).WithError(err).Error("record consent")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record consent"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	for _, ck := range fx.SetCookies {
		c.SetCookie(ck.Name, ck.Value, int(ck.MaxAge.Seconds()), "/", "", false, false)
	}
	for _, name := range fx.ClearCookies {
		c.SetCookie(name, "", -1, "/", "", false, false)
	}

	c.JSON(http.StatusOK, gin.H{
		"choice":          fx.Choice,
		"synced":          fx.Synced,
		"note":            fx.Note,
		"set_cookies":     fx.SetCookies,
		"clear_cookies":   fx.ClearCookies,
		"hide_after_ms":   fx.HideAfter.Milliseconds(),
		"logout_after_ms": fx.LogoutAfter.Milliseconds(),
	})
}
