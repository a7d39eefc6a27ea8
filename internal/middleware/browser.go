// File: internal/middleware/browser.go
package middleware

import (
	"net/http"
	"strings"

	"weather_prediction_ui/internal/common"
	"weather_prediction_ui/internal/config"
	"weather_prediction_ui/internal/platform/crypto"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BrowserIdentity makes sure every request carries a browser identifier cookie and
// stores the identifier in the context under common.BrowserIDKey. Persisted sessions
// are keyed by it.
func BrowserIdentity(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cookie, err := c.Request.Cookie(cfg.BrowserCookieName); err == nil && crypto.IsValidBrowserID(cookie.Value) {
			c.Set(common.BrowserIDKey, cookie.Value)
			c.Next()
			return
		}

		id, err := crypto.GenerateBrowserID()
		if err != nil {
			logger.Error("Failed to generate browser identifier", zap.Error(err))
			common.RespondWithError(c, common.ErrInternalServer)
			return
		}

		setBrowserCookie(c, cfg, id)
		c.Set(common.BrowserIDKey, id)
		c.Next()
	}
}

func setBrowserCookie(c *gin.Context, cfg *config.Config, value string) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.BrowserCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   int(cfg.CookieMaxAge.Seconds()),
		Secure:   cfg.CookieSecure,
		HttpOnly: true,
		SameSite: parseSameSite(cfg.CookieSameSite),
	})
}

func parseSameSite(s string) http.SameSite {
	switch strings.ToLower(s) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
