package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// attachAuthCookie binds the bearer token to the auth cookie. Max-age is
// configured in milliseconds to match the deployment convention; browsers
// want seconds.
func attachAuthCookie(c *gin.Context, cfg Config, token string) {
	setAuthCookie(c, cfg, token, cfg.CookieMaxAgeMs/1000)
}

// clearAuthCookie expires the auth cookie. The flags must match the ones
// used at set time exactly or some browsers keep the stale cookie around.
func clearAuthCookie(c *gin.Context, cfg Config) {
	setAuthCookie(c, cfg, "", -1)
}

func setAuthCookie(c *gin.Context, cfg Config, value string, maxAge int) {
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     cfg.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   cfg.CookieDomain,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   cfg.Production,
		SameSite: http.SameSiteStrictMode,
	})
}
