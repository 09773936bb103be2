package core

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const contextAccountKey = "auth_account"

// FlashMiddleware ensures the flash session exists and applies consistent
// cookie options so notices survive exactly one redirect.
func FlashMiddleware(cfg Config, store *sessions.CookieStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		// A decode error means a stale or tampered cookie; Get still hands
		// back a fresh session we can use.
		session, _ := store.Get(c.Request, flashSessionName)
		applyFlashOptions(cfg, session)
		c.Set(flashSessionKey, session)
		c.Next()
	}
}

// AuthStateMiddleware derives the per-request authentication context from
// the auth cookie. It never short-circuits: no cookie or a bad token just
// leaves the request anonymous, and a bad cookie is cleared so the browser
// self-heals.
func AuthStateMiddleware(cfg Config, tokens *TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(cfg.CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			log.Printf("warn: discarding invalid auth cookie: %v", err)
			clearAuthCookie(c, cfg)
			c.Next()
			return
		}

		c.Set(contextAccountKey, claims)
		c.Next()
	}
}

// CurrentAccount returns the verified claims for this request, if any.
// Presence means the token checked out when the request arrived; it does
// not promise the underlying account row is unchanged.
func CurrentAccount(c *gin.Context) (*AccountClaims, bool) {
	v, ok := c.Get(contextAccountKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*AccountClaims)
	return claims, ok && claims != nil
}

// RequireAuth blocks anonymous requests with a notice and a redirect to the
// login page.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentAccount(c); !ok {
			Flash(c, FlashNotice, "Please log in to continue.")
			c.Redirect(http.StatusFound, "/account/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireRole blocks requests whose role is outside the allowed set.
// Unknown or garbage roles are unauthorized, not errors.
func RequireRole(allowed ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentAccount(c)
		if !ok || !claims.Role().In(allowed...) {
			Flash(c, FlashNotice, "You are not authorized to access this resource.")
			c.Redirect(http.StatusFound, "/account/login")
			c.Abort()
			return
		}
		c.Next()
	}
}
