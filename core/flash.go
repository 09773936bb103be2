package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

const (
	flashSessionName = "motortown_flash"
	flashSessionKey  = "flash_session"
	flashMaxAge      = 300 // long enough to survive one redirect
)

// Flash message kinds surfaced to templates.
const (
	FlashNotice  = "notice"
	FlashSuccess = "success"
	FlashError   = "error"
)

// Flash queues a one-shot message for the next rendered page.
func Flash(c *gin.Context, kind, message string) {
	session := flashSession(c)
	if session == nil {
		return
	}
	session.AddFlash(message, kind)
	if err := session.Save(c.Request, c.Writer); err != nil {
		// A lost notice is cosmetic; the flow already happened.
		return
	}
}

// popFlashes drains all queued messages grouped by kind.
func popFlashes(c *gin.Context) map[string][]string {
	session := flashSession(c)
	if session == nil {
		return nil
	}

	out := map[string][]string{}
	for _, kind := range []string{FlashNotice, FlashSuccess, FlashError} {
		for _, v := range session.Flashes(kind) {
			if s, ok := v.(string); ok {
				out[kind] = append(out[kind], s)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	// Flashes() mutates the session; persist the drain.
	_ = session.Save(c.Request, c.Writer)
	return out
}

func flashSession(c *gin.Context) *sessions.Session {
	v, ok := c.Get(flashSessionKey)
	if !ok {
		return nil
	}
	session, _ := v.(*sessions.Session)
	return session
}

func applyFlashOptions(cfg Config, session *sessions.Session) {
	if session.Options == nil {
		session.Options = &sessions.Options{}
	}
	session.Options.Path = "/"
	session.Options.MaxAge = flashMaxAge
	session.Options.HttpOnly = true
	session.Options.Secure = cfg.Production
	session.Options.SameSite = http.SameSiteStrictMode
}
