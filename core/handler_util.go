package core

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageRenderer fills in the data every page needs (nav, flashes, auth state)
// before handing off to the template. Page rendering itself is deliberately
// thin; the real behaviour lives in the pipeline and handlers.
type PageRenderer struct {
	nav *ClassificationCache
}

func NewPageRenderer(nav *ClassificationCache) *PageRenderer {
	return &PageRenderer{nav: nav}
}

// Render executes the named page template with shared context merged in.
func (r *PageRenderer) Render(c *gin.Context, status int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}

	var activeID int64
	if v, ok := data["ActiveClassificationID"].(int64); ok {
		activeID = v
	}
	nav, err := buildNav(c.Request.Context(), r.nav, activeID)
	if err != nil {
		// A page without nav beats a blank error page.
		log.Printf("error: building nav failed: %v", err)
	}
	data["Nav"] = nav

	if claims, ok := CurrentAccount(c); ok {
		data["Account"] = claims
		data["LoggedIn"] = true
	} else {
		data["LoggedIn"] = false
	}
	data["Flashes"] = popFlashes(c)

	c.HTML(status, name, data)
}

// RenderError shows the shared error page with a generic message. Detail
// stays in the server log.
func (r *PageRenderer) RenderError(c *gin.Context, status int, message string) {
	r.Render(c, status, "error", gin.H{"Title": "Something went wrong", "Message": message})
}

func serverError(c *gin.Context, r *PageRenderer, err error) {
	log.Printf("error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	r.RenderError(c, http.StatusInternalServerError, "Sorry, something went wrong on our end. Please try again.")
}
