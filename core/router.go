package core

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/sessions"
)

// NewRouter constructs the Gin engine with the storefront pipeline wired:
// flash session -> auth state always run first, then per-route validation
// and authorization stages inside the handlers and gates.
func NewRouter(cfg Config, store *sessions.CookieStore, tokens *TokenService, accounts AccountRepository, inventory InventoryRepository, cache *ClassificationCache) (*gin.Engine, error) {
	r := gin.Default()

	tmpl, err := LoadTemplates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	r.Use(FlashMiddleware(cfg, store))
	r.Use(AuthStateMiddleware(cfg, tokens))

	renderer := NewPageRenderer(cache)
	auth := NewRepositoryAuthService(accounts)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/", func(c *gin.Context) {
		renderer.Render(c, http.StatusOK, "index", gin.H{"Title": "Home"})
	})

	account := r.Group("/account")
	{
		account.GET("/", RequireAuth(), managementView(renderer))
		account.GET("/login", loginView(renderer))
		account.POST("/login", processLogin(cfg, renderer, auth, tokens))
		account.GET("/register", registerView(renderer))
		account.POST("/register", processRegistration(renderer, accounts))
		account.GET("/update/:accountId", RequireAuth(), updateAccountView(renderer, accounts))
		account.POST("/update", RequireAuth(), processAccountUpdate(cfg, renderer, accounts, tokens))
		account.POST("/change-password", RequireAuth(), processPasswordChange(renderer, accounts))
		account.GET("/logout", logout(cfg))
	}

	inv := r.Group("/inv")
	{
		manage := RequireRole(RoleEmployee, RoleAdmin)
		inv.GET("/", manage, inventoryManagementView(renderer))
		inv.GET("/add-classification", manage, addClassificationView(renderer))
		inv.POST("/add-classification", manage, processAddClassification(renderer, inventory, cache))
		inv.GET("/add-inventory", manage, addInventoryView(renderer, cache))
		inv.POST("/add-inventory", manage, processAddInventory(renderer, inventory, cache))
		inv.GET("/type/:classificationId", classificationView(renderer, inventory, cache))
		inv.GET("/detail/:invId", vehicleDetailView(renderer, inventory))
	}

	r.NoRoute(func(c *gin.Context) {
		renderer.RenderError(c, http.StatusNotFound, "Sorry, we couldn't find that page.")
	})

	return r, nil
}
