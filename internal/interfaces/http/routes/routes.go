// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/your-org/store-pilot/internal/domain/command"
	"github.com/your-org/store-pilot/internal/domain/session"
	"github.com/your-org/store-pilot/internal/interfaces/http/handlers"
	"github.com/your-org/store-pilot/internal/pkg/auth"
)

// Dependencies are the services the handlers are built from
type Dependencies struct {
	Sessions  *session.Manager
	Assistant handlers.Assistant
	Executor  *command.Executor
	JWT       *auth.JWTManager
	// Audit is nil when no database is configured
	Audit  handlers.AuditLister
	Logger logrus.FieldLogger
}

// SetupRoutes registers every API route on rg
func SetupRoutes(rg *gin.RouterGroup, deps Dependencies) {
	SetupSessionRoutes(rg, deps)
	SetupChatRoutes(rg, deps)
	SetupProductRoutes(rg, deps)
	SetupCartRoutes(rg, deps)
	SetupNegotiationRoutes(rg, deps)
	SetupNavigationRoutes(rg, deps)
	SetupCommandRoutes(rg, deps)
}

// SetupSessionRoutes sets up session and store state routes
func SetupSessionRoutes(rg *gin.RouterGroup, deps Dependencies) {
	sessionHandler := handlers.NewSessionHandler(deps.Sessions, deps.JWT, deps.Logger)

	rg.POST("/sessions", sessionHandler.CreateSession)
	rg.GET("/store", sessionHandler.GetStore)
}

// SetupChatRoutes sets up the shopkeeper chat route
func SetupChatRoutes(rg *gin.RouterGroup, deps Dependencies) {
	chatHandler := handlers.NewChatHandler(deps.Assistant, deps.Sessions, deps.Logger)

	rg.POST("/chat", chatHandler.Chat)
}

// SetupProductRoutes sets up product related routes
func SetupProductRoutes(rg *gin.RouterGroup, deps Dependencies) {
	productHandler := handlers.NewProductHandler(deps.Sessions)

	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/categories", productHandler.GetCategories)
		products.GET("/lookup", productHandler.LookupProduct)
		products.GET("/:id", productHandler.GetProduct)
		products.POST("/search", productHandler.SearchProducts)
		products.POST("/filter", productHandler.FilterCategory)
		products.POST("/sort", productHandler.SortProducts)
		products.POST("/reset", productHandler.ResetFilters)
	}
}

// SetupCartRoutes sets up cart and coupon routes
func SetupCartRoutes(rg *gin.RouterGroup, deps Dependencies) {
	cartHandler := handlers.NewCartHandler(deps.Sessions)

	cart := rg.Group("/cart")
	{
		cart.GET("", cartHandler.GetCart)
		cart.DELETE("", cartHandler.ClearCart)
		cart.POST("/items", cartHandler.AddToCart)
		cart.PUT("/items/:id", cartHandler.UpdateCartItem)
		cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
		cart.POST("/coupon", cartHandler.ApplyCoupon)
		cart.DELETE("/coupon", cartHandler.RemoveCoupon)
	}
}

// SetupNegotiationRoutes sets up haggling routes
func SetupNegotiationRoutes(rg *gin.RouterGroup, deps Dependencies) {
	negotiationHandler := handlers.NewNegotiationHandler(deps.Sessions, deps.Audit, deps.Logger)

	negotiations := rg.Group("/negotiations")
	{
		negotiations.POST("", negotiationHandler.Negotiate)
		negotiations.GET("", negotiationHandler.GetHistory)
		negotiations.GET("/audit", negotiationHandler.GetAuditTrail)
	}
}

// SetupNavigationRoutes sets up navigation and recommendation routes
func SetupNavigationRoutes(rg *gin.RouterGroup, deps Dependencies) {
	navigationHandler := handlers.NewNavigationHandler(deps.Sessions)

	rg.GET("/navigation", navigationHandler.GetNavigation)
	rg.POST("/navigation", navigationHandler.Navigate)
	rg.GET("/recommendations", navigationHandler.GetRecommendations)
}

// SetupCommandRoutes sets up the function chain replay route
func SetupCommandRoutes(rg *gin.RouterGroup, deps Dependencies) {
	commandHandler := handlers.NewCommandHandler(deps.Sessions, deps.Executor)

	rg.POST("/commands", commandHandler.Replay)
}
