package routes

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"farm-fresh/config"
	"farm-fresh/controllers"
	"farm-fresh/middleware"
	"farm-fresh/services"
)

// Dependencies are the services the HTTP layer is built on.
type Dependencies struct {
	Config   *config.Config
	Logger   *zap.Logger
	Catalog  *services.CatalogService
	Carts    *services.CartService
	Sessions *services.SessionService
}

func SetupRoutes(router *gin.Engine, deps Dependencies) {
	productCtrl := controllers.NewProductController(deps.Catalog)
	sessionCtrl := controllers.NewSessionController(deps.Sessions, deps.Config.JWTSecret, deps.Config.JWTExpiry)
	cartCtrl := controllers.NewCartController(deps.Carts)
	checkoutCtrl := controllers.NewCheckoutController()
	eventsCtrl := controllers.NewEventsController(0)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "sessions": deps.Sessions.Len()})
	})

	router.POST("/sessions", sessionCtrl.CreateSession)
	router.GET("/products", productCtrl.GetAllProducts)
	router.GET("/products/:id", productCtrl.GetProductByID)
	router.GET("/filters", productCtrl.GetFilters)
	router.GET("/farmers", productCtrl.GetFarmers)

	session := router.Group("/")
	session.Use(middleware.SessionMiddleware(deps.Config.JWTSecret, deps.Sessions))
	{
		session.GET("/cart", cartCtrl.GetCart)
		session.POST("/cart/items", cartCtrl.AddItem)
		session.PATCH("/cart/items/:id", cartCtrl.UpdateItem)
		session.DELETE("/cart/items/:id", cartCtrl.RemoveItem)

		session.GET("/checkout", checkoutCtrl.GetCheckout)
		session.PUT("/checkout/form", checkoutCtrl.SaveForm)
		session.POST("/checkout", checkoutCtrl.PlaceOrder)

		session.GET("/events", eventsCtrl.Stream)
	}

	if dir := deps.Config.AssetDir; dir != "" {
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			router.Static(deps.Config.AssetBaseURL, dir)
		}
	}
}

// NewRouter builds the engine with the standard middleware stack.
func NewRouter(deps Dependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(deps.Logger))
	router.Use(middleware.CORSMiddleware(deps.Config.OriginURL))
	SetupRoutes(router, deps)
	return router
}
