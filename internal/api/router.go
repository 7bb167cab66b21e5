package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/config"     // Application configuration
	"storefront/internal/metrics"    // Prometheus collectors
	"storefront/internal/middleware" // Auth, admin and rate limit middleware
	"storefront/internal/shop"       // Storefront service

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// SetupRouter wires every route of the storefront API. rdb may be nil, which disables caching and logout revocation.
func SetupRouter(svc *shop.Service, rdb *redis.Client, cfg *config.Config) *gin.Engine {
	r := gin.New()                                                            // Gin router instance
	r.Use(gin.Logger(), gin.Recovery(), metrics.Middleware())                 // Request log, panic recovery and metrics
	auth := middleware.JWTAuthMiddleware(cfg.JWTSecret, rdb)                  // Bearer token check
	admin := middleware.AdminOnlyMiddleware(svc)                              // Admin flag check
	limiter := middleware.NewRateLimiter(cfg.PurchaseRate, cfg.PurchaseBurst) // Per-user purchase limit

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	// Public routes
	r.POST("/user", SignupHandler(svc))                                      // Registration endpoint
	r.POST("/user/login", LoginHandler(svc, rdb, cfg.JWTSecret, cfg.JWTTTL)) // Login endpoint
	r.GET("/products", ListProductsHandler(svc, rdb, cfg.CacheTTL))          // Storefront catalog
	r.GET("/settings", GetSettingsHandler(svc, rdb, cfg.CacheTTL))           // Store branding

	// Session routes (protected by JWT)
	userGroup := r.Group("/user", auth)
	userGroup.GET("/me", MeHandler(svc, rdb, cfg.JWTTTL)) // Current user
	userGroup.POST("/logout", LogoutHandler(rdb))         // Revoke token

	// Shop routes (protected by JWT)
	shopGroup := r.Group("/shop", auth)
	shopGroup.POST("/purchase", limiter.Handler(), PurchaseHandler(svc, rdb, cfg.JWTTTL)) // Purchase endpoint
	shopGroup.GET("/purchase/:product_id/status", PurchaseStatusHandler(svc))             // Purchase progress

	// Profile routes (protected by JWT)
	profileGroup := r.Group("/profile", auth)
	profileGroup.GET("/orders", MyOrdersHandler(svc)) // Order history with secret codes
	profileGroup.GET("/wallet", MyWalletHandler(svc)) // Balance and wallet history

	// Admin routes (protected, admin only)
	adminGroup := r.Group("/admin", auth, admin)
	adminGroup.GET("/users", ListUsersHandler(svc))
	adminGroup.POST("/users/:id/wallet", AdjustWalletHandler(svc, rdb))
	adminGroup.GET("/products", ListAllProductsHandler(svc))
	adminGroup.POST("/products", CreateProductHandler(svc, rdb))
	adminGroup.PUT("/products/:id", UpdateProductHandler(svc, rdb))
	adminGroup.DELETE("/products/:id", DeleteProductHandler(svc, rdb))
	adminGroup.POST("/products/:id/image", UploadProductImageHandler(svc, rdb, cfg.MaxUploadBytes))
	adminGroup.GET("/orders", ListOrdersHandler(svc))
	adminGroup.GET("/sales", SalesHandler(svc))
	adminGroup.GET("/settings", GetSettingsHandler(svc, nil, 0))
	adminGroup.PUT("/settings", UpdateSettingsHandler(svc, rdb))
	adminGroup.POST("/settings/:field", UploadSettingsImageHandler(svc, rdb, cfg.MaxUploadBytes))
	adminGroup.GET("/export/:collection", ExportCollectionHandler(svc))

	return r
}
