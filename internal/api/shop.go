package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Path parameter parsing
	"time"     // Cache lifetimes

	"storefront/internal/domain"     // Domain models
	"storefront/internal/middleware" // Context accessors
	"storefront/internal/shop"       // Storefront service
	"storefront/internal/utils"      // Cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// PurchaseRequest is the body of POST /shop/purchase
type PurchaseRequest struct {
	ProductID uint `json:"id" binding:"required"` // Internal product id
}

// ListProductsHandler returns the products on sale without their secret codes
func ListProductsHandler(svc *shop.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var products []domain.PublicProduct
		found, err := utils.GetCache(ctx, rdb, utils.ProductsKey, &products) // Try to get from cache
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"products": products, "cached": true})
			return
		}
		products, err = svc.ListAvailableProducts(ctx) // Fetch from DB
		if err != nil {
			respondError(c, err, "Failed to fetch products")
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.ProductsKey, products, ttl) // Cache the catalog
		c.JSON(http.StatusOK, gin.H{"products": products, "cached": false})
	}
}

// GetSettingsHandler returns the store branding
func GetSettingsHandler(svc *shop.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		var settings domain.StoreSettings
		found, err := utils.GetCache(ctx, rdb, utils.SettingsKey, &settings)
		if err == nil && found {
			c.JSON(http.StatusOK, gin.H{"settings": settings, "cached": true})
			return
		}
		current, err := svc.GetSettings(ctx)
		if err != nil {
			respondError(c, err, "Failed to fetch settings")
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.SettingsKey, current, ttl)
		c.JSON(http.StatusOK, gin.H{"settings": current, "cached": false})
	}
}

// PurchaseHandler buys one product with the logged in user's wallet
func PurchaseHandler(svc *shop.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			respondError(c, domain.ErrNotAuthenticated, "Unauthorized")
			return
		}
		var req PurchaseRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		sess := &shop.Session{UserID: userID}
		var cached float64
		if found, err := utils.GetCache(ctx, rdb, utils.WalletKey(userID), &cached); err == nil && found {
			sess.CachedWallet = &cached // Balance last shown to the user
		}
		receipt, err := svc.Purchase(ctx, sess, req.ProductID)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":    userID,
				"product_id": req.ProductID,
				"error":      err.Error(),
			}).Warn("Purchase rejected")
			respondError(c, err, "Purchase failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":   userID,                                  // Buyer
			"product":   receipt.Order.ProductID,                 // Product SKU
			"reference": receipt.Order.Reference,                 // Order reference
			"price":     receipt.Order.Price,                     // Amount debited
			"timestamp": receipt.Order.Date.Format(time.RFC3339), // Commit time
		}).Info("Purchase transaction")
		_ = utils.SetCache(ctx, rdb, utils.WalletKey(userID), receipt.Wallet, ttl) // Refresh session wallet
		c.JSON(http.StatusCreated, gin.H{"message": "Purchase successful", "order": receipt.Order, "wallet": receipt.Wallet})
	}
}

// PurchaseStatusHandler reports the progress of the user's latest purchase of a product
func PurchaseStatusHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			respondError(c, domain.ErrNotAuthenticated, "Unauthorized")
			return
		}
		productID, err := strconv.ParseUint(c.Param("product_id"), 10, 64)
		if err != nil {
			badRequest(c)
			return
		}
		state := svc.Tracker().State(userID, uint(productID))
		c.JSON(http.StatusOK, gin.H{"product_id": productID, "state": state, "busy": state.Busy()})
	}
}
