package api

import (
	"errors"   // Sentinel matching
	"net/http" // HTTP status codes
	"strconv"  // Path and query parsing

	"storefront/internal/domain"     // Domain models
	"storefront/internal/media"      // Image uploads
	"storefront/internal/middleware" // Context accessors
	"storefront/internal/shop"       // Storefront service
	"storefront/internal/utils"      // Cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// AdjustWalletRequest is the body of POST /admin/users/:id/wallet
type AdjustWalletRequest struct {
	Amount float64          `json:"amount"`                  // Positive amount
	Type   domain.Direction `json:"type" binding:"required"` // IN credits, OUT debits
}

// uintParam parses a numeric path parameter
func uintParam(c *gin.Context, name string) (uint, bool) {
	v, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || v == 0 {
		badRequest(c)
		return 0, false
	}
	return uint(v), true
}

// ListUsersHandler returns all users with their wallets
func ListUsersHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		users, err := svc.ListUsers(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch users")
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": users, "total": len(users)})
	}
}

// AdjustWalletHandler credits or debits a user's wallet on behalf of the administrator
func AdjustWalletHandler(svc *shop.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		targetID, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req AdjustWalletRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		admin := middleware.Admin(c)
		if admin == nil {
			respondError(c, domain.ErrNotAuthenticated, "Unauthorized")
			return
		}
		ctx := c.Request.Context()
		user, entry, err := svc.AdjustWallet(ctx, admin.Username, targetID, req.Amount, req.Type)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"admin":   admin.Username,
				"user_id": targetID,
				"amount":  req.Amount,
				"type":    req.Type,
				"error":   err.Error(),
			}).Warn("Wallet adjustment rejected")
			respondError(c, err, "Wallet adjustment failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"admin":     admin.Username,  // Acting administrator
			"user_id":   user.ID,         // Target user
			"amount":    entry.Amount,    // Adjusted amount
			"type":      entry.Type,      // IN or OUT
			"reference": entry.Reference, // Wallet history reference
		}).Info("Wallet adjusted")
		_ = utils.DeleteCache(ctx, rdb, utils.WalletKey(user.ID)) // Invalidate the target's session wallet
		c.JSON(http.StatusOK, gin.H{"user": user, "entry": entry})
	}
}

// ListAllProductsHandler returns the full catalog including secret codes
func ListAllProductsHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		products, err := svc.ListProducts(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch products")
			return
		}
		c.JSON(http.StatusOK, gin.H{"products": products})
	}
}

// CreateProductHandler adds a product to the catalog
func CreateProductHandler(svc *shop.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shop.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		product, err := svc.CreateProduct(ctx, req)
		if err != nil {
			respondError(c, err, "Failed to create product")
			return
		}
		logrus.WithFields(logrus.Fields{"id": product.ID, "product_id": product.SKU}).Info("Product created")
		_ = utils.DeleteCache(ctx, rdb, utils.ProductsKey) // Invalidate public catalog
		c.JSON(http.StatusCreated, gin.H{"product": product})
	}
}

// UpdateProductHandler replaces the editable fields of a product
func UpdateProductHandler(svc *shop.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		var req shop.ProductInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		product, err := svc.UpdateProduct(ctx, id, req)
		if err != nil {
			respondError(c, err, "Failed to update product")
			return
		}
		logrus.WithFields(logrus.Fields{"id": product.ID, "product_id": product.SKU}).Info("Product updated")
		_ = utils.DeleteCache(ctx, rdb, utils.ProductsKey)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// DeleteProductHandler removes a product. The caller must pass confirm=true.
func DeleteProductHandler(svc *shop.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		confirmed, _ := strconv.ParseBool(c.Query("confirm")) // Missing or malformed means declined
		ctx := c.Request.Context()
		if err := svc.DeleteProduct(ctx, id, confirmed); err != nil {
			respondError(c, err, "Failed to delete product")
			return
		}
		logrus.WithField("id", id).Info("Product deleted")
		_ = utils.DeleteCache(ctx, rdb, utils.ProductsKey)
		c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
	}
}

// UploadProductImageHandler stores a multipart "image" file as the product image
func UploadProductImageHandler(svc *shop.Service, rdb *redis.Client, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := uintParam(c, "id")
		if !ok {
			return
		}
		url, ok := readImage(c, maxBytes)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		product, err := svc.SetProductImage(ctx, id, url)
		if err != nil {
			respondError(c, err, "Failed to store image")
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.ProductsKey)
		c.JSON(http.StatusOK, gin.H{"product": product})
	}
}

// ListOrdersHandler returns every order, newest first
func ListOrdersHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListOrders(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// SalesHandler returns the order count and total sales
func SalesHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		sales, err := svc.Sales(c.Request.Context())
		if err != nil {
			respondError(c, err, "Failed to sum sales")
			return
		}
		c.JSON(http.StatusOK, sales)
	}
}

// UpdateSettingsHandler replaces the non-empty branding URLs
func UpdateSettingsHandler(svc *shop.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req shop.SettingsInput
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		settings, err := svc.UpdateSettings(ctx, req)
		if err != nil {
			respondError(c, err, "Failed to save settings")
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.SettingsKey) // Invalidate branding cache
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// UploadSettingsImageHandler stores a multipart "image" file as the logo or the banner
func UploadSettingsImageHandler(svc *shop.Service, rdb *redis.Client, maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		field := c.Param("field")
		if field != shop.FieldLogo && field != shop.FieldBanner {
			respondError(c, domain.ErrUnknownSettingsField, "Unknown settings field")
			return
		}
		url, ok := readImage(c, maxBytes)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		settings, err := svc.SetSettingsImage(ctx, field, url)
		if err != nil {
			respondError(c, err, "Failed to store image")
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.SettingsKey)
		c.JSON(http.StatusOK, gin.H{"settings": settings})
	}
}

// ExportCollectionHandler returns a full snapshot of one collection
func ExportCollectionHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		name := c.Param("collection")
		data, err := svc.ReadCollection(c.Request.Context(), name)
		if errors.Is(err, domain.ErrUnknownCollection) {
			// List the valid names so the caller can correct the request
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "collections": shop.Collections()})
			return
		}
		if err != nil {
			respondError(c, err, "Failed to read collection")
			return
		}
		c.JSON(http.StatusOK, gin.H{"collection": name, "data": data})
	}
}

// readImage converts the uploaded "image" form file into a data URL
func readImage(c *gin.Context, maxBytes int64) (string, bool) {
	header, err := c.FormFile("image")
	if err != nil {
		badRequest(c)
		return "", false
	}
	if header.Size > maxBytes {
		respondError(c, media.ErrTooLarge, "Upload too large")
		return "", false
	}
	file, err := header.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return "", false
	}
	defer file.Close()
	url, err := media.DataURL(file, maxBytes)
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return "", false
	}
	return url, true
}
