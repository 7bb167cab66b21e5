package api

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain"     // Domain errors
	"storefront/internal/middleware" // Context accessors
	"storefront/internal/shop"       // Storefront service

	"github.com/gin-gonic/gin" // Gin web framework
)

// MyOrdersHandler returns the logged in user's orders, newest first, secret codes included
func MyOrdersHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			respondError(c, domain.ErrNotAuthenticated, "Unauthorized")
			return
		}
		orders, err := svc.UserOrders(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err, "Failed to fetch orders")
			return
		}
		c.JSON(http.StatusOK, gin.H{"orders": orders})
	}
}

// MyWalletHandler returns the current balance and the wallet history, newest first
func MyWalletHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := middleware.UserID(c)
		if !ok {
			respondError(c, domain.ErrNotAuthenticated, "Unauthorized")
			return
		}
		ctx := c.Request.Context()
		user, err := svc.GetUser(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to load user")
			return
		}
		history, err := svc.UserWalletHistory(ctx, userID)
		if err != nil {
			respondError(c, err, "Failed to fetch wallet history")
			return
		}
		c.JSON(http.StatusOK, gin.H{"wallet": user.Wallet, "history": history})
	}
}
