package middleware

import (
	"net/http" // HTTP status codes

	"storefront/internal/domain" // Domain models
	"storefront/internal/shop"   // Storefront service

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminKey holds the *domain.User of the administrator making the request
const AdminKey = "admin"

// AdminOnlyMiddleware checks the user's admin flag from the database on each request
func AdminOnlyMiddleware(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c) // Get userID from context
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := svc.GetUser(c.Request.Context(), userID) // Fetch user from database
		if err != nil || !user.IsAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Set(AdminKey, user) // Expose the administrator to handlers
		c.Next()
	}
}

// Admin returns the administrator stored by AdminOnlyMiddleware
func Admin(c *gin.Context) *domain.User {
	if v, ok := c.Get(AdminKey); ok {
		if user, ok := v.(*domain.User); ok {
			return user
		}
	}
	return nil
}
