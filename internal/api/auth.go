package api

import (
	"net/http" // HTTP status codes
	"time"     // Token expiry

	"storefront/internal/domain"     // Domain models
	"storefront/internal/middleware" // Context accessors
	"storefront/internal/shop"       // Storefront service
	"storefront/internal/utils"      // JWT and cache utility functions

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// SignupRequest is the body of POST /user
type SignupRequest struct {
	Username        string `json:"username" binding:"required"`         // Desired username
	Password        string `json:"password" binding:"required"`         // Plain password, hashed by the service
	ConfirmPassword string `json:"confirm_password" binding:"required"` // Must equal Password
}

// LoginRequest is the body of POST /user/login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// AuthResponse is returned after a successful login
type AuthResponse struct {
	Token     string       `json:"token"`      // JWT token
	ExpiresAt time.Time    `json:"expires_at"` // Token expiry
	User      *domain.User `json:"user"`       // Logged in account
}

// SignupHandler registers a regular account
func SignupHandler(svc *shop.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		user, err := svc.Signup(c.Request.Context(), req.Username, req.Password, req.ConfirmPassword)
		if err != nil {
			respondError(c, err, "Signup failed")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"username": user.Username,
		}).Info("User registered")
		c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "user": user})
	}
}

// LoginHandler authenticates a user, returns a JWT token and caches the session wallet
func LoginHandler(svc *shop.Service, rdb *redis.Client, jwtSecret string, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			badRequest(c)
			return
		}
		ctx := c.Request.Context()
		user, err := svc.Authenticate(ctx, req.Username, req.Password)
		if err != nil {
			respondError(c, err, "Login failed")
			return
		}
		token, claims, err := utils.GenerateJWT(user.ID, jwtSecret, ttl) // Generate JWT token
		if err != nil {
			respondError(c, err, "Failed to generate token")
			return
		}
		_ = utils.SetCache(ctx, rdb, utils.WalletKey(user.ID), user.Wallet, ttl) // Session view of the wallet
		c.JSON(http.StatusOK, AuthResponse{Token: token, ExpiresAt: claims.ExpiresAt.Time, User: user})
	}
}

// LogoutHandler revokes the presented token and forgets the cached session wallet
func LogoutHandler(rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, _ := middleware.UserID(c)
		claims, _ := c.MustGet(middleware.ClaimsKey).(*utils.Claims)
		ctx := c.Request.Context()
		if err := utils.RevokeToken(ctx, rdb, claims); err != nil {
			respondError(c, err, "Logout failed")
			return
		}
		_ = utils.DeleteCache(ctx, rdb, utils.WalletKey(userID)) // Invalidate wallet cache
		c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
	}
}

// MeHandler returns the authoritative record of the logged in user and refreshes the session wallet
func MeHandler(svc *shop.Service, rdb *redis.Client, ttl time.Duration) gin.HandlerFunc {
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
		_ = utils.SetCache(ctx, rdb, utils.WalletKey(user.ID), user.Wallet, ttl)
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}
