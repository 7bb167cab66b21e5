package domain

import "errors"

// Errors surfaced to callers. Handlers match them with errors.Is.
var (
	ErrNotAuthenticated     = errors.New("not authenticated")
	ErrInsufficientFunds    = errors.New("insufficient funds")
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateSKU         = errors.New("product id already exists")
	ErrConfirmationDeclined = errors.New("confirmation declined")

	ErrProductNotFound    = errors.New("product not found")
	ErrProductUnavailable = errors.New("product is not available")
	ErrPurchaseInProgress = errors.New("purchase of this product is already in progress")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrInvalidDirection   = errors.New("direction must be IN or OUT")
	ErrInvalidPrice       = errors.New("price cannot be negative")
	ErrInvalidProduct     = errors.New("product id, name and secret code are required")
	ErrProductFieldLength = errors.New("product id, name or secret code is too long")

	ErrInvalidUsername    = errors.New("username must be 3-32 letters, digits or underscores")
	ErrInvalidPassword    = errors.New("password must be 8-64 characters")
	ErrPasswordMismatch   = errors.New("passwords do not match")
	ErrUsernameTaken      = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUnknownCollection    = errors.New("unknown collection")
	ErrUnknownSettingsField = errors.New("settings field must be logo or banner")
)
