package shop

import (
	"context"      // Request scoped cancellation
	"regexp"       // Username validation
	"strings"      // String manipulation
	"unicode/utf8" // Character counts

	"storefront/internal/domain" // Domain models

	"github.com/pkg/errors"      // Error wrapping
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{M}\p{N}_]{3,32}$`)

func validPassword(password string) bool {
	n := utf8.RuneCountInString(password)
	return n >= 8 && n <= 64
}

// Signup creates a regular account with an empty wallet.
func (s *Service) Signup(ctx context.Context, username, password, confirm string) (*domain.User, error) {
	username = strings.TrimSpace(username) // Ignore surrounding spaces
	if !usernamePattern.MatchString(username) {
		return nil, domain.ErrInvalidUsername
	}
	if !validPassword(password) {
		return nil, domain.ErrInvalidPassword
	}
	if password != confirm { // Confirmation must match
		return nil, domain.ErrPasswordMismatch
	}
	taken, err := s.usernameExists(ctx, username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.ErrUsernameTaken
	}
	return s.createUser(ctx, username, password, 0, false)
}

// Authenticate returns the account matching the credentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).Where("username = ?", strings.TrimSpace(username)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	return &user, nil
}

// EnsureAdmin seeds the administrator account when the reserved username is
// missing. It reports whether an account was created.
func (s *Service) EnsureAdmin(ctx context.Context, username, password string, wallet float64) (bool, error) {
	exists, err := s.usernameExists(ctx, username)
	if err != nil || exists {
		return false, err
	}
	if _, err := s.createUser(ctx, username, password, wallet, true); err != nil {
		if errors.Is(err, domain.ErrUsernameTaken) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// GetUser loads the authoritative user record.
func (s *Service) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	var user domain.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	return &user, nil
}

// ListUsers returns every account in signup order.
func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	if err := s.db.WithContext(ctx).Order("id asc").Find(&users).Error; err != nil {
		return nil, errors.Wrap(err, "list users")
	}
	return users, nil
}

func (s *Service) usernameExists(ctx context.Context, username string) (bool, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&domain.User{}).Where("username = ?", username).Count(&n).Error; err != nil {
		return false, errors.Wrap(err, "count users")
	}
	return n > 0, nil
}

func (s *Service) createUser(ctx context.Context, username, password string, wallet float64, admin bool) (*domain.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	user := &domain.User{Username: username, Password: string(hash), Wallet: wallet, IsAdmin: admin}
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, errors.Wrap(err, "create user")
	}
	return user, nil
}
