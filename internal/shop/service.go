package shop

import (
	"time" // Timestamps and durations

	"github.com/google/uuid"     // Order and ledger references
	"golang.org/x/crypto/bcrypt" // Password hashing
	"gorm.io/gorm"               // GORM ORM library
)

// Service is the storefront application service.
type Service struct {
	db       *gorm.DB
	locks    *userLocks
	tracker  *Tracker
	now      func() time.Time
	hashCost int
	retain   time.Duration
}

// Option configures a Service.
type Option func(*Service)

// WithClock overrides the time source used for order and history dates.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithHashCost overrides the bcrypt cost used for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) { s.hashCost = cost }
}

// WithStateRetention sets how long finished purchase states stay visible.
func WithStateRetention(d time.Duration) Option {
	return func(s *Service) { s.retain = d }
}

// NewService returns a Service backed by db.
func NewService(db *gorm.DB, opts ...Option) *Service {
	s := &Service{
		db:       db,
		locks:    newUserLocks(),
		now:      time.Now,
		hashCost: bcrypt.DefaultCost,
		retain:   DefaultStateRetention,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.tracker = NewTracker(s.retain, s.now)
	return s
}

// Tracker exposes the per-product purchase progress of each user.
func (s *Service) Tracker() *Tracker {
	return s.tracker
}

func newReference(prefix string) string {
	return prefix + "-" + uuid.NewString()
}
