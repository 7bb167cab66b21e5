package shop

import (
	"context" // Request scoped cancellation
	"time"    // Timestamps and durations

	"storefront/internal/domain"  // Domain models
	"storefront/internal/metrics" // Prometheus collectors

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
	"gorm.io/gorm/clause"   // Row locking clause
)

// Session identifies the buyer. CachedWallet is the balance last shown to the
// user; it may be stale and only allows an early rejection.
type Session struct {
	UserID       uint
	CachedWallet *float64
}

// Receipt is the result of a committed purchase.
type Receipt struct {
	Order  domain.Order `json:"order"`
	Wallet float64      `json:"wallet"`
}

// Purchase debits the buyer's wallet by the product price and records the
// wallet history entry and the order in one transaction. Nothing is written
// unless every check passes.
func (s *Service) Purchase(ctx context.Context, sess *Session, productID uint) (receipt *Receipt, err error) {
	start := time.Now() // Latency start
	var price float64
	defer func() {
		metrics.RecordPurchase(outcome(err), price, time.Since(start))
	}()

	if sess == nil || sess.UserID == 0 {
		return nil, domain.ErrNotAuthenticated
	}
	if !s.tracker.begin(sess.UserID, productID) { // Same product already in flight
		return nil, domain.ErrPurchaseInProgress
	}
	defer func() {
		if err != nil {
			s.tracker.advance(sess.UserID, productID, StateFailed)
			return
		}
		s.tracker.advance(sess.UserID, productID, StateDone)
	}()

	product, err := s.GetProduct(ctx, productID) // Current catalog entry
	if err != nil {
		return nil, err
	}
	if !product.IsAvailable {
		return nil, domain.ErrProductUnavailable
	}
	price = product.Price
	if sess.CachedWallet != nil && *sess.CachedWallet < price { // Advisory check on the session balance
		return nil, domain.ErrInsufficientFunds
	}

	unlock, err := s.locks.Lock(ctx, sess.UserID)
	if err != nil {
		return nil, errors.Wrap(err, "wait for wallet lock")
	}
	defer unlock()
	s.tracker.advance(sess.UserID, productID, StateCommitting) // Checks passed, start writing

	receipt = &Receipt{}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		user, err := lockUser(tx, sess.UserID) // Authoritative balance
		if err != nil {
			return err
		}
		if user.Wallet < price {
			return domain.ErrInsufficientFunds
		}
		now := s.now()
		if price > 0 { // Free products leave the ledger untouched
			if err := debit(tx, user.ID, price); err != nil {
				return err
			}
			entry := &domain.WalletHistory{
				Reference: newReference("WH"),
				UserID:    user.ID,
				Type:      domain.DirectionOut,
				Amount:    price,
				Reason:    "Purchase: " + product.Name,
				Date:      now,
			}
			if err := tx.Create(entry).Error; err != nil {
				return errors.Wrap(err, "append wallet history")
			}
		}
		receipt.Order = domain.Order{
			Reference:   newReference("ORD"),
			UserID:      user.ID,
			Username:    user.Username,
			ProductID:   product.SKU,
			ProductName: product.Name,
			Price:       price,
			SecretCode:  product.SecretCode,
			Status:      domain.OrderSuccess,
			Date:        now,
		}
		if err := tx.Create(&receipt.Order).Error; err != nil {
			return errors.Wrap(err, "append order") // Rolls back the debit
		}
		receipt.Wallet = user.Wallet - price // Balance after commit
		return nil
	})
	if err != nil {
		return nil, err
	}
	return receipt, nil
}

// lockUser re-reads the user inside tx, holding a row lock where the
// database supports it.
func lockUser(tx *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "load user")
	}
	return &user, nil
}

// debit subtracts amount only while the balance covers it.
func debit(tx *gorm.DB, userID uint, amount float64) error {
	res := tx.Model(&domain.User{}).
		Where("id = ? AND wallet >= ?", userID, amount).
		Update("wallet", gorm.Expr("wallet - ?", amount))
	if res.Error != nil {
		return errors.Wrap(res.Error, "debit wallet")
	}
	if res.RowsAffected == 0 { // Balance dropped below amount
		return domain.ErrInsufficientFunds
	}
	return nil
}

func credit(tx *gorm.DB, userID uint, amount float64) error {
	err := tx.Model(&domain.User{}).
		Where("id = ?", userID).
		Update("wallet", gorm.Expr("wallet + ?", amount)).Error
	return errors.Wrap(err, "credit wallet")
}

// outcome maps an operation error to a metrics label.
func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.ResultSuccess
	case isBusinessError(err):
		return metrics.ResultRejected
	}
	return metrics.ResultError
}

func isBusinessError(err error) bool {
	for _, target := range []error{
		domain.ErrNotAuthenticated,
		domain.ErrInsufficientFunds,
		domain.ErrUserNotFound,
		domain.ErrProductNotFound,
		domain.ErrProductUnavailable,
		domain.ErrPurchaseInProgress,
		domain.ErrInvalidAmount,
		domain.ErrInvalidDirection,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
