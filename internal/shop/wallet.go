package shop

import (
	"context" // Request scoped cancellation

	"storefront/internal/domain"  // Domain models
	"storefront/internal/metrics" // Prometheus collectors

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// Reasons recorded for administrator adjustments
const (
	ReasonAdminTopUp     = "Top-up by admin"
	ReasonAdminDeduction = "Deduction by admin"
)

// AdjustWallet credits (IN) or debits (OUT) the target user's wallet on behalf
// of an administrator and records the change with the administrator's name.
// A debit larger than the balance is rejected without any change.
func (s *Service) AdjustWallet(ctx context.Context, adminName string, targetID uint, amount float64, dir domain.Direction) (user *domain.User, entry *domain.WalletHistory, err error) {
	defer func() {
		metrics.RecordWalletAdjustment(string(dir), outcome(err))
	}()

	if !(amount > 0) {
		return nil, nil, domain.ErrInvalidAmount
	}
	if !dir.Valid() {
		return nil, nil, domain.ErrInvalidDirection
	}

	unlock, err := s.locks.Lock(ctx, targetID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "wait for wallet lock")
	}
	defer unlock()

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		target, err := lockUser(tx, targetID) // Authoritative balance
		if err != nil {
			return err
		}
		reason := ReasonAdminTopUp
		if dir == domain.DirectionOut {
			if target.Wallet < amount { // No partial debit
				return domain.ErrInsufficientFunds
			}
			if err := debit(tx, target.ID, amount); err != nil {
				return err
			}
			target.Wallet -= amount
			reason = ReasonAdminDeduction
		} else {
			if err := credit(tx, target.ID, amount); err != nil {
				return err
			}
			target.Wallet += amount
		}
		name := adminName // Copy for the nullable column
		entry = &domain.WalletHistory{
			Reference: newReference("WH"),
			UserID:    target.ID,
			Type:      dir,
			Amount:    amount,
			Reason:    reason,
			Date:      s.now(),
			AdminName: &name,
		}
		if err := tx.Create(entry).Error; err != nil {
			return errors.Wrap(err, "append wallet history")
		}
		user = target
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return user, entry, nil
}
