package shop

import (
	"context" // Request scoped cancellation

	"storefront/internal/domain" // Domain models

	"github.com/pkg/errors" // Error wrapping
)

// SalesSummary aggregates committed orders.
type SalesSummary struct {
	Orders int64   `json:"orders"`
	Total  float64 `json:"total"`
}

// UserOrders returns the user's orders, newest first.
func (s *Service) UserOrders(ctx context.Context, userID uint) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "list user orders")
	}
	return orders, nil
}

// UserWalletHistory returns the user's wallet ledger, newest first.
func (s *Service) UserWalletHistory(ctx context.Context, userID uint) ([]domain.WalletHistory, error) {
	var entries []domain.WalletHistory
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).Order("id desc").Find(&entries).Error; err != nil {
		return nil, errors.Wrap(err, "list wallet history")
	}
	return entries, nil
}

// ListOrders returns every order, newest first.
func (s *Service) ListOrders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := s.db.WithContext(ctx).Order("id desc").Find(&orders).Error; err != nil {
		return nil, errors.Wrap(err, "list orders")
	}
	return orders, nil
}

// Sales returns the number of orders and the sum of their prices.
func (s *Service) Sales(ctx context.Context) (*SalesSummary, error) {
	var summary SalesSummary
	err := s.db.WithContext(ctx).Model(&domain.Order{}).
		Select("COUNT(*) AS orders, COALESCE(SUM(price), 0) AS total").
		Scan(&summary).Error
	if err != nil {
		return nil, errors.Wrap(err, "sum sales")
	}
	return &summary, nil
}
