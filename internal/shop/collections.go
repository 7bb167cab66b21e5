package shop

import (
	"context" // Request scoped cancellation

	"storefront/internal/domain" // Domain models

	"github.com/pkg/errors" // Error wrapping
)

// Stable collection names accepted by ReadCollection
const (
	CollectionUsers         = "users"
	CollectionProducts      = "products"
	CollectionOrders        = "orders"
	CollectionWalletHistory = "wallet_history"
	CollectionSettings      = "settings"
)

// Collections lists every readable collection name.
func Collections() []string {
	return []string{CollectionUsers, CollectionProducts, CollectionOrders, CollectionWalletHistory, CollectionSettings}
}

// ReadCollection returns a full snapshot of the named collection in insertion
// order. Passwords never leave the users collection because they are not serialized.
func (s *Service) ReadCollection(ctx context.Context, name string) (any, error) {
	switch name {
	case CollectionUsers:
		return s.ListUsers(ctx)
	case CollectionProducts:
		return s.ListProducts(ctx)
	case CollectionOrders:
		return s.findAll(ctx, &[]domain.Order{})
	case CollectionWalletHistory:
		return s.findAll(ctx, &[]domain.WalletHistory{})
	case CollectionSettings:
		return s.GetSettings(ctx)
	}
	return nil, domain.ErrUnknownCollection
}

func (s *Service) findAll(ctx context.Context, dest any) (any, error) {
	if err := s.db.WithContext(ctx).Order("id asc").Find(dest).Error; err != nil {
		return nil, errors.Wrap(err, "read collection")
	}
	return dest, nil
}
