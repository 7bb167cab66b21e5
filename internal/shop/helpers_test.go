package shop

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"storefront/internal/config"
	"storefront/internal/db"
	"storefront/internal/domain"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// newTestService opens a per-test in-memory database so tests never share state.
func newTestService(t *testing.T, opts ...Option) (*Service, *gorm.DB) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	conn, err := db.Open(&config.Config{
		DBDriver: db.DriverSQLite,
		DBPath:   fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		IsProd:   true,
	})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))

	opts = append([]Option{WithHashCost(bcrypt.MinCost)}, opts...)
	return NewService(conn, opts...), conn
}

func seedUser(t *testing.T, conn *gorm.DB, username string, wallet float64) *domain.User {
	t.Helper()
	u := &domain.User{Username: username, Password: "unused", Wallet: wallet}
	require.NoError(t, conn.Create(u).Error)
	return u
}

func seedProduct(t *testing.T, svc *Service, sku string, price float64) *domain.Product {
	t.Helper()
	p, err := svc.CreateProduct(context.Background(), ProductInput{
		SKU:         sku,
		Name:        "Item " + sku,
		Price:       price,
		Description: "test item",
		SecretCode:  "CODE-" + sku,
	})
	require.NoError(t, err)
	return p
}

func walletOf(t *testing.T, svc *Service, id uint) float64 {
	t.Helper()
	u, err := svc.GetUser(context.Background(), id)
	require.NoError(t, err)
	return u.Wallet
}

func count(t *testing.T, conn *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(model).Count(&n).Error)
	return n
}

func ptr[T any](v T) *T { return &v }
