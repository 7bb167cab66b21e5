package shop

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateProduct(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(context.Background(), ProductInput{
		SKU:        "  GAME-01 ",
		Name:       "Game key",
		Price:      120,
		SecretCode: "AAAA-BBBB",
	})
	require.NoError(t, err)
	assert.NotZero(t, p.ID)
	assert.Equal(t, "GAME-01", p.SKU)
	assert.True(t, p.IsAvailable)
}

func TestCreateProductValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, ProductInput{SKU: "A", Name: "", SecretCode: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidProduct)

	_, err = svc.CreateProduct(ctx, ProductInput{SKU: "A", Name: "A", SecretCode: "x", Price: -1})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	assert.Zero(t, count(t, conn, &domain.Product{}))
}

func TestCreateProductDuplicateSKU(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, svc, "DUP", 10)

	_, err := svc.CreateProduct(context.Background(), ProductInput{SKU: "DUP", Name: "Other", SecretCode: "y"})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)
	assert.Equal(t, int64(1), count(t, conn, &domain.Product{}))
}

func TestUpdateProduct(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "OLD", 10)

	updated, err := svc.UpdateProduct(ctx, p.ID, ProductInput{SKU: "NEW", Name: "Renamed", Price: 15, SecretCode: "s"})
	require.NoError(t, err)
	assert.Equal(t, "NEW", updated.SKU)
	assert.Equal(t, 15.0, updated.Price)
	assert.True(t, updated.IsAvailable, "nil availability keeps the current value")

	updated, err = svc.UpdateProduct(ctx, p.ID, ProductInput{SKU: "NEW", Name: "Renamed", Price: 15, SecretCode: "s", IsAvailable: ptr(false)})
	require.NoError(t, err)
	assert.False(t, updated.IsAvailable)

	stored, err := svc.GetProduct(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)
	assert.False(t, stored.IsAvailable)
}

func TestUpdateProductSKUCollision(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	a := seedProduct(t, svc, "A", 1)
	seedProduct(t, svc, "B", 1)

	_, err := svc.UpdateProduct(ctx, a.ID, ProductInput{SKU: "B", Name: "A", SecretCode: "s"})
	require.ErrorIs(t, err, domain.ErrDuplicateSKU)

	stored, err := svc.GetProduct(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", stored.SKU)

	_, err = svc.UpdateProduct(ctx, 999, ProductInput{SKU: "Z", Name: "Z", SecretCode: "s"})
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductNeedsConfirmation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "DEL", 10)

	require.ErrorIs(t, svc.DeleteProduct(ctx, p.ID, false), domain.ErrConfirmationDeclined)
	assert.Equal(t, int64(1), count(t, conn, &domain.Product{}))

	require.NoError(t, svc.DeleteProduct(ctx, p.ID, true))
	assert.Zero(t, count(t, conn, &domain.Product{}))

	assert.ErrorIs(t, svc.DeleteProduct(ctx, p.ID, true), domain.ErrProductNotFound)
}

func TestDeleteProductKeepsOrders(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, conn, "buyer", 100)
	p := seedProduct(t, svc, "GONE", 10)

	_, err := svc.Purchase(ctx, &Session{UserID: user.ID}, p.ID)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteProduct(ctx, p.ID, true))

	orders, err := svc.UserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "GONE", orders[0].ProductID)
	assert.Equal(t, "CODE-GONE", orders[0].SecretCode)
}

func TestListAvailableProductsHidesUnavailable(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	seedProduct(t, svc, "ON", 5)
	_, err := svc.CreateProduct(ctx, ProductInput{SKU: "OFF", Name: "Off", SecretCode: "s", IsAvailable: ptr(false)})
	require.NoError(t, err)

	public, err := svc.ListAvailableProducts(ctx)
	require.NoError(t, err)
	require.Len(t, public, 1)
	assert.Equal(t, "ON", public[0].SKU)

	all, err := svc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestSetProductImage(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	p := seedProduct(t, svc, "IMG", 5)

	updated, err := svc.SetProductImage(ctx, p.ID, "data:image/png;base64,AAAA")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,AAAA", updated.ImageURL)

	_, err = svc.SetProductImage(ctx, 999, "x")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestProductFieldLengths(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	longest := strings.Repeat("ก", domain.MaxProductNameLength)
	_, err := svc.CreateProduct(ctx, ProductInput{SKU: "LONG", Name: longest + "x", SecretCode: "s"})
	require.ErrorIs(t, err, domain.ErrProductFieldLength)
	_, err = svc.CreateProduct(ctx, ProductInput{SKU: strings.Repeat("S", domain.MaxSKULength+1), Name: "n", SecretCode: "s"})
	require.ErrorIs(t, err, domain.ErrProductFieldLength)
	_, err = svc.CreateProduct(ctx, ProductInput{SKU: "SEC", Name: "n", SecretCode: strings.Repeat("c", domain.MaxSecretCodeLength+1)})
	require.ErrorIs(t, err, domain.ErrProductFieldLength)

	p, err := svc.CreateProduct(ctx, ProductInput{SKU: "LONG", Name: longest, Price: 1, SecretCode: "s"})
	require.NoError(t, err)
	_, err = svc.UpdateProduct(ctx, p.ID, ProductInput{SKU: "LONG", Name: longest + "x", SecretCode: "s"})
	require.ErrorIs(t, err, domain.ErrProductFieldLength)

	user := seedUser(t, conn, "buyer", 10)
	_, err = svc.Purchase(ctx, &Session{UserID: user.ID}, p.ID)
	require.NoError(t, err)
	history, err := svc.UserWalletHistory(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.LessOrEqual(t, utf8.RuneCountInString(history[0].Reason), 255)
}
