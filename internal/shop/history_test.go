package shop

import (
	"context"
	"encoding/json"
	"testing"

	"storefront/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestOrdersNewestFirstAndSales(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, conn, "buyer", 100)
	first := seedProduct(t, svc, "FIRST", 10)
	second := seedProduct(t, svc, "SECOND", 15)

	_, err := svc.Purchase(ctx, &Session{UserID: user.ID}, first.ID)
	require.NoError(t, err)
	_, err = svc.Purchase(ctx, &Session{UserID: user.ID}, second.ID)
	require.NoError(t, err)

	orders, err := svc.UserOrders(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, "SECOND", orders[0].ProductID)
	assert.Equal(t, "FIRST", orders[1].ProductID)

	all, err := svc.ListOrders(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	sales, err := svc.Sales(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), sales.Orders)
	assert.Equal(t, 25.0, sales.Total)
}

func TestSalesEmpty(t *testing.T) {
	svc, _ := newTestService(t)

	sales, err := svc.Sales(context.Background())
	require.NoError(t, err)
	assert.Zero(t, sales.Orders)
	assert.Zero(t, sales.Total)
}

func TestSettings(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	settings, err := svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultLogoURL, settings.LogoURL)
	assert.Equal(t, domain.DefaultBannerURL, settings.BannerURL)

	_, err = svc.UpdateSettings(ctx, SettingsInput{LogoURL: "https://cdn.example/logo.png"})
	require.NoError(t, err)
	_, err = svc.SetSettingsImage(ctx, FieldBanner, "data:image/png;base64,AAAA")
	require.NoError(t, err)

	settings, err = svc.GetSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/logo.png", settings.LogoURL)
	assert.Equal(t, "data:image/png;base64,AAAA", settings.BannerURL)

	_, err = svc.SetSettingsImage(ctx, "favicon", "x")
	assert.ErrorIs(t, err, domain.ErrUnknownSettingsField)
}

func TestReadCollectionIsRepeatable(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	user := seedUser(t, conn, "buyer", 100)
	p := seedProduct(t, svc, "READ", 10)
	_, err := svc.Purchase(ctx, &Session{UserID: user.ID}, p.ID)
	require.NoError(t, err)

	for _, name := range Collections() {
		t.Run(name, func(t *testing.T) {
			a, err := svc.ReadCollection(ctx, name)
			require.NoError(t, err)
			b, err := svc.ReadCollection(ctx, name)
			require.NoError(t, err)
			assert.JSONEq(t, mustJSON(t, a), mustJSON(t, b))
		})
	}

	_, err = svc.ReadCollection(ctx, "secrets")
	assert.ErrorIs(t, err, domain.ErrUnknownCollection)
}
