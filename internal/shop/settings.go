package shop

import (
	"context" // Request scoped cancellation

	"storefront/internal/domain" // Domain models

	"github.com/pkg/errors" // Error wrapping
	"gorm.io/gorm"          // GORM ORM library
)

// SettingsInput holds branding fields. Empty fields are left unchanged.
type SettingsInput struct {
	LogoURL   string `json:"logo_url"`
	BannerURL string `json:"banner_url"`
}

// Settings fields that accept image uploads
const (
	FieldLogo   = "logo"
	FieldBanner = "banner"
)

// GetSettings returns the store branding, falling back to placeholders.
func (s *Service) GetSettings(ctx context.Context) (*domain.StoreSettings, error) {
	settings := domain.DefaultSettings()
	var stored domain.StoreSettings
	err := s.db.WithContext(ctx).First(&stored, domain.SettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &settings, nil // Nothing uploaded yet
	}
	if err != nil {
		return nil, errors.Wrap(err, "load settings")
	}
	if stored.LogoURL != "" {
		settings.LogoURL = stored.LogoURL
	}
	if stored.BannerURL != "" {
		settings.BannerURL = stored.BannerURL
	}
	return &settings, nil
}

// UpdateSettings overwrites the non-empty branding fields.
func (s *Service) UpdateSettings(ctx context.Context, in SettingsInput) (*domain.StoreSettings, error) {
	settings, err := s.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if in.LogoURL != "" {
		settings.LogoURL = in.LogoURL
	}
	if in.BannerURL != "" {
		settings.BannerURL = in.BannerURL
	}
	settings.ID = domain.SettingsID // Singleton row
	if err := s.db.WithContext(ctx).Save(settings).Error; err != nil {
		return nil, errors.Wrap(err, "save settings")
	}
	return settings, nil
}

// SetSettingsImage stores an uploaded image as the logo or the banner.
func (s *Service) SetSettingsImage(ctx context.Context, field, url string) (*domain.StoreSettings, error) {
	switch field {
	case FieldLogo:
		return s.UpdateSettings(ctx, SettingsInput{LogoURL: url})
	case FieldBanner:
		return s.UpdateSettings(ctx, SettingsInput{BannerURL: url})
	}
	return nil, domain.ErrUnknownSettingsField
}
