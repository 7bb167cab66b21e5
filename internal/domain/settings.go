package domain

// Placeholder images used until an administrator uploads branding
const (
	DefaultLogoURL   = "https://picsum.photos/200/200"
	DefaultBannerURL = "https://picsum.photos/1200/400"
)

// SettingsID is the primary key of the singleton settings row
const SettingsID uint = 1

// StoreSettings Model (singleton)
type StoreSettings struct {
	ID        uint   `gorm:"primaryKey" json:"-"`             // Always SettingsID
	LogoURL   string `gorm:"type:longtext" json:"logo_url"`   // Square logo
	BannerURL string `gorm:"type:longtext" json:"banner_url"` // Wide banner
}

// DefaultSettings returns the settings served before any upload
func DefaultSettings() StoreSettings {
	return StoreSettings{ID: SettingsID, LogoURL: DefaultLogoURL, BannerURL: DefaultBannerURL}
}
