package domain

import "time" // Timestamps

// Column limits for product text fields, in characters
const (
	MaxSKULength         = 64
	MaxProductNameLength = 245 // Leaves room for the "Purchase: " wallet history reason
	MaxSecretCodeLength  = 512
)

// Product Model
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                                             // Internal id
	SKU         string    `gorm:"column:product_id;uniqueIndex;size:64;not null" json:"product_id"` // External SKU, unique
	Name        string    `gorm:"size:255;not null" json:"name"`                                    // Display name
	Price       float64   `gorm:"not null;default:0" json:"price"`                                  // Price, never negative
	Description string    `gorm:"type:text" json:"description"`                                     // Free text
	ImageURL    string    `gorm:"type:longtext" json:"image_url"`                                   // Remote URL or inline data URL
	IsAvailable bool      `gorm:"not null" json:"is_available"`                                     // Listed for sale
	SecretCode  string    `gorm:"size:512;not null" json:"secret_code"`                             // Revealed only through an order
	CreatedAt   time.Time `json:"created_at"`                                                       // Creation time
	UpdatedAt   time.Time `json:"updated_at"`                                                       // Last edit
}

// PublicProduct is the storefront view of a product, without the secret code
type PublicProduct struct {
	ID          uint    `json:"id"`
	SKU         string  `json:"product_id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description"`
	ImageURL    string  `json:"image_url"`
}

// Public strips the fields buyers must not see before purchasing
func (p Product) Public() PublicProduct {
	return PublicProduct{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Price:       p.Price,
		Description: p.Description,
		ImageURL:    p.ImageURL,
	}
}
