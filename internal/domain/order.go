package domain

import "time" // Timestamps

// OrderStatus marks the outcome of a purchase. Only successful purchases are persisted.
type OrderStatus string

// OrderSuccess is the only status an order can carry
const OrderSuccess OrderStatus = "SUCCESS"

// Order Model. Orders snapshot the product so they survive catalog edits and deletions.
type Order struct {
	ID          uint        `gorm:"primaryKey" json:"id"`                          // Primary key
	Reference   string      `gorm:"uniqueIndex;size:64;not null" json:"reference"` // Public reference, ORD-<uuid>
	UserID      uint        `gorm:"index;not null" json:"user_id"`                 // Buyer
	Username    string      `gorm:"size:64;not null" json:"username"`              // Buyer name at purchase time
	ProductID   string      `gorm:"size:64;not null" json:"product_id"`            // Product SKU at purchase time
	ProductName string      `gorm:"size:255;not null" json:"product_name"`         // Product name at purchase time
	Price       float64     `gorm:"not null" json:"price"`                         // Price paid
	SecretCode  string      `gorm:"size:512;not null" json:"secret_code"`          // Copied from the product
	Status      OrderStatus `gorm:"size:16;not null" json:"status"`                // Always SUCCESS
	Date        time.Time   `gorm:"index;not null" json:"date"`                    // Purchase time
}
