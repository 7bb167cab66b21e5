package domain

import "time" // Timestamps

// Direction is the sign of a wallet history entry
type Direction string

const (
	DirectionIn  Direction = "IN"  // Balance increases
	DirectionOut Direction = "OUT" // Balance decreases
)

// Valid reports whether d is IN or OUT
func (d Direction) Valid() bool {
	return d == DirectionIn || d == DirectionOut
}

// WalletHistory Model. One entry per wallet balance change.
type WalletHistory struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                          // Primary key
	Reference string    `gorm:"uniqueIndex;size:64;not null" json:"reference"` // Public reference, WH-<uuid>
	UserID    uint      `gorm:"index;not null" json:"user_id"`                 // Wallet owner
	Type      Direction `gorm:"size:8;not null" json:"type"`                   // IN or OUT
	Amount    float64   `gorm:"not null" json:"amount"`                        // Always positive
	Reason    string    `gorm:"size:255;not null" json:"reason"`               // Human readable reason
	Date      time.Time `gorm:"index;not null" json:"date"`                    // Time of change
	AdminName *string   `gorm:"size:64" json:"admin_name,omitempty"`           // Set only for admin adjustments
}

// TableName keeps the ledger table singular
func (WalletHistory) TableName() string {
	return "wallet_history"
}

// Signed returns the amount with the sign of its direction
func (h WalletHistory) Signed() float64 {
	if h.Type == DirectionOut {
		return -h.Amount
	}
	return h.Amount
}
