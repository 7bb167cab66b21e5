package domain

import "time" // Timestamps

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                         // Primary key
	Username  string    `gorm:"uniqueIndex;size:64;not null" json:"username"` // Unique username
	Password  string    `gorm:"not null" json:"-"`                            // Hashed password, never serialized
	Wallet    float64   `gorm:"not null;default:0" json:"wallet"`             // Spendable balance, never negative
	IsAdmin   bool      `gorm:"not null" json:"is_admin"`                     // Administrator flag
	CreatedAt time.Time `json:"created_at"`                                   // Signup time
}
