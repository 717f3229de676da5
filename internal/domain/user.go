package domain

import "time" // Signup timestamp

// User Model
type User struct {
	ID           string    `gorm:"primaryKey;type:varchar(64)"`             // Generated at signup (UUID)
	Username     string    `gorm:"uniqueIndex;type:varchar(64);not null"`  // Unique username
	Email        string    `gorm:"uniqueIndex;type:varchar(255);not null"` // Unique email
	PasswordHash string    `gorm:"not null"`                               // bcrypt hash, never the plaintext
	CreatedAt    time.Time // Set by the store on creation
}
