package models

// User owns a wishlist. ExternalLink is an optional user-set pointer to an
// outside profile and is unrelated to item lifecycle.
type User struct {
	ID           uint    `gorm:"primaryKey" json:"-"`
	Username     string  `gorm:"uniqueIndex;not null" json:"username"`
	ExternalLink *string `json:"external_link"`
}
