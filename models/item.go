package models

// Item represents a single wishlist entry owned by a user.
//
// Title, Description, Image and Price are pointers so that metadata the
// extractor could not resolve stays NULL in storage and null on the wire,
// distinct from a value that resolved to an empty string.
//
// There is deliberately no uniqueness constraint on (user_id, url): the
// lifecycle controller tolerates duplicate rows and always operates on the
// full set of matches for a key.
type Item struct {
	ID          uint    `gorm:"primaryKey" json:"-"`
	UserID      uint    `gorm:"index;not null" json:"-"`
	URL         string  `gorm:"index;not null" json:"url"`
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Price       *string `json:"price"`
	Source      string  `json:"source"`
	AddedDate   string  `json:"added"` // ISO 8601 calendar date, e.g. "2026-08-30"
	Purchased   bool    `gorm:"default:false" json:"purchased"`
	Archived    bool    `gorm:"default:false" json:"-"`
}
