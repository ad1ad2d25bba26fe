package repository

import (
	"fmt"

	"wishlist-lite/models"

	"gorm.io/gorm"
)

// GormItemRepository is the GORM implementation of the item store. The
// lifecycle controller consumes it through its own interface
// (wishlist.ItemRepository), keeping the controller storage-agnostic.
//
// Lookups by (user, url) return every matching row: the schema carries no
// uniqueness constraint for that pair, so callers must reason over match
// sets, never a single row.
type GormItemRepository struct {
	db *gorm.DB
}

func NewItemRepository(db *gorm.DB) *GormItemRepository {
	if db == nil {
		panic("nil *gorm.DB passed to NewItemRepository")
	}
	return &GormItemRepository{db: db}
}

func (r *GormItemRepository) Create(item *models.Item) error {
	if err := r.db.Create(item).Error; err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}
	return nil
}

// Save writes back all fields of an existing row.
func (r *GormItemRepository) Save(item *models.Item) error {
	if err := r.db.Save(item).Error; err != nil {
		return fmt.Errorf("failed to save item %d: %w", item.ID, err)
	}
	return nil
}

// ListByUser returns a user's items filtered by the archived flag, newest
// first.
func (r *GormItemRepository) ListByUser(userID uint, archived bool) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("user_id = ? AND archived = ?", userID, archived).
		Order("id desc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	return items, nil
}

// FindByURL returns zero or more rows matching (user, url), in insertion
// order.
func (r *GormItemRepository) FindByURL(userID uint, url string) ([]models.Item, error) {
	var items []models.Item
	if err := r.db.Where("user_id = ? AND url = ?", userID, url).
		Order("id asc").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to find items for url: %w", err)
	}
	return items, nil
}

// DeleteByURL removes every row matching (user, url), duplicates included.
func (r *GormItemRepository) DeleteByURL(userID uint, url string) error {
	if err := r.db.Where("user_id = ? AND url = ?", userID, url).
		Delete(&models.Item{}).Error; err != nil {
		return fmt.Errorf("failed to delete items for url: %w", err)
	}
	return nil
}

// CountByUser returns the number of items a user owns, archived included.
func (r *GormItemRepository) CountByUser(userID uint) (int, error) {
	var count int64
	if err := r.db.Model(&models.Item{}).Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count items: %w", err)
	}
	return int(count), nil
}
