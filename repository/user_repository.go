package repository

import (
	"errors"
	"fmt"

	"wishlist-lite/models"

	"gorm.io/gorm"
)

// ErrUserNotFound is returned by non-creating lookups for unknown usernames.
var ErrUserNotFound = errors.New("user not found")

// UserWithCount pairs a username with the number of items it owns, for the
// admin dashboard.
type UserWithCount struct {
	Username  string `json:"username"`
	ItemCount int    `json:"item_count"`
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *GormUserRepository {
	if db == nil {
		panic("nil *gorm.DB passed to NewUserRepository")
	}
	return &GormUserRepository{db: db}
}

// FindByUsername is a non-creating lookup; unknown usernames yield
// ErrUserNotFound.
func (r *GormUserRepository) FindByUsername(username string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("username = ?", username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user %q: %w", username, err)
	}
	return &user, nil
}

// FindOrCreate returns the user for a username, creating it first if needed.
// Most API operations resolve their user through this path.
func (r *GormUserRepository) FindOrCreate(username string) (*models.User, error) {
	user, err := r.FindByUsername(username)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}

	created := models.User{Username: username}
	if err := r.db.Create(&created).Error; err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", username, err)
	}
	return &created, nil
}

// ListUsernames returns all usernames ordered case-insensitively.
func (r *GormUserRepository) ListUsernames() ([]string, error) {
	var names []string
	if err := r.db.Model(&models.User{}).
		Order("username COLLATE NOCASE ASC").
		Pluck("username", &names).Error; err != nil {
		return nil, fmt.Errorf("failed to list usernames: %w", err)
	}
	return names, nil
}

// ListWithCounts returns every user with its item count, ordered
// case-insensitively by username.
func (r *GormUserRepository) ListWithCounts() ([]UserWithCount, error) {
	var rows []UserWithCount
	if err := r.db.Model(&models.User{}).
		Select("users.username, COUNT(items.id) AS item_count").
		Joins("LEFT JOIN items ON items.user_id = users.id").
		Group("users.id").
		Order("users.username COLLATE NOCASE ASC").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list users with counts: %w", err)
	}
	return rows, nil
}

// SetExternalLink updates the user's external profile link.
func (r *GormUserRepository) SetExternalLink(userID uint, link *string) error {
	if err := r.db.Model(&models.User{}).Where("id = ?", userID).
		Update("external_link", link).Error; err != nil {
		return fmt.Errorf("failed to set external link: %w", err)
	}
	return nil
}

// DeleteCascade removes a user and every item it owns.
func (r *GormUserRepository) DeleteCascade(username string) error {
	user, err := r.FindByUsername(username)
	if err != nil {
		return err
	}
	if err := r.db.Where("user_id = ?", user.ID).Delete(&models.Item{}).Error; err != nil {
		return fmt.Errorf("failed to delete items for user %q: %w", username, err)
	}
	if err := r.db.Delete(user).Error; err != nil {
		return fmt.Errorf("failed to delete user %q: %w", username, err)
	}
	return nil
}
