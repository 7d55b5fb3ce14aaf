package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/doggr/backend/internal/db"
)

// ProfileRepository provides data access methods for pet profiles.
type ProfileRepository struct {
	db *gorm.DB
}

// NewProfileRepository creates a new repository bound to the given DB connection.
func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db: database}
}

// Create inserts a new profile. profile.ID is populated on success.
func (r *ProfileRepository) Create(ctx context.Context, profile *db.Profile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

// List returns all profiles.
func (r *ProfileRepository) List(ctx context.Context) ([]db.Profile, error) {
	var profiles []db.Profile
	err := r.db.WithContext(ctx).Find(&profiles).Error
	return profiles, err
}

// FindByID returns the profile with the given id, or gorm.ErrRecordNotFound.
func (r *ProfileRepository) FindByID(ctx context.Context, id uint) (db.Profile, error) {
	var profile db.Profile
	err := r.db.WithContext(ctx).First(&profile, id).Error
	return profile, err
}

// ListByUser returns every profile owned by the given user.
func (r *ProfileRepository) ListByUser(ctx context.Context, userID uint) ([]db.Profile, error) {
	var profiles []db.Profile
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Find(&profiles).Error
	return profiles, err
}

// Rename updates the profile's name. Returns gorm.ErrRecordNotFound when the
// id does not exist.
func (r *ProfileRepository) Rename(ctx context.Context, id uint, name string) (db.Profile, error) {
	res := r.db.WithContext(ctx).
		Model(&db.Profile{}).
		Where("id = ?", id).
		Update("name", name)
	if res.Error != nil {
		return db.Profile{}, res.Error
	}
	if res.RowsAffected == 0 {
		return db.Profile{}, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete hard-removes a profile. Match edges on either side go with it via
// the foreign-key cascades.
func (r *ProfileRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&db.Profile{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
