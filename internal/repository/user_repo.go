package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/doggr/backend/internal/db"
)

// directoryMaxID caps the public user directory to the original demo dataset.
const directoryMaxID = 70

// UserRepository provides data access methods for the User model and the
// IP history written alongside it at registration.
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new repository bound to the given DB connection.
func NewUserRepository(database *gorm.DB) *UserRepository {
	return &UserRepository{db: database}
}

// Register creates the User and its first IPHistory row in one transaction.
//
// Behavior:
//   - Both inserts commit or neither does.
//   - user.ID is populated on success.
//
// Example:
//
//	repo.Register(ctx, &user, "203.0.113.7")
func (r *UserRepository) Register(ctx context.Context, user *db.User, ip string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		return tx.Create(&db.IPHistory{IP: ip, UserID: user.ID}).Error
	})
}

// FindByEmail returns the user with the given email, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, err
}

// FindByID returns the user with the given id, or gorm.ErrRecordNotFound.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (db.User, error) {
	var user db.User
	err := r.db.WithContext(ctx).First(&user, id).Error
	return user, err
}

// ListDirectory returns the public user directory.
//
// Behavior:
//   - Only users with id below 70 are returned.
//   - Users owning a profile named "spot" (case-insensitive) are excluded.
//   - Profiles and IP history are expanded; password and created_at are
//     projected out of the user row.
//
// Example:
//
//	repo.ListDirectory(ctx)
func (r *UserRepository) ListDirectory(ctx context.Context) ([]db.User, error) {
	var users []db.User
	err := r.db.WithContext(ctx).
		Select("id", "name", "email", "updated_at").
		Where("users.id < ?", directoryMaxID).
		Where(`
			NOT EXISTS (
				SELECT 1 FROM profiles p
				WHERE p.user_id = users.id
				  AND LOWER(p.name) LIKE LOWER(?)
			)`, "spot").
		Preload("Profiles").
		Preload("IPs").
		Find(&users).Error
	return users, err
}

// IncrementBadwords bumps the user's moderation counter by one, atomically
// in the database rather than read-modify-write in memory.
func (r *UserRepository) IncrementBadwords(ctx context.Context, userID uint) error {
	res := r.db.WithContext(ctx).
		Model(&db.User{}).
		Where("id = ?", userID).
		UpdateColumn("badwords", gorm.Expr("badwords + 1"))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete hard-removes a user. Messages (sent and received), IP history, and
// profiles go with it via the foreign-key cascades.
func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&db.User{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
