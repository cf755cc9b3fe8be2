package users

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for users.
type Repository interface {
	All(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByCredentials(ctx context.Context, username, password string) (*User, error)
	Create(ctx context.Context, user *User) error
	// Update rewrites every mutable column by id and reports rows affected.
	Update(ctx context.Context, user *User) (int64, error)
	Delete(ctx context.Context, id uint) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) All(ctx context.Context) ([]User, error) {
	var us []User
	if err := r.db.WithContext(ctx).Find(&us).Error; err != nil {
		return nil, err
	}
	return us, nil
}

func (r *gormRepository) FindByID(ctx context.Context, id uint) (*User, error) {
	var user User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) FindByCredentials(ctx context.Context, username, password string) (*User, error) {
	var user User
	err := r.db.WithContext(ctx).
		Where("username = ? AND password = ?", username, password).
		First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *gormRepository) Create(ctx context.Context, user *User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *gormRepository) Update(ctx context.Context, user *User) (int64, error) {
	// Map form so a nil ProfileImage writes NULL instead of being skipped.
	tx := r.db.WithContext(ctx).Model(&User{}).Where("id = ?", user.ID).Updates(map[string]any{
		"username":      user.Username,
		"password":      user.Password,
		"profile_image": user.ProfileImage,
	})
	return tx.RowsAffected, tx.Error
}

func (r *gormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&User{}, "id = ?", id).Error
}
