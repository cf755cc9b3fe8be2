package hobbies

import (
	"context"

	"gorm.io/gorm"
)

// Repository defines persistence operations for hobbies.
type Repository interface {
	ListByUser(ctx context.Context, userID uint) ([]Hobby, error)
	Create(ctx context.Context, hobby *Hobby) error
	// DeleteByUserAndHobby matches on both ids so a hobby can't be deleted
	// through another user's URL. Zero rows affected is not an error.
	DeleteByUserAndHobby(ctx context.Context, userID, hobbyID uint) error
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository builds a GORM-backed repository.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) ListByUser(ctx context.Context, userID uint) ([]Hobby, error) {
	var hs []Hobby
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&hs).Error
	if err != nil {
		return nil, err
	}
	return hs, nil
}

func (r *gormRepository) Create(ctx context.Context, hobby *Hobby) error {
	return r.db.WithContext(ctx).Create(hobby).Error
}

func (r *gormRepository) DeleteByUserAndHobby(ctx context.Context, userID, hobbyID uint) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", hobbyID, userID).
		Delete(&Hobby{}).Error
}
