package repository

import (
	"context"
	"errors"

	"quill/internal/models"

	"gorm.io/gorm"
)

// SocialMediaRepository defines the interface for social media link data operations.
type SocialMediaRepository interface {
	List(ctx context.Context) ([]*models.SocialMedia, error)
	GetByID(ctx context.Context, id uint) (*models.SocialMedia, error)
	Create(ctx context.Context, link *models.SocialMedia) error
	Update(ctx context.Context, link *models.SocialMedia) error
	Delete(ctx context.Context, id uint) error
}

type socialMediaRepository struct {
	db *gorm.DB
}

// NewSocialMediaRepository creates a new social media repository.
func NewSocialMediaRepository(db *gorm.DB) SocialMediaRepository {
	return &socialMediaRepository{db: db}
}

func (r *socialMediaRepository) List(ctx context.Context) ([]*models.SocialMedia, error) {
	var links []*models.SocialMedia
	err := r.db.WithContext(ctx).Order("id asc").Find(&links).Error
	return links, err
}

func (r *socialMediaRepository) GetByID(ctx context.Context, id uint) (*models.SocialMedia, error) {
	var link models.SocialMedia
	if err := r.db.WithContext(ctx).First(&link, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("SocialMedia", id)
		}
		return nil, err
	}
	return &link, nil
}

func (r *socialMediaRepository) Create(ctx context.Context, link *models.SocialMedia) error {
	return r.db.WithContext(ctx).Create(link).Error
}

func (r *socialMediaRepository) Update(ctx context.Context, link *models.SocialMedia) error {
	return r.db.WithContext(ctx).Save(link).Error
}

func (r *socialMediaRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SocialMedia{}, id).Error
}
