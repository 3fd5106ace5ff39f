package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

type TempImageRepositoryImpl interface {
	Create(ctx context.Context, image *models.TempImage) error
	GetByID(ctx context.Context, id uint) (*models.TempImage, error)
	GetOlderThan(ctx context.Context, cutoff time.Time) ([]models.TempImage, error)
	Delete(ctx context.Context, id uint) error
}

type tempImageRepository struct {
	db *gorm.DB
}

func NewTempImageRepository(db *gorm.DB) TempImageRepositoryImpl {
	return &tempImageRepository{db}
}

func (r *tempImageRepository) Create(ctx context.Context, image *models.TempImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *tempImageRepository) GetByID(ctx context.Context, id uint) (*models.TempImage, error) {
	var image models.TempImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *tempImageRepository) GetOlderThan(ctx context.Context, cutoff time.Time) ([]models.TempImage, error) {
	var images []models.TempImage
	err := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Find(&images).Error
	return images, err
}

func (r *tempImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.TempImage{}, id).Error
}
