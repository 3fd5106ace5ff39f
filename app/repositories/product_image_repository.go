package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

type ProductImageRepositoryImpl interface {
	WithTx(tx *gorm.DB) ProductImageRepositoryImpl
	Create(ctx context.Context, image *models.ProductImage) error
	UpdateImageName(ctx context.Context, id uint, name string) error
	GetByID(ctx context.Context, id uint) (*models.ProductImage, error)
	GetByProductID(ctx context.Context, productID uint) ([]models.ProductImage, error)
	Delete(ctx context.Context, id uint) error
	DeleteByProductID(ctx context.Context, productID uint) error
	CountByProductID(ctx context.Context, productID uint) (int64, error)
}

type productImageRepository struct {
	db *gorm.DB
}

func NewProductImageRepository(db *gorm.DB) ProductImageRepositoryImpl {
	return &productImageRepository{db}
}

func (r *productImageRepository) WithTx(tx *gorm.DB) ProductImageRepositoryImpl {
	return &productImageRepository{tx}
}

func (r *productImageRepository) Create(ctx context.Context, image *models.ProductImage) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *productImageRepository) UpdateImageName(ctx context.Context, id uint, name string) error {
	return r.db.WithContext(ctx).
		Model(&models.ProductImage{}).
		Where("id = ?", id).
		Update("image", name).Error
}

func (r *productImageRepository) GetByID(ctx context.Context, id uint) (*models.ProductImage, error) {
	var image models.ProductImage
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *productImageRepository) GetByProductID(ctx context.Context, productID uint) ([]models.ProductImage, error) {
	var images []models.ProductImage
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("sort_order ASC, id ASC").
		Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *productImageRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.ProductImage{}, id).Error
}

func (r *productImageRepository) DeleteByProductID(ctx context.Context, productID uint) error {
	return r.db.WithContext(ctx).Where("product_id = ?", productID).Delete(&models.ProductImage{}).Error
}

func (r *productImageRepository) CountByProductID(ctx context.Context, productID uint) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.ProductImage{}).Where("product_id = ?", productID).Count(&total).Error
	return total, err
}
