package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

type BrandRepositoryImpl interface {
	Create(ctx context.Context, brand *models.Brand) error
	GetByID(ctx context.Context, id uint) (*models.Brand, error)
	GetAll(ctx context.Context) ([]models.Brand, error)
	SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Brand, int64, error)
	Update(ctx context.Context, brand *models.Brand) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

type brandRepository struct {
	db *gorm.DB
}

func NewBrandRepository(db *gorm.DB) BrandRepositoryImpl {
	return &brandRepository{db}
}

func (r *brandRepository) Create(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Create(brand).Error
}

func (r *brandRepository) GetByID(ctx context.Context, id uint) (*models.Brand, error) {
	var brand models.Brand
	err := r.db.WithContext(ctx).First(&brand, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &brand, nil
}

func (r *brandRepository) GetAll(ctx context.Context) ([]models.Brand, error) {
	var brands []models.Brand
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&brands).Error; err != nil {
		return nil, err
	}
	return brands, nil
}

func (r *brandRepository) SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Brand, int64, error) {
	var brands []models.Brand
	var total int64

	query := r.db.WithContext(ctx).Model(&models.Brand{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Order("id DESC"), limit, offset).Find(&brands).Error
	return brands, total, err
}

func (r *brandRepository) Update(ctx context.Context, brand *models.Brand) error {
	return r.db.WithContext(ctx).Save(brand).Error
}

func (r *brandRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Brand{}, id).Error
}

func (r *brandRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.Brand{}, "slug", slug, excludeID)
}
