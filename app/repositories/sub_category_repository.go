package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

type SubCategoryRepositoryImpl interface {
	Create(ctx context.Context, subCategory *models.SubCategory) error
	GetByID(ctx context.Context, id uint) (*models.SubCategory, error)
	GetByCategoryID(ctx context.Context, categoryID uint) ([]models.SubCategory, error)
	SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.SubCategory, int64, error)
	Update(ctx context.Context, subCategory *models.SubCategory) error
	Delete(ctx context.Context, id uint) error
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
}

type subCategoryRepository struct {
	db *gorm.DB
}

func NewSubCategoryRepository(db *gorm.DB) SubCategoryRepositoryImpl {
	return &subCategoryRepository{db}
}

func (r *subCategoryRepository) Create(ctx context.Context, subCategory *models.SubCategory) error {
	return r.db.WithContext(ctx).Omit("Category").Create(subCategory).Error
}

func (r *subCategoryRepository) GetByID(ctx context.Context, id uint) (*models.SubCategory, error) {
	var subCategory models.SubCategory
	err := r.db.WithContext(ctx).Preload("Category").First(&subCategory, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &subCategory, nil
}

func (r *subCategoryRepository) GetByCategoryID(ctx context.Context, categoryID uint) ([]models.SubCategory, error) {
	var subCategories []models.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ?", categoryID).
		Order("name ASC").
		Find(&subCategories).Error
	if err != nil {
		return nil, err
	}
	return subCategories, nil
}

func (r *subCategoryRepository) SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.SubCategory, int64, error) {
	var subCategories []models.SubCategory
	var total int64

	query := r.db.WithContext(ctx).Model(&models.SubCategory{})
	if keyword != "" {
		query = query.Where("name LIKE ?", "%"+keyword+"%")
	}
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := paginate(query.Preload("Category").Order("id DESC"), limit, offset).Find(&subCategories).Error
	return subCategories, total, err
}

func (r *subCategoryRepository) Update(ctx context.Context, subCategory *models.SubCategory) error {
	return r.db.WithContext(ctx).Omit("Category").Save(subCategory).Error
}

func (r *subCategoryRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.SubCategory{}, id).Error
}

func (r *subCategoryRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return exists(ctx, r.db, &models.SubCategory{}, "slug", slug, excludeID)
}
