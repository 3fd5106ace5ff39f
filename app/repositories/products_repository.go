package repositories

import (
	"context"
	"errors"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

type ProductRepositoryImpl interface {
	WithTx(tx *gorm.DB) ProductRepositoryImpl
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
	GetByID(ctx context.Context, id uint) (*models.Product, error)
	GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error)
	GetAll(ctx context.Context) ([]models.Product, error)
	SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error)
	SearchByTitle(ctx context.Context, term string) ([]models.Product, error)
	SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error)
	SKUExists(ctx context.Context, sku string, excludeID uint) (bool, error)
	Count(ctx context.Context) (int64, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepositoryImpl {
	return &productRepository{db}
}

func (p *productRepository) WithTx(tx *gorm.DB) ProductRepositoryImpl {
	return &productRepository{tx}
}

func (p *productRepository) Create(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("ProductImages", "Category").Create(product).Error
}

func (p *productRepository) Update(ctx context.Context, product *models.Product) error {
	return p.db.WithContext(ctx).Omit("ProductImages", "Category").Save(product).Error
}

func (p *productRepository) Delete(ctx context.Context, id uint) error {
	return p.db.WithContext(ctx).Delete(&models.Product{}, id).Error
}

func (p *productRepository) GetByID(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	err := p.db.WithContext(ctx).
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// GetByIDs returns the products in the order of ids; ids with no row are skipped.
func (p *productRepository) GetByIDs(ctx context.Context, ids []uint) ([]models.Product, error) {
	if len(ids) == 0 {
		return []models.Product{}, nil
	}

	var found []models.Product
	if err := p.db.WithContext(ctx).
		Preload("ProductImages").
		Where("id IN ?", ids).
		Find(&found).Error; err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Product, len(found))
	for _, product := range found {
		byID[product.ID] = product
	}

	products := make([]models.Product, 0, len(ids))
	for _, id := range ids {
		if product, ok := byID[id]; ok {
			products = append(products, product)
		}
	}
	return products, nil
}

func (p *productRepository) GetAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := p.db.WithContext(ctx).Preload("ProductImages").Order("id ASC").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (p *productRepository) SearchPaginated(ctx context.Context, keyword string, limit, offset int) ([]models.Product, int64, error) {
	var products []models.Product
	var total int64

	query := p.db.WithContext(ctx).Model(&models.Product{})
	if keyword != "" {
		query = query.Where("title LIKE ?", "%"+keyword+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := query.
		Preload("ProductImages", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&products).Error

	return products, total, err
}

func (p *productRepository) SearchByTitle(ctx context.Context, term string) ([]models.Product, error) {
	var products []models.Product
	if term == "" {
		return products, nil
	}
	err := p.db.WithContext(ctx).
		Where("title LIKE ?", "%"+term+"%").
		Find(&products).Error
	return products, err
}

func (p *productRepository) SlugExists(ctx context.Context, slug string, excludeID uint) (bool, error) {
	return exists(ctx, p.db, &models.Product{}, "slug", slug, excludeID)
}

func (p *productRepository) SKUExists(ctx context.Context, sku string, excludeID uint) (bool, error) {
	return exists(ctx, p.db, &models.Product{}, "sku", sku, excludeID)
}

func (p *productRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := p.db.WithContext(ctx).Model(&models.Product{}).Count(&total).Error
	return total, err
}
