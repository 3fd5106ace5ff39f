package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Rakhulsr/go-catalog-admin/app/configs"
	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/models/migrations"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/format"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db        *gorm.DB
	publicDir string

	images        *ImageService
	products      *ProductService
	categories    *CategoryService
	subCategories *SubCategoryService
	brands        *BrandService
	temps         *TempImageService
	export        *ExportService
	auth          *AuthService

	category    *models.Category
	subCategory *models.SubCategory
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := configs.OpenSQLite(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := newTestDB(t)
	publicDir := t.TempDir()
	validate := helpers.NewValidator()
	images := NewImageService(publicDir)

	productRepo := repositories.NewProductRepository(db)
	productImageRepo := repositories.NewProductImageRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	subCategoryRepo := repositories.NewSubCategoryRepository(db)
	brandRepo := repositories.NewBrandRepository(db)
	tempImageRepo := repositories.NewTempImageRepository(db)

	f := &fixture{
		db:            db,
		publicDir:     publicDir,
		images:        images,
		products:      NewProductService(db, validate, productRepo, productImageRepo, tempImageRepo, subCategoryRepo, images),
		categories:    NewCategoryService(db, validate, categoryRepo, tempImageRepo, images),
		subCategories: NewSubCategoryService(validate, subCategoryRepo, categoryRepo),
		brands:        NewBrandService(validate, brandRepo),
		temps:         NewTempImageService(tempImageRepo, images),
		export:        NewExportService(productRepo, format.NewPriceFormatter("$")),
		auth:          NewAuthService(repositories.NewUserRepository(db)),
	}

	f.category = &models.Category{Name: "Shoes", Slug: "shoes", Status: models.StatusActive, ShowHome: models.No}
	require.NoError(t, db.Create(f.category).Error)
	f.subCategory = &models.SubCategory{CategoryID: f.category.ID, Name: "Sneakers", Slug: "sneakers", Status: models.StatusActive, ShowHome: models.No}
	require.NoError(t, db.Create(f.subCategory).Error)

	return f
}

func (f *fixture) productForm(slug string) *ProductForm {
	return &ProductForm{
		Title:       "Product " + slug,
		Slug:        slug,
		Price:       "19.99",
		Category:    uintString(f.category.ID),
		SubCategory: uintString(f.subCategory.ID),
		IsFeatured:  models.No,
		Sku:         "SKU-" + slug,
		TrackQty:    models.No,
		Status:      "1",
	}
}

func (f *fixture) mustCreateProduct(t *testing.T, form *ProductForm) *models.Product {
	t.Helper()
	product, err := f.products.CreateProduct(context.Background(), form)
	require.NoError(t, err)
	return product
}

// uploadTemp stages a generated png of w x h through TempImageService.
func (f *fixture) uploadTemp(t *testing.T, w, h int) *models.TempImage {
	t.Helper()
	temp, err := f.temps.Upload(context.Background(), ImageUpload{
		Filename: "photo.png",
		Reader:   bytes.NewReader(pngBytes(t, w, h)),
	})
	require.NoError(t, err)
	return temp
}

func (f *fixture) count(t *testing.T, model interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, f.db.Model(model).Count(&n).Error)
	return n
}

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func imageSize(t *testing.T, path string) (int, int) {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	cfg, _, err := image.DecodeConfig(file)
	require.NoError(t, err)
	return cfg.Width, cfg.Height
}

func uintString(id uint) string {
	return models.JoinIDs([]uint{id})
}
