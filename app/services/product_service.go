package services

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ProductForm is the product create/update submission as posted by the admin form.
type ProductForm struct {
	Title            string   `form:"title" validate:"required"`
	Slug             string   `form:"slug" validate:"required"`
	ShortDescription string   `form:"short_description"`
	Description      string   `form:"description"`
	ShippingReturns  string   `form:"shipping_returns"`
	Price            string   `form:"price" validate:"required,numeric"`
	ComparePrice     string   `form:"compare_price" validate:"omitempty,numeric"`
	Category         string   `form:"category" validate:"required,number"`
	SubCategory      string   `form:"sub_category" validate:"required,number"`
	Brand            string   `form:"brand" validate:"omitempty,number"`
	IsFeatured       string   `form:"is_featured" validate:"required,oneof=Yes No"`
	Sku              string   `form:"sku" validate:"required"`
	Barcode          string   `form:"barcode"`
	TrackQty         string   `form:"track_qty" validate:"required,oneof=Yes No"`
	Qty              string   `form:"qty"`
	Status           string   `form:"status" validate:"omitempty,oneof=0 1"`
	RelatedProducts  []string `form:"related_products" validate:"omitempty,dive,number"`
	ImageArray       []string `form:"image_array" validate:"omitempty,dive,number"`
}

type ProductTag struct {
	ID   uint   `json:"id"`
	Text string `json:"text"`
}

type ProductEditData struct {
	Product         *models.Product
	SubCategories   []models.SubCategory
	RelatedProducts []models.Product
}

type ProductService struct {
	db               *gorm.DB
	validator        *validator.Validate
	productRepo      repositories.ProductRepositoryImpl
	productImageRepo repositories.ProductImageRepositoryImpl
	tempImageRepo    repositories.TempImageRepositoryImpl
	subCategoryRepo  repositories.SubCategoryRepositoryImpl
	images           *ImageService
	now              func() time.Time
}

func NewProductService(
	db *gorm.DB,
	validator *validator.Validate,
	productRepo repositories.ProductRepositoryImpl,
	productImageRepo repositories.ProductImageRepositoryImpl,
	tempImageRepo repositories.TempImageRepositoryImpl,
	subCategoryRepo repositories.SubCategoryRepositoryImpl,
	images *ImageService,
) *ProductService {
	return &ProductService{
		db:               db,
		validator:        validator,
		productRepo:      productRepo,
		productImageRepo: productImageRepo,
		tempImageRepo:    tempImageRepo,
		subCategoryRepo:  subCategoryRepo,
		images:           images,
		now:              time.Now,
	}
}

func (s *ProductService) validate(ctx context.Context, form *ProductForm, excludeID uint) error {
	fields, err := validateStruct(s.validator, form)
	if err != nil {
		return err
	}

	if form.TrackQty == models.Yes {
		if form.Qty == "" {
			fields.add("qty", "required")
		} else if _, err := parseQty(form.Qty); err != nil {
			fields.add("qty", "numeric")
		}
	}

	checkID(fields, "category", form.Category)
	checkID(fields, "sub_category", form.SubCategory)
	checkID(fields, "brand", form.Brand)
	checkIDs(fields, "related_products", form.RelatedProducts)
	checkIDs(fields, "image_array", form.ImageArray)

	if err := checkUnique(ctx, fields, "slug", form.Slug, excludeID, s.productRepo.SlugExists); err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	if err := checkUnique(ctx, fields, "sku", form.Sku, excludeID, s.productRepo.SKUExists); err != nil {
		return fmt.Errorf("failed to check sku: %w", err)
	}

	return fields.err()
}

// fill copies a validated form onto p.
func (f *ProductForm) fill(p *models.Product) error {
	price, err := decimal.NewFromString(f.Price)
	if err != nil {
		return fmt.Errorf("invalid price %q: %w", f.Price, err)
	}

	comparePrice := decimal.NullDecimal{}
	if f.ComparePrice != "" {
		cp, err := decimal.NewFromString(f.ComparePrice)
		if err != nil {
			return fmt.Errorf("invalid compare price %q: %w", f.ComparePrice, err)
		}
		comparePrice = decimal.NewNullDecimal(cp)
	}

	categoryID, err := parseID(f.Category)
	if err != nil {
		return err
	}
	subCategoryID, err := parseID(f.SubCategory)
	if err != nil {
		return err
	}

	var brandID *uint
	if f.Brand != "" {
		id, err := parseID(f.Brand)
		if err != nil {
			return err
		}
		brandID = &id
	}

	var qty *int
	if f.TrackQty == models.Yes {
		n, err := parseQty(f.Qty)
		if err != nil {
			return err
		}
		qty = &n
	}

	status := models.StatusActive
	if f.Status != "" {
		status, _ = strconv.Atoi(f.Status)
	}

	related, err := parseIDs(f.RelatedProducts)
	if err != nil {
		return err
	}

	p.Title = f.Title
	p.Slug = f.Slug
	p.ShortDescription = f.ShortDescription
	p.Description = f.Description
	p.ShippingReturns = f.ShippingReturns
	p.Price = price
	p.ComparePrice = comparePrice
	p.CategoryID = categoryID
	p.SubCategoryID = subCategoryID
	p.BrandID = brandID
	p.IsFeatured = f.IsFeatured
	p.Sku = f.Sku
	p.Barcode = f.Barcode
	p.TrackQty = f.TrackQty
	p.Qty = qty
	p.Status = status
	p.SetRelatedProductIDs(related)
	return nil
}

// CreateProduct validates and stores a product and promotes the staged temp images listed
// in form.ImageArray. Rows and derivative files are all-or-nothing.
func (s *ProductService) CreateProduct(ctx context.Context, form *ProductForm) (*models.Product, error) {
	if err := s.validate(ctx, form, 0); err != nil {
		return nil, err
	}

	product := &models.Product{}
	if err := form.fill(product); err != nil {
		return nil, err
	}

	tempIDs, err := parseIDs(form.ImageArray)
	if err != nil {
		return nil, err
	}
	temps := make([]*models.TempImage, 0, len(tempIDs))
	for _, id := range tempIDs {
		temp, err := s.tempImageRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to load temp image %d: %w", id, err)
		}
		if temp == nil {
			return nil, fmt.Errorf("temp image %d not found", id)
		}
		temps = append(temps, temp)
	}

	var written []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productRepo.WithTx(tx).Create(ctx, product); err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}

		imageRepo := s.productImageRepo.WithTx(tx)
		for i, temp := range temps {
			image, err := s.storeImage(ctx, imageRepo, product.ID, i, ImageExt(temp.Name), &written, func(name string) error {
				return s.images.GenerateProductDerivatives(s.images.TempPath(temp.Name), name)
			})
			if err != nil {
				return err
			}
			product.ProductImages = append(product.ProductImages, *image)
		}
		return nil
	})
	if err != nil {
		s.discard(written)
		return nil, err
	}

	log.Printf("CreateProduct: product %d saved with %d images", product.ID, len(product.ProductImages))
	return product, nil
}

// storeImage creates the image row, names it after the row id and writes the derivatives.
// The name is recorded in written before generation so a failed write can be cleaned up.
func (s *ProductService) storeImage(
	ctx context.Context,
	imageRepo repositories.ProductImageRepositoryImpl,
	productID uint,
	sortOrder int,
	ext string,
	written *[]string,
	generate func(name string) error,
) (*models.ProductImage, error) {
	image := &models.ProductImage{
		ProductID: productID,
		Image:     "NULL",
		SortOrder: sortOrder,
	}
	if err := imageRepo.Create(ctx, image); err != nil {
		return nil, fmt.Errorf("failed to create product image: %w", err)
	}

	name := ProductImageName(productID, image.ID, s.now(), ext)
	*written = append(*written, name)
	if err := generate(name); err != nil {
		return nil, err
	}

	if err := imageRepo.UpdateImageName(ctx, image.ID, name); err != nil {
		return nil, fmt.Errorf("failed to save product image name: %w", err)
	}
	image.Image = name
	return image, nil
}

func (s *ProductService) discard(names []string) {
	for _, name := range names {
		if err := s.images.DeleteProductDerivatives(name); err != nil {
			log.Printf("discard: failed to remove derivatives %s: %v", name, err)
		}
	}
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, form *ProductForm) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	if err := s.validate(ctx, form, product.ID); err != nil {
		return nil, err
	}
	if err := form.fill(product); err != nil {
		return nil, err
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product %d: %w", id, err)
	}
	log.Printf("UpdateProduct: product %d updated", product.ID)
	return product, nil
}

// DeleteProduct removes the derivative files of every image first, then the image rows,
// then the product row. File removal failures are logged and do not stop the delete.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load product %d: %w", id, err)
	}
	if product == nil {
		return ErrNotFound
	}

	images, err := s.productImageRepo.GetByProductID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to load images of product %d: %w", id, err)
	}
	for _, image := range images {
		if err := s.images.DeleteProductDerivatives(image.Image); err != nil {
			log.Printf("DeleteProduct: failed to delete files of image %d: %v", image.ID, err)
		}
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productImageRepo.WithTx(tx).DeleteByProductID(ctx, id); err != nil {
			return fmt.Errorf("failed to delete images of product %d: %w", id, err)
		}
		if err := s.productRepo.WithTx(tx).Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to delete product %d: %w", id, err)
		}
		return nil
	})
}

// AddProductImage attaches an uploaded file to an existing product.
func (s *ProductService) AddProductImage(ctx context.Context, productID uint, upload ImageUpload) (*models.ProductImage, error) {
	ext := ImageExt(upload.Filename)
	if !IsAllowedImageExt(ext) {
		return nil, ErrUnsupportedImage
	}

	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	if product == nil {
		return nil, ErrNotFound
	}

	var image *models.ProductImage
	var written []string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		imageRepo := s.productImageRepo.WithTx(tx)
		sortOrder, err := imageRepo.CountByProductID(ctx, productID)
		if err != nil {
			return fmt.Errorf("failed to count images of product %d: %w", productID, err)
		}
		image, err = s.storeImage(ctx, imageRepo, productID, int(sortOrder), ext, &written, func(name string) error {
			return s.images.GenerateProductDerivativesFrom(upload.Reader, name)
		})
		return err
	})
	if err != nil {
		s.discard(written)
		return nil, err
	}
	return image, nil
}

func (s *ProductService) DeleteProductImage(ctx context.Context, imageID uint) error {
	image, err := s.productImageRepo.GetByID(ctx, imageID)
	if err != nil {
		return fmt.Errorf("failed to load product image %d: %w", imageID, err)
	}
	if image == nil {
		return ErrNotFound
	}

	if err := s.images.DeleteProductDerivatives(image.Image); err != nil {
		log.Printf("DeleteProductImage: failed to delete files of image %d: %v", image.ID, err)
	}
	if err := s.productImageRepo.Delete(ctx, image.ID); err != nil {
		return fmt.Errorf("failed to delete product image %d: %w", imageID, err)
	}
	return nil
}

func (s *ProductService) ListProducts(ctx context.Context, keyword string, page int) ([]models.Product, helpers.Pagination, error) {
	products, total, err := s.productRepo.SearchPaginated(ctx, keyword, helpers.PerPage, helpers.Offset(page, helpers.PerPage))
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return products, helpers.NewPagination(page, helpers.PerPage, total), nil
}

func (s *ProductService) CountProducts(ctx context.Context) (int64, error) {
	return s.productRepo.Count(ctx)
}

// SearchProducts returns id/title pairs for titles containing term. An empty term gives an
// empty list.
func (s *ProductService) SearchProducts(ctx context.Context, term string) ([]ProductTag, error) {
	tags := []ProductTag{}
	if term == "" {
		return tags, nil
	}

	products, err := s.productRepo.SearchByTitle(ctx, term)
	if err != nil {
		return nil, err
	}
	for _, product := range products {
		tags = append(tags, ProductTag{ID: product.ID, Text: product.Title})
	}
	return tags, nil
}

func (s *ProductService) GetProductForEdit(ctx context.Context, id uint) (*ProductEditData, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}

	subCategories, err := s.subCategoryRepo.GetByCategoryID(ctx, product.CategoryID)
	if err != nil {
		return nil, err
	}

	related, err := s.productRepo.GetByIDs(ctx, product.RelatedProductIDs())
	if err != nil {
		return nil, err
	}

	return &ProductEditData{
		Product:         product,
		SubCategories:   subCategories,
		RelatedProducts: related,
	}, nil
}

// parseQty accepts a whole, unsigned quantity that fits in an int.
func parseQty(s string) (int, error) {
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, fmt.Errorf("invalid qty %q", s)
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid qty %q: %w", s, err)
	}
	return n, nil
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q: %w", s, err)
	}
	return uint(id), nil
}

func parseIDs(values []string) ([]uint, error) {
	ids := make([]uint, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		id, err := parseID(v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
