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
	"gorm.io/gorm"
)

type CategoryForm struct {
	Name     string `form:"name" validate:"required"`
	Slug     string `form:"slug" validate:"required"`
	ImageID  string `form:"image_id" validate:"omitempty,number"`
	Status   string `form:"status" validate:"required,oneof=0 1"`
	ShowHome string `form:"showHome" validate:"omitempty,oneof=Yes No"`
}

func (f *CategoryForm) fill(c *models.Category) {
	c.Name = f.Name
	c.Slug = f.Slug
	c.Status, _ = strconv.Atoi(f.Status)
	c.ShowHome = models.No
	if f.ShowHome != "" {
		c.ShowHome = f.ShowHome
	}
}

type CategoryService struct {
	db            *gorm.DB
	validator     *validator.Validate
	categoryRepo  repositories.CategoryRepositoryImpl
	tempImageRepo repositories.TempImageRepositoryImpl
	images        *ImageService
	now           func() time.Time
}

func NewCategoryService(
	db *gorm.DB,
	validator *validator.Validate,
	categoryRepo repositories.CategoryRepositoryImpl,
	tempImageRepo repositories.TempImageRepositoryImpl,
	images *ImageService,
) *CategoryService {
	return &CategoryService{
		db:            db,
		validator:     validator,
		categoryRepo:  categoryRepo,
		tempImageRepo: tempImageRepo,
		images:        images,
		now:           time.Now,
	}
}

func (s *CategoryService) validate(ctx context.Context, form *CategoryForm, excludeID uint) error {
	fields, err := validateStruct(s.validator, form)
	if err != nil {
		return err
	}
	checkID(fields, "image_id", form.ImageID)
	if err := checkUnique(ctx, fields, "slug", form.Slug, excludeID, s.categoryRepo.SlugExists); err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	return fields.err()
}

func (s *CategoryService) List(ctx context.Context, keyword string, page int) ([]models.Category, helpers.Pagination, error) {
	categories, total, err := s.categoryRepo.SearchPaginated(ctx, keyword, helpers.PerPage, helpers.Offset(page, helpers.PerPage))
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return categories, helpers.NewPagination(page, helpers.PerPage, total), nil
}

func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	return s.categoryRepo.GetAll(ctx)
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, ErrNotFound
	}
	return category, nil
}

func (s *CategoryService) Create(ctx context.Context, form *CategoryForm) (*models.Category, error) {
	if err := s.validate(ctx, form, 0); err != nil {
		return nil, err
	}

	temp, err := s.resolveTemp(ctx, form.ImageID)
	if err != nil {
		return nil, err
	}

	category := &models.Category{}
	form.fill(category)

	var written string
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.categoryRepo.WithTx(tx)
		if err := repo.Create(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
		if temp == nil {
			return nil
		}

		name := fmt.Sprintf("%d.%s", category.ID, ImageExt(temp.Name))
		written = name
		if err := s.images.SaveCategoryImage(temp.Name, name); err != nil {
			return err
		}
		category.Image = name
		return repo.Update(ctx, category)
	})
	if err != nil {
		_ = s.images.DeleteCategoryImage(written)
		return nil, err
	}

	log.Printf("CategoryService.Create: category %d saved", category.ID)
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, form *CategoryForm) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, form, category.ID); err != nil {
		return nil, err
	}

	temp, err := s.resolveTemp(ctx, form.ImageID)
	if err != nil {
		return nil, err
	}

	oldImage := category.Image
	form.fill(category)

	var written string
	if temp != nil {
		name := fmt.Sprintf("%d-%d.%s", category.ID, s.now().Unix(), ImageExt(temp.Name))
		written = name
		if err := s.images.SaveCategoryImage(temp.Name, name); err != nil {
			_ = s.images.DeleteCategoryImage(written)
			return nil, err
		}
		category.Image = name
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		_ = s.images.DeleteCategoryImage(written)
		return nil, fmt.Errorf("failed to update category %d: %w", id, err)
	}

	if written != "" && oldImage != "" && oldImage != written {
		if err := s.images.DeleteCategoryImage(oldImage); err != nil {
			log.Printf("CategoryService.Update: failed to delete old image %s: %v", oldImage, err)
		}
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	if err := s.images.DeleteCategoryImage(category.Image); err != nil {
		log.Printf("CategoryService.Delete: failed to delete image %s: %v", category.Image, err)
	}
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete category %d: %w", id, err)
	}
	return nil
}

func (s *CategoryService) resolveTemp(ctx context.Context, imageID string) (*models.TempImage, error) {
	if imageID == "" {
		return nil, nil
	}
	id, err := parseID(imageID)
	if err != nil {
		return nil, err
	}
	temp, err := s.tempImageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load temp image %d: %w", id, err)
	}
	if temp == nil {
		return nil, fmt.Errorf("temp image %d not found", id)
	}
	return temp, nil
}
