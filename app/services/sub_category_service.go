package services

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/go-playground/validator/v10"
)

type SubCategoryForm struct {
	Category string `form:"category" validate:"required,number"`
	Name     string `form:"name" validate:"required"`
	Slug     string `form:"slug" validate:"required"`
	Status   string `form:"status" validate:"required,oneof=0 1"`
	ShowHome string `form:"showHome" validate:"omitempty,oneof=Yes No"`
}

type SubCategoryService struct {
	validator       *validator.Validate
	subCategoryRepo repositories.SubCategoryRepositoryImpl
	categoryRepo    repositories.CategoryRepositoryImpl
}

func NewSubCategoryService(
	validator *validator.Validate,
	subCategoryRepo repositories.SubCategoryRepositoryImpl,
	categoryRepo repositories.CategoryRepositoryImpl,
) *SubCategoryService {
	return &SubCategoryService{
		validator:       validator,
		subCategoryRepo: subCategoryRepo,
		categoryRepo:    categoryRepo,
	}
}

func (s *SubCategoryService) validate(ctx context.Context, form *SubCategoryForm, excludeID uint) (uint, error) {
	fields, err := validateStruct(s.validator, form)
	if err != nil {
		return 0, err
	}

	var categoryID uint
	checkID(fields, "category", form.Category)
	if !fields.has("category") {
		categoryID, _ = parseID(form.Category)
		category, err := s.categoryRepo.GetByID(ctx, categoryID)
		if err != nil {
			return 0, fmt.Errorf("failed to check category: %w", err)
		}
		if category == nil {
			fields.add("category", "oneof")
		}
	}

	if err := checkUnique(ctx, fields, "slug", form.Slug, excludeID, s.subCategoryRepo.SlugExists); err != nil {
		return 0, fmt.Errorf("failed to check slug: %w", err)
	}
	return categoryID, fields.err()
}

func (s *SubCategoryService) fill(sc *models.SubCategory, form *SubCategoryForm, categoryID uint) {
	sc.CategoryID = categoryID
	sc.Name = form.Name
	sc.Slug = form.Slug
	sc.Status, _ = strconv.Atoi(form.Status)
	sc.ShowHome = models.No
	if form.ShowHome != "" {
		sc.ShowHome = form.ShowHome
	}
}

func (s *SubCategoryService) List(ctx context.Context, keyword string, page int) ([]models.SubCategory, helpers.Pagination, error) {
	subCategories, total, err := s.subCategoryRepo.SearchPaginated(ctx, keyword, helpers.PerPage, helpers.Offset(page, helpers.PerPage))
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return subCategories, helpers.NewPagination(page, helpers.PerPage, total), nil
}

// ForCategory lists the sub-categories used to fill the dependent select on the product form.
func (s *SubCategoryService) ForCategory(ctx context.Context, categoryID uint) ([]models.SubCategory, error) {
	return s.subCategoryRepo.GetByCategoryID(ctx, categoryID)
}

func (s *SubCategoryService) Get(ctx context.Context, id uint) (*models.SubCategory, error) {
	subCategory, err := s.subCategoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if subCategory == nil {
		return nil, ErrNotFound
	}
	return subCategory, nil
}

func (s *SubCategoryService) Create(ctx context.Context, form *SubCategoryForm) (*models.SubCategory, error) {
	categoryID, err := s.validate(ctx, form, 0)
	if err != nil {
		return nil, err
	}

	subCategory := &models.SubCategory{}
	s.fill(subCategory, form, categoryID)
	if err := s.subCategoryRepo.Create(ctx, subCategory); err != nil {
		return nil, fmt.Errorf("failed to create sub category: %w", err)
	}
	return subCategory, nil
}

func (s *SubCategoryService) Update(ctx context.Context, id uint, form *SubCategoryForm) (*models.SubCategory, error) {
	subCategory, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	categoryID, err := s.validate(ctx, form, subCategory.ID)
	if err != nil {
		return nil, err
	}

	s.fill(subCategory, form, categoryID)
	subCategory.Category = nil
	if err := s.subCategoryRepo.Update(ctx, subCategory); err != nil {
		return nil, fmt.Errorf("failed to update sub category %d: %w", id, err)
	}
	return subCategory, nil
}

func (s *SubCategoryService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.subCategoryRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete sub category %d: %w", id, err)
	}
	return nil
}
