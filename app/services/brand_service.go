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

type BrandForm struct {
	Name   string `form:"name" validate:"required"`
	Slug   string `form:"slug" validate:"required"`
	Status string `form:"status" validate:"required,oneof=0 1"`
}

type BrandService struct {
	validator *validator.Validate
	brandRepo repositories.BrandRepositoryImpl
}

func NewBrandService(validator *validator.Validate, brandRepo repositories.BrandRepositoryImpl) *BrandService {
	return &BrandService{validator: validator, brandRepo: brandRepo}
}

func (s *BrandService) validate(ctx context.Context, form *BrandForm, excludeID uint) error {
	fields, err := validateStruct(s.validator, form)
	if err != nil {
		return err
	}
	if err := checkUnique(ctx, fields, "slug", form.Slug, excludeID, s.brandRepo.SlugExists); err != nil {
		return fmt.Errorf("failed to check slug: %w", err)
	}
	return fields.err()
}

func (s *BrandService) List(ctx context.Context, keyword string, page int) ([]models.Brand, helpers.Pagination, error) {
	brands, total, err := s.brandRepo.SearchPaginated(ctx, keyword, helpers.PerPage, helpers.Offset(page, helpers.PerPage))
	if err != nil {
		return nil, helpers.Pagination{}, err
	}
	return brands, helpers.NewPagination(page, helpers.PerPage, total), nil
}

func (s *BrandService) All(ctx context.Context) ([]models.Brand, error) {
	return s.brandRepo.GetAll(ctx)
}

func (s *BrandService) Get(ctx context.Context, id uint) (*models.Brand, error) {
	brand, err := s.brandRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, ErrNotFound
	}
	return brand, nil
}

func (s *BrandService) Create(ctx context.Context, form *BrandForm) (*models.Brand, error) {
	if err := s.validate(ctx, form, 0); err != nil {
		return nil, err
	}

	status, _ := strconv.Atoi(form.Status)
	brand := &models.Brand{Name: form.Name, Slug: form.Slug, Status: status}
	if err := s.brandRepo.Create(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to create brand: %w", err)
	}
	return brand, nil
}

func (s *BrandService) Update(ctx context.Context, id uint, form *BrandForm) (*models.Brand, error) {
	brand, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, form, brand.ID); err != nil {
		return nil, err
	}

	brand.Name = form.Name
	brand.Slug = form.Slug
	brand.Status, _ = strconv.Atoi(form.Status)
	if err := s.brandRepo.Update(ctx, brand); err != nil {
		return nil, fmt.Errorf("failed to update brand %d: %w", id, err)
	}
	return brand, nil
}

func (s *BrandService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.brandRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete brand %d: %w", id, err)
	}
	return nil
}
