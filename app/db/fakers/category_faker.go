package fakers

import (
	"strings"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

func uniqueName() (string, string) {
	name := faker.Word()
	name = strings.ToUpper(name[:1]) + name[1:]
	return name, slug.Make(name + "-" + uuid.NewString()[:4])
}

func CategoryFaker() *models.Category {
	name, s := uniqueName()
	return &models.Category{
		Name:     name,
		Slug:     s,
		Status:   models.StatusActive,
		ShowHome: models.Yes,
	}
}

func SubCategoryFaker(categoryID uint) *models.SubCategory {
	name, s := uniqueName()
	return &models.SubCategory{
		CategoryID: categoryID,
		Name:       name,
		Slug:       s,
		Status:     models.StatusActive,
		ShowHome:   models.No,
	}
}

func BrandFaker() *models.Brand {
	name, s := uniqueName()
	return &models.Brand{
		Name:   name,
		Slug:   s,
		Status: models.StatusActive,
	}
}
