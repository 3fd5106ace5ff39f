package migrations

import (
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{}, &models.Category{}, &models.SubCategory{}, &models.Brand{}, &models.Product{}, &models.ProductImage{}, &models.TempImage{})
}
