package seeders

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/Rakhulsr/go-catalog-admin/app/db/fakers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"gorm.io/gorm"
)

const (
	seedCategories             = 4
	seedSubCategoriesPerParent = 3
	seedBrands                 = 5
	seedProducts               = 30
)

// DBSeed fills an empty catalog with fake categories, brands and products in one transaction.
func DBSeed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var subCategories []models.SubCategory
		for i := 0; i < seedCategories; i++ {
			category := fakers.CategoryFaker()
			if err := tx.Create(category).Error; err != nil {
				return fmt.Errorf("failed to seed category: %w", err)
			}
			for j := 0; j < seedSubCategoriesPerParent; j++ {
				subCategory := fakers.SubCategoryFaker(category.ID)
				if err := tx.Create(subCategory).Error; err != nil {
					return fmt.Errorf("failed to seed sub category: %w", err)
				}
				subCategories = append(subCategories, *subCategory)
			}
		}

		brandIDs := make([]uint, 0, seedBrands)
		for i := 0; i < seedBrands; i++ {
			brand := fakers.BrandFaker()
			if err := tx.Create(brand).Error; err != nil {
				return fmt.Errorf("failed to seed brand: %w", err)
			}
			brandIDs = append(brandIDs, brand.ID)
		}

		for i := 0; i < seedProducts; i++ {
			subCategory := subCategories[rand.Intn(len(subCategories))]
			brandID := brandIDs[rand.Intn(len(brandIDs))]
			product := fakers.ProductFaker(subCategory.CategoryID, subCategory.ID, &brandID)
			if err := tx.Omit("ProductImages", "Category").Create(product).Error; err != nil {
				return fmt.Errorf("failed to seed product: %w", err)
			}
		}

		log.Printf("DBSeed: seeded %d categories, %d sub categories, %d brands, %d products",
			seedCategories, len(subCategories), seedBrands, seedProducts)
		return nil
	})
}
