package fakers

import (
	"math"
	"math/rand"
	"strings"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/go-faker/faker/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

func ProductFaker(categoryID, subCategoryID uint, brandID *uint) *models.Product {
	title := strings.TrimSuffix(faker.Sentence(), ".")
	suffix := uuid.NewString()[:6]

	product := &models.Product{
		Title:            title,
		Slug:             slug.Make(title + "-" + suffix),
		ShortDescription: faker.Sentence(),
		Description:      faker.Paragraph(),
		ShippingReturns:  faker.Paragraph(),
		Price:            decimal.NewFromFloat(fakePrice()),
		CategoryID:       categoryID,
		SubCategoryID:    subCategoryID,
		BrandID:          brandID,
		IsFeatured:       models.No,
		Sku:              strings.ToUpper("SKU-" + suffix),
		Barcode:          faker.UUIDDigit(),
		TrackQty:         models.No,
		Status:           models.StatusActive,
	}

	if rand.Intn(2) == 0 {
		product.IsFeatured = models.Yes
	}
	if rand.Intn(3) > 0 {
		qty := rand.Intn(50) + 1
		product.TrackQty = models.Yes
		product.Qty = &qty
	}
	if rand.Intn(2) == 0 {
		product.ComparePrice = decimal.NewNullDecimal(product.Price.Mul(decimal.NewFromFloat(1.2)).Round(2))
	}

	return product
}

func fakePrice() float64 {
	return precision(rand.Float64()*math.Pow10(rand.Intn(4)+1), 2)
}

func precision(val float64, pre int) float64 {
	a := math.Pow10(pre)
	return float64(int(val*a)) / a
}
