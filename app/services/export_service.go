package services

import (
	"context"
	"fmt"
	"io"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/format"
	"github.com/tealeg/xlsx"
)

var exportHeaders = []string{
	"ID", "Title", "Slug", "SKU", "Barcode", "Price", "Compare Price",
	"Category ID", "Sub Category ID", "Brand ID", "Featured", "Track Qty", "Qty",
	"Status", "Related Products", "Images", "Created At", "Updated At",
}

type ExportService struct {
	productRepo repositories.ProductRepositoryImpl
	prices      *format.PriceFormatter
}

func NewExportService(productRepo repositories.ProductRepositoryImpl, prices *format.PriceFormatter) *ExportService {
	return &ExportService{productRepo: productRepo, prices: prices}
}

// WriteProducts writes every product as one row of a "Products" sheet.
func (s *ExportService) WriteProducts(ctx context.Context, w io.Writer) error {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch products: %w", err)
	}

	file, err := s.productsSheet(products)
	if err != nil {
		return err
	}
	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write excel file: %w", err)
	}
	return nil
}

func (s *ExportService) productsSheet(products []models.Product) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		return nil, fmt.Errorf("failed to create excel sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range exportHeaders {
		headerRow.AddCell().SetValue(h)
	}

	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetInt(int(p.ID))
		row.AddCell().SetString(p.Title)
		row.AddCell().SetString(p.Slug)
		row.AddCell().SetString(p.Sku)
		row.AddCell().SetString(p.Barcode)
		row.AddCell().SetString(s.prices.Format(p.Price))
		row.AddCell().SetString(s.prices.FormatNull(p.ComparePrice))
		row.AddCell().SetInt(int(p.CategoryID))
		row.AddCell().SetInt(int(p.SubCategoryID))
		if p.BrandID != nil {
			row.AddCell().SetInt(int(*p.BrandID))
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetString(p.IsFeatured)
		row.AddCell().SetString(p.TrackQty)
		if p.Qty != nil {
			row.AddCell().SetInt(*p.Qty)
		} else {
			row.AddCell().SetString("")
		}
		row.AddCell().SetInt(p.Status)
		row.AddCell().SetString(p.RelatedProducts)
		row.AddCell().SetInt(len(p.ProductImages))
		row.AddCell().SetString(p.CreatedAt.Format("2006-01-02 15:04:05"))
		row.AddCell().SetString(p.UpdatedAt.Format("2006-01-02 15:04:05"))
	}
	return file, nil
}
