package admin

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
)

const (
	productsURL           = "/admin/products"
	productSaveFailed     = "Failed to save product. Please try again."
	productNotFoundFlash  = "Product not found"
	xlsxContentType       = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	productExportFilename = "products-%s.xlsx"
)

type AdminProductPageData struct {
	BasePageData
	Products        []models.Product
	Product         *models.Product
	Categories      []models.Category
	SubCategories   []models.SubCategory
	Brands          []models.Brand
	RelatedProducts []models.Product
	IsEdit          bool
	FormAction      string
}

func bindProductForm(r *http.Request) *services.ProductForm {
	return &services.ProductForm{
		Title:            formValue(r, "title"),
		Slug:             formValue(r, "slug"),
		ShortDescription: formValue(r, "short_description"),
		Description:      formValue(r, "description"),
		ShippingReturns:  formValue(r, "shipping_returns"),
		Price:            formValue(r, "price"),
		ComparePrice:     formValue(r, "compare_price"),
		Category:         formValue(r, "category"),
		SubCategory:      formValue(r, "sub_category"),
		Brand:            formValue(r, "brand"),
		IsFeatured:       formValue(r, "is_featured"),
		Sku:              formValue(r, "sku"),
		Barcode:          formValue(r, "barcode"),
		TrackQty:         formValue(r, "track_qty"),
		Qty:              formValue(r, "qty"),
		Status:           formValue(r, "status"),
		RelatedProducts:  formValues(r, "related_products"),
		ImageArray:       formValues(r, "image_array"),
	}
}

func (h *AdminHandler) GetProductsPage(w http.ResponseWriter, r *http.Request) {
	keyword := r.URL.Query().Get("keyword")
	page := helpers.PageFromRequest(r)

	products, pagination, err := h.productSvc.ListProducts(r.Context(), keyword, page)
	if err != nil {
		log.Printf("GetProductsPage: failed to list products: %v", err)
		if wantsJSON(r) {
			h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
				"status":  false,
				"message": "Failed to load products.",
			})
			return
		}
		http.Error(w, "Failed to load products.", http.StatusInternalServerError)
		return
	}

	if wantsJSON(r) {
		h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"status":   true,
			"products": products,
			"total":    pagination.Total,
			"page":     pagination.Page,
			"per_page": pagination.PerPage,
		})
		return
	}

	data := &AdminProductPageData{BasePageData: h.baseData(w, r, "Products")}
	data.Products = products
	data.Pagination = pagination
	h.render.HTML(w, http.StatusOK, "admin/products/index", data)
}

func (h *AdminHandler) CreateProductPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminProductPageData{
		BasePageData: h.baseData(w, r, "Create Product"),
		Product: &models.Product{
			IsFeatured: models.No,
			TrackQty:   models.Yes,
			Status:     models.StatusActive,
		},
		FormAction: productsURL,
	}
	h.loadProductOptions(r, data)
	h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) StoreProduct(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		log.Printf("StoreProduct: error parsing form: %v", err)
		h.jsonServiceError(w, err, productSaveFailed)
		return
	}

	form := bindProductForm(r)
	log.Printf("StoreProduct: request data: %+v", *form)

	product, err := h.productSvc.CreateProduct(r.Context(), form)
	if err != nil {
		log.Printf("StoreProduct: failed to create product: %v", err)
		h.jsonServiceError(w, err, productSaveFailed)
		return
	}

	log.Printf("StoreProduct: product %d created", product.ID)
	h.flash(w, r, "success", "Product added successfully")
	h.jsonSaved(w, "Product added successfully", productsURL)
}

func (h *AdminHandler) EditProductPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, productsURL, "error", productNotFoundFlash)
		return
	}

	edit, err := h.productSvc.GetProductForEdit(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("EditProductPage: failed to load product %d: %v", id, err)
		}
		h.redirectWithFlash(w, r, productsURL, "error", productNotFoundFlash)
		return
	}

	data := &AdminProductPageData{
		BasePageData:    h.baseData(w, r, "Edit Product"),
		Product:         edit.Product,
		SubCategories:   edit.SubCategories,
		RelatedProducts: edit.RelatedProducts,
		IsEdit:          true,
		FormAction:      fmt.Sprintf("%s/%d", productsURL, id),
	}
	h.loadProductOptions(r, data)
	h.render.HTML(w, http.StatusOK, "admin/products/form", data)
}

func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", productNotFoundFlash)
		h.jsonNotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		log.Printf("UpdateProduct: error parsing form: %v", err)
		h.jsonServiceError(w, err, productSaveFailed)
		return
	}

	form := bindProductForm(r)
	log.Printf("UpdateProduct: request data for product %d: %+v", id, *form)

	if _, err := h.productSvc.UpdateProduct(r.Context(), id, form); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", productNotFoundFlash)
		} else {
			log.Printf("UpdateProduct: failed to update product %d: %v", id, err)
		}
		h.jsonServiceError(w, err, productSaveFailed)
		return
	}

	h.flash(w, r, "success", "Product updated successfully")
	h.jsonSaved(w, "Product updated successfully", productsURL)
}

func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", productNotFoundFlash)
		h.jsonNotFound(w)
		return
	}

	if err := h.productSvc.DeleteProduct(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", productNotFoundFlash)
		} else {
			log.Printf("DeleteProduct: failed to delete product %d: %v", id, err)
		}
		h.jsonServiceError(w, err, "Failed to delete product. Please try again.")
		return
	}

	h.flash(w, r, "success", "Product deleted successfully")
	h.jsonSaved(w, "Product deleted successfully", productsURL)
}

// GetProducts feeds the related products autocomplete.
func (h *AdminHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	tags, err := h.productSvc.SearchProducts(r.Context(), r.URL.Query().Get("term"))
	if err != nil {
		log.Printf("GetProducts: failed to search products: %v", err)
		tags = []services.ProductTag{}
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"tags":   tags,
		"status": true,
	})
}

func (h *AdminHandler) ExportProducts(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := h.exportSvc.WriteProducts(r.Context(), &buf); err != nil {
		log.Printf("ExportProducts: failed to export products: %v", err)
		h.redirectWithFlash(w, r, productsURL, "error", "Failed to export products.")
		return
	}

	filename := fmt.Sprintf(productExportFilename, time.Now().Format("20060102-150405"))
	w.Header().Set("Content-Type", xlsxContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Printf("ExportProducts: failed to write response: %v", err)
	}
}

func (h *AdminHandler) loadProductOptions(r *http.Request, data *AdminProductPageData) {
	categories, err := h.categorySvc.All(r.Context())
	if err != nil {
		log.Printf("loadProductOptions: failed to load categories: %v", err)
	}
	data.Categories = categories

	brands, err := h.brandSvc.All(r.Context())
	if err != nil {
		log.Printf("loadProductOptions: failed to load brands: %v", err)
	}
	data.Brands = brands
}
