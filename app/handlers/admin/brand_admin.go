package admin

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
)

const (
	brandsURL          = "/admin/brands"
	brandSaveFailed    = "Failed to save brand. Please try again."
	brandNotFoundFlash = "Brand not found"
)

type AdminBrandPageData struct {
	BasePageData
	Brands     []models.Brand
	Brand      *models.Brand
	IsEdit     bool
	FormAction string
}

func bindBrandForm(r *http.Request) *services.BrandForm {
	return &services.BrandForm{
		Name:   formValue(r, "name"),
		Slug:   formValue(r, "slug"),
		Status: formValue(r, "status"),
	}
}

func (h *AdminHandler) GetBrandsPage(w http.ResponseWriter, r *http.Request) {
	brands, pagination, err := h.brandSvc.List(r.Context(), r.URL.Query().Get("keyword"), helpers.PageFromRequest(r))
	if err != nil {
		log.Printf("GetBrandsPage: failed to list brands: %v", err)
		http.Error(w, "Failed to load brands.", http.StatusInternalServerError)
		return
	}

	data := &AdminBrandPageData{BasePageData: h.baseData(w, r, "Brands")}
	data.Brands = brands
	data.Pagination = pagination
	h.render.HTML(w, http.StatusOK, "admin/brands/index", data)
}

func (h *AdminHandler) CreateBrandPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminBrandPageData{
		BasePageData: h.baseData(w, r, "Create Brand"),
		Brand:        &models.Brand{Status: models.StatusActive},
		FormAction:   brandsURL,
	}
	h.render.HTML(w, http.StatusOK, "admin/brands/form", data)
}

func (h *AdminHandler) StoreBrand(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		log.Printf("StoreBrand: error parsing form: %v", err)
		h.jsonServiceError(w, err, brandSaveFailed)
		return
	}

	brand, err := h.brandSvc.Create(r.Context(), bindBrandForm(r))
	if err != nil {
		log.Printf("StoreBrand: failed to create brand: %v", err)
		h.jsonServiceError(w, err, brandSaveFailed)
		return
	}

	log.Printf("StoreBrand: brand %d created", brand.ID)
	h.flash(w, r, "success", "Brand added successfully")
	h.jsonSaved(w, "Brand added successfully", brandsURL)
}

func (h *AdminHandler) EditBrandPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, brandsURL, "error", brandNotFoundFlash)
		return
	}

	brand, err := h.brandSvc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("EditBrandPage: failed to load brand %d: %v", id, err)
		}
		h.redirectWithFlash(w, r, brandsURL, "error", brandNotFoundFlash)
		return
	}

	data := &AdminBrandPageData{
		BasePageData: h.baseData(w, r, "Edit Brand"),
		Brand:        brand,
		IsEdit:       true,
		FormAction:   fmt.Sprintf("%s/%d", brandsURL, id),
	}
	h.render.HTML(w, http.StatusOK, "admin/brands/form", data)
}

func (h *AdminHandler) UpdateBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", brandNotFoundFlash)
		h.jsonNotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		log.Printf("UpdateBrand: error parsing form: %v", err)
		h.jsonServiceError(w, err, brandSaveFailed)
		return
	}

	if _, err := h.brandSvc.Update(r.Context(), id, bindBrandForm(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", brandNotFoundFlash)
		} else {
			log.Printf("UpdateBrand: failed to update brand %d: %v", id, err)
		}
		h.jsonServiceError(w, err, brandSaveFailed)
		return
	}

	h.flash(w, r, "success", "Brand updated successfully")
	h.jsonSaved(w, "Brand updated successfully", brandsURL)
}

func (h *AdminHandler) DeleteBrand(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", brandNotFoundFlash)
		h.jsonNotFound(w)
		return
	}

	if err := h.brandSvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", brandNotFoundFlash)
		} else {
			log.Printf("DeleteBrand: failed to delete brand %d: %v", id, err)
		}
		h.jsonServiceError(w, err, "Failed to delete brand. Please try again.")
		return
	}

	h.flash(w, r, "success", "Brand deleted successfully")
	h.jsonSaved(w, "Brand deleted successfully", brandsURL)
}
