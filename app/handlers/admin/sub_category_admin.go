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
	subCategoriesURL         = "/admin/sub-categories"
	subCategorySaveFailed    = "Failed to save sub category. Please try again."
	subCategoryNotFoundFlash = "Sub category not found"
)

type AdminSubCategoryPageData struct {
	BasePageData
	SubCategories []models.SubCategory
	SubCategory   *models.SubCategory
	Categories    []models.Category
	IsEdit        bool
	FormAction    string
}

func bindSubCategoryForm(r *http.Request) *services.SubCategoryForm {
	return &services.SubCategoryForm{
		Category: formValue(r, "category"),
		Name:     formValue(r, "name"),
		Slug:     formValue(r, "slug"),
		Status:   formValue(r, "status"),
		ShowHome: formValue(r, "showHome"),
	}
}

func (h *AdminHandler) GetSubCategoriesPage(w http.ResponseWriter, r *http.Request) {
	subCategories, pagination, err := h.subCategorySvc.List(r.Context(), r.URL.Query().Get("keyword"), helpers.PageFromRequest(r))
	if err != nil {
		log.Printf("GetSubCategoriesPage: failed to list sub categories: %v", err)
		http.Error(w, "Failed to load sub categories.", http.StatusInternalServerError)
		return
	}

	data := &AdminSubCategoryPageData{BasePageData: h.baseData(w, r, "Sub Categories")}
	data.SubCategories = subCategories
	data.Pagination = pagination
	h.render.HTML(w, http.StatusOK, "admin/sub_categories/index", data)
}

func (h *AdminHandler) CreateSubCategoryPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminSubCategoryPageData{
		BasePageData: h.baseData(w, r, "Create Sub Category"),
		SubCategory:  &models.SubCategory{Status: models.StatusActive, ShowHome: models.No},
		FormAction:   subCategoriesURL,
	}
	h.loadCategoryOptions(r, data)
	h.render.HTML(w, http.StatusOK, "admin/sub_categories/form", data)
}

func (h *AdminHandler) StoreSubCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		log.Printf("StoreSubCategory: error parsing form: %v", err)
		h.jsonServiceError(w, err, subCategorySaveFailed)
		return
	}

	subCategory, err := h.subCategorySvc.Create(r.Context(), bindSubCategoryForm(r))
	if err != nil {
		log.Printf("StoreSubCategory: failed to create sub category: %v", err)
		h.jsonServiceError(w, err, subCategorySaveFailed)
		return
	}

	log.Printf("StoreSubCategory: sub category %d created", subCategory.ID)
	h.flash(w, r, "success", "Sub category added successfully")
	h.jsonSaved(w, "Sub category added successfully", subCategoriesURL)
}

func (h *AdminHandler) EditSubCategoryPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, subCategoriesURL, "error", subCategoryNotFoundFlash)
		return
	}

	subCategory, err := h.subCategorySvc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("EditSubCategoryPage: failed to load sub category %d: %v", id, err)
		}
		h.redirectWithFlash(w, r, subCategoriesURL, "error", subCategoryNotFoundFlash)
		return
	}

	data := &AdminSubCategoryPageData{
		BasePageData: h.baseData(w, r, "Edit Sub Category"),
		SubCategory:  subCategory,
		IsEdit:       true,
		FormAction:   fmt.Sprintf("%s/%d", subCategoriesURL, id),
	}
	h.loadCategoryOptions(r, data)
	h.render.HTML(w, http.StatusOK, "admin/sub_categories/form", data)
}

func (h *AdminHandler) UpdateSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", subCategoryNotFoundFlash)
		h.jsonNotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		log.Printf("UpdateSubCategory: error parsing form: %v", err)
		h.jsonServiceError(w, err, subCategorySaveFailed)
		return
	}

	if _, err := h.subCategorySvc.Update(r.Context(), id, bindSubCategoryForm(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", subCategoryNotFoundFlash)
		} else {
			log.Printf("UpdateSubCategory: failed to update sub category %d: %v", id, err)
		}
		h.jsonServiceError(w, err, subCategorySaveFailed)
		return
	}

	h.flash(w, r, "success", "Sub category updated successfully")
	h.jsonSaved(w, "Sub category updated successfully", subCategoriesURL)
}

func (h *AdminHandler) DeleteSubCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", subCategoryNotFoundFlash)
		h.jsonNotFound(w)
		return
	}

	if err := h.subCategorySvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", subCategoryNotFoundFlash)
		} else {
			log.Printf("DeleteSubCategory: failed to delete sub category %d: %v", id, err)
		}
		h.jsonServiceError(w, err, "Failed to delete sub category. Please try again.")
		return
	}

	h.flash(w, r, "success", "Sub category deleted successfully")
	h.jsonSaved(w, "Sub category deleted successfully", subCategoriesURL)
}

func (h *AdminHandler) loadCategoryOptions(r *http.Request, data *AdminSubCategoryPageData) {
	categories, err := h.categorySvc.All(r.Context())
	if err != nil {
		log.Printf("loadCategoryOptions: failed to load categories: %v", err)
	}
	data.Categories = categories
}
