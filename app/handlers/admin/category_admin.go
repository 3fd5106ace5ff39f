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
	categoriesURL         = "/admin/categories"
	categorySaveFailed    = "Failed to save category. Please try again."
	categoryNotFoundFlash = "Category not found"
)

type AdminCategoryPageData struct {
	BasePageData
	Categories []models.Category
	Category   *models.Category
	IsEdit     bool
	FormAction string
}

func bindCategoryForm(r *http.Request) *services.CategoryForm {
	return &services.CategoryForm{
		Name:     formValue(r, "name"),
		Slug:     formValue(r, "slug"),
		ImageID:  formValue(r, "image_id"),
		Status:   formValue(r, "status"),
		ShowHome: formValue(r, "showHome"),
	}
}

func (h *AdminHandler) GetCategoriesPage(w http.ResponseWriter, r *http.Request) {
	categories, pagination, err := h.categorySvc.List(r.Context(), r.URL.Query().Get("keyword"), helpers.PageFromRequest(r))
	if err != nil {
		log.Printf("GetCategoriesPage: failed to list categories: %v", err)
		http.Error(w, "Failed to load categories.", http.StatusInternalServerError)
		return
	}

	data := &AdminCategoryPageData{BasePageData: h.baseData(w, r, "Categories")}
	data.Categories = categories
	data.Pagination = pagination
	h.render.HTML(w, http.StatusOK, "admin/categories/index", data)
}

func (h *AdminHandler) CreateCategoryPage(w http.ResponseWriter, r *http.Request) {
	data := &AdminCategoryPageData{
		BasePageData: h.baseData(w, r, "Create Category"),
		Category:     &models.Category{Status: models.StatusActive, ShowHome: models.No},
		FormAction:   categoriesURL,
	}
	h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) StoreCategory(w http.ResponseWriter, r *http.Request) {
	if err := parseForm(r); err != nil {
		log.Printf("StoreCategory: error parsing form: %v", err)
		h.jsonServiceError(w, err, categorySaveFailed)
		return
	}

	category, err := h.categorySvc.Create(r.Context(), bindCategoryForm(r))
	if err != nil {
		log.Printf("StoreCategory: failed to create category: %v", err)
		h.jsonServiceError(w, err, categorySaveFailed)
		return
	}

	log.Printf("StoreCategory: category %d created", category.ID)
	h.flash(w, r, "success", "Category added successfully")
	h.jsonSaved(w, "Category added successfully", categoriesURL)
}

func (h *AdminHandler) EditCategoryPage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.redirectWithFlash(w, r, categoriesURL, "error", categoryNotFoundFlash)
		return
	}

	category, err := h.categorySvc.Get(r.Context(), id)
	if err != nil {
		if !errors.Is(err, services.ErrNotFound) {
			log.Printf("EditCategoryPage: failed to load category %d: %v", id, err)
		}
		h.redirectWithFlash(w, r, categoriesURL, "error", categoryNotFoundFlash)
		return
	}

	data := &AdminCategoryPageData{
		BasePageData: h.baseData(w, r, "Edit Category"),
		Category:     category,
		IsEdit:       true,
		FormAction:   fmt.Sprintf("%s/%d", categoriesURL, id),
	}
	h.render.HTML(w, http.StatusOK, "admin/categories/form", data)
}

func (h *AdminHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", categoryNotFoundFlash)
		h.jsonNotFound(w)
		return
	}
	if err := parseForm(r); err != nil {
		log.Printf("UpdateCategory: error parsing form: %v", err)
		h.jsonServiceError(w, err, categorySaveFailed)
		return
	}

	if _, err := h.categorySvc.Update(r.Context(), id, bindCategoryForm(r)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", categoryNotFoundFlash)
		} else {
			log.Printf("UpdateCategory: failed to update category %d: %v", id, err)
		}
		h.jsonServiceError(w, err, categorySaveFailed)
		return
	}

	h.flash(w, r, "success", "Category updated successfully")
	h.jsonSaved(w, "Category updated successfully", categoriesURL)
}

func (h *AdminHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		h.flash(w, r, "error", categoryNotFoundFlash)
		h.jsonNotFound(w)
		return
	}

	if err := h.categorySvc.Delete(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.flash(w, r, "error", categoryNotFoundFlash)
		} else {
			log.Printf("DeleteCategory: failed to delete category %d: %v", id, err)
		}
		h.jsonServiceError(w, err, "Failed to delete category. Please try again.")
		return
	}

	h.flash(w, r, "success", "Category deleted successfully")
	h.jsonSaved(w, "Category deleted successfully", categoriesURL)
}
