package admin

import (
	"errors"
	"log"
	"net/http"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
)

const imageFormField = "image"

// readUpload opens the multipart "image" file. The caller closes it.
func readUpload(r *http.Request) (services.ImageUpload, func() error, error) {
	file, header, err := r.FormFile(imageFormField)
	if err != nil {
		return services.ImageUpload{}, nil, err
	}
	return services.ImageUpload{Filename: header.Filename, Reader: file}, file.Close, nil
}

func (h *AdminHandler) jsonFailure(w http.ResponseWriter, status int, message string) {
	h.render.JSON(w, status, map[string]interface{}{
		"status":  false,
		"message": message,
	})
}

// UpdateProductImage attaches one more image to an existing product from the edit page.
func (h *AdminHandler) UpdateProductImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("UpdateProductImage: error parsing multipart form: %v", err)
		h.jsonFailure(w, http.StatusBadRequest, "The image field is required.")
		return
	}

	productID, ok := parseUint(formValue(r, "product_id"))
	if !ok {
		h.jsonFailure(w, http.StatusOK, "The product id field is required.")
		return
	}

	upload, closeFile, err := readUpload(r)
	if err != nil {
		h.jsonFailure(w, http.StatusOK, "The image field is required.")
		return
	}
	defer closeFile()

	image, err := h.productSvc.AddProductImage(r.Context(), productID, upload)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			h.jsonNotFound(w)
		case errors.Is(err, services.ErrUnsupportedImage):
			h.jsonFailure(w, http.StatusOK, err.Error())
		default:
			log.Printf("UpdateProductImage: failed to add image to product %d: %v", productID, err)
			h.jsonFailure(w, http.StatusInternalServerError, "Failed to save image. Please try again.")
		}
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    true,
		"image_id":  image.ID,
		"ImagePath": services.SmallURL(image.Image),
		"message":   "Image saved successfully.",
	})
}

func (h *AdminHandler) DeleteProductImage(w http.ResponseWriter, r *http.Request) {
	id, ok := parseUint(r.URL.Query().Get("id"))
	if !ok {
		h.jsonFailure(w, http.StatusOK, "Image not found.")
		return
	}

	if err := h.productSvc.DeleteProductImage(r.Context(), id); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			h.jsonFailure(w, http.StatusOK, "Image not found.")
			return
		}
		log.Printf("DeleteProductImage: failed to delete image %d: %v", id, err)
		h.jsonFailure(w, http.StatusInternalServerError, "Failed to delete image. Please try again.")
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": "Image deleted successfully.",
	})
}

// UploadTempImage stages an image before its product or category exists.
func (h *AdminHandler) UploadTempImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		log.Printf("UploadTempImage: error parsing multipart form: %v", err)
		h.jsonFailure(w, http.StatusBadRequest, "The image field is required.")
		return
	}

	upload, closeFile, err := readUpload(r)
	if err != nil {
		h.jsonFailure(w, http.StatusOK, "The image field is required.")
		return
	}
	defer closeFile()

	temp, err := h.tempImageSvc.Upload(r.Context(), upload)
	if err != nil {
		if errors.Is(err, services.ErrUnsupportedImage) {
			h.jsonFailure(w, http.StatusOK, err.Error())
			return
		}
		log.Printf("UploadTempImage: failed to stage upload %s: %v", upload.Filename, err)
		h.jsonFailure(w, http.StatusInternalServerError, "Failed to upload image. Please try again.")
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":     true,
		"image_id":   temp.ID,
		"image_path": services.TempURL(temp.Name),
		"message":    "Image uploaded successfully.",
	})
}

func (h *AdminHandler) GetSlug(w http.ResponseWriter, r *http.Request) {
	slug := ""
	if title := r.URL.Query().Get("title"); title != "" {
		slug = helpers.GenerateSlug(title)
	}
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status": true,
		"slug":   slug,
	})
}

// GetProductSubCategories feeds the dependent sub category select of the product form.
func (h *AdminHandler) GetProductSubCategories(w http.ResponseWriter, r *http.Request) {
	categoryID, ok := parseUint(r.URL.Query().Get("category_id"))
	if !ok {
		h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"status":        true,
			"subCategories": []interface{}{},
		})
		return
	}

	subCategories, err := h.subCategorySvc.ForCategory(r.Context(), categoryID)
	if err != nil {
		log.Printf("GetProductSubCategories: failed to load sub categories of %d: %v", categoryID, err)
		h.jsonFailure(w, http.StatusInternalServerError, "Failed to load sub categories.")
		return
	}

	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":        true,
		"subCategories": subCategories,
	})
}
