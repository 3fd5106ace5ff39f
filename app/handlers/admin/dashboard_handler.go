package admin

import (
	"errors"
	"html/template"
	"log"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"github.com/unrolled/render"
)

type AdminHandler struct {
	render       *render.Render
	sessionStore sessions.SessionStore

	productSvc     *services.ProductService
	categorySvc    *services.CategoryService
	subCategorySvc *services.SubCategoryService
	brandSvc       *services.BrandService
	tempImageSvc   *services.TempImageService
	exportSvc      *services.ExportService
	authSvc        *services.AuthService
}

func NewAdminHandler(
	render *render.Render,
	sessionStore sessions.SessionStore,
	productSvc *services.ProductService,
	categorySvc *services.CategoryService,
	subCategorySvc *services.SubCategoryService,
	brandSvc *services.BrandService,
	tempImageSvc *services.TempImageService,
	exportSvc *services.ExportService,
	authSvc *services.AuthService,
) *AdminHandler {
	return &AdminHandler{
		render:         render,
		sessionStore:   sessionStore,
		productSvc:     productSvc,
		categorySvc:    categorySvc,
		subCategorySvc: subCategorySvc,
		brandSvc:       brandSvc,
		tempImageSvc:   tempImageSvc,
		exportSvc:      exportSvc,
		authSvc:        authSvc,
	}
}

type BasePageData struct {
	Title       string
	User        *models.User
	CSRFToken   string
	CSRFField   template.HTML
	Flashes     []Flash
	CurrentPath string
	Keyword     string
	Pagination  helpers.Pagination
}

type Flash struct {
	Status  string
	Message string
}

func parseFlashes(raw []string) []Flash {
	flashes := make([]Flash, 0, len(raw))
	for _, f := range raw {
		status, message, ok := strings.Cut(f, ":")
		if !ok {
			status, message = "success", f
		}
		flashes = append(flashes, Flash{Status: status, Message: message})
	}
	return flashes
}

type AdminPageData struct {
	BasePageData
	TotalProducts int64
}

func (h *AdminHandler) baseData(w http.ResponseWriter, r *http.Request, title string) BasePageData {
	user, _ := r.Context().Value(helpers.ContextKeyUser).(*models.User)
	return BasePageData{
		Title:       title,
		User:        user,
		CSRFToken:   csrf.Token(r),
		CSRFField:   csrf.TemplateField(r),
		Flashes:     parseFlashes(h.sessionStore.Flashes(w, r)),
		CurrentPath: r.URL.Path,
		Keyword:     r.URL.Query().Get("keyword"),
	}
}

func (h *AdminHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	data := &AdminPageData{BasePageData: h.baseData(w, r, "Dashboard")}

	total, err := h.productSvc.CountProducts(r.Context())
	if err != nil {
		log.Printf("GetDashboard: failed to count products: %v", err)
	}
	data.TotalProducts = total

	h.render.HTML(w, http.StatusOK, "admin/dashboard", data)
}

// wantsJSON reports whether the caller negotiated a JSON listing.
func wantsJSON(r *http.Request) bool {
	for _, part := range strings.Split(r.Header.Get("Accept"), ",") {
		mediaType, _, err := mime.ParseMediaType(strings.TrimSpace(part))
		if err == nil && mediaType == "application/json" {
			return true
		}
	}
	return r.Header.Get("X-Requested-With") == "XMLHttpRequest"
}

func pathID(r *http.Request) (uint, bool) {
	return parseUint(mux.Vars(r)["id"])
}

func parseUint(s string) (uint, bool) {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// formValue returns the last posted value of key. A hidden "No" input followed by a checked
// "Yes" checkbox therefore reads as "Yes".
func formValue(r *http.Request, key string) string {
	values := r.PostForm[key]
	if len(values) == 0 {
		return ""
	}
	return strings.TrimSpace(values[len(values)-1])
}

// formValues accepts both name[] and name.
func formValues(r *http.Request, key string) []string {
	if values, ok := r.PostForm[key+"[]"]; ok {
		return values
	}
	return r.PostForm[key]
}

// parseForm parses multipart and urlencoded bodies alike.
func parseForm(r *http.Request) error {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		return r.ParseMultipartForm(32 << 20)
	}
	return r.ParseForm()
}

func (h *AdminHandler) jsonSaved(w http.ResponseWriter, message, redirectURL string) {
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":       true,
		"message":      message,
		"redirect_url": redirectURL,
	})
}

func (h *AdminHandler) jsonNotFound(w http.ResponseWriter) {
	h.render.JSON(w, http.StatusOK, map[string]interface{}{
		"status":   false,
		"notFound": true,
	})
}

// jsonServiceError maps a service error to the JSON error taxonomy. failMessage is shown for
// anything that is neither a validation failure nor a missing record.
func (h *AdminHandler) jsonServiceError(w http.ResponseWriter, err error, failMessage string) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		h.render.JSON(w, http.StatusOK, map[string]interface{}{
			"status": false,
			"errors": verr.Fields,
		})
	case errors.Is(err, services.ErrNotFound):
		h.jsonNotFound(w)
	default:
		h.render.JSON(w, http.StatusInternalServerError, map[string]interface{}{
			"status":  false,
			"message": failMessage,
			"error":   err.Error(),
		})
	}
}

func (h *AdminHandler) flash(w http.ResponseWriter, r *http.Request, status, message string) {
	if err := h.sessionStore.AddFlash(w, r, status+":"+message); err != nil {
		log.Printf("flash: failed to store flash message: %v", err)
	}
}

func (h *AdminHandler) redirectWithFlash(w http.ResponseWriter, r *http.Request, to, status, message string) {
	h.flash(w, r, status, message)
	http.Redirect(w, r, to, http.StatusSeeOther)
}
