package routes

import (
	"net/http"
	"path/filepath"

	"github.com/Rakhulsr/go-catalog-admin/app/configs"
	"github.com/Rakhulsr/go-catalog-admin/app/handlers/admin"
	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/middlewares"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/format"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/renderer"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/sessions"
	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
)

func NewRouter(db *gorm.DB, env configs.ENV, keys *configs.SessionKeys) *mux.Router {
	validate := helpers.NewValidator()
	prices := format.NewPriceFormatter(env.CurrencySymbol)
	rnd := renderer.New(env.ViewsDir, prices, !env.IsProduction())
	sessionStore := sessions.NewCookieSessionStore(env.IsProduction(), keys.AuthKey, keys.EncKey)
	images := services.NewImageService(env.PublicDir)

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productImageRepo := repositories.NewProductImageRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	subCategoryRepo := repositories.NewSubCategoryRepository(db)
	brandRepo := repositories.NewBrandRepository(db)
	tempImageRepo := repositories.NewTempImageRepository(db)

	adminHandler := admin.NewAdminHandler(
		rnd,
		sessionStore,
		services.NewProductService(db, validate, productRepo, productImageRepo, tempImageRepo, subCategoryRepo, images),
		services.NewCategoryService(db, validate, categoryRepo, tempImageRepo, images),
		services.NewSubCategoryService(validate, subCategoryRepo, categoryRepo),
		services.NewBrandService(validate, brandRepo),
		services.NewTempImageService(tempImageRepo, images),
		services.NewExportService(productRepo, prices),
		services.NewAuthService(userRepo),
	)

	router := mux.NewRouter()

	router.PathPrefix("/uploads/").Handler(
		http.StripPrefix("/uploads/", http.FileServer(http.Dir(filepath.Join(env.PublicDir, "uploads")))),
	)
	router.PathPrefix("/temp/").Handler(
		http.StripPrefix("/temp/", http.FileServer(http.Dir(filepath.Join(env.PublicDir, services.TempDir)))),
	)
	router.Handle("/", http.RedirectHandler("/admin/", http.StatusFound))
	router.Handle("/admin", http.RedirectHandler("/admin/", http.StatusFound))

	router.Use(middlewares.AuthMiddleware(sessionStore, userRepo))

	RegisterAdminRoutes(router, adminHandler, middlewares.AdminAuthMiddleware(rnd))

	return router
}

// RegisterAdminRoutes mounts the back-office under /admin. Everything except login and logout
// goes through requireAdmin.
func RegisterAdminRoutes(router *mux.Router, h *admin.AdminHandler, requireAdmin mux.MiddlewareFunc) {
	adminRouter := router.PathPrefix("/admin").Subrouter()
	adminRouter.HandleFunc("/login", h.LoginPage).Methods("GET")
	adminRouter.HandleFunc("/login", h.LoginPost).Methods("POST")
	adminRouter.HandleFunc("/logout", h.Logout).Methods("POST")

	protected := adminRouter.NewRoute().Subrouter()
	protected.Use(requireAdmin)

	protected.HandleFunc("/", h.GetDashboard).Methods("GET")

	protected.HandleFunc("/products", h.GetProductsPage).Methods("GET")
	protected.HandleFunc("/products/create", h.CreateProductPage).Methods("GET")
	protected.HandleFunc("/products/export", h.ExportProducts).Methods("GET")
	protected.HandleFunc("/products", h.StoreProduct).Methods("POST")
	protected.HandleFunc("/products/{id:[0-9]+}/edit", h.EditProductPage).Methods("GET")
	protected.HandleFunc("/products/{id:[0-9]+}", h.UpdateProduct).Methods("PUT")
	protected.HandleFunc("/products/{id:[0-9]+}", h.DeleteProduct).Methods("DELETE")
	protected.HandleFunc("/get-products", h.GetProducts).Methods("GET")

	protected.HandleFunc("/product-images/update", h.UpdateProductImage).Methods("POST")
	protected.HandleFunc("/product-images", h.DeleteProductImage).Methods("DELETE")
	protected.HandleFunc("/upload-temp-image", h.UploadTempImage).Methods("POST")
	protected.HandleFunc("/getSlug", h.GetSlug).Methods("GET")
	protected.HandleFunc("/product-subcategories", h.GetProductSubCategories).Methods("GET")

	protected.HandleFunc("/categories", h.GetCategoriesPage).Methods("GET")
	protected.HandleFunc("/categories/create", h.CreateCategoryPage).Methods("GET")
	protected.HandleFunc("/categories", h.StoreCategory).Methods("POST")
	protected.HandleFunc("/categories/{id:[0-9]+}/edit", h.EditCategoryPage).Methods("GET")
	protected.HandleFunc("/categories/{id:[0-9]+}", h.UpdateCategory).Methods("PUT")
	protected.HandleFunc("/categories/{id:[0-9]+}", h.DeleteCategory).Methods("DELETE")

	protected.HandleFunc("/sub-categories", h.GetSubCategoriesPage).Methods("GET")
	protected.HandleFunc("/sub-categories/create", h.CreateSubCategoryPage).Methods("GET")
	protected.HandleFunc("/sub-categories", h.StoreSubCategory).Methods("POST")
	protected.HandleFunc("/sub-categories/{id:[0-9]+}/edit", h.EditSubCategoryPage).Methods("GET")
	protected.HandleFunc("/sub-categories/{id:[0-9]+}", h.UpdateSubCategory).Methods("PUT")
	protected.HandleFunc("/sub-categories/{id:[0-9]+}", h.DeleteSubCategory).Methods("DELETE")

	protected.HandleFunc("/brands", h.GetBrandsPage).Methods("GET")
	protected.HandleFunc("/brands/create", h.CreateBrandPage).Methods("GET")
	protected.HandleFunc("/brands", h.StoreBrand).Methods("POST")
	protected.HandleFunc("/brands/{id:[0-9]+}/edit", h.EditBrandPage).Methods("GET")
	protected.HandleFunc("/brands/{id:[0-9]+}", h.UpdateBrand).Methods("PUT")
	protected.HandleFunc("/brands/{id:[0-9]+}", h.DeleteBrand).Methods("DELETE")
}

// NewHandler wraps the router with CSRF protection and method override. Method override runs
// first so mux matches the overridden verb.
func NewHandler(router *mux.Router, env configs.ENV, keys *configs.SessionKeys) http.Handler {
	protect := csrf.Protect(
		keys.CSRFKey,
		csrf.Secure(env.IsProduction()),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
	)
	return middlewares.MethodOverrideMiddleware(protect(router))
}
