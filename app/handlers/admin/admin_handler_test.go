package admin_test

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rakhulsr/go-catalog-admin/app/configs"
	"github.com/Rakhulsr/go-catalog-admin/app/handlers/admin"
	"github.com/Rakhulsr/go-catalog-admin/app/helpers"
	"github.com/Rakhulsr/go-catalog-admin/app/middlewares"
	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/Rakhulsr/go-catalog-admin/app/models/migrations"
	"github.com/Rakhulsr/go-catalog-admin/app/repositories"
	"github.com/Rakhulsr/go-catalog-admin/app/routes"
	"github.com/Rakhulsr/go-catalog-admin/app/services"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/format"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/renderer"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/sessions"
	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	db      *gorm.DB
	handler http.Handler
	auth    *services.AuthService

	category    *models.Category
	subCategory *models.SubCategory
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	db, err := configs.OpenSQLite(filepath.Join(t.TempDir(), "admin.db"))
	require.NoError(t, err)
	require.NoError(t, migrations.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	validate := helpers.NewValidator()
	prices := format.NewPriceFormatter("$")
	rnd := renderer.New(filepath.Join("..", "..", "..", "templates"), prices, true)
	sessionStore := sessions.NewCookieSessionStore(false, securecookie.GenerateRandomKey(32), securecookie.GenerateRandomKey(32))
	images := services.NewImageService(t.TempDir())

	userRepo := repositories.NewUserRepository(db)
	productRepo := repositories.NewProductRepository(db)
	productImageRepo := repositories.NewProductImageRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	subCategoryRepo := repositories.NewSubCategoryRepository(db)
	tempImageRepo := repositories.NewTempImageRepository(db)
	authSvc := services.NewAuthService(userRepo)

	h := admin.NewAdminHandler(
		rnd,
		sessionStore,
		services.NewProductService(db, validate, productRepo, productImageRepo, tempImageRepo, subCategoryRepo, images),
		services.NewCategoryService(db, validate, categoryRepo, tempImageRepo, images),
		services.NewSubCategoryService(validate, subCategoryRepo, categoryRepo),
		services.NewBrandService(validate, repositories.NewBrandRepository(db)),
		services.NewTempImageService(tempImageRepo, images),
		services.NewExportService(productRepo, prices),
		authSvc,
	)

	router := mux.NewRouter()
	router.Use(middlewares.AuthMiddleware(sessionStore, userRepo))
	routes.RegisterAdminRoutes(router, h, middlewares.AdminAuthMiddleware(rnd))

	app := &testApp{
		db:      db,
		handler: middlewares.MethodOverrideMiddleware(router),
		auth:    authSvc,
	}

	app.category = &models.Category{Name: "Shoes", Slug: "shoes", Status: models.StatusActive, ShowHome: models.No}
	require.NoError(t, db.Create(app.category).Error)
	app.subCategory = &models.SubCategory{CategoryID: app.category.ID, Name: "Sneakers", Slug: "sneakers", Status: models.StatusActive, ShowHome: models.No}
	require.NoError(t, db.Create(app.subCategory).Error)

	return app
}

// login signs an admin in through the login form and returns its session cookies.
func (a *testApp) login(t *testing.T) []*http.Cookie {
	t.Helper()
	_, err := a.auth.CreateAdmin(context.Background(), "Admin", "admin@example.com", "secret1")
	require.NoError(t, err)

	form := url.Values{"email": {"admin@example.com"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/admin/", rec.Header().Get("Location"))
	cookies := rec.Result().Cookies()
	require.NotEmpty(t, cookies)
	return cookies
}

func (a *testApp) do(t *testing.T, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	a.handler.ServeHTTP(rec, req)
	return rec
}

func formRequest(method, target string, form url.Values) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return req
}

func imageRequest(t *testing.T, target, filename string, fields map[string]string) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", filename)
	require.NoError(t, err)
	require.NoError(t, png.Encode(part, image.NewRGBA(image.Rect(0, 0, 40, 30))))
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("X-Requested-With", "XMLHttpRequest")
	return req
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return body
}

func (a *testApp) productValues(slug string) url.Values {
	return url.Values{
		"title":        {"Runner " + slug},
		"slug":         {slug},
		"price":        {"49.90"},
		"category":     {models.JoinIDs([]uint{a.category.ID})},
		"sub_category": {models.JoinIDs([]uint{a.subCategory.ID})},
		"is_featured":  {models.No},
		"sku":          {"SKU-" + slug},
		"track_qty":    {models.No, models.Yes},
		"qty":          {"8"},
		"status":       {"1"},
	}
}

func TestAdminAuth(t *testing.T) {
	app := newTestApp(t)

	t.Run("AjaxWithoutSession", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/get-products?term=x", nil)
		req.Header.Set("X-Requested-With", "XMLHttpRequest")
		rec := app.do(t, req, nil)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["status"])
		assert.Equal(t, "Unauthenticated.", body["message"])
	})

	t.Run("PageWithoutSession", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products", nil), nil)
		assert.Equal(t, http.StatusFound, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("LoginPageRenders", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/login", nil), nil)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Login")
	})

	t.Run("WrongPassword", func(t *testing.T) {
		form := url.Values{"email": {"nobody@example.com"}, "password": {"bad"}}
		req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := app.do(t, req, nil)

		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/login", rec.Header().Get("Location"))
	})

	t.Run("DashboardAfterLogin", func(t *testing.T) {
		cookies := app.login(t)
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Dashboard")
	})
}

func TestProductEndpoints(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t)

	t.Run("StoreValidationErrors", func(t *testing.T) {
		rec := app.do(t, formRequest(http.MethodPost, "/admin/products", url.Values{}), cookies)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["status"])
		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "The title field is required.", errs["title"])
		assert.Contains(t, errs, "sub_category")
	})

	t.Run("StoreOversizedIDsAreFieldErrors", func(t *testing.T) {
		values := app.productValues("oversized")
		values.Set("category", "99999999999999999999")
		values.Set("qty", "2.9")
		rec := app.do(t, formRequest(http.MethodPost, "/admin/products", values), cookies)

		assert.Equal(t, http.StatusOK, rec.Code)
		body := decode(t, rec)
		assert.Equal(t, false, body["status"])
		errs, ok := body["errors"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "The category must be a number.", errs["category"])
		assert.Equal(t, "The qty must be a number.", errs["qty"])
	})

	t.Run("StoreReadsLastCheckboxValue", func(t *testing.T) {
		rec := app.do(t, formRequest(http.MethodPost, "/admin/products", app.productValues("stored")), cookies)

		body := decode(t, rec)
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "Product added successfully", body["message"])
		assert.Equal(t, "/admin/products", body["redirect_url"])

		var product models.Product
		require.NoError(t, app.db.Where("slug = ?", "stored").First(&product).Error)
		assert.Equal(t, models.Yes, product.TrackQty)
		require.NotNil(t, product.Qty)
		assert.Equal(t, 8, *product.Qty)
	})

	t.Run("ListAsJSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/admin/products?keyword=stored", nil)
		req.Header.Set("Accept", "application/json")
		rec := app.do(t, req, cookies)

		body := decode(t, rec)
		assert.Equal(t, true, body["status"])
		assert.Equal(t, float64(1), body["total"])
		products, ok := body["products"].([]interface{})
		require.True(t, ok)
		assert.Len(t, products, 1)
	})

	t.Run("ListAsHTML", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Runner stored")
	})

	t.Run("CreateAndEditPagesRender", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products/create", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)

		var product models.Product
		require.NoError(t, app.db.Where("slug = ?", "stored").First(&product).Error)
		rec = app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products/"+models.JoinIDs([]uint{product.ID})+"/edit", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "SKU-stored")
	})

	t.Run("EditMissingRedirects", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products/999/edit", nil), cookies)
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/admin/products", rec.Header().Get("Location"))
	})

	t.Run("UpdateMissing", func(t *testing.T) {
		rec := app.do(t, formRequest(http.MethodPut, "/admin/products/999", app.productValues("ghost")), cookies)

		body := decode(t, rec)
		assert.Equal(t, false, body["status"])
		assert.Equal(t, true, body["notFound"])
	})

	t.Run("UpdateThroughMethodOverride", func(t *testing.T) {
		var product models.Product
		require.NoError(t, app.db.Where("slug = ?", "stored").First(&product).Error)

		values := app.productValues("stored")
		values.Set("title", "Renamed runner")
		values.Set("_method", "PUT")
		rec := app.do(t, formRequest(http.MethodPost, "/admin/products/"+models.JoinIDs([]uint{product.ID}), values), cookies)

		body := decode(t, rec)
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "Product updated successfully", body["message"])
		require.NoError(t, app.db.First(&product, product.ID).Error)
		assert.Equal(t, "Renamed runner", product.Title)
	})

	t.Run("Autocomplete", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/get-products?term=Renamed", nil), cookies)
		body := decode(t, rec)
		assert.Equal(t, true, body["status"])
		tags := body["tags"].([]interface{})
		require.Len(t, tags, 1)
		assert.Equal(t, "Renamed runner", tags[0].(map[string]interface{})["text"])

		rec = app.do(t, httptest.NewRequest(http.MethodGet, "/admin/get-products", nil), cookies)
		body = decode(t, rec)
		assert.Empty(t, body["tags"])
		assert.NotNil(t, body["tags"])
	})

	t.Run("Export", func(t *testing.T) {
		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/products/export", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec.Header().Get("Content-Type"))
		assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
		assert.NotZero(t, rec.Body.Len())
	})

	t.Run("DeleteAndDeleteAgain", func(t *testing.T) {
		var product models.Product
		require.NoError(t, app.db.Where("slug = ?", "stored").First(&product).Error)
		target := "/admin/products/" + models.JoinIDs([]uint{product.ID})

		body := decode(t, app.do(t, formRequest(http.MethodDelete, target, nil), cookies))
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "Product deleted successfully", body["message"])

		body = decode(t, app.do(t, formRequest(http.MethodDelete, target, nil), cookies))
		assert.Equal(t, false, body["status"])
		assert.Equal(t, true, body["notFound"])
	})
}

func TestImageEndpoints(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t)

	t.Run("UploadTempImage", func(t *testing.T) {
		rec := app.do(t, imageRequest(t, "/admin/upload-temp-image", "shot.png", nil), cookies)

		body := decode(t, rec)
		assert.Equal(t, true, body["status"])
		assert.NotZero(t, body["image_id"])
		assert.True(t, strings.HasPrefix(body["image_path"].(string), "/temp/"))
		assert.Equal(t, "Image uploaded successfully.", body["message"])
	})

	t.Run("UploadTempImageBadExtension", func(t *testing.T) {
		body := decode(t, app.do(t, imageRequest(t, "/admin/upload-temp-image", "shot.bmp", nil), cookies))
		assert.Equal(t, false, body["status"])
	})

	t.Run("AttachAndDeleteProductImage", func(t *testing.T) {
		body := decode(t, app.do(t, formRequest(http.MethodPost, "/admin/products", app.productValues("gallery")), cookies))
		require.Equal(t, true, body["status"])

		var product models.Product
		require.NoError(t, app.db.Where("slug = ?", "gallery").First(&product).Error)

		body = decode(t, app.do(t, imageRequest(t, "/admin/product-images/update", "extra.png", map[string]string{
			"product_id": models.JoinIDs([]uint{product.ID}),
		}), cookies))
		assert.Equal(t, true, body["status"])
		assert.True(t, strings.HasPrefix(body["ImagePath"].(string), "/uploads/products/small/"))
		imageID := uint(body["image_id"].(float64))

		target := "/admin/product-images?id=" + models.JoinIDs([]uint{imageID})
		body = decode(t, app.do(t, formRequest(http.MethodDelete, target, nil), cookies))
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "Image deleted successfully.", body["message"])

		body = decode(t, app.do(t, formRequest(http.MethodDelete, target, nil), cookies))
		assert.Equal(t, false, body["status"])
		assert.Equal(t, "Image not found.", body["message"])
	})

	t.Run("AttachToMissingProduct", func(t *testing.T) {
		body := decode(t, app.do(t, imageRequest(t, "/admin/product-images/update", "extra.png", map[string]string{
			"product_id": "999",
		}), cookies))
		assert.Equal(t, false, body["status"])
		assert.Equal(t, true, body["notFound"])
	})
}

func TestLookupEndpoints(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t)

	t.Run("GetSlug", func(t *testing.T) {
		body := decode(t, app.do(t, httptest.NewRequest(http.MethodGet, "/admin/getSlug?title=Summer+Sale+2024", nil), cookies))
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "summer-sale-2024", body["slug"])

		body = decode(t, app.do(t, httptest.NewRequest(http.MethodGet, "/admin/getSlug", nil), cookies))
		assert.Equal(t, "", body["slug"])
	})

	t.Run("SubCategoriesOfCategory", func(t *testing.T) {
		target := "/admin/product-subcategories?category_id=" + models.JoinIDs([]uint{app.category.ID})
		body := decode(t, app.do(t, httptest.NewRequest(http.MethodGet, target, nil), cookies))
		assert.Equal(t, true, body["status"])
		subCategories := body["subCategories"].([]interface{})
		require.Len(t, subCategories, 1)
		assert.Equal(t, "Sneakers", subCategories[0].(map[string]interface{})["name"])

		body = decode(t, app.do(t, httptest.NewRequest(http.MethodGet, "/admin/product-subcategories", nil), cookies))
		assert.Empty(t, body["subCategories"])
	})
}

func TestTaxonomyEndpoints(t *testing.T) {
	app := newTestApp(t)
	cookies := app.login(t)

	t.Run("Category", func(t *testing.T) {
		body := decode(t, app.do(t, formRequest(http.MethodPost, "/admin/categories", url.Values{
			"name": {"Bags"}, "slug": {"bags"}, "status": {"1"},
		}), cookies))
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "/admin/categories", body["redirect_url"])

		body = decode(t, app.do(t, formRequest(http.MethodPost, "/admin/categories", url.Values{
			"name": {"Bags"}, "slug": {"bags"}, "status": {"1"},
		}), cookies))
		assert.Equal(t, false, body["status"])
		assert.Contains(t, body["errors"], "slug")

		body = decode(t, app.do(t, formRequest(http.MethodDelete, "/admin/categories/999", nil), cookies))
		assert.Equal(t, true, body["notFound"])

		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/categories", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Bags")
	})

	t.Run("SubCategory", func(t *testing.T) {
		body := decode(t, app.do(t, formRequest(http.MethodPost, "/admin/sub-categories", url.Values{
			"category": {"999"}, "name": {"Boots"}, "slug": {"boots"}, "status": {"1"},
		}), cookies))
		assert.Equal(t, false, body["status"])
		assert.Contains(t, body["errors"], "category")

		body = decode(t, app.do(t, formRequest(http.MethodPost, "/admin/sub-categories", url.Values{
			"category": {models.JoinIDs([]uint{app.category.ID})}, "name": {"Boots"}, "slug": {"boots"}, "status": {"1"},
		}), cookies))
		assert.Equal(t, true, body["status"])

		rec := app.do(t, httptest.NewRequest(http.MethodGet, "/admin/sub-categories/create", nil), cookies)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Brand", func(t *testing.T) {
		body := decode(t, app.do(t, formRequest(http.MethodPost, "/admin/brands", url.Values{
			"name": {"Acme"}, "slug": {"acme"}, "status": {"1"},
		}), cookies))
		assert.Equal(t, true, body["status"])
		assert.Equal(t, "Brand added successfully", body["message"])

		var brand models.Brand
		require.NoError(t, app.db.Where("slug = ?", "acme").First(&brand).Error)
		target := "/admin/brands/" + models.JoinIDs([]uint{brand.ID})

		body = decode(t, app.do(t, formRequest(http.MethodPut, target, url.Values{
			"name": {"Acme Co"}, "slug": {"acme"}, "status": {"0"},
		}), cookies))
		assert.Equal(t, true, body["status"])

		body = decode(t, app.do(t, formRequest(http.MethodDelete, target, nil), cookies))
		assert.Equal(t, true, body["status"])
	})
}
