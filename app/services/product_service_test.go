package services

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/Rakhulsr/go-catalog-admin/app/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func requireValidationError(t *testing.T, err error) *ValidationError {
	t.Helper()
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	return verr
}

func dirEntries(t *testing.T, dir string) int {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return 0
	}
	require.NoError(t, err)
	return len(entries)
}

func TestCreateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("QtyStoredWhenTracked", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("tracked")
		form.TrackQty = models.Yes
		form.Qty = "5"

		product := f.mustCreateProduct(t, form)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.Qty)
		assert.Equal(t, 5, *stored.Qty)
		assert.Equal(t, "19.99", stored.Price.StringFixed(2))
		assert.False(t, stored.ComparePrice.Valid)
		assert.Nil(t, stored.BrandID)
	})

	t.Run("QtyDroppedWhenNotTracked", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("untracked")
		form.Qty = "7"

		product := f.mustCreateProduct(t, form)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Qty)
		assert.Equal(t, models.No, stored.TrackQty)
	})

	t.Run("BlockedStatusKept", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("blocked")
		form.Status = "0"

		product := f.mustCreateProduct(t, form)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StatusBlocked, stored.Status)
	})

	t.Run("RequiredFields", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.products.CreateProduct(ctx, &ProductForm{})
		verr := requireValidationError(t, err)
		for _, field := range []string{"title", "slug", "price", "category", "sub_category", "is_featured", "sku", "track_qty"} {
			assert.Contains(t, verr.Fields, field)
		}
		assert.Equal(t, "The sub category field is required.", verr.Fields["sub_category"])
		assert.Zero(t, f.count(t, &models.Product{}))
	})

	t.Run("QtyRequiredWhenTracked", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("needs-qty")
		form.TrackQty = models.Yes

		_, err := f.products.CreateProduct(ctx, form)
		verr := requireValidationError(t, err)
		assert.Equal(t, map[string]string{"qty": "The qty field is required."}, verr.Fields)

		form.Qty = "many"
		_, err = f.products.CreateProduct(ctx, form)
		verr = requireValidationError(t, err)
		assert.Equal(t, "The qty must be a number.", verr.Fields["qty"])
	})

	t.Run("QtyMustBeWholeNumber", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("whole-qty")
		form.TrackQty = models.Yes

		for _, qty := range []string{"2.9", "-3", "99999999999999999999"} {
			form.Qty = qty
			_, err := f.products.CreateProduct(ctx, form)
			verr := requireValidationError(t, err)
			assert.Equal(t, map[string]string{"qty": "The qty must be a number."}, verr.Fields, qty)
		}
		assert.Zero(t, f.count(t, &models.Product{}))
	})

	t.Run("OversizedIDs", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("big-ids")
		form.Category = "99999999999999999999"
		form.SubCategory = "18446744073709551616"
		form.Brand = "99999999999999999999"
		form.RelatedProducts = []string{"1", "99999999999999999999"}

		_, err := f.products.CreateProduct(ctx, form)
		verr := requireValidationError(t, err)
		assert.Equal(t, map[string]string{
			"category":         "The category must be a number.",
			"sub_category":     "The sub category must be a number.",
			"brand":            "The brand must be a number.",
			"related_products": "The related products must be a number.",
		}, verr.Fields)
		assert.Zero(t, f.count(t, &models.Product{}))
	})

	t.Run("NonNumericPrice", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("bad-price")
		form.Price = "abc"
		form.ComparePrice = "x"

		_, err := f.products.CreateProduct(ctx, form)
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "price")
		assert.Contains(t, verr.Fields, "compare_price")
	})

	t.Run("DuplicateSlugAndSku", func(t *testing.T) {
		f := newFixture(t)
		f.mustCreateProduct(t, f.productForm("taken"))

		form := f.productForm("taken")
		form.Sku = "OTHER"
		_, err := f.products.CreateProduct(ctx, form)
		verr := requireValidationError(t, err)
		assert.Equal(t, "The slug has already been taken.", verr.Fields["slug"])
		assert.NotContains(t, verr.Fields, "sku")

		form = f.productForm("fresh")
		form.Sku = "SKU-taken"
		_, err = f.products.CreateProduct(ctx, form)
		verr = requireValidationError(t, err)
		assert.Equal(t, "The sku has already been taken.", verr.Fields["sku"])

		assert.Equal(t, int64(1), f.count(t, &models.Product{}))
	})

	t.Run("PromotesTempImages", func(t *testing.T) {
		f := newFixture(t)
		f.products.now = func() time.Time { return time.Unix(1700000000, 0) }
		wide := f.uploadTemp(t, 2000, 1000)
		tall := f.uploadTemp(t, 500, 800)

		form := f.productForm("with-images")
		form.ImageArray = []string{uintString(wide.ID), uintString(tall.ID)}
		product := f.mustCreateProduct(t, form)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, stored.ProductImages, 2)

		first := stored.ProductImages[0]
		assert.Equal(t, ProductImageName(product.ID, first.ID, time.Unix(1700000000, 0), "png"), first.Image)
		assert.Equal(t, 0, first.SortOrder)
		assert.Equal(t, 1, stored.ProductImages[1].SortOrder)

		w, h := imageSize(t, f.images.LargePath(first.Image))
		assert.Equal(t, 1400, w)
		assert.Equal(t, 700, h)
		w, h = imageSize(t, f.images.SmallPath(first.Image))
		assert.Equal(t, 300, w)
		assert.Equal(t, 300, h)

		w, h = imageSize(t, f.images.LargePath(stored.ProductImages[1].Image))
		assert.Equal(t, 500, w)
		assert.Equal(t, 800, h)

		// temp rows stay until purged
		assert.FileExists(t, f.images.TempPath(wide.Name))
	})

	t.Run("UnknownTempImage", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("ghost-image")
		form.ImageArray = []string{"999"}

		_, err := f.products.CreateProduct(ctx, form)
		require.Error(t, err)
		assert.Zero(t, f.count(t, &models.Product{}))
	})

	t.Run("BrokenImageRollsBack", func(t *testing.T) {
		f := newFixture(t)
		good := f.uploadTemp(t, 100, 100)
		broken, err := f.temps.Upload(ctx, ImageUpload{Filename: "broken.png", Reader: strings.NewReader("garbage")})
		require.NoError(t, err)

		form := f.productForm("rollback")
		form.ImageArray = []string{uintString(good.ID), uintString(broken.ID)}
		_, err = f.products.CreateProduct(ctx, form)
		require.Error(t, err)

		assert.Zero(t, f.count(t, &models.Product{}))
		assert.Zero(t, f.count(t, &models.ProductImage{}))
		assert.Zero(t, dirEntries(t, filepath.Join(f.publicDir, ProductLargeDir)))
		assert.Zero(t, dirEntries(t, filepath.Join(f.publicDir, ProductSmallDir)))
	})

	t.Run("RelatedProductsKeepOrder", func(t *testing.T) {
		f := newFixture(t)
		a := f.mustCreateProduct(t, f.productForm("a"))
		b := f.mustCreateProduct(t, f.productForm("b"))
		c := f.mustCreateProduct(t, f.productForm("c"))

		form := f.productForm("related")
		form.RelatedProducts = []string{uintString(c.ID), uintString(a.ID), uintString(b.ID)}
		product := f.mustCreateProduct(t, form)
		assert.Equal(t, models.JoinIDs([]uint{c.ID, a.ID, b.ID}), product.RelatedProducts)

		edit, err := f.products.GetProductForEdit(ctx, product.ID)
		require.NoError(t, err)
		require.Len(t, edit.RelatedProducts, 3)
		assert.Equal(t, c.ID, edit.RelatedProducts[0].ID)
		assert.Equal(t, a.ID, edit.RelatedProducts[1].ID)
		assert.Equal(t, b.ID, edit.RelatedProducts[2].ID)
		require.Len(t, edit.SubCategories, 1)
		assert.Equal(t, f.subCategory.ID, edit.SubCategories[0].ID)
	})
}

func TestUpdateProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("KeepsOwnSlug", func(t *testing.T) {
		f := newFixture(t)
		product := f.mustCreateProduct(t, f.productForm("mine"))

		form := f.productForm("mine")
		form.Title = "Renamed"
		form.ComparePrice = "25.50"
		updated, err := f.products.UpdateProduct(ctx, product.ID, form)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", updated.Title)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Equal(t, "Renamed", stored.Title)
		require.True(t, stored.ComparePrice.Valid)
		assert.Equal(t, "25.50", stored.ComparePrice.Decimal.StringFixed(2))
	})

	t.Run("SlugOfAnotherProduct", func(t *testing.T) {
		f := newFixture(t)
		f.mustCreateProduct(t, f.productForm("first"))
		second := f.mustCreateProduct(t, f.productForm("second"))

		form := f.productForm("first")
		form.Sku = "SKU-second"
		_, err := f.products.UpdateProduct(ctx, second.ID, form)
		verr := requireValidationError(t, err)
		assert.Contains(t, verr.Fields, "slug")

		stored, err := f.products.productRepo.GetByID(ctx, second.ID)
		require.NoError(t, err)
		assert.Equal(t, "second", stored.Slug)
	})

	t.Run("ClearsQtyWhenUntracked", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("qty")
		form.TrackQty = models.Yes
		form.Qty = "3"
		product := f.mustCreateProduct(t, form)

		form.TrackQty = models.No
		_, err := f.products.UpdateProduct(ctx, product.ID, form)
		require.NoError(t, err)

		stored, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, stored.Qty)
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.products.UpdateProduct(ctx, 42, f.productForm("nope"))
		assert.ErrorIs(t, err, ErrNotFound)
		assert.Zero(t, f.count(t, &models.Product{}))
	})
}

func TestDeleteProduct(t *testing.T) {
	ctx := context.Background()

	t.Run("RemovesFilesAndRows", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("doomed")
		form.ImageArray = []string{uintString(f.uploadTemp(t, 50, 50).ID), uintString(f.uploadTemp(t, 60, 60).ID)}
		product := f.mustCreateProduct(t, form)
		keep := f.mustCreateProduct(t, f.productForm("keep"))

		require.Len(t, product.ProductImages, 2)
		for _, image := range product.ProductImages {
			assert.FileExists(t, f.images.LargePath(image.Image))
			assert.FileExists(t, f.images.SmallPath(image.Image))
		}

		require.NoError(t, f.products.DeleteProduct(ctx, product.ID))

		for _, image := range product.ProductImages {
			assert.NoFileExists(t, f.images.LargePath(image.Image))
			assert.NoFileExists(t, f.images.SmallPath(image.Image))
		}
		assert.Zero(t, f.count(t, &models.ProductImage{}))

		gone, err := f.products.productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		assert.Nil(t, gone)

		kept, err := f.products.productRepo.GetByID(ctx, keep.ID)
		require.NoError(t, err)
		assert.NotNil(t, kept)
	})

	t.Run("MissingFilesDoNotBlock", func(t *testing.T) {
		f := newFixture(t)
		form := f.productForm("no-files")
		form.ImageArray = []string{uintString(f.uploadTemp(t, 50, 50).ID)}
		product := f.mustCreateProduct(t, form)
		require.NoError(t, os.Remove(f.images.LargePath(product.ProductImages[0].Image)))

		require.NoError(t, f.products.DeleteProduct(ctx, product.ID))
		assert.Zero(t, f.count(t, &models.Product{}))
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		f.mustCreateProduct(t, f.productForm("survivor"))

		assert.ErrorIs(t, f.products.DeleteProduct(ctx, 999), ErrNotFound)
		assert.Equal(t, int64(1), f.count(t, &models.Product{}))
	})
}

func TestProductImages(t *testing.T) {
	ctx := context.Background()

	t.Run("AddAndDelete", func(t *testing.T) {
		f := newFixture(t)
		product := f.mustCreateProduct(t, f.productForm("gallery"))

		image, err := f.products.AddProductImage(ctx, product.ID, ImageUpload{
			Filename: "extra.png",
			Reader:   bytes.NewReader(pngBytes(t, 320, 240)),
		})
		require.NoError(t, err)
		assert.Equal(t, product.ID, image.ProductID)
		assert.True(t, strings.HasPrefix(image.Image, uintString(product.ID)+"-"))
		assert.FileExists(t, f.images.LargePath(image.Image))
		assert.FileExists(t, f.images.SmallPath(image.Image))

		require.NoError(t, f.products.DeleteProductImage(ctx, image.ID))
		assert.NoFileExists(t, f.images.LargePath(image.Image))
		assert.NoFileExists(t, f.images.SmallPath(image.Image))
		assert.Zero(t, f.count(t, &models.ProductImage{}))
	})

	t.Run("UnsupportedExtension", func(t *testing.T) {
		f := newFixture(t)
		product := f.mustCreateProduct(t, f.productForm("bad-ext"))

		_, err := f.products.AddProductImage(ctx, product.ID, ImageUpload{Filename: "x.bmp", Reader: strings.NewReader("")})
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	})

	t.Run("UndecodableUploadLeavesNoRow", func(t *testing.T) {
		f := newFixture(t)
		product := f.mustCreateProduct(t, f.productForm("undecodable"))

		_, err := f.products.AddProductImage(ctx, product.ID, ImageUpload{Filename: "x.png", Reader: strings.NewReader("nope")})
		require.Error(t, err)
		assert.Zero(t, f.count(t, &models.ProductImage{}))
	})

	t.Run("UnknownProduct", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.products.AddProductImage(ctx, 77, ImageUpload{Filename: "x.png", Reader: bytes.NewReader(pngBytes(t, 10, 10))})
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("DeleteUnknownImage", func(t *testing.T) {
		f := newFixture(t)
		assert.ErrorIs(t, f.products.DeleteProductImage(ctx, 5), ErrNotFound)
	})
}

func TestListAndSearchProducts(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	for i := 0; i < 12; i++ {
		f.mustCreateProduct(t, f.productForm("item-"+string(rune('a'+i))))
	}
	f.mustCreateProduct(t, f.productForm("lamp"))

	t.Run("FirstPageNewestFirst", func(t *testing.T) {
		products, pagination, err := f.products.ListProducts(ctx, "", 1)
		require.NoError(t, err)
		require.Len(t, products, 10)
		assert.Equal(t, "lamp", products[0].Slug)
		assert.Equal(t, int64(13), pagination.Total)
		assert.Equal(t, 2, pagination.TotalPages)
		assert.True(t, pagination.HasNext())
	})

	t.Run("LastPage", func(t *testing.T) {
		products, pagination, err := f.products.ListProducts(ctx, "", 2)
		require.NoError(t, err)
		assert.Len(t, products, 3)
		assert.False(t, pagination.HasNext())
	})

	t.Run("KeywordFilter", func(t *testing.T) {
		products, pagination, err := f.products.ListProducts(ctx, "lamp", 1)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, int64(1), pagination.Total)
	})

	t.Run("Count", func(t *testing.T) {
		total, err := f.products.CountProducts(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(13), total)
	})

	t.Run("SearchEmptyTerm", func(t *testing.T) {
		tags, err := f.products.SearchProducts(ctx, "")
		require.NoError(t, err)
		assert.NotNil(t, tags)
		assert.Empty(t, tags)
	})

	t.Run("SearchByTitle", func(t *testing.T) {
		tags, err := f.products.SearchProducts(ctx, "lam")
		require.NoError(t, err)
		require.Len(t, tags, 1)
		assert.Equal(t, "Product lamp", tags[0].Text)
	})

	t.Run("EditUnknown", func(t *testing.T) {
		_, err := f.products.GetProductForEdit(ctx, 9999)
		assert.ErrorIs(t, err, ErrNotFound)
	})
}
