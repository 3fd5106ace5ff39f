package models

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Yes = "Yes"
	No  = "No"

	StatusActive  = 1
	StatusBlocked = 0
)

type Product struct {
	ID               uint                `gorm:"primaryKey" json:"id"`
	Title            string              `gorm:"size:255;not null" json:"title"`
	Slug             string              `gorm:"size:255;not null;uniqueIndex" json:"slug"`
	ShortDescription string              `gorm:"type:text" json:"short_description"`
	Description      string              `gorm:"type:text" json:"description"`
	ShippingReturns  string              `gorm:"type:text" json:"shipping_returns"`
	Price            decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"price"`
	ComparePrice     decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"compare_price"`
	CategoryID       uint                `gorm:"not null;index" json:"category_id"`
	Category         *Category           `gorm:"foreignKey:CategoryID" json:"-"`
	SubCategoryID    uint                `gorm:"index" json:"sub_category_id"`
	BrandID          *uint               `gorm:"index" json:"brand_id"`
	IsFeatured       string              `gorm:"size:3;not null;default:'No'" json:"is_featured"`
	Sku              string              `gorm:"size:100;not null;uniqueIndex" json:"sku"`
	Barcode          string              `gorm:"size:100" json:"barcode"`
	TrackQty         string              `gorm:"size:3;not null;default:'Yes'" json:"track_qty"`
	Qty              *int                `json:"qty"`
	Status           int                 `gorm:"not null" json:"status"`
	RelatedProducts  string              `gorm:"type:text" json:"related_products"`
	ProductImages    []ProductImage      `gorm:"foreignKey:ProductID" json:"product_images"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// RelatedProductIDs expands the comma-joined related_products column in stored order.
// Blank and non-numeric entries are skipped.
func (p *Product) RelatedProductIDs() []uint {
	return SplitIDs(p.RelatedProducts)
}

func (p *Product) SetRelatedProductIDs(ids []uint) {
	p.RelatedProducts = JoinIDs(ids)
}

func JoinIDs(ids []uint) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatUint(uint64(id), 10))
	}
	return strings.Join(parts, ",")
}

func SplitIDs(s string) []uint {
	if s == "" {
		return nil
	}
	var ids []uint
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, uint(id))
	}
	return ids
}
