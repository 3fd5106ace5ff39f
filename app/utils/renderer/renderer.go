package renderer

import (
	"html/template"

	"github.com/Rakhulsr/go-catalog-admin/app/services"
	"github.com/Rakhulsr/go-catalog-admin/app/utils/format"
	"github.com/shopspring/decimal"
	"github.com/unrolled/render"
)

func New(viewsDir string, prices *format.PriceFormatter, development bool) *render.Render {
	return render.New(render.Options{
		Directory:     viewsDir,
		Layout:        "layout",
		Extensions:    []string{".html"},
		IsDevelopment: development,
		Funcs: []template.FuncMap{
			{
				"until": func(count int) []int {
					items := make([]int, count)
					for i := 0; i < count; i++ {
						items[i] = i
					}
					return items
				},
				"add": func(a, b int) int { return a + b },
				"sub": func(a, b int) int { return a - b },
				"price": func(d decimal.Decimal) string {
					return prices.Format(d)
				},
				"nullPrice": func(d decimal.NullDecimal) string {
					return prices.FormatNull(d)
				},
				"deref": func(p *uint) uint {
					if p == nil {
						return 0
					}
					return *p
				},
				"derefInt": func(p *int) int {
					if p == nil {
						return 0
					}
					return *p
				},
				"smallURL":    services.SmallURL,
				"largeURL":    services.LargeURL,
				"tempURL":     services.TempURL,
				"categoryURL": services.CategoryThumbURL,
			},
		},
	})
}
