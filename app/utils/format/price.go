package format

import (
	"github.com/leekchan/accounting"
	"github.com/shopspring/decimal"
)

type PriceFormatter struct {
	ac accounting.Accounting
}

func NewPriceFormatter(symbol string) *PriceFormatter {
	return &PriceFormatter{ac: accounting.Accounting{Symbol: symbol, Precision: 2}}
}

func (f *PriceFormatter) Format(amount decimal.Decimal) string {
	return f.ac.FormatMoneyDecimal(amount)
}

// FormatNull renders an empty string for a missing compare price.
func (f *PriceFormatter) FormatNull(amount decimal.NullDecimal) string {
	if !amount.Valid {
		return ""
	}
	return f.Format(amount.Decimal)
}
