// Package pricing turns a purchase price and markups into the taxed retail price.
// Everything here is pure; markup ceilings are checked by the caller.
package pricing

import (
	"computer-store-ws/internal/model"

	"github.com/shopspring/decimal"
)

var (
	DefaultVATRate        = decimal.RequireFromString("0.18")
	DefaultSalesTaxRate   = decimal.RequireFromString("0.05")
	DefaultMaxTotalMarkup = decimal.RequireFromString("0.30")
)

// Rates holds the tax rates and the combined markup ceiling
type Rates struct {
	VAT            decimal.Decimal
	SalesTax       decimal.Decimal
	MaxTotalMarkup decimal.Decimal
}

func DefaultRates() Rates {
	return Rates{
		VAT:            DefaultVATRate,
		SalesTax:       DefaultSalesTaxRate,
		MaxTotalMarkup: DefaultMaxTotalMarkup,
	}
}

// Breakdown is the per-item price decomposition.
// FinalPrice = PriceBeforeTaxes + VAT + SalesTax.
type Breakdown struct {
	PriceBeforeTaxes decimal.Decimal `json:"price_before_taxes"`
	VAT              decimal.Decimal `json:"vat"`
	PriceWithVAT     decimal.Decimal `json:"price_with_vat"`
	SalesTax         decimal.Decimal `json:"sales_tax"`
	FinalPrice       decimal.Decimal `json:"final_price"`
}

// Calculate prices one item. Sales tax applies to cash payments only.
func (r Rates) Calculate(purchasePrice, supplierMarkup, sellerMarkup decimal.Decimal, payment model.PaymentType) Breakdown {
	factor := decimal.NewFromInt(1).Add(TotalMarkup(supplierMarkup, sellerMarkup))
	before := purchasePrice.Mul(factor)
	vat := before.Mul(r.VAT)
	withVAT := before.Add(vat)

	salesTax := decimal.Zero
	if payment == model.PaymentCash {
		salesTax = withVAT.Mul(r.SalesTax)
	}

	return Breakdown{
		PriceBeforeTaxes: before,
		VAT:              vat,
		PriceWithVAT:     withVAT,
		SalesTax:         salesTax,
		FinalPrice:       withVAT.Add(salesTax),
	}
}

// MarkupAllowed reports whether the combined markup stays within the ceiling
func (r Rates) MarkupAllowed(supplierMarkup, sellerMarkup decimal.Decimal) bool {
	return TotalMarkup(supplierMarkup, sellerMarkup).LessThanOrEqual(r.MaxTotalMarkup)
}

func TotalMarkup(supplierMarkup, sellerMarkup decimal.Decimal) decimal.Decimal {
	return supplierMarkup.Add(sellerMarkup)
}

// Totals accumulates the three sale-level sums
type Totals struct {
	TotalAmount       decimal.Decimal
	TotalWithVAT      decimal.Decimal
	TotalWithSalesTax decimal.Decimal
}

func (t *Totals) Add(b Breakdown) {
	t.TotalAmount = t.TotalAmount.Add(b.PriceBeforeTaxes)
	t.TotalWithVAT = t.TotalWithVAT.Add(b.PriceWithVAT)
	t.TotalWithSalesTax = t.TotalWithSalesTax.Add(b.FinalPrice)
}
