// Package money computes invoice totals and display strings with exact
// decimal arithmetic. Nothing here touches float64 or returns an error.
package money

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/liamdatt/invoicegen/internal/domain"
)

const (
	// DefaultSymbol prefixes amounts that carry no currency code.
	DefaultSymbol = "$"

	// MissingPrice is shown for a proforma invoice without a price.
	MissingPrice = "—"

	places = 2
)

// DefaultTaxRate is the GCT rate applied to the parts subtotal.
var DefaultTaxRate = decimal.RequireFromString("0.15")

// Item is the money-relevant part of a line item.
type Item struct {
	Labour decimal.Decimal
	Parts  decimal.Decimal
}

// Totals are the derived amounts of a general invoice.
type Totals struct {
	PartsSubtotal  decimal.Decimal
	LabourSubtotal decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
}

// Engine applies the tax rule. Tax is charged on parts only; labour is
// never taxed.
type Engine struct {
	rate decimal.Decimal
}

// New returns an Engine with the given tax rate.
func New(rate decimal.Decimal) Engine {
	return Engine{rate: rate}
}

// TaxRate returns the configured rate.
func (e Engine) TaxRate() decimal.Decimal { return e.rate }

// Compute sums the items and derives tax and total. Each aggregate is
// rounded half-up to 2 places; individual items are not rounded first.
func (e Engine) Compute(items []Item) Totals {
	parts, labour := decimal.Zero, decimal.Zero
	for _, it := range items {
		parts = parts.Add(it.Parts)
		labour = labour.Add(it.Labour)
	}

	partsSubtotal := round2(parts)
	labourSubtotal := round2(labour)
	tax := round2(partsSubtotal.Mul(e.rate))

	return Totals{
		PartsSubtotal:  partsSubtotal,
		LabourSubtotal: labourSubtotal,
		Tax:            tax,
		Total:          round2(partsSubtotal.Add(labourSubtotal).Add(tax)),
	}
}

// ComputeInvoice computes totals for the line items of an invoice.
func (e Engine) ComputeInvoice(items []domain.LineItem) Totals {
	in := make([]Item, len(items))
	for i, li := range items {
		in[i] = Item{Labour: li.LabourCost, Parts: li.PartsCost}
	}
	return e.Compute(in)
}

// FormatAmount renders an amount as "{symbol}1,234.56".
func FormatAmount(amount decimal.Decimal, symbol string) string {
	s := round2(amount).StringFixed(places)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	whole, frac, _ := strings.Cut(s, ".")
	out := symbol + groupThousands(whole) + "." + frac
	if neg {
		return "-" + out
	}
	return out
}

// FormatTotal renders a general invoice amount with the default symbol.
func FormatTotal(amount decimal.Decimal) string {
	return FormatAmount(amount, DefaultSymbol)
}

// FormatPrice renders a proforma price as "{currency} 1,234.56", falling
// back to the default symbol when currency is blank. A nil price yields
// MissingPrice.
func FormatPrice(price *decimal.Decimal, currency string) string {
	if price == nil {
		return MissingPrice
	}
	if c := strings.TrimSpace(currency); c != "" {
		return FormatAmount(*price, c+" ")
	}
	return FormatAmount(*price, DefaultSymbol)
}

func round2(d decimal.Decimal) decimal.Decimal {
	// decimal.Round rounds half away from zero, which is half-up for the
	// non-negative amounts invoices carry.
	return d.Round(places)
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	lead := len(digits) % 3
	if lead > 0 {
		b.WriteString(digits[:lead])
	}
	for i := lead; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}
