package products

import "github.com/shopspring/decimal"

// GSTRate is the fixed tax applied to the subtotal
const GSTRate = 0.18

// Currency prefixes displayed amounts
const Currency = "INR"

// Totals are kept at full precision; only Display rounds.
type Totals struct {
	Subtotal float64
	Tax      float64
	Total    float64
}

// ComputeTotals sums the line totals and applies GST
func ComputeTotals(products []Product) Totals {
	var subtotal float64
	for _, p := range products {
		subtotal += p.LineTotal
	}
	tax := subtotal * GSTRate
	return Totals{Subtotal: subtotal, Tax: tax, Total: subtotal + tax}
}

// DisplayTotals holds presentation strings rounded to one decimal place
type DisplayTotals struct {
	Subtotal string
	Tax      string
	Total    string
}

func (t Totals) Display() DisplayTotals {
	return DisplayTotals{
		Subtotal: FormatAmount(t.Subtotal),
		Tax:      FormatAmount(t.Tax),
		Total:    FormatAmount(t.Total),
	}
}

// FormatAmount renders v as "INR 41.3"
func FormatAmount(v float64) string {
	return Currency + " " + decimal.NewFromFloat(v).StringFixed(1)
}
