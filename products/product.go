package products

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/jrsteele09/go-invoice-client/apiclient"
	apperrors "github.com/jrsteele09/go-invoice-client/internal/errors"
)

// Product is a row of the product table
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  float64 `json:"quantity"`
	LineTotal float64 `json:"lineTotal"` // UnitPrice * Quantity
}

func NewProduct(id, name string, unitPrice, quantity float64) Product {
	return Product{
		ID:        id,
		Name:      name,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: unitPrice * quantity,
	}
}

// FromRemote maps an API record to a table row
func FromRemote(rp apiclient.RemoteProduct) Product {
	return NewProduct(rp.ID, rp.ProductName, rp.Price, rp.Quantity)
}

// Draft is the unsaved add-product input, kept as the raw text the user typed
type Draft struct {
	Name     string
	Price    string
	Quantity string
}

// Complete reports whether every field has been filled in. Nothing else
// about the values is checked here.
func (d Draft) Complete() bool {
	return strings.TrimSpace(d.Name) != "" &&
		strings.TrimSpace(d.Price) != "" &&
		strings.TrimSpace(d.Quantity) != ""
}

// Parse converts the price and quantity text to numbers
func (d Draft) Parse() (apiclient.NewProduct, error) {
	price, err := parseNumber("price", d.Price)
	if err != nil {
		return apiclient.NewProduct{}, err
	}
	quantity, err := parseNumber("quantity", d.Quantity)
	if err != nil {
		return apiclient.NewProduct{}, err
	}
	return apiclient.NewProduct{
		ProductName: strings.TrimSpace(d.Name),
		Price:       price,
		Quantity:    quantity,
	}, nil
}

func parseNumber(field, text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %s %q is not a number", apperrors.ErrValidation, field, text)
	}
	return v, nil
}
