package products

import (
	"fmt"
	"sort"
)

type SortField string

const (
	SortByName      SortField = "name"
	SortByQuantity  SortField = "quantity"
	SortByUnitPrice SortField = "unitPrice"
)

// ParseSortField accepts the field names used by the CLI; "price" is an alias
// for unitPrice.
func ParseSortField(s string) (SortField, error) {
	switch s {
	case string(SortByName):
		return SortByName, nil
	case string(SortByQuantity), "qty":
		return SortByQuantity, nil
	case string(SortByUnitPrice), "price":
		return SortByUnitPrice, nil
	}
	return "", fmt.Errorf("unknown sort field %q", s)
}

type SortDirection string

const (
	Ascending  SortDirection = "asc"
	Descending SortDirection = "desc"
)

// SortSpec is the current column ordering
type SortSpec struct {
	Field     SortField
	Direction SortDirection
}

// DefaultSort is name ascending
var DefaultSort = SortSpec{Field: SortByName, Direction: Ascending}

// Next is the ordering after a click on field's header: the same field flips
// direction, a different field starts ascending.
func (s SortSpec) Next(field SortField) SortSpec {
	if s.Field == field && s.Direction == Ascending {
		return SortSpec{Field: field, Direction: Descending}
	}
	return SortSpec{Field: field, Direction: Ascending}
}

// Sorted returns a sorted copy of products
func (s SortSpec) Sorted(products []Product) []Product {
	sorted := make([]Product, len(products))
	copy(sorted, products)

	sort.SliceStable(sorted, func(i, j int) bool {
		if s.Direction == Descending {
			return less(s.Field, sorted[j], sorted[i])
		}
		return less(s.Field, sorted[i], sorted[j])
	})
	return sorted
}

func less(field SortField, a, b Product) bool {
	switch field {
	case SortByQuantity:
		return a.Quantity < b.Quantity
	case SortByUnitPrice:
		return a.UnitPrice < b.UnitPrice
	default:
		return a.Name < b.Name
	}
}
