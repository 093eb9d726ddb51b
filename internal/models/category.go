package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// Category is the closed set of product categories.
type Category string

const (
	CategoryElectronica  Category = "ELECTRONICA"
	CategoryRopa         Category = "ROPA"
	CategoryAlimentos    Category = "ALIMENTOS"
	CategoryHogar        Category = "HOGAR"
	CategoryDeportes     Category = "DEPORTES"
	CategoryHerramientas Category = "HERRAMIENTAS"
	CategoryJuguetes     Category = "JUGUETES"
	CategoryOtros        Category = "OTROS"
)

// ErrUnknownCategory is returned by ParseCategory for names outside the closed set.
var ErrUnknownCategory = errors.New("categoría no reconocida")

var categories = []Category{
	CategoryElectronica,
	CategoryRopa,
	CategoryAlimentos,
	CategoryHogar,
	CategoryDeportes,
	CategoryHerramientas,
	CategoryJuguetes,
	CategoryOtros,
}

// Categories returns every known category in declaration order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryNames returns the category names as plain strings.
func CategoryNames() []string {
	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, string(c))
	}
	return names
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	for _, known := range categories {
		if c == known {
			return true
		}
	}
	return false
}

// ParseCategory converts a path segment into a Category. Matching is exact.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %s", ErrUnknownCategory, s)
	}
	return c, nil
}
