package services

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/vsinha/mrpanalysis/pkg/domain/entities"
)

// dottedI folds the Turkish i variants onto a plain i after case folding
var dottedI = strings.NewReplacer("i\u0307", "i", "\u0131", "i")

// ProductResolver resolves product references against a catalog snapshot.
// Precedence is deterministic: id, then code, then case-insensitive name.
type ProductResolver struct {
	products []entities.Product
	byID     map[string]int
	byCode   map[string]int
	byName   map[string]int
}

// NewProductResolver indexes the catalog. When two products share an id,
// code or name the first one wins.
func NewProductResolver(products []entities.Product) *ProductResolver {
	r := &ProductResolver{
		products: products,
		byID:     make(map[string]int, len(products)),
		byCode:   make(map[string]int, len(products)),
		byName:   make(map[string]int, len(products)),
	}

	for i, p := range products {
		indexOnce(r.byID, strings.TrimSpace(p.ID), i)
		indexOnce(r.byCode, strings.TrimSpace(p.Code), i)
		indexOnce(r.byName, normalizeName(p.Name), i)
	}

	return r
}

func indexOnce(index map[string]int, key string, position int) {
	if key == "" {
		return
	}
	if _, exists := index[key]; !exists {
		index[key] = position
	}
}

// normalizeName case-folds a product name. Casers keep state, so each call
// builds its own.
func normalizeName(name string) string {
	return dottedI.Replace(cases.Fold().String(strings.TrimSpace(name)))
}

// Resolve returns the catalog product for a reference or ErrProductNotFound
func (r *ProductResolver) Resolve(ref entities.ProductRef) (*entities.Product, error) {
	if id := strings.TrimSpace(ref.ID); id != "" {
		if i, ok := r.byID[id]; ok {
			return &r.products[i], nil
		}
	}
	if code := strings.TrimSpace(ref.Code); code != "" {
		if i, ok := r.byCode[code]; ok {
			return &r.products[i], nil
		}
	}
	if name := normalizeName(ref.Name); name != "" {
		if i, ok := r.byName[name]; ok {
			return &r.products[i], nil
		}
	}

	return nil, fmt.Errorf("%w: %s", entities.ErrProductNotFound, ref)
}

// ResolveID is a shorthand for resolving by stable id only
func (r *ProductResolver) ResolveID(id string) (*entities.Product, error) {
	return r.Resolve(entities.ProductRef{ID: id})
}
