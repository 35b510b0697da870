// Package catalog declares the purchase and refinance questionnaires.
package catalog

import (
	"fmt"

	ff "mortgage-connect-be/pkg/formflow"
)

const (
	VariantBuy       = "buy"
	VariantRefinance = "refinance"
)

// Registry holds one built catalog per form variant.
type Registry struct {
	catalogs map[string]*ff.Catalog
	order    []string
}

// Build constructs both catalogs. An error here is a declaration bug.
func Build() (*Registry, error) {
	buy, err := ff.NewCatalog(VariantBuy, purchaseSteps()...)
	if err != nil {
		return nil, err
	}
	refi, err := ff.NewCatalog(VariantRefinance, refinanceSteps()...)
	if err != nil {
		return nil, err
	}
	return &Registry{
		catalogs: map[string]*ff.Catalog{VariantBuy: buy, VariantRefinance: refi},
		order:    []string{VariantBuy, VariantRefinance},
	}, nil
}

func MustBuild() *Registry {
	r, err := Build()
	if err != nil {
		panic(fmt.Sprintf("catalog: %v", err))
	}
	return r
}

// ForVariant returns the catalog for "buy" or "refinance".
func (r *Registry) ForVariant(variant string) (*ff.Catalog, error) {
	c, ok := r.catalogs[variant]
	if !ok {
		return nil, fmt.Errorf("unknown form variant %q", variant)
	}
	return c, nil
}

func (r *Registry) Variants() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
