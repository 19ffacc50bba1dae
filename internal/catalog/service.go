package catalog

import (
	"context"
	"fmt"

	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
)

// Service exposes read-only catalog lookups.
type Service interface {
	List(ctx context.Context) []Product
	GetByID(ctx context.Context, id string) (*Product, error)
}

type service struct {
	products []Product
	byID     map[string]*Product
}

// NewService builds a catalog service over the given product set.
func NewService(products []Product) (Service, error) {
	if len(products) == 0 {
		return nil, fmt.Errorf("at least one product is required")
	}
	byID := make(map[string]*Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}
	return &service{products: products, byID: byID}, nil
}

func (s *service) List(ctx context.Context) []Product {
	out := make([]Product, len(s.products))
	copy(out, s.products)
	return out
}

func (s *service) GetByID(ctx context.Context, id string) (*Product, error) {
	p, ok := s.byID[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return p, nil
}
