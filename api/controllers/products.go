package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justocafe/storefront-api/api/responses"
	"github.com/justocafe/storefront-api/internal/catalog"
	"github.com/justocafe/storefront-api/pkg/currency"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

type variantResponse struct {
	ID             string `json:"id"`
	Weight         string `json:"weight"`
	Price          int64  `json:"price"`
	PriceFormatted string `json:"price_formatted"`
	Purchasable    bool   `json:"purchasable"`
}

type productResponse struct {
	catalog.Product
	PriceFormatted string            `json:"price_formatted"`
	VariantInfo    []variantResponse `json:"variant_info"`
}

func newProductResponse(p catalog.Product) productResponse {
	variants := make([]variantResponse, 0, len(p.Variants))
	for _, v := range p.Variants {
		variants = append(variants, variantResponse{
			ID:             v.ID,
			Weight:         v.Weight,
			Price:          v.Price,
			PriceFormatted: currency.FormatCOP(v.Price),
			Purchasable:    v.MerchandiseID != "",
		})
	}
	return productResponse{
		Product:        p,
		PriceFormatted: currency.FormatCOP(p.Price),
		VariantInfo:    variants,
	}
}

// ProductList returns the whole catalog with display-ready prices.
func ProductList(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		products := svc.List(r.Context())
		out := make([]productResponse, 0, len(products))
		for _, p := range products {
			out = append(out, newProductResponse(p))
		}
		responses.WriteSuccess(w, out)
	}
}

// ProductDetail returns a single product by id.
func ProductDetail(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		product, err := svc.GetByID(r.Context(), chi.URLParam(r, "productId"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newProductResponse(*product))
	}
}
