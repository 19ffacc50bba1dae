package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/justocafe/storefront-api/api/middleware"
	"github.com/justocafe/storefront-api/api/responses"
	"github.com/justocafe/storefront-api/api/validators"
	cartsvc "github.com/justocafe/storefront-api/internal/cart"
	"github.com/justocafe/storefront-api/pkg/currency"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	VariantID string `json:"variant_id" validate:"omitempty"`
}

type setQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type cartResponse struct {
	Items             []cartsvc.LineItem `json:"items"`
	Subtotal          int64              `json:"subtotal"`
	SubtotalFormatted string             `json:"subtotal_formatted"`
	Count             int                `json:"count"`
}

func newCartResponse(snap *cartsvc.Snapshot) cartResponse {
	return cartResponse{
		Items:             snap.Items,
		Subtotal:          snap.Subtotal,
		SubtotalFormatted: currency.FormatCOP(snap.Subtotal),
		Count:             snap.Count,
	}
}

func sessionFromRequest(r *http.Request) (string, error) {
	sessionID := middleware.SessionFromContext(r.Context())
	if sessionID == "" {
		return "", pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return sessionID, nil
}

// CartFetch returns the session's current cart.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

// CartAddItem adds one unit of a product/variant to the session cart.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.AddItem(r.Context(), sessionID, payload.ProductID, payload.VariantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

// CartSetQuantity replaces a line's quantity. Zero or negative removes it.
func CartSetQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineKey := chi.URLParam(r, "lineKey")
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line key required"))
			return
		}

		var payload setQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.SetQuantity(r.Context(), sessionID, lineKey, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}

// CartRemoveItem removes a line from the session cart.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID, err := sessionFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		lineKey := chi.URLParam(r, "lineKey")
		if lineKey == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "line key required"))
			return
		}

		snap, err := svc.RemoveItem(r.Context(), sessionID, lineKey)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCartResponse(snap))
	}
}
