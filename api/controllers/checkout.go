package controllers

import (
	"net/http"
	"strings"

	"github.com/justocafe/storefront-api/api/middleware"
	"github.com/justocafe/storefront-api/api/responses"
	cartsvc "github.com/justocafe/storefront-api/internal/cart"
	checkoutsvc "github.com/justocafe/storefront-api/internal/checkout"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
)

const embeddedContextHeader = "X-Embedded-Context"

// Checkout hands the session cart off to the hosted checkout. The client
// signals an embedded browsing context (iframe, in-app browser) via the
// X-Embedded-Context header so the response carries the right redirect plan.
func Checkout(cartService cartsvc.Service, checkoutService checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cartService == nil || checkoutService == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing"))
			return
		}

		snap, err := cartService.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		embedded := strings.EqualFold(r.Header.Get(embeddedContextHeader), "true")

		result, err := checkoutService.CreateCheckout(r.Context(), snap.Items, embedded)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
