// Package checkout hands a session cart off to the hosted Shopify checkout.
// Lines without a merchandise reference are dropped before the remote call;
// a cart with nothing purchasable is rejected locally without touching the
// network.
package checkout

import (
	"context"
	"time"

	"github.com/justocafe/storefront-api/internal/cart"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
	"github.com/justocafe/storefront-api/pkg/metrics"
	"github.com/justocafe/storefront-api/pkg/shopify"
)

const (
	outcomeSuccess            = "success"
	outcomeRejected           = "rejected"
	outcomeUnreachable        = "unreachable"
	outcomeNoPurchasableItems = "no_purchasable_items"
)

// Result is a successful checkout hand-off: the remote cart id, the hosted
// checkout URL and how the client should navigate to it.
type Result struct {
	CartID      string       `json:"cart_id"`
	CheckoutURL string       `json:"checkout_url"`
	Redirect    RedirectPlan `json:"redirect"`
}

type cartCreator interface {
	CartCreate(ctx context.Context, lines []shopify.CartLine) (*shopify.Cart, error)
}

// Service turns a cart snapshot into a hosted checkout URL.
type Service interface {
	CreateCheckout(ctx context.Context, items []cart.LineItem, embedded bool) (*Result, error)
}

type service struct {
	shopify cartCreator
	metrics *metrics.CheckoutMetrics
	logger  *logger.Logger
	now     func() time.Time
}

// NewService wires the checkout flow to the Storefront client.
func NewService(creator cartCreator, checkoutMetrics *metrics.CheckoutMetrics, logg *logger.Logger) Service {
	return &service{
		shopify: creator,
		metrics: checkoutMetrics,
		logger:  logg,
		now:     time.Now,
	}
}

// CreateCheckout filters the cart down to purchasable lines, creates the
// remote cart and returns the hosted checkout URL with a redirect plan.
// Quantities survive the hand-off unchanged.
func (s *service) CreateCheckout(ctx context.Context, items []cart.LineItem, embedded bool) (*Result, error) {
	start := s.now()

	lines, skipped := purchasableLines(items)
	if len(lines) == 0 {
		s.metrics.ObserveAttempt(outcomeNoPurchasableItems, s.now().Sub(start))
		return nil, pkgerrors.New(pkgerrors.CodeNoPurchasableItems, "cart has no items available for online checkout").
			WithDetails(map[string]any{"skipped_line_keys": skipped})
	}

	remote, err := s.shopify.CartCreate(ctx, lines)
	if err != nil {
		s.metrics.ObserveAttempt(outcomeFor(err), s.now().Sub(start))
		return nil, err
	}

	s.metrics.ObserveAttempt(outcomeSuccess, s.now().Sub(start))

	ctx = s.logger.WithFields(ctx, map[string]any{
		"cart_id":       remote.ID,
		"lines":         len(lines),
		"skipped_lines": len(skipped),
	})
	s.logger.Info(ctx, "checkout created")

	return &Result{
		CartID:      remote.ID,
		CheckoutURL: remote.CheckoutURL,
		Redirect:    PlanRedirect(remote.CheckoutURL, embedded),
	}, nil
}

// purchasableLines keeps lines that carry a merchandise reference and
// reports the keys of the ones it drops.
func purchasableLines(items []cart.LineItem) ([]shopify.CartLine, []string) {
	lines := make([]shopify.CartLine, 0, len(items))
	skipped := make([]string, 0)
	for _, item := range items {
		if item.MerchandiseID == "" {
			skipped = append(skipped, item.Key)
			continue
		}
		lines = append(lines, shopify.CartLine{
			MerchandiseID: item.MerchandiseID,
			Quantity:      item.Quantity,
		})
	}
	return lines, skipped
}

func outcomeFor(err error) string {
	typed := pkgerrors.As(err)
	if typed == nil {
		return outcomeUnreachable
	}
	switch typed.Code() {
	case pkgerrors.CodeCheckoutRejected:
		return outcomeRejected
	case pkgerrors.CodeCheckoutUnreachable:
		return outcomeUnreachable
	default:
		return outcomeUnreachable
	}
}
