package checkout

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/justocafe/storefront-api/internal/cart"
	pkgerrors "github.com/justocafe/storefront-api/pkg/errors"
	"github.com/justocafe/storefront-api/pkg/logger"
	"github.com/justocafe/storefront-api/pkg/shopify"
)

type stubCreator struct {
	calls int
	lines []shopify.CartLine
	cart  *shopify.Cart
	err   error
}

func (s *stubCreator) CartCreate(ctx context.Context, lines []shopify.CartLine) (*shopify.Cart, error) {
	s.calls++
	s.lines = lines
	if s.err != nil {
		return nil, s.err
	}
	return s.cart, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestCreateCheckoutFiltersUnpurchasableLines(t *testing.T) {
	creator := &stubCreator{cart: &shopify.Cart{ID: "gid://shopify/Cart/1", CheckoutURL: "https://shop.example/checkout"}}
	svc := NewService(creator, nil, testLogger())

	items := []cart.LineItem{
		{Key: "castillo-castillo-250", MerchandiseID: "gid://shopify/ProductVariant/43343308062926", Quantity: 2},
		{Key: "tabi-tabi-500", MerchandiseID: "", Quantity: 1},
	}

	result, err := svc.CreateCheckout(context.Background(), items, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creator.calls != 1 {
		t.Fatalf("expected one remote call, got %d", creator.calls)
	}
	if len(creator.lines) != 1 {
		t.Fatalf("expected one purchasable line, got %+v", creator.lines)
	}
	if creator.lines[0].Quantity != 2 {
		t.Fatalf("quantity should survive the hand-off, got %d", creator.lines[0].Quantity)
	}
	if result.CheckoutURL != "https://shop.example/checkout" {
		t.Fatalf("unexpected checkout url: %q", result.CheckoutURL)
	}
}

func TestCreateCheckoutEmptyCartSkipsNetwork(t *testing.T) {
	creator := &stubCreator{}
	svc := NewService(creator, nil, testLogger())

	items := []cart.LineItem{
		{Key: "tabi-tabi-500", MerchandiseID: "", Quantity: 1},
		{Key: "bourbon-bourbon-250", MerchandiseID: "", Quantity: 3},
	}

	_, err := svc.CreateCheckout(context.Background(), items, false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNoPurchasableItems {
		t.Fatalf("expected NO_PURCHASABLE_ITEMS, got %v", err)
	}
	if creator.calls != 0 {
		t.Fatalf("no remote call should be issued, got %d", creator.calls)
	}

	details, ok := typed.Details().(map[string]any)
	if !ok {
		t.Fatalf("expected details map, got %T", typed.Details())
	}
	skipped, ok := details["skipped_line_keys"].([]string)
	if !ok || len(skipped) != 2 {
		t.Fatalf("expected both line keys reported, got %v", details)
	}
}

func TestCreateCheckoutNilItems(t *testing.T) {
	creator := &stubCreator{}
	svc := NewService(creator, nil, testLogger())

	_, err := svc.CreateCheckout(context.Background(), nil, false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNoPurchasableItems {
		t.Fatalf("expected NO_PURCHASABLE_ITEMS, got %v", err)
	}
	if creator.calls != 0 {
		t.Fatalf("no remote call should be issued, got %d", creator.calls)
	}
}

func TestCreateCheckoutPropagatesRejection(t *testing.T) {
	rejection := pkgerrors.Wrap(pkgerrors.CodeCheckoutRejected, errors.New("merchandise not found"), "merchandise not found")
	creator := &stubCreator{err: rejection}
	svc := NewService(creator, nil, testLogger())

	items := []cart.LineItem{{Key: "castillo", MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 1}}

	_, err := svc.CreateCheckout(context.Background(), items, false)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeCheckoutRejected {
		t.Fatalf("expected CHECKOUT_REJECTED, got %v", err)
	}
	if !strings.Contains(typed.Message(), "merchandise not found") {
		t.Fatalf("provider message should be kept verbatim, got %q", typed.Message())
	}
}

func TestCreateCheckoutPropagatesUnreachable(t *testing.T) {
	creator := &stubCreator{err: pkgerrors.Wrap(pkgerrors.CodeCheckoutUnreachable, errors.New("connection refused"), "shopify cart create")}
	svc := NewService(creator, nil, testLogger())

	items := []cart.LineItem{{Key: "castillo", MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 1}}

	_, err := svc.CreateCheckout(context.Background(), items, false)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeCheckoutUnreachable {
		t.Fatalf("expected CHECKOUT_UNREACHABLE, got %v", err)
	}
}

func TestRedirectPlanByContext(t *testing.T) {
	url := "https://shop.example/checkout"

	plan := PlanRedirect(url, false)
	if plan.Target != TargetCurrent || plan.URL != url || plan.FallbackURL != "" {
		t.Fatalf("unexpected top-level plan: %+v", plan)
	}

	plan = PlanRedirect(url, true)
	if plan.Target != TargetExternal || plan.FallbackURL != url {
		t.Fatalf("unexpected embedded plan: %+v", plan)
	}
}

func TestCreateCheckoutEmbeddedRedirect(t *testing.T) {
	creator := &stubCreator{cart: &shopify.Cart{ID: "c1", CheckoutURL: "https://shop.example/checkout"}}
	svc := NewService(creator, nil, testLogger())

	items := []cart.LineItem{{Key: "castillo", MerchandiseID: "gid://shopify/ProductVariant/1", Quantity: 1}}

	result, err := svc.CreateCheckout(context.Background(), items, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Redirect.Target != TargetExternal {
		t.Fatalf("embedded checkout should use external target, got %+v", result.Redirect)
	}
}
