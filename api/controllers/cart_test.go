package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/justocafe/storefront-api/api/middleware"
	cartsvc "github.com/justocafe/storefront-api/internal/cart"
	"github.com/justocafe/storefront-api/internal/catalog"
	"github.com/justocafe/storefront-api/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func testCartService(t *testing.T) cartsvc.Service {
	t.Helper()
	products, err := catalog.Load()
	if err != nil {
		t.Fatalf("load catalog: %v", err)
	}
	cat, err := catalog.NewService(products)
	if err != nil {
		t.Fatalf("catalog service: %v", err)
	}
	return cartsvc.NewService(cartsvc.NewMemoryStore(time.Hour), cat, testLogger())
}

func sessionContext(t *testing.T) context.Context {
	t.Helper()
	return middleware.WithCartSessionID(context.Background(), uuid.NewString())
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var envelope struct {
		Data map[string]any `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope.Data
}

func TestCartAddItem(t *testing.T) {
	svc := testCartService(t)
	logg := testLogger()
	ctx := sessionContext(t)

	body := strings.NewReader(`{"product_id":"castillo","variant_id":"castillo-500"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	CartAddItem(svc, logg).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	data := decodeData(t, rec)
	if data["subtotal"].(float64) != 68000 {
		t.Fatalf("unexpected subtotal: %v", data["subtotal"])
	}
	if data["subtotal_formatted"] != "$ 68.000" {
		t.Fatalf("unexpected formatted subtotal: %v", data["subtotal_formatted"])
	}
	if data["count"].(float64) != 1 {
		t.Fatalf("unexpected count: %v", data["count"])
	}
}

func TestCartAddItemUnknownProduct(t *testing.T) {
	svc := testCartService(t)
	ctx := sessionContext(t)

	body := strings.NewReader(`{"product_id":"geisha"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestCartAddItemInvalidBody(t *testing.T) {
	svc := testCartService(t)
	ctx := sessionContext(t)

	body := strings.NewReader(`{"variant_id":"castillo-500"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", body).WithContext(ctx)
	rec := httptest.NewRecorder()
	CartAddItem(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestCartSetQuantityRoundTrip(t *testing.T) {
	svc := testCartService(t)
	logg := testLogger()
	ctx := sessionContext(t)

	addBody := strings.NewReader(`{"product_id":"castillo","variant_id":"castillo-250"}`)
	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", addBody).WithContext(ctx)
	addRec := httptest.NewRecorder()
	CartAddItem(svc, logg).ServeHTTP(addRec, addReq)
	if addRec.Code != http.StatusOK {
		t.Fatalf("add failed: %d", addRec.Code)
	}

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("lineKey", "castillo-castillo-250")
	setCtx := context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	setBody := strings.NewReader(`{"quantity":2}`)
	setReq := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/castillo-castillo-250", setBody).WithContext(setCtx)
	setRec := httptest.NewRecorder()
	CartSetQuantity(svc, logg).ServeHTTP(setRec, setReq)

	if setRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", setRec.Code, setRec.Body.String())
	}
	data := decodeData(t, setRec)
	if data["subtotal"].(float64) != 76000 {
		t.Fatalf("unexpected subtotal: %v", data["subtotal"])
	}

	zeroBody := strings.NewReader(`{"quantity":0}`)
	zeroReq := httptest.NewRequest(http.MethodPut, "/api/v1/cart/items/castillo-castillo-250", zeroBody).WithContext(setCtx)
	zeroRec := httptest.NewRecorder()
	CartSetQuantity(svc, logg).ServeHTTP(zeroRec, zeroReq)

	if zeroRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", zeroRec.Code)
	}
	data = decodeData(t, zeroRec)
	if data["count"].(float64) != 0 {
		t.Fatalf("zero quantity should empty the cart, got %v", data["count"])
	}
}

func TestCartRemoveItem(t *testing.T) {
	svc := testCartService(t)
	logg := testLogger()
	ctx := sessionContext(t)

	addBody := strings.NewReader(`{"product_id":"tabi","variant_id":"tabi-250"}`)
	addReq := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", addBody).WithContext(ctx)
	addRec := httptest.NewRecorder()
	CartAddItem(svc, logg).ServeHTTP(addRec, addReq)

	routeCtx := chi.NewRouteContext()
	routeCtx.URLParams.Add("lineKey", "tabi-tabi-250")
	delCtx := context.WithValue(ctx, chi.RouteCtxKey, routeCtx)

	delReq := httptest.NewRequest(http.MethodDelete, "/api/v1/cart/items/tabi-tabi-250", nil).WithContext(delCtx)
	delRec := httptest.NewRecorder()
	CartRemoveItem(svc, logg).ServeHTTP(delRec, delReq)

	if delRec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", delRec.Code)
	}
	data := decodeData(t, delRec)
	if data["count"].(float64) != 0 {
		t.Fatalf("expected empty cart, got %v", data["count"])
	}
}

func TestCartFetchMissingSession(t *testing.T) {
	svc := testCartService(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart", nil)
	rec := httptest.NewRecorder()
	CartFetch(svc, testLogger()).ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 without session middleware, got %d", rec.Code)
	}
}
