package errors

import (
	stdErrors "errors"
	"fmt"
	"net/http"
	"testing"
)

func TestWrapPreservesCause(t *testing.T) {
	cause := stdErrors.New("socket closed")
	err := Wrap(CodeCheckoutUnreachable, cause, "cart create failed")

	if !stdErrors.Is(err, cause) {
		t.Fatal("expected wrapped cause to be reachable via errors.Is")
	}
	if err.Code() != CodeCheckoutUnreachable {
		t.Fatalf("unexpected code: %s", err.Code())
	}
}

func TestAsThroughWrapping(t *testing.T) {
	inner := New(CodeCheckoutRejected, "insufficient stock")
	outer := fmt.Errorf("checkout: %w", inner)

	typed := As(outer)
	if typed == nil {
		t.Fatal("expected typed error through fmt wrapping")
	}
	if typed.Code() != CodeCheckoutRejected {
		t.Fatalf("unexpected code: %s", typed.Code())
	}
}

func TestMetadataForDomainCodes(t *testing.T) {
	cases := []struct {
		code   Code
		status int
	}{
		{CodeNoPurchasableItems, http.StatusUnprocessableEntity},
		{CodeCheckoutRejected, http.StatusUnprocessableEntity},
		{CodeCheckoutUnreachable, http.StatusServiceUnavailable},
		{Code("UNKNOWN"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := MetadataFor(tc.code).HTTPStatus; got != tc.status {
			t.Fatalf("code %s: expected status %d got %d", tc.code, tc.status, got)
		}
	}
}

func TestDumpChain(t *testing.T) {
	err := Wrap(CodeDependency, stdErrors.New("root"), "load recipes")
	dump := Dump(err)
	if dump.Code != CodeDependency {
		t.Fatalf("unexpected code: %s", dump.Code)
	}
	if len(dump.Chain) != 2 {
		t.Fatalf("expected chain of 2, got %d", len(dump.Chain))
	}
}
