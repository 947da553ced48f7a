package apperror

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"not found", NotFound("sale not found"), KindNotFound},
		{"invalid request", InvalidRequest("bad quantity"), KindInvalidRequest},
		{"insufficient stock", InsufficientStock("no stock for %s", "Chips"), KindInsufficientStock},
		{"wrapped internal", Internal(errors.New("driver broke"), "query failed"), KindInternal},
		{"plain error", errors.New("something"), KindInternal},
		{"nested in fmt wrap", fmt.Errorf("outer: %w", Forbidden("nope")), KindForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Fatalf("KindOf() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestReasonMasksInternalErrors(t *testing.T) {
	err := Internal(errors.New("pq: connection refused"), "failed to load sale")
	if got := Reason(err); got != "internal server error" {
		t.Fatalf("internal reason leaked: %q", got)
	}

	if got := Reason(NotFound("sale not found")); got != "sale not found" {
		t.Fatalf("Reason() = %q, want the typed message", got)
	}

	if got := Reason(errors.New("raw")); got != "internal server error" {
		t.Fatalf("untyped reason leaked: %q", got)
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("row lock timeout")
	err := Internal(cause, "transaction failed")

	if !errors.Is(err, cause) {
		t.Fatal("expected errors.Is to find the wrapped cause")
	}
}
