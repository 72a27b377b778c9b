package errortypes

import (
	"errors"
	"fmt"
	"testing"
)

func TestKindPredicates(t *testing.T) {
	tests := []struct {
		name string
		err  error
		kind Kind
	}{
		{name: "not found", err: NotFound("note not found: %s", "x"), kind: KindNotFound},
		{name: "invalid argument", err: InvalidArgument("bad style"), kind: KindInvalidArgument},
		{name: "auth", err: Auth(errors.New("401"), "rejected"), kind: KindAuth},
		{name: "upstream", err: Upstream(errors.New("500"), "api failed"), kind: KindUpstream},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.kind {
				t.Errorf("KindOf = %q, want %q", got, tt.kind)
			}
		})
	}
}

func TestKindOfUncoded(t *testing.T) {
	if got := KindOf(errors.New("plain")); got != "" {
		t.Errorf("expected empty kind for uncoded error, got %q", got)
	}
	if got := KindOf(nil); got != "" {
		t.Errorf("expected empty kind for nil error, got %q", got)
	}
}

func TestKindOfWrapped(t *testing.T) {
	// Kind must survive fmt.Errorf wrapping.
	err := fmt.Errorf("handler: %w", NotFound("note not found: x"))
	if !IsNotFound(err) {
		t.Error("expected wrapped error to still be not_found")
	}
}

func TestErrorMessage(t *testing.T) {
	cause := errors.New("token expired")
	err := Auth(cause, "credentials rejected")

	if err.Error() != "credentials rejected: token expired" {
		t.Errorf("unexpected message: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("expected Unwrap to expose the cause")
	}

	plain := NotFound("gone")
	if plain.Error() != "gone" {
		t.Errorf("unexpected message without cause: %q", plain.Error())
	}
}
