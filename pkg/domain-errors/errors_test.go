package domainerrors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHasCodeWalksWrappedChain(t *testing.T) {
	base := New(CodeNotFound, "survey not found")
	wrapped := Wrap(base, CodeInternal, "failed to load survey")

	if !HasCode(wrapped, CodeInternal) {
		t.Fatalf("expected outer code to match")
	}
	if !HasCode(wrapped, CodeNotFound) {
		t.Fatalf("expected inner code to match through the chain")
	}
	if HasCode(wrapped, CodeConflict) {
		t.Fatalf("did not expect unrelated code to match")
	}
}

func TestHasCodeThroughFmtWrapping(t *testing.T) {
	err := fmt.Errorf("store: %w", New(CodeValidation, "bad document"))
	if !HasCode(err, CodeValidation) {
		t.Fatalf("expected code to survive fmt.Errorf wrapping")
	}
}

func TestMessageOfHidesPlainErrors(t *testing.T) {
	if got := MessageOf(errors.New("pq: connection refused")); got != "internal error" {
		t.Fatalf("expected generic message for plain error, got %q", got)
	}
	if got := MessageOf(New(CodeBadRequest, "invalid request body")); got != "invalid request body" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestToHTTPStatus(t *testing.T) {
	cases := map[Code]int{
		CodeBadRequest:         http.StatusBadRequest,
		CodeValidation:         http.StatusUnprocessableEntity,
		CodeInvariantViolation: http.StatusUnprocessableEntity,
		CodeUnauthorized:       http.StatusUnauthorized,
		CodeForbidden:          http.StatusForbidden,
		CodeNotFound:           http.StatusNotFound,
		CodeConflict:           http.StatusConflict,
		CodeTimeout:            http.StatusGatewayTimeout,
		CodeInternal:           http.StatusInternalServerError,
	}
	for code, want := range cases {
		if got := ToHTTPStatus(code); got != want {
			t.Errorf("ToHTTPStatus(%s) = %d, want %d", code, got, want)
		}
	}
}
