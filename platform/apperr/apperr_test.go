package apperr

import (
	"errors"
	"net/http"
	"testing"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindValidation, http.StatusBadRequest},
		{KindBadRequest, http.StatusBadRequest},
		{KindConflict, http.StatusConflict},
		{KindForbidden, http.StatusForbidden},
		{KindUnauthorized, http.StatusUnauthorized},
		{KindInternal, http.StatusInternalServerError},
		{KindUnknown, http.StatusBadRequest},
	}

	for _, tt := range tests {
		if got := New(tt.kind, "x").HTTPStatus(); got != tt.want {
			t.Errorf("kind %d: status = %d, want %d", tt.kind, got, tt.want)
		}
	}
}

func TestErrorMessage(t *testing.T) {
	plain := New(KindNotFound, "resident not found")
	if plain.Error() != "resident not found" {
		t.Errorf("Error() = %q", plain.Error())
	}

	withOp := New(KindInternal, "query failed").WithOp("residents.GetByID")
	if withOp.Error() != "residents.GetByID: query failed" {
		t.Errorf("Error() = %q", withOp.Error())
	}
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	wrapped := Wrap(KindInternal, "query failed", cause)

	if !errors.Is(wrapped, cause) {
		t.Error("wrapped error should match its cause via errors.Is")
	}
}

func TestGetKind(t *testing.T) {
	if got := GetKind(Forbidden("nope")); got != KindForbidden {
		t.Errorf("GetKind = %d, want KindForbidden", got)
	}
	if got := GetKind(errors.New("plain")); got != KindUnknown {
		t.Errorf("GetKind on plain error = %d, want KindUnknown", got)
	}
	if !Is(Conflict("dup"), KindConflict) {
		t.Error("Is(Conflict, KindConflict) = false")
	}
}
