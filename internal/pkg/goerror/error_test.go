package goerror

import (
	"errors"
	"net/http"
	"testing"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		name string
		code Code
		want int
	}{
		{name: "InvalidInput", code: CodeInvalidInput, want: http.StatusUnprocessableEntity},
		{name: "InvalidFormat", code: CodeInvalidFormat, want: http.StatusBadRequest},
		{name: "NotFound", code: CodeNotFound, want: http.StatusNotFound},
		{name: "Conflict", code: CodeConflict, want: http.StatusConflict},
		{name: "Unauthorized", code: CodeUnauthorized, want: http.StatusUnauthorized},
		{name: "Forbidden", code: CodeForbidden, want: http.StatusForbidden},
		{name: "Internal", code: CodeInternal, want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := NewBusiness("boom", tc.code)

			var gerr *Error
			if !errors.As(err, &gerr) {
				t.Fatalf("error = %v, want *Error", err)
			}
			if got := gerr.StatusCode(); got != tc.want {
				t.Errorf("StatusCode() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestNewBusinessDetail(t *testing.T) {
	err := NewBusinessDetail("invalid phone number format", CodeInvalidInput,
		"invalid_number", "number_format", "010-0000-0000")

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *Error", err)
	}

	if gerr.Detail() != "invalid_number" {
		t.Errorf("Detail() = %q, want %q", gerr.Detail(), "invalid_number")
	}
	if got := gerr.Fields()["number_format"]; got != "010-0000-0000" {
		t.Errorf("Fields()[number_format] = %q", got)
	}
	if gerr.Msg() != "invalid phone number format" {
		t.Errorf("Msg() = %q", gerr.Msg())
	}
}

func TestNewServerWraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewServer(cause)

	if !errors.Is(err, cause) {
		t.Error("NewServer must wrap the underlying error")
	}

	var gerr *Error
	if !errors.As(err, &gerr) {
		t.Fatalf("error = %v, want *Error", err)
	}
	if gerr.Type() != TypeServer {
		t.Errorf("Type() = %v, want TypeServer", gerr.Type())
	}
}
