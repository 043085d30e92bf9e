package validator

import "testing"

func TestV10ValidatorKRPhone(t *testing.T) {
	type payload struct {
		Number string `validate:"required,krphone"`
	}

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name    string
		number  string
		wantErr bool
	}{
		{name: "Mobile", number: "010-1234-5678", wantErr: false},
		{name: "MobileShortMiddle", number: "010-123-4567", wantErr: false},
		{name: "Voip", number: "070-7777-8888", wantErr: false},
		{name: "WrongPrefix", number: "011-1234-5678", wantErr: true},
		{name: "NoDashes", number: "01012345678", wantErr: true},
		{name: "TooShort", number: "010-12-345", wantErr: true},
		{name: "Empty", number: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.Validate(payload{Number: tt.number})

			if tt.wantErr && err == nil {
				t.Fatalf("expected error for %q, got nil", tt.number)
			}
			if !tt.wantErr && err != nil {
				t.Fatalf("unexpected error for %q: %v", tt.number, err)
			}
		})
	}
}

func TestV10ValidatorPassword(t *testing.T) {
	type payload struct {
		Password string `validate:"required,password"`
	}

	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := v.Validate(payload{Password: "short"}); err == nil {
		t.Fatal("expected error for short password, got nil")
	}
	if err := v.Validate(payload{Password: "long-enough-pass"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
