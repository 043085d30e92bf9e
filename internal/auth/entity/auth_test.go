package entity

import (
	"testing"
	"time"
)

func TestOtpRecordExpiry(t *testing.T) {
	created := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	rec := OtpRecord{CreatedAt: created, ValiditySeconds: 180}

	if got := rec.ExpiresAt(); !got.Equal(created.Add(3 * time.Minute)) {
		t.Errorf("ExpiresAt() = %v", got)
	}

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "BeforeWindowEnds", now: created.Add(time.Minute), want: false},
		{name: "ExactlyAtExpiry", now: created.Add(3 * time.Minute), want: true},
		{name: "AfterExpiry", now: created.Add(time.Hour), want: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := rec.Expired(tc.now); got != tc.want {
				t.Errorf("Expired(%v) = %v, want %v", tc.now, got, tc.want)
			}
		})
	}
}

func TestAuthOtpTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want AuthOtpType
	}{
		{in: "EMAIL", want: AuthOtpTypeEmail},
		{in: "PHONE", want: AuthOtpTypePhone},
		{in: "email", want: AuthOtpTypeUnknown},
		{in: "", want: AuthOtpTypeUnknown},
	}

	for _, tc := range tests {
		if got := AuthOtpTypeFromString(tc.in); got != tc.want {
			t.Errorf("AuthOtpTypeFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestLoginTypeFromString(t *testing.T) {
	tests := []struct {
		in   string
		want LoginType
	}{
		{in: "email", want: LoginTypeEmail},
		{in: "phone_number", want: LoginTypePhone},
		{in: "PHONE", want: LoginTypeUnknown},
	}

	for _, tc := range tests {
		if got := LoginTypeFromString(tc.in); got != tc.want {
			t.Errorf("LoginTypeFromString(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
