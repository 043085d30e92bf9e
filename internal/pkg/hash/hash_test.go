package hash

import "testing"

func TestBcrypt(t *testing.T) {
	h := NewBcrypt(4, "pepper")

	hashed, err := h.Hash("my-password")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if !h.Verify(string(hashed), "my-password") {
		t.Error("Verify() = false for the original plaintext")
	}
	if h.Verify(string(hashed), "other-password") {
		t.Error("Verify() = true for a different plaintext")
	}

	other := NewBcrypt(4, "different-pepper")
	if other.Verify(string(hashed), "my-password") {
		t.Error("Verify() = true across different peppers")
	}
}

func TestHMACSHA256(t *testing.T) {
	h := NewHMACSHA256("secret")

	hashed, err := h.Hash("483920")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	again, err := h.Hash("483920")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if string(hashed) != string(again) {
		t.Error("HMAC must be deterministic for the same input")
	}

	if !h.Verify(string(hashed), "483920") {
		t.Error("Verify() = false for the original input")
	}
	if h.Verify(string(hashed), "000000") {
		t.Error("Verify() = true for a different input")
	}
	if NewHMACSHA256("other").Verify(string(hashed), "483920") {
		t.Error("Verify() = true across different secrets")
	}
}
