package domain

import (
	"errors"
	"testing"
)

func TestNormalizePoolAddress(t *testing.T) {
	got, err := NormalizePoolAddress(" 0xBEBc44782C7dB0a1A60Cb6fe97d0b483032FF1C7 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "0xbebc44782c7db0a1a60cb6fe97d0b483032ff1c7" {
		t.Errorf("address = %q, want lower-case form", got)
	}
}

func TestNormalizePoolAddressInvalid(t *testing.T) {
	for _, input := range []string{"", "   ", "0x1234", "not-an-address"} {
		_, err := NormalizePoolAddress(input)
		if !errors.Is(err, ErrMissingParameter) {
			t.Errorf("NormalizePoolAddress(%q) error = %v, want ErrMissingParameter", input, err)
		}
	}
}
