package domain

import "testing"

func TestNormalizeBalance(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		decimals string
		want     string
	}{
		{"truncates fraction", "1500000000000000000", "18", "1"},
		{"exact unit", "2000000", "6", "2"},
		{"below one unit", "999999", "6", "0"},
		{"zero decimals", "1500", "0", "1500"},
		{"zero balance", "0", "18", "0"},
		{"beyond int64", "123456789012345678901234567890", "18", "123456789012"},
		{"negative truncates toward zero", "-15", "1", "-1"},
		{"invalid balance", "abc", "18", "0"},
		{"decimal balance", "1.5", "0", "0"},
		{"empty balance", "", "18", "0"},
		{"empty decimals", "1000", "", "0"},
		{"negative decimals", "1000", "-1", "0"},
		{"invalid decimals", "1000", "eighteen", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := NormalizeBalance(tt.raw, tt.decimals); got != tt.want {
				t.Errorf("NormalizeBalance(%q, %q) = %q, want %q", tt.raw, tt.decimals, got, tt.want)
			}
		})
	}
}
