package finder

import "testing"

func TestParseDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want int
	}{
		{"PT0S", 0},
		{"PT20M", 1200},
		{"PT1H", 3600},
		{"PT4M13S", 253},
		{"PT1H2M3S", 3723},
		{"PT59S", 59},
		{"PT2H30S", 7230},
		{"PT", 0},
	}

	for _, tt := range tests {
		got, err := ParseDuration(tt.raw)
		if err != nil {
			t.Errorf("ParseDuration(%q) unexpected error: %v", tt.raw, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseDuration(%q) = %d; want %d", tt.raw, got, tt.want)
		}
	}
}

func TestParseDurationMalformed(t *testing.T) {
	for _, raw := range []string{"", "P", "PTXS", "PT1HxM", "PT1.5M"} {
		if _, err := ParseDuration(raw); err == nil {
			t.Errorf("ParseDuration(%q) expected error, got nil", raw)
		}
	}
}
