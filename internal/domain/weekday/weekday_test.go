package weekday

import (
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/bistrohunter/internal/domain"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-10-14", "lunes"},
		{"2024-10-16", "miércoles"},
		{"19/10/2024", "sábado"},
		{" 20/10/2024 ", "domingo"},
	}
	for _, tt := range tests {
		got, err := ParseDate(tt.in)
		if err != nil {
			t.Fatalf("ParseDate(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDate_Invalid(t *testing.T) {
	for _, in := range []string{"", "tomorrow", "2024/10/14", "32/01/2024"} {
		if _, err := ParseDate(in); !errors.Is(err, domain.ErrInvalidInput) {
			t.Errorf("ParseDate(%q): want ErrInvalidInput, got %v", in, err)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		"Lunes":     "lunes",
		"MIERCOLES": "miércoles",
		"sábado":    "sábado",
		"Friday":    "viernes",
		" sunday ":  "domingo",
	}
	for in, want := range tests {
		got, err := Normalize(in)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
	if _, err := Normalize("funday"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("want ErrInvalidInput, got %v", err)
	}
}

func TestToken_AllDays(t *testing.T) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if Token(d) == "" {
			t.Errorf("no token for %s", d)
		}
	}
}
