package metrics_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
)

func TestParseDecimal(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"1.75", 1.75},
		{"1,75", 1.75},
		{"82.5kg", 82.5},
		{"1,75m", 1.75},
		{"5", 5},
		{"  70 ", 70},
		{"abc", 0},
	}
	for _, c := range cases {
		if got := metrics.ParseDecimal(c.in); got != c.want {
			t.Errorf("ParseDecimal(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseQuantity(t *testing.T) {
	t.Parallel()
	cases := []struct {
		in   string
		want float64
	}{
		{"", 0},
		{"150g", 150},
		{"150", 150},
		{"1,5 cup", 1.5},
		{"2.5kg", 2.5},
		{"g", 0},
		{"0.5", 0.5},
	}
	for _, c := range cases {
		if got := metrics.ParseQuantity(c.in); got != c.want {
			t.Errorf("ParseQuantity(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
