package metrics_test

import (
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
)

func TestBMRMifflinStJeor(t *testing.T) {
	t.Parallel()

	// male: 10*70 + 6.25*175 - 5*30 + 5 = 1648.75
	got, ok := metrics.BMR(70, 1.75, 30, metrics.SexMale)
	if !ok {
		t.Fatalf("expected BMR to be computed")
	}
	if got != 1649 {
		t.Fatalf("male BMR = %d, want 1649", got)
	}

	// female: 10*60 + 6.25*165 - 5*25 - 161 = 1345.25
	got, ok = metrics.BMR(60, 1.65, 25, metrics.SexFemale)
	if !ok {
		t.Fatalf("expected BMR to be computed")
	}
	if got != 1345 {
		t.Fatalf("female BMR = %d, want 1345", got)
	}
}

func TestBMRRequiresAllInputs(t *testing.T) {
	t.Parallel()
	cases := []struct {
		weight, height float64
		age            int
	}{
		{0, 1.75, 30},
		{70, 0, 30},
		{70, 1.75, 0},
	}
	for _, c := range cases {
		if _, ok := metrics.BMR(c.weight, c.height, c.age, metrics.SexMale); ok {
			t.Errorf("BMR(%v, %v, %d) computed despite missing input", c.weight, c.height, c.age)
		}
	}
}

func TestTEE(t *testing.T) {
	t.Parallel()
	if got := metrics.TEE(1667, 1.55); got != 2584 {
		t.Fatalf("TEE(1667, 1.55) = %d, want 2584", got)
	}
	if got := metrics.TEE(1649, 1.2); got != 1979 {
		t.Fatalf("TEE(1649, 1.2) = %d, want 1979", got)
	}
}

func TestActivityFactors(t *testing.T) {
	t.Parallel()
	want := map[string]float64{
		"sedentary":   1.2,
		"light":       1.375,
		"moderate":    1.55,
		"very_active": 1.725,
		"extreme":     1.9,
	}
	for level, factor := range want {
		got, ok := metrics.ActivityFactor(level)
		if !ok || got != factor {
			t.Errorf("ActivityFactor(%q) = %v, %v, want %v", level, got, ok, factor)
		}
		if label := metrics.ActivityLabel(factor); label != level {
			t.Errorf("ActivityLabel(%v) = %q, want %q", factor, label, level)
		}
	}
	if _, ok := metrics.ActivityFactor("couch"); ok {
		t.Fatalf("expected unknown level to be rejected")
	}
	if label := metrics.ActivityLabel(1.6); label != "" {
		t.Fatalf("expected unknown factor to be unlabeled, got %q", label)
	}
	if len(metrics.ActivityLevels()) != 5 {
		t.Fatalf("expected exactly five activity tiers")
	}
}
