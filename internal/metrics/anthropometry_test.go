package metrics_test

import (
	"math"
	"testing"

	"github.com/jandersaraiva/nutrivida/internal/metrics"
)

func TestBMI(t *testing.T) {
	t.Parallel()
	got := metrics.BMI(70, 1.75)
	want := 70 / (1.75 * 1.75)
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("BMI(70, 1.75) = %v, want %v", got, want)
	}
	if metrics.BMI(70, 0) != 0 {
		t.Fatalf("expected BMI with zero height to be 0")
	}
}

func TestClassifyBMI(t *testing.T) {
	t.Parallel()
	cases := []struct {
		bmi  float64
		want metrics.BMIBand
	}{
		{16, metrics.BMIUnderweight},
		{18.49, metrics.BMIUnderweight},
		{18.5, metrics.BMINormal},
		{24.99, metrics.BMINormal},
		{25, metrics.BMIOverweight},
		{32, metrics.BMIOverweight},
	}
	for _, c := range cases {
		if got := metrics.ClassifyBMI(c.bmi); got != c.want {
			t.Errorf("ClassifyBMI(%v) = %s, want %s", c.bmi, got, c.want)
		}
	}
}

func TestMassDecompositionPreservesWeight(t *testing.T) {
	t.Parallel()
	cases := []struct {
		weight, fatPct, musclePct float64
	}{
		{80, 22, 38},
		{55, 31.5, 27.2},
		{100, 0, 0},
		{72.4, 18.9, 44.1},
	}
	for _, c := range cases {
		sum := metrics.FatMassKg(c.weight, c.fatPct) +
			metrics.LeanMassKg(c.weight, c.musclePct) +
			metrics.ResidualMassKg(c.weight, c.fatPct, c.musclePct)
		if math.Abs(sum-c.weight) > 1e-6 {
			t.Errorf("mass decomposition of %v kg sums to %v", c.weight, sum)
		}
	}
}

func TestMassIndices(t *testing.T) {
	t.Parallel()
	h := 1.75
	fmi := metrics.FatMassIndex(80, 25, h)
	want := (80 * 25 / 100) / (h * h)
	if math.Abs(fmi-want) > 1e-9 {
		t.Fatalf("FatMassIndex = %v, want %v", fmi, want)
	}
	if metrics.FatMassIndex(80, 25, 0) != 0 {
		t.Fatalf("expected zero fat-mass index with zero height")
	}
}

func TestWaistHipRatio(t *testing.T) {
	t.Parallel()
	ratio, ok := metrics.WaistHipRatio(80, 100)
	if !ok || math.Abs(ratio-0.8) > 1e-9 {
		t.Fatalf("WaistHipRatio(80, 100) = %v, %v", ratio, ok)
	}
	if _, ok := metrics.WaistHipRatio(80, 0); ok {
		t.Fatalf("expected not-applicable ratio when hip is missing")
	}
	if _, ok := metrics.WaistHipRatio(0, 100); ok {
		t.Fatalf("expected not-applicable ratio when waist is missing")
	}
}
