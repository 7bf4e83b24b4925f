package layout

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

func TestComputeConfig_ReferenceViewport(t *testing.T) {
	cfg := ComputeConfig(1000, 1000)
	if cfg.LinkDistanceUnit != 300 {
		t.Errorf("LinkDistanceUnit = %v, want 300", cfg.LinkDistanceUnit)
	}
	if cfg.ChargeStrength != -60 {
		t.Errorf("ChargeStrength = %v, want -60", cfg.ChargeStrength)
	}
	if cfg.CircleRadiusUnit != 80 {
		t.Errorf("CircleRadiusUnit = %v, want 80", cfg.CircleRadiusUnit)
	}
}

func TestComputeConfig_ZeroViewport(t *testing.T) {
	for _, dims := range [][2]float64{{0, 0}, {0, 800}, {1200, 0}} {
		cfg := ComputeConfig(dims[0], dims[1])
		if cfg.LinkDistanceUnit != 0 || cfg.ChargeStrength != 0 || cfg.CircleRadiusUnit != 0 {
			t.Errorf("ComputeConfig(%v, %v) = %+v, want all zero", dims[0], dims[1], cfg)
		}
	}
}

// The config is linear in the smaller viewport dimension s:
// CircleRadiusUnit = 0.08s, LinkDistanceUnit = 0.3s, ChargeStrength = -0.06s.
func TestComputeConfig_LinearInMinDimension(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		w := rapid.Float64Range(1, 10000).Draw(t, "w")
		h := rapid.Float64Range(1, 10000).Draw(t, "h")
		s := math.Min(w, h)

		cfg := ComputeConfig(w, h)

		const eps = 1e-9
		if math.Abs(cfg.CircleRadiusUnit-0.08*s) > eps {
			t.Fatalf("CircleRadiusUnit = %v, want %v", cfg.CircleRadiusUnit, 0.08*s)
		}
		if math.Abs(cfg.LinkDistanceUnit-0.3*s) > eps {
			t.Fatalf("LinkDistanceUnit = %v, want %v", cfg.LinkDistanceUnit, 0.3*s)
		}
		if math.Abs(cfg.ChargeStrength+0.06*s) > eps {
			t.Fatalf("ChargeStrength = %v, want %v", cfg.ChargeStrength, -0.06*s)
		}
	})
}

// Only the smaller dimension matters.
func TestComputeConfig_IgnoresLargerDimension(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		s := rapid.Float64Range(1, 5000).Draw(t, "s")
		extra := rapid.Float64Range(0, 5000).Draw(t, "extra")

		wide := ComputeConfig(s+extra, s)
		tall := ComputeConfig(s, s+extra)
		if wide != tall {
			t.Fatalf("config depends on orientation: %+v vs %+v", wide, tall)
		}
	})
}
