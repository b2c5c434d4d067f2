package main

import (
	"testing"

	"github.com/pthm-cable/grandfishing/config"
	"github.com/pthm-cable/grandfishing/telemetry"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := pv.DefaultVector()

	back := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if d := back[i] - raw[i]; d > 1e-9 || d < -1e-9 {
			t.Errorf("%s: %v -> %v", pv.Specs[i].Name, raw[i], back[i])
		}
	}
}

func TestApplyToConfigClampsAndValidates(t *testing.T) {
	pv := NewParamVector()
	cfg := config.Default()

	pv.ApplyToConfig(cfg, []float64{1e9, -5, 40.6})

	if cfg.World.WinThreshold != 2000 {
		t.Errorf("win_threshold = %d, want 2000", cfg.World.WinThreshold)
	}
	if cfg.Random.Catch.Max != 1 {
		t.Errorf("catch max = %d, want 1", cfg.Random.Catch.Max)
	}
	if cfg.Random.NativeFish.Min != 15 {
		t.Errorf("native fish min = %d, want 15", cfg.Random.NativeFish.Min)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("applied config invalid: %v", err)
	}

	got := pv.ExtractFromConfig(cfg)
	if got[0] != 2000 || got[1] != 1 || got[2] != 15 {
		t.Errorf("extract = %v", got)
	}
}

func TestHaulQuality(t *testing.T) {
	windows := []telemetry.WindowStats{
		{Hauls: 10, EmptyHauls: 2},
		{Hauls: 10, EmptyHauls: 3},
	}
	if got := haulQuality(windows); got != 0.75 {
		t.Errorf("quality = %v, want 0.75", got)
	}
	if got := haulQuality(nil); got != 0 {
		t.Errorf("empty quality = %v, want 0", got)
	}
}

func TestEvaluateSmallGrid(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width = 8
	cfg.World.Height = 8
	cfg.World.Ships = 30

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, 200, 2000, []int64{1, 2}, cfg)

	fitness := fe.Evaluate([]float64{20, 10, 5})
	if fitness < 0 {
		t.Errorf("fitness = %v, want non-negative", fitness)
	}
	rep := fe.LastReport()
	if rep.meanClear <= 0 || rep.meanClear > 2000 {
		t.Errorf("mean clear = %v", rep.meanClear)
	}
	if rep.quality < 0 || rep.quality > 1 {
		t.Errorf("quality = %v", rep.quality)
	}
}
