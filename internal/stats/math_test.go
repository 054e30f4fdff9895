package stats

import (
	"math"
	"testing"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		curr     float64
		prev     float64
		expected int
	}{
		{"Growth", 15, 10, 50},
		{"Decline", 5, 10, -50},
		{"Flat", 10, 10, 0},
		{"FromZeroToPositive", 7, 0, 100},
		{"BothZero", 0, 0, 0},
		{"ToZero", 0, 10, -100},
		{"Rounding", 1, 3, -67},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PercentChange(tt.curr, tt.prev); got != tt.expected {
				t.Errorf("PercentChange(%v, %v) = %d, want %d", tt.curr, tt.prev, got, tt.expected)
			}
		})
	}
}

func TestMeanAndStdDev(t *testing.T) {
	if got := Mean(nil); got != 0 {
		t.Errorf("Mean(nil) = %v, want 0", got)
	}
	if got := Mean([]float64{2, 4, 6}); got != 4 {
		t.Errorf("Mean = %v, want 4", got)
	}
	if got := StdDev([]float64{5, 5, 5}); got != 0 {
		t.Errorf("StdDev(constant) = %v, want 0", got)
	}
	// Population stddev of {2, 4, 4, 4, 5, 5, 7, 9} is exactly 2.
	if got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9}); math.Abs(got-2) > 1e-9 {
		t.Errorf("StdDev = %v, want 2", got)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		name     string
		v        float64
		lo       float64
		hi       float64
		expected float64
	}{
		{"Below", 40, 50, 95, 50},
		{"Inside", 80, 50, 95, 80},
		{"Above", 120, 50, 95, 95},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Clamp(tt.v, tt.lo, tt.hi); got != tt.expected {
				t.Errorf("Clamp(%v) = %v, want %v", tt.v, got, tt.expected)
			}
		})
	}
}

func TestRounding(t *testing.T) {
	if got := Round1(2.44999); got != 2.4 {
		t.Errorf("Round1 = %v, want 2.4", got)
	}
	if got := Round2(0.6666); got != 0.67 {
		t.Errorf("Round2 = %v, want 0.67", got)
	}
}
