package stats

import (
	"math"
	"testing"
)

const epsilon = 1e-9

func TestMean(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{42.5}, 42.5},
		{"several", []float64{1, 2, 3, 4}, 2.5},
		{"negative", []float64{-10, 10}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mean(tt.xs); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{7}, 7},
		{"odd length", []float64{3, 1, 2}, 2},
		{"even length", []float64{4, 1, 3, 2}, 2.5},
		{"unsorted input", []float64{20, 5, 7, 6}, 6.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Median(tt.xs); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestStdDev(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		expected float64
	}{
		{"empty", nil, 0},
		{"single", []float64{5}, 0},
		{"identical", []float64{3, 3, 3, 3}, 0},
		// Population std dev divides by N, not N-1
		{"population", []float64{2, 4, 4, 4, 5, 5, 7, 9}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StdDev(tt.xs); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestTrimmedMean(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		fraction float64
		expected float64
	}{
		{"empty", nil, 0.1, 0},
		{"one value", []float64{9}, 0.1, 9},
		{"two values fall back to mean", []float64{10, 20}, 0.1, 15},
		{"three values fall back to median", []float64{10, 12, 100}, 0.1, 12},
		// N=4 forces one trim per end even though floor(4*0.1)=0,
		// leaving [20, 20]
		{"single extreme at small n", []float64{20, 20, 20, 100}, 0.1, 20},
		// Trims 1 and 100, mean of the 8 middle values
		{"ten values", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 100}, 0.1, 5.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TrimmedMean(tt.xs, tt.fraction); math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestOutlierIndices(t *testing.T) {
	tests := []struct {
		name     string
		xs       []float64
		expected []int
	}{
		{"empty", nil, nil},
		{"two values never outliers", []float64{1, 100}, nil},
		{"identical values have no spread", []float64{5, 5, 5, 5, 5}, nil},
		{"single extreme", []float64{10, 11, 12, 13, 14, 100}, []int{5}},
		{"tight cluster", []float64{10, 10.1, 10.2, 9.9, 9.8}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutlierIndices(tt.xs, 2.0)
			if len(got) != len(tt.expected) {
				t.Fatalf("expected indices %v, got %v", tt.expected, got)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("expected indices %v, got %v", tt.expected, got)
				}
			}
		})
	}
}

func TestEnsembleProbability(t *testing.T) {
	tests := []struct {
		name      string
		xs        []float64
		threshold float64
		cmp       Comparison
		expected  float64
	}{
		{"empty", nil, 0.1, Greater, 0},
		{"three of five above", []float64{0, 0, 0.5, 1, 2}, 0.1, Greater, 60},
		{"gte includes boundary", []float64{1, 2, 3}, 2, GreaterOrEqual, 100.0 * 2 / 3},
		{"lt", []float64{1, 2, 3}, 2, Less, 100.0 / 3},
		{"lte includes boundary", []float64{1, 2, 3}, 2, LessOrEqual, 100.0 * 2 / 3},
		{"none match", []float64{0, 0, 0}, 0.1, Greater, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EnsembleProbability(tt.xs, tt.threshold, tt.cmp)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}

func TestConfidenceFromSpread(t *testing.T) {
	tests := []struct {
		name     string
		value    float64
		expected float64
	}{
		{"below high threshold", 1.0, 1.0},
		{"at high threshold", 1.5, 1.0},
		{"at low threshold", 4.0, 0.3},
		{"beyond low threshold", 10.0, 0.3},
		// Halfway between 1.5 and 4.0
		{"midpoint interpolates", 2.75, 0.65},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ConfidenceFromSpread(tt.value, 1.5, 4.0)
			if math.Abs(got-tt.expected) > epsilon {
				t.Errorf("expected %.4f, got %.4f", tt.expected, got)
			}
		})
	}
}
