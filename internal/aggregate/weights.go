package aggregate

import "github.com/forecastfusion/forecastfusion/internal/wx"

// WeightingStrategy computes per-model weights for the consensus. Only a
// uniform implementation exists today; skill-based weighting can be
// plugged in here without touching the engine.
type WeightingStrategy interface {
	Weights(models []wx.Provider) []ModelWeight
}

// UniformWeighting assigns every model the same 1/N weight.
type UniformWeighting struct{}

// Weights implements WeightingStrategy.
func (UniformWeighting) Weights(models []wx.Provider) []ModelWeight {
	if len(models) == 0 {
		return nil
	}
	w := 1.0 / float64(len(models))
	weights := make([]ModelWeight, 0, len(models))
	for _, m := range models {
		weights = append(weights, ModelWeight{
			Model:  m,
			Weight: w,
			Reason: "equal weighting across all contributing models",
		})
	}
	return weights
}
