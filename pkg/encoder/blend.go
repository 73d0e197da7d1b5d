package encoder

import (
	"fmt"
	"math"
)

// BlendingParams control the logistic weight between a level's posterior mean
// and the global prior.
type BlendingParams struct {
	// InflectionPoint is the level size at which posterior and prior carry
	// equal weight.
	InflectionPoint float64

	// Smoothing controls how fast the weight moves from prior to posterior
	// around the inflection point.
	Smoothing float64
}

// DefaultBlendingParams apply when the blending parameters are left unset.
var DefaultBlendingParams = BlendingParams{InflectionPoint: 3, Smoothing: 1}

func (p BlendingParams) validate() error {
	if p.InflectionPoint <= 0 {
		return fmt.Errorf("inflection point must be > 0, got %g", p.InflectionPoint)
	}
	if p.Smoothing <= 0 {
		return fmt.Errorf("smoothing must be > 0, got %g", p.Smoothing)
	}
	return nil
}

// Blend combines a level aggregate with the global prior. With blending on,
// the posterior mean is weighted by lambda = 1/(1+exp(-(n-k)/f)); with it
// off, the raw posterior mean is returned. Either way an empty level stat
// yields the pure prior.
func Blend(level, global Stat, params BlendingParams, blending bool) (float64, error) {
	if global.Count == 0 {
		return 0, fmt.Errorf("global prior has no observations: %w", ErrEmptyTrainingSet)
	}
	prior := global.Mean()
	if level.Count == 0 {
		return prior, nil
	}
	if !blending {
		return level.Mean(), nil
	}
	lambda := 1 / (1 + math.Exp(-(float64(level.Count)-params.InflectionPoint)/params.Smoothing))
	return lambda*level.Mean() + (1-lambda)*prior, nil
}
