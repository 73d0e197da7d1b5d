// Package encoder implements leakage-safe target encoding of categorical
// columns against a binary response: per-level response aggregation, blending
// of the level posterior with the global prior, and kfold / leave-one-out
// holdout of a row's own contribution.
package encoder

import (
	"fmt"

	"targetenc/pkg/frame"
)

// Options fix a TargetEncoder's behavior at construction.
type Options struct {
	// Columns are the categorical columns to encode.
	Columns []string

	// Response names the binary response column.
	Response string

	// FoldColumn optionally names an integer fold-assignment column,
	// required for kfold holdout.
	FoldColumn string

	// Blending enables blended averages between a level's posterior mean
	// and the global prior.
	Blending bool

	// InflectionPoint and Smoothing parameterize blending. Zero values take
	// the defaults.
	InflectionPoint float64
	Smoothing       float64
}

func (o Options) blendingParams() BlendingParams {
	p := DefaultBlendingParams
	if o.InflectionPoint != 0 {
		p.InflectionPoint = o.InflectionPoint
	}
	if o.Smoothing != 0 {
		p.Smoothing = o.Smoothing
	}
	return p
}

// TargetEncoder ties an encoding map to the options it was fitted with.
// Fit must complete before Transform; a fitted encoder is safe for
// concurrent Transform calls.
type TargetEncoder struct {
	opts   Options
	params BlendingParams
	em     *EncodingMap
}

// New builds an unfitted encoder.
func New(opts Options) (*TargetEncoder, error) {
	if len(opts.Columns) == 0 {
		return nil, fmt.Errorf("no categorical columns given: %w", ErrInvalidColumn)
	}
	if opts.Response == "" {
		return nil, fmt.Errorf("no response column given: %w", ErrInvalidColumn)
	}
	params := opts.blendingParams()
	if err := params.validate(); err != nil {
		return nil, err
	}
	return &TargetEncoder{opts: opts, params: params}, nil
}

// Fitted rebuilds an encoder around a previously fitted map, e.g. one loaded
// from an artifact file.
func Fitted(opts Options, em *EncodingMap) (*TargetEncoder, error) {
	te, err := New(opts)
	if err != nil {
		return nil, err
	}
	if em == nil || !em.Covers(opts.Columns) {
		return nil, ErrStaleEncodingMap
	}
	te.em = em
	return te, nil
}

// Fit aggregates the training frame into an encoding map and retains it for
// later transforms. Fitting the same frame again yields an identical map.
func (te *TargetEncoder) Fit(fr *frame.Frame) (*EncodingMap, error) {
	em, err := Aggregate(fr, te.opts.Columns, te.opts.Response, te.opts.FoldColumn)
	if err != nil {
		return nil, err
	}
	te.em = em
	return em, nil
}

// EncodingMap returns the fitted map, or nil before Fit.
func (te *TargetEncoder) EncodingMap() *EncodingMap {
	return te.em
}

// Transform encodes the frame's target columns against the fitted map.
// Calling Transform before Fit is an error.
func (te *TargetEncoder) Transform(fr *frame.Frame, opts TransformOptions) (*frame.Frame, error) {
	if te.em == nil {
		return nil, fmt.Errorf("transform before fit: %w", ErrStaleEncodingMap)
	}
	return TransformFrame(fr, te.em, te.params, te.opts.Blending, opts)
}
