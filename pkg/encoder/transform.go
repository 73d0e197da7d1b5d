package encoder

import (
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"targetenc/pkg/frame"
)

// EncodedSuffix is appended to a categorical column's name to form its
// encoded output column.
const EncodedSuffix = "_te"

// TransformOptions control a single transform call.
type TransformOptions struct {
	Holdout Holdout

	// NoiseStd is the half-width of the uniform noise added to encoded
	// values. Zero disables noise; a negative value selects the fitted
	// default of 0.01 * response range.
	NoiseStd float64

	// Seed drives the per-row noise generators.
	Seed int64

	// DropOriginal removes the categorical source columns from the output.
	DropOriginal bool
}

// TransformFrame encodes every target column of the map into a new float
// column named <column>_te. The input frame and the encoding map are read
// only; the result is a new frame.
//
// Unseen levels fall back to the global prior. With kfold holdout, fold ids
// unknown at fit time degrade to zero exclusion with a warning.
func TransformFrame(fr *frame.Frame, em *EncodingMap, params BlendingParams, blending bool, opts TransformOptions) (*frame.Frame, error) {
	if em == nil || len(em.TargetColumns) == 0 || !em.Covers(em.TargetColumns) {
		return nil, ErrStaleEncodingMap
	}
	for _, col := range em.TargetColumns {
		if !fr.Has(col) {
			return nil, fmt.Errorf("categorical column %s: %w", col, ErrInvalidColumn)
		}
	}

	var resp []float64
	var err error
	if opts.Holdout == HoldoutLOO {
		if !fr.Has(em.ResponseColumn) {
			return nil, fmt.Errorf("loo holdout needs response column %s in the frame: %w", em.ResponseColumn, ErrInvalidColumn)
		}
		resp, err = fr.Floats(em.ResponseColumn)
		if err != nil {
			return nil, fmt.Errorf("reading response: %w", err)
		}
	}

	var folds []float64
	if opts.Holdout == HoldoutKFold {
		if !em.HasFolds() {
			return nil, fmt.Errorf("encoding map was fitted without folds: %w", ErrMissingFoldColumn)
		}
		if !fr.Has(em.FoldColumn) {
			return nil, fmt.Errorf("fold column %s not in frame: %w", em.FoldColumn, ErrMissingFoldColumn)
		}
		folds, err = fr.Floats(em.FoldColumn)
		if err != nil {
			return nil, fmt.Errorf("reading fold column: %w", err)
		}
	}

	width := opts.NoiseStd
	if width < 0 {
		width = em.DefaultNoise
	}

	encoded := make([][]float64, len(em.TargetColumns))
	var eg errgroup.Group
	for i, col := range em.TargetColumns {
		eg.Go(func() error {
			out, err := encodeColumn(fr, em, col, resp, folds, params, blending, opts, width)
			if err != nil {
				return err
			}
			encoded[i] = out
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	result := fr
	for i, col := range em.TargetColumns {
		result, err = result.WithFloats(col+EncodedSuffix, encoded[i])
		if err != nil {
			return nil, err
		}
	}
	if opts.DropOriginal {
		result = result.Drop(em.TargetColumns...)
	}
	return result, nil
}

func encodeColumn(fr *frame.Frame, em *EncodingMap, col string, resp, folds []float64,
	params BlendingParams, blending bool, opts TransformOptions, width float64) ([]float64, error) {

	levels, err := fr.Levels(col)
	if err != nil {
		return nil, fmt.Errorf("reading column %s: %w", col, err)
	}
	cs := em.Stats[col]

	fitFolds := map[int]struct{}{}
	for key := range cs.Folds {
		fitFolds[key.Fold] = struct{}{}
	}

	unseenLevels := 0
	unknownFolds := map[int]struct{}{}

	out := make([]float64, len(levels))
	for row, level := range levels {
		eff, seen := cs.Levels[level]
		if !seen {
			unseenLevels++
		}

		switch opts.Holdout {
		case HoldoutKFold:
			if math.IsNaN(folds[row]) {
				break // no fold id, nothing to exclude
			}
			fold := int(folds[row])
			if sub, ok := cs.Folds[FoldKey{Level: level, Fold: fold}]; ok {
				eff = eff.Minus(sub)
			} else if _, known := fitFolds[fold]; !known {
				unknownFolds[fold] = struct{}{}
			}
		case HoldoutLOO:
			if !math.IsNaN(resp[row]) {
				eff = eff.Minus(Stat{Count: 1, Sum: resp[row]})
			}
		}

		val, err := Blend(eff, em.Global, params, blending)
		if err != nil {
			return nil, err
		}
		if width > 0 {
			val += noise(opts.Seed, col, row, width)
		}
		out[row] = val
	}

	if unseenLevels > 0 {
		log.Debug().Str("column", col).Int("rows", unseenLevels).
			Msg("levels unseen at fit time encoded with the global prior")
	}
	for fold := range unknownFolds {
		log.Warn().Str("column", col).Int("fold", fold).
			Msg("fold id unseen at fit time, holdout degraded to zero exclusion")
	}
	return out, nil
}
