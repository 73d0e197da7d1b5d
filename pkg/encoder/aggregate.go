package encoder

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"targetenc/pkg/frame"
)

// Aggregate groups the training frame per categorical column by (level, fold)
// and collects count and response-sum aggregates, plus one global prior over
// the whole frame. Rows with a missing response are excluded; rows with a
// missing categorical value are grouped under frame.NALevel.
//
// Columns are aggregated concurrently; the returned EncodingMap is immutable.
func Aggregate(fr *frame.Frame, columns []string, response, foldColumn string) (*EncodingMap, error) {
	if len(columns) == 0 {
		return nil, fmt.Errorf("no target columns given: %w", ErrInvalidColumn)
	}
	for _, c := range columns {
		if !fr.Has(c) {
			return nil, fmt.Errorf("categorical column %s: %w", c, ErrInvalidColumn)
		}
	}
	if !fr.Has(response) {
		return nil, fmt.Errorf("response column %s: %w", response, ErrInvalidColumn)
	}
	if foldColumn != "" && !fr.Has(foldColumn) {
		return nil, fmt.Errorf("fold column %s: %w", foldColumn, ErrInvalidColumn)
	}

	resp, err := fr.Floats(response)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if err := checkBinary(resp); err != nil {
		return nil, err
	}

	var folds []float64
	if foldColumn != "" {
		folds, err = fr.Floats(foldColumn)
		if err != nil {
			return nil, fmt.Errorf("reading fold column: %w", err)
		}
	}

	var global Stat
	minResp, maxResp := math.Inf(1), math.Inf(-1)
	for _, y := range resp {
		if math.IsNaN(y) {
			continue
		}
		global = global.add(y)
		minResp = math.Min(minResp, y)
		maxResp = math.Max(maxResp, y)
	}
	if global.Count == 0 {
		return nil, ErrEmptyTrainingSet
	}

	stats := make([]*ColumnStats, len(columns))
	var eg errgroup.Group
	for i, col := range columns {
		eg.Go(func() error {
			levels, err := fr.Levels(col)
			if err != nil {
				return fmt.Errorf("reading column %s: %w", col, err)
			}
			cs := &ColumnStats{Levels: map[string]Stat{}}
			if folds != nil {
				cs.Folds = map[FoldKey]Stat{}
			}
			for row, level := range levels {
				y := resp[row]
				if math.IsNaN(y) {
					continue
				}
				cs.Levels[level] = cs.Levels[level].add(y)
				if folds != nil && !math.IsNaN(folds[row]) {
					key := FoldKey{Level: level, Fold: int(folds[row])}
					cs.Folds[key] = cs.Folds[key].add(y)
				}
			}
			stats[i] = cs
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	em := &EncodingMap{
		TargetColumns:  append([]string(nil), columns...),
		ResponseColumn: response,
		FoldColumn:     foldColumn,
		Stats:          make(map[string]*ColumnStats, len(columns)),
		Global:         global,
		DefaultNoise:   0.01 * (maxResp - minResp),
	}
	for i, col := range columns {
		em.Stats[col] = stats[i]
	}
	return em, nil
}

// checkBinary rejects responses with more than two distinct non-missing
// values. Multi-class and regression targets are out of scope.
func checkBinary(resp []float64) error {
	distinct := make(map[float64]struct{}, 3)
	for _, y := range resp {
		if math.IsNaN(y) {
			continue
		}
		distinct[y] = struct{}{}
		if len(distinct) > 2 {
			return fmt.Errorf("response has more than two distinct values: %w", ErrUnsupportedTask)
		}
	}
	return nil
}
