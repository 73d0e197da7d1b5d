package encoder

// Stat accumulates the response over a group of rows.
type Stat struct {
	Count int64
	Sum   float64
}

func (s Stat) add(response float64) Stat {
	return Stat{Count: s.Count + 1, Sum: s.Sum + response}
}

// Minus removes another stat's contribution. The result never goes below an
// empty stat: subtracting more than is present leaves {0, 0}, which blends to
// the pure prior.
func (s Stat) Minus(o Stat) Stat {
	if o.Count >= s.Count {
		return Stat{}
	}
	return Stat{Count: s.Count - o.Count, Sum: s.Sum - o.Sum}
}

// Mean is the posterior mean of the group. Only defined for Count > 0.
func (s Stat) Mean() float64 {
	return s.Sum / float64(s.Count)
}

// FoldKey addresses a per-fold sub-aggregate of a level.
type FoldKey struct {
	Level string
	Fold  int
}

// ColumnStats holds the fitted aggregates of one categorical column.
type ColumnStats struct {
	// Levels maps a categorical level to its full aggregate.
	Levels map[string]Stat

	// Folds maps (level, fold) to the sub-aggregate contributed by that
	// fold. Only populated when a fold column was given at fit time.
	Folds map[FoldKey]Stat
}

// EncodingMap is the immutable result of a fit: per-column aggregates plus
// one global prior over the whole training frame. It is never mutated after
// Aggregate returns, so any number of concurrent transforms may share it.
type EncodingMap struct {
	TargetColumns  []string
	ResponseColumn string
	FoldColumn     string

	Stats  map[string]*ColumnStats
	Global Stat

	// DefaultNoise is 0.01 * the observed response range, the noise width
	// used when a transform asks for the default.
	DefaultNoise float64
}

// HasFolds reports whether per-fold sub-aggregates were collected.
func (em *EncodingMap) HasFolds() bool {
	return em.FoldColumn != ""
}

// Covers reports whether the map has stats for every given column.
func (em *EncodingMap) Covers(columns []string) bool {
	for _, c := range columns {
		if _, ok := em.Stats[c]; !ok {
			return false
		}
	}
	return true
}

// Prior is the global response mean the encoder falls back to.
func (em *EncodingMap) Prior() float64 {
	return em.Global.Mean()
}
