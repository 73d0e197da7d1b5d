package encoder

import "fmt"

// Holdout selects how a row's own contribution is excluded from its encoded
// value to prevent target leakage.
type Holdout int

const (
	// HoldoutNone encodes against the full level aggregate. For disjoint
	// evaluation or test data.
	HoldoutNone Holdout = iota

	// HoldoutKFold excludes the aggregate of the row's own fold.
	HoldoutKFold

	// HoldoutLOO excludes exactly the row's own response. Only legal on
	// frames that carry the response column.
	HoldoutLOO
)

func (h Holdout) String() string {
	switch h {
	case HoldoutNone:
		return "none"
	case HoldoutKFold:
		return "kfold"
	case HoldoutLOO:
		return "loo"
	}
	return fmt.Sprintf("holdout(%d)", int(h))
}

// ParseHoldout maps the user-facing names onto a Holdout.
func ParseHoldout(s string) (Holdout, error) {
	switch s {
	case "none":
		return HoldoutNone, nil
	case "kfold":
		return HoldoutKFold, nil
	case "loo":
		return HoldoutLOO, nil
	}
	return 0, fmt.Errorf("unknown holdout type %q (want kfold, loo or none)", s)
}
