package encoder

import "errors"

var (
	// ErrInvalidColumn signals that a referenced column is absent from the
	// frame.
	ErrInvalidColumn = errors.New("referenced column not found in frame")

	// ErrUnsupportedTask signals a response with more than two distinct
	// values. Only binary classification is supported.
	ErrUnsupportedTask = errors.New("response is not binary")

	// ErrEmptyTrainingSet signals that no rows with a usable response were
	// available for aggregation.
	ErrEmptyTrainingSet = errors.New("no usable training rows")

	// ErrMissingFoldColumn signals kfold holdout without fold data.
	ErrMissingFoldColumn = errors.New("kfold holdout requires a fold column")

	// ErrStaleEncodingMap signals a transform against a missing encoding map
	// or one that does not cover the requested columns.
	ErrStaleEncodingMap = errors.New("encoding map does not cover the requested columns")
)
