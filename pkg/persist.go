package pkg

import (
	"encoding/gob"
	"fmt"
	"io"

	"targetenc/pkg/encoder"
)

// Model is the artifact written by fit and consumed by transform: the fitted
// encoding map together with the options it was fitted under.
type Model struct {
	Options encoder.Options
	Map     *encoder.EncodingMap
}

func SaveModel(model *Model, writer io.Writer) error {
	enc := gob.NewEncoder(writer)
	if err := enc.Encode(model); err != nil {
		return fmt.Errorf("error encoding model: %w", err)
	}
	return nil
}

func LoadModel(input io.Reader) (*Model, error) {
	dec := gob.NewDecoder(input)
	model := Model{}
	if err := dec.Decode(&model); err != nil {
		return nil, fmt.Errorf("error decoding model: %w", err)
	}
	return &model, nil
}
