package pkg

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"targetenc/pkg/encoder"
	"targetenc/pkg/frame"
)

// TransformParameters describe one transform run.
type TransformParameters struct {
	ModelFile    string
	InputFile    string
	OutputFile   string
	HoldoutType  string
	Noise        float64
	Seed         int64
	DropOriginal bool
}

// Transform loads a fitted model artifact, encodes the input CSV and writes
// the result. An empty OutputFile writes to stdout.
func Transform(p TransformParameters) error {
	modelFile, err := os.Open(p.ModelFile)
	if err != nil {
		return fmt.Errorf("error opening model file %s: %w", p.ModelFile, err)
	}
	defer modelFile.Close()

	model, err := LoadModel(modelFile)
	if err != nil {
		return fmt.Errorf("error loading model from file %s: %w", p.ModelFile, err)
	}

	holdout, err := encoder.ParseHoldout(p.HoldoutType)
	if err != nil {
		return err
	}

	data, rowErrors, err := frame.Load(p.InputFile)
	if err != nil {
		return fmt.Errorf("error loading data from %s: %w", p.InputFile, err)
	}
	printRowErrors(rowErrors)

	te, err := encoder.Fitted(model.Options, model.Map)
	if err != nil {
		return err
	}

	result, err := te.Transform(data, encoder.TransformOptions{
		Holdout:      holdout,
		NoiseStd:     p.Noise,
		Seed:         p.Seed,
		DropOriginal: p.DropOriginal,
	})
	if err != nil {
		return fmt.Errorf("error transforming data: %w", err)
	}
	log.Info().
		Int("rows", result.NumRows()).
		Str("holdout", holdout.String()).
		Msg("Frame encoded")

	if p.OutputFile == "" {
		return frame.Write(result, os.Stdout)
	}
	return frame.Save(result, p.OutputFile)
}
