package pkg

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"targetenc/pkg/encoder"
	"targetenc/pkg/frame"
)

// FitParameters describe one fit run.
type FitParameters struct {
	TrainFile  string
	OutputFile string
	ConfigFile string
	Options    encoder.Options
}

func printRowErrors(errors []frame.RowError) {
	for _, err := range errors {
		log.Error().Msgf("Error parsing data at line %d: %s", err.Line, err.Error)
	}
}

// Fit loads the training CSV, builds the encoding map and writes the model
// artifact.
func Fit(p FitParameters) error {
	opts := p.Options
	if p.ConfigFile != "" {
		config, err := LoadEncoderConfig(p.ConfigFile)
		if err != nil {
			return err
		}
		opts = mergeOptions(config.Options(), p.Options)
	}

	te, err := encoder.New(opts)
	if err != nil {
		return err
	}

	data, rowErrors, err := frame.Load(p.TrainFile)
	if err != nil {
		return fmt.Errorf("error reading training data: %w", err)
	}
	printRowErrors(rowErrors)

	em, err := te.Fit(data)
	if err != nil {
		return fmt.Errorf("error fitting encoder: %w", err)
	}
	log.Info().
		Int("rows", data.NumRows()).
		Strs("columns", opts.Columns).
		Int64("trainingRows", em.Global.Count).
		Float64("prior", em.Prior()).
		Msg("Encoding map fitted")

	outputFile, err := os.Create(p.OutputFile)
	if err != nil {
		return fmt.Errorf("error creating output file %s: %w", p.OutputFile, err)
	}
	defer outputFile.Close()

	if err := SaveModel(&Model{Options: opts, Map: em}, outputFile); err != nil {
		return fmt.Errorf("error saving model to %s: %w", p.OutputFile, err)
	}
	return nil
}
