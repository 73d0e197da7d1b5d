package pkg

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"targetenc/pkg/encoder"
)

// EncoderConfig is the yaml form of the fit options, an alternative to
// passing everything on the command line. Explicit flags win over file
// values.
type EncoderConfig struct {
	Columns         []string `yaml:"columns"`
	Response        string   `yaml:"response"`
	FoldColumn      string   `yaml:"fold_column"`
	Blending        bool     `yaml:"blending"`
	InflectionPoint float64  `yaml:"inflection_point"`
	Smoothing       float64  `yaml:"smoothing"`
}

func LoadEncoderConfig(path string) (*EncoderConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}
	config := EncoderConfig{}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return &config, nil
}

// Options converts the file values to encoder options.
func (c *EncoderConfig) Options() encoder.Options {
	return encoder.Options{
		Columns:         c.Columns,
		Response:        c.Response,
		FoldColumn:      c.FoldColumn,
		Blending:        c.Blending,
		InflectionPoint: c.InflectionPoint,
		Smoothing:       c.Smoothing,
	}
}

// mergeOptions overlays the non-zero flag values on top of the config file
// values.
func mergeOptions(base, flags encoder.Options) encoder.Options {
	if len(flags.Columns) > 0 {
		base.Columns = flags.Columns
	}
	if flags.Response != "" {
		base.Response = flags.Response
	}
	if flags.FoldColumn != "" {
		base.FoldColumn = flags.FoldColumn
	}
	if flags.Blending {
		base.Blending = true
	}
	if flags.InflectionPoint != 0 {
		base.InflectionPoint = flags.InflectionPoint
	}
	if flags.Smoothing != 0 {
		base.Smoothing = flags.Smoothing
	}
	return base
}
