package pkg

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"targetenc/pkg/encoder"
)

const trainCSV = `city,plan,fold,clicked
NY,basic,0,1
NY,basic,1,0
NY,pro,0,1
LA,basic,1,0
LA,pro,0,1
LA,pro,1,0
SF,basic,0,1
SF,pro,1,1
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFitAndTransform(t *testing.T) {
	dir := t.TempDir()
	trainFile := writeFile(t, dir, "train.csv", trainCSV)
	modelFile := filepath.Join(dir, "model.te")
	outFile := filepath.Join(dir, "out.csv")

	err := Fit(FitParameters{
		TrainFile:  trainFile,
		OutputFile: modelFile,
		Options: encoder.Options{
			Columns:    []string{"city", "plan"},
			Response:   "clicked",
			FoldColumn: "fold",
			Blending:   true,
		},
	})
	require.NoError(t, err)

	err = Transform(TransformParameters{
		ModelFile:   modelFile,
		InputFile:   trainFile,
		OutputFile:  outFile,
		HoldoutType: "kfold",
		Seed:        1234,
	})
	require.NoError(t, err)

	out, err := os.ReadFile(outFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Equal(t, "city,plan,fold,clicked,city_te,plan_te", lines[0])
	require.Equal(t, 9, len(lines))
}

func TestFitWithConfigFile(t *testing.T) {
	dir := t.TempDir()
	trainFile := writeFile(t, dir, "train.csv", trainCSV)
	configFile := writeFile(t, dir, "encoder.yaml", `
columns: [city]
response: clicked
blending: true
inflection_point: 5
smoothing: 2
`)
	modelFile := filepath.Join(dir, "model.te")

	err := Fit(FitParameters{
		TrainFile:  trainFile,
		OutputFile: modelFile,
		ConfigFile: configFile,
	})
	require.NoError(t, err)

	f, err := os.Open(modelFile)
	require.NoError(t, err)
	defer f.Close()
	model, err := LoadModel(f)
	require.NoError(t, err)
	require.Equal(t, []string{"city"}, model.Options.Columns)
	require.Equal(t, 5.0, model.Options.InflectionPoint)
	require.True(t, model.Map.Covers([]string{"city"}))
}

func TestFitFlagsOverrideConfig(t *testing.T) {
	config := EncoderConfig{
		Columns:         []string{"city"},
		Response:        "clicked",
		InflectionPoint: 5,
	}
	merged := mergeOptions(config.Options(), encoder.Options{
		Columns:   []string{"plan"},
		Smoothing: 2,
	})
	require.Equal(t, []string{"plan"}, merged.Columns)
	require.Equal(t, "clicked", merged.Response)
	require.Equal(t, 5.0, merged.InflectionPoint)
	require.Equal(t, 2.0, merged.Smoothing)
}

func TestLoadEncoderConfigErrors(t *testing.T) {
	_, err := LoadEncoderConfig("/nonexistent/encoder.yaml")
	require.Error(t, err)

	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.yaml", "columns: [unterminated")
	_, err = LoadEncoderConfig(bad)
	require.Error(t, err)
}

func TestModelRoundTrip(t *testing.T) {
	em := &encoder.EncodingMap{
		TargetColumns:  []string{"city"},
		ResponseColumn: "clicked",
		FoldColumn:     "fold",
		Stats: map[string]*encoder.ColumnStats{
			"city": {
				Levels: map[string]encoder.Stat{"NY": {Count: 2, Sum: 1}},
				Folds: map[encoder.FoldKey]encoder.Stat{
					{Level: "NY", Fold: 0}: {Count: 1, Sum: 1},
				},
			},
		},
		Global:       encoder.Stat{Count: 2, Sum: 1},
		DefaultNoise: 0.01,
	}
	model := &Model{
		Options: encoder.Options{Columns: []string{"city"}, Response: "clicked", FoldColumn: "fold"},
		Map:     em,
	}

	var buf bytes.Buffer
	require.NoError(t, SaveModel(model, &buf))
	loaded, err := LoadModel(&buf)
	require.NoError(t, err)
	require.Equal(t, model, loaded)
}

func TestTransformBadHoldout(t *testing.T) {
	dir := t.TempDir()
	trainFile := writeFile(t, dir, "train.csv", trainCSV)
	modelFile := filepath.Join(dir, "model.te")

	err := Fit(FitParameters{
		TrainFile:  trainFile,
		OutputFile: modelFile,
		Options:    encoder.Options{Columns: []string{"city"}, Response: "clicked"},
	})
	require.NoError(t, err)

	err = Transform(TransformParameters{
		ModelFile:   modelFile,
		InputFile:   trainFile,
		HoldoutType: "bootstrap",
	})
	require.Error(t, err)
}
