package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"targetenc/pkg"

	"github.com/spf13/cobra"
)

func FitCommand() *cobra.Command {

	var params pkg.FitParameters

	var cmd = &cobra.Command{
		Use:   "fit -i trainData -o modelFile -t responseColumn --te-columns col1,col2",
		Short: "Builds a target encoding map from the provided training data and saves it",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Fit(params)
		},
	}

	cmd.Flags().StringVarP(&params.TrainFile, "train-file", "i", "", "name of train file")
	cmd.Flags().StringVarP(&params.OutputFile, "output-file", "o", "", "name of the file to save the encoding map to")
	cmd.Flags().StringVarP(&params.ConfigFile, "config", "c", "", "yaml file with encoder settings (flags take precedence)")
	cmd.Flags().StringVarP(&params.Options.Response, "target-column", "t", "", "binary response column")
	cmd.Flags().StringSliceVarP(&params.Options.Columns, "te-columns", "", nil, "list of categorical columns to encode")
	cmd.Flags().StringVarP(&params.Options.FoldColumn, "fold-column", "f", "", "name of the fold assignment column")
	cmd.Flags().BoolVarP(&params.Options.Blending, "blending", "b", false, "blend level means with the global prior")
	cmd.Flags().Float64VarP(&params.Options.InflectionPoint, "inflection-point", "k", 0, "level size at which posterior and prior weigh equally")
	cmd.Flags().Float64VarP(&params.Options.Smoothing, "smoothing", "s", 0, "rate of transition between prior and posterior")

	_ = cmd.MarkFlagRequired("train-file")
	_ = cmd.MarkFlagRequired("output-file")

	return cmd
}

func TransformCommand() *cobra.Command {

	var params pkg.TransformParameters

	var cmd = &cobra.Command{
		Use:   "transform -m modelFile -i inputFile [-o outputFile] --holdout kfold|loo|none",
		Short: "Encodes the categorical columns of the input data with a fitted encoding map",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return pkg.Transform(params)
		},
	}

	cmd.Flags().StringVarP(&params.ModelFile, "model", "m", "", "name of the fitted encoding map file")
	cmd.Flags().StringVarP(&params.InputFile, "input", "i", "", "name of data input file")
	cmd.Flags().StringVarP(&params.OutputFile, "output", "o", "", "name of output file (optional, uses stdout if not present)")
	cmd.Flags().StringVarP(&params.HoldoutType, "holdout", "", "none", "holdout scheme: kfold, loo or none")
	cmd.Flags().Float64VarP(&params.Noise, "noise", "n", 0, "half-width of uniform noise added to encodings, negative for the fitted default")
	cmd.Flags().Int64VarP(&params.Seed, "seed", "x", 0, "random seed for noise generation")
	cmd.Flags().BoolVarP(&params.DropOriginal, "drop-original", "d", false, "drop the categorical source columns from the output")

	_ = cmd.MarkFlagRequired("model")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

var logLevel string
var logFormat string

func main() {

	Main := &cobra.Command{Use: "targetenc", PersistentPreRun: setupLogging}

	Main.PersistentFlags().StringVarP(&logLevel, "log-level", "", "info", "Logging level: info error or debug")
	Main.PersistentFlags().StringVarP(&logFormat, "log-format", "", "pretty", "Logging format: pretty or json")

	Main.AddCommand(FitCommand())
	Main.AddCommand(TransformCommand())

	if err := Main.Execute(); err != nil {
		os.Exit(1)
	}
}

func setupLogging(cmd *cobra.Command, args []string) {

	switch logLevel {
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	default:
		panic("Invalid logging level specified")
	}

	switch logFormat {
	case "pretty":
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	case "json":
	default:
		panic("Invalid log format specified")
	}
}
