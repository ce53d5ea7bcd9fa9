package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smizip/smizip-go"
)

func newLearnCmd() *cobra.Command {
	var (
		corpusPath   string
		outPath      string
		speedName    string
		initialChars string
		seedMGs      string
	)

	cmd := &cobra.Command{
		Use:   "learn",
		Short: "Train a new 256-token dictionary from a corpus of SMILES strings",
		RunE: func(cmd *cobra.Command, args []string) error {
			speed, err := parseSpeed(speedName)
			if err != nil {
				return err
			}

			f, err := os.Open(corpusPath)
			if err != nil {
				return fmt.Errorf("opening corpus: %w", err)
			}
			defer f.Close()

			opts := []smizip.Option{smizip.WithSpeed(speed), smizip.WithCorpusFilename(corpusPath)}
			if seedMGs != "" {
				opts = append(opts, smizip.WithSeedMultigrams(strings.Split(seedMGs, ",")))
			}

			learner := smizip.NewLearner(smizip.NewLineCorpus(f), []byte(initialChars), opts...)
			dict, meta, err := learner.Learn(cmd.Context())
			if err != nil {
				return fmt.Errorf("learning dictionary: %w", err)
			}

			data, err := smizip.MarshalDictionary(dict, meta)
			if err != nil {
				return fmt.Errorf("marshaling dictionary: %w", err)
			}
			return os.WriteFile(outPath, data, 0o644)
		},
	}

	cmd.Flags().StringVar(&corpusPath, "corpus", "", "path to a newline-delimited corpus of SMILES strings (required)")
	cmd.Flags().StringVar(&outPath, "out", "dictionary.json", "path to write the trained dictionary JSON")
	cmd.Flags().StringVar(&speedName, "speed", "slow", "search depth preset: slow, medium, or fast")
	cmd.Flags().StringVar(&initialChars, "initial-chars", "", "single characters to seed the dictionary with")
	cmd.Flags().StringVar(&seedMGs, "seed-multigrams", "", "comma-separated multichar tokens to seed the dictionary with")
	cmd.MarkFlagRequired("corpus")
	return cmd
}

func parseSpeed(name string) (smizip.SpeedPreset, error) {
	switch name {
	case "slow":
		return smizip.SpeedSlow, nil
	case "medium":
		return smizip.SpeedMedium, nil
	case "fast":
		return smizip.SpeedFast, nil
	default:
		return smizip.SpeedPreset{}, fmt.Errorf("unknown speed preset %q", name)
	}
}
