package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/smizip/smizip-go"
)

func newZipCmd() *cobra.Command {
	var dictSource string

	cmd := &cobra.Command{
		Use:   "zip",
		Short: "Compress TAB-separated SMILES/title lines read from stdin",
		RunE: func(cmd *cobra.Command, args []string) error {
			dict, err := smizip.LoadDictionary(dictSource)
			if err != nil {
				return fmt.Errorf("loading dictionary: %w", err)
			}
			codec, err := smizip.NewLineCodec(dict)
			if err != nil {
				return fmt.Errorf("building line codec: %w", err)
			}

			scanner := bufio.NewScanner(os.Stdin)
			out := bufio.NewWriter(os.Stdout)
			defer out.Flush()

			for scanner.Scan() {
				text, title, _ := strings.Cut(scanner.Text(), "\t")
				line, err := codec.CompressLine(text, title)
				if err != nil {
					return fmt.Errorf("compressing %q: %w", text, err)
				}
				if _, err := out.Write(line); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&dictSource, "dict", "minimal", "dictionary to compress with: built-in name, path, or https:// URL")
	return cmd
}
