package cli

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/smizip/smizip-go"
)

func newUnzipCmd() *cobra.Command {
	var dictSource string

	cmd := &cobra.Command{
		Use:   "unzip",
		Short: "Decompress TAB-framed lines read from stdin",
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
				text, title, err := codec.DecompressLine(scanner.Bytes())
				if err != nil {
					return fmt.Errorf("decompressing line: %w", err)
				}
				if _, err := fmt.Fprintf(out, "%s\t%s\n", text, title); err != nil {
					return err
				}
			}
			return scanner.Err()
		},
	}

	cmd.Flags().StringVar(&dictSource, "dict", "minimal", "dictionary to decompress with: built-in name, path, or https:// URL")
	return cmd
}
