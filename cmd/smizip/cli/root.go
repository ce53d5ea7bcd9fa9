// Package cli wires the smizip command-line tool's subcommands.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Execute builds and runs the root smizip command against os.Args.
func Execute(ctx context.Context) error {
	root := &cobra.Command{
		Use:   "smizip",
		Short: "smizip - a byte-level compressor for SMILES strings",
		Long: `smizip compresses and decompresses SMILES strings using a fixed,
256-entry dictionary of single characters and multi-character fragments,
and can train new dictionaries from a corpus of SMILES strings.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newZipCmd())
	root.AddCommand(newUnzipCmd())
	root.AddCommand(newLearnCmd())

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "smizip: "+err.Error())
		return err
	}
	return nil
}
