package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saijs/format"
)

func newParseCmd() *cobra.Command {
	var (
		flags            parseFlags
		outputFormat     string
		includePositions bool
	)

	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a JavaScript or TypeScript file and dump its syntax tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			tree, err := parseFile(args[0], &flags)
			if err != nil {
				return err
			}

			enc, err := format.TreeEncoder(outputFormat, cmd.OutOrStdout(), includePositions)
			if err != nil {
				return err
			}
			if err := enc.Encode(tree); err != nil {
				return fmt.Errorf("encode: %w", err)
			}

			if err := format.NewDiagnosticEncoder(os.Stderr).Encode(tree); err != nil {
				return fmt.Errorf("encode diagnostics: %w", err)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")
	cmd.Flags().BoolVarP(&includePositions, "positions", "p", false, "Include line:column spans in text output")

	return cmd
}
