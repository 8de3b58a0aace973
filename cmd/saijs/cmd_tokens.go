package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saijs/format"
	"github.com/dhamidi/saijs/js/parser"
)

func newTokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <file>",
		Short: "Print the token stream of a file, one token per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			r, err := openSource(path)
			if err != nil {
				return err
			}
			src, err := io.ReadAll(r)
			r.Close()
			if err != nil {
				return fmt.Errorf("read %s: %w", path, err)
			}

			tokens, diags := parser.Tokenize(path, src)
			if err := format.NewLineEncoder(cmd.OutOrStdout()).EncodeTokens(path, src, tokens); err != nil {
				return fmt.Errorf("encode tokens: %w", err)
			}

			if len(diags) > 0 {
				tree := &parser.Tree{
					File:        path,
					Source:      src,
					Tokens:      tokens,
					Diagnostics: diags,
					Lines:       parser.NewLineIndex(path, src),
				}
				if err := format.NewDiagnosticEncoder(os.Stderr).Encode(tree); err != nil {
					return fmt.Errorf("encode diagnostics: %w", err)
				}
			}
			return nil
		},
	}
}
