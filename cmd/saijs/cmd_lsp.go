package main

import (
	"github.com/spf13/cobra"

	"github.com/dhamidi/saijs/lsp"
)

func newLSPCmd() *cobra.Command {
	var flags parseFlags

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server on stdio",
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []lsp.Option
			if flags.kind != "" {
				kind, err := flags.fileKind("")
				if err != nil {
					return err
				}
				opts = append(opts, lsp.WithFileKind(kind))
			}
			if flags.strict {
				opts = append(opts, lsp.WithStrict())
			}
			server := lsp.NewServer(version, opts...)
			return server.RunStdio()
		},
	}

	flags.register(cmd)

	return cmd
}
