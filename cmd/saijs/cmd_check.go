package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	"github.com/dhamidi/saijs/format"
)

func newCheckCmd() *cobra.Command {
	var (
		flags        parseFlags
		outputFormat string
	)

	cmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report syntax errors; exits with status 1 if there are any",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := commonlog.GetLogger("saijs.cli")

			errors := 0
			for _, path := range args {
				tree, err := parseFile(path, &flags)
				if err != nil {
					return err
				}
				log.Debugf("checked %s: %d diagnostics", path, len(tree.Diagnostics))

				enc, err := format.DiagnosticsEncoder(outputFormat, cmd.OutOrStdout())
				if err != nil {
					return err
				}
				if err := enc.Encode(tree); err != nil {
					return fmt.Errorf("encode diagnostics: %w", err)
				}
				errors += len(tree.Errors())
			}

			if errors > 0 {
				return fmt.Errorf("found %d syntax errors", errors)
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format (text, json)")

	return cmd
}
