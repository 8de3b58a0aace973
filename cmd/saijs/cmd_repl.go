package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"github.com/spf13/cobra"

	"github.com/dhamidi/saijs/format"
	"github.com/dhamidi/saijs/js/parser"
)

const (
	historyFile = ".saijs_history"
	promptMain  = "saijs> "
	promptCont  = "  ...> "
)

func newReplCmd() *cobra.Command {
	var (
		flags            parseFlags
		includePositions bool
	)

	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Parse input interactively and print the syntax tree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.kind == "" {
				flags.kind = "module"
			}
			opts, err := flags.options("<repl>")
			if err != nil {
				return err
			}
			return runRepl(cmd.OutOrStdout(), opts, includePositions)
		},
	}

	flags.register(cmd)
	cmd.Flags().BoolVarP(&includePositions, "positions", "p", false, "Include line:column spans in the tree")

	return cmd
}

func runRepl(out io.Writer, opts []parser.Option, positions bool) error {
	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		tree, ok := readByParseProbe(ln, opts)
		if !ok {
			fmt.Fprintln(out)
			return nil
		}
		src := string(tree.Source)
		switch strings.TrimSpace(src) {
		case "":
			continue
		case ":quit", ":q":
			return nil
		}
		ln.AppendHistory(strings.ReplaceAll(src, "\n", " "))

		if err := format.NewTextEncoder(out, positions).Encode(tree); err != nil {
			return fmt.Errorf("encode: %w", err)
		}
		if err := format.NewDiagnosticEncoder(out).Encode(tree); err != nil {
			return fmt.Errorf("encode diagnostics: %w", err)
		}
	}
}

// readByParseProbe reads lines until the accumulated input parses without
// running off its end. It returns false once input is exhausted.
func readByParseProbe(ln *liner.State, opts []parser.Option) (*parser.Tree, bool) {
	var b strings.Builder

	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return nil, false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return nil, false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		tree := parser.Parse([]byte(b.String()), opts...)
		if isIncomplete(tree) && strings.TrimSpace(line) != "" {
			continue
		}
		return tree, true
	}
}
