package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dhamidi/saijs/js/parser"
)

// parseFlags are the parser settings shared by every command that parses.
type parseFlags struct {
	kind   string
	strict bool
}

func (f *parseFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.kind, "kind", "k", "", "File kind: script, module or typescript (default: from the file extension)")
	cmd.Flags().BoolVar(&f.strict, "strict", false, "Parse as if the source began with \"use strict\"")
}

func (f *parseFlags) fileKind(path string) (parser.FileKind, error) {
	if f.kind == "" {
		return parser.FileKindFor(path), nil
	}
	kind, ok := parser.ParseFileKind(f.kind)
	if !ok {
		return 0, fmt.Errorf("unknown file kind: %s", f.kind)
	}
	return kind, nil
}

func (f *parseFlags) options(path string) ([]parser.Option, error) {
	kind, err := f.fileKind(path)
	if err != nil {
		return nil, err
	}
	opts := []parser.Option{parser.WithFile(path), parser.WithFileKind(kind)}
	if f.strict {
		opts = append(opts, parser.WithStrict())
	}
	return opts, nil
}

// openSource opens path for reading, with "-" meaning standard input.
func openSource(path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}

func parseFile(path string, flags *parseFlags) (*parser.Tree, error) {
	opts, err := flags.options(path)
	if err != nil {
		return nil, err
	}
	r, err := openSource(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	p, err := parser.ParseProgram(r, opts...)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return p.Finish(), nil
}

// isIncomplete reports whether the parse failed only because the input
// stopped early, so that more input could complete it.
func isIncomplete(tree *parser.Tree) bool {
	errs := tree.Errors()
	if len(errs) == 0 {
		return false
	}
	for _, d := range errs {
		if !strings.HasSuffix(d.Message, "the file ends") {
			return false
		}
	}
	return true
}
