package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/dhamidi/saijs/js/parser"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFileKindFlag(t *testing.T) {
	tests := []struct {
		kind    string
		path    string
		want    parser.FileKind
		wantErr bool
	}{
		{"", "a.ts", parser.FileKindTypeScript, false},
		{"", "a.cjs", parser.FileKindScript, false},
		{"", "a.js", parser.FileKindModule, false},
		{"script", "a.ts", parser.FileKindScript, false},
		{"ts", "a.js", parser.FileKindTypeScript, false},
		{"coffee", "a.js", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.kind+"/"+tt.path, func(t *testing.T) {
			f := parseFlags{kind: tt.kind}
			got, err := f.fileKind(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsIncomplete(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"let a = 1;", false},
		{"let a = ", true},
		{"function f() {", true},
		{"if (a", true},
		{"a b", false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := isIncomplete(parser.Parse([]byte(tt.input))); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestParseFile(t *testing.T) {
	path := writeFile(t, "a.ts", "let x: number = 1;")
	tree, err := parseFile(path, &parseFlags{})
	if err != nil {
		t.Fatal(err)
	}
	if tree.File != path || len(tree.Diagnostics) != 0 {
		t.Errorf("got file %q diagnostics %v", tree.File, tree.Diagnostics)
	}

	tree, err = parseFile(path, &parseFlags{kind: "module"})
	if err != nil {
		t.Fatal(err)
	}
	if len(tree.Errors()) != 1 {
		t.Errorf("type annotations in a module: got %d errors, want 1", len(tree.Errors()))
	}

	if _, err := parseFile(filepath.Join(t.TempDir(), "missing.js"), &parseFlags{}); err == nil {
		t.Errorf("expected an error for a missing file")
	}
}

func TestCheckCmd(t *testing.T) {
	good := writeFile(t, "good.js", "let a = 1;\n")
	bad := writeFile(t, "bad.js", "let a, a;\n")

	tests := []struct {
		name     string
		args     []string
		wantErr  bool
		contains string
	}{
		{"clean file", []string{good}, false, ""},
		{"duplicate binding", []string{good, bad}, true, "bad.js:1:8: error: "},
		{"json", []string{"--format", "json", bad}, true, `"severity": "error"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			cmd := newCheckCmd()
			cmd.SetOut(&out)
			cmd.SetErr(&bytes.Buffer{})
			cmd.SetArgs(tt.args)
			err := cmd.Execute()
			if (err != nil) != tt.wantErr {
				t.Fatalf("got error %v, want error %v", err, tt.wantErr)
			}
			if !strings.Contains(out.String(), tt.contains) {
				t.Errorf("output %q does not contain %q", out.String(), tt.contains)
			}
		})
	}
}

func TestParseCmd(t *testing.T) {
	path := writeFile(t, "a.js", "a;")
	var out bytes.Buffer
	cmd := newParseCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out.String(), "Module\n  DirectiveList\n") {
		t.Errorf("got %q", out.String())
	}
}

func TestTokensCmd(t *testing.T) {
	path := writeFile(t, "a.js", "x = /re/g")
	var out bytes.Buffer
	cmd := newTokensCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{path})
	if err := cmd.Execute(); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d tokens, want 4:\n%s", len(lines), out.String())
	}
	if !strings.Contains(lines[2], `"/re/g"`) {
		t.Errorf("regex not lexed as one token: %q", lines[2])
	}
}
