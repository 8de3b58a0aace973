package lsp

import (
	"testing"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/saijs/js/parser"
)

type notification struct {
	method string
	params any
}

func recordingContext(sent *[]notification) *glsp.Context {
	return &glsp.Context{
		Notify: func(method string, params any) {
			*sent = append(*sent, notification{method, params})
		},
	}
}

func lastDiagnostics(t *testing.T, sent []notification) protocol.PublishDiagnosticsParams {
	t.Helper()
	if len(sent) == 0 {
		t.Fatalf("no notification was sent")
	}
	n := sent[len(sent)-1]
	if n.method != protocol.ServerTextDocumentPublishDiagnostics {
		t.Fatalf("got method %s", n.method)
	}
	params, ok := n.params.(protocol.PublishDiagnosticsParams)
	if !ok {
		t.Fatalf("got params %T", n.params)
	}
	return params
}

func TestPosition(t *testing.T) {
	tests := []struct {
		src    string
		offset int
		want   protocol.Position
	}{
		{"abc", 0, protocol.Position{Line: 0, Character: 0}},
		{"abc", 3, protocol.Position{Line: 0, Character: 3}},
		{"a\n\tbc", 4, protocol.Position{Line: 1, Character: 2}},
		{"a\r\nb", 3, protocol.Position{Line: 1, Character: 0}},
		{"const s = '😀'; x", 18, protocol.Position{Line: 0, Character: 16}},
		{"'é' + x", 7, protocol.Position{Line: 0, Character: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tree := parser.Parse([]byte(tt.src))
			if got := position(tree, tt.offset); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestConvertDiagnostics(t *testing.T) {
	tree := parser.Parse([]byte("let a, a;"), parser.WithFile("a.js"))
	got := convertDiagnostics("file:///a.js", tree)
	if len(got) != 1 {
		t.Fatalf("got %d diagnostics, want 1", len(got))
	}
	d := got[0]
	if d.Severity == nil || *d.Severity != protocol.DiagnosticSeverityError {
		t.Errorf("got severity %v", d.Severity)
	}
	if d.Source == nil || *d.Source != "saijs" {
		t.Errorf("got source %v", d.Source)
	}
	wantRange := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 7},
		End:   protocol.Position{Line: 0, Character: 8},
	}
	if d.Range != wantRange {
		t.Errorf("got range %+v, want %+v", d.Range, wantRange)
	}
	if len(d.RelatedInformation) != 1 {
		t.Fatalf("got %d related, want 1", len(d.RelatedInformation))
	}
	rel := d.RelatedInformation[0]
	if rel.Location.URI != "file:///a.js" || rel.Location.Range.Start.Character != 4 {
		t.Errorf("got related %+v", rel)
	}
	if rel.Message != "`a` is first declared here" {
		t.Errorf("got %q", rel.Message)
	}
}

func TestConvertWarning(t *testing.T) {
	got := convertDiagnostics("file:///a.js", parser.Parse([]byte("  ")))
	if len(got) != 1 || *got[0].Severity != protocol.DiagnosticSeverityWarning {
		t.Fatalf("got %+v, want one warning", got)
	}
}

func TestDocumentSymbols(t *testing.T) {
	src := `function f() {}
export class C {}
const x = 1, [y] = [];
let z;
interface I {}
declare enum E { A }
type T = string;
namespace N {}
f();
`
	tree := parser.Parse([]byte(src), parser.WithFileKind(parser.FileKindTypeScript))
	if len(tree.Diagnostics) != 0 {
		t.Fatalf("unexpected diagnostics: %v", tree.Diagnostics)
	}

	want := []struct {
		name string
		kind protocol.SymbolKind
		line protocol.UInteger
	}{
		{"f", protocol.SymbolKindFunction, 0},
		{"C", protocol.SymbolKindClass, 1},
		{"x", protocol.SymbolKindConstant, 2},
		{"y", protocol.SymbolKindConstant, 2},
		{"z", protocol.SymbolKindVariable, 3},
		{"I", protocol.SymbolKindInterface, 4},
		{"E", protocol.SymbolKindEnum, 5},
		{"T", protocol.SymbolKindTypeParameter, 6},
		{"N", protocol.SymbolKindNamespace, 7},
	}
	got := documentSymbols(tree)
	if len(got) != len(want) {
		var names []string
		for _, s := range got {
			names = append(names, s.Name)
		}
		t.Fatalf("got symbols %v, want %d", names, len(want))
	}
	for i, w := range want {
		s := got[i]
		if s.Name != w.name || s.Kind != w.kind || s.SelectionRange.Start.Line != w.line {
			t.Errorf("symbol %d: got %s kind %d line %d, want %s kind %d line %d",
				i, s.Name, s.Kind, s.SelectionRange.Start.Line, w.name, w.kind, w.line)
		}
	}

	// The full range covers the export keyword, the selection only the name.
	c := got[1]
	if c.Range.Start.Character != 0 || c.SelectionRange.Start.Character != 13 {
		t.Errorf("got range %+v selection %+v", c.Range, c.SelectionRange)
	}
}

func TestDocumentLifecycle(t *testing.T) {
	var sent []notification
	ctx := recordingContext(&sent)
	s := NewServer("test")
	uri := protocol.DocumentUri("file:///tmp/a.js")

	err := s.textDocumentDidOpen(ctx, &protocol.DidOpenTextDocumentParams{
		TextDocument: protocol.TextDocumentItem{
			URI:        uri,
			LanguageID: "javascript",
			Version:    1,
			Text:       "let a, a;",
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	params := lastDiagnostics(t, sent)
	if params.URI != uri || len(params.Diagnostics) != 1 {
		t.Fatalf("after open: got %+v", params)
	}
	if params.Version == nil || *params.Version != 1 {
		t.Errorf("got version %v, want 1", params.Version)
	}

	err = s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEventWhole{Text: "let a, b;"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if params := lastDiagnostics(t, sent); len(params.Diagnostics) != 0 {
		t.Errorf("after change: got %+v", params.Diagnostics)
	}

	symbols, err := s.textDocumentDocumentSymbol(ctx, &protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := symbols.([]protocol.DocumentSymbol); len(got) != 2 {
		t.Errorf("got %d symbols, want 2", len(got))
	}

	text := "return 1;"
	err = s.textDocumentDidSave(ctx, &protocol.DidSaveTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
		Text:         &text,
	})
	if err != nil {
		t.Fatal(err)
	}
	params = lastDiagnostics(t, sent)
	if len(params.Diagnostics) != 1 || *params.Version != 2 {
		t.Errorf("after save: got %+v", params)
	}

	err = s.textDocumentDidClose(ctx, &protocol.DidCloseTextDocumentParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: uri},
	})
	if err != nil {
		t.Fatal(err)
	}
	if params := lastDiagnostics(t, sent); len(params.Diagnostics) != 0 {
		t.Errorf("close should clear diagnostics, got %+v", params.Diagnostics)
	}
	if s.document(uri) != nil {
		t.Errorf("document still tracked after close")
	}
	if len(sent) != 4 {
		t.Errorf("got %d notifications, want 4", len(sent))
	}
}

func TestFileKindFromURI(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		uri  string
		want int
	}{
		{"typescript by extension", nil, "file:///src/a.ts", 0},
		{"javascript by extension", nil, "file:///src/a.js", 1},
		{"forced kind", []Option{WithFileKind(parser.FileKindTypeScript)}, "file:///src/a.js", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewServer("test", tt.opts...)
			doc := s.update(tt.uri, 1, []byte("type T = string;"))
			if got := len(doc.tree.Diagnostics); got != tt.want {
				t.Errorf("got %d diagnostics, want %d", got, tt.want)
			}
		})
	}
}

func TestStrictOption(t *testing.T) {
	s := NewServer("test", WithStrict())
	doc := s.update("file:///a.cjs", 1, []byte("delete x;"))
	if len(doc.tree.Diagnostics) != 1 {
		t.Errorf("got %d diagnostics, want 1", len(doc.tree.Diagnostics))
	}
}

func TestURIToPath(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"file:///tmp/a.js", "/tmp/a.js"},
		{"file:///tmp/my%20dir/b.ts", "/tmp/my dir/b.ts"},
		{"untitled:Untitled-1", "untitled:Untitled-1"},
	}
	for _, tt := range tests {
		if got := uriToPath(tt.uri); got != tt.want {
			t.Errorf("uriToPath(%q): got %q, want %q", tt.uri, got, tt.want)
		}
	}
}

func TestIncrementalChangeIsRejected(t *testing.T) {
	var sent []notification
	ctx := recordingContext(&sent)
	s := NewServer("test")
	uri := protocol.DocumentUri("file:///tmp/a.js")
	s.update(uri, 1, []byte("let a;"))

	err := s.textDocumentDidChange(ctx, &protocol.DidChangeTextDocumentParams{
		TextDocument: protocol.VersionedTextDocumentIdentifier{
			TextDocumentIdentifier: protocol.TextDocumentIdentifier{URI: uri},
			Version:                2,
		},
		ContentChanges: []any{
			protocol.TextDocumentContentChangeEvent{
				Range: &protocol.Range{
					Start: protocol.Position{Line: 0, Character: 4},
					End:   protocol.Position{Line: 0, Character: 5},
				},
				Text: "b",
			},
		},
	})
	if err == nil {
		t.Fatalf("expected an error for an incremental change")
	}
	if len(sent) != 0 {
		t.Errorf("got %d notifications, want none", len(sent))
	}
	if doc := s.document(uri); doc == nil || doc.version != 1 {
		t.Errorf("document should keep its last full text, got %+v", doc)
	}
}
