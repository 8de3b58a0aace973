package lsp

import (
	"unicode/utf8"

	protocol "github.com/tliron/glsp/protocol_3_16"

	"github.com/dhamidi/saijs/js/parser"
)

// position converts a byte offset into an LSP position. Lines are 0-based
// and characters count UTF-16 code units.
func position(tree *parser.Tree, offset int) protocol.Position {
	pos := tree.Lines.Position(offset)
	lineStart := pos.Offset - (pos.Column - 1)
	return protocol.Position{
		Line:      protocol.UInteger(pos.Line - 1),
		Character: protocol.UInteger(utf16Len(string(tree.Source[lineStart:pos.Offset]))),
	}
}

func toRange(tree *parser.Tree, r parser.TextRange) protocol.Range {
	return protocol.Range{
		Start: position(tree, r.Start),
		End:   position(tree, r.End),
	}
}

func toSeverity(s parser.Severity) protocol.DiagnosticSeverity {
	switch s {
	case parser.SeverityError:
		return protocol.DiagnosticSeverityError
	case parser.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityInformation
	}
}

func convertDiagnostics(uri protocol.DocumentUri, tree *parser.Tree) []protocol.Diagnostic {
	source := lsName
	out := make([]protocol.Diagnostic, 0, len(tree.Diagnostics))
	for _, d := range tree.Diagnostics {
		severity := toSeverity(d.Severity)
		pd := protocol.Diagnostic{
			Range:    toRange(tree, d.Range()),
			Severity: &severity,
			Source:   &source,
			Message:  d.Message,
		}
		for _, l := range d.Secondary {
			pd.RelatedInformation = append(pd.RelatedInformation, protocol.DiagnosticRelatedInformation{
				Location: protocol.Location{URI: uri, Range: toRange(tree, l.Range)},
				Message:  l.Message,
			})
		}
		out = append(out, pd)
	}
	return out
}

// documentSymbols lists the named declarations at the top level of tree,
// looking through export and declare wrappers.
func documentSymbols(tree *parser.Tree) []protocol.DocumentSymbol {
	var list *parser.Node
	for _, child := range tree.Root.Children {
		if child.Kind == parser.KindStatementList || child.Kind == parser.KindModuleItemList {
			list = child
		}
	}
	if list == nil {
		return nil
	}

	symbols := []protocol.DocumentSymbol{}
	for _, stmt := range list.Children {
		symbols = append(symbols, declarationSymbols(tree, stmt, stmt)...)
	}
	return symbols
}

// declarationSymbols returns the symbols declared by decl. outer is the
// statement that holds it and gives the symbol its full range.
func declarationSymbols(tree *parser.Tree, decl, outer *parser.Node) []protocol.DocumentSymbol {
	switch decl.Kind {
	case parser.KindExportDecl, parser.KindExportDefaultDecl, parser.KindTsDeclareStmt:
		var out []protocol.DocumentSymbol
		for _, child := range decl.Children {
			if !child.IsToken() && !child.IsMissing() {
				out = append(out, declarationSymbols(tree, child, outer)...)
			}
		}
		return out
	case parser.KindVariableStmt:
		return variableSymbols(tree, decl, outer)
	case parser.KindTsModuleDecl:
		name := decl.Slot(1)
		if name == nil || name.IsMissing() {
			return nil
		}
		return []protocol.DocumentSymbol{newSymbol(tree, name.Text(), protocol.SymbolKindNamespace, outer, name)}
	}

	kind, ok := symbolKinds[decl.Kind]
	if !ok {
		return nil
	}
	name := decl.FirstChildOfKind(parser.KindIdentifierBinding)
	if name == nil {
		return nil
	}
	return []protocol.DocumentSymbol{newSymbol(tree, name.Text(), kind, outer, name)}
}

var symbolKinds = map[parser.NodeKind]protocol.SymbolKind{
	parser.KindFunctionDecl:      protocol.SymbolKindFunction,
	parser.KindTsDeclareFunction: protocol.SymbolKindFunction,
	parser.KindClassDecl:         protocol.SymbolKindClass,
	parser.KindTsInterfaceDecl:   protocol.SymbolKindInterface,
	parser.KindTsEnumDecl:        protocol.SymbolKindEnum,
	parser.KindTsTypeAlias:       protocol.SymbolKindTypeParameter,
}

func variableSymbols(tree *parser.Tree, stmt, outer *parser.Node) []protocol.DocumentSymbol {
	decl := stmt.FirstChildOfKind(parser.KindVariableDecl)
	if decl == nil {
		return nil
	}
	kind := protocol.SymbolKindVariable
	if first := decl.Slot(0); first != nil && first.IsToken() && first.Token.Kind == parser.TokenConst {
		kind = protocol.SymbolKindConstant
	}

	var out []protocol.DocumentSymbol
	list := decl.FirstChildOfKind(parser.KindVariableDeclaratorList)
	if list == nil {
		return nil
	}
	for _, declarator := range list.ChildrenOfKind(parser.KindVariableDeclarator) {
		declarator.Walk(func(n *parser.Node) bool {
			switch n.Kind {
			case parser.KindIdentifierBinding:
				out = append(out, newSymbol(tree, n.Text(), kind, outer, n))
				return false
			case parser.KindInitializer, parser.KindTsTypeAnnotation:
				return false
			}
			return true
		})
	}
	return out
}

func newSymbol(tree *parser.Tree, name string, kind protocol.SymbolKind, outer, selection *parser.Node) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           name,
		Kind:           kind,
		Range:          toRange(tree, outer.Range),
		SelectionRange: toRange(tree, selection.Range),
	}
}

// utf16Len is the length of s in UTF-16 code units.
func utf16Len(s string) int {
	n := 0
	for len(s) > 0 {
		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r >= 0x10000 {
			n += 2
		} else {
			n++
		}
	}
	return n
}
