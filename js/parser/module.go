package parser

func (p *Parser) parseImportDecl() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	p.Bump(TokenImport)

	if p.At(TokenString) {
		p.Missing()
		p.parseModuleSource()
		p.semi(start)
		return Present(m.Complete(p, KindImportDecl))
	}

	if p.isAtIdentifier() && p.NthAt(1, TokenAssign) ||
		p.AtContextual("type") && p.nthIsIdentifier(1) && p.NthAt(2, TokenAssign) {
		if p.AtContextual("type") {
			p.BumpRemap(TokenType)
		}
		cm := p.parseTsImportEqualsDecl(m, start)
		cm.ErrIfNotTS(p, "import equals declarations can only be used in TypeScript files")
		return Present(cm)
	}

	// `import type X from` and `import type from "mod"` only differ after
	// the second word.
	if p.AtContextual("type") && !p.NthAtContextual(1, "from") && !p.NthAt(1, TokenComma) {
		if res, ok := p.TryParse(speculateTypeOnlyImportClause); ok {
			cm := res.Unwrap()
			cm.ErrIfNotTS(p, "type-only imports can only be used in TypeScript files")
		} else {
			p.parseImportClause()
		}
	} else {
		p.parseImportClause()
	}

	p.parseFromClause()
	p.semi(start)
	return Present(m.Complete(p, KindImportDecl))
}

func speculateTypeOnlyImportClause(p *Parser) Speculation {
	m := p.Start()
	p.BumpRemap(TokenType)
	if !p.isAtIdentifier() && !p.AtAny(TokenStar, TokenLBrace) {
		return Speculation{}
	}
	if p.parseImportClauseParts().IsAbsent() {
		return Speculation{}
	}
	if !p.AtContextual("from") {
		return Speculation{}
	}
	return Speculation{Syntax: Present(m.Complete(p, KindImportClause))}
}

func (p *Parser) parseImportClause() CompletedMarker {
	m := p.Start()
	p.Missing()
	if p.parseImportClauseParts().IsAbsent() {
		p.Error(ExpectedAny([]string{"default import", "namespace import", "named imports"}, p.CurRange(), p))
	}
	return m.Complete(p, KindImportClause)
}

// parseImportClauseParts parses `x`, `* as ns`, `{ a, b as c }` and the
// combinations of a default import with one of the others.
func (p *Parser) parseImportClauseParts() ParsedSyntax {
	var last ParsedSyntax
	if p.isAtIdentifier() && !p.AtContextual("from") || p.AtContextual("from") && p.NthAtContextual(1, "from") {
		last = p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
		if !p.Eat(TokenComma) {
			return last
		}
	}
	switch {
	case p.At(TokenStar):
		return p.parseNamespaceImport()
	case p.At(TokenLBrace):
		return p.parseNamedImports()
	}
	if last.IsPresent() {
		p.Error(ExpectedAny([]string{"namespace import", "named imports"}, p.CurRange(), p))
		p.Missing()
	}
	return last
}

func (p *Parser) parseNamespaceImport() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenStar)
	p.expectContextual("as", TokenAs)
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	return Present(m.Complete(p, KindNamespaceImport))
}

var specifierRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBrace, TokenSemicolon),
	Kind: KindError,
}

func (p *Parser) parseNamedImports() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenLBrace)
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if p.parseImportSpecifier().IsAbsent() {
			if specifierRecovery.RecoverWithError(p, expectedIdentifier, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}
		if !p.At(TokenRBrace) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBrace)
	return Present(m.Complete(p, KindNamedImports))
}

func (p *Parser) parseImportSpecifier() ParsedSyntax {
	if !p.isAtIdentName() && !p.At(TokenString) {
		return Absent()
	}
	m := p.Start()
	if p.NthAtContextual(1, "as") {
		p.parseModuleExportName()
		p.BumpRemap(TokenAs)
		p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	} else {
		p.Missing()
		p.Missing()
		if p.isAtIdentifier() {
			p.parseIdentifierBinding()
		} else {
			p.Error(p.ErrBuilder("`"+p.CurText()+"` cannot be imported without a local name").
				Primary(p.CurRange(), "add `as` and a binding"))
			p.parseModuleExportName()
		}
	}
	return Present(m.Complete(p, KindImportSpecifier))
}

// parseModuleExportName parses an identifier name or string used as an
// imported or exported name.
func (p *Parser) parseModuleExportName() {
	if p.At(TokenString) {
		m := p.Start()
		p.Bump(TokenString)
		m.Complete(p, KindLiteralExpr)
		return
	}
	p.parseIdentName(KindIdentifierExpr).OrMissingWithError(p, expectedIdentifier)
}

func (p *Parser) parseFromClause() {
	if !p.AtContextual("from") {
		p.Error(ExpectedNode("`from`", p.CurRange(), p))
		p.Missing()
		return
	}
	m := p.Start()
	p.BumpRemap(TokenFrom)
	p.parseModuleSource()
	m.Complete(p, KindFromClause)
}

func (p *Parser) parseModuleSource() {
	if !p.At(TokenString) {
		p.Error(expectedStringLiteral(p, p.CurRange()))
		p.Missing()
		return
	}
	m := p.Start()
	p.Bump(TokenString)
	m.Complete(p, KindLiteralExpr)
}

// expectContextual consumes the contextual keyword text as kind, or reports
// it and records a Missing slot.
func (p *Parser) expectContextual(text string, kind TokenKind) bool {
	if p.AtContextual(text) {
		p.BumpRemap(kind)
		return true
	}
	p.Error(ExpectedNode("`"+text+"`", p.CurRange(), p))
	p.Missing()
	return false
}

// parseExportDecl parses every form of `export`. TypeScript declarations
// after `export` are attempted speculatively and fall back to the
// JavaScript forms when they do not match.
func (p *Parser) parseExportDecl() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	p.Bump(TokenExport)

	if p.atTsDeclarationStart(0) {
		if res, ok := p.TryParse(speculateTsStatement); ok {
			cm := res.Unwrap()
			cm.ErrIfNotTS(p, "TypeScript declarations can only be used in TypeScript files")
			return Present(m.Complete(p, KindExportDecl))
		}
	}

	declare := p.AtContextual("declare") && !p.tokens.Nth(1).NewlineBefore
	offset := 0
	if declare {
		offset = 1
	}

	switch {
	case p.NthAt(offset, TokenImport):
		p.errIfDeclare(declare, "`declare` modifiers cannot be applied to import declarations")
		p.Bump(TokenImport)
		cm := p.parseTsImportEqualsDecl(m, start)
		cm.ErrIfNotTS(p, "import equals declarations can only be used in TypeScript files")
		return Present(cm)
	case p.NthAt(offset, TokenAssign):
		p.errIfDeclare(declare, "`declare` modifiers cannot be applied to export equals declarations")
		p.Bump(TokenAssign)
		p.parseExpression().OrMissingWithError(p, expectedExpression)
		p.semi(start)
		cm := m.Complete(p, KindTsExportAssignment)
		cm.ErrIfNotTS(p, "export equals declarations can only be used in TypeScript files")
		return Present(cm)
	case p.NthAtContextual(offset, "as"):
		p.errIfDeclare(declare, "`declare` modifiers cannot be applied to export as namespace declarations")
		p.BumpRemap(TokenAs)
		p.expectContextual("namespace", TokenNamespace)
		p.parseIdentName(KindIdentifierExpr).OrMissingWithError(p, expectedIdentifier)
		p.semi(start)
		cm := m.Complete(p, KindTsNamespaceExportDecl)
		cm.ErrIfNotTS(p, "export as namespace declarations can only be used in TypeScript files")
		return Present(cm)
	}

	if declare {
		if p.syntax.IsTypeScript() {
			p.BumpRemap(TokenDeclare)
		} else {
			p.ErrAndBump("declare modifiers can only be used in TypeScript files")
		}
	}

	onlyType := p.AtContextual("type") && p.NthAt(1, TokenLBrace)
	if onlyType {
		t := p.Start()
		p.BumpRemap(TokenType)
		cm := t.Complete(p, KindTsName)
		cm.ErrIfNotTS(p, "type-only exports can only be used in TypeScript files")
	}

	switch {
	case !onlyType && p.At(TokenStar):
		p.Bump(TokenStar)
		if p.AtContextual("as") {
			p.BumpRemap(TokenAs)
			p.parseModuleExportName()
		} else {
			p.Missing()
			p.Missing()
		}
		p.parseFromClause()
		p.semi(start)
		return Present(m.Complete(p, KindExportWildcard))

	case !onlyType && p.At(TokenDefault):
		return p.parseExportDefault(m, start)

	case p.At(TokenLBrace):
		p.parseExportSpecifiers()
		if p.AtContextual("from") {
			p.parseFromClause()
		} else {
			p.Missing()
		}
		p.semi(start)
		return Present(m.Complete(p, KindExportNamed))
	}

	if decl := p.parseExportableDeclaration(); decl.IsPresent() {
		return Present(m.Complete(p, KindExportDecl))
	}
	p.Error(ExpectedAny([]string{"declaration", "export clause", "`*`", "`default`"}, p.CurRange(), p))
	return PresentInvalid(m.Complete(p, KindExportDecl))
}

func (p *Parser) errIfDeclare(declare bool, message string) {
	if !declare {
		return
	}
	r := p.CurRange()
	p.BumpRemap(TokenDeclare)
	p.Error(p.ErrBuilder(message).Primary(r, ""))
}

func (p *Parser) parseExportableDeclaration() ParsedSyntax {
	switch {
	case p.At(TokenClass):
		return p.parseClassDeclaration()
	case p.At(TokenFunction), p.AtContextual("async") && p.NthAt(1, TokenFunction):
		return p.parseFunctionDeclaration()
	case p.At(TokenConst) && p.NthAt(1, TokenEnum), p.At(TokenEnum):
		return p.parseTsEnumChecked()
	case p.AtAny(TokenVar, TokenConst), p.AtContextual("let") && followsLet.Contains(p.Nth(1)):
		return p.parseVariableStatement()
	}
	return Absent()
}

func (p *Parser) parseExportDefault(m Marker, start int) ParsedSyntax {
	p.Bump(TokenDefault)
	restore := p.WithState(func(s *ParserState) { s.InDefault = true })
	decl := p.parseDefaultDeclaration()
	restore()
	if decl {
		return Present(m.Complete(p, KindExportDefaultDecl))
	}
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	p.semi(start)
	return Present(m.Complete(p, KindExportDefaultExpr))
}

// parseDefaultDeclaration parses the declarations whose name is optional
// after `export default`.
func (p *Parser) parseDefaultDeclaration() bool {
	switch {
	case p.AtContextual("abstract") && p.NthAt(1, TokenClass):
		cm := p.parseAbstractClass()
		cm.ErrIfNotTS(p, "`abstract` modifiers can only be used in TypeScript files")
	case p.AtContextual("interface") && p.nthIsIdentifier(1):
		cm := p.parseTsInterface().Unwrap()
		cm.ErrIfNotTS(p, "interfaces can only be used in TypeScript files")
	case p.At(TokenClass):
		p.parseClass(KindClassDecl)
	case p.At(TokenFunction), p.AtContextual("async") && p.NthAt(1, TokenFunction) && !p.tokens.Nth(1).NewlineBefore:
		p.parseFunctionDeclaration()
	default:
		return false
	}
	return true
}

func (p *Parser) parseExportSpecifiers() CompletedMarker {
	m := p.Start()
	p.Bump(TokenLBrace)
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if !p.isAtIdentName() && !p.At(TokenString) {
			if specifierRecovery.RecoverWithError(p, expectedIdentifier, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}
		s := p.Start()
		p.parseModuleExportName()
		if p.AtContextual("as") {
			p.BumpRemap(TokenAs)
			p.parseModuleExportName()
		} else {
			p.Missing()
			p.Missing()
		}
		s.Complete(p, KindExportSpecifier)
		if !p.At(TokenRBrace) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBrace)
	return m.Complete(p, KindExportSpecifierList)
}
