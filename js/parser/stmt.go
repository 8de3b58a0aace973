package parser

// followsLet lists the tokens after `let` that make it a declaration keyword
// instead of an identifier.
var followsLet = NewTokenSet(TokenIdent, TokenYield, TokenAwait, TokenLBracket, TokenLBrace)

// parseStatementListItem parses a statement or a declaration. Import and
// export declarations are accepted anywhere and reported when they are not
// at the top level of a module.
func (p *Parser) parseStatementListItem(topLevel bool) ParsedSyntax {
	switch {
	case p.At(TokenImport) && !p.NthAt(1, TokenLParen) && !p.NthAt(1, TokenDot):
		return p.checkModuleItem(p.parseImportDecl(), topLevel, "import")
	case p.At(TokenExport):
		return p.checkModuleItem(p.parseExportDecl(), topLevel, "export")
	}
	return p.parseStatement()
}

func (p *Parser) checkModuleItem(item ParsedSyntax, topLevel bool, what string) ParsedSyntax {
	cm, ok := item.Ok()
	if !ok {
		return item
	}
	switch {
	case !topLevel:
		p.Error(p.ErrBuilder(what+" declarations may only appear at the top level of a module").
			Primary(cm.Range(p), ""))
		return item.IntoInvalid()
	case !FeatureModule.IsSupported(p):
		p.Error(p.ErrBuilder(what+" declarations can only be used in modules").
			Primary(cm.Range(p), "the file is parsed as a script"))
		return item.IntoInvalid()
	}
	return item
}

func (p *Parser) parseStatement() ParsedSyntax {
	switch p.Cur() {
	case TokenSemicolon:
		m := p.Start()
		p.Bump(TokenSemicolon)
		return Present(m.Complete(p, KindEmptyStmt))
	case TokenLBrace:
		return p.parseBlockStatement()
	case TokenVar, TokenConst:
		if p.At(TokenConst) && p.NthAt(1, TokenEnum) {
			return p.parseTsEnumChecked()
		}
		return p.parseVariableStatement()
	case TokenFunction:
		return p.parseFunctionDeclaration()
	case TokenClass:
		return p.parseClassDeclaration()
	case TokenIf:
		return p.parseIfStatement()
	case TokenReturn:
		return p.parseReturnStatement()
	case TokenThrow:
		return p.parseThrowStatement()
	case TokenWhile:
		return p.parseWhileStatement()
	case TokenBreak, TokenContinue:
		return p.parseJumpStatement()
	case TokenDebugger:
		m := p.Start()
		start := p.CurRange().Start
		p.Bump(TokenDebugger)
		p.semi(start)
		return Present(m.Complete(p, KindDebuggerStmt))
	case TokenEnum:
		return p.parseTsEnumChecked()
	case TokenIdent:
		if p.AtContextual("let") && followsLet.Contains(p.Nth(1)) {
			return p.parseVariableStatement()
		}
		if p.AtContextual("async") && p.NthAt(1, TokenFunction) && !p.tokens.Nth(1).NewlineBefore {
			return p.parseFunctionDeclaration()
		}
		if p.atTsDeclarationStart(0) {
			if res, ok := p.TryParse(speculateTsStatement); ok {
				cm := res.Unwrap()
				cm.ErrIfNotTS(p, "TypeScript declarations can only be used in TypeScript files")
				return Present(cm)
			}
		}
	}
	return p.parseExpressionStatement()
}

func (p *Parser) parseBlockStatement() ParsedSyntax {
	if !p.At(TokenLBrace) {
		return Absent()
	}
	m := p.Start()
	p.Bump(TokenLBrace)
	p.parseStatementList(KindStatementList, TokenRBrace, false)
	p.Expect(TokenRBrace)
	return Present(m.Complete(p, KindBlockStmt))
}

func (p *Parser) parseExpressionStatement() ParsedSyntax {
	start := p.CurRange().Start
	expr := p.parseExpression()
	cm, ok := expr.Ok()
	if !ok {
		return Absent()
	}
	m := cm.Precede(p)
	p.semi(start)
	return Present(m.Complete(p, KindExprStmt))
}

func (p *Parser) parseVariableStatement() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	decl := p.parseVariableDeclaration()
	p.semi(start)
	cm := m.Complete(p, KindVariableStmt)
	if decl.IsInvalid() {
		return PresentInvalid(cm)
	}
	return Present(cm)
}

// parseVariableDeclaration parses `var`, `let` or `const` and its declarator
// list. In `let` and `const` lists every bound name must be unique.
func (p *Parser) parseVariableDeclaration() ParsedSyntax {
	m := p.Start()
	var parent string
	switch {
	case p.At(TokenVar):
		p.Bump(TokenVar)
	case p.At(TokenConst):
		parent = "const"
		p.Bump(TokenConst)
	default:
		parent = "let"
		p.BumpRemap(TokenLet)
	}

	restore := func() {}
	if parent != "" {
		restore = p.EnterBindingList(parent)
	}
	invalid := false
	list := p.Start()
	var progress ParserProgress
	for {
		progress.AssertProgressing(p)
		if p.parseVariableDeclarator(parent).IsInvalid() {
			invalid = true
		}
		if !p.Eat(TokenComma) {
			break
		}
	}
	list.Complete(p, KindVariableDeclaratorList)
	restore()

	cm := m.Complete(p, KindVariableDecl)
	if invalid {
		return PresentInvalid(cm)
	}
	return Present(cm)
}

func (p *Parser) parseVariableDeclarator(parent string) ParsedSyntax {
	m := p.Start()
	binding := p.parseBindingPattern()
	name := binding.OrMissingWithError(p, expectedBinding)

	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}

	init := p.parseInitializerClause()
	if init.IsAbsent() && parent == "const" && !p.State.InAmbient() {
		if cm, ok := name.Node(); ok {
			p.Error(p.ErrBuilder("const declarations must have an initialized value").
				Primary(cm.Range(p), "this variable needs to be initialized"))
		}
	}
	init.OrMissing(p)

	cm := m.Complete(p, KindVariableDeclarator)
	if binding.IsInvalid() {
		return PresentInvalid(cm)
	}
	return Present(cm)
}

func (p *Parser) parseInitializerClause() ParsedSyntax {
	if !p.At(TokenAssign) {
		return Absent()
	}
	m := p.Start()
	p.Bump(TokenAssign)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindInitializer))
}

func (p *Parser) parseIfStatement() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenIf)
	p.parseParenthesizedCondition()
	p.parseStatement().OrMissingWithError(p, expectedStatement)
	if p.At(TokenElse) {
		e := p.Start()
		p.Bump(TokenElse)
		p.parseStatement().OrMissingWithError(p, expectedStatement)
		e.Complete(p, KindElseClause)
	} else {
		p.Missing()
	}
	return Present(m.Complete(p, KindIfStmt))
}

func (p *Parser) parseParenthesizedCondition() {
	p.Expect(TokenLParen)
	p.parseExpression().OrMissingWithError(p, expectedExpression)
	p.Expect(TokenRParen)
}

func (p *Parser) parseWhileStatement() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenWhile)
	p.parseParenthesizedCondition()
	p.parseStatement().OrMissingWithError(p, expectedStatement)
	return Present(m.Complete(p, KindWhileStmt))
}

func (p *Parser) parseReturnStatement() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	p.Bump(TokenReturn)
	if !p.AtAny(TokenSemicolon, TokenRBrace, TokenEOF) && !p.HasNewlineBefore() {
		p.parseExpression().OrMissing(p)
	} else {
		p.Missing()
	}
	p.semi(start)
	cm := m.Complete(p, KindReturnStmt)
	if !p.State.InFunction {
		p.Error(p.ErrBuilder("Illegal return statement outside of a function").Primary(cm.Range(p), ""))
		return PresentInvalid(cm)
	}
	return Present(cm)
}

func (p *Parser) parseThrowStatement() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	p.Bump(TokenThrow)
	if p.HasNewlineBefore() {
		p.Error(p.ErrBuilder("linebreaks after `throw` are not allowed").Primary(p.CurRange(), ""))
	}
	p.parseExpression().OrMissingWithError(p, expectedExpression)
	p.semi(start)
	return Present(m.Complete(p, KindThrowStmt))
}

func (p *Parser) parseJumpStatement() ParsedSyntax {
	start := p.CurRange().Start
	kind := KindBreakStmt
	if p.At(TokenContinue) {
		kind = KindContinueStmt
	}
	m := p.Start()
	p.BumpAny()
	if p.isAtIdentifier() && !p.HasNewlineBefore() {
		l := p.Start()
		p.BumpAny()
		l.Complete(p, KindIdentifierExpr)
	} else {
		p.Missing()
	}
	p.semi(start)
	return Present(m.Complete(p, kind))
}
