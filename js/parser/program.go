package parser

func (p *Parser) parseProgram() CompletedMarker {
	m := p.Start()
	restore := p.parseDirectives()

	listKind, kind := KindStatementList, KindScript
	if p.syntax.IsModule() {
		listKind, kind = KindModuleItemList, KindModule
	}
	p.parseStatementList(listKind, TokenEOF, true)

	if len(p.tokens.tokens) == 1 {
		p.Error(NewDiagnostic(SeverityWarning, "the file contains no statements").
			Primary(p.CurRange(), ""))
	}
	p.bumpEOF()
	restore()
	return m.Complete(p, kind)
}

func (p *Parser) parseExpressionRoot() CompletedMarker {
	m := p.Start()
	p.parseExpression().OrMissingWithError(p, expectedExpression)
	if !p.At(TokenEOF) {
		rest := p.Start()
		p.Error(p.ErrBuilder("unexpected input after the expression").Primary(p.CurRange(), ""))
		for !p.At(TokenEOF) {
			p.BumpAny()
		}
		rest.Complete(p, KindUnknownExpr)
	}
	p.bumpEOF()
	return m.Complete(p, KindExpressionRoot)
}

// parseDirectives parses the directive prologue of a program or function
// body. A "use strict" directive switches the parser into strict mode until
// the returned function is called.
func (p *Parser) parseDirectives() func() {
	restore := func() {}
	m := p.Start()
	for p.At(TokenString) && p.atDirectiveEnd(1) {
		d := p.Start()
		text := p.CurText()
		r := p.CurRange()
		p.Bump(TokenString)
		p.Eat(TokenSemicolon)
		d.Complete(p, KindDirective)

		if (text == `"use strict"` || text == `'use strict'`) && p.State.Strict == nil {
			restore = p.WithState(func(s *ParserState) {
				s.Strict = &StrictMode{Directive: r, Explicit: true}
			})
		}
	}
	m.Complete(p, KindDirectiveList)
	return restore
}

func (p *Parser) atDirectiveEnd(n int) bool {
	next := p.tokens.Nth(n)
	switch next.Kind {
	case TokenSemicolon, TokenRBrace, TokenEOF:
		return true
	}
	return next.NewlineBefore && !next.Kind.IsPunctuator()
}

// parseStatementList parses statements until end or EOF. Tokens that cannot
// start a statement are reported and wrapped so that the list always makes
// progress.
func (p *Parser) parseStatementList(kind NodeKind, end TokenKind, topLevel bool) CompletedMarker {
	m := p.Start()
	recovery := ParseRecovery{Set: statementRecovery, Kind: KindUnknownStmt, LineBreak: true}
	var progress ParserProgress
	for !p.At(TokenEOF) && !p.At(end) {
		progress.AssertProgressing(p)
		if p.parseStatementListItem(topLevel).IsPresent() {
			continue
		}
		if recovery.RecoverWithError(p, expectedStatement, end).IsAbsent() {
			break
		}
	}
	return m.Complete(p, kind)
}

// semi consumes an explicit semicolon or accepts an implicit one. start is the
// offset of the statement being terminated.
func (p *Parser) semi(start int) bool {
	if p.Eat(TokenSemicolon) || p.AtAny(TokenRBrace, TokenEOF) || p.HasNewlineBefore() {
		return true
	}
	p.Error(p.ErrBuilder("expected a semicolon or an implicit semicolon after a statement, but found none").
		Primary(p.CurRange(), "An explicit or implicit semicolon is expected here...").
		Secondary(TextRange{Start: start, End: p.prevEnd()}, "...Which is required to end this statement"))
	return false
}

// prevEnd is the end offset of the last consumed token.
func (p *Parser) prevEnd() int {
	pos := p.tokens.Position()
	if pos == 0 {
		return 0
	}
	return p.tokens.tokens[pos-1].Range.End
}

func (p *Parser) isAtIdentifier() bool {
	return p.AtAny(TokenIdent, TokenYield, TokenAwait)
}

func (p *Parser) nthIsIdentifier(n int) bool {
	switch p.Nth(n) {
	case TokenIdent, TokenYield, TokenAwait:
		return true
	}
	return false
}

// isAtIdentName reports whether the current token can be used where any
// identifier name, reserved words included, is allowed.
func (p *Parser) isAtIdentName() bool {
	return p.At(TokenIdent) || p.Cur().IsKeyword()
}

func (p *Parser) nthIsIdentName(n int) bool {
	return p.NthAt(n, TokenIdent) || p.Nth(n).IsKeyword()
}

// parseIdentName consumes any identifier name into a node of kind.
func (p *Parser) parseIdentName(kind NodeKind) ParsedSyntax {
	if !p.isAtIdentName() {
		return Absent()
	}
	m := p.Start()
	p.BumpAny()
	return Present(m.Complete(p, kind))
}

// enterFunction resets the state for a new function scope.
func (p *Parser) enterFunction(async, generator bool) func() {
	return p.WithState(func(s *ParserState) {
		s.InFunction = true
		s.InAsync = async
		s.InGenerator = generator
		s.InDefault = false
		s.AllowObjectExpr = true
		s.DuplicateBindingParent = ""
		s.NameMap = map[string]TextRange{}
	})
}

func (p *Parser) enterStrict() func() {
	if p.State.Strict != nil {
		return func() {}
	}
	return p.WithState(func(s *ParserState) {
		s.Strict = &StrictMode{}
	})
}
