package parser

func (p *Parser) parseFunctionDeclaration() ParsedSyntax {
	m := p.Start()
	async := p.AtContextual("async")
	if async {
		p.BumpRemap(TokenAsync)
	}
	p.Bump(TokenFunction)
	generator := p.Eat(TokenStar)

	if p.isAtIdentifier() {
		p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	} else if p.State.InDefault {
		p.Missing()
	} else {
		p.Error(expectedIdentifier(p, p.CurRange()))
		p.Missing()
	}

	if p.parseFunctionRest(async, generator, true) {
		return Present(m.Complete(p, KindFunctionDecl))
	}
	cm := m.Complete(p, KindTsDeclareFunction)
	if !p.State.InAmbient() {
		cm.ErrIfNotTS(p, "function declarations without a body can only be used in TypeScript files")
	}
	return Present(cm)
}

func (p *Parser) parseFunctionExpression() ParsedSyntax {
	m := p.Start()
	async := p.AtContextual("async")
	if async {
		p.BumpRemap(TokenAsync)
	}
	p.Bump(TokenFunction)
	generator := p.Eat(TokenStar)

	restore := p.enterFunction(async, generator)
	if p.isAtIdentifier() {
		p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	} else {
		p.Missing()
	}
	restore()

	p.parseFunctionRest(async, generator, false)
	return Present(m.Complete(p, KindFunctionExpr))
}

// parseFunctionRest parses parameters, an optional return type and the body.
// It reports false when the body was omitted, which bodyless allows for
// overloads and ambient declarations.
func (p *Parser) parseFunctionRest(async, generator, bodyless bool) bool {
	restore := p.enterFunction(async, generator)
	defer restore()

	p.parseParameterList()
	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}

	if p.At(TokenLBrace) {
		p.parseFunctionBody()
		return true
	}
	if bodyless && (p.syntax.IsTypeScript() || p.State.InAmbient()) {
		start := p.prevEnd()
		p.Missing()
		p.semi(start)
		return false
	}
	p.Error(ExpectedNode("function body", p.CurRange(), p))
	p.Missing()
	return true
}

func (p *Parser) parseFunctionBody() CompletedMarker {
	m := p.Start()
	p.Bump(TokenLBrace)
	restore := p.parseDirectives()
	p.parseStatementList(KindStatementList, TokenRBrace, false)
	restore()
	p.Expect(TokenRBrace)
	return m.Complete(p, KindFunctionBody)
}

var parameterRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRParen, TokenLBrace, TokenSemicolon, TokenArrow),
	Kind: KindUnknownBinding,
}

func expectedParameter(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"parameter", "rest parameter"}, r, p)
}

func (p *Parser) parseParameterList() CompletedMarker {
	m := p.Start()
	if !p.Expect(TokenLParen) {
		return m.Complete(p, KindParameterList)
	}
	var progress ParserProgress
	for !p.AtAny(TokenRParen, TokenEOF) {
		progress.AssertProgressing(p)
		param := p.parseFormalParameter()
		if param.IsAbsent() {
			if parameterRecovery.RecoverWithError(p, expectedParameter, TokenRParen).IsAbsent() {
				break
			}
			continue
		}
		if p.At(TokenRParen) {
			break
		}
		if param.Kind() == KindRestParameter {
			p.Error(p.ErrBuilder("rest parameters must be the last parameter").
				Primary(param.Unwrap().Range(p), ""))
		}
		if !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRParen)
	return m.Complete(p, KindParameterList)
}

var parameterModifiers = map[string]bool{
	"public": true, "private": true, "protected": true, "readonly": true, "override": true,
}

func (p *Parser) parseFormalParameter() ParsedSyntax {
	if p.At(TokenEllipsis) {
		m := p.Start()
		p.Bump(TokenEllipsis)
		p.parseBindingPattern().OrMissingWithError(p, expectedBinding)
		if p.At(TokenColon) {
			p.parseTsTypeAnnotation()
		} else {
			p.Missing()
		}
		if init := p.parseInitializerClause(); init.IsPresent() {
			cm := init.Unwrap()
			p.Error(p.ErrBuilder("rest parameters may not have default initializers").Primary(cm.Range(p), ""))
			cm.ChangeKind(p, KindError)
		}
		return Present(m.Complete(p, KindRestParameter))
	}

	m := p.Start()
	for p.At(TokenIdent) && parameterModifiers[p.CurText()] && p.nthIsIdentifier(1) {
		mod := p.Start()
		p.BumpAny()
		cm := mod.Complete(p, KindTsName)
		cm.ErrIfNotTS(p, "parameter modifiers can only be used in TypeScript files")
	}
	binding := p.parseBindingPattern()
	if binding.IsAbsent() && !p.At(TokenAssign) {
		m.Abandon(p)
		return Absent()
	}
	binding.OrMissingWithError(p, expectedBinding)
	if p.syntax.IsTypeScript() {
		p.Eat(TokenQuestion)
	}
	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}
	p.parseInitializerClause().OrMissing(p)
	cm := m.Complete(p, KindFormalParameter)
	if binding.IsInvalid() {
		return PresentInvalid(cm)
	}
	return Present(cm)
}

// parseArrowFunction parses an arrow function when the cursor is at one. A
// parenthesized parameter list is indistinguishable from a parenthesized
// expression until the `=>`, so that form is attempted speculatively.
func (p *Parser) parseArrowFunction() ParsedSyntax {
	switch {
	case p.isAtIdentifier() && p.NthAt(1, TokenArrow) && !p.tokens.Nth(1).NewlineBefore:
		return p.parseSimpleArrowFunction(false)
	case p.AtContextual("async") && p.nthIsIdentifier(1) && p.NthAt(2, TokenArrow) &&
		!p.tokens.Nth(1).NewlineBefore && !p.tokens.Nth(2).NewlineBefore:
		return p.parseSimpleArrowFunction(true)
	case p.At(TokenLParen), p.AtContextual("async") && p.NthAt(1, TokenLParen) && !p.tokens.Nth(1).NewlineBefore:
		pos := p.tokens.Position()
		if p.notArrow[pos] {
			return Absent()
		}
		res, ok := p.TryParse(speculateArrowFunction)
		if !ok {
			if p.notArrow == nil {
				p.notArrow = map[int]bool{}
			}
			p.notArrow[pos] = true
		}
		return res
	}
	return Absent()
}

func (p *Parser) parseSimpleArrowFunction(async bool) ParsedSyntax {
	m := p.Start()
	if async {
		p.BumpRemap(TokenAsync)
	}
	restore := p.enterFunction(async, false)
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	p.Bump(TokenArrow)
	p.parseArrowBody()
	restore()
	return Present(m.Complete(p, KindArrowFunction))
}

func speculateArrowFunction(p *Parser) Speculation {
	m := p.Start()
	async := p.AtContextual("async")
	if async {
		p.BumpRemap(TokenAsync)
	}
	restore := p.enterFunction(async, false)
	defer restore()

	p.parseParameterList()
	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}
	if !p.At(TokenArrow) || p.HasNewlineBefore() {
		return Speculation{}
	}
	p.Bump(TokenArrow)
	p.parseArrowBody()
	return Speculation{Syntax: Present(m.Complete(p, KindArrowFunction)), Certain: true}
}

func (p *Parser) parseArrowBody() {
	if p.At(TokenLBrace) {
		p.parseFunctionBody()
		return
	}
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
}

func (p *Parser) parseClassDeclaration() ParsedSyntax {
	return p.parseClass(KindClassDecl)
}

// parseClass parses a class declaration or expression. Class bodies are
// always strict.
func (p *Parser) parseClass(kind NodeKind) ParsedSyntax {
	m := p.Start()
	p.Bump(TokenClass)
	restoreStrict := p.enterStrict()
	defer restoreStrict()
	restore := p.WithState(func(s *ParserState) {
		s.DuplicateBindingParent = ""
		s.NameMap = map[string]TextRange{}
	})

	switch {
	case p.isAtIdentifier() && !p.AtContextual("implements"):
		p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	case kind == KindClassDecl && !p.State.InDefault:
		p.Error(expectedIdentifier(p, p.CurRange()))
		p.Missing()
	default:
		p.Missing()
	}
	restore()

	if p.At(TokenExtends) {
		e := p.Start()
		p.Bump(TokenExtends)
		p.parseLeftHandSideExpression().OrMissingWithError(p, expectedExpression)
		e.Complete(p, KindExtendsClause)
	} else {
		p.Missing()
	}

	if p.AtContextual("implements") {
		i := p.Start()
		p.BumpAny()
		p.parseTsTypeList()
		cm := i.Complete(p, KindTsImplementsClause)
		cm.ErrIfNotTS(p, "classes can only implement interfaces in TypeScript files")
	} else {
		p.Missing()
	}

	if p.At(TokenLBrace) {
		p.parseClassBody()
	} else {
		p.Error(ExpectedNode("class body", p.CurRange(), p))
		p.Missing()
	}
	return Present(m.Complete(p, kind))
}

var classMemberRecovery = ParseRecovery{
	Set:       NewTokenSet(TokenRBrace, TokenSemicolon),
	Kind:      KindError,
	LineBreak: true,
}

func expectedClassMember(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"property", "method", "getter", "setter"}, r, p)
}

func (p *Parser) parseClassBody() CompletedMarker {
	m := p.Start()
	p.Bump(TokenLBrace)
	list := p.Start()
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if p.Eat(TokenSemicolon) {
			continue
		}
		if p.parseClassMember().IsAbsent() {
			if classMemberRecovery.RecoverWithError(p, expectedClassMember, TokenRBrace).IsAbsent() {
				break
			}
		}
	}
	list.Complete(p, KindClassMemberList)
	p.Expect(TokenRBrace)
	return m.Complete(p, KindClassBody)
}

var classModifiers = map[string]bool{
	"static": true, "public": true, "private": true, "protected": true,
	"readonly": true, "abstract": true, "declare": true, "override": true,
}

// atClassModifier reports whether the current word modifies the member that
// follows instead of naming it.
func (p *Parser) atClassModifier() bool {
	if !p.At(TokenIdent) || !classModifiers[p.CurText()] {
		return false
	}
	next := p.tokens.Nth(1)
	if next.NewlineBefore {
		return false
	}
	switch next.Kind {
	case TokenLParen, TokenAssign, TokenSemicolon, TokenColon, TokenQuestion, TokenBang, TokenRBrace, TokenEOF:
		return false
	}
	return true
}

func (p *Parser) parseClassMember() ParsedSyntax {
	m := p.Start()
	modifiers := 0
	for p.atClassModifier() {
		word := p.CurText()
		mod := p.Start()
		p.BumpAny()
		cm := mod.Complete(p, KindTsName)
		if word != "static" {
			cm.ErrIfNotTS(p, "`"+word+"` modifiers can only be used in TypeScript files")
		}
		modifiers++
	}

	if p.atMethodStart() {
		async, generator := p.parseMethodModifiers()
		p.parseObjectMemberName().OrMissingWithError(p, expectedMemberName)
		p.parseMethodTail(async, generator, true)
		return Present(m.Complete(p, KindClassMethod))
	}

	if !p.isAtObjectMemberName() && !p.At(TokenPrivateName) {
		if modifiers == 0 {
			m.Abandon(p)
			return Absent()
		}
		p.Error(expectedMemberName(p, p.CurRange()))
		p.Missing()
		return PresentInvalid(m.Complete(p, KindClassProperty))
	}

	start := p.CurRange().Start
	p.parseObjectMemberName()
	if p.At(TokenLParen) || (p.At(TokenQuestion) && p.NthAt(1, TokenLParen)) {
		p.parseMethodTail(false, false, true)
		return Present(m.Complete(p, KindClassMethod))
	}

	if p.AtAny(TokenQuestion, TokenBang) {
		mark := p.Start()
		p.BumpAny()
		cm := mark.Complete(p, KindTsName)
		cm.ErrIfNotTS(p, "optional and definite properties can only be used in TypeScript files")
	}
	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}
	p.parseInitializerClause().OrMissing(p)
	p.semi(start)
	return Present(m.Complete(p, KindClassProperty))
}

// atMethodStart reports whether a member starts with a method modifier:
// `*`, `async`, `get` or `set` followed by the member name.
func (p *Parser) atMethodStart() bool {
	if p.At(TokenStar) {
		return true
	}
	async := p.AtContextual("async")
	if !async && !p.AtContextual("get") && !p.AtContextual("set") {
		return false
	}
	next := p.tokens.Nth(1)
	if async && next.NewlineBefore {
		return false
	}
	switch next.Kind {
	case TokenString, TokenNumber, TokenLBracket, TokenPrivateName, TokenIdent:
		return true
	case TokenStar:
		return async
	}
	return next.Kind.IsKeyword()
}

func (p *Parser) parseMethodModifiers() (async, generator bool) {
	switch {
	case p.AtContextual("async"):
		p.BumpRemap(TokenAsync)
		async = true
	case p.AtContextual("get"), p.AtContextual("set"):
		p.BumpAny()
	}
	generator = p.Eat(TokenStar)
	return async, generator
}

func (p *Parser) parseMethod(kind NodeKind) ParsedSyntax {
	m := p.Start()
	async, generator := p.parseMethodModifiers()
	p.parseObjectMemberName().OrMissingWithError(p, expectedMemberName)
	p.parseMethodTail(async, generator, false)
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseMethodTail(async, generator, bodyless bool) {
	if p.syntax.IsTypeScript() {
		p.Eat(TokenQuestion)
	}
	if !p.At(TokenLParen) {
		p.Error(ExpectedNode("`(`", p.CurRange(), p))
		p.Missing()
		return
	}
	p.parseFunctionRest(async, generator, bodyless)
}
