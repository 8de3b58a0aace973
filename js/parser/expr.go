package parser

// parseExpression parses a comma-separated sequence of assignment
// expressions.
func (p *Parser) parseExpression() ParsedSyntax {
	first := p.parseAssignmentExpression()
	cm, ok := first.Ok()
	if !ok || !p.At(TokenComma) {
		return first
	}
	m := cm.Precede(p)
	var progress ParserProgress
	for p.At(TokenComma) {
		progress.AssertProgressing(p)
		p.Bump(TokenComma)
		p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	}
	return Present(m.Complete(p, KindSequenceExpr))
}

func (p *Parser) parseAssignmentExpression() ParsedSyntax {
	if p.At(TokenYield) && p.State.InGenerator {
		return p.parseYieldExpression()
	}
	if arrow := p.parseArrowFunction(); arrow.IsPresent() {
		return arrow
	}

	target := p.parseConditionalExpression()
	cm, ok := target.Ok()
	if !ok || !p.Cur().IsAssignOp() {
		return target
	}
	if !isAssignmentTarget(cm.Kind(), p.At(TokenAssign)) {
		p.Error(p.ErrBuilder("Invalid assignment to `"+cm.Text(p)+"`").
			Primary(cm.Range(p), "This expression cannot be assigned to"))
		cm.ChangeKind(p, KindUnknownExpr)
	}
	m := cm.Precede(p)
	p.BumpAny()
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindAssignExpr))
}

func isAssignmentTarget(kind NodeKind, plain bool) bool {
	switch kind {
	case KindIdentifierExpr, KindMemberExpr, KindComputedMemberExpr, KindTsNonNullExpr:
		return true
	case KindArrayExpr, KindObjectExpr:
		return plain
	}
	return false
}

func (p *Parser) parseYieldExpression() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenYield)
	p.Eat(TokenStar)
	if !p.HasNewlineBefore() && !p.AtAny(TokenRParen, TokenRBracket, TokenRBrace, TokenComma, TokenSemicolon, TokenColon, TokenEOF) {
		p.parseAssignmentExpression().OrMissing(p)
	} else {
		p.Missing()
	}
	return Present(m.Complete(p, KindYieldExpr))
}

func (p *Parser) parseConditionalExpression() ParsedSyntax {
	test := p.parseBinaryExpression(0)
	cm, ok := test.Ok()
	if !ok || !p.At(TokenQuestion) {
		return test
	}
	m := cm.Precede(p)
	p.Bump(TokenQuestion)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	p.Expect(TokenColon)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindConditionalExpr))
}

func binaryPrecedence(kind TokenKind) int {
	switch kind {
	case TokenQuestionQuestion:
		return 1
	case TokenPipePipe:
		return 2
	case TokenAmpAmp:
		return 3
	case TokenPipe:
		return 4
	case TokenCaret:
		return 5
	case TokenAmp:
		return 6
	case TokenEQ, TokenNE, TokenStrictEQ, TokenStrictNE:
		return 7
	case TokenLT, TokenGT, TokenLE, TokenGE, TokenInstanceof, TokenIn:
		return 8
	case TokenShl, TokenShr, TokenUShr:
		return 9
	case TokenPlus, TokenMinus:
		return 10
	case TokenStar, TokenSlash, TokenPercent:
		return 11
	case TokenStarStar:
		return 12
	}
	return 0
}

const asPrecedence = 8

// parseBinaryExpression parses binary operators binding tighter than
// minPrec by precedence climbing. Each operator wraps the left operand that
// is already in the event buffer using Precede.
func (p *Parser) parseBinaryExpression(minPrec int) ParsedSyntax {
	left := p.parseUnaryExpression()
	lhs, ok := left.Ok()
	if !ok {
		return left
	}
	for {
		if p.syntax.IsTypeScript() && p.AtContextual("as") && !p.HasNewlineBefore() && asPrecedence > minPrec {
			m := lhs.Precede(p)
			p.BumpRemap(TokenAs)
			p.parseTsType().OrMissingWithError(p, expectedType)
			lhs = m.Complete(p, KindTsAsExpr)
			continue
		}

		op := p.Cur()
		prec := binaryPrecedence(op)
		if prec == 0 || prec <= minPrec {
			break
		}
		m := lhs.Precede(p)
		p.BumpAny()
		next := prec
		if op == TokenStarStar {
			next--
		}
		p.parseBinaryExpression(next).OrMissingWithError(p, expectedExpression)
		lhs = m.Complete(p, KindBinaryExpr)
	}
	return Present(lhs)
}

func (p *Parser) parseUnaryExpression() ParsedSyntax {
	switch p.Cur() {
	case TokenBang, TokenTilde, TokenPlus, TokenMinus, TokenTypeof, TokenVoid:
		m := p.Start()
		p.BumpAny()
		p.parseUnaryExpression().OrMissingWithError(p, expectedExpression)
		return Present(m.Complete(p, KindUnaryExpr))
	case TokenDelete:
		m := p.Start()
		p.Bump(TokenDelete)
		arg := p.parseUnaryExpression().OrMissingWithError(p, expectedExpression)
		cm := m.Complete(p, KindUnaryExpr)
		if target, ok := arg.Node(); ok && target.Kind() == KindIdentifierExpr && FeatureStrictMode.IsSupported(p) {
			p.Error(p.ErrBuilder("the target for a delete operator cannot be a single identifier").
				Primary(target.Range(p), ""))
			return PresentInvalid(cm)
		}
		return Present(cm)
	case TokenIncrement, TokenDecrement:
		m := p.Start()
		p.BumpAny()
		p.parseUpdateTarget(p.parseUnaryExpression())
		return Present(m.Complete(p, KindUnaryExpr))
	case TokenAwait:
		if p.State.InAsync || (p.syntax.IsModule() && !p.State.InFunction) {
			m := p.Start()
			p.Bump(TokenAwait)
			p.parseUnaryExpression().OrMissingWithError(p, expectedExpression)
			return Present(m.Complete(p, KindAwaitExpr))
		}
	}

	expr := p.parseLeftHandSideExpression()
	cm, ok := expr.Ok()
	if !ok || !p.AtAny(TokenIncrement, TokenDecrement) || p.HasNewlineBefore() {
		return expr
	}
	p.parseUpdateTarget(expr)
	m := cm.Precede(p)
	p.BumpAny()
	return Present(m.Complete(p, KindPostfixExpr))
}

func (p *Parser) parseUpdateTarget(target ParsedSyntax) {
	res := target.OrMissingWithError(p, expectedExpression)
	cm, ok := res.Node()
	if !ok || isAssignmentTarget(cm.Kind(), false) {
		return
	}
	p.Error(p.ErrBuilder("Invalid update target `"+cm.Text(p)+"`").Primary(cm.Range(p), ""))
	cm.ChangeKind(p, KindUnknownExpr)
}

func (p *Parser) parseLeftHandSideExpression() ParsedSyntax {
	var expr ParsedSyntax
	if p.At(TokenNew) {
		expr = p.parseNewExpression()
	} else {
		expr = p.parsePrimaryExpression()
	}
	cm, ok := expr.Ok()
	if !ok {
		return expr
	}
	return Present(p.parseMemberAndCallSuffixes(cm, true))
}

func (p *Parser) parseNewExpression() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenNew)
	if p.At(TokenDot) {
		p.Bump(TokenDot)
		p.parseIdentName(KindIdentifierExpr).OrMissingWithError(p, expectedIdentifier)
		return Present(m.Complete(p, KindMemberExpr))
	}

	var callee ParsedSyntax
	if p.At(TokenNew) {
		callee = p.parseNewExpression()
	} else {
		callee = p.parsePrimaryExpression()
	}
	if cm, ok := callee.Ok(); ok {
		p.parseMemberAndCallSuffixes(cm, false)
	} else {
		p.Error(expectedExpression(p, p.CurRange()))
		p.Missing()
	}
	if p.At(TokenLParen) {
		p.parseArguments()
	} else {
		p.Missing()
	}
	return Present(m.Complete(p, KindNewExpr))
}

// parseMemberAndCallSuffixes extends lhs with member accesses, calls, tagged
// templates and non-null assertions. Calls are left to the caller of a `new`
// callee.
func (p *Parser) parseMemberAndCallSuffixes(lhs CompletedMarker, calls bool) CompletedMarker {
	for {
		switch {
		case p.AtAny(TokenDot, TokenQuestionDot):
			optional := p.At(TokenQuestionDot)
			m := lhs.Precede(p)
			p.BumpAny()
			switch {
			case optional && p.At(TokenLParen):
				p.parseArguments()
				lhs = m.Complete(p, KindCallExpr)
			case optional && p.At(TokenLBracket):
				p.Bump(TokenLBracket)
				p.parseExpression().OrMissingWithError(p, expectedExpression)
				p.Expect(TokenRBracket)
				lhs = m.Complete(p, KindComputedMemberExpr)
			default:
				if p.At(TokenPrivateName) {
					p.Bump(TokenPrivateName)
				} else {
					p.parseIdentName(KindIdentifierExpr).OrMissingWithError(p, expectedIdentifier)
				}
				lhs = m.Complete(p, KindMemberExpr)
			}
		case p.At(TokenLBracket):
			m := lhs.Precede(p)
			p.Bump(TokenLBracket)
			p.parseExpression().OrMissingWithError(p, expectedExpression)
			p.Expect(TokenRBracket)
			lhs = m.Complete(p, KindComputedMemberExpr)
		case p.At(TokenLParen) && calls:
			m := lhs.Precede(p)
			p.parseArguments()
			lhs = m.Complete(p, KindCallExpr)
		case p.AtAny(TokenTemplate, TokenTemplateHead):
			m := lhs.Precede(p)
			p.parseTemplateParts()
			lhs = m.Complete(p, KindTemplateExpr)
		case p.At(TokenBang) && p.syntax.IsTypeScript() && !p.HasNewlineBefore():
			m := lhs.Precede(p)
			p.Bump(TokenBang)
			lhs = m.Complete(p, KindTsNonNullExpr)
		default:
			return lhs
		}
	}
}

var argumentRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRParen, TokenSemicolon, TokenRBrace),
	Kind: KindUnknownExpr,
}

func (p *Parser) parseArguments() CompletedMarker {
	m := p.Start()
	p.Bump(TokenLParen)
	var progress ParserProgress
	for !p.AtAny(TokenRParen, TokenEOF) {
		progress.AssertProgressing(p)
		arg := p.parseSpreadOrAssignment()
		if arg.IsAbsent() {
			if argumentRecovery.RecoverWithError(p, expectedExpression, TokenRParen).IsAbsent() {
				break
			}
			continue
		}
		if !p.At(TokenRParen) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRParen)
	return m.Complete(p, KindArgumentList)
}

func (p *Parser) parseSpreadOrAssignment() ParsedSyntax {
	if !p.At(TokenEllipsis) {
		return p.parseAssignmentExpression()
	}
	m := p.Start()
	p.Bump(TokenEllipsis)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindSpreadElement))
}

func (p *Parser) parsePrimaryExpression() ParsedSyntax {
	switch p.Cur() {
	case TokenThis, TokenSuper:
		m := p.Start()
		p.BumpAny()
		return Present(m.Complete(p, KindThisExpr))
	case TokenNumber, TokenString, TokenRegex, TokenTrue, TokenFalse, TokenNull:
		m := p.Start()
		p.BumpAny()
		return Present(m.Complete(p, KindLiteralExpr))
	case TokenTemplate, TokenTemplateHead:
		m := p.Start()
		p.Missing()
		p.parseTemplateParts()
		return Present(m.Complete(p, KindTemplateExpr))
	case TokenLParen:
		m := p.Start()
		p.Bump(TokenLParen)
		restore := p.WithState(func(s *ParserState) { s.AllowObjectExpr = true })
		p.parseExpression().OrMissingWithError(p, expectedExpression)
		restore()
		p.Expect(TokenRParen)
		return Present(m.Complete(p, KindParenExpr))
	case TokenLBracket:
		return p.parseArrayExpression()
	case TokenLBrace:
		return p.parseObjectExpression()
	case TokenFunction:
		return p.parseFunctionExpression()
	case TokenClass:
		return p.parseClass(KindClassExpr)
	case TokenImport:
		m := p.Start()
		p.Bump(TokenImport)
		return Present(m.Complete(p, KindIdentifierExpr))
	case TokenIdent, TokenYield, TokenAwait:
		if p.AtContextual("async") && p.NthAt(1, TokenFunction) && !p.tokens.Nth(1).NewlineBefore {
			return p.parseFunctionExpression()
		}
		return p.parseIdentifier(KindIdentifierExpr)
	}
	return Absent()
}

// parseTemplateParts consumes a template literal: either a single template
// token or a head, substitutions separated by middles, and a tail.
func (p *Parser) parseTemplateParts() {
	if p.Eat(TokenTemplate) {
		return
	}
	p.Bump(TokenTemplateHead)
	var progress ParserProgress
	for {
		progress.AssertProgressing(p)
		p.parseExpression().OrMissingWithError(p, expectedExpression)
		if p.Eat(TokenTemplateMiddle) {
			continue
		}
		if !p.Eat(TokenTemplateTail) {
			p.Error(ExpectedNode("template continuation", p.CurRange(), p))
		}
		return
	}
}

var arrayElementRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBracket, TokenSemicolon),
	Kind: KindUnknownExpr,
}

func (p *Parser) parseArrayExpression() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenLBracket)
	var progress ParserProgress
	for !p.AtAny(TokenRBracket, TokenEOF) {
		progress.AssertProgressing(p)
		if p.At(TokenComma) {
			hole := p.Start()
			hole.Complete(p, KindArrayHole)
			p.Bump(TokenComma)
			continue
		}
		if p.parseSpreadOrAssignment().IsAbsent() {
			if arrayElementRecovery.RecoverWithError(p, expectedExpression, TokenRBracket).IsAbsent() {
				break
			}
			continue
		}
		if !p.At(TokenRBracket) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBracket)
	return Present(m.Complete(p, KindArrayExpr))
}

var objectMemberRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBrace, TokenSemicolon),
	Kind: KindUnknownExpr,
}

func expectedObjectMember(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"property", "shorthand property", "method", "spread element"}, r, p)
}

func (p *Parser) parseObjectExpression() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenLBrace)
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if p.parseObjectMember().IsAbsent() {
			if objectMemberRecovery.RecoverWithError(p, expectedObjectMember, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}
		if !p.At(TokenRBrace) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBrace)
	return Present(m.Complete(p, KindObjectExpr))
}

func (p *Parser) parseObjectMember() ParsedSyntax {
	if p.At(TokenEllipsis) {
		return p.parseSpreadOrAssignment()
	}
	if p.isAtIdentifier() && (p.NthAt(1, TokenComma) || p.NthAt(1, TokenRBrace) || p.NthAt(1, TokenAssign)) {
		m := p.Start()
		p.parseIdentifier(KindIdentifierExpr)
		p.parseInitializerClause().OrMissing(p)
		return Present(m.Complete(p, KindShorthandPropertyMember))
	}
	if p.atMethodStart() {
		return p.parseMethod(KindMethodMember)
	}
	if !p.isAtObjectMemberName() {
		return Absent()
	}
	m := p.Start()
	p.parseObjectMemberName()
	if p.At(TokenLParen) {
		p.parseFunctionRest(false, false, false)
		return Present(m.Complete(p, KindMethodMember))
	}
	p.Expect(TokenColon)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindPropertyMember))
}

func (p *Parser) isAtObjectMemberName() bool {
	return p.isAtIdentName() || p.AtAny(TokenString, TokenNumber, TokenLBracket)
}

// parseObjectMemberName parses a literal or computed property name.
func (p *Parser) parseObjectMemberName() ParsedSyntax {
	if p.At(TokenLBracket) {
		m := p.Start()
		p.Bump(TokenLBracket)
		p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
		p.Expect(TokenRBracket)
		return Present(m.Complete(p, KindComputedPropertyName))
	}
	if !p.isAtIdentName() && !p.AtAny(TokenString, TokenNumber, TokenPrivateName) {
		return Absent()
	}
	m := p.Start()
	p.BumpAny()
	return Present(m.Complete(p, KindPropertyName))
}
