package parser

// TokenSet is a fixed-size bit set of token kinds.
type TokenSet [4]uint64

func NewTokenSet(kinds ...TokenKind) TokenSet {
	var s TokenSet
	for _, k := range kinds {
		s[k/64] |= 1 << (uint(k) % 64)
	}
	return s
}

func (s TokenSet) Contains(k TokenKind) bool {
	if k < 0 || int(k) >= len(s)*64 {
		return false
	}
	return s[k/64]&(1<<(uint(k)%64)) != 0
}

func (s TokenSet) Union(o TokenSet) TokenSet {
	for i := range s {
		s[i] |= o[i]
	}
	return s
}

func (p *Parser) AtSet(s TokenSet) bool {
	return s.Contains(p.Cur())
}

// ParseRecovery skips tokens after a rule came back absent, wrapping them in
// an unknown node so that they stay in the tree. Recovery stops at any token
// in Set, at EOF and, with LineBreak, before a token on a new line.
type ParseRecovery struct {
	Set       TokenSet
	Kind      NodeKind
	LineBreak bool
}

// Recover returns Absent when the cursor already sits at a recovery point;
// the caller must then consume something itself or give up the list.
func (r ParseRecovery) Recover(p *Parser) ParsedSyntax {
	if p.At(TokenEOF) || p.AtSet(r.Set) || (r.LineBreak && p.HasNewlineBefore()) {
		return Absent()
	}
	m := p.Start()
	for {
		p.BumpAny()
		if p.At(TokenEOF) || p.AtSet(r.Set) || (r.LineBreak && p.HasNewlineBefore()) {
			break
		}
	}
	return PresentInvalid(m.Complete(p, r.Kind))
}

// RecoverWithError reports expected at the cursor and then recovers. When no
// recovery is possible the current token is still consumed, inside an Error
// node, unless the list end or EOF was reached.
func (r ParseRecovery) RecoverWithError(p *Parser, expected ExpectedFunc, end TokenKind) ParsedSyntax {
	if p.At(TokenEOF) || p.At(end) {
		return Absent()
	}
	p.Error(expected(p, p.CurRange()))
	if res := r.Recover(p); res.IsPresent() {
		return res
	}
	m := p.Start()
	p.BumpAny()
	return PresentInvalid(m.Complete(p, KindError))
}

var (
	statementStart = NewTokenSet(
		TokenSemicolon, TokenLBrace, TokenVar, TokenConst, TokenFunction,
		TokenClass, TokenIf, TokenReturn, TokenThrow, TokenWhile, TokenDo,
		TokenFor, TokenBreak, TokenContinue, TokenDebugger, TokenImport,
		TokenExport, TokenTry, TokenSwitch, TokenWith, TokenEnum,
	)
	statementRecovery = NewTokenSet(TokenRBrace).Union(statementStart)
)

func expectedStatement(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("statement", r, p)
}

func expectedExpression(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("expression", r, p)
}

func expectedIdentifier(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("identifier", r, p)
}

func expectedBinding(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"identifier", "array pattern", "object pattern"}, r, p)
}

func expectedMemberName(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"identifier", "string literal", "number literal", "computed property"}, r, p)
}

func expectedType(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("type", r, p)
}

func expectedStringLiteral(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("string literal", r, p)
}
