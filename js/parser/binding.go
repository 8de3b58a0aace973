package parser

import "fmt"

// parseBindingPattern parses an identifier, array or object binding.
func (p *Parser) parseBindingPattern() ParsedSyntax {
	switch p.Cur() {
	case TokenLBracket:
		return p.parseArrayBindingPattern()
	case TokenLBrace:
		if p.State.AllowObjectExpr {
			return p.parseObjectBindingPattern()
		}
	case TokenIdent, TokenYield, TokenAwait:
		return p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	}
	return Absent()
}

// parseBindingWithDefault parses a binding pattern followed by an optional
// `= default`.
func (p *Parser) parseBindingWithDefault() ParsedSyntax {
	pattern := p.parseBindingPattern()
	if !p.At(TokenAssign) {
		return pattern
	}
	var m Marker
	if cm, ok := pattern.Ok(); ok {
		m = cm.Precede(p)
	} else {
		m = p.Start()
		p.Error(expectedBinding(p, p.CurRange()))
		p.Missing()
	}
	p.Bump(TokenAssign)
	p.parseAssignmentExpression().OrMissingWithError(p, expectedExpression)
	return Present(m.Complete(p, KindBindingWithDefault))
}

// parseIdentifier parses an identifier reference or binding. `yield` and
// `await` are only identifiers outside generators and async code.
func (p *Parser) parseIdentifier(kind NodeKind) ParsedSyntax {
	if !p.isAtIdentifier() {
		return Absent()
	}
	name := p.CurText()
	m := p.Start()
	p.BumpAny()
	cm := m.Complete(p, kind)

	switch {
	case name == "yield" && (p.State.InGenerator || FeatureStrictMode.IsSupported(p)):
		p.Error(p.ErrBuilder("Illegal use of `yield` as an identifier in generator function or in strict mode").
			Primary(cm.Range(p), ""))
		return PresentInvalid(cm)
	case name == "await" && (p.State.InAsync || p.syntax.IsModule()):
		p.Error(p.ErrBuilder("Illegal use of `await` as an identifier in an async context").
			Primary(cm.Range(p), ""))
		return PresentInvalid(cm)
	}
	return Present(cm)
}

// parseIdentifierBinding parses a binding name and checks it against the
// restrictions of the current context:
//   - `eval` and `arguments` cannot be bound in strict mode
//   - `let` cannot be bound by a `let` or `const` declaration
//   - a `let` or `const` declaration cannot bind the same name twice
func (p *Parser) parseIdentifierBinding() ParsedSyntax {
	parsed := p.parseIdentifier(KindIdentifierBinding)
	if !parsed.IsValid() {
		return parsed
	}
	ident := parsed.Unwrap()
	name := ident.Text(p)

	if FeatureStrictMode.IsSupported(p) && (name == "eval" || name == "arguments") {
		p.Error(p.ErrBuilder(fmt.Sprintf("Illegal use of `%s` as an identifier in strict mode", name)).
			Primary(ident.Range(p), ""))
		return parsed.IntoInvalid()
	}

	parent := p.State.DuplicateBindingParent
	if parent == "" {
		return parsed
	}
	if name == "let" {
		p.Error(p.ErrBuilder(fmt.Sprintf("`let` cannot be declared as a variable name inside of a `%s` declaration", parent)).
			Primary(ident.Range(p), "Rename the let identifier here"))
		return parsed.IntoInvalid()
	}
	if first, ok := p.State.NameMap[name]; ok {
		p.Error(p.ErrBuilder(fmt.Sprintf("Declarations inside of a `%s` declaration may not have duplicates", parent)).
			Secondary(first, fmt.Sprintf("`%s` is first declared here", name)).
			Primary(ident.Range(p), fmt.Sprintf("a second declaration of `%s` is not allowed", name)))
		return parsed.IntoInvalid()
	}
	p.State.NameMap[name] = ident.Range(p)
	return parsed
}

var arrayBindingRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBracket, TokenSemicolon, TokenAssign),
	Kind: KindUnknownBinding,
}

func expectedArrayBindingElement(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"identifier", "object pattern", "array pattern", "rest pattern"}, r, p)
}

func (p *Parser) parseArrayBindingPattern() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenLBracket)
	list := p.Start()
	var progress ParserProgress
	for !p.AtAny(TokenRBracket, TokenEOF) {
		progress.AssertProgressing(p)
		if p.At(TokenComma) {
			hole := p.Start()
			hole.Complete(p, KindArrayBindingHole)
			p.Bump(TokenComma)
			continue
		}

		var element ParsedSyntax
		if p.At(TokenEllipsis) {
			element = p.parseArrayBindingRest()
		} else {
			element = p.parseBindingWithDefault()
		}
		if element.IsAbsent() {
			if arrayBindingRecovery.RecoverWithError(p, expectedArrayBindingElement, TokenRBracket).IsAbsent() {
				break
			}
			continue
		}

		if p.At(TokenRBracket) {
			break
		}
		if element.Kind() == KindArrayBindingRest {
			p.Error(p.ErrBuilder("rest elements may not have trailing commas").
				Primary(p.CurRange(), "").
				Secondary(element.Unwrap().Range(p), "the rest element is here"))
		}
		if !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	list.Complete(p, KindArrayBindingElementList)
	p.Expect(TokenRBracket)
	return Present(m.Complete(p, KindArrayBindingPattern))
}

func (p *Parser) parseArrayBindingRest() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenEllipsis)
	p.parseBindingPattern().OrMissingWithError(p, expectedBinding)
	if init := p.parseInitializerClause(); init.IsPresent() {
		cm := init.Unwrap()
		p.Error(p.ErrBuilder("rest elements may not have default initializers").Primary(cm.Range(p), ""))
		cm.ChangeKind(p, KindError)
	}
	return Present(m.Complete(p, KindArrayBindingRest))
}

var objectBindingRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBrace, TokenSemicolon),
	Kind: KindUnknownBinding,
}

func expectedPropertyPattern(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"identifier", "member name", "rest pattern"}, r, p)
}

func (p *Parser) parseObjectBindingPattern() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenLBrace)
	list := p.Start()
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)

		var property ParsedSyntax
		if p.At(TokenEllipsis) {
			property = p.parseObjectBindingRest()
		} else {
			property = p.parseObjectBindingProperty()
		}
		if property.IsAbsent() {
			if objectBindingRecovery.RecoverWithError(p, expectedPropertyPattern, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}

		if p.At(TokenRBrace) {
			break
		}
		if property.Kind() == KindObjectBindingRest {
			p.Error(p.ErrBuilder("rest properties must be the last property of an object pattern").
				Primary(property.Unwrap().Range(p), ""))
		}
		if !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	list.Complete(p, KindObjectBindingPropertyList)
	p.Expect(TokenRBrace)
	return Present(m.Complete(p, KindObjectBindingPattern))
}

func (p *Parser) parseObjectBindingProperty() ParsedSyntax {
	if !p.isAtObjectMemberName() && !p.AtAny(TokenColon, TokenAssign) {
		return Absent()
	}
	m := p.Start()

	kind := KindObjectBindingProperty
	if p.At(TokenAssign) || (p.isAtIdentifier() && !p.NthAt(1, TokenColon)) {
		kind = KindObjectBindingShorthandProperty
		p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding).
			OrMissingWithError(p, expectedIdentifier)
	} else {
		p.parseObjectMemberName().OrMissingWithError(p, expectedMemberName)
		if p.Expect(TokenColon) {
			p.parseBindingPattern().OrMissingWithError(p, expectedBinding)
		} else {
			p.Missing()
		}
	}
	p.parseInitializerClause().OrMissing(p)
	return Present(m.Complete(p, kind))
}

func (p *Parser) parseObjectBindingRest() ParsedSyntax {
	m := p.Start()
	p.Bump(TokenEllipsis)
	inner := p.parseBindingPattern().OrMissingWithError(p, expectedIdentifier)
	if cm, ok := inner.Node(); ok && cm.Kind() != KindIdentifierBinding {
		if cm.Kind() != KindUnknownBinding {
			p.Error(p.ErrBuilder("Expected identifier binding").
				Primary(cm.Range(p), "Object rest patterns must bind to an identifier, other patterns are not allowed."))
		}
		cm.ChangeKind(p, KindUnknownBinding)
	}
	return Present(m.Complete(p, KindObjectBindingRest))
}
