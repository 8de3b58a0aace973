package parser

// atTsDeclarationStart reports whether the n-th token starts with a word that
// may introduce a TypeScript declaration. The words are also valid
// identifiers, so the declaration is only attempted, never assumed.
func (p *Parser) atTsDeclarationStart(n int) bool {
	if !p.NthAt(n, TokenIdent) {
		return false
	}
	next := p.tokens.Nth(n + 1)
	if next.NewlineBefore {
		return false
	}
	switch p.NthText(n) {
	case "declare":
		switch next.Kind {
		case TokenIdent, TokenVar, TokenConst, TokenFunction, TokenClass, TokenEnum:
			return true
		}
	case "type", "interface", "namespace":
		return p.nthIsIdentifier(n + 1)
	case "module":
		return p.nthIsIdentifier(n+1) || next.Kind == TokenString
	case "abstract":
		return next.Kind == TokenClass
	case "global":
		return next.Kind == TokenLBrace
	}
	return false
}

// speculateTsStatement attempts a TypeScript declaration. The attempt fails
// when the words after the keyword do not have the shape of a declaration;
// once they do, the declaration is kept even with errors inside.
func speculateTsStatement(p *Parser) Speculation {
	var res ParsedSyntax
	if p.AtContextual("declare") {
		res = p.parseTsDeclare()
	} else {
		res = p.parseTsDeclaration()
	}
	return Speculation{Syntax: res, Certain: res.IsPresent()}
}

// parseTsDeclare parses `declare` followed by a declaration in an ambient
// context, where bodies and initializers are not allowed to be present.
func (p *Parser) parseTsDeclare() ParsedSyntax {
	m := p.Start()
	p.BumpRemap(TokenDeclare)
	restore := p.EnterAmbient()

	var decl ParsedSyntax
	switch {
	case p.AtContextual("declare"):
	case p.atTsDeclarationStart(0):
		decl = p.parseTsDeclaration()
	case p.At(TokenFunction), p.AtContextual("async") && p.NthAt(1, TokenFunction):
		decl = p.parseFunctionDeclaration()
	case p.At(TokenClass):
		decl = p.parseClassDeclaration()
	case p.At(TokenConst) && p.NthAt(1, TokenEnum), p.At(TokenEnum):
		decl = p.parseTsEnum()
	case p.AtAny(TokenVar, TokenConst), p.AtContextual("let") && followsLet.Contains(p.Nth(1)):
		decl = p.parseVariableStatement()
	}
	restore()

	if decl.IsAbsent() {
		m.Abandon(p)
		return Absent()
	}
	cm := m.Complete(p, KindTsDeclareStmt)
	if decl.IsInvalid() {
		return PresentInvalid(cm)
	}
	return Present(cm)
}

func (p *Parser) parseTsDeclaration() ParsedSyntax {
	switch p.CurText() {
	case "type":
		return p.parseTsTypeAlias()
	case "interface":
		return p.parseTsInterface()
	case "namespace", "module", "global":
		return p.parseTsModule()
	case "abstract":
		if p.NthAt(1, TokenClass) {
			return Present(p.parseAbstractClass())
		}
	}
	return Absent()
}

// parseAbstractClass parses `abstract class`. The class rule completes its
// own node, which is reopened so that the modifier ends up inside it.
func (p *Parser) parseAbstractClass() CompletedMarker {
	m := p.Start()
	p.BumpRemap(TokenAbstract)
	class := p.parseClass(KindClassDecl).Unwrap()
	class.UndoCompletion(p).Abandon(p)
	return m.Complete(p, KindClassDecl)
}

func (p *Parser) parseTsTypeAlias() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	p.BumpRemap(TokenType)
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	if !p.At(TokenAssign) {
		m.Abandon(p)
		return Absent()
	}
	p.Bump(TokenAssign)
	p.parseTsType().OrMissingWithError(p, expectedType)
	p.semi(start)
	return Present(m.Complete(p, KindTsTypeAlias))
}

func (p *Parser) parseTsInterface() ParsedSyntax {
	if !p.AtContextual("interface") {
		return Absent()
	}
	m := p.Start()
	p.BumpRemap(TokenInterface)
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	if p.At(TokenExtends) {
		e := p.Start()
		p.Bump(TokenExtends)
		p.parseTsTypeList()
		e.Complete(p, KindExtendsClause)
	} else {
		p.Missing()
	}
	if p.At(TokenLBrace) {
		p.parseTsTypeMembers(KindTsInterfaceBody)
	} else {
		p.Error(ExpectedNode("interface body", p.CurRange(), p))
		p.Missing()
	}
	return Present(m.Complete(p, KindTsInterfaceDecl))
}

// parseTsModule parses `namespace A.B {}`, `module "name" {}` and
// `global {}`. Without a body the declaration is only allowed in an
// ambient context.
func (p *Parser) parseTsModule() ParsedSyntax {
	start := p.CurRange().Start
	m := p.Start()
	switch p.CurText() {
	case "global":
		p.BumpRemap(TokenGlobal)
		p.Missing()
	case "module":
		p.BumpRemap(TokenModule)
		if p.At(TokenString) {
			p.parseModuleSource()
		} else {
			p.parseTsEntityName().OrMissingWithError(p, expectedIdentifier)
		}
	default:
		p.BumpRemap(TokenNamespace)
		p.parseTsEntityName().OrMissingWithError(p, expectedIdentifier)
	}

	switch {
	case p.At(TokenLBrace):
		b := p.Start()
		p.Bump(TokenLBrace)
		p.parseStatementList(KindStatementList, TokenRBrace, true)
		p.Expect(TokenRBrace)
		b.Complete(p, KindTsModuleBlock)
	case p.State.InAmbient():
		p.Missing()
		p.semi(start)
	default:
		m.Abandon(p)
		return Absent()
	}
	return Present(m.Complete(p, KindTsModuleDecl))
}

func (p *Parser) parseTsEnumChecked() ParsedSyntax {
	res := p.parseTsEnum()
	cm := res.Unwrap()
	cm.ErrIfNotTS(p, "enums can only be used in TypeScript files")
	return Present(cm)
}

var enumMemberRecovery = ParseRecovery{
	Set:  NewTokenSet(TokenComma, TokenRBrace, TokenSemicolon),
	Kind: KindError,
}

func expectedEnumMember(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedNode("enum member", r, p)
}

func (p *Parser) parseTsEnum() ParsedSyntax {
	m := p.Start()
	p.Eat(TokenConst)
	p.Bump(TokenEnum)
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	if !p.Expect(TokenLBrace) {
		return Present(m.Complete(p, KindTsEnumDecl))
	}
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if !p.isAtIdentName() && !p.At(TokenString) {
			if enumMemberRecovery.RecoverWithError(p, expectedEnumMember, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}
		member := p.Start()
		p.BumpAny()
		p.parseInitializerClause().OrMissing(p)
		member.Complete(p, KindTsEnumMember)
		if !p.At(TokenRBrace) && !p.Eat(TokenComma) {
			p.Error(ExpectedNode("`,`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBrace)
	return Present(m.Complete(p, KindTsEnumDecl))
}

func (p *Parser) parseTsImportEqualsDecl(m Marker, start int) CompletedMarker {
	p.parseIdentifierBinding().OrInvalidToUnknown(p, KindUnknownBinding)
	p.Expect(TokenAssign)
	if p.AtContextual("require") && p.NthAt(1, TokenLParen) {
		ref := p.Start()
		p.BumpRemap(TokenRequire)
		p.Expect(TokenLParen)
		p.parseModuleSource()
		p.Expect(TokenRParen)
		ref.Complete(p, KindTsExternalModuleRef)
	} else {
		p.parseTsEntityName().OrMissingWithError(p, expectedIdentifier)
	}
	p.semi(start)
	return m.Complete(p, KindTsImportEqualsDecl)
}

// parseTsTypeAnnotation parses `: Type`.
func (p *Parser) parseTsTypeAnnotation() CompletedMarker {
	m := p.Start()
	p.Bump(TokenColon)
	p.parseTsType().OrMissingWithError(p, expectedType)
	cm := m.Complete(p, KindTsTypeAnnotation)
	cm.ErrIfNotTS(p, "type annotations can only be used in TypeScript files")
	return cm
}

var typeMemberRecovery = ParseRecovery{
	Set:       NewTokenSet(TokenRBrace, TokenSemicolon, TokenComma),
	Kind:      KindError,
	LineBreak: true,
}

func expectedTypeMember(p *Parser, r TextRange) DiagnosticBuilder {
	return ExpectedAny([]string{"property signature", "method signature"}, r, p)
}

// parseTsTypeMembers parses the braces of an interface body or object type.
func (p *Parser) parseTsTypeMembers(kind NodeKind) CompletedMarker {
	m := p.Start()
	p.Bump(TokenLBrace)
	var progress ParserProgress
	for !p.AtAny(TokenRBrace, TokenEOF) {
		progress.AssertProgressing(p)
		if p.parseTsTypeMember().IsAbsent() {
			if typeMemberRecovery.RecoverWithError(p, expectedTypeMember, TokenRBrace).IsAbsent() {
				break
			}
			continue
		}
		if !p.Eat(TokenSemicolon) && !p.Eat(TokenComma) && !p.At(TokenRBrace) && !p.HasNewlineBefore() {
			p.Error(ExpectedNode("`;`", p.CurRange(), p))
		}
	}
	p.Expect(TokenRBrace)
	return m.Complete(p, kind)
}

func (p *Parser) parseTsTypeMember() ParsedSyntax {
	m := p.Start()
	if p.AtContextual("readonly") && p.nthIsIdentName(1) {
		p.BumpAny()
	}
	if !p.isAtObjectMemberName() {
		m.Abandon(p)
		return Absent()
	}
	p.parseObjectMemberName()
	p.Eat(TokenQuestion)
	kind := KindTsPropertySignature
	if p.At(TokenLParen) {
		kind = KindTsMethodSignature
		p.parseParameterList()
	}
	if p.At(TokenColon) {
		p.parseTsTypeAnnotation()
	} else {
		p.Missing()
	}
	return Present(m.Complete(p, kind))
}

// parseTsType parses a union of postfix types, with an optional leading `|`.
func (p *Parser) parseTsType() ParsedSyntax {
	var m Marker
	leading := p.At(TokenPipe)
	if leading {
		m = p.Start()
		p.Bump(TokenPipe)
	}
	first := p.parseTsPostfixType()
	if !leading {
		cm, ok := first.Ok()
		if !ok || !p.At(TokenPipe) {
			return first
		}
		m = cm.Precede(p)
	} else {
		first.OrMissingWithError(p, expectedType)
	}
	var progress ParserProgress
	for p.At(TokenPipe) {
		progress.AssertProgressing(p)
		p.Bump(TokenPipe)
		p.parseTsPostfixType().OrMissingWithError(p, expectedType)
	}
	return Present(m.Complete(p, KindTsUnionType))
}

func (p *Parser) parseTsPostfixType() ParsedSyntax {
	ty := p.parseTsPrimaryType()
	cm, ok := ty.Ok()
	if !ok {
		return ty
	}
	for p.At(TokenLBracket) && p.NthAt(1, TokenRBracket) && !p.HasNewlineBefore() {
		m := cm.Precede(p)
		p.Bump(TokenLBracket)
		p.Bump(TokenRBracket)
		cm = m.Complete(p, KindTsArrayType)
	}
	return Present(cm)
}

func (p *Parser) parseTsPrimaryType() ParsedSyntax {
	switch p.Cur() {
	case TokenLBrace:
		return Present(p.parseTsTypeMembers(KindTsObjectType))
	case TokenLParen:
		if res, ok := p.TryParse(speculateTsFunctionType); ok {
			return res
		}
		m := p.Start()
		p.Bump(TokenLParen)
		p.parseTsType().OrMissingWithError(p, expectedType)
		p.Expect(TokenRParen)
		return Present(m.Complete(p, KindTsParenType))
	case TokenString, TokenNumber, TokenTrue, TokenFalse, TokenNull, TokenTemplate:
		m := p.Start()
		p.BumpAny()
		return Present(m.Complete(p, KindTsLiteralType))
	case TokenMinus:
		if p.NthAt(1, TokenNumber) {
			m := p.Start()
			p.Bump(TokenMinus)
			p.Bump(TokenNumber)
			return Present(m.Complete(p, KindTsLiteralType))
		}
	case TokenVoid, TokenThis:
		m := p.Start()
		p.BumpAny()
		return Present(m.Complete(p, KindTsReferenceType))
	}
	if p.isAtIdentName() {
		return p.parseTsReferenceType()
	}
	return Absent()
}

func speculateTsFunctionType(p *Parser) Speculation {
	m := p.Start()
	p.parseParameterList()
	if !p.At(TokenArrow) {
		return Speculation{}
	}
	p.Bump(TokenArrow)
	p.parseTsType().OrMissingWithError(p, expectedType)
	return Speculation{Syntax: Present(m.Complete(p, KindTsFunctionType)), Certain: true}
}

func (p *Parser) parseTsReferenceType() ParsedSyntax {
	m := p.Start()
	if p.parseTsEntityName().IsAbsent() {
		m.Abandon(p)
		return Absent()
	}
	if p.At(TokenLT) && !p.HasNewlineBefore() {
		p.parseTsTypeArguments()
	} else {
		p.Missing()
	}
	return Present(m.Complete(p, KindTsReferenceType))
}

// parseTsEntityName parses a possibly qualified name such as `A.B.C`.
func (p *Parser) parseTsEntityName() ParsedSyntax {
	name := p.parseIdentName(KindTsName)
	left, ok := name.Ok()
	if !ok {
		return name
	}
	for p.At(TokenDot) {
		m := left.Precede(p)
		p.Bump(TokenDot)
		p.parseIdentName(KindTsName).OrMissingWithError(p, expectedIdentifier)
		left = m.Complete(p, KindTsQualifiedName)
	}
	return Present(left)
}

// TODO: split `>>` and `>>>` tokens so that nested type arguments such as
// `Array<Array<T>>` close without an error.
func (p *Parser) parseTsTypeArguments() CompletedMarker {
	m := p.Start()
	p.Bump(TokenLT)
	var progress ParserProgress
	for !p.AtAny(TokenGT, TokenEOF) {
		progress.AssertProgressing(p)
		if p.parseTsType().IsAbsent() {
			p.Error(expectedType(p, p.CurRange()))
			break
		}
		if !p.At(TokenGT) && !p.Eat(TokenComma) {
			break
		}
	}
	p.Expect(TokenGT)
	return m.Complete(p, KindTsTypeArguments)
}

// parseTsTypeList parses the comma-separated references after `extends` or
// `implements`.
func (p *Parser) parseTsTypeList() {
	var progress ParserProgress
	for {
		progress.AssertProgressing(p)
		p.parseTsReferenceType().OrMissingWithError(p, expectedType)
		if !p.Eat(TokenComma) {
			return
		}
	}
}
