package parser

import "strings"

type NodeKind int

// kindPending marks a Start event whose kind is decided at completion.
const kindPending NodeKind = -1

const (
	KindError NodeKind = iota

	// Leaves
	KindToken
	KindMissing

	// Program level
	KindScript
	KindModule
	KindDirective
	KindDirectiveList
	KindStatementList
	KindModuleItemList
	KindExpressionRoot

	// Statements
	KindEmptyStmt
	KindBlockStmt
	KindExprStmt
	KindIfStmt
	KindElseClause
	KindReturnStmt
	KindVariableStmt
	KindVariableDecl
	KindVariableDeclaratorList
	KindVariableDeclarator
	KindInitializer
	KindFunctionDecl
	KindParameterList
	KindFunctionBody
	KindClassDecl
	KindClassBody
	KindExtendsClause
	KindClassMemberList
	KindClassMethod
	KindClassProperty
	KindFormalParameter
	KindRestParameter
	KindThrowStmt
	KindWhileStmt
	KindBreakStmt
	KindContinueStmt
	KindDebuggerStmt
	KindUnknownStmt

	// Modules
	KindImportDecl
	KindImportClause
	KindNamedImports
	KindImportSpecifier
	KindNamespaceImport
	KindExportDecl
	KindExportNamed
	KindExportSpecifierList
	KindExportSpecifier
	KindExportWildcard
	KindExportDefaultDecl
	KindExportDefaultExpr
	KindFromClause

	// Bindings
	KindIdentifierBinding
	KindBindingWithDefault
	KindArrayBindingPattern
	KindArrayBindingElementList
	KindArrayBindingHole
	KindArrayBindingRest
	KindObjectBindingPattern
	KindObjectBindingPropertyList
	KindObjectBindingProperty
	KindObjectBindingShorthandProperty
	KindObjectBindingRest
	KindUnknownBinding

	// Expressions
	KindIdentifierExpr
	KindThisExpr
	KindLiteralExpr
	KindTemplateExpr
	KindArrayExpr
	KindArrayHole
	KindSpreadElement
	KindObjectExpr
	KindPropertyMember
	KindShorthandPropertyMember
	KindMethodMember
	KindPropertyName
	KindComputedPropertyName
	KindParenExpr
	KindArrowFunction
	KindCallExpr
	KindArgumentList
	KindMemberExpr
	KindComputedMemberExpr
	KindNewExpr
	KindUnaryExpr
	KindPostfixExpr
	KindBinaryExpr
	KindAssignExpr
	KindConditionalExpr
	KindFunctionExpr
	KindSequenceExpr
	KindAwaitExpr
	KindYieldExpr
	KindClassExpr
	KindUnknownExpr

	// TypeScript
	KindTsDeclareStmt
	KindTsTypeAlias
	KindTsInterfaceDecl
	KindTsInterfaceBody
	KindTsPropertySignature
	KindTsEnumDecl
	KindTsEnumMember
	KindTsModuleDecl
	KindTsModuleBlock
	KindTsTypeAnnotation
	KindTsReferenceType
	KindTsQualifiedName
	KindTsLiteralType
	KindTsArrayType
	KindTsUnionType
	KindTsObjectType
	KindTsImportEqualsDecl
	KindTsExternalModuleRef
	KindTsExportAssignment
	KindTsNamespaceExportDecl
	KindTsDeclareFunction
	KindTsAsExpr
	KindTsNonNullExpr
	KindTsParenType
	KindTsFunctionType
	KindTsTypeArguments
	KindTsMethodSignature
	KindTsName
	KindTsImplementsClause
)

var nodeKindNames = map[NodeKind]string{
	KindError:                          "Error",
	KindToken:                          "Token",
	KindMissing:                        "Missing",
	KindScript:                         "Script",
	KindModule:                         "Module",
	KindDirective:                      "Directive",
	KindDirectiveList:                  "DirectiveList",
	KindStatementList:                  "StatementList",
	KindModuleItemList:                 "ModuleItemList",
	KindExpressionRoot:                 "ExpressionRoot",
	KindEmptyStmt:                      "EmptyStmt",
	KindBlockStmt:                      "BlockStmt",
	KindExprStmt:                       "ExprStmt",
	KindIfStmt:                         "IfStmt",
	KindElseClause:                     "ElseClause",
	KindReturnStmt:                     "ReturnStmt",
	KindVariableStmt:                   "VariableStmt",
	KindVariableDecl:                   "VariableDecl",
	KindVariableDeclaratorList:         "VariableDeclaratorList",
	KindVariableDeclarator:             "VariableDeclarator",
	KindInitializer:                    "Initializer",
	KindFunctionDecl:                   "FunctionDecl",
	KindParameterList:                  "ParameterList",
	KindFunctionBody:                   "FunctionBody",
	KindClassDecl:                      "ClassDecl",
	KindClassBody:                      "ClassBody",
	KindExtendsClause:                  "ExtendsClause",
	KindClassMemberList:                "ClassMemberList",
	KindClassMethod:                    "ClassMethod",
	KindClassProperty:                  "ClassProperty",
	KindFormalParameter:                "FormalParameter",
	KindRestParameter:                  "RestParameter",
	KindThrowStmt:                      "ThrowStmt",
	KindWhileStmt:                      "WhileStmt",
	KindBreakStmt:                      "BreakStmt",
	KindContinueStmt:                   "ContinueStmt",
	KindDebuggerStmt:                   "DebuggerStmt",
	KindUnknownStmt:                    "UnknownStmt",
	KindImportDecl:                     "ImportDecl",
	KindImportClause:                   "ImportClause",
	KindNamedImports:                   "NamedImports",
	KindImportSpecifier:                "ImportSpecifier",
	KindNamespaceImport:                "NamespaceImport",
	KindExportDecl:                     "ExportDecl",
	KindExportNamed:                    "ExportNamed",
	KindExportSpecifierList:            "ExportSpecifierList",
	KindExportSpecifier:                "ExportSpecifier",
	KindExportWildcard:                 "ExportWildcard",
	KindExportDefaultDecl:              "ExportDefaultDecl",
	KindExportDefaultExpr:              "ExportDefaultExpr",
	KindFromClause:                     "FromClause",
	KindIdentifierBinding:              "IdentifierBinding",
	KindBindingWithDefault:             "BindingWithDefault",
	KindArrayBindingPattern:            "ArrayBindingPattern",
	KindArrayBindingElementList:        "ArrayBindingElementList",
	KindArrayBindingHole:               "ArrayBindingHole",
	KindArrayBindingRest:               "ArrayBindingRest",
	KindObjectBindingPattern:           "ObjectBindingPattern",
	KindObjectBindingPropertyList:      "ObjectBindingPropertyList",
	KindObjectBindingProperty:          "ObjectBindingProperty",
	KindObjectBindingShorthandProperty: "ObjectBindingShorthandProperty",
	KindObjectBindingRest:              "ObjectBindingRest",
	KindUnknownBinding:                 "UnknownBinding",
	KindIdentifierExpr:                 "IdentifierExpr",
	KindThisExpr:                       "ThisExpr",
	KindLiteralExpr:                    "LiteralExpr",
	KindTemplateExpr:                   "TemplateExpr",
	KindArrayExpr:                      "ArrayExpr",
	KindArrayHole:                      "ArrayHole",
	KindSpreadElement:                  "SpreadElement",
	KindObjectExpr:                     "ObjectExpr",
	KindPropertyMember:                 "PropertyMember",
	KindShorthandPropertyMember:        "ShorthandPropertyMember",
	KindMethodMember:                   "MethodMember",
	KindPropertyName:                   "PropertyName",
	KindComputedPropertyName:           "ComputedPropertyName",
	KindParenExpr:                      "ParenExpr",
	KindArrowFunction:                  "ArrowFunction",
	KindCallExpr:                       "CallExpr",
	KindArgumentList:                   "ArgumentList",
	KindMemberExpr:                     "MemberExpr",
	KindComputedMemberExpr:             "ComputedMemberExpr",
	KindNewExpr:                        "NewExpr",
	KindUnaryExpr:                      "UnaryExpr",
	KindPostfixExpr:                    "PostfixExpr",
	KindBinaryExpr:                     "BinaryExpr",
	KindAssignExpr:                     "AssignExpr",
	KindConditionalExpr:                "ConditionalExpr",
	KindFunctionExpr:                   "FunctionExpr",
	KindSequenceExpr:                   "SequenceExpr",
	KindAwaitExpr:                      "AwaitExpr",
	KindYieldExpr:                      "YieldExpr",
	KindClassExpr:                      "ClassExpr",
	KindUnknownExpr:                    "UnknownExpr",
	KindTsDeclareStmt:                  "TsDeclareStmt",
	KindTsTypeAlias:                    "TsTypeAlias",
	KindTsInterfaceDecl:                "TsInterfaceDecl",
	KindTsInterfaceBody:                "TsInterfaceBody",
	KindTsPropertySignature:            "TsPropertySignature",
	KindTsEnumDecl:                     "TsEnumDecl",
	KindTsEnumMember:                   "TsEnumMember",
	KindTsModuleDecl:                   "TsModuleDecl",
	KindTsModuleBlock:                  "TsModuleBlock",
	KindTsTypeAnnotation:               "TsTypeAnnotation",
	KindTsReferenceType:                "TsReferenceType",
	KindTsQualifiedName:                "TsQualifiedName",
	KindTsLiteralType:                  "TsLiteralType",
	KindTsArrayType:                    "TsArrayType",
	KindTsUnionType:                    "TsUnionType",
	KindTsObjectType:                   "TsObjectType",
	KindTsImportEqualsDecl:             "TsImportEqualsDecl",
	KindTsExternalModuleRef:            "TsExternalModuleRef",
	KindTsExportAssignment:             "TsExportAssignment",
	KindTsNamespaceExportDecl:          "TsNamespaceExportDecl",
	KindTsDeclareFunction:              "TsDeclareFunction",
	KindTsAsExpr:                       "TsAsExpr",
	KindTsNonNullExpr:                  "TsNonNullExpr",
	KindTsParenType:                    "TsParenType",
	KindTsFunctionType:                 "TsFunctionType",
	KindTsTypeArguments:                "TsTypeArguments",
	KindTsMethodSignature:              "TsMethodSignature",
	KindTsName:                         "TsName",
	KindTsImplementsClause:             "TsImplementsClause",
}

func (k NodeKind) String() string {
	if name, ok := nodeKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsUnknown reports whether k is one of the recovery kinds that demote
// invalid syntax instead of discarding it.
func (k NodeKind) IsUnknown() bool {
	switch k {
	case KindError, KindUnknownStmt, KindUnknownBinding, KindUnknownExpr:
		return true
	}
	return false
}

// Node is a node of the concrete syntax tree. Leaves carry a Token (or are
// Missing placeholders); interior nodes carry Children.
type Node struct {
	Kind        NodeKind
	Range       TextRange
	Children    []*Node
	Token       *Token
	Diagnostics []*Diagnostic
}

func (n *Node) AddChild(child *Node) {
	if child != nil {
		n.Children = append(n.Children, child)
	}
}

func (n *Node) IsToken() bool {
	return n.Kind == KindToken
}

func (n *Node) IsMissing() bool {
	return n.Kind == KindMissing
}

func (n *Node) IsError() bool {
	return n.Kind.IsUnknown()
}

// Slot returns the i-th child. Fixed-arity nodes always have every slot
// populated (possibly with a Missing leaf), so Slot only returns nil for an
// index past the end.
func (n *Node) Slot(i int) *Node {
	if i < 0 || i >= len(n.Children) {
		return nil
	}
	return n.Children[i]
}

func (n *Node) FirstChildOfKind(kind NodeKind) *Node {
	for _, child := range n.Children {
		if child.Kind == kind {
			return child
		}
	}
	return nil
}

func (n *Node) ChildrenOfKind(kind NodeKind) []*Node {
	var result []*Node
	for _, child := range n.Children {
		if child.Kind == kind {
			result = append(result, child)
		}
	}
	return result
}

// FirstToken returns the first token leaf with the given kind among the
// direct children.
func (n *Node) FirstToken(kind TokenKind) *Token {
	for _, child := range n.Children {
		if child.Token != nil && child.Token.Kind == kind {
			return child.Token
		}
	}
	return nil
}

func (n *Node) TokenText() string {
	if n.Token != nil {
		return n.Token.Text
	}
	return ""
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// skips the children of the visited node.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, child := range n.Children {
		child.Walk(fn)
	}
}

// Leaves returns the token leaves in source order, skipping Missing slots.
func (n *Node) Leaves() []*Token {
	var out []*Token
	n.Walk(func(c *Node) bool {
		if c.Token != nil {
			out = append(out, c.Token)
		}
		return true
	})
	return out
}

// Text returns the source text of n without leading trivia of its first token.
func (n *Node) Text() string {
	var b strings.Builder
	first := true
	for _, tok := range n.Leaves() {
		if !first {
			b.WriteString(tok.Leading)
		}
		first = false
		b.WriteString(tok.Text)
	}
	return b.String()
}

// SourceText returns the full text covered by n including all trivia. For the
// root of a tree it reproduces the parsed source exactly.
func (n *Node) SourceText() string {
	var b strings.Builder
	for _, tok := range n.Leaves() {
		b.WriteString(tok.Leading)
		b.WriteString(tok.Text)
	}
	return b.String()
}

func (n *Node) String() string {
	var b strings.Builder
	n.write(&b, 0)
	return b.String()
}

func (n *Node) write(b *strings.Builder, indent int) {
	b.WriteString(strings.Repeat("  ", indent))
	b.WriteString(n.Kind.String())
	if n.Token != nil {
		b.WriteString(" ")
		b.WriteString(n.Token.Kind.String())
		if n.Token.Text != "" && n.Token.Text != n.Token.Kind.String() {
			b.WriteString(" ")
			b.WriteString(quote(n.Token.Text))
		}
	}
	for _, d := range n.Diagnostics {
		b.WriteString(" " + strings.ToUpper(d.Severity.String()) + ": ")
		b.WriteString(d.Message)
	}
	b.WriteString("\n")
	for _, child := range n.Children {
		child.write(b, indent+1)
	}
}

func quote(s string) string {
	return "\"" + strings.ReplaceAll(s, "\"", "\\\"") + "\""
}
