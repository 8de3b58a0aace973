package parser

import "fmt"

// TextRange is a half-open byte range [Start, End) into the source.
type TextRange struct {
	Start int
	End   int
}

func (r TextRange) Len() int {
	return r.End - r.Start
}

func (r TextRange) IsEmpty() bool {
	return r.Start == r.End
}

// Cover returns the smallest range containing both r and o.
func (r TextRange) Cover(o TextRange) TextRange {
	out := r
	if o.Start < out.Start {
		out.Start = o.Start
	}
	if o.End > out.End {
		out.End = o.End
	}
	return out
}

func (r TextRange) String() string {
	return fmt.Sprintf("%d..%d", r.Start, r.End)
}

type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenError

	// Literals and names
	TokenIdent
	TokenPrivateName
	TokenNumber
	TokenString
	TokenTemplate
	TokenTemplateHead
	TokenTemplateMiddle
	TokenTemplateTail
	TokenRegex

	// Reserved words
	TokenBreak
	TokenCase
	TokenCatch
	TokenClass
	TokenConst
	TokenContinue
	TokenDebugger
	TokenDefault
	TokenDelete
	TokenDo
	TokenElse
	TokenEnum
	TokenExport
	TokenExtends
	TokenFalse
	TokenFinally
	TokenFor
	TokenFunction
	TokenIf
	TokenImport
	TokenIn
	TokenInstanceof
	TokenNew
	TokenNull
	TokenReturn
	TokenSuper
	TokenSwitch
	TokenThis
	TokenThrow
	TokenTrue
	TokenTry
	TokenTypeof
	TokenVar
	TokenVoid
	TokenWhile
	TokenWith
	TokenYield
	TokenAwait

	// Contextual keywords, produced only by BumpRemap
	TokenLet
	TokenAs
	TokenFrom
	TokenAsync
	TokenDeclare
	TokenType
	TokenInterface
	TokenNamespace
	TokenModule
	TokenAbstract
	TokenGlobal
	TokenRequire

	// Punctuators
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDot
	TokenEllipsis
	TokenSemicolon
	TokenComma
	TokenLT
	TokenGT
	TokenLE
	TokenGE
	TokenEQ
	TokenNE
	TokenStrictEQ
	TokenStrictNE
	TokenPlus
	TokenMinus
	TokenStar
	TokenSlash
	TokenPercent
	TokenStarStar
	TokenIncrement
	TokenDecrement
	TokenShl
	TokenShr
	TokenUShr
	TokenAmp
	TokenPipe
	TokenCaret
	TokenBang
	TokenTilde
	TokenAmpAmp
	TokenPipePipe
	TokenQuestionQuestion
	TokenQuestion
	TokenQuestionDot
	TokenColon
	TokenAssign
	TokenPlusAssign
	TokenMinusAssign
	TokenStarAssign
	TokenSlashAssign
	TokenPercentAssign
	TokenStarStarAssign
	TokenShlAssign
	TokenShrAssign
	TokenUShrAssign
	TokenAmpAssign
	TokenPipeAssign
	TokenCaretAssign
	TokenAmpAmpAssign
	TokenPipePipeAssign
	TokenQuestionQuestionAssign
	TokenArrow
	TokenAt
	TokenHash

	// TokenPunct is any punctuator the classifier does not know by name.
	TokenPunct
)

var tokenKindNames = map[TokenKind]string{
	TokenEOF:                    "EOF",
	TokenError:                  "Error",
	TokenIdent:                  "Identifier",
	TokenPrivateName:            "PrivateName",
	TokenNumber:                 "Number",
	TokenString:                 "String",
	TokenTemplate:               "Template",
	TokenTemplateHead:           "TemplateHead",
	TokenTemplateMiddle:         "TemplateMiddle",
	TokenTemplateTail:           "TemplateTail",
	TokenRegex:                  "Regex",
	TokenBreak:                  "break",
	TokenCase:                   "case",
	TokenCatch:                  "catch",
	TokenClass:                  "class",
	TokenConst:                  "const",
	TokenContinue:               "continue",
	TokenDebugger:               "debugger",
	TokenDefault:                "default",
	TokenDelete:                 "delete",
	TokenDo:                     "do",
	TokenElse:                   "else",
	TokenEnum:                   "enum",
	TokenExport:                 "export",
	TokenExtends:                "extends",
	TokenFalse:                  "false",
	TokenFinally:                "finally",
	TokenFor:                    "for",
	TokenFunction:               "function",
	TokenIf:                     "if",
	TokenImport:                 "import",
	TokenIn:                     "in",
	TokenInstanceof:             "instanceof",
	TokenNew:                    "new",
	TokenNull:                   "null",
	TokenReturn:                 "return",
	TokenSuper:                  "super",
	TokenSwitch:                 "switch",
	TokenThis:                   "this",
	TokenThrow:                  "throw",
	TokenTrue:                   "true",
	TokenTry:                    "try",
	TokenTypeof:                 "typeof",
	TokenVar:                    "var",
	TokenVoid:                   "void",
	TokenWhile:                  "while",
	TokenWith:                   "with",
	TokenYield:                  "yield",
	TokenAwait:                  "await",
	TokenLet:                    "let",
	TokenAs:                     "as",
	TokenFrom:                   "from",
	TokenAsync:                  "async",
	TokenDeclare:                "declare",
	TokenType:                   "type",
	TokenInterface:              "interface",
	TokenNamespace:              "namespace",
	TokenModule:                 "module",
	TokenAbstract:               "abstract",
	TokenGlobal:                 "global",
	TokenRequire:                "require",
	TokenLBrace:                 "{",
	TokenRBrace:                 "}",
	TokenLParen:                 "(",
	TokenRParen:                 ")",
	TokenLBracket:               "[",
	TokenRBracket:               "]",
	TokenDot:                    ".",
	TokenEllipsis:               "...",
	TokenSemicolon:              ";",
	TokenComma:                  ",",
	TokenLT:                     "<",
	TokenGT:                     ">",
	TokenLE:                     "<=",
	TokenGE:                     ">=",
	TokenEQ:                     "==",
	TokenNE:                     "!=",
	TokenStrictEQ:               "===",
	TokenStrictNE:               "!==",
	TokenPlus:                   "+",
	TokenMinus:                  "-",
	TokenStar:                   "*",
	TokenSlash:                  "/",
	TokenPercent:                "%",
	TokenStarStar:               "**",
	TokenIncrement:              "++",
	TokenDecrement:              "--",
	TokenShl:                    "<<",
	TokenShr:                    ">>",
	TokenUShr:                   ">>>",
	TokenAmp:                    "&",
	TokenPipe:                   "|",
	TokenCaret:                  "^",
	TokenBang:                   "!",
	TokenTilde:                  "~",
	TokenAmpAmp:                 "&&",
	TokenPipePipe:               "||",
	TokenQuestionQuestion:       "??",
	TokenQuestion:               "?",
	TokenQuestionDot:            "?.",
	TokenColon:                  ":",
	TokenAssign:                 "=",
	TokenPlusAssign:             "+=",
	TokenMinusAssign:            "-=",
	TokenStarAssign:             "*=",
	TokenSlashAssign:            "/=",
	TokenPercentAssign:          "%=",
	TokenStarStarAssign:         "**=",
	TokenShlAssign:              "<<=",
	TokenShrAssign:              ">>=",
	TokenUShrAssign:             ">>>=",
	TokenAmpAssign:              "&=",
	TokenPipeAssign:             "|=",
	TokenCaretAssign:            "^=",
	TokenAmpAmpAssign:           "&&=",
	TokenPipePipeAssign:         "||=",
	TokenQuestionQuestionAssign: "??=",
	TokenArrow:                  "=>",
	TokenAt:                     "@",
	TokenHash:                   "#",
	TokenPunct:                  "Punct",
}

func (k TokenKind) String() string {
	if name, ok := tokenKindNames[k]; ok {
		return name
	}
	return "Unknown"
}

// IsKeyword reports whether k is a reserved or contextual keyword.
func (k TokenKind) IsKeyword() bool {
	return k >= TokenBreak && k <= TokenRequire
}

func (k TokenKind) IsPunctuator() bool {
	return k >= TokenLBrace && k <= TokenPunct
}

func (k TokenKind) IsAssignOp() bool {
	return k == TokenAssign || (k >= TokenPlusAssign && k <= TokenQuestionQuestionAssign)
}

// Token is a significant token with the trivia that precedes it.
type Token struct {
	Kind  TokenKind
	Range TextRange
	Text  string
	// Leading holds whitespace and comments between the previous token and this one.
	Leading       string
	NewlineBefore bool
}

var keywords = map[string]TokenKind{
	"break":      TokenBreak,
	"case":       TokenCase,
	"catch":      TokenCatch,
	"class":      TokenClass,
	"const":      TokenConst,
	"continue":   TokenContinue,
	"debugger":   TokenDebugger,
	"default":    TokenDefault,
	"delete":     TokenDelete,
	"do":         TokenDo,
	"else":       TokenElse,
	"enum":       TokenEnum,
	"export":     TokenExport,
	"extends":    TokenExtends,
	"false":      TokenFalse,
	"finally":    TokenFinally,
	"for":        TokenFor,
	"function":   TokenFunction,
	"if":         TokenIf,
	"import":     TokenImport,
	"in":         TokenIn,
	"instanceof": TokenInstanceof,
	"new":        TokenNew,
	"null":       TokenNull,
	"return":     TokenReturn,
	"super":      TokenSuper,
	"switch":     TokenSwitch,
	"this":       TokenThis,
	"throw":      TokenThrow,
	"true":       TokenTrue,
	"try":        TokenTry,
	"typeof":     TokenTypeof,
	"var":        TokenVar,
	"void":       TokenVoid,
	"while":      TokenWhile,
	"with":       TokenWith,
	"yield":      TokenYield,
	"await":      TokenAwait,
}

// LookupKeyword maps reserved words to their kind. Contextual keywords such
// as `let` or `declare` stay identifiers.
func LookupKeyword(ident string) TokenKind {
	if kind, ok := keywords[ident]; ok {
		return kind
	}
	return TokenIdent
}

var punctuators = func() map[string]TokenKind {
	m := make(map[string]TokenKind)
	for k := TokenLBrace; k < TokenPunct; k++ {
		m[tokenKindNames[k]] = k
	}
	return m
}()

// LookupPunctuator maps punctuator text to its kind, falling back to TokenPunct.
func LookupPunctuator(text string) TokenKind {
	if kind, ok := punctuators[text]; ok {
		return kind
	}
	return TokenPunct
}
