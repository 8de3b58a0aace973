package parser

import (
	"fmt"
	"io"
	"strings"

	"github.com/tliron/commonlog"
)

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithFileKind(kind FileKind) Option {
	return func(p *Parser) {
		p.syntax.FileKind = kind
	}
}

// WithStrict parses as if the source started with a "use strict" directive.
func WithStrict() Option {
	return func(p *Parser) {
		p.State.Strict = &StrictMode{}
	}
}

func WithLogger(log commonlog.Logger) Option {
	return func(p *Parser) {
		p.log = log
	}
}

type parseFunc func(*Parser) CompletedMarker

// Parser holds everything one parse owns: the token cursor, the event
// buffer, the diagnostics sink and the state threaded through every rule.
// A Parser is not safe for concurrent use.
type Parser struct {
	file        string
	syntax      Syntax
	source      []byte
	tokens      *TokenSource
	events      []Event
	diagnostics []Diagnostic
	checkpoints []int
	patches     []eventPatch
	// notArrow holds token positions where a parenthesized arrow function
	// was attempted and rewound. It survives rewinds so that nested
	// parentheses are attempted at most once each.
	notArrow    map[int]bool
	entry       parseFunc
	log         commonlog.Logger

	State ParserState
}

func newParser(src []byte, tokens []Token, lexDiags []Diagnostic, entry parseFunc, opts []Option) *Parser {
	p := &Parser{
		syntax: Syntax{FileKind: FileKindModule},
		source: src,
		tokens: NewTokenSource(tokens),
		entry:  entry,
		log:    commonlog.GetLogger("saijs.parser"),
		State:  NewParserState(),
	}
	for _, opt := range opts {
		opt(p)
	}
	p.events = make([]Event, 0, len(tokens)*3)
	for _, d := range lexDiags {
		d.File = p.file
		p.diagnostics = append(p.diagnostics, d)
	}
	return p
}

// ParseProgram prepares a parse of a complete script or module read from r.
// The read happens here; lexer problems are reported as diagnostics, so the
// only error is a failed read.
func ParseProgram(r io.Reader, opts ...Option) (*Parser, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read source: %w", err)
	}
	return NewParser(src, opts...), nil
}

// NewParser tokenizes src and prepares a program parse.
func NewParser(src []byte, opts ...Option) *Parser {
	probe := &Parser{}
	for _, opt := range opts {
		opt(probe)
	}
	tokens, diags := Tokenize(probe.file, src)
	return newParser(src, tokens, diags, (*Parser).parseProgram, opts)
}

// NewParserFromTokens prepares a program parse over tokens produced by an
// external lexer. The tokens must cover the source without gaps once their
// Leading trivia is included.
func NewParserFromTokens(tokens []Token, opts ...Option) *Parser {
	var b strings.Builder
	for _, tok := range tokens {
		b.WriteString(tok.Leading)
		b.WriteString(tok.Text)
	}
	return newParser([]byte(b.String()), tokens, nil, (*Parser).parseProgram, opts)
}

// ParseExpressionSource prepares a parse of a single expression.
func ParseExpressionSource(src []byte, opts ...Option) *Parser {
	p := NewParser(src, opts...)
	p.entry = (*Parser).parseExpressionRoot
	return p
}

// Parse is a convenience wrapper that parses a whole program.
func Parse(src []byte, opts ...Option) *Tree {
	return NewParser(src, opts...).Finish()
}

// Finish runs the grammar and materializes the tree. It panics with an
// InternalError if a grammar rule violated the marker discipline.
func (p *Parser) Finish() *Tree {
	p.entry(p)
	if len(p.checkpoints) != 0 {
		internalErrorf("parse finished with %d unresolved checkpoints", len(p.checkpoints))
	}
	root := p.replay()
	p.log.Debugf("parsed %s: %d tokens, %d events, %d diagnostics",
		p.fileName(), len(p.tokens.tokens), len(p.events), len(p.diagnostics))
	return &Tree{
		File:        p.file,
		Syntax:      p.syntax,
		Source:      p.source,
		Root:        root,
		Tokens:      p.tokens.tokens,
		Events:      p.events,
		Diagnostics: p.diagnostics,
		Lines:       NewLineIndex(p.file, p.source),
	}
}

func (p *Parser) fileName() string {
	if p.file == "" {
		return "<input>"
	}
	return p.file
}

func (p *Parser) Syntax() Syntax {
	return p.syntax
}

func (p *Parser) Events() []Event {
	return p.events
}

func (p *Parser) Diagnostics() []Diagnostic {
	return p.diagnostics
}

func (p *Parser) TokenPosition() int {
	return p.tokens.Position()
}

// Cur returns the kind of the current token.
func (p *Parser) Cur() TokenKind {
	return p.tokens.Cur().Kind
}

func (p *Parser) Nth(n int) TokenKind {
	return p.tokens.Nth(n).Kind
}

func (p *Parser) CurToken() *Token {
	return p.tokens.Cur()
}

func (p *Parser) CurText() string {
	return p.tokens.Cur().Text
}

func (p *Parser) NthText(n int) string {
	return p.tokens.Nth(n).Text
}

func (p *Parser) CurRange() TextRange {
	return p.tokens.Cur().Range
}

func (p *Parser) At(kind TokenKind) bool {
	return p.Cur() == kind
}

func (p *Parser) NthAt(n int, kind TokenKind) bool {
	return p.Nth(n) == kind
}

func (p *Parser) AtAny(kinds ...TokenKind) bool {
	cur := p.Cur()
	for _, k := range kinds {
		if cur == k {
			return true
		}
	}
	return false
}

// AtContextual reports whether the current token is the identifier text.
func (p *Parser) AtContextual(text string) bool {
	return p.At(TokenIdent) && p.CurText() == text
}

func (p *Parser) NthAtContextual(n int, text string) bool {
	return p.NthAt(n, TokenIdent) && p.NthText(n) == text
}

func (p *Parser) HasNewlineBefore() bool {
	return p.tokens.Cur().NewlineBefore
}

// Bump consumes the current token, which must be of kind.
func (p *Parser) Bump(kind TokenKind) {
	if !p.At(kind) {
		internalErrorf("Bump(%s) at %s", kind, p.Cur())
	}
	p.BumpAny()
}

// BumpAny consumes the current token whatever it is. At EOF it records
// nothing, so the EOF token is only ever added by the program rule.
func (p *Parser) BumpAny() {
	if p.At(TokenEOF) {
		return
	}
	p.events = append(p.events, Event{Kind: EventToken, Token: p.tokens.Bump()})
}

// BumpRemap consumes the current token and records it as kind, used for
// contextual keywords that the lexer reports as identifiers.
func (p *Parser) BumpRemap(kind TokenKind) {
	if p.At(TokenEOF) {
		return
	}
	p.events = append(p.events, Event{Kind: EventToken, Token: p.tokens.Bump(), Remap: kind})
}

func (p *Parser) bumpEOF() {
	if !p.At(TokenEOF) {
		internalErrorf("bumpEOF at %s", p.Cur())
	}
	p.events = append(p.events, Event{Kind: EventToken, Token: p.tokens.Bump()})
}

// Eat consumes the current token if it is of kind.
func (p *Parser) Eat(kind TokenKind) bool {
	if !p.At(kind) {
		return false
	}
	p.BumpAny()
	return true
}

// Expect consumes a token of kind, or reports it as missing and records a
// Missing slot in its place.
func (p *Parser) Expect(kind TokenKind) bool {
	if p.Eat(kind) {
		return true
	}
	p.Error(ExpectedNode("`"+kind.String()+"`", p.CurRange(), p))
	p.Missing()
	return false
}

// Missing records an empty slot for a required child.
func (p *Parser) Missing() {
	p.events = append(p.events, Event{Kind: EventMissing})
}

// ErrAndBump reports message at the current token and wraps it in an Error
// node, guaranteeing progress.
func (p *Parser) ErrAndBump(message string) {
	m := p.Start()
	p.Error(p.ErrBuilder(message).Primary(p.CurRange(), ""))
	p.BumpAny()
	m.Complete(p, KindError)
}
