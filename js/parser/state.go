package parser

import (
	"path/filepath"
	"strings"

	"golang.org/x/exp/maps"
)

type FileKind uint8

const (
	FileKindScript FileKind = iota
	FileKindModule
	FileKindTypeScript
)

func (k FileKind) String() string {
	switch k {
	case FileKindScript:
		return "script"
	case FileKindModule:
		return "module"
	case FileKindTypeScript:
		return "typescript"
	}
	return "unknown"
}

// ParseFileKind accepts the names printed by FileKind.String.
func ParseFileKind(s string) (FileKind, bool) {
	switch strings.ToLower(s) {
	case "script", "js":
		return FileKindScript, true
	case "module", "mjs", "esm":
		return FileKindModule, true
	case "typescript", "ts":
		return FileKindTypeScript, true
	}
	return 0, false
}

// FileKindFor infers the file kind from a path's extension.
func FileKindFor(path string) FileKind {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".ts", ".mts", ".cts", ".tsx":
		return FileKindTypeScript
	case ".cjs":
		return FileKindScript
	}
	return FileKindModule
}

// Syntax describes the fixed syntactic features of one parse.
type Syntax struct {
	FileKind FileKind
}

func (s Syntax) IsModule() bool {
	return s.FileKind != FileKindScript
}

func (s Syntax) IsTypeScript() bool {
	return s.FileKind == FileKindTypeScript
}

// StrictMode records why strict mode is in effect.
type StrictMode struct {
	// Directive is the range of the "use strict" directive, empty when strict
	// mode was implied by the file kind or an option.
	Directive TextRange
	Explicit  bool
}

// ParserState is the mutable context every grammar rule consults. It is
// snapshotted at checkpoints and around nested scopes.
type ParserState struct {
	Strict *StrictMode
	// AmbientDepth counts enclosing `declare` contexts.
	AmbientDepth int
	// DuplicateBindingParent is the declaration keyword ("let" or "const")
	// whose binding list is being parsed, or empty when duplicates are allowed.
	DuplicateBindingParent string
	// NameMap maps names bound in the current binding list to their first
	// declaration.
	NameMap         map[string]TextRange
	AllowObjectExpr bool
	InDefault       bool
	InAsync         bool
	InGenerator     bool
	InFunction      bool
}

func NewParserState() ParserState {
	return ParserState{
		NameMap:         map[string]TextRange{},
		AllowObjectExpr: true,
	}
}

// Clone returns a deep copy of s.
func (s ParserState) Clone() ParserState {
	out := s
	if s.Strict != nil {
		strict := *s.Strict
		out.Strict = &strict
	}
	out.NameMap = maps.Clone(s.NameMap)
	return out
}

// Equal reports whether two states are identical field for field.
func (s ParserState) Equal(o ParserState) bool {
	if (s.Strict == nil) != (o.Strict == nil) {
		return false
	}
	if s.Strict != nil && *s.Strict != *o.Strict {
		return false
	}
	return s.AmbientDepth == o.AmbientDepth &&
		s.DuplicateBindingParent == o.DuplicateBindingParent &&
		s.AllowObjectExpr == o.AllowObjectExpr &&
		s.InDefault == o.InDefault &&
		s.InAsync == o.InAsync &&
		s.InGenerator == o.InGenerator &&
		s.InFunction == o.InFunction &&
		maps.Equal(s.NameMap, o.NameMap)
}

func (s ParserState) InAmbient() bool {
	return s.AmbientDepth > 0
}

// WithState applies change to the parser state and returns a function that
// restores the state as it was before. Intended for
//
//	defer p.WithState(func(s *ParserState) { ... })()
func (p *Parser) WithState(change func(*ParserState)) func() {
	saved := p.State.Clone()
	change(&p.State)
	return func() {
		p.State = saved
	}
}

// EnterBindingList starts a binding list for a `let` or `const` declaration:
// names bound until the returned function is called must be unique and may
// not be `let`.
func (p *Parser) EnterBindingList(parent string) func() {
	return p.WithState(func(s *ParserState) {
		s.DuplicateBindingParent = parent
		s.NameMap = map[string]TextRange{}
	})
}

// EnterAmbient enters a `declare` context.
func (p *Parser) EnterAmbient() func() {
	return p.WithState(func(s *ParserState) {
		s.AmbientDepth++
	})
}

// Feature is a syntax feature whose availability depends on the file kind
// and parser state.
type Feature uint8

const (
	FeatureStrictMode Feature = iota
	FeatureTypeScript
	FeatureModule
)

func (f Feature) IsSupported(p *Parser) bool {
	switch f {
	case FeatureStrictMode:
		return p.syntax.IsModule() || p.State.Strict != nil
	case FeatureTypeScript:
		return p.syntax.IsTypeScript()
	case FeatureModule:
		return p.syntax.IsModule()
	}
	return false
}
