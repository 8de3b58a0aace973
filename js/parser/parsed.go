package parser

import "fmt"

type syntaxState uint8

const (
	stateAbsent syntaxState = iota
	stateValid
	stateInvalid
)

// ParsedSyntax is the result of a grammar rule: a valid node, a node that was
// built but is semantically rejected, or nothing at all. An Invalid node is
// still part of the tree; Absent means no token was consumed and the caller
// may try another production.
type ParsedSyntax struct {
	marker CompletedMarker
	state  syntaxState
}

func Absent() ParsedSyntax {
	return ParsedSyntax{}
}

func Present(cm CompletedMarker) ParsedSyntax {
	return ParsedSyntax{marker: cm, state: stateValid}
}

func PresentInvalid(cm CompletedMarker) ParsedSyntax {
	return ParsedSyntax{marker: cm, state: stateInvalid}
}

func (s ParsedSyntax) IsAbsent() bool  { return s.state == stateAbsent }
func (s ParsedSyntax) IsPresent() bool { return s.state != stateAbsent }
func (s ParsedSyntax) IsValid() bool   { return s.state == stateValid }
func (s ParsedSyntax) IsInvalid() bool { return s.state == stateInvalid }

func (s ParsedSyntax) String() string {
	switch s.state {
	case stateValid:
		return fmt.Sprintf("Present(Valid(%s))", s.marker.kind)
	case stateInvalid:
		return fmt.Sprintf("Present(Invalid(%s))", s.marker.kind)
	}
	return "Absent"
}

// Ok returns the node, valid or not, and whether one is present.
func (s ParsedSyntax) Ok() (CompletedMarker, bool) {
	return s.marker, s.IsPresent()
}

// Unwrap returns the node and panics when the syntax is absent. Rules use it
// only where an earlier check guarantees presence.
func (s ParsedSyntax) Unwrap() CompletedMarker {
	if s.IsAbsent() {
		internalErrorf("Unwrap on absent syntax")
	}
	return s.marker
}

// Kind is the kind of the present node, or KindMissing.
func (s ParsedSyntax) Kind() NodeKind {
	if s.IsAbsent() {
		return KindMissing
	}
	return s.marker.kind
}

// IntoValid marks a present node as valid. The tree is not touched.
func (s ParsedSyntax) IntoValid() ParsedSyntax {
	if s.IsPresent() {
		s.state = stateValid
	}
	return s
}

// IntoInvalid marks a present node as invalid. The tree is not touched.
func (s ParsedSyntax) IntoInvalid() ParsedSyntax {
	if s.IsPresent() {
		s.state = stateInvalid
	}
	return s
}

// NodeOrMissing is what remains of a ParsedSyntax once a slot has been
// filled, either by the node itself or by a Missing placeholder.
type NodeOrMissing struct {
	marker  CompletedMarker
	missing bool
}

func (n NodeOrMissing) Node() (CompletedMarker, bool) {
	return n.marker, !n.missing
}

func (n NodeOrMissing) IsMissing() bool {
	return n.missing
}

// OrMissing fills the slot with a Missing placeholder when absent, without
// reporting anything. Used for optional children of fixed-arity nodes.
func (s ParsedSyntax) OrMissing(p *Parser) NodeOrMissing {
	if s.IsAbsent() {
		p.Missing()
		return NodeOrMissing{missing: true}
	}
	return NodeOrMissing{marker: s.marker}
}

// OrMissingWithError reports the diagnostic built by expected and fills the
// slot with a Missing placeholder when absent.
func (s ParsedSyntax) OrMissingWithError(p *Parser, expected ExpectedFunc) NodeOrMissing {
	if s.IsAbsent() {
		p.Error(expected(p, p.CurRange()))
		p.Missing()
		return NodeOrMissing{missing: true}
	}
	return NodeOrMissing{marker: s.marker}
}

// OrInvalidToUnknown demotes an invalid node to kind. When absent it builds an
// empty node of kind at the cursor and reports it, so the slot is never
// empty. Valid nodes pass through.
func (s ParsedSyntax) OrInvalidToUnknown(p *Parser, kind NodeKind) ParsedSyntax {
	switch s.state {
	case stateInvalid:
		s.marker.ChangeKind(p, kind)
		return s
	case stateAbsent:
		r := p.CurRange()
		p.Error(ExpectedNode(describeKind(kind), r, p))
		m := p.Start()
		return PresentInvalid(m.Complete(p, kind))
	}
	return s
}

func describeKind(kind NodeKind) string {
	switch kind {
	case KindUnknownBinding:
		return "binding"
	case KindUnknownExpr:
		return "expression"
	case KindUnknownStmt:
		return "statement"
	}
	return "node"
}
