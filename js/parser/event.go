package parser

import "fmt"

type EventKind uint8

const (
	// EventStart opens a node. Its Node field is pending until the marker
	// that created it completes.
	EventStart EventKind = iota
	EventFinish
	EventToken
	// EventMissing records an empty slot for a required child.
	EventMissing
	EventError
	// EventTombstone replaces an abandoned start or an undone finish.
	EventTombstone
)

var eventKindNames = [...]string{
	EventStart:     "Start",
	EventFinish:    "Finish",
	EventToken:     "Token",
	EventMissing:   "Missing",
	EventError:     "Error",
	EventTombstone: "Tombstone",
}

func (k EventKind) String() string {
	if int(k) < len(eventKindNames) {
		return eventKindNames[k]
	}
	return "Unknown"
}

// Event is one tree-construction instruction. Parsing only appends events;
// the tree is materialized once by replaying them.
type Event struct {
	Kind EventKind
	Node NodeKind
	// Token is the token index for EventToken.
	Token int
	// Remap, when non-zero, overrides the token kind (contextual keywords).
	Remap TokenKind
	// Diag is the diagnostics index for EventError.
	Diag int
	// ForwardParent is the distance to the Start event of a node created by
	// Precede that wraps this one, or zero.
	ForwardParent int
}

func (e Event) String() string {
	switch e.Kind {
	case EventStart:
		if e.ForwardParent != 0 {
			return fmt.Sprintf("Start(%s, +%d)", e.Node, e.ForwardParent)
		}
		return fmt.Sprintf("Start(%s)", e.Node)
	case EventFinish:
		return "Finish"
	case EventToken:
		return fmt.Sprintf("Token(%d)", e.Token)
	case EventError:
		return fmt.Sprintf("Error(%d)", e.Diag)
	}
	return e.Kind.String()
}

// InternalError is the panic value for violations of the engine's own
// invariants: unbalanced markers, checkpoints resolved out of order, loops
// that stop making progress. These are bugs in a grammar rule, never
// problems with the input.
type InternalError struct {
	Message string
}

func (e InternalError) Error() string {
	return "internal parser error: " + e.Message
}

func internalErrorf(format string, args ...any) {
	panic(InternalError{Message: fmt.Sprintf(format, args...)})
}

// Marker is an open node. It must be consumed exactly once with Complete or
// Abandon.
type Marker struct {
	pos      int
	startTok int
}

// Start opens a new node at the current position.
func (p *Parser) Start() Marker {
	p.events = append(p.events, Event{Kind: EventStart, Node: kindPending})
	return Marker{pos: len(p.events) - 1, startTok: p.tokens.Position()}
}

func (m Marker) checkOpen(p *Parser, op string) {
	if m.pos >= len(p.events) {
		internalErrorf("%s on marker %d past the end of the event buffer", op, m.pos)
	}
	ev := p.events[m.pos]
	if ev.Kind != EventStart || ev.Node != kindPending {
		internalErrorf("%s on marker %d which was already consumed (%s)", op, m.pos, ev)
	}
}

// Complete closes the node as kind.
func (m Marker) Complete(p *Parser, kind NodeKind) CompletedMarker {
	m.checkOpen(p, "Complete")
	p.patchEvent(m.pos, func(ev *Event) { ev.Node = kind })
	p.events = append(p.events, Event{Kind: EventFinish, Node: kind})
	return CompletedMarker{
		start:    m.pos,
		finish:   len(p.events) - 1,
		kind:     kind,
		startTok: m.startTok,
		endTok:   p.tokens.Position(),
	}
}

// Abandon drops the node. Events recorded since Start stay in the buffer and
// end up as children of the enclosing node.
func (m Marker) Abandon(p *Parser) {
	m.checkOpen(p, "Abandon")
	p.patchEvent(m.pos, func(ev *Event) { *ev = Event{Kind: EventTombstone} })
}

// CompletedMarker is a closed node.
type CompletedMarker struct {
	start    int
	finish   int
	kind     NodeKind
	startTok int
	endTok   int
}

func (cm CompletedMarker) Kind() NodeKind {
	return cm.kind
}

func (cm CompletedMarker) checkComplete(p *Parser, op string) {
	if cm.finish >= len(p.events) ||
		p.events[cm.start].Kind != EventStart || p.events[cm.finish].Kind != EventFinish {
		internalErrorf("%s on a node that is no longer complete", op)
	}
}

// ChangeKind retags the node in place.
func (cm *CompletedMarker) ChangeKind(p *Parser, kind NodeKind) {
	cm.checkComplete(p, "ChangeKind")
	p.patchEvent(cm.start, func(ev *Event) { ev.Node = kind })
	p.patchEvent(cm.finish, func(ev *Event) { ev.Node = kind })
	cm.kind = kind
}

// UndoCompletion removes the node's Finish so that it can be extended and
// completed again.
func (cm CompletedMarker) UndoCompletion(p *Parser) Marker {
	cm.checkComplete(p, "UndoCompletion")
	p.patchEvent(cm.start, func(ev *Event) { ev.Node = kindPending })
	p.patchEvent(cm.finish, func(ev *Event) { *ev = Event{Kind: EventTombstone} })
	return Marker{pos: cm.start, startTok: cm.startTok}
}

// Precede opens a new node that will become the parent of cm once it is
// completed.
func (cm CompletedMarker) Precede(p *Parser) Marker {
	cm.checkComplete(p, "Precede")
	m := p.Start()
	m.startTok = cm.startTok
	p.patchEvent(cm.start, func(ev *Event) { ev.ForwardParent = m.pos - cm.start })
	return m
}

// Range is the source range of the tokens inside the node. An empty node is
// positioned at the token that followed it.
func (cm CompletedMarker) Range(p *Parser) TextRange {
	toks := p.tokens.tokens
	if cm.endTok <= cm.startTok {
		start := toks[cm.startTok].Range.Start
		return TextRange{Start: start, End: start}
	}
	return TextRange{Start: toks[cm.startTok].Range.Start, End: toks[cm.endTok-1].Range.End}
}

// Text is the source text of the node without surrounding trivia.
func (cm CompletedMarker) Text(p *Parser) string {
	r := cm.Range(p)
	return string(p.source[r.Start:r.End])
}

type eventPatch struct {
	index int
	old   Event
}

// patchEvent mutates an already recorded event. While a checkpoint is open
// the previous value is logged so Rewind can restore it.
func (p *Parser) patchEvent(i int, change func(*Event)) {
	if len(p.checkpoints) > 0 {
		p.patches = append(p.patches, eventPatch{index: i, old: p.events[i]})
	}
	change(&p.events[i])
}
