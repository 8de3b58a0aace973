package parser

import "strconv"

// Tree is the committed output of a parse.
type Tree struct {
	File        string
	Syntax      Syntax
	Source      []byte
	Root        *Node
	Tokens      []Token
	Events      []Event
	Diagnostics []Diagnostic
	Lines       *LineIndex
}

func (t *Tree) HasErrors() bool {
	for _, d := range t.Diagnostics {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

func (t *Tree) Errors() []Diagnostic {
	var out []Diagnostic
	for _, d := range t.Diagnostics {
		if d.Severity == SeverityError {
			out = append(out, d)
		}
	}
	return out
}

// Span converts a range of this tree's source to line and column positions.
func (t *Tree) Span(r TextRange) Span {
	return t.Lines.Span(r)
}

// CheckEvents verifies the stack discipline of an event buffer: every
// completed Start has exactly one matching Finish and nothing is left open.
func CheckEvents(events []Event) error {
	depth := 0
	for i, ev := range events {
		switch ev.Kind {
		case EventStart:
			if ev.Node == kindPending {
				return InternalError{Message: "marker at event " + strconv.Itoa(i) + " was never completed or abandoned"}
			}
			depth++
		case EventFinish:
			depth--
			if depth < 0 {
				return InternalError{Message: "unmatched Finish at event " + strconv.Itoa(i)}
			}
		}
	}
	if depth != 0 {
		return InternalError{Message: strconv.Itoa(depth) + " nodes left open"}
	}
	return nil
}

// replay materializes the event buffer into a tree. The buffer itself is
// left untouched; forward parents are resolved on a copy.
func (p *Parser) replay() *Node {
	if err := CheckEvents(p.events); err != nil {
		panic(err)
	}
	events := make([]Event, len(p.events))
	copy(events, p.events)

	var (
		stack []*Node
		root  *Node
		kinds []NodeKind
	)
	toks := p.tokens.tokens

	push := func(kind NodeKind) {
		n := &Node{Kind: kind}
		if len(stack) > 0 {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, n)
		} else if root == nil {
			root = n
		} else {
			internalErrorf("more than one root node (%s after %s)", kind, root.Kind)
		}
		stack = append(stack, n)
	}
	leaf := func(n *Node) {
		if len(stack) == 0 {
			internalErrorf("%s outside of any node", n.Kind)
		}
		parent := stack[len(stack)-1]
		parent.Children = append(parent.Children, n)
	}

	for i := range events {
		ev := events[i]
		switch ev.Kind {
		case EventStart:
			kinds = append(kinds[:0], ev.Node)
			idx, fp := i, ev.ForwardParent
			for fp != 0 {
				idx += fp
				parent := events[idx]
				events[idx] = Event{Kind: EventTombstone}
				if parent.Kind == EventStart {
					kinds = append(kinds, parent.Node)
				}
				fp = parent.ForwardParent
			}
			for j := len(kinds) - 1; j >= 0; j-- {
				push(kinds[j])
			}
		case EventFinish:
			n := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			n.Range = childrenRange(n, toks)
		case EventToken:
			tok := toks[ev.Token]
			if ev.Remap != 0 {
				tok.Kind = ev.Remap
			}
			leaf(&Node{Kind: KindToken, Range: tok.Range, Token: &tok})
		case EventMissing:
			leaf(&Node{Kind: KindMissing})
		case EventError:
			if len(stack) > 0 {
				n := stack[len(stack)-1]
				n.Diagnostics = append(n.Diagnostics, &p.diagnostics[ev.Diag])
			}
		}
	}
	if root == nil {
		internalErrorf("event buffer produced no root node")
	}
	fixMissingRanges(root, root.Range.Start)
	return root
}

func childrenRange(n *Node, toks []Token) TextRange {
	var (
		r     TextRange
		found bool
	)
	for _, c := range n.Children {
		if c.Kind == KindMissing || c.Range.Start < 0 {
			continue
		}
		if !found {
			r, found = c.Range, true
			continue
		}
		r.End = c.Range.End
	}
	if !found {
		return TextRange{Start: -1, End: -1}
	}
	return r
}

// fixMissingRanges positions empty nodes and Missing slots at the end of the
// preceding sibling (or the start of their parent).
func fixMissingRanges(n *Node, pos int) int {
	if n.Kind == KindMissing || (n.Kind != KindToken && n.Range.Start < 0) {
		n.Range = TextRange{Start: pos, End: pos}
	}
	if n.Kind == KindToken || n.Kind == KindMissing {
		return n.Range.End
	}
	cur := n.Range.Start
	for _, c := range n.Children {
		cur = fixMissingRanges(c, cur)
	}
	return n.Range.End
}
