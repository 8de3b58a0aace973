package parser

import (
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

// assertTree compares a tree dump against the expected text, ignoring
// leading and trailing blank lines of want.
func assertTree(t *testing.T, root *Node, want string) {
	t.Helper()
	got := strings.TrimSpace(root.String())
	want = strings.TrimSpace(want)
	if got != want {
		t.Fatal(diff.Diff(want, got))
	}
}

// expectInternalError runs fn and fails unless it panics with an
// InternalError.
func expectInternalError(t *testing.T, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected an internal error, got none")
		}
		if _, ok := r.(InternalError); !ok {
			t.Fatalf("expected an internal error, got %v", r)
		}
	}()
	fn()
}

// finishRoot closes a hand-built parse: it consumes the rest of the input
// and EOF into root and replays the events.
func finishRoot(p *Parser, root Marker) *Node {
	for !p.At(TokenEOF) {
		p.BumpAny()
	}
	p.bumpEOF()
	root.Complete(p, KindScript)
	return p.replay()
}

func parseString(src string, opts ...Option) *Tree {
	return Parse([]byte(src), opts...)
}

func diagnosticMessages(diags []Diagnostic) []string {
	out := make([]string, len(diags))
	for i, d := range diags {
		out[i] = d.Message
	}
	return out
}

// findKind returns the first node of kind in pre-order.
func findKind(root *Node, kind NodeKind) *Node {
	var found *Node
	root.Walk(func(n *Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == kind {
			found = n
			return false
		}
		return true
	})
	return found
}

func countKind(root *Node, kind NodeKind) int {
	count := 0
	root.Walk(func(n *Node) bool {
		if n.Kind == kind {
			count++
		}
		return true
	})
	return count
}
