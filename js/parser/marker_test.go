package parser

import "testing"

func TestMarkerComplete(t *testing.T) {
	p := NewParser([]byte("a b"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	cm := m.Complete(p, KindIdentifierExpr)
	if cm.Kind() != KindIdentifierExpr {
		t.Errorf("got %v, want %v", cm.Kind(), KindIdentifierExpr)
	}
	if r := cm.Range(p); r != (TextRange{Start: 0, End: 1}) {
		t.Errorf("got range %v, want 0..1", r)
	}
	if got := cm.Text(p); got != "a" {
		t.Errorf("got text %q, want %q", got, "a")
	}

	assertTree(t, finishRoot(p, root), `
Script
  IdentifierExpr
    Token Identifier "a"
  Token Identifier "b"
  Token EOF
`)
}

func TestMarkerAbandon(t *testing.T) {
	p := NewParser([]byte("a b"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	m.Abandon(p)

	assertTree(t, finishRoot(p, root), `
Script
  Token Identifier "a"
  Token Identifier "b"
  Token EOF
`)
}

func TestMarkerPrecede(t *testing.T) {
	p := NewParser([]byte("a + b c"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	lhs := m.Complete(p, KindIdentifierExpr)
	outer := lhs.Precede(p)
	p.BumpAny()
	rhs := p.Start()
	p.BumpAny()
	rhs.Complete(p, KindIdentifierExpr)
	bin := outer.Complete(p, KindBinaryExpr)
	if r := bin.Range(p); r != (TextRange{Start: 0, End: 5}) {
		t.Errorf("got range %v, want 0..5", r)
	}
	// Precede twice to check forward parent chains.
	stmt := bin.Precede(p).Complete(p, KindExprStmt)
	if stmt.Range(p) != bin.Range(p) {
		t.Errorf("wrapping node should cover the same range")
	}

	assertTree(t, finishRoot(p, root), `
Script
  ExprStmt
    BinaryExpr
      IdentifierExpr
        Token Identifier "a"
      Token +
      IdentifierExpr
        Token Identifier "b"
  Token Identifier "c"
  Token EOF
`)
}

func TestMarkerChangeKind(t *testing.T) {
	p := NewParser([]byte("a"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	cm := m.Complete(p, KindIdentifierBinding)
	cm.ChangeKind(p, KindUnknownBinding)
	if cm.Kind() != KindUnknownBinding {
		t.Errorf("got %v, want %v", cm.Kind(), KindUnknownBinding)
	}

	assertTree(t, finishRoot(p, root), `
Script
  UnknownBinding
    Token Identifier "a"
  Token EOF
`)
}

func TestMarkerUndoCompletion(t *testing.T) {
	p := NewParser([]byte("a b c"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	cm := m.Complete(p, KindIdentifierExpr)
	m = cm.UndoCompletion(p)
	p.BumpAny()
	extended := m.Complete(p, KindSequenceExpr)
	if r := extended.Range(p); r != (TextRange{Start: 0, End: 3}) {
		t.Errorf("got range %v, want 0..3", r)
	}

	assertTree(t, finishRoot(p, root), `
Script
  SequenceExpr
    Token Identifier "a"
    Token Identifier "b"
  Token Identifier "c"
  Token EOF
`)
}

func TestMarkerEmptyNode(t *testing.T) {
	p := NewParser([]byte("a b"))
	root := p.Start()
	p.BumpAny()
	empty := p.Start()
	cm := empty.Complete(p, KindArrayBindingHole)
	if r := cm.Range(p); r != (TextRange{Start: 2, End: 2}) {
		t.Errorf("empty node should sit at the next token, got %v", r)
	}
	tree := finishRoot(p, root)
	hole := findKind(tree, KindArrayBindingHole)
	if hole == nil {
		t.Fatalf("hole not found")
	}
	if hole.Range != (TextRange{Start: 1, End: 1}) {
		t.Errorf("empty node should sit after the preceding token, got %v", hole.Range)
	}
}

func TestMarkerMisuse(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p *Parser)
	}{
		{"complete twice", func(p *Parser) {
			m := p.Start()
			m.Complete(p, KindEmptyStmt)
			m.Complete(p, KindEmptyStmt)
		}},
		{"abandon after complete", func(p *Parser) {
			m := p.Start()
			m.Complete(p, KindEmptyStmt)
			m.Abandon(p)
		}},
		{"abandon twice", func(p *Parser) {
			m := p.Start()
			m.Abandon(p)
			m.Abandon(p)
		}},
		{"change kind after undo", func(p *Parser) {
			m := p.Start()
			cm := m.Complete(p, KindEmptyStmt)
			cm.UndoCompletion(p)
			cm.ChangeKind(p, KindBlockStmt)
		}},
		{"bump wrong kind", func(p *Parser) {
			p.Bump(TokenSemicolon)
		}},
		{"unwrap absent", func(p *Parser) {
			Absent().Unwrap()
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser([]byte("a"))
			expectInternalError(t, func() { tt.fn(p) })
		})
	}
}

func TestCheckEvents(t *testing.T) {
	tests := []struct {
		name   string
		events []Event
		ok     bool
	}{
		{"balanced", []Event{{Kind: EventStart, Node: KindScript}, {Kind: EventToken}, {Kind: EventFinish}}, true},
		{"tombstones", []Event{{Kind: EventStart, Node: KindScript}, {Kind: EventTombstone}, {Kind: EventFinish}}, true},
		{"pending", []Event{{Kind: EventStart, Node: kindPending}}, false},
		{"unmatched finish", []Event{{Kind: EventFinish}}, false},
		{"left open", []Event{{Kind: EventStart, Node: KindScript}}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckEvents(tt.events)
			if (err == nil) != tt.ok {
				t.Errorf("got %v, want ok=%v", err, tt.ok)
			}
		})
	}
}

func TestDroppedMarkerIsReported(t *testing.T) {
	p := NewParser([]byte("a"))
	root := p.Start()
	p.Start()
	p.BumpAny()
	p.bumpEOF()
	root.Complete(p, KindScript)
	if err := CheckEvents(p.Events()); err == nil {
		t.Fatalf("expected a dropped marker to be reported")
	}
	expectInternalError(t, func() { p.replay() })
}
