package parser

import "testing"

type parserSnapshot struct {
	pos    int
	events int
	diags  int
	state  ParserState
}

func snapshot(p *Parser) parserSnapshot {
	return parserSnapshot{
		pos:    p.TokenPosition(),
		events: len(p.Events()),
		diags:  len(p.Diagnostics()),
		state:  p.State.Clone(),
	}
}

func (s parserSnapshot) check(t *testing.T, p *Parser) {
	t.Helper()
	if got := p.TokenPosition(); got != s.pos {
		t.Errorf("token position: got %d, want %d", got, s.pos)
	}
	if got := len(p.Events()); got != s.events {
		t.Errorf("events: got %d, want %d", got, s.events)
	}
	if got := len(p.Diagnostics()); got != s.diags {
		t.Errorf("diagnostics: got %d, want %d", got, s.diags)
	}
	if !p.State.Equal(s.state) {
		t.Errorf("state: got %+v, want %+v", p.State, s.state)
	}
}

func TestRewindRestoresEverything(t *testing.T) {
	p := NewParser([]byte("a b c d"))
	root := p.Start()
	m := p.Start()
	p.BumpAny()
	first := m.Complete(p, KindIdentifierExpr)
	before := snapshot(p)
	beforeEvents := append([]Event(nil), p.Events()...)

	cp := p.Checkpoint()
	if !p.IsSpeculating() {
		t.Fatalf("checkpoint should start speculation")
	}
	p.State.Strict = &StrictMode{}
	p.State.NameMap["b"] = TextRange{}
	p.State.InGenerator = true
	first.ChangeKind(p, KindUnknownExpr)
	first.Precede(p).Complete(p, KindSequenceExpr)
	p.Error(p.ErrBuilder("speculative").Primary(p.CurRange(), ""))
	p.BumpAny()
	p.BumpAny()
	p.Rewind(cp)

	before.check(t, p)
	if p.IsSpeculating() {
		t.Errorf("rewind should end speculation")
	}
	for i, ev := range p.Events() {
		if ev != beforeEvents[i] {
			t.Errorf("event %d: got %v, want %v", i, ev, beforeEvents[i])
		}
	}

	assertTree(t, finishRoot(p, root), `
Script
  IdentifierExpr
    Token Identifier "a"
  Token Identifier "b"
  Token Identifier "c"
  Token Identifier "d"
  Token EOF
`)
}

func TestCommitKeepsEverything(t *testing.T) {
	p := NewParser([]byte("a b"))
	root := p.Start()
	cp := p.Checkpoint()
	m := p.Start()
	p.BumpAny()
	p.Error(p.ErrBuilder("kept").Primary(p.CurRange(), ""))
	m.Complete(p, KindUnknownExpr)
	p.Commit(cp)

	if p.TokenPosition() != 1 {
		t.Errorf("got position %d, want 1", p.TokenPosition())
	}
	if msgs := diagnosticMessages(p.Diagnostics()); len(msgs) != 1 || msgs[0] != "kept" {
		t.Errorf("got %v", msgs)
	}
	tree := finishRoot(p, root)
	unknown := findKind(tree, KindUnknownExpr)
	if unknown == nil || len(unknown.Diagnostics) != 1 {
		t.Fatalf("committed diagnostic should be attached to its node")
	}
}

func TestNestedCheckpoints(t *testing.T) {
	p := NewParser([]byte("a b c"))
	outer := p.Checkpoint()
	p.BumpAny()
	afterA := snapshot(p)

	inner := p.Checkpoint()
	p.BumpAny()
	p.State.InAsync = true
	p.Rewind(inner)
	afterA.check(t, p)

	inner = p.Checkpoint()
	p.BumpAny()
	p.Commit(inner)
	if p.TokenPosition() != 2 {
		t.Errorf("got position %d, want 2", p.TokenPosition())
	}
	if !p.IsSpeculating() {
		t.Errorf("outer checkpoint is still open")
	}

	p.Rewind(outer)
	if p.TokenPosition() != 0 || len(p.Events()) != 0 {
		t.Errorf("outer rewind should undo the committed inner attempt")
	}
}

func TestRewindUndoesPatchesOfCommittedInner(t *testing.T) {
	p := NewParser([]byte("a"))
	m := p.Start()
	p.BumpAny()
	cm := m.Complete(p, KindIdentifierExpr)

	outer := p.Checkpoint()
	inner := p.Checkpoint()
	cm.ChangeKind(p, KindUnknownExpr)
	p.Commit(inner)
	p.Rewind(outer)

	if got := p.Events()[0].Node; got != KindIdentifierExpr {
		t.Errorf("got %v, want %v", got, KindIdentifierExpr)
	}
}

func TestCheckpointOrder(t *testing.T) {
	tests := []struct {
		name string
		fn   func(p *Parser)
	}{
		{"rewind outer first", func(p *Parser) {
			outer := p.Checkpoint()
			p.Checkpoint()
			p.Rewind(outer)
		}},
		{"commit outer first", func(p *Parser) {
			outer := p.Checkpoint()
			p.Checkpoint()
			p.Commit(outer)
		}},
		{"resolve twice", func(p *Parser) {
			cp := p.Checkpoint()
			p.Commit(cp)
			p.Rewind(cp)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser([]byte("a"))
			expectInternalError(t, func() { tt.fn(p) })
		})
	}
}

func TestTryParse(t *testing.T) {
	ident := func(valid, certain bool) SpeculativeRule {
		return func(p *Parser) Speculation {
			m := p.Start()
			p.BumpAny()
			p.Error(p.ErrBuilder("attempt").Primary(p.CurRange(), ""))
			cm := m.Complete(p, KindIdentifierExpr)
			if valid {
				return Speculation{Syntax: Present(cm), Certain: certain}
			}
			return Speculation{Syntax: PresentInvalid(cm), Certain: certain}
		}
	}
	absent := func(p *Parser) Speculation {
		p.BumpAny()
		return Speculation{Syntax: Absent(), Certain: true}
	}

	tests := []struct {
		name string
		rule SpeculativeRule
		ok   bool
	}{
		{"valid", ident(true, false), true},
		{"invalid but certain", ident(false, true), true},
		{"invalid and uncertain", ident(false, false), false},
		{"absent", absent, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser([]byte("a b"))
			before := snapshot(p)
			res, ok := p.TryParse(tt.rule)
			if ok != tt.ok {
				t.Fatalf("got ok=%v, want %v", ok, tt.ok)
			}
			if p.IsSpeculating() {
				t.Errorf("TryParse left a checkpoint open")
			}
			if !ok {
				if !res.IsAbsent() {
					t.Errorf("failed attempt should return Absent, got %v", res)
				}
				before.check(t, p)
				return
			}
			if p.TokenPosition() != 1 || len(p.Diagnostics()) != 1 {
				t.Errorf("committed attempt lost its effects")
			}
		})
	}
}

func TestProgress(t *testing.T) {
	p := NewParser([]byte("a b"))
	var progress ParserProgress
	progress.AssertProgressing(p)
	p.BumpAny()
	progress.AssertProgressing(p)
	expectInternalError(t, func() { progress.AssertProgressing(p) })
}
