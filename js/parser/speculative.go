package parser

// Checkpoint captures everything a speculative attempt may change.
type Checkpoint struct {
	depth     int
	tokenPos  int
	eventsLen int
	diagsLen  int
	patchLen  int
	state     ParserState
}

// Checkpoint opens a speculative attempt. It must be resolved with Rewind or
// Commit before any checkpoint taken earlier.
func (p *Parser) Checkpoint() Checkpoint {
	cp := Checkpoint{
		depth:     len(p.checkpoints) + 1,
		tokenPos:  p.tokens.Position(),
		eventsLen: len(p.events),
		diagsLen:  len(p.diagnostics),
		patchLen:  len(p.patches),
		state:     p.State.Clone(),
	}
	p.checkpoints = append(p.checkpoints, cp.depth)
	return cp
}

func (p *Parser) resolve(cp Checkpoint, op string) {
	if len(p.checkpoints) == 0 || p.checkpoints[len(p.checkpoints)-1] != cp.depth {
		internalErrorf("%s of checkpoint %d out of order (open: %v)", op, cp.depth, p.checkpoints)
	}
	p.checkpoints = p.checkpoints[:len(p.checkpoints)-1]
}

// Rewind undoes everything since cp: the cursor, events, diagnostics, patches
// to earlier events and the parser state all return to their values at cp.
func (p *Parser) Rewind(cp Checkpoint) {
	p.resolve(cp, "Rewind")
	for i := len(p.patches) - 1; i >= cp.patchLen; i-- {
		patch := p.patches[i]
		if patch.index < cp.eventsLen {
			p.events[patch.index] = patch.old
		}
	}
	p.patches = p.patches[:cp.patchLen]
	p.events = p.events[:cp.eventsLen]
	p.diagnostics = p.diagnostics[:cp.diagsLen]
	p.tokens.Rewind(cp.tokenPos)
	p.State = cp.state.Clone()
	p.log.Debugf("rewound speculation %d to token %d", cp.depth, cp.tokenPos)
}

// Commit keeps everything recorded since cp.
func (p *Parser) Commit(cp Checkpoint) {
	p.resolve(cp, "Commit")
	if len(p.checkpoints) == 0 {
		p.patches = p.patches[:0]
	}
}

// IsSpeculating reports whether a checkpoint is open.
func (p *Parser) IsSpeculating() bool {
	return len(p.checkpoints) > 0
}

// Speculation is what a rule run under TryParse reports. Certain means the
// production is definitely the right one even if parts of it are invalid;
// an uncertain invalid result is treated as a wrong guess.
type Speculation struct {
	Syntax  ParsedSyntax
	Certain bool
}

// SpeculativeRule is a grammar rule that can be attempted and undone.
type SpeculativeRule func(p *Parser) Speculation

// TryParse runs rule from a checkpoint. The attempt is committed when the
// rule produced a node that is valid or that the rule is certain about;
// otherwise every effect of the attempt is rewound and ok is false.
func (p *Parser) TryParse(rule SpeculativeRule) (ParsedSyntax, bool) {
	cp := p.Checkpoint()
	res := rule(p)
	if res.Syntax.IsValid() || (res.Syntax.IsInvalid() && res.Certain) {
		p.Commit(cp)
		return res.Syntax, true
	}
	p.Rewind(cp)
	return Absent(), false
}

// ErrIfNotTS reports a TypeScript-only construct in a non-TypeScript file
// and retags it as an error node. The node itself is kept.
func (cm *CompletedMarker) ErrIfNotTS(p *Parser, message string) {
	if FeatureTypeScript.IsSupported(p) {
		return
	}
	p.Error(p.ErrBuilder(message).Primary(cm.Range(p), ""))
	cm.ChangeKind(p, KindError)
}
