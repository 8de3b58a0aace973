package parser

// ParserProgress guards loops that re-check the cursor: every iteration must
// consume at least one token.
type ParserProgress struct {
	last int
	seen bool
}

// AssertProgressing panics with an InternalError when the cursor has not
// moved since the previous call.
func (pp *ParserProgress) AssertProgressing(p *Parser) {
	pos := p.tokens.Position()
	if pp.seen && pos <= pp.last {
		internalErrorf("parser stopped making progress at token %d (%s)", pos, p.Cur())
	}
	pp.last = pos
	pp.seen = true
}
