package parser

// TokenSource is a read-only cursor over a pre-lexed token stream. The last
// token is always TokenEOF; reading past it keeps returning it.
type TokenSource struct {
	tokens []Token
	pos    int
}

func NewTokenSource(tokens []Token) *TokenSource {
	if len(tokens) == 0 || tokens[len(tokens)-1].Kind != TokenEOF {
		end := 0
		if len(tokens) > 0 {
			end = tokens[len(tokens)-1].Range.End
		}
		owned := make([]Token, len(tokens), len(tokens)+1)
		copy(owned, tokens)
		tokens = append(owned, Token{Kind: TokenEOF, Range: TextRange{Start: end, End: end}})
	}
	return &TokenSource{tokens: tokens}
}

func (s *TokenSource) Tokens() []Token {
	return s.tokens
}

// Position is the index of the current token.
func (s *TokenSource) Position() int {
	return s.pos
}

// Rewind moves the cursor back to a position obtained from Position.
func (s *TokenSource) Rewind(pos int) {
	if pos < 0 || pos > s.pos {
		panic(InternalError{Message: "token source rewound forward or out of range"})
	}
	s.pos = pos
}

func (s *TokenSource) Nth(n int) *Token {
	i := s.pos + n
	if i >= len(s.tokens) {
		i = len(s.tokens) - 1
	}
	return &s.tokens[i]
}

func (s *TokenSource) Cur() *Token {
	return s.Nth(0)
}

// Bump advances past the current token and returns its index.
func (s *TokenSource) Bump() int {
	i := s.pos
	if s.tokens[i].Kind != TokenEOF {
		s.pos++
	}
	return i
}

func (s *TokenSource) AtEOF() bool {
	return s.Cur().Kind == TokenEOF
}

func (s *TokenSource) rangeIsEOF(r TextRange) bool {
	eof := s.tokens[len(s.tokens)-1].Range
	return r.Start >= eof.Start && s.AtEOF()
}
