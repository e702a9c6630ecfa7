package lexer

import "github.com/xs-lang/xs/internal/position"

// Sequence is the immutable, indexable token stream the parser reads.
// Comments are removed and every token knows its index and sequence.
type Sequence struct {
	tokens []Token
	eof    Token
}

// NewSequence filters comments out of a raw stream, assigns indices and
// links the tokens. A trailing EOF token in raw becomes the sentinel
// returned for out-of-range lookups; one is synthesized if absent.
func NewSequence(raw []Token) *Sequence {
	s := &Sequence{tokens: make([]Token, 0, len(raw))}

	var last position.Position
	haveEOF := false
	for _, tok := range raw {
		if tok.Kind == KindComment {
			continue
		}
		if tok.Type == TokenEOF {
			s.eof = tok
			haveEOF = true
			break
		}
		last = tok.End
		s.tokens = append(s.tokens, tok)
	}
	if !haveEOF {
		s.eof = Token{Type: TokenEOF, Pos: last, End: last}
	}

	for i := range s.tokens {
		s.tokens[i].Index = i
		s.tokens[i].seq = s
	}
	s.eof.Index = len(s.tokens)
	s.eof.seq = s
	return s
}

// Len returns the number of tokens, the EOF sentinel excluded.
func (s *Sequence) Len() int {
	return len(s.tokens)
}

// At returns the token at index i, or the EOF sentinel outside the range.
func (s *Sequence) At(i int) Token {
	if i < 0 || i >= len(s.tokens) {
		return s.eof
	}
	return s.tokens[i]
}

// EOF returns the sentinel token.
func (s *Sequence) EOF() Token {
	return s.eof
}

// Tokens returns a copy of the tokens, the EOF sentinel excluded.
func (s *Sequence) Tokens() []Token {
	out := make([]Token, len(s.tokens))
	copy(out, s.tokens)
	return out
}

// Options controls Scan.
type Options struct {
	Filename string
	// AutoSemicolons runs InsertSemicolons over the raw stream.
	AutoSemicolons bool
}

// Scan tokenizes input and builds the parser's Sequence.
func Scan(input string, opts Options) (*Sequence, error) {
	raw, err := NewWithFilename(input, opts.Filename).Tokenize()
	if err != nil {
		return nil, err
	}
	if opts.AutoSemicolons {
		raw = InsertSemicolons(raw)
	}
	return NewSequence(raw), nil
}
