package lexer

// InsertSemicolons is an optional pass over a raw token stream that adds
// the `;` terminators the grammar requires, so that sources may end
// statements with a line break instead.
//
// A `;` is inserted after the last token of a line when that token is an
// identifier, a literal, one of the keywords self, break, continue and
// return, or one of `)`, `]` and `}`, unless the first token of the next
// line is `;` or `else`. The same rule applies before EOF. Comments are
// ignored when looking for the neighbouring tokens. The grammar itself
// never relies on this pass.
func InsertSemicolons(raw []Token) []Token {
	out := make([]Token, 0, len(raw)+len(raw)/4)

	var last *Token
	for i := range raw {
		tok := raw[i]
		if tok.Kind == KindComment {
			out = append(out, tok)
			continue
		}

		if last != nil && endsStatement(last.Type) {
			brokeLine := tok.Pos.Line > last.End.Line || tok.Type == TokenEOF
			if brokeLine && tok.Type != TokenSemicolon && tok.Type != TokenElse {
				out = append(out, Token{
					Kind:    KindOperator,
					Type:    TokenSemicolon,
					Literal: ";",
					Pos:     last.End,
					End:     last.End,
					Index:   -1,
				})
			}
		}

		out = append(out, tok)
		last = &raw[i]
	}
	return out
}

func endsStatement(tt TokenType) bool {
	switch tt {
	case TokenIdentifier, TokenInteger, TokenFloat, TokenString, TokenBoolean,
		TokenSelf, TokenBreak, TokenContinue, TokenReturn,
		TokenRParen, TokenRBracket, TokenRBrace:
		return true
	}
	return false
}
