// Package parser implements the xs recursive descent parser.
//
// The parser reads an immutable lexer.Sequence through a cursor and builds
// nodes in an ast.Arena. The first error aborts the parse.
package parser

import (
	"fmt"
	"strings"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// Parser represents the recursive descent parser
type Parser struct {
	tokens *lexer.Sequence
	pos    int

	arena *ast.Arena
	scope ast.Scope // innermost scope node under construction
}

// NewParser creates a new parser over tokens that allocates into arena.
func NewParser(tokens *lexer.Sequence, arena *ast.Arena) *Parser {
	return &Parser{tokens: tokens, arena: arena}
}

// Parse parses the whole sequence as the statements of the root Block.
func (p *Parser) Parse() (*ast.Block, error) {
	p.pos = 0
	p.scope = nil
	return p.parseRootBlock()
}

// ParseString tokenizes and parses input with default options.
func ParseString(input string) (*ast.Block, error) {
	seq, err := lexer.Scan(input, lexer.Options{})
	if err != nil {
		return nil, err
	}
	return NewParser(seq, ast.NewArena()).Parse()
}

// ====== Cursor ======

// current returns the token under the cursor.
func (p *Parser) current() lexer.Token {
	return p.tokens.At(p.pos)
}

// peek returns the token after the cursor.
func (p *Parser) peek() lexer.Token {
	return p.current().Next(1)
}

// nextToken advances the cursor.
func (p *Parser) nextToken() {
	if p.pos < p.tokens.Len() {
		p.pos++
	}
}

// currentTokenIs checks if the current token is of the given type
func (p *Parser) currentTokenIs(tokenType lexer.TokenType) bool {
	return p.current().Type == tokenType
}

// expect consumes the current token if it has type tt.
func (p *Parser) expect(tt lexer.TokenType) (lexer.Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, p.unexpected(quote(tt))
	}
	p.nextToken()
	return tok, nil
}

// enterScope makes s the innermost scope and returns a func restoring the
// previous one.
func (p *Parser) enterScope(s ast.Scope) func() {
	prev := p.scope
	p.scope = s
	return func() { p.scope = prev }
}

// ====== Errors ======

// unexpected reports that the current token is not what the rule needs.
// want is already quoted, e.g. "`,` or `)`".
func (p *Parser) unexpected(want string) error {
	tok := p.current()
	return errors.Parse(tok.Pos, errors.CodeUnexpectedToken, "expect %s, got `%s`", want, tok.Text())
}

func (p *Parser) errorAt(tok lexer.Token, code, format string, args ...interface{}) error {
	err := errors.Parse(tok.Pos, code, format, args...)
	err.End = tok.End
	return err
}

// quote renders token types as they appear in expectation messages.
func quote(types ...lexer.TokenType) string {
	parts := make([]string, len(types))
	for i, tt := range types {
		s, ok := lexer.Spelling(tt)
		if !ok {
			s = strings.ToLower(tt.String())
		}
		parts[i] = fmt.Sprintf("`%s`", s)
	}
	if len(parts) <= 2 {
		return strings.Join(parts, " or ")
	}
	return strings.Join(parts[:len(parts)-1], ", ") + " or " + parts[len(parts)-1]
}
