package parser

import (
	"strconv"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// parseType parses [`&`] TypeName [`[` [integer] `]`].
func (p *Parser) parseType() (*ast.Type, error) {
	typ := p.arena.NewType(p.current())

	if p.currentTokenIs(lexer.TokenAmpersand) {
		typ.IsReference = true
		p.nextToken()
	}

	var err error
	if typ.Name, err = p.parseTypeName(); err != nil {
		return nil, err
	}

	if !p.currentTokenIs(lexer.TokenLBracket) {
		return typ, nil
	}
	p.nextToken()
	typ.IsArray = true

	if !p.currentTokenIs(lexer.TokenRBracket) {
		tok := p.current()
		n, err := strconv.Atoi(tok.Literal)
		if tok.Type != lexer.TokenInteger || err != nil || n <= 0 {
			return nil, p.errorAt(tok, errors.CodeInvalidArrayLength, "invalid array length `%s`", tok.Text())
		}
		typ.Length = n
		p.nextToken()
	}

	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return typ, nil
}

// parseTypeName parses a named type with optional generic arguments, a
// tuple type or a function type signature.
func (p *Parser) parseTypeName() (ast.Node, error) {
	tok := p.current()

	switch tok.Type {
	case lexer.TokenIdentifier:
		return nodeOf(p.parseNamedType())
	case lexer.TokenLParen:
		return nodeOf(p.parseTupleType())
	case lexer.TokenFn:
		return nodeOf(p.parseDefineFunc(ast.FuncTypeSig))
	}
	return nil, p.errorAt(tok, errors.CodeUnexpectedToken, "expect type name, got `%s`", tok.Text())
}

// parseNamedType parses identifier [`<` Type {`,` Type} `>`].
func (p *Parser) parseNamedType() (*ast.TypeName, error) {
	tok := p.current()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	tn := p.arena.NewTypeName(tok, name)

	if !p.currentTokenIs(lexer.TokenLt) {
		return tn, nil
	}
	p.nextToken()

	if tn.Args, err = p.parseTypeList(lexer.TokenGt); err != nil {
		return nil, err
	}
	return tn, nil
}

// parseTupleType parses `(` [Type {`,` Type}] `)`.
func (p *Parser) parseTupleType() (*ast.TupleType, error) {
	tt := p.arena.NewTupleType(p.current())
	p.nextToken()

	var err error
	if tt.Elements, err = p.parseTypeList(lexer.TokenRParen); err != nil {
		return nil, err
	}
	return tt, nil
}

// parseTypeList parses comma separated types up to and including closing.
func (p *Parser) parseTypeList(closing lexer.TokenType) ([]*ast.Type, error) {
	var types []*ast.Type
	for !p.currentTokenIs(closing) {
		typ, err := p.parseType()
		if err != nil {
			return nil, err
		}
		types = append(types, typ)

		if p.currentTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.currentTokenIs(closing) {
			return nil, p.unexpected(quote(lexer.TokenComma, closing))
		}
	}
	p.nextToken()

	return types, nil
}
