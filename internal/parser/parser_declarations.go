package parser

import (
	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// parseIdentifier consumes an identifier.
func (p *Parser) parseIdentifier() (*ast.Identifier, error) {
	tok, err := p.expect(lexer.TokenIdentifier)
	if err != nil {
		return nil, err
	}
	return p.arena.NewIdentifier(tok), nil
}

// parseDeclVar parses `var` name [`:` Type]. Without a type the variable
// must be initialized (`=`) or, as an each binding, be followed by `in`.
func (p *Parser) parseDeclVar(inLoop bool) (*ast.DeclVar, error) {
	tok := p.current()
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	if !p.currentTokenIs(lexer.TokenColon) && !p.valueFollows(inLoop) {
		return nil, p.errorAt(name.Token(), errors.CodeUntypedVariable,
			"cannot determine the type of variable `%s`", name.Name)
	}

	var typ *ast.Type
	if p.currentTokenIs(lexer.TokenColon) {
		p.nextToken()
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	}
	return p.arena.NewDeclVar(tok, name, typ), nil
}

// parseDeclConst parses `const` name [`:` Type], which must be followed by
// its value.
func (p *Parser) parseDeclConst(inLoop bool) (*ast.DeclConst, error) {
	tok := p.current()
	p.nextToken()

	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}

	var typ *ast.Type
	if p.currentTokenIs(lexer.TokenColon) {
		p.nextToken()
		if typ, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	if !p.valueFollows(inLoop) {
		return nil, p.errorAt(name.Token(), errors.CodeConstValueRequired,
			"constant value required for `%s`", name.Name)
	}
	return p.arena.NewDeclConst(tok, name, typ), nil
}

// valueFollows reports whether the cursor is at the token that introduces
// a declaration's value: `=` in statements, `in` in each bindings.
func (p *Parser) valueFollows(inLoop bool) bool {
	if inLoop {
		return p.currentTokenIs(lexer.TokenIn)
	}
	return p.currentTokenIs(lexer.TokenAssign)
}

// parseField parses [`const`] name `:` Type [`=` expr].
func (p *Parser) parseField() (*ast.Field, error) {
	field := p.arena.NewField(p.current())

	if p.currentTokenIs(lexer.TokenConst) {
		field.IsConst = true
		p.nextToken()
	}

	var err error
	if field.Name, err = p.parseIdentifier(); err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenColon); err != nil {
		return nil, err
	}
	if field.Type, err = p.parseType(); err != nil {
		return nil, err
	}

	if p.currentTokenIs(lexer.TokenAssign) {
		p.nextToken()
		if field.Default, err = p.parseExpression(false); err != nil {
			return nil, err
		}
	}
	return field, nil
}

// parseDefineName parses name [`<` name {`,` name} `>`].
func (p *Parser) parseDefineName() (*ast.DefineName, error) {
	tok := p.current()
	name, err := p.parseIdentifier()
	if err != nil {
		return nil, err
	}
	def := p.arena.NewDefineName(tok, name)

	if !p.currentTokenIs(lexer.TokenLt) {
		return def, nil
	}
	p.nextToken()

	for !p.currentTokenIs(lexer.TokenGt) {
		param, err := p.parseIdentifier()
		if err != nil {
			return nil, err
		}
		def.Params = append(def.Params, param)

		if p.currentTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.currentTokenIs(lexer.TokenGt) {
			return nil, p.unexpected(quote(lexer.TokenComma, lexer.TokenGt))
		}
	}
	p.nextToken() // >

	return def, nil
}

// parseDefineFunc parses `fn` [name] `(` fields `)` [`->` Type] [block]
// according to mode.
func (p *Parser) parseDefineFunc(mode ast.FuncMode) (*ast.DefineFunc, error) {
	tok := p.current()
	p.nextToken()

	fn := p.arena.NewDefineFunc(tok, mode, p.scope)
	defer p.enterScope(fn)()

	var err error
	if mode.NeedsName() {
		if !p.currentTokenIs(lexer.TokenIdentifier) {
			cur := p.current()
			return nil, p.errorAt(cur, errors.CodeMissingName, "expect function name, got `%s`", cur.Text())
		}
		if fn.Name, err = p.parseDefineName(); err != nil {
			return nil, err
		}
	}

	if _, err := p.expect(lexer.TokenLParen); err != nil {
		return nil, err
	}
	for !p.currentTokenIs(lexer.TokenRParen) {
		param, err := p.parseField()
		if err != nil {
			return nil, err
		}
		fn.Params = append(fn.Params, param)

		if p.currentTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.currentTokenIs(lexer.TokenRParen) {
			return nil, p.unexpected(quote(lexer.TokenComma, lexer.TokenRParen))
		}
	}
	p.nextToken() // )

	if p.currentTokenIs(lexer.TokenArrow) {
		p.nextToken()
		if fn.ReturnType, err = p.parseType(); err != nil {
			return nil, err
		}
	}

	switch {
	case mode.NeedsBody():
		if !p.currentTokenIs(lexer.TokenLBrace) {
			cur := p.current()
			return nil, p.errorAt(cur, errors.CodeMissingBody, "expect `{`, got `%s`", cur.Text())
		}
		if fn.Body, err = p.parseBlock(); err != nil {
			return nil, err
		}
	case mode == ast.FuncInterfaceSig && p.currentTokenIs(lexer.TokenLBrace):
		return nil, p.errorAt(p.current(), errors.CodeUnexpectedBody, "unexpected body in interface method signature")
	}
	return fn, nil
}

// parseMembers parses `{` member {sep member} `}` where sep is `;` or `,`
// and may repeat. With strict unset a member may follow the previous one
// directly.
func (p *Parser) parseMembers(strict bool, member func() error) error {
	if _, err := p.expect(lexer.TokenLBrace); err != nil {
		return err
	}
	for {
		for p.currentTokenIs(lexer.TokenSemicolon) || p.currentTokenIs(lexer.TokenComma) {
			p.nextToken()
		}
		if p.currentTokenIs(lexer.TokenRBrace) {
			p.nextToken()
			return nil
		}
		if err := member(); err != nil {
			return err
		}
		if !strict {
			continue
		}
		switch p.current().Type {
		case lexer.TokenSemicolon, lexer.TokenComma, lexer.TokenRBrace:
		default:
			return p.unexpected(quote(lexer.TokenComma, lexer.TokenSemicolon, lexer.TokenRBrace))
		}
	}
}

// parseDefineStruct parses `struct` DefineName `{` fields `}`.
func (p *Parser) parseDefineStruct() (*ast.DefineStruct, error) {
	def := p.arena.NewDefineStruct(p.current())
	p.nextToken()

	var err error
	if def.Name, err = p.parseDefineName(); err != nil {
		return nil, err
	}

	err = p.parseMembers(true, func() error {
		field, err := p.parseField()
		if err != nil {
			return err
		}
		def.Fields = append(def.Fields, field)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

// parseDefineImpl parses `impl` DefineName [`:` DefineName] `{` fns `}`.
func (p *Parser) parseDefineImpl() (*ast.DefineImpl, error) {
	def := p.arena.NewDefineImpl(p.current())
	p.nextToken()

	var err error
	if def.Name, err = p.parseDefineName(); err != nil {
		return nil, err
	}
	if p.currentTokenIs(lexer.TokenColon) {
		p.nextToken()
		if def.Interface, err = p.parseDefineName(); err != nil {
			return nil, err
		}
	}

	err = p.parseMembers(false, func() error {
		if !p.currentTokenIs(lexer.TokenFn) {
			return p.unexpected(quote(lexer.TokenFn))
		}
		method, err := p.parseDefineFunc(ast.FuncNormal)
		if err != nil {
			return err
		}
		def.Methods = append(def.Methods, method)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}

// parseDefineInterface parses `interface` DefineName `{` signatures `}`.
func (p *Parser) parseDefineInterface() (*ast.DefineInterface, error) {
	def := p.arena.NewDefineInterface(p.current())
	p.nextToken()

	var err error
	if def.Name, err = p.parseDefineName(); err != nil {
		return nil, err
	}

	err = p.parseMembers(true, func() error {
		if !p.currentTokenIs(lexer.TokenFn) {
			return p.unexpected(quote(lexer.TokenFn))
		}
		sig, err := p.parseDefineFunc(ast.FuncInterfaceSig)
		if err != nil {
			return err
		}
		def.Methods = append(def.Methods, sig)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return def, nil
}
