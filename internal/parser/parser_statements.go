package parser

import (
	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// parseRootBlock parses statements up to EOF. The root block has no braces.
func (p *Parser) parseRootBlock() (*ast.Block, error) {
	block := p.arena.NewBlock(lexer.Token{Pos: p.current().Pos, Index: -1}, p.scope)
	defer p.enterScope(block)()

	for !p.currentTokenIs(lexer.TokenEOF) {
		if err := p.parseStatement(block); err != nil {
			return nil, err
		}
	}
	return block, nil
}

// parseBlock parses `{` statements `}`.
func (p *Parser) parseBlock() (*ast.Block, error) {
	open, err := p.expect(lexer.TokenLBrace)
	if err != nil {
		return nil, err
	}

	block := p.arena.NewBlock(open, p.scope)
	defer p.enterScope(block)()

	for !p.currentTokenIs(lexer.TokenRBrace) {
		if p.currentTokenIs(lexer.TokenEOF) {
			return nil, p.unexpected(quote(lexer.TokenRBrace))
		}
		if err := p.parseStatement(block); err != nil {
			return nil, err
		}
	}
	p.nextToken() // }

	return block, nil
}

// parseStatement parses one statement into block. Assignments rewrite the
// last statement of block instead of appending.
func (p *Parser) parseStatement(block *ast.Block) error {
	tok := p.current()

	var (
		stmt ast.Node
		err  error
	)

	switch tok.Type {
	case lexer.TokenSemicolon:
		p.nextToken()
		return nil
	case lexer.TokenVar:
		stmt, err = nodeOf(p.parseDeclVar(false))
	case lexer.TokenConst:
		stmt, err = nodeOf(p.parseDeclConst(false))
	case lexer.TokenIf:
		stmt, err = nodeOf(p.parseIf())
	case lexer.TokenLoop:
		stmt, err = nodeOf(p.parseLoop())
	case lexer.TokenFn:
		stmt, err = nodeOf(p.parseDefineFunc(ast.FuncNormal))
	case lexer.TokenStruct:
		stmt, err = nodeOf(p.parseDefineStruct())
	case lexer.TokenImpl:
		stmt, err = nodeOf(p.parseDefineImpl())
	case lexer.TokenInterface:
		stmt, err = nodeOf(p.parseDefineInterface())
	case lexer.TokenReturn:
		stmt, err = nodeOf(p.parseReturn())
	case lexer.TokenBreak:
		p.nextToken()
		stmt = p.arena.NewBreak(tok, false)
	case lexer.TokenContinue:
		p.nextToken()
		stmt = p.arena.NewContinue(tok)
	case lexer.TokenLBrace:
		stmt, err = nodeOf(p.parseBlock())
	default:
		if tok.Type.IsAssignOperator() {
			return p.parseAssign(block)
		}
		stmt, err = p.parseExpression(true)
		if err == nil && stmt == nil {
			return p.errorAt(tok, errors.CodeUnmatchedStatement, "unmatched statement, got `%s`", tok.Text())
		}
	}

	if err != nil {
		return err
	}
	block.Statements = append(block.Statements, stmt)
	return nil
}

// nodeOf widens a typed parse result to ast.Node without producing a
// typed nil on error.
func nodeOf[T ast.Node](n T, err error) (ast.Node, error) {
	if err != nil {
		return nil, err
	}
	return n, nil
}

// parseAssign turns the last statement of block into the target of an
// Assign built from the operator at the cursor and the expression after it.
func (p *Parser) parseAssign(block *ast.Block) error {
	op := p.current()

	target := block.Last()
	if target == nil {
		return p.errorAt(op, errors.CodeLvalueNotFound, "lvalue not found")
	}
	if !assignable(target, op.Type) {
		return p.errorAt(op, errors.CodeInvalidLvalue, "invalid assignment target %s", target.Kind())
	}
	p.nextToken()

	value, err := p.parseExpression(false)
	if err != nil {
		return err
	}

	block.Statements[len(block.Statements)-1] = p.arena.NewAssign(op, target, value)
	return nil
}

// assignable reports whether target may stand left of op. Any statement
// may; declarations only take a plain `=`.
func assignable(target ast.Node, op lexer.TokenType) bool {
	switch target.(type) {
	case *ast.DeclVar, *ast.DeclConst:
		return op == lexer.TokenAssign
	}
	return true
}

// parseReturn parses `return` [expr].
func (p *Parser) parseReturn() (*ast.Return, error) {
	tok := p.current()
	p.nextToken()

	value, err := p.parseExpression(true)
	if err != nil {
		return nil, err
	}
	return p.arena.NewReturn(tok, value), nil
}

// parseIf parses `if` expr block [`else` (if | block)].
func (p *Parser) parseIf() (*ast.If, error) {
	tok := p.current()
	p.nextToken()

	node := p.arena.NewIf(tok, p.scope)
	defer p.enterScope(node)()

	cond, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	node.Cond = cond

	if node.Then, err = p.parseBlock(); err != nil {
		return nil, err
	}

	if !p.currentTokenIs(lexer.TokenElse) {
		return node, nil
	}
	p.nextToken()

	switch p.current().Type {
	case lexer.TokenIf:
		node.Else, err = nodeOf(p.parseIf())
	case lexer.TokenLBrace:
		node.Else, err = nodeOf(p.parseBlock())
	default:
		return nil, p.unexpected(quote(lexer.TokenLBrace, lexer.TokenIf))
	}
	if err != nil {
		return nil, err
	}
	return node, nil
}

// parseLoop parses `loop` followed by a block, an if chain or an each.
// For an if chain a Break is appended to the last branch, so the loop
// runs while some condition of the chain holds.
func (p *Parser) parseLoop() (*ast.Loop, error) {
	tok := p.current()
	p.nextToken()

	loop := p.arena.NewLoop(tok, p.scope)
	defer p.enterScope(loop)()

	var err error
	switch p.current().Type {
	case lexer.TokenLBrace:
		loop.Body, err = nodeOf(p.parseBlock())
	case lexer.TokenIf:
		var chain *ast.If
		if chain, err = p.parseIf(); err == nil {
			p.appendBreak(chain, tok)
			loop.Body = chain
		}
	case lexer.TokenEach:
		loop.Body, err = nodeOf(p.parseEach())
	default:
		return nil, p.unexpected(quote(lexer.TokenLBrace, lexer.TokenIf, lexer.TokenEach))
	}
	if err != nil {
		return nil, err
	}
	return loop, nil
}

// appendBreak adds a synthesized Break to the terminal branch of chain,
// creating an empty else block when the chain has none.
func (p *Parser) appendBreak(chain *ast.If, loopTok lexer.Token) {
	node := chain
	for {
		switch e := node.Else.(type) {
		case *ast.If:
			node = e
			continue
		case *ast.Block:
			e.Statements = append(e.Statements, p.arena.NewBreak(loopTok, true))
			return
		}
		els := p.arena.NewBlock(lexer.Token{Pos: loopTok.Pos, Index: -1}, node)
		els.Statements = append(els.Statements, p.arena.NewBreak(loopTok, true))
		node.Else = els
		return
	}
}

// parseEach parses `each` binding `in` expr block.
func (p *Parser) parseEach() (*ast.Each, error) {
	tok := p.current()
	p.nextToken()

	each := p.arena.NewEach(tok, p.scope)
	defer p.enterScope(each)()

	var err error
	switch cur := p.current(); cur.Type {
	case lexer.TokenIdentifier:
		p.nextToken()
		each.Binding = p.arena.NewIdentifier(cur)
	case lexer.TokenVar:
		each.Binding, err = nodeOf(p.parseDeclVar(true))
	case lexer.TokenConst:
		each.Binding, err = nodeOf(p.parseDeclConst(true))
	default:
		return nil, p.unexpected(quote(lexer.TokenVar, lexer.TokenConst) + " or identifier")
	}
	if err != nil {
		return nil, err
	}

	if _, err := p.expect(lexer.TokenIn); err != nil {
		return nil, err
	}

	if each.Iterable, err = p.parseExpression(false); err != nil {
		return nil, err
	}
	if each.Body, err = p.parseBlock(); err != nil {
		return nil, err
	}
	return each, nil
}
