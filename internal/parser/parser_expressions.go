package parser

import (
	"math"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/errors"
	"github.com/xs-lang/xs/internal/lexer"
)

// itemKind classifies an entry of a linearized expression.
type itemKind int

const (
	itemOperand itemKind = iota
	itemUnary
	itemBinary
	itemCall
	itemSubscript
)

// exprItem is one entry of a linearized expression. Operators carry their
// effective type in op, so the token itself stays untouched: a `-` token
// appears here as TokenUnaryMinus when it sits in prefix position.
type exprItem struct {
	kind itemKind
	op   lexer.TokenType
	tok  lexer.Token

	node  ast.Node   // itemOperand
	args  []ast.Node // itemCall
	index ast.Node   // itemSubscript
}

// parseExpression linearizes the longest expression at the cursor and
// reduces it to a tree. With allowEmpty an absent expression yields nil
// instead of an error.
func (p *Parser) parseExpression(allowEmpty bool) (ast.Node, error) {
	items, err := p.linearize()
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		if allowEmpty {
			return nil, nil
		}
		tok := p.current()
		return nil, p.errorAt(tok, errors.CodeExpectedExpression, "expect expression, got `%s`", tok.Text())
	}

	last := items[len(items)-1]
	if last.kind == itemUnary || last.kind == itemBinary {
		return nil, p.errorAt(last.tok, errors.CodeIncompleteExpression,
			"incomplete expression, end with `%s`", last.tok.Literal)
	}

	return p.buildTree(items, 0, len(items))
}

// linearize collects operands and operators until the expression ends.
func (p *Parser) linearize() ([]exprItem, error) {
	var items []exprItem
	haveOperand := false

	for {
		tok := p.current()

		if tok.Type.IsExpressionOperator() {
			if !haveOperand {
				op, ok := tok.Type.ToUnary()
				if !ok {
					return nil, p.errorAt(tok, errors.CodeExpectedUnary,
						"expect unary operator, got `%s`", tok.Literal)
				}
				items = append(items, exprItem{kind: itemUnary, op: op, tok: tok})
			} else {
				if !tok.Type.IsBinaryOperator() {
					return nil, p.errorAt(tok, errors.CodeUnexpectedOperator,
						"unexpected operator `%s`", tok.Literal)
				}
				items = append(items, exprItem{kind: itemBinary, op: tok.Type, tok: tok})
				haveOperand = false
			}
			p.nextToken()
			continue
		}

		if haveOperand && tok.Type == lexer.TokenLParen {
			args, err := p.parseCallArguments()
			if err != nil {
				return nil, err
			}
			items = append(items, exprItem{kind: itemCall, op: lexer.TokenCall, tok: tok, args: args})
			continue
		}

		if haveOperand && tok.Type == lexer.TokenLBracket {
			index, err := p.parseSubscriptIndex()
			if err != nil {
				return nil, err
			}
			items = append(items, exprItem{kind: itemSubscript, op: lexer.TokenSubscript, tok: tok, index: index})
			continue
		}

		if haveOperand {
			return items, nil
		}

		node, err := p.parsePrimary()
		if err != nil {
			return nil, err
		}
		if node == nil {
			return items, nil
		}
		items = append(items, exprItem{kind: itemOperand, tok: tok, node: node})
		haveOperand = true
	}
}

// buildTree reduces items[begin:end]. The operator with the lowest
// precedence becomes the root; ties go to the rightmost binary operator
// and to the leftmost unary one, which makes binary chains left
// associative and prefix chains right associative.
func (p *Parser) buildTree(items []exprItem, begin, end int) (ast.Node, error) {
	opi := -1
	best := math.MaxInt
	for i := begin; i < end; i++ {
		it := items[i]
		if it.kind == itemOperand {
			continue
		}
		prec := it.op.Precedence()
		if it.kind == itemUnary && prec < best || it.kind != itemUnary && prec <= best {
			opi = i
			best = prec
		}
	}

	if opi == -1 {
		if end-begin != 1 {
			panic(errors.Internal(errors.CodeIncompleteExpression,
				"expression range [%d,%d) reduces to %d operands", begin, end, end-begin))
		}
		return items[begin].node, nil
	}

	it := items[opi]
	switch it.kind {
	case itemUnary:
		if opi != begin {
			return nil, p.errorAt(it.tok, errors.CodeUnexpectedOperator, "unexpected operator `%s`", it.tok.Literal)
		}
		operand, err := p.buildTree(items, opi+1, end)
		if err != nil {
			return nil, err
		}
		return p.arena.NewUnaryOperator(it.tok, it.op, operand), nil

	case itemBinary:
		left, err := p.buildTree(items, begin, opi)
		if err != nil {
			return nil, err
		}
		right, err := p.buildTree(items, opi+1, end)
		if err != nil {
			return nil, err
		}
		return p.arena.NewBinaryOperator(it.tok, left, right), nil
	}

	// Postfix items always end their range.
	if opi+1 != end {
		panic(errors.Internal(errors.CodeUnexpectedOperator, "postfix %s followed by %d items", it.op, end-opi-1))
	}
	base, err := p.buildTree(items, begin, opi)
	if err != nil {
		return nil, err
	}
	if it.kind == itemCall {
		return p.arena.NewFuncCall(it.tok, base, it.args), nil
	}
	return p.arena.NewSubscript(it.tok, base, it.index), nil
}

// parsePrimary parses a literal, identifier, `self`, parenthesized
// expression, tuple or function literal. It returns nil when the cursor
// does not start a primary.
func (p *Parser) parsePrimary() (ast.Node, error) {
	tok := p.current()

	switch {
	case tok.Kind == lexer.KindLiteral:
		p.nextToken()
		return p.arena.NewLiteral(tok), nil
	case tok.Type == lexer.TokenIdentifier, tok.Type == lexer.TokenSelf:
		p.nextToken()
		return p.arena.NewIdentifier(tok), nil
	case tok.Type == lexer.TokenLParen:
		return p.parseParenExpression()
	case tok.Type == lexer.TokenFn:
		fn, err := p.parseDefineFunc(ast.FuncValue)
		if err != nil {
			return nil, err
		}
		return fn, nil
	}
	return nil, nil
}

// parseParenExpression parses `(` expr `)` or the tuple `(` expr `,` ... `)`.
func (p *Parser) parseParenExpression() (ast.Node, error) {
	open := p.current()
	p.nextToken()

	first, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}

	if !p.currentTokenIs(lexer.TokenComma) {
		if _, err := p.expect(lexer.TokenRParen); err != nil {
			return nil, err
		}
		return first, nil
	}

	elements := []ast.Node{first}
	for p.currentTokenIs(lexer.TokenComma) {
		p.nextToken()
		if p.currentTokenIs(lexer.TokenRParen) {
			break
		}
		el, err := p.parseExpression(false)
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
	}
	if !p.currentTokenIs(lexer.TokenRParen) {
		return nil, p.unexpected(quote(lexer.TokenComma, lexer.TokenRParen))
	}
	p.nextToken()

	return p.arena.NewTuple(open, elements), nil
}

// parseCallArguments parses `(` [expr {`,` expr}] `)`.
func (p *Parser) parseCallArguments() ([]ast.Node, error) {
	p.nextToken() // (

	args := []ast.Node{}
	for !p.currentTokenIs(lexer.TokenRParen) {
		arg, err := p.parseExpression(false)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)

		if p.currentTokenIs(lexer.TokenComma) {
			p.nextToken()
			continue
		}
		if !p.currentTokenIs(lexer.TokenRParen) {
			return nil, p.unexpected(quote(lexer.TokenComma, lexer.TokenRParen))
		}
	}
	p.nextToken() // )

	return args, nil
}

// parseSubscriptIndex parses `[` expr `]`.
func (p *Parser) parseSubscriptIndex() (ast.Node, error) {
	p.nextToken() // [

	index, err := p.parseExpression(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(lexer.TokenRBracket); err != nil {
		return nil, err
	}
	return index, nil
}
