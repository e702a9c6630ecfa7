package ast

import (
	"github.com/xs-lang/xs/internal/lexer"
)

// Arena owns every node built during one parse session. Nodes are
// addressed by their NodeID and released together when the arena is
// dropped or Reset.
type Arena struct {
	nodes []Node
}

// NewArena creates an empty arena.
func NewArena() *Arena {
	return &Arena{nodes: make([]Node, 0, 256)}
}

// Len returns the number of nodes allocated so far.
func (a *Arena) Len() int {
	return len(a.nodes)
}

// Get returns the node with the given id, nil when out of range.
func (a *Arena) Get(id NodeID) Node {
	if id < 0 || int(id) >= len(a.nodes) {
		return nil
	}
	return a.nodes[id]
}

// Nodes returns every node in allocation order.
func (a *Arena) Nodes() []Node {
	return a.nodes
}

// Reset drops every node.
func (a *Arena) Reset() {
	clear(a.nodes)
	a.nodes = a.nodes[:0]
}

func (a *Arena) alloc(n Node, tok lexer.Token) {
	h := n.base()
	h.id = NodeID(len(a.nodes))
	h.tok = tok
	a.nodes = append(a.nodes, n)
}

func (a *Arena) NewLiteral(tok lexer.Token) *Literal {
	n := &Literal{Type: tok.Type, Value: tok.Literal}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewIdentifier(tok lexer.Token) *Identifier {
	n := &Identifier{Name: tok.Literal}
	a.alloc(n, tok)
	return n
}

// NewUnaryOperator records the effective prefix operator op, which may
// differ from the type of tok.
func (a *Arena) NewUnaryOperator(tok lexer.Token, op lexer.TokenType, operand Node) *UnaryOperator {
	n := &UnaryOperator{Op: op, Operand: operand}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewBinaryOperator(tok lexer.Token, left, right Node) *BinaryOperator {
	n := &BinaryOperator{Op: tok.Type, Left: left, Right: right}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewFuncCall(tok lexer.Token, callee Node, args []Node) *FuncCall {
	n := &FuncCall{Callee: callee, Args: args}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewSubscript(tok lexer.Token, base, index Node) *Subscript {
	n := &Subscript{Base: base, Index: index}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewTuple(tok lexer.Token, elements []Node) *Tuple {
	n := &Tuple{Elements: elements}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewBlock(tok lexer.Token, outer Scope) *Block {
	n := &Block{scope: scope{Outer: outer}}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDeclVar(tok lexer.Token, name *Identifier, typ *Type) *DeclVar {
	n := &DeclVar{Name: name, Type: typ}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDeclConst(tok lexer.Token, name *Identifier, typ *Type) *DeclConst {
	n := &DeclConst{Name: name, Type: typ}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewAssign(tok lexer.Token, target, value Node) *Assign {
	n := &Assign{Op: tok.Type, Target: target, Value: value}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewReturn(tok lexer.Token, value Node) *Return {
	n := &Return{Value: value}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewIf(tok lexer.Token, outer Scope) *If {
	n := &If{scope: scope{Outer: outer}}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewLoop(tok lexer.Token, outer Scope) *Loop {
	n := &Loop{scope: scope{Outer: outer}}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewBreak(tok lexer.Token, synthesized bool) *Break {
	n := &Break{Synthesized: synthesized}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewContinue(tok lexer.Token) *Continue {
	n := &Continue{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewEach(tok lexer.Token, outer Scope) *Each {
	n := &Each{scope: scope{Outer: outer}}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewType(tok lexer.Token) *Type {
	n := &Type{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewTypeName(tok lexer.Token, name *Identifier) *TypeName {
	n := &TypeName{Name: name}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewTupleType(tok lexer.Token) *TupleType {
	n := &TupleType{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewField(tok lexer.Token) *Field {
	n := &Field{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDefineName(tok lexer.Token, name *Identifier) *DefineName {
	n := &DefineName{Name: name}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDefineFunc(tok lexer.Token, mode FuncMode, outer Scope) *DefineFunc {
	n := &DefineFunc{Mode: mode, scope: scope{Outer: outer}}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDefineStruct(tok lexer.Token) *DefineStruct {
	n := &DefineStruct{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDefineImpl(tok lexer.Token) *DefineImpl {
	n := &DefineImpl{}
	a.alloc(n, tok)
	return n
}

func (a *Arena) NewDefineInterface(tok lexer.Token) *DefineInterface {
	n := &DefineInterface{}
	a.alloc(n, tok)
	return n
}
