// Package ast defines the abstract syntax tree of the xs language.
//
// The variant set is closed: every node type lives in this package and
// implements Node through the embedded header. Nodes are created by an
// Arena, which owns them for the lifetime of a parse session; child
// fields are plain references into that arena.
package ast

import (
	"fmt"
	"strings"

	"github.com/xs-lang/xs/internal/lexer"
	"github.com/xs-lang/xs/internal/position"
)

// NodeID is the index of a node in its Arena.
type NodeID int

// NodeKind tags the variant of a node.
type NodeKind int

const (
	KindLiteral NodeKind = iota
	KindIdentifier
	KindUnaryOperator
	KindBinaryOperator
	KindFuncCall
	KindSubscript
	KindTuple
	KindBlock
	KindType
	KindTypeName
	KindTupleType
	KindDeclVar
	KindDeclConst
	KindAssign
	KindReturn
	KindField
	KindIf
	KindLoop
	KindBreak
	KindContinue
	KindEach
	KindDefineName
	KindDefineFunc
	KindDefineStruct
	KindDefineImpl
	KindDefineInterface
)

var kindTags = [...]string{
	KindLiteral:         "Literal",
	KindIdentifier:      "Identifier",
	KindUnaryOperator:   "UnaryOperator",
	KindBinaryOperator:  "BinaryOperator",
	KindFuncCall:        "FuncCall",
	KindSubscript:       "Subscript",
	KindTuple:           "Tuple",
	KindBlock:           "Block",
	KindType:            "Type",
	KindTypeName:        "TypeName",
	KindTupleType:       "TupleType",
	KindDeclVar:         "DeclVar",
	KindDeclConst:       "DeclConst",
	KindAssign:          "Assign",
	KindReturn:          "Return",
	KindField:           "Field",
	KindIf:              "If",
	KindLoop:            "Loop",
	KindBreak:           "Break",
	KindContinue:        "Continue",
	KindEach:            "Each",
	KindDefineName:      "DefineName",
	KindDefineFunc:      "DefineFunc",
	KindDefineStruct:    "DefineStruct",
	KindDefineImpl:      "DefineImpl",
	KindDefineInterface: "DefineInterface",
}

// String returns the human-readable tag of the variant.
func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(kindTags) {
		return kindTags[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is the interface implemented by every AST variant.
type Node interface {
	// ID returns the arena index of the node.
	ID() NodeID
	// Kind returns the variant tag.
	Kind() NodeKind
	// Token returns the source token the node was built from. Synthesized
	// nodes carry a zero token.
	Token() lexer.Token
	// Pos returns the position of the source token.
	Pos() position.Position
	// String renders the node as an S-expression.
	String() string
	// Accept implements the visitor pattern for AST traversal
	Accept(visitor Visitor) interface{}

	base() *header
}

// header is embedded by every variant.
type header struct {
	id  NodeID
	tok lexer.Token
}

func (h *header) ID() NodeID             { return h.id }
func (h *header) Token() lexer.Token     { return h.tok }
func (h *header) Pos() position.Position { return h.tok.Pos }
func (h *header) base() *header          { return h }

// Scope is implemented by the variants that open a nested binding context.
type Scope interface {
	Node
	// Enclosing returns the scope the node was parsed in, nil for the root.
	Enclosing() Scope
}

// scope links a scope node to its enclosing scope.
type scope struct {
	Outer Scope
}

func (s *scope) Enclosing() Scope { return s.Outer }

// ===== Expressions =====

// Literal is an integer, float, string or boolean constant.
type Literal struct {
	header
	Type  lexer.TokenType
	Value string
}

func (n *Literal) Kind() NodeKind { return KindLiteral }
func (n *Literal) String() string {
	if n.Type == lexer.TokenString {
		return fmt.Sprintf("%q", n.Value)
	}
	return n.Value
}
func (n *Literal) Accept(visitor Visitor) interface{} { return visitor.VisitLiteral(n) }

// Identifier is a name, `self` included.
type Identifier struct {
	header
	Name string
}

func (n *Identifier) Kind() NodeKind                     { return KindIdentifier }
func (n *Identifier) String() string                     { return n.Name }
func (n *Identifier) Accept(visitor Visitor) interface{} { return visitor.VisitIdentifier(n) }

// UnaryOperator is a prefix operator applied to Operand. Op is one of
// TokenUnaryPlus, TokenUnaryMinus, TokenRef, TokenNot and TokenTilde.
type UnaryOperator struct {
	header
	Op      lexer.TokenType
	Operand Node
}

func (n *UnaryOperator) Kind() NodeKind { return KindUnaryOperator }
func (n *UnaryOperator) String() string {
	return sexpr(OperatorText(n.Op), n.Operand)
}
func (n *UnaryOperator) Accept(visitor Visitor) interface{} { return visitor.VisitUnaryOperator(n) }

// BinaryOperator joins Left and Right; member access uses Op TokenDot.
type BinaryOperator struct {
	header
	Op    lexer.TokenType
	Left  Node
	Right Node
}

func (n *BinaryOperator) Kind() NodeKind { return KindBinaryOperator }
func (n *BinaryOperator) String() string {
	return sexpr(OperatorText(n.Op), n.Left, n.Right)
}
func (n *BinaryOperator) Accept(visitor Visitor) interface{} { return visitor.VisitBinaryOperator(n) }

// FuncCall applies Callee to Args.
type FuncCall struct {
	header
	Callee Node
	Args   []Node
}

func (n *FuncCall) Kind() NodeKind { return KindFuncCall }
func (n *FuncCall) String() string {
	return sexpr("call", append([]fmt.Stringer{n.Callee}, list(n.Args)...)...)
}
func (n *FuncCall) Accept(visitor Visitor) interface{} { return visitor.VisitFuncCall(n) }

// Subscript indexes Base.
type Subscript struct {
	header
	Base  Node
	Index Node
}

func (n *Subscript) Kind() NodeKind                     { return KindSubscript }
func (n *Subscript) String() string                     { return sexpr("index", n.Base, n.Index) }
func (n *Subscript) Accept(visitor Visitor) interface{} { return visitor.VisitSubscript(n) }

// Tuple is a parenthesized, comma-separated expression list.
type Tuple struct {
	header
	Elements []Node
}

func (n *Tuple) Kind() NodeKind                     { return KindTuple }
func (n *Tuple) String() string                     { return sexpr("tuple", list(n.Elements)...) }
func (n *Tuple) Accept(visitor Visitor) interface{} { return visitor.VisitTuple(n) }

// ===== Statements =====

// Block is an ordered statement list. The root of every tree is a Block.
type Block struct {
	header
	scope
	Statements []Node
}

func (n *Block) Kind() NodeKind                     { return KindBlock }
func (n *Block) String() string                     { return sexpr("block", list(n.Statements)...) }
func (n *Block) Accept(visitor Visitor) interface{} { return visitor.VisitBlock(n) }

// Last returns the final statement, nil when the block is empty.
func (n *Block) Last() Node {
	if len(n.Statements) == 0 {
		return nil
	}
	return n.Statements[len(n.Statements)-1]
}

// DeclVar declares a variable; Type is nil when an initializer or a loop
// binding supplies it.
type DeclVar struct {
	header
	Name *Identifier
	Type *Type
}

func (n *DeclVar) Kind() NodeKind                     { return KindDeclVar }
func (n *DeclVar) String() string                     { return sexpr("var", n.Name, optType(n.Type)) }
func (n *DeclVar) Accept(visitor Visitor) interface{} { return visitor.VisitDeclVar(n) }

// DeclConst declares a constant. Its value is the right side of the
// Assign that wraps it, or the iterable of an Each.
type DeclConst struct {
	header
	Name *Identifier
	Type *Type
}

func (n *DeclConst) Kind() NodeKind                     { return KindDeclConst }
func (n *DeclConst) String() string                     { return sexpr("const", n.Name, optType(n.Type)) }
func (n *DeclConst) Accept(visitor Visitor) interface{} { return visitor.VisitDeclConst(n) }

// Assign stores Value into Target. Op is TokenAssign or a compound form.
type Assign struct {
	header
	Op     lexer.TokenType
	Target Node
	Value  Node
}

func (n *Assign) Kind() NodeKind                     { return KindAssign }
func (n *Assign) String() string                     { return sexpr(OperatorText(n.Op), n.Target, n.Value) }
func (n *Assign) Accept(visitor Visitor) interface{} { return visitor.VisitAssign(n) }

// Return leaves the enclosing function; Value may be nil.
type Return struct {
	header
	Value Node
}

func (n *Return) Kind() NodeKind                     { return KindReturn }
func (n *Return) String() string                     { return sexpr("return", n.Value) }
func (n *Return) Accept(visitor Visitor) interface{} { return visitor.VisitReturn(n) }

// If is a conditional; Else is nil, another *If or a *Block.
type If struct {
	header
	scope
	Cond Node
	Then *Block
	Else Node
}

func (n *If) Kind() NodeKind                     { return KindIf }
func (n *If) String() string                     { return sexpr("if", n.Cond, n.Then, n.Else) }
func (n *If) Accept(visitor Visitor) interface{} { return visitor.VisitIf(n) }

// Loop repeats Body, which is a *Block, an *If chain ending in a Break,
// or an *Each.
type Loop struct {
	header
	scope
	Body Node
}

func (n *Loop) Kind() NodeKind                     { return KindLoop }
func (n *Loop) String() string                     { return sexpr("loop", n.Body) }
func (n *Loop) Accept(visitor Visitor) interface{} { return visitor.VisitLoop(n) }

// Break leaves the innermost loop. Synthesized is set on the Break that
// terminates a `loop if` chain.
type Break struct {
	header
	Synthesized bool
}

func (n *Break) Kind() NodeKind                     { return KindBreak }
func (n *Break) String() string                     { return "(break)" }
func (n *Break) Accept(visitor Visitor) interface{} { return visitor.VisitBreak(n) }

type Continue struct {
	header
}

func (n *Continue) Kind() NodeKind                     { return KindContinue }
func (n *Continue) String() string                     { return "(continue)" }
func (n *Continue) Accept(visitor Visitor) interface{} { return visitor.VisitContinue(n) }

// Each iterates Iterable. Binding is an *Identifier, *DeclVar or *DeclConst.
type Each struct {
	header
	scope
	Binding  Node
	Iterable Node
	Body     *Block
}

func (n *Each) Kind() NodeKind                     { return KindEach }
func (n *Each) String() string                     { return sexpr("each", n.Binding, n.Iterable, n.Body) }
func (n *Each) Accept(visitor Visitor) interface{} { return visitor.VisitEach(n) }

// ===== Types =====

// Type is `&`? TypeName `[` length? `]`?. Name is a *TypeName, a
// *TupleType or a *DefineFunc in FuncTypeSig mode. Length is zero for
// arrays without a fixed length.
type Type struct {
	header
	IsReference bool
	Name        Node
	IsArray     bool
	Length      int
}

func (n *Type) Kind() NodeKind { return KindType }
func (n *Type) String() string {
	var b strings.Builder
	b.WriteString("(type ")
	if n.IsReference {
		b.WriteString("& ")
	}
	b.WriteString(n.Name.String())
	if n.IsArray {
		if n.Length > 0 {
			fmt.Fprintf(&b, " [%d]", n.Length)
		} else {
			b.WriteString(" []")
		}
	}
	b.WriteString(")")
	return b.String()
}
func (n *Type) Accept(visitor Visitor) interface{} { return visitor.VisitType(n) }

// TypeName is a named type with optional generic arguments.
type TypeName struct {
	header
	Name *Identifier
	Args []*Type
}

func (n *TypeName) Kind() NodeKind { return KindTypeName }
func (n *TypeName) String() string {
	if len(n.Args) == 0 {
		return n.Name.String()
	}
	return sexpr("generic", append([]fmt.Stringer{n.Name}, list(n.Args)...)...)
}
func (n *TypeName) Accept(visitor Visitor) interface{} { return visitor.VisitTypeName(n) }

type TupleType struct {
	header
	Elements []*Type
}

func (n *TupleType) Kind() NodeKind { return KindTupleType }
func (n *TupleType) String() string {
	return sexpr("tuple-type", list(n.Elements)...)
}
func (n *TupleType) Accept(visitor Visitor) interface{} { return visitor.VisitTupleType(n) }

// ===== Declarations =====

// Field is a parameter or struct member.
type Field struct {
	header
	IsConst bool
	Name    *Identifier
	Type    *Type
	Default Node
}

func (n *Field) Kind() NodeKind { return KindField }
func (n *Field) String() string {
	head := "field"
	if n.IsConst {
		head = "const-field"
	}
	return sexpr(head, n.Name, n.Type, n.Default)
}
func (n *Field) Accept(visitor Visitor) interface{} { return visitor.VisitField(n) }

// DefineName is a declared name with optional generic parameters.
type DefineName struct {
	header
	Name   *Identifier
	Params []*Identifier
}

func (n *DefineName) Kind() NodeKind { return KindDefineName }
func (n *DefineName) String() string {
	if len(n.Params) == 0 {
		return n.Name.String()
	}
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}
	return fmt.Sprintf("%s<%s>", n.Name.Name, strings.Join(params, ", "))
}
func (n *DefineName) Accept(visitor Visitor) interface{} { return visitor.VisitDefineName(n) }

// FuncMode selects the shape DefineFunc accepts.
type FuncMode int

const (
	// FuncNormal is a named declaration with a body.
	FuncNormal FuncMode = iota
	// FuncInterfaceSig is a named signature inside an interface.
	FuncInterfaceSig
	// FuncTypeSig is an anonymous signature used as a type.
	FuncTypeSig
	// FuncValue is an anonymous function literal with a body.
	FuncValue
)

var funcModeHeads = [...]string{
	FuncNormal:       "fn",
	FuncInterfaceSig: "fn-sig",
	FuncTypeSig:      "fn-type",
	FuncValue:        "fn-value",
}

func (m FuncMode) String() string {
	if m >= 0 && int(m) < len(funcModeHeads) {
		return funcModeHeads[m]
	}
	return fmt.Sprintf("FuncMode(%d)", int(m))
}

// NeedsName reports whether the mode requires a name.
func (m FuncMode) NeedsName() bool { return m == FuncNormal || m == FuncInterfaceSig }

// NeedsBody reports whether the mode requires a body; the other modes
// forbid one.
func (m FuncMode) NeedsBody() bool { return m == FuncNormal || m == FuncValue }

// DefineFunc is a function declaration, signature or literal.
type DefineFunc struct {
	header
	scope
	Mode       FuncMode
	Name       *DefineName
	Params     []*Field
	ReturnType *Type
	Body       *Block
}

func (n *DefineFunc) Kind() NodeKind { return KindDefineFunc }
func (n *DefineFunc) String() string {
	items := []fmt.Stringer{}
	if n.Name != nil {
		items = append(items, n.Name)
	}
	items = append(items, rawNode(sexpr("params", list(n.Params)...)))
	if n.ReturnType != nil {
		items = append(items, rawNode("(returns "+n.ReturnType.String()+")"))
	}
	if n.Body != nil {
		items = append(items, n.Body)
	}
	return sexpr(n.Mode.String(), items...)
}
func (n *DefineFunc) Accept(visitor Visitor) interface{} { return visitor.VisitDefineFunc(n) }

type DefineStruct struct {
	header
	Name   *DefineName
	Fields []*Field
}

func (n *DefineStruct) Kind() NodeKind { return KindDefineStruct }
func (n *DefineStruct) String() string {
	return sexpr("struct", append([]fmt.Stringer{n.Name}, list(n.Fields)...)...)
}
func (n *DefineStruct) Accept(visitor Visitor) interface{} { return visitor.VisitDefineStruct(n) }

// DefineImpl attaches Methods to Name, optionally for Interface.
type DefineImpl struct {
	header
	Name      *DefineName
	Interface *DefineName
	Methods   []*DefineFunc
}

func (n *DefineImpl) Kind() NodeKind { return KindDefineImpl }
func (n *DefineImpl) String() string {
	items := []fmt.Stringer{n.Name}
	if n.Interface != nil {
		items = append(items, rawNode("(for "+n.Interface.String()+")"))
	}
	return sexpr("impl", append(items, list(n.Methods)...)...)
}
func (n *DefineImpl) Accept(visitor Visitor) interface{} { return visitor.VisitDefineImpl(n) }

// DefineInterface lists method signatures in FuncInterfaceSig mode.
type DefineInterface struct {
	header
	Name    *DefineName
	Methods []*DefineFunc
}

func (n *DefineInterface) Kind() NodeKind { return KindDefineInterface }
func (n *DefineInterface) String() string {
	return sexpr("interface", append([]fmt.Stringer{n.Name}, list(n.Methods)...)...)
}
func (n *DefineInterface) Accept(visitor Visitor) interface{} { return visitor.VisitDefineInterface(n) }

// ===== Helpers =====

// operatorTexts spells the operator forms that have no source literal of
// their own.
var operatorTexts = map[lexer.TokenType]string{
	lexer.TokenUnaryPlus:  "+",
	lexer.TokenUnaryMinus: "-",
	lexer.TokenRef:        "&",
}

// OperatorText returns the source spelling of an operator type.
func OperatorText(tt lexer.TokenType) string {
	if s, ok := operatorTexts[tt]; ok {
		return s
	}
	if s, ok := lexer.Spelling(tt); ok {
		return s
	}
	return tt.String()
}

// rawNode lets String implementations splice preformatted text into an
// S-expression.
type rawNode string

func (r rawNode) String() string { return string(r) }

func optType(t *Type) fmt.Stringer {
	if t == nil {
		return nil
	}
	return t
}

func list[T Node](nodes []T) []fmt.Stringer {
	out := make([]fmt.Stringer, len(nodes))
	for i, n := range nodes {
		out[i] = n
	}
	return out
}

// sexpr renders `(head item...)`, skipping nil items.
func sexpr(head string, items ...fmt.Stringer) string {
	var b strings.Builder
	b.WriteString("(")
	b.WriteString(head)
	for _, it := range items {
		if it == nil {
			continue
		}
		b.WriteString(" ")
		b.WriteString(it.String())
	}
	b.WriteString(")")
	return b.String()
}
