package ast

// Visitor dispatches on the concrete node variant. Each node's Accept
// calls the matching method.
type Visitor interface {
	// Expressions.
	VisitLiteral(node *Literal) interface{}
	VisitIdentifier(node *Identifier) interface{}
	VisitUnaryOperator(node *UnaryOperator) interface{}
	VisitBinaryOperator(node *BinaryOperator) interface{}
	VisitFuncCall(node *FuncCall) interface{}
	VisitSubscript(node *Subscript) interface{}
	VisitTuple(node *Tuple) interface{}

	// Statements.
	VisitBlock(node *Block) interface{}
	VisitDeclVar(node *DeclVar) interface{}
	VisitDeclConst(node *DeclConst) interface{}
	VisitAssign(node *Assign) interface{}
	VisitReturn(node *Return) interface{}
	VisitIf(node *If) interface{}
	VisitLoop(node *Loop) interface{}
	VisitBreak(node *Break) interface{}
	VisitContinue(node *Continue) interface{}
	VisitEach(node *Each) interface{}

	// Types.
	VisitType(node *Type) interface{}
	VisitTypeName(node *TypeName) interface{}
	VisitTupleType(node *TupleType) interface{}

	// Declarations.
	VisitField(node *Field) interface{}
	VisitDefineName(node *DefineName) interface{}
	VisitDefineFunc(node *DefineFunc) interface{}
	VisitDefineStruct(node *DefineStruct) interface{}
	VisitDefineImpl(node *DefineImpl) interface{}
	VisitDefineInterface(node *DefineInterface) interface{}
}

// BaseVisitor provides no-op implementations of every Visit method.
// Concrete visitors embed it and override what they need.
type BaseVisitor struct{}

func (v *BaseVisitor) VisitLiteral(node *Literal) interface{}                 { return nil }
func (v *BaseVisitor) VisitIdentifier(node *Identifier) interface{}           { return nil }
func (v *BaseVisitor) VisitUnaryOperator(node *UnaryOperator) interface{}     { return nil }
func (v *BaseVisitor) VisitBinaryOperator(node *BinaryOperator) interface{}   { return nil }
func (v *BaseVisitor) VisitFuncCall(node *FuncCall) interface{}               { return nil }
func (v *BaseVisitor) VisitSubscript(node *Subscript) interface{}             { return nil }
func (v *BaseVisitor) VisitTuple(node *Tuple) interface{}                     { return nil }
func (v *BaseVisitor) VisitBlock(node *Block) interface{}                     { return nil }
func (v *BaseVisitor) VisitDeclVar(node *DeclVar) interface{}                 { return nil }
func (v *BaseVisitor) VisitDeclConst(node *DeclConst) interface{}             { return nil }
func (v *BaseVisitor) VisitAssign(node *Assign) interface{}                   { return nil }
func (v *BaseVisitor) VisitReturn(node *Return) interface{}                   { return nil }
func (v *BaseVisitor) VisitIf(node *If) interface{}                           { return nil }
func (v *BaseVisitor) VisitLoop(node *Loop) interface{}                       { return nil }
func (v *BaseVisitor) VisitBreak(node *Break) interface{}                     { return nil }
func (v *BaseVisitor) VisitContinue(node *Continue) interface{}               { return nil }
func (v *BaseVisitor) VisitEach(node *Each) interface{}                       { return nil }
func (v *BaseVisitor) VisitType(node *Type) interface{}                       { return nil }
func (v *BaseVisitor) VisitTypeName(node *TypeName) interface{}               { return nil }
func (v *BaseVisitor) VisitTupleType(node *TupleType) interface{}             { return nil }
func (v *BaseVisitor) VisitField(node *Field) interface{}                     { return nil }
func (v *BaseVisitor) VisitDefineName(node *DefineName) interface{}           { return nil }
func (v *BaseVisitor) VisitDefineFunc(node *DefineFunc) interface{}           { return nil }
func (v *BaseVisitor) VisitDefineStruct(node *DefineStruct) interface{}       { return nil }
func (v *BaseVisitor) VisitDefineImpl(node *DefineImpl) interface{}           { return nil }
func (v *BaseVisitor) VisitDefineInterface(node *DefineInterface) interface{} { return nil }

// Children returns the direct children of n in source order, skipping
// absent optional parts.
func Children(n Node) []Node {
	var out []Node
	add := func(c Node) {
		if c != nil {
			out = append(out, c)
		}
	}

	switch n := n.(type) {
	case *Literal, *Identifier, *Break, *Continue:
	case *UnaryOperator:
		add(n.Operand)
	case *BinaryOperator:
		add(n.Left)
		add(n.Right)
	case *FuncCall:
		add(n.Callee)
		for _, a := range n.Args {
			add(a)
		}
	case *Subscript:
		add(n.Base)
		add(n.Index)
	case *Tuple:
		for _, e := range n.Elements {
			add(e)
		}
	case *Block:
		for _, s := range n.Statements {
			add(s)
		}
	case *DeclVar:
		add(n.Name)
		if n.Type != nil {
			add(n.Type)
		}
	case *DeclConst:
		add(n.Name)
		if n.Type != nil {
			add(n.Type)
		}
	case *Assign:
		add(n.Target)
		add(n.Value)
	case *Return:
		add(n.Value)
	case *If:
		add(n.Cond)
		add(n.Then)
		add(n.Else)
	case *Loop:
		add(n.Body)
	case *Each:
		add(n.Binding)
		add(n.Iterable)
		add(n.Body)
	case *Type:
		add(n.Name)
	case *TypeName:
		add(n.Name)
		for _, a := range n.Args {
			add(a)
		}
	case *TupleType:
		for _, e := range n.Elements {
			add(e)
		}
	case *Field:
		add(n.Name)
		add(n.Type)
		add(n.Default)
	case *DefineName:
		add(n.Name)
		for _, p := range n.Params {
			add(p)
		}
	case *DefineFunc:
		if n.Name != nil {
			add(n.Name)
		}
		for _, p := range n.Params {
			add(p)
		}
		if n.ReturnType != nil {
			add(n.ReturnType)
		}
		if n.Body != nil {
			add(n.Body)
		}
	case *DefineStruct:
		add(n.Name)
		for _, f := range n.Fields {
			add(f)
		}
	case *DefineImpl:
		add(n.Name)
		if n.Interface != nil {
			add(n.Interface)
		}
		for _, m := range n.Methods {
			add(m)
		}
	case *DefineInterface:
		add(n.Name)
		for _, m := range n.Methods {
			add(m)
		}
	}
	return out
}

// WalkingVisitor visits a node and then every descendant in depth-first
// order, delegating each visit to the wrapped visitor.
type WalkingVisitor struct {
	visitor Visitor // The actual visitor to delegate to
}

// NewWalkingVisitor creates a new walking visitor that delegates to the provided visitor.
func NewWalkingVisitor(visitor Visitor) *WalkingVisitor {
	return &WalkingVisitor{visitor: visitor}
}

// Walk traverses the AST starting from the given node.
func (w *WalkingVisitor) Walk(node Node) {
	if node == nil {
		return
	}
	node.Accept(w.visitor)
	for _, c := range Children(node) {
		w.Walk(c)
	}
}

// Inspect calls f for node and its descendants in depth-first order. When
// f returns false the children of that node are skipped.
func Inspect(node Node, f func(Node) bool) {
	if node == nil || !f(node) {
		return
	}
	for _, c := range Children(node) {
		Inspect(c, f)
	}
}
