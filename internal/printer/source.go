package printer

import (
	"strconv"
	"strings"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/lexer"
)

// Source renders a tree back to xs source. Every statement ends with an
// explicit `;` where the grammar needs one, every operator expression is
// parenthesized and synthesized loop breaks are left out, so parsing the
// output yields the same tree.
func Source(root *ast.Block) string {
	u := &unparser{}
	for _, s := range root.Statements {
		u.statement(s)
	}
	return u.b.String()
}

type unparser struct {
	b     strings.Builder
	depth int
}

func (u *unparser) line(s string) {
	u.b.WriteString(strings.Repeat("\t", u.depth))
	u.b.WriteString(s)
	u.b.WriteByte('\n')
}

func (u *unparser) statement(n ast.Node) {
	switch n := n.(type) {
	case *ast.Block:
		u.line(u.block(n))
	case *ast.DeclVar, *ast.DeclConst:
		u.line(decl(n) + ";")
	case *ast.Assign:
		u.line(u.assignTarget(n.Target) + " " + ast.OperatorText(n.Op) + " " + u.expr(n.Value) + ";")
	case *ast.Return:
		if n.Value == nil {
			u.line("return;")
		} else {
			u.line("return " + u.expr(n.Value) + ";")
		}
	case *ast.Break:
		if !n.Synthesized {
			u.line("break;")
		}
	case *ast.Continue:
		u.line("continue;")
	case *ast.If:
		u.line(u.ifChain(n))
	case *ast.Loop:
		u.line("loop " + u.loopBody(n.Body))
	case *ast.DefineFunc:
		if n.Mode == ast.FuncNormal {
			u.line(u.fn(n))
		} else {
			u.line("(" + u.fn(n) + ");")
		}
	case *ast.DefineStruct:
		fields := make([]string, len(n.Fields))
		for i, f := range n.Fields {
			fields[i] = u.field(f)
		}
		if len(fields) == 0 {
			u.line("struct " + defineName(n.Name) + " { }")
		} else {
			u.line("struct " + defineName(n.Name) + " { " + strings.Join(fields, ", ") + " }")
		}
	case *ast.DefineImpl:
		head := "impl " + defineName(n.Name)
		if n.Interface != nil {
			head += ": " + defineName(n.Interface)
		}
		u.line(head + " {")
		u.depth++
		for _, m := range n.Methods {
			u.line(u.fn(m))
		}
		u.depth--
		u.line("}")
	case *ast.DefineInterface:
		u.line("interface " + defineName(n.Name) + " {")
		u.depth++
		for _, m := range n.Methods {
			u.line(u.fn(m) + ";")
		}
		u.depth--
		u.line("}")
	default:
		u.line(u.expr(n) + ";")
	}
}

// block renders `{ ... }`, nesting its statements one level deeper.
func (u *unparser) block(n *ast.Block) string {
	inner := &unparser{depth: u.depth + 1}
	for _, s := range n.Statements {
		inner.statement(s)
	}
	if inner.b.Len() == 0 {
		return "{ }"
	}
	return "{\n" + inner.b.String() + strings.Repeat("\t", u.depth) + "}"
}

func (u *unparser) ifChain(n *ast.If) string {
	s := "if " + u.expr(n.Cond) + " " + u.block(n.Then)
	switch e := n.Else.(type) {
	case *ast.If:
		s += " else " + u.ifChain(e)
	case *ast.Block:
		// The else block a `loop if` chain gets when it has none.
		if e.Token().Type == lexer.TokenLBrace {
			s += " else " + u.block(e)
		}
	}
	return s
}

func (u *unparser) loopBody(body ast.Node) string {
	switch b := body.(type) {
	case *ast.Block:
		return u.block(b)
	case *ast.If:
		return u.ifChain(b)
	case *ast.Each:
		return "each " + u.binding(b.Binding) + " in " + u.expr(b.Iterable) + " " + u.block(b.Body)
	}
	return u.expr(body)
}

func (u *unparser) binding(n ast.Node) string {
	if id, ok := n.(*ast.Identifier); ok {
		return id.Name
	}
	return decl(n)
}

func (u *unparser) assignTarget(n ast.Node) string {
	switch n.(type) {
	case *ast.DeclVar, *ast.DeclConst:
		return decl(n)
	}
	return u.expr(n)
}

func decl(n ast.Node) string {
	switch d := n.(type) {
	case *ast.DeclVar:
		return "var " + d.Name.Name + optTypeText(d.Type)
	case *ast.DeclConst:
		return "const " + d.Name.Name + optTypeText(d.Type)
	}
	return ""
}

func optTypeText(t *ast.Type) string {
	if t == nil {
		return ""
	}
	return ": " + typeText(t)
}

func typeText(t *ast.Type) string {
	var b strings.Builder
	if t.IsReference {
		b.WriteString("&")
	}
	switch name := t.Name.(type) {
	case *ast.TypeName:
		b.WriteString(name.Name.Name)
		if len(name.Args) > 0 {
			b.WriteString("<" + typeList(name.Args) + ">")
		}
	case *ast.TupleType:
		b.WriteString("(" + typeList(name.Elements) + ")")
	case *ast.DefineFunc:
		b.WriteString((&unparser{}).fn(name))
	}
	if t.IsArray {
		b.WriteString("[")
		if t.Length > 0 {
			b.WriteString(strconv.Itoa(t.Length))
		}
		b.WriteString("]")
	}
	return b.String()
}

func typeList(types []*ast.Type) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = typeText(t)
	}
	return strings.Join(parts, ", ")
}

func defineName(n *ast.DefineName) string {
	if len(n.Params) == 0 {
		return n.Name.Name
	}
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = p.Name
	}
	return n.Name.Name + "<" + strings.Join(params, ", ") + ">"
}

func (u *unparser) field(f *ast.Field) string {
	s := f.Name.Name + ": " + typeText(f.Type)
	if f.IsConst {
		s = "const " + s
	}
	if f.Default != nil {
		s += " = " + u.expr(f.Default)
	}
	return s
}

func (u *unparser) fn(n *ast.DefineFunc) string {
	var b strings.Builder
	b.WriteString("fn")
	if n.Name != nil {
		b.WriteString(" " + defineName(n.Name))
	}
	params := make([]string, len(n.Params))
	for i, p := range n.Params {
		params[i] = u.field(p)
	}
	b.WriteString("(" + strings.Join(params, ", ") + ")")
	if n.ReturnType != nil {
		b.WriteString(" -> " + typeText(n.ReturnType))
	}
	if n.Body != nil {
		b.WriteString(" " + u.block(n.Body))
	}
	return b.String()
}

// isNumber reports whether n is a numeric literal, which must not touch
// a following `.`.
func isNumber(n ast.Node) bool {
	lit, ok := n.(*ast.Literal)
	return ok && (lit.Type == lexer.TokenInteger || lit.Type == lexer.TokenFloat)
}

func (u *unparser) expr(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Literal:
		if n.Type == lexer.TokenString {
			return quoteString(n.Value)
		}
		return n.Value
	case *ast.Identifier:
		return n.Name
	case *ast.UnaryOperator:
		return "(" + ast.OperatorText(n.Op) + u.expr(n.Operand) + ")"
	case *ast.BinaryOperator:
		if n.Op == lexer.TokenDot {
			dot := "."
			if isNumber(n.Left) {
				dot = " . "
			}
			return "(" + u.expr(n.Left) + dot + u.expr(n.Right) + ")"
		}
		return "(" + u.expr(n.Left) + " " + ast.OperatorText(n.Op) + " " + u.expr(n.Right) + ")"
	case *ast.FuncCall:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = u.expr(a)
		}
		return u.postfixBase(n.Callee) + "(" + strings.Join(args, ", ") + ")"
	case *ast.Subscript:
		return u.postfixBase(n.Base) + "[" + u.expr(n.Index) + "]"
	case *ast.Tuple:
		elems := make([]string, len(n.Elements))
		for i, e := range n.Elements {
			elems[i] = u.expr(e)
		}
		if len(elems) == 1 {
			return "(" + elems[0] + ",)"
		}
		return "(" + strings.Join(elems, ", ") + ")"
	case *ast.DefineFunc:
		return u.fn(n)
	}
	return ""
}

// postfixBase renders the operand of a call or subscript. Function
// literals are parenthesized so a statement never starts with `fn`.
func (u *unparser) postfixBase(n ast.Node) string {
	if fn, ok := n.(*ast.DefineFunc); ok {
		return "(" + u.fn(fn) + ")"
	}
	return u.expr(n)
}

var stringEscapes = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
)

// quoteString writes a string literal using only the escapes the tokenizer
// decodes.
func quoteString(s string) string {
	return `"` + stringEscapes.Replace(s) + `"`
}
