// Package printer renders token sequences and syntax trees: S-expressions,
// the HTML table tree, YAML, spew dumps, token listings and canonical xs
// source.
package printer

import (
	"fmt"
	"strings"

	"github.com/xs-lang/xs/internal/ast"
	"github.com/xs-lang/xs/internal/lexer"
)

// OutlineNode is a position-annotated, serializable copy of a tree.
type OutlineNode struct {
	Kind     string         `yaml:"kind"`
	Text     string         `yaml:"text,omitempty"`
	Pos      string         `yaml:"pos,omitempty"`
	Children []*OutlineNode `yaml:"children,omitempty"`
}

// Outline copies the tree rooted at n.
func Outline(n ast.Node) *OutlineNode {
	if n == nil {
		return nil
	}
	out := &OutlineNode{Kind: n.Kind().String(), Text: Label(n)}
	if tok := n.Token(); tok.Index >= 0 && tok.Pos.Line > 0 {
		out.Pos = fmt.Sprintf("%d:%d", tok.Pos.Line, tok.Pos.Column)
	}
	for _, c := range ast.Children(n) {
		out.Children = append(out.Children, Outline(c))
	}
	return out
}

// Label is the one-line caption of a node: its value for leaves, its
// operator for operators and its flags for declarations.
func Label(n ast.Node) string {
	switch n := n.(type) {
	case *ast.Literal:
		if n.Type == lexer.TokenString {
			return fmt.Sprintf("%q", n.Value)
		}
		return n.Value
	case *ast.Identifier:
		return n.Name
	case *ast.UnaryOperator:
		return ast.OperatorText(n.Op)
	case *ast.BinaryOperator:
		return ast.OperatorText(n.Op)
	case *ast.Assign:
		return ast.OperatorText(n.Op)
	case *ast.Break:
		if n.Synthesized {
			return "synthesized"
		}
	case *ast.Field:
		if n.IsConst {
			return "const"
		}
	case *ast.DefineFunc:
		return n.Mode.String()
	case *ast.Type:
		var flags []string
		if n.IsReference {
			flags = append(flags, "&")
		}
		if n.IsArray {
			if n.Length > 0 {
				flags = append(flags, fmt.Sprintf("[%d]", n.Length))
			} else {
				flags = append(flags, "[]")
			}
		}
		return strings.Join(flags, " ")
	}
	return ""
}
