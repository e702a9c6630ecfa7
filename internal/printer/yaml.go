package printer

import (
	"gopkg.in/yaml.v3"

	"github.com/xs-lang/xs/internal/ast"
)

// YAML renders the outline of n.
func YAML(n ast.Node) (string, error) {
	data, err := yaml.Marshal(Outline(n))
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// ParseYAML reads back an outline written by YAML.
func ParseYAML(data []byte) (*OutlineNode, error) {
	var out OutlineNode
	if err := yaml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
