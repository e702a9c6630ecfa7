package printer

import (
	"github.com/davecgh/go-spew/spew"

	"github.com/xs-lang/xs/internal/ast"
)

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	DisableMethods:          true,
}

// Dump renders the outline of n with spew. Nodes are not dumped directly:
// their tokens reference the whole sequence.
func Dump(n ast.Node) string {
	return dumpConfig.Sdump(Outline(n))
}
