package printer

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xs-lang/xs/internal/parser"
)

const roundTripSource = `
struct Point<T> { x: T, const y: int = 0 }
interface Shape { fn area() -> float; fn scale(f: float); }
impl Point<T>: Shape {
	fn area() -> float { return 0.0; }
	fn scale(f: float) { self.x *= f; }
}
fn fib(n: int) -> int {
	if n < 2 { return n; } else if n == 2 { return 1; }
	return fib(n - 1) + fib(n - 2);
}
fn main() {
	var xs: &int[3] = make(3);
	const name = "a\t\"b\"\n";
	var pair: (int, Map<string, int>) = (1, m);
	var one = (1,);
	var f: fn(x: int) -> int = fn(x: int) -> int { return -x * 2; };
	loop if xs[0] < 10 { xs[0] += 1; } else { break; }
	loop each const v in xs { if !v { continue; } }
	loop each var i: int in range(0, 3) { print(i); }
	loop { a.b.c(&d, ~e)[f(g)] = -(-h); break; }
	(fn() { })();
	{ nested; }
	return;
}
`

func TestSourceRoundTrip(t *testing.T) {
	first := mustParse(t, roundTripSource)

	text := Source(first)
	second, err := parser.ParseString(text)
	require.NoError(t, err, "reparse failed:\n%s", text)

	ignorePos := cmpopts.IgnoreFields(OutlineNode{}, "Pos")
	if diff := cmp.Diff(Outline(first), Outline(second), ignorePos); diff != "" {
		t.Errorf("round trip mismatch (-first +second):\n%s\nsource:\n%s", diff, text)
	}
	assert.Equal(t, first.String(), second.String())

	// Rendering is stable.
	assert.Equal(t, text, Source(second))
}

func TestSourceFormatting(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"operators", "a = b + c * -d;", "a = (b + (c * (-d)));\n"},
		{"member call", "a.b(1, \"s\");", "(a.b)(1, \"s\");\n"},
		{"loop if", "loop if a { b; }", "loop if a {\n\tb;\n}\n"},
		{"explicit else kept", "loop if a { } else { }", "loop if a { } else { }\n"},
		{"declaration", "var x: &Box<int>[] = y;", "var x: &Box<int>[] = y;\n"},
		{"function", "fn f(a: int) -> int { return a; }", "fn f(a: int) -> int {\n\treturn a;\n}\n"},
		{"empty struct", "struct S { }", "struct S { }\n"},
		{"integer member", "1 . 5;", "(1 . 5);\n"},
		{"float member", "1.5 . 2;", "(1.5 . 2);\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Source(mustParse(t, tt.input)))
		})
	}
}

func TestSourceNumericMemberReparses(t *testing.T) {
	for _, input := range []string{"1 . 5;", "x = 2.5 . 0 . 1;", "f(3 . 4);"} {
		first := mustParse(t, input)
		second := mustParse(t, Source(first))
		assert.Equal(t, first.String(), second.String(), input)
	}
}
