package ast

// Value is the result of evaluating a node.
type Value interface{}

// Evaluator is the extension point for a future interpreter. The front end
// never calls it.
type Evaluator interface {
	Eval(node Node) (Value, error)
}

// NopEvaluator evaluates every node to nil.
type NopEvaluator struct{}

func (NopEvaluator) Eval(Node) (Value, error) { return nil, nil }
