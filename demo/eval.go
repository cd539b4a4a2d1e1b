package demo

import (
	"errors"
	"fmt"

	"graphed/graph"
)

var (
	// ErrCycle is returned when an output depends on itself.
	ErrCycle = errors.New("cycle")
	// ErrDivideByZero is returned by a Divide node with a zero divisor.
	ErrDivideByZero = errors.New("divide by zero")
)

// Evaluate computes the value of an output. Unconnected inputs use their
// stored value; bools are 0 or 1.
func Evaluate(g *graph.Graph[Op, DataType, float64], out graph.ParamID) (float64, error) {
	e := evaluator{g: g, cache: map[graph.ParamID]float64{}, visiting: map[graph.NodeID]bool{}}
	return e.output(out)
}

type evaluator struct {
	g        *graph.Graph[Op, DataType, float64]
	cache    map[graph.ParamID]float64
	visiting map[graph.NodeID]bool
}

func (e *evaluator) output(out graph.ParamID) (float64, error) {
	if v, ok := e.cache[out]; ok {
		return v, nil
	}
	info, ok := e.g.Output(out)
	if !ok {
		return 0, fmt.Errorf("%w: output#%d", graph.ErrParamNotFound, out)
	}
	if e.visiting[info.Node] {
		return 0, fmt.Errorf("%w at node %d", ErrCycle, info.Node)
	}
	e.visiting[info.Node] = true
	defer delete(e.visiting, info.Node)

	n, _ := e.g.Node(info.Node)
	args, err := e.args(n)
	if err != nil {
		return 0, err
	}

	v, err := apply(n.Data, args)
	if err != nil {
		return 0, fmt.Errorf("node %d (%s): %w", n.ID, n.Label, err)
	}
	e.cache[out] = v
	return v, nil
}

// args evaluates the inputs of n. Select only evaluates the branch its
// condition picks; the other branch is left at zero.
func (e *evaluator) args(n graph.Node[Op]) ([]float64, error) {
	args := make([]float64, len(n.Inputs))
	eval := func(i int) error {
		v, err := e.input(n.Inputs[i])
		if err != nil {
			return err
		}
		args[i] = v
		return nil
	}

	if n.Data == OpSelect && len(n.Inputs) == 3 {
		if err := eval(0); err != nil {
			return nil, err
		}
		branch := 2
		if args[0] != 0 {
			branch = 1
		}
		if err := eval(branch); err != nil {
			return nil, err
		}
		return args, nil
	}

	for i := range n.Inputs {
		if err := eval(i); err != nil {
			return nil, err
		}
	}
	return args, nil
}

func (e *evaluator) input(in graph.ParamID) (float64, error) {
	if out, ok := e.g.ConnectionTo(in); ok {
		return e.output(out)
	}
	info, ok := e.g.Input(in)
	if !ok {
		return 0, fmt.Errorf("%w: input#%d", graph.ErrParamNotFound, in)
	}
	return info.Value, nil
}

func apply(op Op, args []float64) (float64, error) {
	t, ok := Lookup(op)
	if !ok {
		return 0, fmt.Errorf("unknown op %q", op)
	}
	if len(args) != len(t.Inputs) {
		return 0, fmt.Errorf("%s takes %d inputs, node has %d", t.Name, len(t.Inputs), len(args))
	}

	switch op {
	case OpConstant:
		return args[0], nil
	case OpAdd:
		return args[0] + args[1], nil
	case OpSubtract:
		return args[0] - args[1], nil
	case OpMultiply:
		return args[0] * args[1], nil
	case OpDivide:
		if args[1] == 0 {
			return 0, ErrDivideByZero
		}
		return args[0] / args[1], nil
	case OpCompare:
		if args[0] < args[1] {
			return 1, nil
		}
		return 0, nil
	case OpSelect:
		if args[0] != 0 {
			return args[1], nil
		}
		return args[2], nil
	}
	return 0, fmt.Errorf("unknown op %q", op)
}
