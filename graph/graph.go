package graph

import (
	"fmt"
	"maps"
	"slices"
)

// Graph stores nodes, parameters and connections. N is the per-node user
// data, D the parameter data type and V the constant value held by inputs.
type Graph[N any, D comparable, V any] struct {
	nodes       map[NodeID]*Node[N]
	inputs      map[ParamID]*InputParamInfo[D, V]
	outputs     map[ParamID]*OutputParamInfo[D]
	connections map[ParamID]ParamID // input -> output
	nextNode    NodeID
	nextParam   ParamID
	hooks       Hooks
}

// New creates an empty graph.
func New[N any, D comparable, V any]() *Graph[N, D, V] {
	return &Graph[N, D, V]{
		nodes:       make(map[NodeID]*Node[N]),
		inputs:      make(map[ParamID]*InputParamInfo[D, V]),
		outputs:     make(map[ParamID]*OutputParamInfo[D]),
		connections: make(map[ParamID]ParamID),
		nextNode:    1,
		nextParam:   1,
	}
}

// SetHooks replaces the add/remove notification hooks.
func (g *Graph[N, D, V]) SetHooks(h Hooks) {
	g.hooks = h
}

// AddNode inserts a node without parameters and returns its id.
func (g *Graph[N, D, V]) AddNode(label string, data N) NodeID {
	id := g.nextNode
	g.nextNode++

	g.nodes[id] = &Node[N]{ID: id, Label: label, Data: data}

	if g.hooks.NodeAdded != nil {
		g.hooks.NodeAdded(id)
	}
	return id
}

// AddInput appends an input parameter to a node.
func (g *Graph[N, D, V]) AddInput(node NodeID, name string, typ D, value V) (ParamID, error) {
	n, ok := g.nodes[node]
	if !ok {
		return 0, fmt.Errorf("add input %q: %w: %d", name, ErrNodeNotFound, node)
	}

	id := g.nextParam
	g.nextParam++

	g.inputs[id] = &InputParamInfo[D, V]{ID: id, Node: node, Name: name, Type: typ, Value: value}
	n.Inputs = append(n.Inputs, id)
	return id, nil
}

// AddOutput appends an output parameter to a node.
func (g *Graph[N, D, V]) AddOutput(node NodeID, name string, typ D) (ParamID, error) {
	n, ok := g.nodes[node]
	if !ok {
		return 0, fmt.Errorf("add output %q: %w: %d", name, ErrNodeNotFound, node)
	}

	id := g.nextParam
	g.nextParam++

	g.outputs[id] = &OutputParamInfo[D]{ID: id, Node: node, Name: name, Type: typ}
	n.Outputs = append(n.Outputs, id)
	return id, nil
}

// RemoveNode deletes a node, its parameters and every connection touching
// them. The removed connections are returned.
func (g *Graph[N, D, V]) RemoveNode(id NodeID) ([]Connection, error) {
	n, ok := g.nodes[id]
	if !ok {
		return nil, fmt.Errorf("remove node: %w: %d", ErrNodeNotFound, id)
	}

	var removed []Connection
	for _, in := range n.Inputs {
		if out, ok := g.connections[in]; ok {
			removed = append(removed, Connection{Output: out, Input: in})
			delete(g.connections, in)
		}
		delete(g.inputs, in)
	}
	for _, out := range n.Outputs {
		for _, in := range g.sortedInputs() {
			if g.connections[in] == out {
				removed = append(removed, Connection{Output: out, Input: in})
				delete(g.connections, in)
			}
		}
		delete(g.outputs, out)
	}
	delete(g.nodes, id)

	if g.hooks.NodeRemoved != nil {
		g.hooks.NodeRemoved(id)
	}
	return removed, nil
}

// Node returns a copy of the node with the given id.
func (g *Graph[N, D, V]) Node(id NodeID) (Node[N], bool) {
	n, ok := g.nodes[id]
	if !ok {
		return Node[N]{}, false
	}
	cp := *n
	cp.Inputs = slices.Clone(n.Inputs)
	cp.Outputs = slices.Clone(n.Outputs)
	return cp, true
}

// HasNode reports whether id is a live node.
func (g *Graph[N, D, V]) HasNode(id NodeID) bool {
	_, ok := g.nodes[id]
	return ok
}

// SetNodeLabel renames a node.
func (g *Graph[N, D, V]) SetNodeLabel(id NodeID, label string) error {
	n, ok := g.nodes[id]
	if !ok {
		return fmt.Errorf("set label: %w: %d", ErrNodeNotFound, id)
	}
	n.Label = label
	return nil
}

// NodeIDs returns the live node ids in ascending order.
func (g *Graph[N, D, V]) NodeIDs() []NodeID {
	return slices.Sorted(maps.Keys(g.nodes))
}

// Len returns the number of nodes.
func (g *Graph[N, D, V]) Len() int {
	return len(g.nodes)
}

// Input returns an input parameter.
func (g *Graph[N, D, V]) Input(id ParamID) (InputParamInfo[D, V], bool) {
	p, ok := g.inputs[id]
	if !ok {
		return InputParamInfo[D, V]{}, false
	}
	return *p, true
}

// Output returns an output parameter.
func (g *Graph[N, D, V]) Output(id ParamID) (OutputParamInfo[D], bool) {
	p, ok := g.outputs[id]
	if !ok {
		return OutputParamInfo[D]{}, false
	}
	return *p, true
}

// SetInputValue replaces the constant value of an input.
func (g *Graph[N, D, V]) SetInputValue(id ParamID, value V) error {
	p, ok := g.inputs[id]
	if !ok {
		return fmt.Errorf("set input value: %w: %d", ErrParamNotFound, id)
	}
	p.Value = value
	return nil
}

// ParamNode returns the node owning p.
func (g *Graph[N, D, V]) ParamNode(p AnyParam) (NodeID, bool) {
	switch p.Dir {
	case Input:
		if in, ok := g.inputs[p.ID]; ok {
			return in.Node, true
		}
	case Output:
		if out, ok := g.outputs[p.ID]; ok {
			return out.Node, true
		}
	}
	return 0, false
}

// ParamType returns the data type of p.
func (g *Graph[N, D, V]) ParamType(p AnyParam) (D, bool) {
	var zero D
	switch p.Dir {
	case Input:
		if in, ok := g.inputs[p.ID]; ok {
			return in.Type, true
		}
	case Output:
		if out, ok := g.outputs[p.ID]; ok {
			return out.Type, true
		}
	}
	return zero, false
}

// HasParam reports whether p exists.
func (g *Graph[N, D, V]) HasParam(p AnyParam) bool {
	_, ok := g.ParamNode(p)
	return ok
}

// CheckCompatible returns nil when a and b can be connected: both exist,
// they point in opposite directions and carry the same data type.
func (g *Graph[N, D, V]) CheckCompatible(a, b AnyParam) error {
	ta, ok := g.ParamType(a)
	if !ok {
		return fmt.Errorf("%w: %s", ErrParamNotFound, a)
	}
	tb, ok := g.ParamType(b)
	if !ok {
		return fmt.Errorf("%w: %s", ErrParamNotFound, b)
	}
	if a.Dir == b.Dir {
		return fmt.Errorf("%w: %s and %s", ErrSameDirection, a, b)
	}
	if ta != tb {
		return fmt.Errorf("%w: %v and %v", ErrIncompatibleTypes, ta, tb)
	}
	return nil
}

// Connect links out to in. An existing connection on in is replaced.
func (g *Graph[N, D, V]) Connect(out, in ParamID) error {
	if err := g.CheckCompatible(OutputParam(out), InputParam(in)); err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	g.connections[in] = out
	return nil
}

// ConnectAny links two parameters given in either order.
func (g *Graph[N, D, V]) ConnectAny(a, b AnyParam) (Connection, error) {
	if a.Dir == Input {
		a, b = b, a
	}
	if err := g.CheckCompatible(a, b); err != nil {
		return Connection{}, fmt.Errorf("connect: %w", err)
	}
	g.connections[b.ID] = a.ID
	return Connection{Output: a.ID, Input: b.ID}, nil
}

// Disconnect removes the connection feeding in and returns its output.
func (g *Graph[N, D, V]) Disconnect(in ParamID) (ParamID, bool) {
	out, ok := g.connections[in]
	if ok {
		delete(g.connections, in)
	}
	return out, ok
}

// ConnectionTo returns the output feeding in.
func (g *Graph[N, D, V]) ConnectionTo(in ParamID) (ParamID, bool) {
	out, ok := g.connections[in]
	return out, ok
}

// ConnectionsFrom returns the inputs fed by out, ascending.
func (g *Graph[N, D, V]) ConnectionsFrom(out ParamID) []ParamID {
	var ins []ParamID
	for _, in := range g.sortedInputs() {
		if g.connections[in] == out {
			ins = append(ins, in)
		}
	}
	return ins
}

// Connections returns every connection ordered by input id.
func (g *Graph[N, D, V]) Connections() []Connection {
	conns := make([]Connection, 0, len(g.connections))
	for _, in := range g.sortedInputs() {
		conns = append(conns, Connection{Output: g.connections[in], Input: in})
	}
	return conns
}

func (g *Graph[N, D, V]) sortedInputs() []ParamID {
	return slices.Sorted(maps.Keys(g.connections))
}
