package graph

import (
	"fmt"
	"maps"
	"slices"
)

// Snapshot is the serializable form of a Graph.
type Snapshot[N any, D comparable, V any] struct {
	Nodes       []Node[N]              `json:"nodes" yaml:"nodes"`
	Inputs      []InputParamInfo[D, V] `json:"inputs" yaml:"inputs"`
	Outputs     []OutputParamInfo[D]   `json:"outputs" yaml:"outputs"`
	Connections []Connection           `json:"connections" yaml:"connections"`
	NextNode    NodeID                 `json:"next_node" yaml:"next_node"`
	NextParam   ParamID                `json:"next_param" yaml:"next_param"`
}

// Snapshot returns a deep copy of the graph in serializable form. Slices are
// ordered by id so equal graphs produce equal snapshots.
func (g *Graph[N, D, V]) Snapshot() Snapshot[N, D, V] {
	s := Snapshot[N, D, V]{
		Nodes:       make([]Node[N], 0, len(g.nodes)),
		Inputs:      make([]InputParamInfo[D, V], 0, len(g.inputs)),
		Outputs:     make([]OutputParamInfo[D], 0, len(g.outputs)),
		Connections: g.Connections(),
		NextNode:    g.nextNode,
		NextParam:   g.nextParam,
	}
	for _, id := range g.NodeIDs() {
		n, _ := g.Node(id)
		s.Nodes = append(s.Nodes, n)
	}
	for _, id := range slices.Sorted(maps.Keys(g.inputs)) {
		s.Inputs = append(s.Inputs, *g.inputs[id])
	}
	for _, id := range slices.Sorted(maps.Keys(g.outputs)) {
		s.Outputs = append(s.Outputs, *g.outputs[id])
	}
	return s
}

// FromSnapshot rebuilds a graph, checking that every reference resolves.
// Hooks are not fired; the caller owns whatever index it builds on top.
func FromSnapshot[N any, D comparable, V any](s Snapshot[N, D, V]) (*Graph[N, D, V], error) {
	g := New[N, D, V]()

	for _, n := range s.Nodes {
		if n.ID == 0 {
			return nil, fmt.Errorf("%w: node id 0 is reserved", ErrInvalidSnapshot)
		}
		if _, dup := g.nodes[n.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate node id %d", ErrInvalidSnapshot, n.ID)
		}
		cp := n
		cp.Inputs = slices.Clone(n.Inputs)
		cp.Outputs = slices.Clone(n.Outputs)
		g.nodes[n.ID] = &cp
		g.nextNode = max(g.nextNode, n.ID+1)
	}

	for _, in := range s.Inputs {
		if err := g.checkParam(in.ID, in.Node, Input); err != nil {
			return nil, err
		}
		cp := in
		g.inputs[in.ID] = &cp
		g.nextParam = max(g.nextParam, in.ID+1)
	}
	for _, out := range s.Outputs {
		if err := g.checkParam(out.ID, out.Node, Output); err != nil {
			return nil, err
		}
		cp := out
		g.outputs[out.ID] = &cp
		g.nextParam = max(g.nextParam, out.ID+1)
	}

	// Every id a node lists must exist and point back at that node, and
	// every parameter must be listed by its node exactly once.
	listed := make(map[ParamID]bool, len(g.inputs)+len(g.outputs))
	for _, n := range g.nodes {
		for _, id := range n.Inputs {
			if in, ok := g.inputs[id]; !ok || in.Node != n.ID {
				return nil, fmt.Errorf("%w: node %d lists unknown input %d", ErrInvalidSnapshot, n.ID, id)
			}
			if listed[id] {
				return nil, fmt.Errorf("%w: node %d lists input %d twice", ErrInvalidSnapshot, n.ID, id)
			}
			listed[id] = true
		}
		for _, id := range n.Outputs {
			if out, ok := g.outputs[id]; !ok || out.Node != n.ID {
				return nil, fmt.Errorf("%w: node %d lists unknown output %d", ErrInvalidSnapshot, n.ID, id)
			}
			if listed[id] {
				return nil, fmt.Errorf("%w: node %d lists output %d twice", ErrInvalidSnapshot, n.ID, id)
			}
			listed[id] = true
		}
	}
	for id, in := range g.inputs {
		if !listed[id] {
			return nil, fmt.Errorf("%w: input %d is not listed by its node %d", ErrInvalidSnapshot, id, in.Node)
		}
	}
	for id, out := range g.outputs {
		if !listed[id] {
			return nil, fmt.Errorf("%w: output %d is not listed by its node %d", ErrInvalidSnapshot, id, out.Node)
		}
	}

	for _, c := range s.Connections {
		if err := g.Connect(c.Output, c.Input); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSnapshot, err)
		}
	}

	g.nextNode = max(g.nextNode, s.NextNode)
	g.nextParam = max(g.nextParam, s.NextParam)
	return g, nil
}

func (g *Graph[N, D, V]) checkParam(id ParamID, node NodeID, dir Direction) error {
	if id == 0 {
		return fmt.Errorf("%w: parameter id 0 is reserved", ErrInvalidSnapshot)
	}
	if _, dup := g.inputs[id]; dup {
		return fmt.Errorf("%w: duplicate parameter id %d", ErrInvalidSnapshot, id)
	}
	if _, dup := g.outputs[id]; dup {
		return fmt.Errorf("%w: duplicate parameter id %d", ErrInvalidSnapshot, id)
	}
	if _, ok := g.nodes[node]; !ok {
		return fmt.Errorf("%w: %s %d belongs to unknown node %d", ErrInvalidSnapshot, dir, id, node)
	}
	return nil
}
