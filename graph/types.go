// Package graph contains the node graph store edited by the editor package:
// nodes with typed input and output parameters and the connections between them.
package graph

import "fmt"

// NodeID identifies a node. IDs are never reused within a graph.
type NodeID uint64

// ParamID identifies an input or output parameter.
type ParamID uint64

// Direction tells inputs and outputs apart.
type Direction int

const (
	Input Direction = iota
	Output
)

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return "unknown"
	}
}

// Opposite returns the other direction.
func (d Direction) Opposite() Direction {
	if d == Input {
		return Output
	}
	return Input
}

// AnyParam is a parameter handle tagged with its direction.
type AnyParam struct {
	Dir Direction `json:"dir" yaml:"dir"`
	ID  ParamID   `json:"id" yaml:"id"`
}

// InputParam wraps an input parameter id.
func InputParam(id ParamID) AnyParam {
	return AnyParam{Dir: Input, ID: id}
}

// OutputParam wraps an output parameter id.
func OutputParam(id ParamID) AnyParam {
	return AnyParam{Dir: Output, ID: id}
}

// String returns a compact form like "input#3".
func (p AnyParam) String() string {
	return fmt.Sprintf("%s#%d", p.Dir, p.ID)
}

// Node is a unit of the graph. Inputs and Outputs keep declaration order.
type Node[N any] struct {
	ID      NodeID    `json:"id" yaml:"id"`
	Label   string    `json:"label" yaml:"label"`
	Inputs  []ParamID `json:"inputs,omitempty" yaml:"inputs,omitempty"`
	Outputs []ParamID `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Data    N         `json:"data" yaml:"data"`
}

// InputParamInfo describes an input slot. Value is used while the input is
// not connected.
type InputParamInfo[D comparable, V any] struct {
	ID    ParamID `json:"id" yaml:"id"`
	Node  NodeID  `json:"node" yaml:"node"`
	Name  string  `json:"name" yaml:"name"`
	Type  D       `json:"type" yaml:"type"`
	Value V       `json:"value" yaml:"value"`
}

// OutputParamInfo describes an output slot.
type OutputParamInfo[D comparable] struct {
	ID   ParamID `json:"id" yaml:"id"`
	Node NodeID  `json:"node" yaml:"node"`
	Name string  `json:"name" yaml:"name"`
	Type D       `json:"type" yaml:"type"`
}

// Connection links an output parameter to an input parameter.
type Connection struct {
	Output ParamID `json:"output" yaml:"output"`
	Input  ParamID `json:"input" yaml:"input"`
}

// Hooks are notified after nodes enter or leave the graph.
type Hooks struct {
	NodeAdded   func(id NodeID)
	NodeRemoved func(id NodeID)
}
