package editor

import (
	"errors"
	"testing"

	"graphed/geometry"
	"graphed/graph"
)

// testTemplate builds a node with the named scalar inputs and outputs.
type testTemplate struct {
	label   string
	inputs  []string
	outputs []string
	fail    bool
}

func (t testTemplate) Label() string { return t.label }
func (t testTemplate) Data() string  { return t.label }

func (t testTemplate) Build(g *graph.Graph[string, string, float64], id graph.NodeID) error {
	if t.fail {
		return errors.New("template refused to build")
	}
	for _, name := range t.inputs {
		if _, err := g.AddInput(id, name, "scalar", 0); err != nil {
			return err
		}
	}
	for _, name := range t.outputs {
		if _, err := g.AddOutput(id, name, "scalar"); err != nil {
			return err
		}
	}
	return nil
}

type testState = State[string, string, float64, testTemplate, struct{}]

func newTestState(opts ...Option) *testState {
	return New[string, string, float64, testTemplate, struct{}](opts...)
}

// addPorted adds a node with one scalar input and one scalar output.
func addPorted(t *testing.T, s *testState, label string, pos geometry.Pos2) (graph.NodeID, graph.ParamID, graph.ParamID) {
	t.Helper()
	id := s.AddNode(label, label, pos)
	in, err := s.Graph().AddInput(id, "in", "scalar", 0)
	if err != nil {
		t.Fatalf("AddInput failed: %v", err)
	}
	out, err := s.Graph().AddOutput(id, "out", "scalar")
	if err != nil {
		t.Fatalf("AddOutput failed: %v", err)
	}
	return id, in, out
}

func mustValidate(t *testing.T, s *testState) {
	t.Helper()
	if err := s.Validate(); err != nil {
		t.Fatalf("state is inconsistent: %v", err)
	}
}
