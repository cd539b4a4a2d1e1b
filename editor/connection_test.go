package editor

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"graphed/geometry"
	"graphed/graph"
)

func TestConnectionDragCancel(t *testing.T) {
	s := newTestState()
	a, _, aOut := addPorted(t, s, "a", geometry.Pos2{})
	addPorted(t, s, "b", geometry.Pos2{})
	before := s.Graph().Snapshot()

	if err := s.BeginConnection(a, graph.OutputParam(aOut)); err != nil {
		t.Fatalf("BeginConnection failed: %v", err)
	}
	pending, ok := s.GetConnectionInProgress()
	if !ok || pending.Node != a || pending.Param != graph.OutputParam(aOut) {
		t.Fatalf("Unexpected pending connection %+v (%v)", pending, ok)
	}

	if !s.CancelConnection() {
		t.Error("Expected CancelConnection to report an active drag")
	}
	if _, ok := s.GetConnectionInProgress(); ok {
		t.Error("Expected no connection in progress after cancel")
	}
	if diff := cmp.Diff(before, s.Graph().Snapshot()); diff != "" {
		t.Errorf("graph changed by cancelled drag (-want +got):\n%s", diff)
	}
	if s.CancelConnection() {
		t.Error("Expected second cancel to be a no-op")
	}
}

func TestConnectionDragIsExclusive(t *testing.T) {
	s := newTestState()
	a, aIn, aOut := addPorted(t, s, "a", geometry.Pos2{})

	if err := s.BeginConnection(a, graph.OutputParam(aOut)); err != nil {
		t.Fatalf("BeginConnection failed: %v", err)
	}
	if err := s.BeginConnection(a, graph.InputParam(aIn)); !errors.Is(err, ErrInteractionInProgress) {
		t.Errorf("Expected ErrInteractionInProgress, got %v", err)
	}
	if err := s.BeginBoxSelection(geometry.Pos2{}); !errors.Is(err, ErrInteractionInProgress) {
		t.Errorf("Expected box selection to be refused, got %v", err)
	}
	pending, _ := s.GetConnectionInProgress()
	if pending.Param != graph.OutputParam(aOut) {
		t.Errorf("Original drag was replaced: %+v", pending)
	}
}

func TestBeginConnectionValidatesAnchor(t *testing.T) {
	s := newTestState()
	a, aIn, _ := addPorted(t, s, "a", geometry.Pos2{})
	b, _, _ := addPorted(t, s, "b", geometry.Pos2{})

	tests := []struct {
		name    string
		node    graph.NodeID
		param   graph.AnyParam
		wantErr error
	}{
		{"unknown node", 999, graph.InputParam(aIn), graph.ErrNodeNotFound},
		{"unknown param", a, graph.OutputParam(999), graph.ErrParamNotFound},
		{"param of other node", b, graph.InputParam(aIn), ErrParamNotOnNode},
		{"wrong direction tag", a, graph.OutputParam(aIn), graph.ErrParamNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.BeginConnection(tt.node, tt.param); !errors.Is(err, tt.wantErr) {
				t.Errorf("Expected %v, got %v", tt.wantErr, err)
			}
			if !s.IsIdle() {
				t.Error("Failed begin left a drag behind")
			}
		})
	}
}

func TestReleaseConnection(t *testing.T) {
	s := newTestState()
	a, aIn, aOut := addPorted(t, s, "a", geometry.Pos2{})
	_, bIn, bOut := addPorted(t, s, "b", geometry.Pos2{})
	v := s.AddNode("vec", "vec", geometry.Pos2{})
	vIn, _ := s.Graph().AddInput(v, "v", "vector", 0)

	t.Run("compatible target commits", func(t *testing.T) {
		s.BeginConnection(a, graph.OutputParam(aOut))
		target := graph.InputParam(bIn)
		conn, ok := s.ReleaseConnection(&target)
		if !ok {
			t.Fatal("Expected the connection to be committed")
		}
		if conn != (graph.Connection{Output: aOut, Input: bIn}) {
			t.Errorf("Unexpected connection %+v", conn)
		}
		if out, ok := s.Graph().ConnectionTo(bIn); !ok || out != aOut {
			t.Errorf("Graph does not hold the connection")
		}
	})

	t.Run("drag from input to output commits", func(t *testing.T) {
		s.BeginConnection(a, graph.InputParam(aIn))
		target := graph.OutputParam(bOut)
		if _, ok := s.ReleaseConnection(&target); !ok {
			t.Fatal("Expected the connection to be committed")
		}
		if out, _ := s.Graph().ConnectionTo(aIn); out != bOut {
			t.Errorf("Expected input %d fed by %d, got %d", aIn, bOut, out)
		}
	})

	t.Run("incompatible target discards", func(t *testing.T) {
		before := len(s.Graph().Connections())
		s.BeginConnection(a, graph.OutputParam(aOut))
		target := graph.InputParam(vIn)
		if _, ok := s.ReleaseConnection(&target); ok {
			t.Error("Expected a type mismatch to be discarded")
		}
		if len(s.Graph().Connections()) != before {
			t.Error("Graph changed by a discarded drag")
		}
		if !s.IsIdle() {
			t.Error("Expected idle after release")
		}
	})

	t.Run("release over nothing discards", func(t *testing.T) {
		s.BeginConnection(a, graph.OutputParam(aOut))
		if _, ok := s.ReleaseConnection(nil); ok {
			t.Error("Expected release over empty canvas to be discarded")
		}
		if !s.IsIdle() {
			t.Error("Expected idle after release")
		}
	})

	t.Run("release while idle", func(t *testing.T) {
		target := graph.InputParam(bIn)
		if _, ok := s.ReleaseConnection(&target); ok {
			t.Error("Expected release without a drag to do nothing")
		}
	})
}

func TestRemovingAnchorCancelsDrag(t *testing.T) {
	s := newTestState()
	a, _, aOut := addPorted(t, s, "a", geometry.Pos2{})

	s.BeginConnection(a, graph.OutputParam(aOut))
	if _, err := s.RemoveNode(a); err != nil {
		t.Fatalf("RemoveNode failed: %v", err)
	}
	if _, ok := s.GetConnectionInProgress(); ok {
		t.Error("Expected the drag to be dropped with its anchor node")
	}
	mustValidate(t, s)
}

func TestDetachInput(t *testing.T) {
	s := newTestState()
	a, _, aOut := addPorted(t, s, "a", geometry.Pos2{})
	b, bIn, _ := addPorted(t, s, "b", geometry.Pos2{})
	s.Graph().Connect(aOut, bIn)

	if err := s.DetachInput(b, bIn); err != nil {
		t.Fatalf("DetachInput failed: %v", err)
	}
	if _, ok := s.Graph().ConnectionTo(bIn); ok {
		t.Error("Expected the connection to be lifted off the input")
	}
	pending, ok := s.GetConnectionInProgress()
	if !ok || pending.Node != a || pending.Param != graph.OutputParam(aOut) {
		t.Errorf("Expected drag from output of %d, got %+v", a, pending)
	}
	s.CancelConnection()

	// An unconnected input starts a plain drag.
	if err := s.DetachInput(b, bIn); err != nil {
		t.Fatalf("DetachInput failed: %v", err)
	}
	if pending, _ := s.GetConnectionInProgress(); pending.Param != graph.InputParam(bIn) {
		t.Errorf("Expected drag from input, got %+v", pending)
	}
}

func TestCancelInteraction(t *testing.T) {
	s := newTestState()
	if s.CancelInteraction() {
		t.Error("Expected nothing to cancel")
	}

	s.OpenNodeFinder(geometry.Pos2{}, nil)
	s.BeginBoxSelection(geometry.Pos2{})
	if !s.CancelInteraction() {
		t.Error("Expected the box selection and finder to be cancelled")
	}
	if !s.IsIdle() || s.GetNodeFinder() != nil {
		t.Error("Expected idle state with closed finder")
	}
}
