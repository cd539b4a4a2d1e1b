package input

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"

	"graphed/config"
	"graphed/demo"
	"graphed/geometry"
	"graphed/graph"
)

type fixture struct {
	state    *demo.State
	adapter  *Adapter[demo.Op, demo.DataType, float64, demo.Template, struct{}]
	constant graph.Node[demo.Op] // box (5,5)-(15,7)
	add      graph.Node[demo.Op] // box (25,5)-(35,8)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	s := demo.New()
	place := func(op demo.Op, x, y float64) graph.Node[demo.Op] {
		tmpl, _ := demo.Lookup(op)
		id, err := s.Instantiate(tmpl, geometry.Pos2{X: x, Y: y})
		if err != nil {
			t.Fatalf("Instantiate %s failed: %v", op, err)
		}
		n, _ := s.Graph().Node(id)
		return n
	}
	f := &fixture{
		state:    s,
		constant: place(demo.OpConstant, 5, 5),
		add:      place(demo.OpAdd, 25, 5),
	}
	layout := BoxLayout[demo.Op, demo.DataType, float64, demo.Template, struct{}]{State: s, Width: 10, RowHeight: 1}
	f.adapter = NewAdapter(s, layout, config.Default(), demo.Templates())
	f.adapter.HandleEvent(tcell.NewEventResize(80, 24))
	return f
}

func (f *fixture) mouse(x, y int, btn tcell.ButtonMask, mod tcell.ModMask) bool {
	return f.adapter.HandleEvent(tcell.NewEventMouse(x, y, btn, mod))
}

func (f *fixture) key(k tcell.Key, r rune) bool {
	return f.adapter.HandleEvent(tcell.NewEventKey(k, r, tcell.ModNone))
}

func TestBoxLayoutHitTest(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name string
		p    geometry.Pos2
		want Target
	}{
		{"empty canvas", geometry.Pos2{X: 0, Y: 0}, Target{}},
		{"title row", geometry.Pos2{X: 10, Y: 5}, Target{Kind: TargetNode, Node: f.constant.ID}},
		{"input column", geometry.Pos2{X: 5, Y: 6}, Target{Kind: TargetPort, Node: f.constant.ID, Param: graph.InputParam(f.constant.Inputs[0])}},
		{"output column", geometry.Pos2{X: 14, Y: 6}, Target{Kind: TargetPort, Node: f.constant.ID, Param: graph.OutputParam(f.constant.Outputs[0])}},
		{"second input", geometry.Pos2{X: 25, Y: 7}, Target{Kind: TargetPort, Node: f.add.ID, Param: graph.InputParam(f.add.Inputs[1])}},
		{"row without output", geometry.Pos2{X: 34, Y: 7}, Target{Kind: TargetNode, Node: f.add.ID}},
	}

	layout := BoxLayout[demo.Op, demo.DataType, float64, demo.Template, struct{}]{State: f.state, Width: 10, RowHeight: 1}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, layout.HitTest(tt.p)); diff != "" {
				t.Errorf("hit mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestHitTestFlatRows(t *testing.T) {
	f := newFixture(t)

	layout := BoxLayout[demo.Op, demo.DataType, float64, demo.Template, struct{}]{State: f.state, Width: 10}
	want := Target{Kind: TargetNode, Node: f.constant.ID}
	for _, p := range []geometry.Pos2{{X: 5, Y: 5}, {X: 14, Y: 5}} {
		if diff := cmp.Diff(want, layout.HitTest(p)); diff != "" {
			t.Errorf("hit at %v mismatch (-want +got):\n%s", p, diff)
		}
	}
	if got := layout.HitTest(geometry.Pos2{X: 5, Y: 6}); got != (Target{}) {
		t.Errorf("Expected nothing below a flat box, got %+v", got)
	}
}

func TestHitTestPrefersTopNode(t *testing.T) {
	f := newFixture(t)
	f.state.SetNodePosition(f.add.ID, geometry.Pos2{X: 8, Y: 5})

	layout := BoxLayout[demo.Op, demo.DataType, float64, demo.Template, struct{}]{State: f.state, Width: 10, RowHeight: 1}
	if got := layout.HitTest(geometry.Pos2{X: 12, Y: 5}); got.Node != f.add.ID {
		t.Errorf("Expected the later node on top, got %d", got.Node)
	}
	f.state.BringToFront(f.constant.ID)
	if got := layout.HitTest(geometry.Pos2{X: 12, Y: 5}); got.Node != f.constant.ID {
		t.Errorf("Expected the raised node on top, got %d", got.Node)
	}
}

func TestDragConnection(t *testing.T) {
	f := newFixture(t)
	g := f.state.Graph()

	if !f.mouse(14, 6, tcell.Button1, tcell.ModNone) {
		t.Fatal("Expected the press on an output to start a drag")
	}
	if f.adapter.Mode() != ModeConnecting {
		t.Fatalf("Expected CONNECT mode, got %s", f.adapter.Mode())
	}
	f.mouse(20, 6, tcell.Button1, tcell.ModNone)
	if p := f.adapter.Pointer(); p != (geometry.Pos2{X: 20, Y: 6}) {
		t.Errorf("Expected pointer at (20,6), got %v", p)
	}
	f.mouse(25, 6, tcell.ButtonNone, tcell.ModNone)

	if out, ok := g.ConnectionTo(f.add.Inputs[0]); !ok || out != f.constant.Outputs[0] {
		t.Errorf("Expected constant -> add.a, got %d (%v)", out, ok)
	}
	if f.adapter.Mode() != ModeIdle {
		t.Errorf("Expected IDLE after release, got %s", f.adapter.Mode())
	}

	// Picking up the connected input moves the wire to the other input.
	f.mouse(25, 6, tcell.Button1, tcell.ModNone)
	if _, ok := g.ConnectionTo(f.add.Inputs[0]); ok {
		t.Error("Expected the connection to be detached")
	}
	pending, ok := f.state.GetConnectionInProgress()
	if !ok || pending.Param != graph.OutputParam(f.constant.Outputs[0]) {
		t.Fatalf("Expected a drag from the constant output, got %+v (%v)", pending, ok)
	}
	f.mouse(25, 7, tcell.ButtonNone, tcell.ModNone)
	if out, ok := g.ConnectionTo(f.add.Inputs[1]); !ok || out != f.constant.Outputs[0] {
		t.Errorf("Expected constant -> add.b, got %d (%v)", out, ok)
	}
}

func TestDragConnectionReleasedOnNothing(t *testing.T) {
	f := newFixture(t)

	f.mouse(14, 6, tcell.Button1, tcell.ModNone)
	f.mouse(50, 20, tcell.ButtonNone, tcell.ModNone)

	if len(f.state.Graph().Connections()) != 0 {
		t.Errorf("Expected no connections, got %v", f.state.Graph().Connections())
	}
	if !f.state.IsIdle() {
		t.Error("Expected the drag to end")
	}
}

func TestBoxSelectWithModifiers(t *testing.T) {
	f := newFixture(t)

	f.mouse(0, 0, tcell.Button1, tcell.ModNone)
	if f.adapter.Mode() != ModeBoxSelecting {
		t.Fatalf("Expected SELECT mode, got %s", f.adapter.Mode())
	}
	f.mouse(10, 10, tcell.Button1, tcell.ModNone)
	if diff := cmp.Diff([]graph.NodeID{f.constant.ID}, f.state.PreviewBoxSelection()); diff != "" {
		t.Errorf("preview mismatch (-want +got):\n%s", diff)
	}
	f.mouse(20, 20, tcell.ButtonNone, tcell.ModNone)
	if diff := cmp.Diff([]graph.NodeID{f.constant.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	// Shift unions with the previous selection.
	f.mouse(22, 0, tcell.Button1, tcell.ModShift)
	f.mouse(40, 20, tcell.ButtonNone, tcell.ModShift)
	if diff := cmp.Diff([]graph.NodeID{f.constant.ID, f.add.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	// Alt subtracts.
	f.mouse(0, 0, tcell.Button1, tcell.ModAlt)
	f.mouse(20, 20, tcell.ButtonNone, tcell.ModAlt)
	if diff := cmp.Diff([]graph.NodeID{f.add.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestEscapeCancelsBoxSelection(t *testing.T) {
	f := newFixture(t)
	f.state.SelectNode(f.add.ID)

	f.mouse(0, 0, tcell.Button1, tcell.ModNone)
	f.mouse(20, 20, tcell.Button1, tcell.ModNone)
	if !f.key(tcell.KeyEscape, 0) {
		t.Fatal("Expected escape to cancel the drag")
	}
	if !f.state.IsIdle() {
		t.Error("Expected no box selection after escape")
	}
	// The release that follows has nothing to finish.
	if f.mouse(20, 20, tcell.ButtonNone, tcell.ModNone) {
		t.Error("Expected the release after a cancel to be ignored")
	}
	if diff := cmp.Diff([]graph.NodeID{f.add.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestDragNodes(t *testing.T) {
	f := newFixture(t)

	f.mouse(10, 5, tcell.Button1, tcell.ModNone)
	if f.adapter.Mode() != ModeMovingNodes {
		t.Fatalf("Expected MOVE mode, got %s", f.adapter.Mode())
	}
	order := f.state.GetNodeOrder()
	if order[len(order)-1] != f.constant.ID {
		t.Error("Expected the pressed node to be raised")
	}
	f.mouse(12, 8, tcell.Button1, tcell.ModNone)
	f.mouse(12, 8, tcell.ButtonNone, tcell.ModNone)

	if p, _ := f.state.GetNodePosition(f.constant.ID); p != (geometry.Pos2{X: 7, Y: 8}) {
		t.Errorf("Expected the node at (7,8), got %v", p)
	}
	if p, _ := f.state.GetNodePosition(f.add.ID); p != (geometry.Pos2{X: 25, Y: 5}) {
		t.Errorf("Expected the unselected node to stay, got %v", p)
	}
	if f.adapter.Mode() != ModeIdle {
		t.Errorf("Expected IDLE, got %s", f.adapter.Mode())
	}
}

func TestCtrlClickToggles(t *testing.T) {
	f := newFixture(t)

	f.mouse(10, 5, tcell.Button1, tcell.ModNone)
	f.mouse(10, 5, tcell.ButtonNone, tcell.ModNone)
	f.mouse(30, 5, tcell.Button1, tcell.ModCtrl)
	f.mouse(30, 5, tcell.ButtonNone, tcell.ModCtrl)
	if diff := cmp.Diff([]graph.NodeID{f.constant.ID, f.add.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}

	f.mouse(10, 5, tcell.Button1, tcell.ModCtrl)
	f.mouse(10, 5, tcell.ButtonNone, tcell.ModCtrl)
	if diff := cmp.Diff([]graph.NodeID{f.add.ID}, f.state.GetSelectedNodes()); diff != "" {
		t.Errorf("selection mismatch (-want +got):\n%s", diff)
	}
}

func TestWheelZoomAndPan(t *testing.T) {
	f := newFixture(t)

	if !f.mouse(0, 0, tcell.WheelUp, tcell.ModNone) {
		t.Fatal("Expected the wheel to zoom")
	}
	if z := f.state.GetZoom(); z != 1.1 {
		t.Errorf("Expected zoom 1.1, got %v", z)
	}
	// The point under the cursor stays put.
	if min := f.state.GetSceneRect().Min; min != (geometry.Pos2{}) {
		t.Errorf("Expected the anchor at the origin to stay, got %v", min)
	}
	f.mouse(0, 0, tcell.WheelDown, tcell.ModNone)
	if z := f.state.GetZoom(); z < 0.999 || z > 1.001 {
		t.Errorf("Expected zoom back at 1, got %v", z)
	}

	f.mouse(40, 10, tcell.Button3, tcell.ModNone)
	if f.adapter.Mode() != ModePanning {
		t.Fatalf("Expected PAN mode, got %s", f.adapter.Mode())
	}
	before := f.state.GetSceneRect()
	f.mouse(44, 10, tcell.Button3, tcell.ModNone)
	f.mouse(44, 10, tcell.ButtonNone, tcell.ModNone)
	after := f.state.GetSceneRect()
	dx := after.Min.X - before.Min.X
	if dx > -3.99 || dx < -4.01 {
		t.Errorf("Expected the view to move 4 units left, moved %v", dx)
	}
}

func TestResizeSetsViewport(t *testing.T) {
	f := newFixture(t)
	if size := f.state.GetSceneRect().Size(); size != (geometry.Vec2{X: 80, Y: 24}) {
		t.Errorf("Expected an 80x24 scene, got %v", size)
	}
}

func TestKeys(t *testing.T) {
	f := newFixture(t)

	if !f.key(tcell.KeyCtrlA, 0) || len(f.state.GetSelectedNodes()) != 2 {
		t.Fatalf("Expected ctrl-a to select everything, got %v", f.state.GetSelectedNodes())
	}
	f.state.SelectNode(f.add.ID)
	if !f.key(tcell.KeyDelete, 0) {
		t.Fatal("Expected delete to remove the selection")
	}
	if f.state.Graph().HasNode(f.add.ID) || !f.state.Graph().HasNode(f.constant.ID) {
		t.Error("Expected only the selected node to go")
	}
	if f.key(tcell.KeyDelete, 0) {
		t.Error("Expected delete with nothing selected to do nothing")
	}

	f.key(tcell.KeyRune, '+')
	if z := f.state.GetZoom(); z != 1.1 {
		t.Errorf("Expected zoom 1.1, got %v", z)
	}
	f.key(tcell.KeyRune, '0')
	if z := f.state.GetZoom(); z != 1 {
		t.Errorf("Expected zoom reset to 1, got %v", z)
	}
}

func TestFinderKeys(t *testing.T) {
	f := newFixture(t)

	f.mouse(50, 12, tcell.ButtonNone, tcell.ModNone)
	if !f.key(tcell.KeyRune, ' ') || f.adapter.Mode() != ModeFinder {
		t.Fatalf("Expected space to open the finder, mode %s", f.adapter.Mode())
	}
	for _, r := range "mux" {
		f.key(tcell.KeyRune, r)
	}
	f.key(tcell.KeyBackspace2, 0)
	f.key(tcell.KeyRune, 'l')
	if q := f.state.GetNodeFinder().Query(); q != "mul" {
		t.Fatalf("Expected query %q, got %q", "mul", q)
	}
	if !f.key(tcell.KeyEnter, 0) {
		t.Fatal("Expected enter to add a node")
	}

	order := f.state.GetNodeOrder()
	n, _ := f.state.Graph().Node(order[len(order)-1])
	if n.Data != demo.OpMultiply {
		t.Errorf("Expected a multiply node, got %s", n.Data)
	}
	if p, _ := f.state.GetNodePosition(n.ID); p != (geometry.Pos2{X: 50, Y: 12}) {
		t.Errorf("Expected the node at the pointer, got %v", p)
	}
	if f.adapter.Mode() != ModeIdle {
		t.Errorf("Expected the finder to close, mode %s", f.adapter.Mode())
	}

	f.key(tcell.KeyRune, ' ')
	f.key(tcell.KeyRune, 'q')
	if f.key(tcell.KeyEnter, 0) {
		t.Error("Expected enter without a match to fail")
	}
	if !f.key(tcell.KeyEscape, 0) || f.state.GetNodeFinder() != nil {
		t.Error("Expected escape to close the finder")
	}
}

func TestModeString(t *testing.T) {
	if ModeBoxSelecting.String() != "SELECT" || Mode(42).String() != "UNKNOWN" {
		t.Error("Unexpected mode names")
	}
}
