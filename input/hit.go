package input

import (
	"slices"

	"graphed/editor"
	"graphed/geometry"
	"graphed/graph"
)

// TargetKind says what lies under the pointer.
type TargetKind int

const (
	TargetNone TargetKind = iota
	TargetNode
	TargetPort
)

// Target is the result of a hit test. Param is only set for TargetPort.
type Target struct {
	Kind  TargetKind
	Node  graph.NodeID
	Param graph.AnyParam
}

// HitTester resolves a canvas point to whatever is drawn there. The layout
// of nodes and ports belongs to the rendering layer, so it supplies this.
type HitTester interface {
	HitTest(p geometry.Pos2) Target
}

// BoxLayout is a simple cell layout: every node is a box Width wide with a
// title row followed by one row per port. Inputs sit in the left column,
// outputs in the right one.
type BoxLayout[N any, D comparable, V any, T editor.Template[N, D, V], U any] struct {
	State     *editor.State[N, D, V, T, U]
	Width     float64
	RowHeight float64
}

// NodeRect returns the box drawn for a node.
func (l BoxLayout[N, D, V, T, U]) NodeRect(id graph.NodeID) (geometry.Rect, bool) {
	n, ok := l.State.Graph().Node(id)
	if !ok {
		return geometry.Rect{}, false
	}
	pos, _ := l.State.GetNodePosition(id)
	rows := 1 + max(len(n.Inputs), len(n.Outputs))
	return geometry.RectFromMinSize(pos, geometry.Vec2{X: l.Width, Y: l.RowHeight * float64(rows)}), true
}

// HitTest checks nodes from the top of the paint order down.
func (l BoxLayout[N, D, V, T, U]) HitTest(p geometry.Pos2) Target {
	order := l.State.GetNodeOrder()
	for _, id := range slices.Backward(order) {
		r, ok := l.NodeRect(id)
		if !ok || !r.Contains(p) {
			continue
		}
		if l.RowHeight <= 0 {
			return Target{Kind: TargetNode, Node: id}
		}
		n, _ := l.State.Graph().Node(id)

		row := int((p.Y - r.Min.Y) / l.RowHeight)
		if row >= 1 {
			switch {
			case p.X < r.Min.X+1 && row-1 < len(n.Inputs):
				return Target{Kind: TargetPort, Node: id, Param: graph.InputParam(n.Inputs[row-1])}
			case p.X >= r.Max.X-1 && row-1 < len(n.Outputs):
				return Target{Kind: TargetPort, Node: id, Param: graph.OutputParam(n.Outputs[row-1])}
			}
		}
		return Target{Kind: TargetNode, Node: id}
	}
	return Target{}
}
