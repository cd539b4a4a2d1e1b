package editor

import (
	"errors"
	"fmt"
	"slices"

	"graphed/geometry"
	"graphed/graph"
)

// Reconcile repairs references that disagree with the graph: stale ids are
// dropped from the paint order, positions, selection and drags, live nodes
// missing from the order are appended and missing or non-finite positions
// are set to the origin. Every repair is logged; the number of repairs is
// returned.
func (s *State[N, D, V, T, U]) Reconcile() int {
	fixes := 0

	seen := make(map[graph.NodeID]bool, len(s.nodeOrder))
	order := make([]graph.NodeID, 0, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		switch {
		case !s.graph.HasNode(id):
			s.logger.Warn("dropping stale node from paint order", "node", id)
			fixes++
		case seen[id]:
			s.logger.Warn("dropping duplicate node from paint order", "node", id)
			fixes++
		default:
			seen[id] = true
			order = append(order, id)
		}
	}
	for _, id := range s.graph.NodeIDs() {
		if !seen[id] {
			s.logger.Warn("appending node missing from paint order", "node", id)
			order = append(order, id)
			fixes++
		}
	}
	s.nodeOrder = order

	for id := range s.positions {
		if !s.graph.HasNode(id) {
			s.logger.Warn("dropping position of stale node", "node", id)
			delete(s.positions, id)
			fixes++
		}
	}
	for _, id := range s.nodeOrder {
		p, ok := s.positions[id]
		switch {
		case !ok:
			s.logger.Warn("node has no position, placing at origin", "node", id)
			s.positions[id] = geometry.Pos2{}
			fixes++
		case !p.IsFinite():
			s.logger.Warn("node position is not finite, placing at origin", "node", id, "x", p.X, "y", p.Y)
			s.positions[id] = geometry.Pos2{}
			fixes++
		}
	}

	if selected := s.liveUnique(s.selected); len(selected) != len(s.selected) {
		s.logger.Warn("dropping stale or duplicate selection entries", "count", len(s.selected)-len(selected))
		fixes += len(s.selected) - len(selected)
		s.selected = selected
	}

	if c := s.connection; c != nil {
		if owner, ok := s.graph.ParamNode(c.Param); !ok || owner != c.Node {
			s.logger.Warn("dropping connection drag with stale anchor", "node", c.Node, "param", c.Param.String())
			s.connection = nil
			fixes++
		}
	}

	return fixes
}

// Validate reports every invariant the state currently breaks.
func (s *State[N, D, V, T, U]) Validate() error {
	var errs []error
	fail := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...)))
	}

	counts := make(map[graph.NodeID]int, len(s.nodeOrder))
	for _, id := range s.nodeOrder {
		counts[id]++
	}
	for id, n := range counts {
		if n > 1 {
			fail("node %d appears %d times in paint order", id, n)
		}
		if !s.graph.HasNode(id) {
			fail("paint order references missing node %d", id)
		}
	}
	for _, id := range s.graph.NodeIDs() {
		if counts[id] == 0 {
			fail("node %d is missing from paint order", id)
		}
		if p, ok := s.positions[id]; !ok {
			fail("node %d has no position", id)
		} else if !p.IsFinite() {
			fail("node %d is at non-finite position (%v, %v)", id, p.X, p.Y)
		}
	}
	for id := range s.positions {
		if !s.graph.HasNode(id) {
			fail("position recorded for missing node %d", id)
		}
	}

	for i, id := range s.selected {
		if !s.graph.HasNode(id) {
			fail("selection references missing node %d", id)
		}
		if slices.Index(s.selected, id) != i {
			fail("node %d is selected twice", id)
		}
	}

	if c := s.connection; c != nil {
		if owner, ok := s.graph.ParamNode(c.Param); !ok || owner != c.Node {
			fail("connection drag anchored at missing port %s of node %d", c.Param, c.Node)
		}
	}

	if !s.sceneRect.IsFinite() {
		fail("scene rect %+v is not finite", s.sceneRect)
	}

	if err := s.zoomRange.Validate(); err != nil {
		errs = append(errs, err)
	} else if !s.zoomRange.Contains(s.zoom) {
		fail("zoom %v outside range [%v, %v]", s.zoom, s.zoomRange.Min, s.zoomRange.Max)
	}

	return errors.Join(errs...)
}
