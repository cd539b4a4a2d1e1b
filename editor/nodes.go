package editor

import (
	"fmt"
	"maps"
	"slices"

	"graphed/geometry"
	"graphed/graph"
)

// AddNode inserts a node into the graph at pos. It is painted on top of
// every existing node. A non-finite pos places the node at the origin.
func (s *State[N, D, V, T, U]) AddNode(label string, data N, pos geometry.Pos2) graph.NodeID {
	id := s.graph.AddNode(label, data)
	if pos.IsFinite() {
		s.positions[id] = pos
	} else {
		s.logger.Warn("node position is not finite, placing at origin", "node", id, "x", pos.X, "y", pos.Y)
	}
	s.logger.Debug("node added", "node", id, "label", label)
	return id
}

// RemoveNode deletes a node and every connection touching it. The node also
// leaves the paint order, the positions and the selection, and a connection
// drag anchored on it is dropped.
func (s *State[N, D, V, T, U]) RemoveNode(id graph.NodeID) ([]graph.Connection, error) {
	removed, err := s.graph.RemoveNode(id)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("node removed", "node", id, "connections", len(removed))
	return removed, nil
}

// DeleteSelected removes every selected node and returns their ids.
func (s *State[N, D, V, T, U]) DeleteSelected() []graph.NodeID {
	doomed := slices.Clone(s.selected)
	for _, id := range doomed {
		if _, err := s.RemoveNode(id); err != nil {
			s.logger.Warn("selected node already gone", "node", id, "error", err)
		}
	}
	return doomed
}

// BringToFront moves a node to the end of the paint order.
func (s *State[N, D, V, T, U]) BringToFront(id graph.NodeID) error {
	i := slices.Index(s.nodeOrder, id)
	if i < 0 {
		return fmt.Errorf("bring to front: %w: %d", graph.ErrNodeNotFound, id)
	}
	s.nodeOrder = append(slices.Delete(s.nodeOrder, i, i+1), id)
	return nil
}

// SetNodePosition places a node at pos.
func (s *State[N, D, V, T, U]) SetNodePosition(id graph.NodeID, pos geometry.Pos2) error {
	if !s.graph.HasNode(id) {
		return fmt.Errorf("set position: %w: %d", graph.ErrNodeNotFound, id)
	}
	if !pos.IsFinite() {
		return fmt.Errorf("set position of node %d: %w: (%v, %v)", id, ErrNonFinitePosition, pos.X, pos.Y)
	}
	s.positions[id] = pos
	return nil
}

// MoveNode shifts a node by delta canvas units.
func (s *State[N, D, V, T, U]) MoveNode(id graph.NodeID, delta geometry.Vec2) error {
	p, ok := s.positions[id]
	if !ok {
		return fmt.Errorf("move node: %w: %d", graph.ErrNodeNotFound, id)
	}
	next := p.Add(delta)
	if !next.IsFinite() {
		return fmt.Errorf("move node %d: %w: (%v, %v)", id, ErrNonFinitePosition, next.X, next.Y)
	}
	s.positions[id] = next
	return nil
}

// MoveSelection shifts every selected node by delta canvas units. Nothing
// moves if any node would end up at a non-finite position.
func (s *State[N, D, V, T, U]) MoveSelection(delta geometry.Vec2) {
	moved := make(map[graph.NodeID]geometry.Pos2, len(s.selected))
	for _, id := range s.selected {
		p, ok := s.positions[id]
		if !ok {
			continue
		}
		next := p.Add(delta)
		if !next.IsFinite() {
			s.logger.Warn("ignoring selection move to a non-finite position", "node", id, "dx", delta.X, "dy", delta.Y)
			return
		}
		moved[id] = next
	}
	maps.Copy(s.positions, moved)
}

// NodesIn returns the nodes positioned inside r, in paint order.
func (s *State[N, D, V, T, U]) NodesIn(r geometry.Rect) []graph.NodeID {
	var ids []graph.NodeID
	for _, id := range s.nodeOrder {
		if p, ok := s.positions[id]; ok && r.Contains(p) {
			ids = append(ids, id)
		}
	}
	return ids
}
