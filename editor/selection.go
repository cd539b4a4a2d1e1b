package editor

import (
	"fmt"
	"slices"

	"graphed/geometry"
	"graphed/graph"
)

// MergePolicy combines the selection held before a box selection with the
// nodes caught by the box. Which policy applies (usually picked by modifier
// keys) is the caller's decision.
type MergePolicy func(previous, boxed []graph.NodeID) []graph.NodeID

// ReplaceSelection selects exactly the boxed nodes.
func ReplaceSelection(_, boxed []graph.NodeID) []graph.NodeID {
	return slices.Clone(boxed)
}

// UnionSelection adds the boxed nodes to the previous selection.
func UnionSelection(previous, boxed []graph.NodeID) []graph.NodeID {
	out := slices.Clone(previous)
	for _, id := range boxed {
		if !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}

// ToggleSelection flips the membership of every boxed node.
func ToggleSelection(previous, boxed []graph.NodeID) []graph.NodeID {
	out := slices.DeleteFunc(slices.Clone(previous), func(id graph.NodeID) bool {
		return slices.Contains(boxed, id)
	})
	for _, id := range boxed {
		if !slices.Contains(previous, id) {
			out = append(out, id)
		}
	}
	return out
}

// SubtractSelection removes the boxed nodes from the previous selection.
func SubtractSelection(previous, boxed []graph.NodeID) []graph.NodeID {
	return slices.DeleteFunc(slices.Clone(previous), func(id graph.NodeID) bool {
		return slices.Contains(boxed, id)
	})
}

var mergePolicies = map[string]MergePolicy{
	"replace":  ReplaceSelection,
	"union":    UnionSelection,
	"toggle":   ToggleSelection,
	"subtract": SubtractSelection,
}

// LookupMergePolicy returns the built-in policy with the given name:
// replace, union, toggle or subtract.
func LookupMergePolicy(name string) (MergePolicy, bool) {
	p, ok := mergePolicies[name]
	return p, ok
}

// IsSelected reports whether a node is selected.
func (s *State[N, D, V, T, U]) IsSelected(id graph.NodeID) bool {
	return slices.Contains(s.selected, id)
}

// SelectNode makes id the only selected node.
func (s *State[N, D, V, T, U]) SelectNode(id graph.NodeID) error {
	if !s.graph.HasNode(id) {
		return fmt.Errorf("select: %w: %d", graph.ErrNodeNotFound, id)
	}
	s.selected = []graph.NodeID{id}
	return nil
}

// AddToSelection selects id in addition to the current selection.
func (s *State[N, D, V, T, U]) AddToSelection(id graph.NodeID) error {
	if !s.graph.HasNode(id) {
		return fmt.Errorf("select: %w: %d", graph.ErrNodeNotFound, id)
	}
	if !slices.Contains(s.selected, id) {
		s.selected = append(s.selected, id)
	}
	return nil
}

// ToggleNodeSelection flips the membership of id.
func (s *State[N, D, V, T, U]) ToggleNodeSelection(id graph.NodeID) error {
	if i := slices.Index(s.selected, id); i >= 0 {
		s.selected = slices.Delete(s.selected, i, i+1)
		return nil
	}
	return s.AddToSelection(id)
}

// SetSelection replaces the selection. Duplicates are collapsed; unknown ids
// are rejected and leave the selection untouched.
func (s *State[N, D, V, T, U]) SetSelection(ids []graph.NodeID) error {
	for _, id := range ids {
		if !s.graph.HasNode(id) {
			return fmt.Errorf("select: %w: %d", graph.ErrNodeNotFound, id)
		}
	}
	s.selected = s.liveUnique(ids)
	return nil
}

// ClearSelection deselects everything.
func (s *State[N, D, V, T, U]) ClearSelection() {
	s.selected = []graph.NodeID{}
}

// BeginBoxSelection starts a rubber-band drag at start.
func (s *State[N, D, V, T, U]) BeginBoxSelection(start geometry.Pos2) error {
	if !s.IsIdle() {
		return fmt.Errorf("begin box selection: %w", ErrInteractionInProgress)
	}
	s.box = &BoxSelection{Start: start, Current: start}
	s.logger.Debug("box selection started", "x", start.X, "y", start.Y)
	return nil
}

// UpdateBoxSelection records the pointer position of an active box drag.
func (s *State[N, D, V, T, U]) UpdateBoxSelection(current geometry.Pos2) bool {
	if s.box == nil {
		return false
	}
	s.box.Current = current
	return true
}

// PreviewBoxSelection returns the nodes the box currently covers, in paint
// order. The committed selection is not touched.
func (s *State[N, D, V, T, U]) PreviewBoxSelection() []graph.NodeID {
	if s.box == nil {
		return nil
	}
	return s.NodesIn(s.box.Rect())
}

// EndBoxSelection finishes the drag at end and commits
// policy(previous selection, boxed nodes). A nil policy replaces the
// selection. It returns the new selection, or false if no drag was active.
func (s *State[N, D, V, T, U]) EndBoxSelection(end geometry.Pos2, policy MergePolicy) ([]graph.NodeID, bool) {
	if s.box == nil {
		return nil, false
	}
	s.box.Current = end
	boxed := s.NodesIn(s.box.Rect())
	s.box = nil

	if policy == nil {
		policy = ReplaceSelection
	}
	s.selected = s.liveUnique(policy(slices.Clone(s.selected), boxed))
	s.logger.Debug("box selection committed", "boxed", len(boxed), "selected", len(s.selected))
	return slices.Clone(s.selected), true
}

// CancelBoxSelection abandons the drag without changing the selection.
func (s *State[N, D, V, T, U]) CancelBoxSelection() bool {
	if s.box == nil {
		return false
	}
	s.box = nil
	return true
}

// liveUnique drops duplicates and ids that are not in the graph, keeping
// first occurrences in order.
func (s *State[N, D, V, T, U]) liveUnique(ids []graph.NodeID) []graph.NodeID {
	out := make([]graph.NodeID, 0, len(ids))
	for _, id := range ids {
		if s.graph.HasNode(id) && !slices.Contains(out, id) {
			out = append(out, id)
		}
	}
	return out
}
