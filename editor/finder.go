package editor

import (
	"fmt"

	"graphed/finder"
	"graphed/geometry"
	"graphed/graph"
)

// OpenNodeFinder opens the "add node" picker at pos, replacing one that is
// already open.
func (s *State[N, D, V, T, U]) OpenNodeFinder(pos geometry.Pos2, templates []T) *finder.Finder[T] {
	s.finder = finder.New(pos, templates)
	return s.finder
}

// CloseNodeFinder closes the picker and reports whether it was open.
func (s *State[N, D, V, T, U]) CloseNodeFinder() bool {
	if s.finder == nil {
		return false
	}
	s.finder = nil
	return true
}

// CommitNodeFinder instantiates the highlighted template at the picker
// position and closes the picker.
func (s *State[N, D, V, T, U]) CommitNodeFinder() (graph.NodeID, error) {
	if s.finder == nil {
		return 0, ErrFinderClosed
	}
	t, ok := s.finder.Choose()
	if !ok {
		return 0, fmt.Errorf("commit finder %q: %w", s.finder.Query(), ErrNoTemplateChosen)
	}

	id, err := s.Instantiate(t, s.finder.Position())
	if err != nil {
		return 0, err
	}
	s.finder = nil
	return id, nil
}

// Instantiate adds a node built from t at pos. A template that fails to
// build leaves no node behind.
func (s *State[N, D, V, T, U]) Instantiate(t T, pos geometry.Pos2) (graph.NodeID, error) {
	if !pos.IsFinite() {
		return 0, fmt.Errorf("instantiate %q: %w: (%v, %v)", t.Label(), ErrNonFinitePosition, pos.X, pos.Y)
	}
	id := s.AddNode(t.Label(), t.Data(), pos)
	if err := t.Build(s.graph, id); err != nil {
		if _, rmErr := s.RemoveNode(id); rmErr != nil {
			s.logger.Error("failed to roll back node", "node", id, "error", rmErr)
		}
		return 0, fmt.Errorf("build %q: %w", t.Label(), err)
	}
	return id, nil
}
