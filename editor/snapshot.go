package editor

import (
	"encoding/json"
	"maps"
	"slices"

	"graphed/geometry"
	"graphed/graph"
)

// Snapshot is the persisted form of a State. The connection drag, the box
// selection and the node finder are session-only and never stored.
type Snapshot[N any, D comparable, V any] struct {
	Graph     graph.Snapshot[N, D, V]        `json:"graph" yaml:"graph"`
	NodeOrder []graph.NodeID                 `json:"node_order" yaml:"node_order"`
	Positions map[graph.NodeID]geometry.Pos2 `json:"node_positions" yaml:"node_positions"`
	Selected  []graph.NodeID                 `json:"selected_nodes" yaml:"selected_nodes"`
	SceneRect geometry.Rect                  `json:"scene_rect" yaml:"scene_rect"`
	Zoom      float64                        `json:"zoom" yaml:"zoom"`
	ZoomRange ZoomRange                      `json:"zoom_range" yaml:"zoom_range"`
}

// Snapshot returns a deep copy of the persistent part of the state.
func (s *State[N, D, V, T, U]) Snapshot() Snapshot[N, D, V] {
	return Snapshot[N, D, V]{
		Graph:     s.graph.Snapshot(),
		NodeOrder: slices.Clone(s.nodeOrder),
		Positions: maps.Clone(s.positions),
		Selected:  slices.Clone(s.selected),
		SceneRect: s.sceneRect,
		Zoom:      s.zoom,
		ZoomRange: s.zoomRange,
	}
}

// Restore builds a State from a snapshot. A missing zoom range falls back to
// the default; an invalid one is an error. A non-finite zoom or scene rect is
// reset. References that disagree with the graph, and non-finite node
// positions, are repaired by Reconcile.
func Restore[N any, D comparable, V any, T Template[N, D, V], U any](snap Snapshot[N, D, V], opts ...Option) (*State[N, D, V, T, U], error) {
	zr := snap.ZoomRange
	if zr == (ZoomRange{}) {
		zr = DefaultZoomRange
	}
	if err := zr.Validate(); err != nil {
		return nil, err
	}

	g, err := graph.FromSnapshot(snap.Graph)
	if err != nil {
		return nil, err
	}

	zoom := snap.Zoom
	if !geometry.IsFinite(zoom) || zoom <= 0 {
		zoom = 1
	}

	o := buildOptions(opts)
	scene := snap.SceneRect
	if !scene.IsFinite() {
		o.logger.Warn("scene rect is not finite, resetting", "scene_rect", scene)
		scene = unitRect
	}
	s := &State[N, D, V, T, U]{
		graph:     g,
		nodeOrder: slices.Clone(snap.NodeOrder),
		selected:  slices.Clone(snap.Selected),
		positions: maps.Clone(snap.Positions),
		sceneRect: scene,
		zoom:      zr.Clamp(zoom),
		zoomRange: zr,
		logger:    o.logger,
	}
	if s.positions == nil {
		s.positions = make(map[graph.NodeID]geometry.Pos2)
	}
	if s.selected == nil {
		s.selected = []graph.NodeID{}
	}
	s.attach()

	if fixes := s.Reconcile(); fixes > 0 {
		s.logger.Warn("restored state needed repairs", "fixes", fixes)
	}
	return s, nil
}

// MarshalJSON encodes the persistent part of the state.
func (s *State[N, D, V, T, U]) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Snapshot())
}

// UnmarshalJSON replaces s with the decoded state. Session-only fields end
// up cleared and the logger is kept.
func (s *State[N, D, V, T, U]) UnmarshalJSON(data []byte) error {
	var snap Snapshot[N, D, V]
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}

	var opts []Option
	if s.logger != nil {
		opts = append(opts, WithLogger(s.logger))
	}
	restored, err := Restore[N, D, V, T, U](snap, opts...)
	if err != nil {
		return err
	}

	*s = *restored
	s.attach()
	return nil
}
