// Package editor holds the in-memory state of a node graph editor: paint
// order, node positions, selection, the pointer interactions in flight and
// the viewport. All mutation happens on the UI thread; nothing here locks.
package editor

import (
	"log/slog"
	"maps"
	"slices"

	"graphed/finder"
	"graphed/geometry"
	"graphed/graph"
)

// Template is a kind of node the finder can instantiate.
type Template[N any, D comparable, V any] interface {
	Label() string
	Data() N
	// Build adds the template's parameters to a freshly inserted node.
	Build(g *graph.Graph[N, D, V], node graph.NodeID) error
}

// PendingConnection is a connection drag anchored at a port.
type PendingConnection struct {
	Node  graph.NodeID
	Param graph.AnyParam
}

// BoxSelection is a rubber-band drag. Start is where the drag began,
// Current the last pointer position seen.
type BoxSelection struct {
	Start   geometry.Pos2
	Current geometry.Pos2
}

// Rect returns the rectangle spanned by the drag.
func (b BoxSelection) Rect() geometry.Rect {
	return geometry.RectFromPoints(b.Start, b.Current)
}

// State is the editor state for one editing session.
//
// N is the node payload, D the parameter data type, V the input value type,
// T the template type offered by the node finder and U an arbitrary user
// state type that is only carried at the type level.
type State[N any, D comparable, V any, T Template[N, D, V], U any] struct {
	graph *graph.Graph[N, D, V]

	// Nodes are drawn in this order; the last one is on top.
	nodeOrder []graph.NodeID

	connection *PendingConnection // nil while idle
	selected   []graph.NodeID
	box        *BoxSelection // nil while idle
	positions  map[graph.NodeID]geometry.Pos2
	finder     *finder.Finder[T] // nil while closed

	sceneRect geometry.Rect
	zoom      float64
	zoomRange ZoomRange

	logger *slog.Logger

	_ [0]func() U
}

type options struct {
	logger *slog.Logger
}

// Option configures a State at construction.
type Option func(*options)

// WithLogger sets the logger used for interaction traces and repairs.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// unitRect is the scene rect before the host reports a viewport size.
var unitRect = geometry.Rect{Max: geometry.Pos2{X: 1, Y: 1}}

// New returns an empty editor with the default zoom range.
func New[N any, D comparable, V any, T Template[N, D, V], U any](opts ...Option) *State[N, D, V, T, U] {
	o := buildOptions(opts)
	s := &State[N, D, V, T, U]{
		graph:     graph.New[N, D, V](),
		nodeOrder: []graph.NodeID{},
		selected:  []graph.NodeID{},
		positions: make(map[graph.NodeID]geometry.Pos2),
		sceneRect: unitRect,
		zoom:      1,
		zoomRange: DefaultZoomRange,
		logger:    o.logger,
	}
	s.attach()
	return s
}

// WithZoomRange returns an empty editor whose zoom is bounded by r. It fails
// before building anything when r is invalid.
func WithZoomRange[N any, D comparable, V any, T Template[N, D, V], U any](r ZoomRange, opts ...Option) (*State[N, D, V, T, U], error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	s := New[N, D, V, T, U](opts...)
	s.zoomRange = r
	s.zoom = r.Clamp(s.zoom)
	return s, nil
}

// attach subscribes the state to the graph so paint order, positions and
// selection follow every insertion and removal, whoever performs it.
func (s *State[N, D, V, T, U]) attach() {
	s.graph.SetHooks(graph.Hooks{
		NodeAdded:   s.nodeAdded,
		NodeRemoved: s.nodeRemoved,
	})
}

func (s *State[N, D, V, T, U]) nodeAdded(id graph.NodeID) {
	s.nodeOrder = append(s.nodeOrder, id)
	if _, ok := s.positions[id]; !ok {
		s.positions[id] = geometry.Pos2{}
	}
}

func (s *State[N, D, V, T, U]) nodeRemoved(id graph.NodeID) {
	s.nodeOrder = slices.DeleteFunc(s.nodeOrder, func(n graph.NodeID) bool { return n == id })
	s.selected = slices.DeleteFunc(s.selected, func(n graph.NodeID) bool { return n == id })
	delete(s.positions, id)

	if s.connection != nil && s.connection.Node == id {
		s.logger.Debug("connection drag cancelled, anchor node removed", "node", id)
		s.connection = nil
	}
}

// Graph returns the owned graph. Nodes may be added or removed through it
// directly; the editor indexes are kept in step.
func (s *State[N, D, V, T, U]) Graph() *graph.Graph[N, D, V] {
	return s.graph
}

// Logger returns the logger the state reports to.
func (s *State[N, D, V, T, U]) Logger() *slog.Logger {
	return s.logger
}

// GetNodeOrder returns the paint order, bottom first.
func (s *State[N, D, V, T, U]) GetNodeOrder() []graph.NodeID {
	return slices.Clone(s.nodeOrder)
}

// GetNodePosition returns the canvas position of a node.
func (s *State[N, D, V, T, U]) GetNodePosition(id graph.NodeID) (geometry.Pos2, bool) {
	p, ok := s.positions[id]
	return p, ok
}

// GetNodePositions returns a copy of every node position.
func (s *State[N, D, V, T, U]) GetNodePositions() map[graph.NodeID]geometry.Pos2 {
	return maps.Clone(s.positions)
}

// GetSelectedNodes returns the selection in selection order.
func (s *State[N, D, V, T, U]) GetSelectedNodes() []graph.NodeID {
	return slices.Clone(s.selected)
}

// GetConnectionInProgress returns the active connection drag, if any.
func (s *State[N, D, V, T, U]) GetConnectionInProgress() (PendingConnection, bool) {
	if s.connection == nil {
		return PendingConnection{}, false
	}
	return *s.connection, true
}

// GetBoxSelection returns the active box selection, if any.
func (s *State[N, D, V, T, U]) GetBoxSelection() (BoxSelection, bool) {
	if s.box == nil {
		return BoxSelection{}, false
	}
	return *s.box, true
}

// GetNodeFinder returns the open node finder or nil.
func (s *State[N, D, V, T, U]) GetNodeFinder() *finder.Finder[T] {
	return s.finder
}

// GetSceneRect returns the visible part of the canvas.
func (s *State[N, D, V, T, U]) GetSceneRect() geometry.Rect {
	return s.sceneRect
}

// GetZoom returns the current zoom factor.
func (s *State[N, D, V, T, U]) GetZoom() float64 {
	return s.zoom
}

// GetZoomRange returns the allowed zoom bounds.
func (s *State[N, D, V, T, U]) GetZoomRange() ZoomRange {
	return s.zoomRange
}

// IsIdle reports whether no pointer interaction is in flight.
func (s *State[N, D, V, T, U]) IsIdle() bool {
	return s.connection == nil && s.box == nil
}
