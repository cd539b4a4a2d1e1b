package editor

import (
	"fmt"

	"graphed/graph"
)

// BeginConnection starts a connection drag from param on node. Only one
// drag can exist at a time.
func (s *State[N, D, V, T, U]) BeginConnection(node graph.NodeID, param graph.AnyParam) error {
	if !s.IsIdle() {
		return fmt.Errorf("begin connection: %w", ErrInteractionInProgress)
	}
	if !s.graph.HasNode(node) {
		return fmt.Errorf("begin connection: %w: %d", graph.ErrNodeNotFound, node)
	}
	owner, ok := s.graph.ParamNode(param)
	if !ok {
		return fmt.Errorf("begin connection: %w: %s", graph.ErrParamNotFound, param)
	}
	if owner != node {
		return fmt.Errorf("begin connection: %w: %s is on node %d, not %d", ErrParamNotOnNode, param, owner, node)
	}

	s.connection = &PendingConnection{Node: node, Param: param}
	s.logger.Debug("connection drag started", "node", node, "param", param.String())
	return nil
}

// DetachInput picks up the connection feeding an input: the connection is
// removed from the graph and a drag starts from the output that fed it.
// Without a connection this is a plain drag from the input.
func (s *State[N, D, V, T, U]) DetachInput(node graph.NodeID, in graph.ParamID) error {
	if !s.IsIdle() {
		return fmt.Errorf("detach input: %w", ErrInteractionInProgress)
	}
	out, ok := s.graph.ConnectionTo(in)
	if !ok {
		return s.BeginConnection(node, graph.InputParam(in))
	}
	if owner, ok := s.graph.ParamNode(graph.InputParam(in)); !ok || owner != node {
		return fmt.Errorf("detach input: %w: input#%d", ErrParamNotOnNode, in)
	}

	outNode, _ := s.graph.ParamNode(graph.OutputParam(out))
	s.graph.Disconnect(in)
	s.connection = &PendingConnection{Node: outNode, Param: graph.OutputParam(out)}
	s.logger.Debug("connection detached", "input", in, "output", out)
	return nil
}

// ReleaseConnection ends the drag. When target is a compatible port the
// connection is added to the graph and returned with true; otherwise the
// drag is discarded and the graph is left alone.
func (s *State[N, D, V, T, U]) ReleaseConnection(target *graph.AnyParam) (graph.Connection, bool) {
	pending := s.connection
	if pending == nil {
		return graph.Connection{}, false
	}
	s.connection = nil

	if target == nil {
		s.logger.Debug("connection drag discarded", "param", pending.Param.String())
		return graph.Connection{}, false
	}

	conn, err := s.graph.ConnectAny(pending.Param, *target)
	if err != nil {
		s.logger.Debug("connection drag discarded", "param", pending.Param.String(), "target", target.String(), "reason", err)
		return graph.Connection{}, false
	}
	s.logger.Debug("connection committed", "output", conn.Output, "input", conn.Input)
	return conn, true
}

// CancelConnection drops an active drag without touching the graph. It
// reports whether a drag was active.
func (s *State[N, D, V, T, U]) CancelConnection() bool {
	if s.connection == nil {
		return false
	}
	s.connection = nil
	return true
}

// CancelInteraction abandons whatever drag is in flight and closes the node
// finder, as the escape key does.
func (s *State[N, D, V, T, U]) CancelInteraction() bool {
	cancelled := s.CancelConnection()
	cancelled = s.CancelBoxSelection() || cancelled
	cancelled = s.CloseNodeFinder() || cancelled
	return cancelled
}
