package editor

import (
	"fmt"

	"graphed/geometry"
)

// ZoomRange bounds the zoom factor, both ends inclusive.
type ZoomRange struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

// DefaultZoomRange is used when no range is configured.
var DefaultZoomRange = ZoomRange{Min: 0.2, Max: 2.0}

// Validate checks 0 < Min <= Max with finite bounds.
func (r ZoomRange) Validate() error {
	if !geometry.IsFinite(r.Min) || !geometry.IsFinite(r.Max) {
		return fmt.Errorf("%w: bounds must be finite, got [%v, %v]", ErrInvalidZoomRange, r.Min, r.Max)
	}
	if r.Min <= 0 {
		return fmt.Errorf("%w: minimum must be > 0, got %v", ErrInvalidZoomRange, r.Min)
	}
	if r.Min > r.Max {
		return fmt.Errorf("%w: minimum %v exceeds maximum %v", ErrInvalidZoomRange, r.Min, r.Max)
	}
	return nil
}

// Clamp limits z to the range.
func (r ZoomRange) Clamp(z float64) float64 {
	return geometry.Clamp(z, r.Min, r.Max)
}

// Contains reports whether z lies in the range.
func (r ZoomRange) Contains(z float64) bool {
	return z >= r.Min && z <= r.Max
}

// SetZoomRange replaces the zoom bounds and pulls the current zoom back
// inside them, keeping the scene rect centered.
func (s *State[N, D, V, T, U]) SetZoomRange(r ZoomRange) error {
	if err := r.Validate(); err != nil {
		return err
	}
	s.zoomRange = r
	s.applyZoom(r.Clamp(s.zoom), s.sceneRect.Center())
	return nil
}

// SetZoom sets the zoom factor around the scene center. The value is clamped
// into the zoom range; non-positive or non-finite values are ignored. The
// applied factor is returned.
func (s *State[N, D, V, T, U]) SetZoom(z float64) float64 {
	if !geometry.IsFinite(z) || z <= 0 {
		return s.zoom
	}
	s.applyZoom(s.zoomRange.Clamp(z), s.sceneRect.Center())
	return s.zoom
}

// ZoomBy multiplies the zoom by factor keeping anchor (canvas coordinates)
// fixed on screen. It returns false and leaves the state untouched when the
// factor is non-positive or non-finite.
func (s *State[N, D, V, T, U]) ZoomBy(factor float64, anchor geometry.Pos2) bool {
	if !geometry.IsFinite(factor) || factor <= 0 {
		return false
	}
	target := s.zoom * factor
	if !geometry.IsFinite(target) {
		target = s.zoomRange.Max
	}
	s.applyZoom(s.zoomRange.Clamp(target), anchor)
	return true
}

func (s *State[N, D, V, T, U]) applyZoom(z float64, anchor geometry.Pos2) {
	if z == s.zoom {
		return
	}
	s.sceneRect = s.sceneRect.ScaleAbout(anchor, s.zoom/z)
	s.logger.Debug("zoom changed", "from", s.zoom, "to", z)
	s.zoom = z
}

// Pan moves the view by a screen-space delta. Dragging the canvas right
// moves the visible area left.
func (s *State[N, D, V, T, U]) Pan(screenDelta geometry.Vec2) {
	next := s.sceneRect.Translate(screenDelta.Scale(-1 / s.zoom))
	if next.IsFinite() {
		s.sceneRect = next
	}
}

// SetSceneRect replaces the visible area. A rect with a non-finite corner is
// ignored.
func (s *State[N, D, V, T, U]) SetSceneRect(r geometry.Rect) {
	if r.IsFinite() {
		s.sceneRect = r
	}
}

// SetViewportSize resizes the scene rect to a host viewport of the given
// screen size, keeping its top-left corner.
func (s *State[N, D, V, T, U]) SetViewportSize(size geometry.Vec2) {
	if size.IsFinite() {
		s.sceneRect = geometry.RectFromMinSize(s.sceneRect.Min, size.Scale(1/s.zoom))
	}
}

// ScreenToCanvas maps a viewport-relative screen point to canvas coordinates.
func (s *State[N, D, V, T, U]) ScreenToCanvas(p geometry.Pos2) geometry.Pos2 {
	return s.sceneRect.Min.Add(geometry.Vec2{X: p.X, Y: p.Y}.Scale(1 / s.zoom))
}

// CanvasToScreen maps a canvas point to viewport-relative screen coordinates.
func (s *State[N, D, V, T, U]) CanvasToScreen(p geometry.Pos2) geometry.Pos2 {
	d := p.Sub(s.sceneRect.Min).Scale(s.zoom)
	return geometry.Pos2{X: d.X, Y: d.Y}
}
