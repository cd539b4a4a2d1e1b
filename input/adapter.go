// Package input turns tcell terminal events into editor state transitions.
package input

import (
	"github.com/gdamore/tcell/v2"

	"graphed/config"
	"graphed/editor"
	"graphed/geometry"
	"graphed/graph"
)

const dragButtons = tcell.Button1 | tcell.Button2 | tcell.Button3

// Adapter feeds terminal events to one editor state. It remembers which
// buttons are down so presses, drags and releases can be told apart.
type Adapter[N any, D comparable, V any, T editor.Template[N, D, V], U any] struct {
	state     *editor.State[N, D, V, T, U]
	hit       HitTester
	cfg       *config.Config
	templates []T

	drag    Mode // ModeMovingNodes, ModePanning or ModeIdle
	buttons tcell.ButtonMask
	pointer geometry.Pos2 // last mouse position, screen space
}

// NewAdapter creates an adapter. A nil cfg uses the defaults.
func NewAdapter[N any, D comparable, V any, T editor.Template[N, D, V], U any](
	s *editor.State[N, D, V, T, U], hit HitTester, cfg *config.Config, templates []T,
) *Adapter[N, D, V, T, U] {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Adapter[N, D, V, T, U]{
		state:     s,
		hit:       hit,
		cfg:       cfg,
		templates: templates,
	}
}

// Mode returns what the adapter is currently driving.
func (a *Adapter[N, D, V, T, U]) Mode() Mode {
	if a.state.GetNodeFinder() != nil {
		return ModeFinder
	}
	if _, ok := a.state.GetConnectionInProgress(); ok {
		return ModeConnecting
	}
	if _, ok := a.state.GetBoxSelection(); ok {
		return ModeBoxSelecting
	}
	return a.drag
}

// Pointer returns the last pointer position in canvas space. Renderers draw
// the loose end of a connection drag there.
func (a *Adapter[N, D, V, T, U]) Pointer() geometry.Pos2 {
	return a.state.ScreenToCanvas(a.pointer)
}

// HandleEvent applies ev and reports whether the state changed.
func (a *Adapter[N, D, V, T, U]) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventMouse:
		return a.handleMouse(ev)
	case *tcell.EventKey:
		return a.handleKey(ev)
	case *tcell.EventResize:
		w, h := ev.Size()
		a.state.SetViewportSize(geometry.Vec2{X: float64(w), Y: float64(h)})
		return true
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) handleMouse(ev *tcell.EventMouse) bool {
	x, y := ev.Position()
	screen := geometry.Pos2{X: float64(x), Y: float64(y)}
	btn := ev.Buttons()

	switch {
	case btn&tcell.WheelUp != 0:
		a.pointer = screen
		return a.state.ZoomBy(a.cfg.Zoom.Step, a.state.ScreenToCanvas(screen))
	case btn&tcell.WheelDown != 0:
		a.pointer = screen
		return a.state.ZoomBy(1/a.cfg.Zoom.Step, a.state.ScreenToCanvas(screen))
	}

	prev, last := a.buttons, a.pointer
	a.buttons = btn & dragButtons
	a.pointer = screen
	canvas := a.state.ScreenToCanvas(screen)

	pressed := a.buttons &^ prev
	switch {
	case pressed&tcell.Button1 != 0:
		return a.press(canvas, ev.Modifiers())
	case pressed&(tcell.Button2|tcell.Button3) != 0:
		if a.Mode() != ModeIdle {
			return false
		}
		a.drag = ModePanning
		return true
	case a.buttons == 0 && prev != 0:
		return a.release(canvas, ev.Modifiers())
	case a.buttons != 0:
		return a.motion(screen.Sub(last), canvas)
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) press(p geometry.Pos2, mods tcell.ModMask) bool {
	a.state.CloseNodeFinder()
	log := a.state.Logger()

	target := a.hit.HitTest(p)
	switch target.Kind {
	case TargetPort:
		var err error
		if target.Param.Dir == graph.Input {
			err = a.state.DetachInput(target.Node, target.Param.ID)
		} else {
			err = a.state.BeginConnection(target.Node, target.Param)
		}
		if err != nil {
			log.Debug("connection drag refused", "node", target.Node, "error", err)
			return false
		}

	case TargetNode:
		var err error
		if mods&(tcell.ModShift|tcell.ModCtrl) != 0 {
			err = a.state.ToggleNodeSelection(target.Node)
		} else if !a.state.IsSelected(target.Node) {
			err = a.state.SelectNode(target.Node)
		}
		if err == nil {
			err = a.state.BringToFront(target.Node)
		}
		if err != nil {
			log.Debug("node press ignored", "node", target.Node, "error", err)
			return false
		}
		a.drag = ModeMovingNodes

	default:
		if err := a.state.BeginBoxSelection(p); err != nil {
			log.Debug("box selection refused", "error", err)
			return false
		}
	}
	return true
}

func (a *Adapter[N, D, V, T, U]) motion(screenDelta geometry.Vec2, p geometry.Pos2) bool {
	switch a.Mode() {
	case ModeConnecting:
		return true
	case ModeBoxSelecting:
		return a.state.UpdateBoxSelection(p)
	case ModeMovingNodes:
		a.state.MoveSelection(screenDelta.Scale(1 / a.state.GetZoom()))
		return true
	case ModePanning:
		a.state.Pan(screenDelta)
		return true
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) release(p geometry.Pos2, mods tcell.ModMask) bool {
	a.drag = ModeIdle

	if _, ok := a.state.GetConnectionInProgress(); ok {
		var target *graph.AnyParam
		if t := a.hit.HitTest(p); t.Kind == TargetPort {
			target = &t.Param
		}
		a.state.ReleaseConnection(target)
		return true
	}
	if _, ok := a.state.GetBoxSelection(); ok {
		_, ok := a.state.EndBoxSelection(p, a.policy(mods))
		return ok
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) policy(mods tcell.ModMask) editor.MergePolicy {
	return a.cfg.MergePolicy(mods&tcell.ModShift != 0, mods&tcell.ModCtrl != 0, mods&tcell.ModAlt != 0)
}
