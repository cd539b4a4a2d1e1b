package input

import (
	"github.com/gdamore/tcell/v2"

	"graphed/finder"
)

func (a *Adapter[N, D, V, T, U]) handleKey(ev *tcell.EventKey) bool {
	if f := a.state.GetNodeFinder(); f != nil {
		return a.handleFinderKey(f, ev)
	}

	switch ev.Key() {
	case tcell.KeyEscape:
		a.drag = ModeIdle
		return a.state.CancelInteraction()
	case tcell.KeyDelete, tcell.KeyBackspace, tcell.KeyBackspace2:
		return len(a.state.DeleteSelected()) > 0
	case tcell.KeyCtrlA:
		return a.state.SetSelection(a.state.GetNodeOrder()) == nil
	case tcell.KeyRune:
		return a.handleRune(ev.Rune())
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) handleRune(r rune) bool {
	center := a.state.GetSceneRect().Center()
	switch r {
	case ' ':
		if !a.state.IsIdle() {
			return false
		}
		a.state.OpenNodeFinder(a.Pointer(), a.templates)
		return true
	case '+', '=':
		return a.state.ZoomBy(a.cfg.Zoom.Step, center)
	case '-':
		return a.state.ZoomBy(1/a.cfg.Zoom.Step, center)
	case '0':
		a.state.SetZoom(1)
		return true
	}
	return false
}

func (a *Adapter[N, D, V, T, U]) handleFinderKey(f *finder.Finder[T], ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape:
		return a.state.CloseNodeFinder()
	case tcell.KeyEnter:
		if _, err := a.state.CommitNodeFinder(); err != nil {
			a.state.Logger().Debug("node finder commit failed", "query", f.Query(), "error", err)
			return false
		}
		return true
	case tcell.KeyUp:
		f.MoveCursor(-1)
	case tcell.KeyDown, tcell.KeyTab:
		f.MoveCursor(1)
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		f.Backspace()
	case tcell.KeyRune:
		f.Type(ev.Rune())
	default:
		return false
	}
	return true
}
