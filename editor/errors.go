package editor

import "errors"

var (
	// ErrInvalidZoomRange is returned when a zoom range has a non-positive
	// minimum, a minimum above its maximum or a non-finite bound.
	ErrInvalidZoomRange = errors.New("invalid zoom range")

	// ErrInteractionInProgress is returned when a drag is started while
	// another pointer interaction still owns the canvas.
	ErrInteractionInProgress = errors.New("another interaction is in progress")

	// ErrNonFinitePosition is returned when a node would be placed at a NaN
	// or infinite coordinate.
	ErrNonFinitePosition = errors.New("position is not finite")

	ErrParamNotOnNode   = errors.New("parameter does not belong to node")
	ErrFinderClosed     = errors.New("node finder is not open")
	ErrNoTemplateChosen = errors.New("no template matches the finder query")
	ErrInconsistent     = errors.New("editor state is inconsistent")
)
