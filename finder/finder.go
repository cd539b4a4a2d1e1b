// Package finder implements the "add node" picker: a query over a fixed set
// of node templates with a movable cursor.
package finder

import (
	"strings"

	"graphed/geometry"
)

// Labeled is anything the finder can list.
type Labeled interface {
	Label() string
}

// Finder is the state of an open node picker.
type Finder[T Labeled] struct {
	position  geometry.Pos2
	templates []T
	query     []rune
	cursor    int
}

// New opens a finder at pos listing templates in the given order.
func New[T Labeled](pos geometry.Pos2, templates []T) *Finder[T] {
	return &Finder[T]{
		position:  pos,
		templates: templates,
	}
}

// Position returns the canvas position the picker was opened at. Chosen
// templates are instantiated there.
func (f *Finder[T]) Position() geometry.Pos2 {
	return f.position
}

// Query returns the current search text.
func (f *Finder[T]) Query() string {
	return string(f.query)
}

// SetQuery replaces the search text and resets the cursor.
func (f *Finder[T]) SetQuery(q string) {
	f.query = []rune(q)
	f.cursor = 0
}

// Type appends a character to the query.
func (f *Finder[T]) Type(r rune) {
	f.query = append(f.query, r)
	f.cursor = 0
}

// Backspace removes the last query character.
func (f *Finder[T]) Backspace() {
	if len(f.query) > 0 {
		f.query = f.query[:len(f.query)-1]
		f.cursor = 0
	}
}

// Matches returns the templates whose label contains the query,
// case-insensitively, in template order.
func (f *Finder[T]) Matches() []T {
	q := strings.ToLower(strings.TrimSpace(string(f.query)))
	var out []T
	for _, t := range f.templates {
		if q == "" || strings.Contains(strings.ToLower(t.Label()), q) {
			out = append(out, t)
		}
	}
	return out
}

// Cursor returns the index of the highlighted match.
func (f *Finder[T]) Cursor() int {
	return f.cursor
}

// MoveCursor shifts the highlight by delta, wrapping around the matches.
func (f *Finder[T]) MoveCursor(delta int) {
	n := len(f.Matches())
	if n == 0 {
		f.cursor = 0
		return
	}
	f.cursor = ((f.cursor+delta)%n + n) % n
}

// Choose returns the highlighted match.
func (f *Finder[T]) Choose() (T, bool) {
	matches := f.Matches()
	if len(matches) == 0 {
		var zero T
		return zero, false
	}
	return matches[min(f.cursor, len(matches)-1)], true
}
