package market

import "slices"

// Select is a menu with one selected option.
type Select[T comparable] struct {
	Selected T
	Options  []T
}

// NewSelect builds a menu over options with selected marked.
func NewSelect[T comparable](selected T, options []T) Select[T] {
	return Select[T]{Selected: selected, Options: slices.Clone(options)}
}

// SelectedIndex returns the position of the selected option, or -1.
func (s Select[T]) SelectedIndex() int {
	return slices.Index(s.Options, s.Selected)
}
