package pager

import (
	"fmt"

	"github.com/umputun/hnscope/pkg/domain"
)

// Window is a half-open range [Start, Start+Size) over an id list
type Window struct {
	Start int `json:"start"`
	Size  int `json:"size"`
}

// WindowAt returns the window of the given zero-based page
func WindowAt(page, size int) Window {
	return Window{Start: page * size, Size: size}
}

// End returns the exclusive end index
func (w Window) End() int {
	return w.Start + w.Size
}

// Page returns the zero-based page index of the window
func (w Window) Page() int {
	if w.Size <= 0 {
		return 0
	}
	return w.Start / w.Size
}

// Validate checks the window against a list of n ids.
// Start must be a non-negative multiple of Size and must not be past the end of the list.
func (w Window) Validate(n int) error {
	switch {
	case w.Size <= 0:
		return fmt.Errorf("%w: size %d", domain.ErrInvalidWindow, w.Size)
	case w.Start < 0:
		return fmt.Errorf("%w: negative start %d", domain.ErrInvalidWindow, w.Start)
	case w.Start%w.Size != 0:
		return fmt.Errorf("%w: start %d is not a multiple of %d", domain.ErrInvalidWindow, w.Start, w.Size)
	case w.Start > n:
		return fmt.Errorf("%w: start %d beyond list of %d", domain.ErrInvalidWindow, w.Start, n)
	}
	return nil
}

// Clamp shrinks the window so its end doesn't exceed n
func (w Window) Clamp(n int) Window {
	if w.End() > n {
		w.Size = max(n-w.Start, 0)
	}
	return w
}
