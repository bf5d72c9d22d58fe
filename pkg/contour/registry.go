package contour

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownStencil is returned by NewStencil for unregistered shape names.
var ErrUnknownStencil = errors.New("unknown stencil")

// StencilFactory constructs a fresh, uninitialized stencil.
type StencilFactory func() Stencil

var stencils = map[string]StencilFactory{
	"square": func() Stencil { return &SquareStencil{} },
	"circle": func() Stencil { return &CircleStencil{} },
}

// Register adds a stencil factory under the provided name.
func Register(name string, f StencilFactory) {
	if name == "" || f == nil {
		return
	}
	stencils[name] = f
}

// Stencils lists the registered stencil names in sorted order.
func Stencils() []string {
	names := make([]string, 0, len(stencils))
	for name := range stencils {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewStencil builds the stencil registered under name.
func NewStencil(name string) (Stencil, error) {
	f, ok := stencils[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStencil, name)
	}
	return f(), nil
}
