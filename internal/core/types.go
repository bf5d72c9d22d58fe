package core

// Size describes the pixel dimensions of an editable view.
type Size struct {
	W int
	H int
}

// Scene is the minimal contract the HUD and overlay need from whatever is
// being edited.
type Scene interface {
	Name() string
	Size() Size
}
