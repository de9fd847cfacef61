package interact

import "gonum.org/v1/gonum/spatial/r2"

// Listener receives interaction events. Hover reports "" when the pointer
// leaves every node.
type Listener interface {
	NodeClicked(id string)
	NodeHovered(id string)
	BackgroundClicked()
	ZoomChanged(zoom float64)
	PanChanged(pan r2.Vec)
}

// Hooks adapts optional funcs to a Listener. Nil fields are skipped.
type Hooks struct {
	OnNodeClicked       func(id string)
	OnNodeHovered       func(id string)
	OnBackgroundClicked func()
	OnZoomChanged       func(zoom float64)
	OnPanChanged        func(pan r2.Vec)
}

func (h Hooks) NodeClicked(id string) {
	if h.OnNodeClicked != nil {
		h.OnNodeClicked(id)
	}
}

func (h Hooks) NodeHovered(id string) {
	if h.OnNodeHovered != nil {
		h.OnNodeHovered(id)
	}
}

func (h Hooks) BackgroundClicked() {
	if h.OnBackgroundClicked != nil {
		h.OnBackgroundClicked()
	}
}

func (h Hooks) ZoomChanged(zoom float64) {
	if h.OnZoomChanged != nil {
		h.OnZoomChanged(zoom)
	}
}

func (h Hooks) PanChanged(pan r2.Vec) {
	if h.OnPanChanged != nil {
		h.OnPanChanged(pan)
	}
}
