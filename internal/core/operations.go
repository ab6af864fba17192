package core

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
)

// Paint fills the selection (or the pixel under the cursor) with the
// drawing color.
func (e *Editor) Paint() error {
	return e.fill("Pencil", e.Selection(), e.color)
}

// Erase clears the selection (or the pixel under the cursor).
func (e *Editor) Erase() error {
	return e.fill("Eraser", e.Selection(), raster.Transparent)
}

// FillCanvas fills the selection, or the whole cel without one.
func (e *Editor) FillCanvas() error {
	return e.fill("Fill", e.targetRegion(), e.color)
}

func (e *Editor) fill(label string, region types.Rect, p raster.Pixel) error {
	layer, err := e.editableLayer()
	if err != nil {
		return err
	}
	return e.session.Execute(label, func(api *docapi.API) error {
		cel, err := api.EnsureCel(layer, e.frame)
		if err != nil {
			return err
		}
		return api.FillRect(cel.Image(), toImage(cel, region), p)
	})
}

// Flip mirrors the selection, or the whole cel without one.
func (e *Editor) Flip(flipType types.FlipType) error {
	layer, err := e.editableLayer()
	if err != nil {
		return err
	}
	cel := layer.Cel(e.frame)
	if cel == nil {
		return docapi.ErrNoCel
	}
	label := "Flip Horizontal"
	if flipType == types.FlipVertical {
		label = "Flip Vertical"
	}
	return e.session.Execute(label, func(api *docapi.API) error {
		return api.FlipImage(cel.Image(), toImage(cel, e.targetRegion()), flipType)
	})
}

// MoveCel offsets the active cel by (dx, dy).
func (e *Editor) MoveCel(dx, dy int) error {
	layer, err := e.editableLayer()
	if err != nil {
		return err
	}
	cel := layer.Cel(e.frame)
	if cel == nil {
		return docapi.ErrNoCel
	}
	pos := cel.Position()
	return e.session.Execute("Move Cel", func(api *docapi.API) error {
		return api.SetCelPosition(layer, e.frame, types.Point{X: pos.X + dx, Y: pos.Y + dy})
	})
}

// NewFrame inserts an empty frame after the active one and activates it.
func (e *Editor) NewFrame() error {
	at := e.frame + 1
	if err := e.session.Execute("New Frame", func(api *docapi.API) error {
		return api.AddFrame(at)
	}); err != nil {
		return err
	}
	e.frame = at
	return nil
}

// DuplicateFrame copies the active frame right after itself.
func (e *Editor) DuplicateFrame() error {
	var dup types.FrameNumber
	if err := e.session.Execute("Duplicate Frame", func(api *docapi.API) error {
		var err error
		dup, err = api.DuplicateFrame(e.frame)
		return err
	}); err != nil {
		return err
	}
	e.frame = dup
	return nil
}

// RemoveFrame deletes the active frame.
func (e *Editor) RemoveFrame() error {
	if err := e.session.Execute("Remove Frame", func(api *docapi.API) error {
		return api.RemoveFrame(e.frame)
	}); err != nil {
		return err
	}
	e.Clamp()
	return nil
}

// SetFrameDuration changes how long the active frame is shown.
func (e *Editor) SetFrameDuration(msecs int) error {
	return e.session.Execute("Frame Duration", func(api *docapi.API) error {
		return api.SetFrameDuration(e.frame, msecs)
	})
}

// NewLayer adds a layer above the active one and activates it.
func (e *Editor) NewLayer(name string) error {
	if name == "" {
		name = fmt.Sprintf("Layer %d", len(e.Sprite().Layers())+1)
	}
	var added *raster.Layer
	if err := e.session.Execute("New Layer", func(api *docapi.API) error {
		var err error
		added, err = api.AddLayer(name, e.layer)
		return err
	}); err != nil {
		return err
	}
	e.layer = added
	return nil
}

// RemoveLayer deletes the active layer.
func (e *Editor) RemoveLayer() error {
	layer := e.layer
	if layer == nil {
		return ErrNoLayer
	}
	below := e.Sprite().LayerBelow(layer)
	if err := e.session.Execute("Remove Layer", func(api *docapi.API) error {
		return api.RemoveLayer(layer)
	}); err != nil {
		return err
	}
	e.layer = below
	e.Clamp()
	return nil
}

// MoveLayer moves the active layer one position up (delta > 0) or down.
func (e *Editor) MoveLayer(delta int) error {
	layer := e.layer
	if layer == nil {
		return ErrNoLayer
	}
	sprite := e.Sprite()
	idx := sprite.LayerIndex(layer)
	var after *raster.Layer
	switch {
	case delta > 0:
		after = sprite.LayerAt(idx + 1)
		if after == nil {
			return nil
		}
	case delta < 0:
		if idx == 0 {
			return nil
		}
		after = sprite.LayerAt(idx - 2)
	default:
		return nil
	}
	return e.session.Execute("Move Layer", func(api *docapi.API) error {
		return api.MoveLayer(layer, after)
	})
}

// RenameLayer renames the active layer.
func (e *Editor) RenameLayer(name string) error {
	layer := e.layer
	if layer == nil {
		return ErrNoLayer
	}
	return e.session.Execute("Rename Layer", func(api *docapi.API) error {
		return api.RenameLayer(layer, name)
	})
}

// ToggleLayerVisible shows or hides the active layer.
func (e *Editor) ToggleLayerVisible() error {
	layer := e.layer
	if layer == nil {
		return ErrNoLayer
	}
	return e.session.Execute("Layer Visibility", func(api *docapi.API) error {
		return api.SetLayerFlags(layer, layer.Flags()^types.LayerVisible)
	})
}

// LayerFromBackground turns the background layer into a regular one.
func (e *Editor) LayerFromBackground() error {
	layer := e.layer
	if layer == nil {
		return ErrNoLayer
	}
	return e.session.Execute("Layer from Background", func(api *docapi.API) error {
		return api.LayerFromBackground(layer)
	})
}

// Undo reverts the newest history entry and re-validates the editor state.
func (e *Editor) Undo() error {
	defer e.Clamp()
	return e.session.Undo()
}

// Redo re-applies the newest undone entry.
func (e *Editor) Redo() error {
	defer e.Clamp()
	return e.session.Redo()
}
