package core

import (
	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
)

// toImage converts a sprite-space rectangle into cel image coordinates.
func toImage(cel *raster.Cel, r types.Rect) types.Rect {
	pos := cel.Position()
	return r.Offset(types.Point{X: -pos.X, Y: -pos.Y})
}

// YankSelection copies the selected pixels of the active cel. Returns false
// when there is nothing to copy.
func (e *Editor) YankSelection() (bool, error) {
	cel := e.CurrentCel()
	if cel == nil {
		return false, nil
	}
	region := toImage(cel, e.targetRegion()).Intersect(cel.Image().Bounds())
	if region.IsEmpty() {
		return false, nil
	}
	if err := e.clip.Copy(cel.Image(), region); err != nil {
		return false, err
	}
	e.ClearSelection()
	return true, nil
}

// CutSelection copies the selected pixels and clears them in one undo step.
func (e *Editor) CutSelection() (bool, error) {
	layer, err := e.editableLayer()
	if err != nil {
		return false, err
	}
	cel := layer.Cel(e.frame)
	if cel == nil {
		return false, nil
	}
	region := toImage(cel, e.targetRegion()).Intersect(cel.Image().Bounds())
	if region.IsEmpty() {
		return false, nil
	}
	err = e.session.Execute("Cut", func(api *docapi.API) error {
		return e.clip.Cut(api, cel.Image(), region)
	})
	if err != nil {
		return false, err
	}
	e.ClearSelection()
	return true, nil
}

// Paste writes the clipboard with its top-left corner at the cursor.
// Returns false when nothing landed inside the canvas.
func (e *Editor) Paste() (bool, error) {
	layer, err := e.editableLayer()
	if err != nil {
		return false, err
	}
	clip, err := e.clip.Read()
	if err != nil {
		return false, err
	}
	var written types.Rect
	err = e.session.Execute("Paste", func(api *docapi.API) error {
		cel, err := api.EnsureCel(layer, e.frame)
		if err != nil {
			return err
		}
		pos := cel.Position()
		at := types.Point{X: e.cursor.X - pos.X, Y: e.cursor.Y - pos.Y}
		written, err = clip.Put(api, cel.Image(), at)
		return err
	})
	if err != nil {
		return false, err
	}
	logger.DebugTagf("editor", "Pasted %v", written)
	return !written.IsEmpty(), nil
}
