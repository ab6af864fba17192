// internal/core/editor.go
package core

import (
	"errors"

	"github.com/bethropolis/sprig/internal/clipboard"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/session"
	"github.com/bethropolis/sprig/internal/types"
)

var (
	ErrNoLayer     = errors.New("sprite has no layers")
	ErrLayerLocked = errors.New("layer is hidden or locked")
)

// Editor is the interactive state around one editing session: cursor,
// active frame and layer, selection and drawing color. Every document
// change goes through the session so it can be undone.
type Editor struct {
	session *session.Session
	clip    *clipboard.Manager

	cursor types.Point
	frame  types.FrameNumber
	layer  *raster.Layer
	color  raster.Pixel

	// --- Selection State ---
	selecting bool
	anchor    types.Point
}

// NewEditor creates an editor over sess. The top layer and the first frame
// start active.
func NewEditor(sess *session.Session, clip *clipboard.Manager) *Editor {
	e := &Editor{
		session: sess,
		clip:    clip,
		color:   raster.RGBA(0, 0, 0, 255),
	}
	e.Clamp()
	return e
}

func (e *Editor) Session() *session.Session     { return e.session }
func (e *Editor) Document() *document.Document  { return e.session.Document() }
func (e *Editor) Sprite() *raster.Sprite        { return e.session.Document().Sprite() }
func (e *Editor) Clipboard() *clipboard.Manager { return e.clip }
func (e *Editor) Frame() types.FrameNumber      { return e.frame }
func (e *Editor) Color() raster.Pixel           { return e.color }
func (e *Editor) SetColor(p raster.Pixel)       { e.color = p }

// CurrentLayer returns the active layer, or nil when the sprite has none.
func (e *Editor) CurrentLayer() *raster.Layer {
	return e.layer
}

// CurrentCel returns the cel under the active layer and frame, if any.
func (e *Editor) CurrentCel() *raster.Cel {
	if e.layer == nil {
		return nil
	}
	return e.layer.Cel(e.frame)
}

// Clamp brings the cursor, frame and layer back inside the sprite. It must
// run after anything that may have removed frames or layers (undo/redo).
func (e *Editor) Clamp() {
	sprite := e.Sprite()
	if last := sprite.Frames() - 1; e.frame > last {
		e.frame = last
	}
	if e.frame < 0 {
		e.frame = 0
	}
	if e.layer == nil || !sprite.HasLayer(e.layer) {
		layers := sprite.Layers()
		if len(layers) > 0 {
			e.layer = layers[len(layers)-1]
		} else {
			e.layer = nil
		}
		logger.DebugTagf("editor", "Active layer reset to %v", e.layerName())
	}
	e.cursor = clampPoint(e.cursor, sprite.Bounds())
	if e.selecting {
		e.anchor = clampPoint(e.anchor, sprite.Bounds())
	}
}

func (e *Editor) layerName() string {
	if e.layer == nil {
		return "<none>"
	}
	return e.layer.Name()
}

// SetFrame activates frame (clamped to the sprite).
func (e *Editor) SetFrame(frame types.FrameNumber) {
	e.frame = frame
	e.Clamp()
}

// NextFrame moves delta frames forward, wrapping around.
func (e *Editor) NextFrame(delta int) {
	n := int(e.Sprite().Frames())
	if n == 0 {
		return
	}
	e.frame = types.FrameNumber(((int(e.frame)+delta)%n + n) % n)
}

// SelectLayer moves the active layer delta positions up (positive) or down
// the stack, stopping at the ends.
func (e *Editor) SelectLayer(delta int) {
	sprite := e.Sprite()
	if e.layer == nil {
		return
	}
	idx := sprite.LayerIndex(e.layer) + delta
	idx = max(0, min(idx, len(sprite.Layers())-1))
	e.layer = sprite.LayerAt(idx)
}

// SetCurrentLayer activates l if it belongs to the sprite.
func (e *Editor) SetCurrentLayer(l *raster.Layer) {
	if e.Sprite().HasLayer(l) {
		e.layer = l
	}
}

// editableLayer returns the active layer when it can receive pixels.
func (e *Editor) editableLayer() (*raster.Layer, error) {
	if e.layer == nil {
		return nil, ErrNoLayer
	}
	if !e.layer.Flags().Has(types.LayerVisible | types.LayerEditable) {
		return nil, ErrLayerLocked
	}
	return e.layer, nil
}
