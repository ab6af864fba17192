// Package docapi performs document edits and records the matching undoer
// in the open transaction for each one.
package docapi

import (
	"errors"
	"fmt"

	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
	"github.com/bethropolis/sprig/internal/undoers"
)

var (
	ErrNoCel         = errors.New("no cel in this layer and frame")
	ErrNotBackground = errors.New("layer is not a background layer")
)

// API mutates one document inside one transaction.
type API struct {
	objects *undo.Objects
	doc     *document.Document
	tx      *undo.Transaction
}

// New binds the API to an open transaction.
func New(objects *undo.Objects, doc *document.Document, tx *undo.Transaction) *API {
	return &API{objects: objects, doc: doc, tx: tx}
}

func (a *API) Document() *document.Document { return a.doc }
func (a *API) Sprite() *raster.Sprite       { return a.doc.Sprite() }

// record hands u to the transaction; u is disposed when it cannot be recorded.
func (a *API) record(u undo.Undoer) error {
	if err := a.tx.Add(u); err != nil {
		u.Dispose()
		return err
	}
	return nil
}

func (a *API) checkOpen() error {
	if a.tx.Closed() {
		return undo.ErrTransactionClosed
	}
	return nil
}

// AddFrame inserts an empty frame at position at.
func (a *API) AddFrame(at types.FrameNumber) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if err := a.Sprite().AddFrame(at); err != nil {
		return err
	}
	if err := a.record(undoers.NewAddFrame(a.objects, a.doc, at)); err != nil {
		return err
	}
	a.doc.NotifyFrame(event.TypeFrameAdded, at)
	return nil
}

// DuplicateFrame inserts a copy of frame right after it, with a copy of
// every cel the frame holds.
func (a *API) DuplicateFrame(frame types.FrameNumber) (types.FrameNumber, error) {
	sprite := a.Sprite()
	if frame < 0 || frame >= sprite.Frames() {
		return 0, fmt.Errorf("%w: %d", raster.ErrFrameOutOfRange, frame)
	}
	duration := sprite.FrameDuration(frame)
	at := frame + 1
	if err := a.AddFrame(at); err != nil {
		return 0, err
	}
	if err := a.SetFrameDuration(at, duration); err != nil {
		return 0, err
	}
	for _, layer := range sprite.Layers() {
		src := layer.Cel(frame)
		if src == nil {
			continue
		}
		var img *raster.Image
		if src.Image() != nil {
			img = src.Image().Clone()
		}
		cel, err := a.AddCel(layer, at, img)
		if err != nil {
			return 0, err
		}
		cel.SetPosition(src.Position())
		cel.SetOpacity(src.Opacity())
	}
	return at, nil
}

// RemoveFrame deletes frame and the cels it holds.
func (a *API) RemoveFrame(frame types.FrameNumber) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	sprite := a.Sprite()
	if frame < 0 || frame >= sprite.Frames() {
		return fmt.Errorf("%w: %d", raster.ErrFrameOutOfRange, frame)
	}
	if sprite.Frames() == 1 {
		return raster.ErrLastFrame
	}
	u := undoers.NewRemoveFrame(a.objects, a.doc, frame)
	if err := sprite.RemoveFrame(frame); err != nil {
		u.Dispose()
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.NotifyFrame(event.TypeFrameRemoved, frame)
	return nil
}

// SetFrameDuration changes the duration of frame in milliseconds.
func (a *API) SetFrameDuration(frame types.FrameNumber, msecs int) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	sprite := a.Sprite()
	if frame < 0 || frame >= sprite.Frames() {
		return fmt.Errorf("%w: %d", raster.ErrFrameOutOfRange, frame)
	}
	if sprite.FrameDuration(frame) == msecs {
		return nil
	}
	u := undoers.NewSetFrameDuration(a.objects, a.doc, frame)
	if err := sprite.SetFrameDuration(frame, msecs); err != nil {
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.NotifyFrame(event.TypeFrameDurationChanged, frame)
	return nil
}

// AddLayer creates a layer directly above after (nil: at the bottom).
func (a *API) AddLayer(name string, after *raster.Layer) (*raster.Layer, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	sprite := a.Sprite()
	layer := raster.NewLayer(name)
	if err := sprite.AddLayer(layer, after); err != nil {
		return nil, err
	}
	if err := a.record(undoers.NewAddLayer(a.objects, a.doc, layer)); err != nil {
		return nil, err
	}
	a.doc.NotifyLayer(event.TypeLayerAdded, layer, sprite.LayerIndex(layer))
	return layer, nil
}

// RemoveLayer detaches layer from the sprite.
func (a *API) RemoveLayer(layer *raster.Layer) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	sprite := a.Sprite()
	index := sprite.LayerIndex(layer)
	if index < 0 {
		return fmt.Errorf("%w: '%s'", raster.ErrLayerNotFound, layer.Name())
	}
	u := undoers.NewRemoveLayer(a.objects, a.doc, layer)
	if err := sprite.RemoveLayer(layer); err != nil {
		u.Dispose()
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.NotifyLayer(event.TypeLayerRemoved, layer, index)
	return nil
}

// MoveLayer moves layer directly above after (nil: to the bottom).
func (a *API) MoveLayer(layer, after *raster.Layer) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	sprite := a.Sprite()
	if !sprite.HasLayer(layer) {
		return fmt.Errorf("%w: '%s'", raster.ErrLayerNotFound, layer.Name())
	}
	if layer == after || sprite.LayerBelow(layer) == after {
		return nil
	}
	u := undoers.NewMoveLayer(a.objects, a.doc, layer)
	if err := sprite.MoveLayer(layer, after); err != nil {
		u.Dispose()
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.NotifyLayer(event.TypeLayerMoved, layer, sprite.LayerIndex(layer))
	return nil
}

// RenameLayer changes the layer name.
func (a *API) RenameLayer(layer *raster.Layer, name string) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if layer.Name() == name {
		return nil
	}
	if err := a.record(undoers.NewSetLayerName(a.objects, a.doc, layer)); err != nil {
		return err
	}
	layer.SetName(name)
	a.doc.NotifyLayer(event.TypeLayerNameChanged, layer, a.Sprite().LayerIndex(layer))
	return nil
}

// SetLayerFlags replaces the layer flags.
func (a *API) SetLayerFlags(layer *raster.Layer, flags types.LayerFlags) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if layer.Flags() == flags {
		return nil
	}
	if err := a.record(undoers.NewSetLayerFlags(a.objects, a.doc, layer)); err != nil {
		return err
	}
	layer.SetFlags(flags)
	a.doc.NotifyLayer(event.TypeLayerFlagsChanged, layer, a.Sprite().LayerIndex(layer))
	return nil
}

// LayerFromBackground turns the background layer into a regular, editable
// and visible layer named "Layer 0".
func (a *API) LayerFromBackground(layer *raster.Layer) error {
	if !layer.IsBackground() {
		return fmt.Errorf("%w: '%s'", ErrNotBackground, layer.Name())
	}
	flags := layer.Flags()&^types.LayerBackground | types.LayerVisible | types.LayerEditable
	if err := a.SetLayerFlags(layer, flags); err != nil {
		return err
	}
	return a.RenameLayer(layer, "Layer 0")
}

// AddCel attaches a new cel showing img to layer in frame.
func (a *API) AddCel(layer *raster.Layer, frame types.FrameNumber, img *raster.Image) (*raster.Cel, error) {
	if err := a.checkOpen(); err != nil {
		return nil, err
	}
	sprite := a.Sprite()
	if !sprite.HasLayer(layer) {
		return nil, fmt.Errorf("%w: '%s'", raster.ErrLayerNotFound, layer.Name())
	}
	if frame < 0 || frame >= sprite.Frames() {
		return nil, fmt.Errorf("%w: %d", raster.ErrFrameOutOfRange, frame)
	}
	cel := raster.NewCel(frame, img)
	if err := layer.AddCel(cel); err != nil {
		return nil, err
	}
	if err := a.record(undoers.NewAddCel(a.objects, a.doc, layer, cel)); err != nil {
		return nil, err
	}
	a.doc.Notify(event.TypeCelAdded, event.DocumentData{
		Frame: frame, Layer: layer.Name(), LayerIndex: sprite.LayerIndex(layer), Region: cel.Bounds(),
	})
	return cel, nil
}

// RemoveCel detaches the cel of layer in frame.
func (a *API) RemoveCel(layer *raster.Layer, frame types.FrameNumber) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	cel := layer.Cel(frame)
	if cel == nil {
		return fmt.Errorf("%w: layer '%s' frame %d", ErrNoCel, layer.Name(), frame)
	}
	u := undoers.NewRemoveCel(a.objects, a.doc, layer, cel)
	if err := layer.RemoveCel(cel); err != nil {
		u.Dispose()
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.Notify(event.TypeCelRemoved, event.DocumentData{
		Frame: frame, Layer: layer.Name(), LayerIndex: a.Sprite().LayerIndex(layer), Region: cel.Bounds(),
	})
	return nil
}

// SetCelPosition moves the cel of layer in frame to pos.
func (a *API) SetCelPosition(layer *raster.Layer, frame types.FrameNumber, pos types.Point) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	cel := layer.Cel(frame)
	if cel == nil {
		return fmt.Errorf("%w: layer '%s' frame %d", ErrNoCel, layer.Name(), frame)
	}
	if cel.Position() == pos {
		return nil
	}
	old := cel.Bounds()
	if err := a.record(undoers.NewSetCelPosition(a.objects, a.doc, layer, cel)); err != nil {
		return err
	}
	cel.SetPosition(pos)
	a.doc.Notify(event.TypeCelMoved, event.DocumentData{
		Frame: frame, Layer: layer.Name(), LayerIndex: a.Sprite().LayerIndex(layer), Region: old.Union(cel.Bounds()),
	})
	return nil
}

// EnsureCel returns the cel of layer in frame, creating a transparent
// canvas-sized one when the frame is empty.
func (a *API) EnsureCel(layer *raster.Layer, frame types.FrameNumber) (*raster.Cel, error) {
	if cel := layer.Cel(frame); cel != nil {
		return cel, nil
	}
	sprite := a.Sprite()
	return a.AddCel(layer, frame, raster.NewImage(sprite.Width(), sprite.Height()))
}

// FlipImage flips the region of img along flipType.
func (a *API) FlipImage(img *raster.Image, bounds types.Rect, flipType types.FlipType) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	bounds = bounds.Intersect(img.Bounds())
	if bounds.IsEmpty() {
		return nil
	}
	if err := raster.FlipImage(img, bounds, flipType); err != nil {
		return err
	}
	if err := a.record(undoers.NewFlipImage(a.objects, a.doc, img, bounds, flipType)); err != nil {
		return err
	}
	a.doc.Notify(event.TypePixelsChanged, event.DocumentData{LayerIndex: -1, Region: bounds})
	return nil
}

// PutPixels replaces the pixels of region (row major, as CopyRect returns them).
func (a *API) PutPixels(img *raster.Image, region types.Rect, pixels []raster.Pixel) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if len(pixels) != region.Area() {
		return fmt.Errorf("put %v: got %d pixels, want %d", region, len(pixels), region.Area())
	}
	u, err := undoers.NewImageArea(a.objects, a.doc, img, region)
	if err != nil {
		return err
	}
	if err := img.PutRect(region, pixels); err != nil {
		u.Dispose()
		return err
	}
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.Notify(event.TypePixelsChanged, event.DocumentData{LayerIndex: -1, Region: region})
	return nil
}

// FillRect paints region of img (clipped to the image) with p.
func (a *API) FillRect(img *raster.Image, region types.Rect, p raster.Pixel) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	region = region.Intersect(img.Bounds())
	if region.IsEmpty() {
		logger.DebugTagf("docapi", "Fill outside image bounds ignored")
		return nil
	}
	u, err := undoers.NewImageArea(a.objects, a.doc, img, region)
	if err != nil {
		return err
	}
	img.Fill(region, p)
	if err := a.record(u); err != nil {
		return err
	}
	a.doc.Notify(event.TypePixelsChanged, event.DocumentData{LayerIndex: -1, Region: region})
	return nil
}
