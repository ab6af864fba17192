package undoers

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
)

// AddLayer records that a layer was added to the stack.
type AddLayer struct {
	ref     docRef
	layerID undo.ObjectID
}

func NewAddLayer(objects *undo.Objects, doc *document.Document, layer *raster.Layer) *AddLayer {
	return &AddLayer{ref: newDocRef(objects, doc), layerID: objects.AddObject(layer)}
}

func (u *AddLayer) Dispose() {}

func (u *AddLayer) MemSize() int { return recordSize }

func (u *AddLayer) ObjectIDs() []undo.ObjectID { return append(u.ref.ids(), u.layerID) }

func (u *AddLayer) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	index := sprite.LayerIndex(layer)
	redoers.PushUndoer(NewRemoveLayer(objects, doc, layer))
	if err := sprite.RemoveLayer(layer); err != nil {
		return fmt.Errorf("add layer: %w", err)
	}
	logger.DebugTagf("undoers", "Reverted AddLayer '%s'", layer.Name())
	doc.NotifyLayer(event.TypeLayerRemoved, layer, index)
	return nil
}

// RemoveLayer records that a layer was removed. It keeps a detached copy of
// the layer with its cels and the layer it sat above.
type RemoveLayer struct {
	ref      docRef
	layerID  undo.ObjectID
	belowID  undo.ObjectID
	cels     []celRef
	detached *raster.Layer
	size     int
}

func NewRemoveLayer(objects *undo.Objects, doc *document.Document, layer *raster.Layer) *RemoveLayer {
	u := &RemoveLayer{
		ref:      newDocRef(objects, doc),
		layerID:  objects.AddObject(layer),
		belowID:  layerID(objects, doc.Sprite().LayerBelow(layer)),
		detached: detachLayer(layer),
	}
	for _, cel := range layer.Cels() {
		u.cels = append(u.cels, newCelRef(objects, cel))
	}
	u.size = recordSize + u.detached.MemSize()
	return u
}

func (u *RemoveLayer) Dispose() { u.detached = nil }

func (u *RemoveLayer) MemSize() int { return u.size }

func (u *RemoveLayer) ObjectIDs() []undo.ObjectID {
	ids := append(u.ref.ids(), u.layerID, u.belowID)
	for _, c := range u.cels {
		ids = append(ids, c.celID, c.imageID)
	}
	return ids
}

func (u *RemoveLayer) Revert(objects *undo.Objects, redoers undo.Collector) error {
	if u.detached == nil {
		return fmt.Errorf("remove layer %d: already disposed", u.layerID)
	}
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("remove layer: %w", err)
	}
	below, err := resolveLayer(objects, u.belowID)
	if err != nil {
		return fmt.Errorf("remove layer: %w", err)
	}

	layer := u.detached
	if err := sprite.AddLayer(layer, below); err != nil {
		return fmt.Errorf("remove layer: %w", err)
	}
	if err := objects.InsertObject(u.layerID, layer); err != nil {
		return fmt.Errorf("remove layer: %w", err)
	}
	for _, ref := range u.cels {
		cel := layer.Cel(ref.frame)
		if cel == nil {
			return fmt.Errorf("remove layer '%s': restored copy lost cel at frame %d", layer.Name(), ref.frame)
		}
		if err := ref.reinsert(objects, cel); err != nil {
			return fmt.Errorf("remove layer: %w", err)
		}
	}
	u.detached = nil

	redoers.PushUndoer(NewAddLayer(objects, doc, layer))
	logger.DebugTagf("undoers", "Reverted RemoveLayer '%s'", layer.Name())
	doc.NotifyLayer(event.TypeLayerAdded, layer, sprite.LayerIndex(layer))
	return nil
}

// MoveLayer records a layer stack position before a move.
type MoveLayer struct {
	ref     docRef
	layerID undo.ObjectID
	belowID undo.ObjectID
}

func NewMoveLayer(objects *undo.Objects, doc *document.Document, layer *raster.Layer) *MoveLayer {
	return &MoveLayer{
		ref:     newDocRef(objects, doc),
		layerID: objects.AddObject(layer),
		belowID: layerID(objects, doc.Sprite().LayerBelow(layer)),
	}
}

func (u *MoveLayer) Dispose() {}

func (u *MoveLayer) MemSize() int { return recordSize }

func (u *MoveLayer) ObjectIDs() []undo.ObjectID {
	return append(u.ref.ids(), u.layerID, u.belowID)
}

func (u *MoveLayer) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("move layer: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("move layer: %w", err)
	}
	below, err := resolveLayer(objects, u.belowID)
	if err != nil {
		return fmt.Errorf("move layer: %w", err)
	}
	redoers.PushUndoer(NewMoveLayer(objects, doc, layer))
	if err := sprite.MoveLayer(layer, below); err != nil {
		return fmt.Errorf("move layer: %w", err)
	}
	doc.NotifyLayer(event.TypeLayerMoved, layer, sprite.LayerIndex(layer))
	return nil
}

// SetLayerName records a layer name before a rename.
type SetLayerName struct {
	ref     docRef
	layerID undo.ObjectID
	name    string
}

func NewSetLayerName(objects *undo.Objects, doc *document.Document, layer *raster.Layer) *SetLayerName {
	return &SetLayerName{ref: newDocRef(objects, doc), layerID: objects.AddObject(layer), name: layer.Name()}
}

func (u *SetLayerName) Dispose() {}

func (u *SetLayerName) MemSize() int { return recordSize + len(u.name) }

func (u *SetLayerName) ObjectIDs() []undo.ObjectID { return append(u.ref.ids(), u.layerID) }

func (u *SetLayerName) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("set layer name: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("set layer name: %w", err)
	}
	redoers.PushUndoer(NewSetLayerName(objects, doc, layer))
	layer.SetName(u.name)
	doc.NotifyLayer(event.TypeLayerNameChanged, layer, sprite.LayerIndex(layer))
	return nil
}

// SetLayerFlags records layer flags before a change.
type SetLayerFlags struct {
	ref     docRef
	layerID undo.ObjectID
	flags   types.LayerFlags
}

func NewSetLayerFlags(objects *undo.Objects, doc *document.Document, layer *raster.Layer) *SetLayerFlags {
	return &SetLayerFlags{ref: newDocRef(objects, doc), layerID: objects.AddObject(layer), flags: layer.Flags()}
}

func (u *SetLayerFlags) Dispose() {}

func (u *SetLayerFlags) MemSize() int { return recordSize }

func (u *SetLayerFlags) ObjectIDs() []undo.ObjectID { return append(u.ref.ids(), u.layerID) }

func (u *SetLayerFlags) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("set layer flags: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("set layer flags: %w", err)
	}
	redoers.PushUndoer(NewSetLayerFlags(objects, doc, layer))
	layer.SetFlags(u.flags)
	doc.NotifyLayer(event.TypeLayerFlagsChanged, layer, sprite.LayerIndex(layer))
	return nil
}
