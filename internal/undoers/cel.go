package undoers

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
)

// AddCel records that a cel was attached to a layer.
type AddCel struct {
	ref     docRef
	layerID undo.ObjectID
	celID   undo.ObjectID
}

func NewAddCel(objects *undo.Objects, doc *document.Document, layer *raster.Layer, cel *raster.Cel) *AddCel {
	return &AddCel{
		ref:     newDocRef(objects, doc),
		layerID: objects.AddObject(layer),
		celID:   objects.AddObject(cel),
	}
}

func (u *AddCel) Dispose() {}

func (u *AddCel) MemSize() int { return recordSize }

func (u *AddCel) ObjectIDs() []undo.ObjectID { return append(u.ref.ids(), u.layerID, u.celID) }

func (u *AddCel) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("add cel: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("add cel: %w", err)
	}
	cel, err := undo.GetObjectT[*raster.Cel](objects, u.celID)
	if err != nil {
		return fmt.Errorf("add cel: %w", err)
	}
	redoers.PushUndoer(NewRemoveCel(objects, doc, layer, cel))
	if err := layer.RemoveCel(cel); err != nil {
		return fmt.Errorf("add cel: %w", err)
	}
	doc.Notify(event.TypeCelRemoved, celData(sprite, layer, cel))
	return nil
}

// RemoveCel records a cel removal and keeps a detached copy of it.
type RemoveCel struct {
	ref      docRef
	layerID  undo.ObjectID
	cel      celRef
	detached *raster.Cel
	size     int
}

func NewRemoveCel(objects *undo.Objects, doc *document.Document, layer *raster.Layer, cel *raster.Cel) *RemoveCel {
	detached := detachCel(cel)
	return &RemoveCel{
		ref:      newDocRef(objects, doc),
		layerID:  objects.AddObject(layer),
		cel:      newCelRef(objects, cel),
		detached: detached,
		size:     celSize(detached),
	}
}

func (u *RemoveCel) Dispose() { u.detached = nil }

func (u *RemoveCel) MemSize() int { return u.size }

func (u *RemoveCel) ObjectIDs() []undo.ObjectID {
	return append(u.ref.ids(), u.layerID, u.cel.celID, u.cel.imageID)
}

func (u *RemoveCel) Revert(objects *undo.Objects, redoers undo.Collector) error {
	if u.detached == nil {
		return fmt.Errorf("remove cel %d: already disposed", u.cel.celID)
	}
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("remove cel: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("remove cel: %w", err)
	}
	cel := u.detached
	if err := layer.AddCel(cel); err != nil {
		return fmt.Errorf("remove cel: %w", err)
	}
	if err := u.cel.reinsert(objects, cel); err != nil {
		return fmt.Errorf("remove cel: %w", err)
	}
	u.detached = nil

	redoers.PushUndoer(NewAddCel(objects, doc, layer, cel))
	doc.Notify(event.TypeCelAdded, celData(sprite, layer, cel))
	return nil
}

// SetCelPosition records a cel position before a move.
type SetCelPosition struct {
	ref      docRef
	layerID  undo.ObjectID
	celID    undo.ObjectID
	position types.Point
}

func NewSetCelPosition(objects *undo.Objects, doc *document.Document, layer *raster.Layer, cel *raster.Cel) *SetCelPosition {
	return &SetCelPosition{
		ref:      newDocRef(objects, doc),
		layerID:  objects.AddObject(layer),
		celID:    objects.AddObject(cel),
		position: cel.Position(),
	}
}

func (u *SetCelPosition) Dispose() {}

func (u *SetCelPosition) MemSize() int { return recordSize }

func (u *SetCelPosition) ObjectIDs() []undo.ObjectID {
	return append(u.ref.ids(), u.layerID, u.celID)
}

func (u *SetCelPosition) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("set cel position: %w", err)
	}
	layer, err := undo.GetObjectT[*raster.Layer](objects, u.layerID)
	if err != nil {
		return fmt.Errorf("set cel position: %w", err)
	}
	cel, err := undo.GetObjectT[*raster.Cel](objects, u.celID)
	if err != nil {
		return fmt.Errorf("set cel position: %w", err)
	}
	old := cel.Bounds()
	redoers.PushUndoer(NewSetCelPosition(objects, doc, layer, cel))
	cel.SetPosition(u.position)

	data := celData(sprite, layer, cel)
	data.Region = old.Union(cel.Bounds())
	doc.Notify(event.TypeCelMoved, data)
	return nil
}

func celData(sprite *raster.Sprite, layer *raster.Layer, cel *raster.Cel) event.DocumentData {
	return event.DocumentData{
		Frame:      cel.Frame(),
		Layer:      layer.Name(),
		LayerIndex: sprite.LayerIndex(layer),
		Region:     cel.Bounds(),
	}
}
