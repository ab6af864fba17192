// Package undoers holds the concrete undo records of the sprite document.
//
// Every constructor must run before the mutation it records: constructors
// capture the state that Revert restores. Undoers keep only registry IDs,
// plus detached copies of data the document no longer owns.
package undoers

import (
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
	clone "github.com/huandu/go-clone"
)

// recordSize approximates the fixed cost of an undo record.
const recordSize = 48

// docRef resolves the document and its sprite.
type docRef struct {
	docID    undo.ObjectID
	spriteID undo.ObjectID
}

func newDocRef(objects *undo.Objects, doc *document.Document) docRef {
	return docRef{
		docID:    objects.AddObject(doc),
		spriteID: objects.AddObject(doc.Sprite()),
	}
}

func (r docRef) resolve(objects *undo.Objects) (*document.Document, *raster.Sprite, error) {
	doc, err := undo.GetObjectT[*document.Document](objects, r.docID)
	if err != nil {
		return nil, nil, err
	}
	sprite, err := undo.GetObjectT[*raster.Sprite](objects, r.spriteID)
	if err != nil {
		return nil, nil, err
	}
	return doc, sprite, nil
}

func (r docRef) ids() []undo.ObjectID {
	return []undo.ObjectID{r.docID, r.spriteID}
}

// celRef remembers the IDs of a cel and its image so a detached copy can be
// re-inserted under them.
type celRef struct {
	frame   types.FrameNumber
	celID   undo.ObjectID
	imageID undo.ObjectID
}

func newCelRef(objects *undo.Objects, cel *raster.Cel) celRef {
	ref := celRef{frame: cel.Frame(), celID: objects.AddObject(cel)}
	if img := cel.Image(); img != nil {
		ref.imageID = objects.AddObject(img)
	}
	return ref
}

// reinsert maps the IDs back onto the restored copy.
func (r celRef) reinsert(objects *undo.Objects, cel *raster.Cel) error {
	if err := objects.InsertObject(r.celID, cel); err != nil {
		return err
	}
	if r.imageID != undo.NullID && cel.Image() != nil {
		return objects.InsertObject(r.imageID, cel.Image())
	}
	return nil
}

func celSize(cel *raster.Cel) int {
	if cel.Image() == nil {
		return recordSize
	}
	return recordSize + cel.Image().MemSize()
}

func detachCel(cel *raster.Cel) *raster.Cel {
	return clone.Clone(cel).(*raster.Cel)
}

func detachLayer(layer *raster.Layer) *raster.Layer {
	return clone.Clone(layer).(*raster.Layer)
}

func layerID(objects *undo.Objects, layer *raster.Layer) undo.ObjectID {
	if layer == nil {
		return undo.NullID
	}
	return objects.AddObject(layer)
}

// resolveLayer maps NullID to nil.
func resolveLayer(objects *undo.Objects, id undo.ObjectID) (*raster.Layer, error) {
	if id == undo.NullID {
		return nil, nil
	}
	return undo.GetObjectT[*raster.Layer](objects, id)
}
