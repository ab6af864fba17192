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

// AddFrame records that a frame was inserted. Reverting removes it again.
type AddFrame struct {
	ref   docRef
	frame types.FrameNumber
}

func NewAddFrame(objects *undo.Objects, doc *document.Document, frame types.FrameNumber) *AddFrame {
	return &AddFrame{ref: newDocRef(objects, doc), frame: frame}
}

func (u *AddFrame) Dispose() {}

func (u *AddFrame) MemSize() int { return recordSize }

func (u *AddFrame) ObjectIDs() []undo.ObjectID { return u.ref.ids() }

func (u *AddFrame) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("add frame %d: %w", u.frame, err)
	}
	// The inverse snapshots whatever the frame holds right now.
	redoers.PushUndoer(NewRemoveFrame(objects, doc, u.frame))
	if err := sprite.RemoveFrame(u.frame); err != nil {
		return fmt.Errorf("add frame %d: %w", u.frame, err)
	}
	logger.DebugTagf("undoers", "Reverted AddFrame %d", u.frame)
	doc.NotifyFrame(event.TypeFrameRemoved, u.frame)
	return nil
}

// RemoveFrame records that a frame was removed. It keeps the frame duration
// and detached copies of the cels the frame held in every layer.
type RemoveFrame struct {
	ref      docRef
	frame    types.FrameNumber
	duration int
	cels     []removedCel
	size     int
}

type removedCel struct {
	layerID  undo.ObjectID
	cel      celRef
	detached *raster.Cel
}

func NewRemoveFrame(objects *undo.Objects, doc *document.Document, frame types.FrameNumber) *RemoveFrame {
	sprite := doc.Sprite()
	u := &RemoveFrame{
		ref:      newDocRef(objects, doc),
		frame:    frame,
		duration: sprite.FrameDuration(frame),
		size:     recordSize,
	}
	for _, layer := range sprite.Layers() {
		cel := layer.Cel(frame)
		if cel == nil {
			continue
		}
		copied := detachCel(cel)
		u.cels = append(u.cels, removedCel{
			layerID:  objects.AddObject(layer),
			cel:      newCelRef(objects, cel),
			detached: copied,
		})
		u.size += celSize(copied)
	}
	return u
}

func (u *RemoveFrame) Dispose() {
	for i := range u.cels {
		u.cels[i].detached = nil
	}
}

func (u *RemoveFrame) MemSize() int { return u.size }

func (u *RemoveFrame) ObjectIDs() []undo.ObjectID {
	ids := u.ref.ids()
	for _, c := range u.cels {
		ids = append(ids, c.layerID, c.cel.celID, c.cel.imageID)
	}
	return ids
}

func (u *RemoveFrame) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("remove frame %d: %w", u.frame, err)
	}
	for _, c := range u.cels {
		if c.detached == nil {
			return fmt.Errorf("remove frame %d: cel %d already disposed", u.frame, c.cel.celID)
		}
		if _, err := resolveLayer(objects, c.layerID); err != nil {
			return fmt.Errorf("remove frame %d: %w", u.frame, err)
		}
	}

	if err := sprite.AddFrame(u.frame); err != nil {
		return fmt.Errorf("remove frame %d: %w", u.frame, err)
	}
	if u.duration > 0 {
		if err := sprite.SetFrameDuration(u.frame, u.duration); err != nil {
			return fmt.Errorf("remove frame %d: %w", u.frame, err)
		}
	}
	for i := range u.cels {
		c := &u.cels[i]
		layer, _ := resolveLayer(objects, c.layerID)
		if err := layer.AddCel(c.detached); err != nil {
			return fmt.Errorf("remove frame %d: %w", u.frame, err)
		}
		if err := c.cel.reinsert(objects, c.detached); err != nil {
			return fmt.Errorf("remove frame %d: %w", u.frame, err)
		}
		// Owned by the layer now.
		c.detached = nil
	}

	redoers.PushUndoer(NewAddFrame(objects, doc, u.frame))
	logger.DebugTagf("undoers", "Reverted RemoveFrame %d (%d cels)", u.frame, len(u.cels))
	doc.NotifyFrame(event.TypeFrameAdded, u.frame)
	return nil
}

// SetFrameDuration records a frame duration change.
type SetFrameDuration struct {
	ref      docRef
	frame    types.FrameNumber
	duration int
}

func NewSetFrameDuration(objects *undo.Objects, doc *document.Document, frame types.FrameNumber) *SetFrameDuration {
	return &SetFrameDuration{
		ref:      newDocRef(objects, doc),
		frame:    frame,
		duration: doc.Sprite().FrameDuration(frame),
	}
}

func (u *SetFrameDuration) Dispose() {}

func (u *SetFrameDuration) MemSize() int { return recordSize }

func (u *SetFrameDuration) ObjectIDs() []undo.ObjectID { return u.ref.ids() }

func (u *SetFrameDuration) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, sprite, err := u.ref.resolve(objects)
	if err != nil {
		return fmt.Errorf("set frame duration: %w", err)
	}
	redoers.PushUndoer(NewSetFrameDuration(objects, doc, u.frame))
	if err := sprite.SetFrameDuration(u.frame, u.duration); err != nil {
		return fmt.Errorf("set frame duration: %w", err)
	}
	doc.NotifyFrame(event.TypeFrameDurationChanged, u.frame)
	return nil
}
