package undoers

import (
	"testing"

	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
)

type collector struct{ pushed []undo.Undoer }

func (c *collector) PushUndoer(u undo.Undoer) { c.pushed = append(c.pushed, u) }

func newDoc(t *testing.T) (*document.Document, *raster.Layer, *event.Manager) {
	t.Helper()
	sprite := raster.NewSprite(2, 2, 2)
	layer := raster.NewLayer("Layer 1")
	if err := sprite.AddLayer(layer, nil); err != nil {
		t.Fatal(err)
	}
	img := raster.NewImage(2, 2)
	img.Set(0, 0, raster.RGBA(1, 2, 3, 255))
	if err := layer.AddCel(raster.NewCel(1, img)); err != nil {
		t.Fatal(err)
	}
	events := event.NewManager()
	return document.New("t", sprite, events), layer, events
}

func TestImageAreaSwapsPixels(t *testing.T) {
	doc, layer, _ := newDoc(t)
	objects := undo.NewObjects()
	img := layer.Cel(1).Image()
	region := types.NewRect(0, 0, 1, 1)
	before := img.At(0, 0)

	u, err := NewImageArea(objects, doc, img, region)
	if err != nil {
		t.Fatal(err)
	}
	size := u.MemSize()
	img.Set(0, 0, raster.RGBA(9, 9, 9, 255))
	after := img.At(0, 0)

	var redo collector
	if err := u.Revert(objects, &redo); err != nil {
		t.Fatal(err)
	}
	if img.At(0, 0) != before {
		t.Errorf("pixel not restored")
	}
	if len(redo.pushed) != 1 {
		t.Fatalf("pushed %d inverses, want 1", len(redo.pushed))
	}

	if err := redo.pushed[0].Revert(objects, &collector{}); err != nil {
		t.Fatal(err)
	}
	if img.At(0, 0) != after {
		t.Errorf("inverse did not re-apply the edit")
	}

	u.Dispose()
	u.Dispose()
	if u.MemSize() != size {
		t.Errorf("MemSize changed after Dispose: %d != %d", u.MemSize(), size)
	}
}

func TestRemoveFrameRestoresCelsUnderSameIDs(t *testing.T) {
	doc, layer, events := newDoc(t)
	objects := undo.NewObjects()
	sprite := doc.Sprite()
	cel := layer.Cel(1)

	var notified []event.Type
	events.SubscribeDocumentChanges(func(e event.Event) bool {
		notified = append(notified, e.Type)
		return false
	})

	u := NewRemoveFrame(objects, doc, 1)
	celID, _ := objects.IDOf(cel)
	imgID, _ := objects.IDOf(cel.Image())
	if err := sprite.RemoveFrame(1); err != nil {
		t.Fatal(err)
	}

	var redo collector
	if err := u.Revert(objects, &redo); err != nil {
		t.Fatal(err)
	}
	restored := layer.Cel(1)
	if restored == nil || !restored.Equal(cel) {
		t.Fatal("cel not restored")
	}
	if got, _ := objects.GetObject(celID); got != restored {
		t.Error("cel id does not resolve to the restored cel")
	}
	if got, _ := objects.GetObject(imgID); got != restored.Image() {
		t.Error("image id does not resolve to the restored image")
	}
	if _, ok := redo.pushed[0].(*AddFrame); !ok {
		t.Errorf("inverse is %T, want *AddFrame", redo.pushed[0])
	}
	if len(notified) != 1 || notified[0] != event.TypeFrameAdded {
		t.Errorf("notifications = %v", notified)
	}
}

func TestDisposedRemoveLayerCannotRevert(t *testing.T) {
	doc, layer, _ := newDoc(t)
	objects := undo.NewObjects()
	u := NewRemoveLayer(objects, doc, layer)
	if err := doc.Sprite().RemoveLayer(layer); err != nil {
		t.Fatal(err)
	}
	u.Dispose()

	if err := u.Revert(objects, &collector{}); err == nil {
		t.Error("reverting a disposed RemoveLayer should fail")
	}
	if doc.Sprite().HasLayer(layer) {
		t.Error("layer must stay removed")
	}
}

func TestMoveLayerInverse(t *testing.T) {
	doc, bottom, _ := newDoc(t)
	objects := undo.NewObjects()
	sprite := doc.Sprite()
	top := raster.NewLayer("Layer 2")
	if err := sprite.AddLayer(top, bottom); err != nil {
		t.Fatal(err)
	}

	u := NewMoveLayer(objects, doc, top)
	if err := sprite.MoveLayer(top, nil); err != nil {
		t.Fatal(err)
	}
	var redo collector
	if err := u.Revert(objects, &redo); err != nil {
		t.Fatal(err)
	}
	if sprite.LayerAt(1) != top {
		t.Fatalf("top layer not moved back")
	}
	if err := redo.pushed[0].Revert(objects, &collector{}); err != nil {
		t.Fatal(err)
	}
	if sprite.LayerAt(0) != top {
		t.Error("inverse did not move the layer to the bottom again")
	}
}

func TestDanglingLayerReference(t *testing.T) {
	doc, layer, _ := newDoc(t)
	objects := undo.NewObjects()
	u := NewSetLayerName(objects, doc, layer)
	id, _ := objects.IDOf(layer)
	objects.RemoveObject(id)

	if err := u.Revert(objects, &collector{}); err == nil {
		t.Fatal("expected dangling reference error")
	}
}
