package session

import (
	"errors"
	"testing"

	"github.com/bethropolis/sprig/internal/docapi"
	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
	clone "github.com/huandu/go-clone"
)

var (
	red   = raster.RGBA(255, 0, 0, 255)
	green = raster.RGBA(0, 255, 0, 255)
	blue  = raster.RGBA(0, 0, 255, 255)
)

// newTestSession builds a 4x4 sprite with frames and a background layer
// whose frame 0 cel is solid red.
func newTestSession(t *testing.T, frames int, opts ...Option) (*Session, *raster.Layer) {
	t.Helper()
	sprite := raster.NewSprite(4, 4, frames)
	bg := raster.NewLayer("Background")
	bg.SetFlags(types.DefaultLayerFlags | types.LayerBackground)
	if err := sprite.AddLayer(bg, nil); err != nil {
		t.Fatal(err)
	}
	img := raster.NewImage(4, 4)
	img.Fill(img.Bounds(), red)
	if err := bg.AddCel(raster.NewCel(0, img)); err != nil {
		t.Fatal(err)
	}

	s := New(document.New("test", sprite, event.NewManager()), opts...)
	t.Cleanup(s.Close)
	return s, bg
}

func snapshot(s *Session) *raster.Sprite {
	return clone.Clone(s.Document().Sprite()).(*raster.Sprite)
}

func mustExecute(t *testing.T, s *Session, label string, fn func(api *docapi.API) error) {
	t.Helper()
	if err := s.Execute(label, fn); err != nil {
		t.Fatalf("Execute(%q): %v", label, err)
	}
}

func TestUndoAllRestoresInitialState(t *testing.T) {
	s, bg := newTestSession(t, 2)
	initial := snapshot(s)
	var top *raster.Layer

	steps := []struct {
		label string
		fn    func(api *docapi.API) error
	}{
		{"Add Frame", func(api *docapi.API) error { return api.AddFrame(2) }},
		{"New Layer", func(api *docapi.API) error {
			var err error
			top, err = api.AddLayer("Layer 1", bg)
			return err
		}},
		{"Fill", func(api *docapi.API) error {
			cel, err := api.EnsureCel(top, 0)
			if err != nil {
				return err
			}
			return api.FillRect(cel.Image(), types.NewRect(1, 1, 2, 2), blue)
		}},
		{"Paint", func(api *docapi.API) error {
			return api.PutPixels(bg.Cel(0).Image(), types.NewRect(0, 0, 1, 1), []raster.Pixel{green})
		}},
		{"Flip Horizontal", func(api *docapi.API) error {
			return api.FlipImage(bg.Cel(0).Image(), types.NewRect(0, 0, 4, 4), types.FlipHorizontal)
		}},
		{"Rename Layer", func(api *docapi.API) error { return api.RenameLayer(top, "Ink") }},
		{"Move Layer", func(api *docapi.API) error { return api.MoveLayer(top, nil) }},
		{"Frame Duration", func(api *docapi.API) error { return api.SetFrameDuration(1, 250) }},
		{"Move Cel", func(api *docapi.API) error { return api.SetCelPosition(top, 0, types.Point{X: 1}) }},
		{"Remove Frame", func(api *docapi.API) error { return api.RemoveFrame(0) }},
		{"Remove Layer", func(api *docapi.API) error { return api.RemoveLayer(bg) }},
	}
	for _, step := range steps {
		mustExecute(t, s, step.label, step.fn)
	}
	final := snapshot(s)

	for i := range steps {
		if err := s.Undo(); err != nil {
			t.Fatalf("Undo %d (%s): %v", i, steps[len(steps)-1-i].label, err)
		}
	}
	if s.CanUndo() {
		t.Fatal("undo stack should be empty")
	}
	if !s.Document().Sprite().Equal(initial) {
		t.Fatal("undoing every transaction did not restore the initial sprite")
	}

	for i := range steps {
		if err := s.Redo(); err != nil {
			t.Fatalf("Redo %d (%s): %v", i, steps[i].label, err)
		}
	}
	if !s.Document().Sprite().Equal(final) {
		t.Fatal("redoing every transaction did not restore the final sprite")
	}
}

func TestAddFrameWithContentScenario(t *testing.T) {
	s, bg := newTestSession(t, 3)
	content := raster.NewImage(4, 4)
	content.Fill(types.NewRect(0, 0, 2, 4), blue)

	mustExecute(t, s, "Add Frame", func(api *docapi.API) error {
		if err := api.AddFrame(3); err != nil {
			return err
		}
		_, err := api.AddCel(bg, 3, content.Clone())
		return err
	})
	sprite := s.Document().Sprite()
	celID, ok := s.Objects().IDOf(bg.Cel(3))
	if !ok {
		t.Fatal("added cel has no id")
	}
	if label, ok := s.CurrentUndoLabel(); !ok || label != "Add Frame" {
		t.Errorf("undo label = %q, %v", label, ok)
	}

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if sprite.Frames() != 3 || bg.Cel(3) != nil {
		t.Fatalf("after undo: frames=%d", sprite.Frames())
	}
	if label, ok := s.CurrentRedoLabel(); !ok || label != "Add Frame" {
		t.Errorf("redo label = %q, %v", label, ok)
	}

	if err := s.Redo(); err != nil {
		t.Fatal(err)
	}
	if sprite.Frames() != 4 {
		t.Fatalf("after redo: frames=%d", sprite.Frames())
	}
	cel := bg.Cel(3)
	if cel == nil || !cel.Image().Equal(content) {
		t.Fatal("frame 3 content not pixel-identical after redo")
	}
	got, err := undo.GetObjectT[*raster.Cel](s.Objects(), celID)
	if err != nil || got != cel {
		t.Errorf("cel id %d no longer resolves to the restored cel: %v", celID, err)
	}
}

func TestFlipTwiceUndoOnce(t *testing.T) {
	s, bg := newTestSession(t, 1)
	img := bg.Cel(0).Image()
	img.Set(0, 0, green)

	flip := func(api *docapi.API) error {
		return api.FlipImage(img, img.Bounds(), types.FlipHorizontal)
	}
	mustExecute(t, s, "Flip Horizontal", flip)
	once := img.Clone()
	mustExecute(t, s, "Flip Horizontal", flip)

	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !img.Equal(once) || img.At(3, 0) != green {
		t.Error("image should be in the single-flip state")
	}
}

type countingUndoer struct{ disposed *int }

func (u *countingUndoer) Dispose() { *u.disposed++ }

func (u *countingUndoer) MemSize() int { return 1 }

func (u *countingUndoer) Revert(*undo.Objects, undo.Collector) error { return nil }

func TestDiscardLeavesHistoryUntouched(t *testing.T) {
	s, _ := newTestSession(t, 1)
	before := snapshot(s)
	disposed := 0

	tx, err := s.BeginTransaction("nothing")
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 2; i++ {
		if err := s.RecordUndoer(tx, &countingUndoer{disposed: &disposed}); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.DiscardTransaction(tx); err != nil {
		t.Fatal(err)
	}

	if disposed != 2 {
		t.Errorf("disposed %d undoers, want 2", disposed)
	}
	if s.CanUndo() || s.CanRedo() {
		t.Error("discard must not touch the stacks")
	}
	if !s.Document().Sprite().Equal(before) {
		t.Error("document changed")
	}
}

func TestCommitAfterUndoClearsRedo(t *testing.T) {
	s, _ := newTestSession(t, 1)
	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	mustExecute(t, s, "New Layer", func(api *docapi.API) error {
		_, err := api.AddLayer("Layer 1", nil)
		return err
	})

	if err := s.Redo(); !errors.Is(err, undo.ErrNothingToRedo) {
		t.Errorf("Redo = %v, want ErrNothingToRedo", err)
	}
}

func TestEmptyTransactionIsNoop(t *testing.T) {
	s, _ := newTestSession(t, 1)
	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}

	tx, err := s.BeginTransaction("empty")
	if err != nil {
		t.Fatal(err)
	}
	if err := s.CommitTransaction(tx); err != nil {
		t.Fatal(err)
	}

	if !s.CanRedo() || s.Stats().UndoCount != 0 {
		t.Errorf("empty commit changed the history: %+v", s.Stats())
	}
}

func TestFailedExecuteRollsBack(t *testing.T) {
	s, _ := newTestSession(t, 1)
	err := s.Execute("Remove Frame", func(api *docapi.API) error { return api.RemoveFrame(0) })
	if !errors.Is(err, raster.ErrLastFrame) {
		t.Fatalf("Execute = %v, want ErrLastFrame", err)
	}
	if s.CanUndo() {
		t.Error("failed edit must not be recorded")
	}
	// The session accepts new transactions afterwards.
	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
}

func TestFailedMultiStepExecuteRestoresSprite(t *testing.T) {
	s, bg := newTestSession(t, 1)
	before := snapshot(s)
	errStop := errors.New("stop")

	err := s.Execute("Add Frame With Content", func(api *docapi.API) error {
		if err := api.AddFrame(1); err != nil {
			return err
		}
		img := bg.Cel(0).Image()
		if err := api.FillRect(img, img.Bounds(), blue); err != nil {
			return err
		}
		if _, err := api.AddLayer("Scratch", bg); err != nil {
			return err
		}
		return errStop
	})
	if !errors.Is(err, errStop) {
		t.Fatalf("Execute = %v, want errStop", err)
	}
	if !s.Document().Sprite().Equal(before) {
		t.Error("failed Execute left its edits in the sprite")
	}
	if s.CanUndo() || s.CanRedo() {
		t.Errorf("history changed: canUndo=%v canRedo=%v", s.CanUndo(), s.CanRedo())
	}
	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
	if s.Document().Sprite().Frames() != 2 {
		t.Errorf("frames=%d, want 2", s.Document().Sprite().Frames())
	}
}

func TestPanicInsideExecuteClosesTransaction(t *testing.T) {
	s, bg := newTestSession(t, 1)
	before := snapshot(s)

	func() {
		defer func() {
			if r := recover(); r != "kaboom" {
				t.Errorf("recovered %v, want the original panic", r)
			}
		}()
		_ = s.Execute("Fill", func(api *docapi.API) error {
			img := bg.Cel(0).Image()
			if err := api.FillRect(img, img.Bounds(), green); err != nil {
				return err
			}
			panic("kaboom")
		})
	}()

	if !s.Document().Sprite().Equal(before) {
		t.Error("panicking Execute left its edits in the sprite")
	}
	if s.CanUndo() {
		t.Error("panicking edit must not be recorded")
	}
	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
}

func TestNilTransaction(t *testing.T) {
	s, _ := newTestSession(t, 1)
	if err := s.RecordUndoer(nil, &countingUndoer{disposed: new(int)}); !errors.Is(err, undo.ErrTransactionClosed) {
		t.Errorf("RecordUndoer(nil) = %v", err)
	}
	if err := s.CommitTransaction(nil); !errors.Is(err, undo.ErrTransactionClosed) {
		t.Errorf("CommitTransaction(nil) = %v", err)
	}
	if err := s.DiscardTransaction(nil); !errors.Is(err, undo.ErrTransactionClosed) {
		t.Errorf("DiscardTransaction(nil) = %v", err)
	}
}

func TestDuplicateFrameWithEmptyCel(t *testing.T) {
	s, bg := newTestSession(t, 1)
	var layer *raster.Layer
	mustExecute(t, s, "New Layer", func(api *docapi.API) (err error) {
		if layer, err = api.AddLayer("Empty", bg); err != nil {
			return err
		}
		_, err = api.AddCel(layer, 0, nil)
		return err
	})
	mustExecute(t, s, "Duplicate Frame", func(api *docapi.API) error {
		_, err := api.DuplicateFrame(0)
		return err
	})

	dup := layer.Cel(1)
	if dup == nil || dup.Image() != nil {
		t.Fatalf("duplicated cel = %+v, want a cel without image", dup)
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if s.Document().Sprite().Frames() != 1 {
		t.Errorf("frames=%d after undo, want 1", s.Document().Sprite().Frames())
	}
}

func TestMemoryBudgetAfterEveryCommit(t *testing.T) {
	const budget = 300
	s, bg := newTestSession(t, 1, WithMemoryBudget(budget))
	img := bg.Cel(0).Image()

	colors := []raster.Pixel{green, blue, red, green, blue}
	for _, c := range colors {
		mustExecute(t, s, "Fill", func(api *docapi.API) error {
			return api.FillRect(img, img.Bounds(), c)
		})
		st := s.Stats()
		if st.MemSize > budget && st.UndoCount > 1 {
			t.Fatalf("budget exceeded with %d entries: %+v", st.UndoCount, st)
		}
	}
	if s.Stats().UndoCount >= len(colors) {
		t.Error("expected the oldest fills to be evicted")
	}

	s.SetMemoryBudget(1)
	if st := s.Stats(); st.UndoCount != 1 {
		t.Errorf("SetMemoryBudget must keep only the newest entry: %+v", st)
	}
}

func TestObjectIDStableAcrossRemoveAndRestore(t *testing.T) {
	s, _ := newTestSession(t, 1)
	var layer *raster.Layer
	mustExecute(t, s, "New Layer", func(api *docapi.API) error {
		var err error
		layer, err = api.AddLayer("Layer 1", nil)
		return err
	})
	id, ok := s.Objects().IDOf(layer)
	if !ok {
		t.Fatal("new layer not registered")
	}
	mustExecute(t, s, "Remove Layer", func(api *docapi.API) error { return api.RemoveLayer(layer) })

	sprite := s.Document().Sprite()
	for round := 0; round < 2; round++ {
		if err := s.Undo(); err != nil {
			t.Fatal(err)
		}
		restored, err := undo.GetObjectT[*raster.Layer](s.Objects(), id)
		if err != nil {
			t.Fatalf("round %d: %v", round, err)
		}
		if !sprite.HasLayer(restored) || restored.Name() != "Layer 1" {
			t.Fatalf("round %d: id %d resolves to a detached layer", round, id)
		}
		if err := s.Redo(); err != nil {
			t.Fatal(err)
		}
		if sprite.HasLayer(restored) {
			t.Fatalf("round %d: redo did not remove the layer", round)
		}
	}
}

func TestLayerFromBackground(t *testing.T) {
	s, bg := newTestSession(t, 1)
	mustExecute(t, s, "Layer from Background", func(api *docapi.API) error {
		return api.LayerFromBackground(bg)
	})
	if bg.IsBackground() || bg.Name() != "Layer 0" {
		t.Fatalf("flags=%v name=%q", bg.Flags(), bg.Name())
	}
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !bg.IsBackground() || bg.Name() != "Background" {
		t.Errorf("undo did not restore the background layer: flags=%v name=%q", bg.Flags(), bg.Name())
	}

	err := s.Execute("Layer from Background", func(api *docapi.API) error {
		if err := api.LayerFromBackground(bg); err != nil {
			return err
		}
		return api.LayerFromBackground(bg)
	})
	if !errors.Is(err, docapi.ErrNotBackground) {
		t.Errorf("second conversion = %v, want ErrNotBackground", err)
	}
}

func TestHistoryEvents(t *testing.T) {
	s, _ := newTestSession(t, 1)
	var got []event.HistoryData
	s.Document().Events().Subscribe(event.TypeHistoryChanged, func(e event.Event) bool {
		got = append(got, e.Data.(event.HistoryData))
		return false
	})

	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}

	if len(got) != 2 {
		t.Fatalf("got %d history events, want 2", len(got))
	}
	if !got[0].CanUndo || got[0].UndoLabel != "Add Frame" {
		t.Errorf("after commit: %+v", got[0])
	}
	if got[1].CanUndo || !got[1].CanRedo || got[1].RedoLabel != "Add Frame" {
		t.Errorf("after undo: %+v", got[1])
	}
	if got[1].DocumentID != s.Document().ID() {
		t.Error("event carries the wrong document id")
	}
}

func TestReclaimRemovedLayerID(t *testing.T) {
	s, _ := newTestSession(t, 1)
	var layer *raster.Layer
	mustExecute(t, s, "New Layer", func(api *docapi.API) error {
		var err error
		layer, err = api.AddLayer("Scratch", nil)
		return err
	})
	id, _ := s.Objects().IDOf(layer)
	if err := s.Undo(); err != nil {
		t.Fatal(err)
	}
	if !s.Objects().Contains(id) {
		t.Fatal("redo entry still needs the layer id")
	}

	mustExecute(t, s, "Add Frame", func(api *docapi.API) error { return api.AddFrame(1) })
	if s.Objects().Contains(id) {
		t.Error("id of a layer nobody can restore should be reclaimed")
	}
}
