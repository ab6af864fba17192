package commands

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bethropolis/sprig/internal/core"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
)

// RegisterEditCommands registers the frame, layer, pixel and history
// commands operating on ed.
func RegisterEditCommands(r Registrar, ed *core.Editor) {
	// --- History ---
	register(r, "undo", func(args []string) error {
		label, _ := ed.Session().CurrentUndoLabel()
		if err := ed.Undo(); err != nil {
			if errors.Is(err, undo.ErrNothingToUndo) {
				r.SetStatusMessage("Nothing to undo")
				return nil
			}
			return err
		}
		r.SetStatusMessage("Undo %s", label)
		return nil
	})
	register(r, "redo", func(args []string) error {
		label, _ := ed.Session().CurrentRedoLabel()
		if err := ed.Redo(); err != nil {
			if errors.Is(err, undo.ErrNothingToRedo) {
				r.SetStatusMessage("Nothing to redo")
				return nil
			}
			return err
		}
		r.SetStatusMessage("Redo %s", label)
		return nil
	})
	register(r, "history", func(args []string) error {
		st := ed.Session().Stats()
		r.SetStatusMessage("Undo: %d, Redo: %d, Memory: %d/%d bytes, Objects: %d",
			st.UndoCount, st.RedoCount, st.MemSize, st.MemoryBudget, st.Objects)
		return nil
	})
	register(r, "budget", func(args []string) error {
		if len(args) == 0 {
			r.SetStatusMessage("Undo memory budget: %d bytes", ed.Session().Stats().MemoryBudget)
			return nil
		}
		n, err := ParseSize(args[0])
		if err != nil {
			return err
		}
		ed.Session().SetMemoryBudget(n)
		r.SetStatusMessage("Undo memory budget set to %d bytes", n)
		return nil
	})

	// --- Frames ---
	register(r, "frame-add", noArgs(ed.NewFrame))
	register(r, "frame-dup", noArgs(ed.DuplicateFrame))
	register(r, "frame-remove", noArgs(ed.RemoveFrame))
	register(r, "frame", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: frame <number>")
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 || n > int(ed.Sprite().Frames()) {
			return fmt.Errorf("frame must be between 1 and %d", ed.Sprite().Frames())
		}
		ed.SetFrame(types.FrameNumber(n - 1))
		return nil
	})
	register(r, "duration", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: duration <milliseconds>")
		}
		ms, err := strconv.Atoi(args[0])
		if err != nil || ms < 1 {
			return fmt.Errorf("invalid duration '%s'", args[0])
		}
		return ed.SetFrameDuration(ms)
	})

	// --- Layers ---
	register(r, "layer-add", func(args []string) error {
		return ed.NewLayer(strings.Join(args, " "))
	})
	register(r, "layer-remove", noArgs(ed.RemoveLayer))
	register(r, "layer-up", noArgs(func() error { return ed.MoveLayer(1) }))
	register(r, "layer-down", noArgs(func() error { return ed.MoveLayer(-1) }))
	register(r, "layer-hide", noArgs(ed.ToggleLayerVisible))
	register(r, "layer-from-bg", noArgs(ed.LayerFromBackground))
	register(r, "layer-rename", func(args []string) error {
		if len(args) == 0 {
			return fmt.Errorf("usage: layer-rename <name>")
		}
		return ed.RenameLayer(strings.Join(args, " "))
	})

	// --- Pixels ---
	register(r, "fill", noArgs(ed.FillCanvas))
	register(r, "flip", func(args []string) error {
		if len(args) != 1 {
			return fmt.Errorf("usage: flip h|v")
		}
		switch args[0] {
		case "h", "horizontal":
			return ed.Flip(types.FlipHorizontal)
		case "v", "vertical":
			return ed.Flip(types.FlipVertical)
		}
		return fmt.Errorf("unknown flip direction '%s'", args[0])
	})
	register(r, "move-cel", func(args []string) error {
		if len(args) != 2 {
			return fmt.Errorf("usage: move-cel <dx> <dy>")
		}
		dx, errX := strconv.Atoi(args[0])
		dy, errY := strconv.Atoi(args[1])
		if errX != nil || errY != nil {
			return fmt.Errorf("offsets must be integers")
		}
		return ed.MoveCel(dx, dy)
	})
	register(r, "color", func(args []string) error {
		if len(args) == 0 {
			r.SetStatusMessage("Color: %s", ed.Color().Hex())
			return nil
		}
		p, err := raster.ParseHex(args[0])
		if err != nil {
			return err
		}
		ed.SetColor(p)
		return nil
	})

	// --- Clipboard ---
	register(r, "copy", func(args []string) error {
		ok, err := ed.YankSelection()
		if err == nil && !ok {
			r.SetStatusMessage("Nothing to copy")
		}
		return err
	})
	register(r, "cut", func(args []string) error {
		ok, err := ed.CutSelection()
		if err == nil && !ok {
			r.SetStatusMessage("Nothing to cut")
		}
		return err
	})
	register(r, "paste", func(args []string) error {
		_, err := ed.Paste()
		return err
	})
}

// noArgs adapts an argument-less operation.
func noArgs(fn func() error) func(args []string) error {
	return func(args []string) error {
		if len(args) > 0 {
			return fmt.Errorf("unexpected arguments: %s", strings.Join(args, " "))
		}
		return fn()
	}
}

// ParseSize parses a byte count with an optional K, M or G suffix (powers
// of 1024). "0" means unlimited.
func ParseSize(s string) (uint64, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	shift := 0
	switch {
	case strings.HasSuffix(s, "K"):
		shift = 10
	case strings.HasSuffix(s, "M"):
		shift = 20
	case strings.HasSuffix(s, "G"):
		shift = 30
	}
	if shift > 0 {
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid size '%s'", s)
	}
	return n << shift, nil
}
