// internal/event/event.go
package event

import (
	"github.com/bethropolis/sprig/internal/types"
	"github.com/google/uuid"
)

// Type identifies the kind of event.
type Type int

// Define specific event types.
const (
	TypeUnknown Type = iota

	// Document change events, fired after the document model was mutated
	// (by an edit or by an undo/redo revert).
	TypeFrameAdded
	TypeFrameRemoved
	TypeFrameDurationChanged
	TypeLayerAdded
	TypeLayerRemoved
	TypeLayerMoved
	TypeLayerNameChanged
	TypeLayerFlagsChanged
	TypeCelAdded
	TypeCelRemoved
	TypeCelMoved
	TypePixelsChanged

	// Fired by the editing session after commit, undo, redo or eviction.
	TypeHistoryChanged

	// Application Lifecycle Events
	TypeAppReady
	TypeAppQuit
)

var typeNames = map[Type]string{
	TypeUnknown:              "unknown",
	TypeFrameAdded:           "frame-added",
	TypeFrameRemoved:         "frame-removed",
	TypeFrameDurationChanged: "frame-duration-changed",
	TypeLayerAdded:           "layer-added",
	TypeLayerRemoved:         "layer-removed",
	TypeLayerMoved:           "layer-moved",
	TypeLayerNameChanged:     "layer-name-changed",
	TypeLayerFlagsChanged:    "layer-flags-changed",
	TypeCelAdded:             "cel-added",
	TypeCelRemoved:           "cel-removed",
	TypeCelMoved:             "cel-moved",
	TypePixelsChanged:        "pixels-changed",
	TypeHistoryChanged:       "history-changed",
	TypeAppReady:             "app-ready",
	TypeAppQuit:              "app-quit",
}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "unknown"
}

// IsDocumentChange reports whether t describes a document model mutation.
func (t Type) IsDocumentChange() bool {
	return t >= TypeFrameAdded && t <= TypePixelsChanged
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type        // The kind of event
	Data interface{} // Payload carrying event-specific data
}

// DocumentData describes what changed in a document. Only the fields that
// apply to the event type are set.
type DocumentData struct {
	DocumentID uuid.UUID
	Frame      types.FrameNumber
	Layer      string     // Layer name at the time of the change
	LayerIndex int        // Stack position, -1 when not applicable
	Region     types.Rect // Invalidated area in image coordinates
}

// HistoryData summarizes the undo state for menu enablement.
type HistoryData struct {
	DocumentID uuid.UUID
	CanUndo    bool
	CanRedo    bool
	UndoLabel  string
	RedoLabel  string
}

// AppQuitData could contain exit code or reason later.
type AppQuitData struct{}

// AppReadyData could contain initial config or state later.
type AppReadyData struct{}
