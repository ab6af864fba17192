package event

import (
	"reflect"
	"testing"
)

func TestDispatchRunsHandlersInRegistrationOrder(t *testing.T) {
	m := NewManager()
	var calls []string
	m.Subscribe(TypeFrameAdded, func(e Event) bool { calls = append(calls, "first"); return false })
	m.Subscribe(TypeFrameAdded, func(e Event) bool { calls = append(calls, "second"); return false })
	m.Subscribe(TypeFrameRemoved, func(e Event) bool { calls = append(calls, "other"); return false })

	m.Dispatch(TypeFrameAdded, DocumentData{Frame: 3})

	if want := []string{"first", "second"}; !reflect.DeepEqual(calls, want) {
		t.Errorf("calls = %v, want %v", calls, want)
	}
}

func TestDispatchStopsWhenConsumed(t *testing.T) {
	m := NewManager()
	second := false
	m.Subscribe(TypePixelsChanged, func(e Event) bool { return true })
	m.Subscribe(TypePixelsChanged, func(e Event) bool { second = true; return false })

	m.Dispatch(TypePixelsChanged, nil)
	if second {
		t.Error("consumed event should not reach later handlers")
	}
}

func TestUnsubscribe(t *testing.T) {
	m := NewManager()
	count := 0
	id := m.Subscribe(TypeLayerAdded, func(e Event) bool { count++; return false })

	m.Dispatch(TypeLayerAdded, nil)
	m.Unsubscribe(id)
	m.Dispatch(TypeLayerAdded, nil)

	if count != 1 {
		t.Errorf("count = %d, want 1", count)
	}
}

func TestSubscribeDocumentChanges(t *testing.T) {
	m := NewManager()
	var got []Type
	ids := m.SubscribeDocumentChanges(func(e Event) bool { got = append(got, e.Type); return false })

	m.Dispatch(TypeFrameRemoved, nil)
	m.Dispatch(TypeHistoryChanged, nil)
	m.Dispatch(TypeCelMoved, nil)

	if want := []Type{TypeFrameRemoved, TypeCelMoved}; !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if len(ids) != int(TypePixelsChanged-TypeFrameAdded)+1 {
		t.Errorf("unexpected subscription count %d", len(ids))
	}
}

func TestTypeString(t *testing.T) {
	if TypeFrameAdded.String() != "frame-added" {
		t.Errorf("String() = %q", TypeFrameAdded.String())
	}
	if !TypePixelsChanged.IsDocumentChange() || TypeHistoryChanged.IsDocumentChange() {
		t.Error("IsDocumentChange misclassifies types")
	}
}
