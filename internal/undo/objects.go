package undo

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/logger"
)

// ObjectID is a stable handle to a document object. IDs are issued from a
// monotonic counter and never reused.
type ObjectID uint64

// NullID is never issued; undoers use it for "no object" (e.g. no layer below).
const NullID ObjectID = 0

// Objects is the registry mapping ObjectIDs to live objects. It does not own
// the objects; the document tree does. Registered objects must be pointers.
type Objects struct {
	nextID ObjectID
	byID   map[ObjectID]any
	byObj  map[any]ObjectID
}

// NewObjects creates an empty registry.
func NewObjects() *Objects {
	return &Objects{
		byID:  make(map[ObjectID]any),
		byObj: make(map[any]ObjectID),
	}
}

// AddObject registers obj and returns its ID. Registering the same object
// again returns the existing ID.
func (o *Objects) AddObject(obj any) ObjectID {
	if obj == nil {
		panic("undo: AddObject(nil)")
	}
	if id, ok := o.byObj[obj]; ok {
		return id
	}
	o.nextID++
	id := o.nextID
	o.byID[id] = obj
	o.byObj[obj] = id
	logger.DebugTagf("registry", "Added object %d (%T)", id, obj)
	return id
}

// IDOf returns the ID of an already registered object.
func (o *Objects) IDOf(obj any) (ObjectID, bool) {
	if obj == nil {
		return NullID, false
	}
	id, ok := o.byObj[obj]
	return id, ok
}

// GetObject resolves id. It fails with a *DanglingReferenceError if the ID
// was never issued or its object was removed.
func (o *Objects) GetObject(id ObjectID) (any, error) {
	obj, ok := o.byID[id]
	if !ok {
		return nil, &DanglingReferenceError{ID: id}
	}
	return obj, nil
}

// InsertObject associates an already issued id with obj. Used when a revert
// recreates a destroyed object so older undo records keep resolving.
func (o *Objects) InsertObject(id ObjectID, obj any) error {
	if id == NullID || id > o.nextID {
		return fmt.Errorf("insert object %d: %w", id, &DanglingReferenceError{ID: id})
	}
	if obj == nil {
		panic("undo: InsertObject(nil)")
	}
	if old, ok := o.byID[id]; ok {
		delete(o.byObj, old)
	}
	if prev, ok := o.byObj[obj]; ok && prev != id {
		// Keep the mapping injective.
		logger.WarnTagf("registry", "Object %T moved from id %d to %d", obj, prev, id)
		delete(o.byID, prev)
	}
	o.byID[id] = obj
	o.byObj[obj] = id
	logger.DebugTagf("registry", "Inserted object %d (%T)", id, obj)
	return nil
}

// RemoveObject clears the association of id. Removing an unknown id is a no-op.
func (o *Objects) RemoveObject(id ObjectID) {
	if obj, ok := o.byID[id]; ok {
		delete(o.byObj, obj)
		delete(o.byID, id)
		logger.DebugTagf("registry", "Removed object %d (%T)", id, obj)
	}
}

// Contains reports whether id currently resolves.
func (o *Objects) Contains(id ObjectID) bool {
	_, ok := o.byID[id]
	return ok
}

// Len returns the number of live associations.
func (o *Objects) Len() int {
	return len(o.byID)
}

// GetObjectT resolves id and asserts its type. A type mismatch means the ID
// points at the wrong object and is reported as a dangling reference too.
func GetObjectT[T any](o *Objects, id ObjectID) (T, error) {
	var zero T
	obj, err := o.GetObject(id)
	if err != nil {
		return zero, err
	}
	typed, ok := obj.(T)
	if !ok {
		return zero, &DanglingReferenceError{ID: id, Want: fmt.Sprintf("%T", zero), Got: fmt.Sprintf("%T", obj)}
	}
	return typed, nil
}
