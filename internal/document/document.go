// Package document ties a sprite to its identity and its change notifier.
package document

import (
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/logger"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/google/uuid"
)

// Document is an open sprite plus the observers interested in its changes.
type Document struct {
	id     uuid.UUID
	name   string
	sprite *raster.Sprite
	events *event.Manager
}

// New wraps sprite in a document. events may be nil, in which case changes
// are not broadcast.
func New(name string, sprite *raster.Sprite, events *event.Manager) *Document {
	d := &Document{
		id:     uuid.New(),
		name:   name,
		sprite: sprite,
		events: events,
	}
	logger.DebugTagf("document", "Opened document %s (%s, %dx%d)", d.id, name, sprite.Width(), sprite.Height())
	return d
}

func (d *Document) ID() uuid.UUID          { return d.id }
func (d *Document) Name() string           { return d.name }
func (d *Document) Sprite() *raster.Sprite { return d.sprite }
func (d *Document) Events() *event.Manager { return d.events }

// Contains reports whether obj is currently part of the document tree.
func (d *Document) Contains(obj any) bool {
	switch o := obj.(type) {
	case *Document:
		return o == d
	case *raster.Sprite:
		return o == d.sprite
	case *raster.Layer:
		return d.sprite.HasLayer(o)
	case *raster.Cel:
		return d.sprite.ContainsCel(o)
	case *raster.Image:
		return d.sprite.ContainsImage(o)
	default:
		return false
	}
}

// Notify broadcasts a document change. The document ID is filled in.
func (d *Document) Notify(t event.Type, data event.DocumentData) {
	if d.events == nil {
		return
	}
	data.DocumentID = d.id
	d.events.Dispatch(t, data)
}

// NotifyFrame is a shortcut for frame level changes.
func (d *Document) NotifyFrame(t event.Type, frame types.FrameNumber) {
	d.Notify(t, event.DocumentData{Frame: frame, LayerIndex: -1, Region: d.sprite.Bounds()})
}

// NotifyLayer is a shortcut for layer level changes.
func (d *Document) NotifyLayer(t event.Type, layer *raster.Layer, index int) {
	d.Notify(t, event.DocumentData{Layer: layer.Name(), LayerIndex: index, Region: d.sprite.Bounds()})
}
