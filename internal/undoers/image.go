package undoers

import (
	"fmt"

	"github.com/bethropolis/sprig/internal/document"
	"github.com/bethropolis/sprig/internal/event"
	"github.com/bethropolis/sprig/internal/raster"
	"github.com/bethropolis/sprig/internal/types"
	"github.com/bethropolis/sprig/internal/undo"
)

// FlipImage records a flip of a region. A flip is its own inverse, so the
// record stores no pixels.
type FlipImage struct {
	docID    undo.ObjectID
	imageID  undo.ObjectID
	bounds   types.Rect
	flipType types.FlipType
}

func NewFlipImage(objects *undo.Objects, doc *document.Document, img *raster.Image, bounds types.Rect, flipType types.FlipType) *FlipImage {
	return &FlipImage{
		docID:    objects.AddObject(doc),
		imageID:  objects.AddObject(img),
		bounds:   bounds,
		flipType: flipType,
	}
}

func (u *FlipImage) Dispose() {}

func (u *FlipImage) MemSize() int { return recordSize }

func (u *FlipImage) ObjectIDs() []undo.ObjectID { return []undo.ObjectID{u.docID, u.imageID} }

func (u *FlipImage) Revert(objects *undo.Objects, redoers undo.Collector) error {
	doc, err := undo.GetObjectT[*document.Document](objects, u.docID)
	if err != nil {
		return fmt.Errorf("flip %v: %w", u.flipType, err)
	}
	img, err := undo.GetObjectT[*raster.Image](objects, u.imageID)
	if err != nil {
		return fmt.Errorf("flip %v: %w", u.flipType, err)
	}
	if err := raster.FlipImage(img, u.bounds, u.flipType); err != nil {
		return fmt.Errorf("flip %v: %w", u.flipType, err)
	}
	redoers.PushUndoer(NewFlipImage(objects, doc, img, u.bounds, u.flipType))
	doc.Notify(event.TypePixelsChanged, event.DocumentData{LayerIndex: -1, Region: u.bounds})
	return nil
}

// ImageArea records the pixels of a region before it was painted over.
type ImageArea struct {
	docID   undo.ObjectID
	imageID undo.ObjectID
	region  types.Rect
	pixels  []raster.Pixel
}

// NewImageArea copies region out of img. The region must lie inside the image.
func NewImageArea(objects *undo.Objects, doc *document.Document, img *raster.Image, region types.Rect) (*ImageArea, error) {
	pixels, err := img.CopyRect(region)
	if err != nil {
		return nil, err
	}
	return &ImageArea{
		docID:   objects.AddObject(doc),
		imageID: objects.AddObject(img),
		region:  region,
		pixels:  pixels,
	}, nil
}

func (u *ImageArea) Dispose() { u.pixels = nil }

// MemSize stays constant after Dispose.
func (u *ImageArea) MemSize() int { return recordSize + u.region.Area()*4 }

func (u *ImageArea) ObjectIDs() []undo.ObjectID { return []undo.ObjectID{u.docID, u.imageID} }

func (u *ImageArea) Revert(objects *undo.Objects, redoers undo.Collector) error {
	if u.pixels == nil && !u.region.IsEmpty() {
		return fmt.Errorf("image area %v: already disposed", u.region)
	}
	doc, err := undo.GetObjectT[*document.Document](objects, u.docID)
	if err != nil {
		return fmt.Errorf("image area %v: %w", u.region, err)
	}
	img, err := undo.GetObjectT[*raster.Image](objects, u.imageID)
	if err != nil {
		return fmt.Errorf("image area %v: %w", u.region, err)
	}
	inverse, err := NewImageArea(objects, doc, img, u.region)
	if err != nil {
		return fmt.Errorf("image area %v: %w", u.region, err)
	}
	if err := img.PutRect(u.region, u.pixels); err != nil {
		inverse.Dispose()
		return fmt.Errorf("image area %v: %w", u.region, err)
	}
	redoers.PushUndoer(inverse)
	doc.Notify(event.TypePixelsChanged, event.DocumentData{LayerIndex: -1, Region: u.region})
	return nil
}
