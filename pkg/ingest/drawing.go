package ingest

import "github.com/archtrace/wallinfer/pkg/geom"

// Drawing is the external drawing export the pipeline's caller supplies:
// a flat list of layers, each carrying its own lines, polylines, and block
// placements. Missing Z on any point is treated as 0 by the JSON decoder's
// zero value, matching spec.md §6.
type Drawing struct {
	Layers []Layer `json:"layers"`
}

// Layer holds every entity drawn on one named CAD layer.
type Layer struct {
	LayerName string            `json:"LayerName"`
	Lines     []LineEntity      `json:"Lines"`
	Polylines []PolylineEntity  `json:"Polylines"`
	Blocks    []BlockEntity     `json:"Blocks"`
}

// LineEntity is a native LINE primitive.
type LineEntity struct {
	Start geom.Point `json:"Start"`
	End   geom.Point `json:"End"`
}

// PolylineEntity is a connected chain of vertices, optionally closed.
type PolylineEntity struct {
	Vertices []geom.Point `json:"Vertices"`
	IsClosed bool         `json:"IsClosed"`
}

// BlockEntity is a block placement: a named symbol inserted at Position,
// optionally rotated and scaled, with an optional local bounding box used
// by door/window world-AABB computation.
type BlockEntity struct {
	Position    geom.Point       `json:"Position"`
	Rotation    float64          `json:"Rotation,omitempty"`
	// RotationUnit optionally names the unit Rotation was authored in
	// ("deg" or "grad"), letting a caller that knows its source bypass the
	// (360, 4000]-magnitude grad heuristic of NormalizeRotationDegrees.
	RotationUnit string           `json:"RotationUnit,omitempty"`
	ScaleX      float64          `json:"ScaleX,omitempty"`
	ScaleY      float64          `json:"ScaleY,omitempty"`
	Name        string           `json:"Name,omitempty"`
	BoundingBox *BlockBoundingBox `json:"BoundingBox,omitempty"`
}

// BlockBoundingBox is a block's local, unrotated bounding box.
type BlockBoundingBox struct {
	MinPoint geom.Point `json:"MinPoint"`
	MaxPoint geom.Point `json:"MaxPoint"`
}

// WindowOrDoorKind distinguishes the two external block kinds the pipeline
// cares about; anything else is not collected by the caller's layer
// classification rule (out of scope, per spec.md §1).
type WindowOrDoorKind string

const (
	KindDoor   WindowOrDoorKind = "door"
	KindWindow WindowOrDoorKind = "window"
)

// WindowDoorBlock is one externally classified door/window placement,
// passed in verbatim by the caller alongside the drawing (spec.md §6).
type WindowDoorBlock struct {
	LayerName      string           `json:"layer_name"`
	EntityType     string           `json:"entity_type"`
	WindowOrDoor   WindowOrDoorKind `json:"window_or_door"`
	Data           BlockEntity      `json:"data"`
}

// SelectLayers returns the layers from d whose LayerName appears in
// selected, preserving d's original layer order.
func SelectLayers(d Drawing, selected map[string]struct{}) []Layer {
	var out []Layer
	for _, l := range d.Layers {
		if _, ok := selected[l.LayerName]; ok {
			out = append(out, l)
		}
	}
	return out
}
