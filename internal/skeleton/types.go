package skeleton

import (
	"encoding/json"
	"errors"
)

// Sentinel errors for invalid skeleton input. All of them are fatal for a build.
var (
	ErrMissingKey        = errors.New("skeleton: missing required key")
	ErrUnknownParent     = errors.New("skeleton: unknown parent bone")
	ErrDuplicateBone     = errors.New("skeleton: duplicate bone name")
	ErrCyclicSkeleton    = errors.New("skeleton: cyclic skeleton")
	ErrTruncatedVertices = errors.New("skeleton: truncated vertex data")
	ErrMalformedVertices = errors.New("skeleton: malformed vertex data")
	ErrUnresolvedBone    = errors.New("skeleton: influence references unresolved bone")
)

// Attachment kinds as written in the "type" field.
const (
	KindRegion      = "region"
	KindMesh        = "mesh"
	KindLinkedMesh  = "linkedmesh"
	KindBoundingBox = "boundingbox"
	KindPath        = "path"
	KindPoint       = "point"
	KindClipping    = "clipping"
)

// Header is the optional "skeleton" block written by the Spine editor.
type Header struct {
	Hash   string  `json:"hash"`
	Spine  string  `json:"spine"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Images string  `json:"images"`
}

// BoneData is one bone definition. Parent is empty for root bones.
type BoneData struct {
	Name     string  `json:"name"`
	Parent   string  `json:"parent,omitempty"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Rotation float64 `json:"rotation"` // degrees
	ScaleX   float64 `json:"scaleX"`
	ScaleY   float64 `json:"scaleY"`
}

// UnmarshalJSON applies the Spine defaults (scale 1) for omitted fields.
func (b *BoneData) UnmarshalJSON(data []byte) error {
	type plain BoneData
	p := plain{ScaleX: 1, ScaleY: 1}
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*b = BoneData(p)
	return nil
}

// SlotData is one draw-order slot.
type SlotData struct {
	Name       string `json:"name"`
	Bone       string `json:"bone"`
	Attachment string `json:"attachment,omitempty"`
}

// AttachmentData is the subset of an attachment the baker reads.
type AttachmentData struct {
	Type      string    `json:"type"`
	Path      string    `json:"path,omitempty"`
	Vertices  []float64 `json:"vertices"`
	Triangles []int     `json:"triangles"`
	UVs       []float64 `json:"uvs"`
	Hull      int       `json:"hull,omitempty"`
}

// Kind returns the attachment type, defaulting to region like the Spine runtimes.
func (a *AttachmentData) Kind() string {
	if a.Type == "" {
		return KindRegion
	}
	return a.Type
}

// Weighted reports whether Vertices uses the bone-influence encoding.
// Unweighted meshes store one x,y pair per UV pair. Only the lengths are
// compared: weighted data that happens to match the UV length (possible with
// zero-influence vertices) is read as unweighted.
func (a *AttachmentData) Weighted() bool {
	return len(a.Vertices) != len(a.UVs)
}

// Skin maps slot name → attachment name → raw attachment JSON.
type Skin struct {
	Name        string                                `json:"name"`
	Attachments map[string]map[string]json.RawMessage `json:"attachments"`
}

// Document is a decoded skeleton description.
type Document struct {
	Header *Header
	Bones  []BoneData
	Slots  []SlotData
	Skins  []Skin
}
