package mesh

import (
	"errors"
	"fmt"

	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/logging"
	"spine-mesh-baker/internal/skeleton"
	"spine-mesh-baker/internal/uvmap"
)

var (
	ErrMalformedTriangles = errors.New("mesh: malformed triangle list")
	ErrMalformedUVs       = errors.New("mesh: malformed uv list")
)

// Options configures one build.
type Options struct {
	// TextureSizeAdjustment divides every atlas region fraction (1..10).
	TextureSizeAdjustment int
	// TexturePath is the page image; empty or unreadable means untextured materials are skipped.
	TexturePath string
	// StrictBones fails on influences whose bone has no resolved transform.
	StrictBones bool
	// ClearScene asks the host to drop existing objects before building.
	ClearScene bool
}

// SurfaceInfo summarises one created surface.
type SurfaceInfo struct {
	Name        string `json:"name"`
	Slot        string `json:"slot"`
	Vertices    int    `json:"vertices"`
	Faces       int    `json:"faces"`
	Region      bool   `json:"region"`   // an atlas region matched
	Textured    bool   `json:"textured"` // UVs assigned
	HasMaterial bool   `json:"material"`
}

// Report lists what a build produced and what it skipped.
type Report struct {
	Surfaces []SurfaceInfo `json:"surfaces"`
	Skipped  []string      `json:"skipped,omitempty"`
}

// Build walks the slots of doc in declared order and creates one surface per
// mesh attachment whose name equals its slot name.
//
// Bone transforms and the region lookup are computed once up front and are
// read-only while slots are processed.
func Build(doc *skeleton.Document, info atlas.Info, host Host, opts Options) (*Report, error) {
	log := logging.Logger()

	if opts.ClearScene {
		if c, ok := host.(SceneClearer); ok {
			if err := c.ClearScene(); err != nil {
				return nil, fmt.Errorf("mesh: clear scene: %w", err)
			}
		}
	}

	pose, err := skeleton.ResolveGlobalTransforms(doc.Bones)
	if err != nil {
		return nil, err
	}
	skin, err := doc.ActiveSkin()
	if err != nil {
		return nil, err
	}

	var img ImageHandle
	haveImage := false
	if opts.TexturePath != "" {
		img, err = host.LoadOrGetCachedImage(opts.TexturePath)
		if err != nil {
			log.Warn("mesh: texture unavailable, materials skipped", "path", opts.TexturePath, "err", err)
		} else {
			haveImage = true
		}
	}

	adj := opts.TextureSizeAdjustment
	if adj <= 0 {
		adj = 1
	}
	b := &builder{
		host:    host,
		pose:    pose,
		skinner: skeleton.Skinner{Pose: pose, Strict: opts.StrictBones},
		mapper:  uvmap.Mapper{Info: info, Adjustment: float64(adj)},
		img:     img,
		hasImg:  haveImage,
	}

	report := &Report{}
	for _, slot := range doc.Slots {
		att, ok, err := skin.Attachment(slot.Name, slot.Name)
		if err != nil {
			return nil, err
		}
		if !ok {
			log.Debug("mesh: no attachment named after slot", "slot", slot.Name)
			continue
		}
		if att.Kind() != skeleton.KindMesh {
			log.Debug("mesh: skipping non-mesh attachment", "slot", slot.Name, "kind", att.Kind())
			report.Skipped = append(report.Skipped, SurfaceName(slot.Name, slot.Name))
			continue
		}

		si, err := b.surface(slot, slot.Name, att)
		if err != nil {
			return nil, fmt.Errorf("mesh: %s: %w", SurfaceName(slot.Name, slot.Name), err)
		}
		report.Surfaces = append(report.Surfaces, si)
		log.Info("mesh: created surface", "surface", si.Name, "vertices", si.Vertices, "faces", si.Faces)
	}

	return report, nil
}

// SurfaceName is the "<slot>:<attachment>" name given to surfaces.
func SurfaceName(slot, attachment string) string {
	return slot + ":" + attachment
}

// MaterialName is the material name for a surface.
func MaterialName(surface string) string {
	return "Material_" + surface
}

type builder struct {
	host    Host
	pose    *skeleton.Pose
	skinner skeleton.Skinner
	mapper  uvmap.Mapper
	img     ImageHandle
	hasImg  bool
}

func (b *builder) surface(slot skeleton.SlotData, name string, att *skeleton.AttachmentData) (SurfaceInfo, error) {
	log := logging.Logger()
	si := SurfaceInfo{Name: SurfaceName(slot.Name, name), Slot: slot.Name}

	verts, err := b.vertices(slot, att)
	if err != nil {
		return si, err
	}
	faces, err := Triangulate(att.Triangles, len(verts))
	if err != nil {
		return si, err
	}
	if len(att.UVs)%2 != 0 {
		return si, fmt.Errorf("%w: odd length %d", ErrMalformedUVs, len(att.UVs))
	}

	regionName := name
	if att.Path != "" {
		regionName = att.Path
	}
	mapped, found := b.mapper.Map(regionName, att.UVs)
	si.Region = found

	h, err := b.host.CreateSurface(si.Name, verts, faces)
	if err != nil {
		return si, fmt.Errorf("create surface: %w", err)
	}
	si.Vertices, si.Faces = len(verts), len(faces)

	if b.hasImg {
		m, err := b.host.CreateTexturedMaterial(MaterialName(si.Name), b.img)
		if err != nil {
			return si, fmt.Errorf("create material: %w", err)
		}
		if err := b.host.AttachMaterial(h, m); err != nil {
			return si, fmt.Errorf("attach material: %w", err)
		}
		si.HasMaterial = true
	}

	if len(mapped) > 0 && len(mapped) >= 2*len(verts) {
		if err := b.host.AssignUV(h, FlipV(mapped, len(verts))); err != nil {
			return si, fmt.Errorf("assign uv: %w", err)
		}
		si.Textured = true
	} else {
		log.Warn("mesh: insufficient UV data, surface left untextured",
			"surface", si.Name, "uvs", len(mapped), "vertices", len(verts))
	}

	return si, nil
}

func (b *builder) vertices(slot skeleton.SlotData, att *skeleton.AttachmentData) ([][3]float64, error) {
	if att.Weighted() {
		return b.skinner.Vertices(att.Vertices)
	}
	bone := -1
	if i, ok := b.pose.Index(slot.Bone); ok {
		bone = i
	}
	return b.skinner.RigidVertices(att.Vertices, bone)
}

// Triangulate groups a flat index list into triangles and checks every
// index against the vertex count.
func Triangulate(indices []int, vertexCount int) ([][3]int, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of 3", ErrMalformedTriangles, len(indices))
	}
	faces := make([][3]int, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		f := [3]int{indices[i], indices[i+1], indices[i+2]}
		for _, v := range f {
			if v < 0 || v >= vertexCount {
				return nil, fmt.Errorf("%w: index %d out of range [0,%d)", ErrMalformedTriangles, v, vertexCount)
			}
		}
		faces = append(faces, f)
	}
	return faces, nil
}

// FlipV pairs the first n UVs and converts V to the host convention (1 - v).
func FlipV(uvs []float64, n int) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{uvs[2*i], 1 - uvs[2*i+1]}
	}
	return out
}
