package main

import (
	"flag"
	"fmt"
	"os"

	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/mathutil"
	"spine-mesh-baker/internal/skeleton"
	"spine-mesh-baker/internal/uvmap"
)

func main() {
	atlasPath := flag.String("atlas", "", "Atlas to check mesh regions against")
	adjust := flag.Int("adjust", 2, "Texture size adjustment")
	flag.Parse()

	var mapper *uvmap.Mapper
	if *atlasPath != "" {
		a, err := atlas.ParseFile(*atlasPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Atlas error: %v\n", err)
			os.Exit(1)
		}
		mapper = &uvmap.Mapper{Info: atlas.Resolve(a), Adjustment: float64(*adjust)}
	}

	failed := 0
	for _, arg := range flag.Args() {
		if err := inspect(arg, mapper); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", arg, err)
			failed++
		}
	}
	if failed > 0 {
		os.Exit(1)
	}
}

func inspect(path string, mapper *uvmap.Mapper) error {
	doc, err := skeleton.Load(path)
	if err != nil {
		return err
	}
	fmt.Printf("\n=== %s (spine=%s bones=%d slots=%d skins=%d) ===\n",
		path, doc.Header.Spine, len(doc.Bones), len(doc.Slots), len(doc.Skins))

	pose, err := skeleton.ResolveGlobalTransforms(doc.Bones)
	if err != nil {
		return err
	}
	fmt.Println("--- BONES (world) ---")
	for i := 0; i < pose.Len(); i++ {
		b := pose.Bone(i)
		g, ok := pose.Global(i)
		if !ok {
			fmt.Printf("  [%2d] %-24s (unresolved)\n", i, b.Name)
			continue
		}
		x, y := mathutil.TransformPoint(g, 0, 0)
		fmt.Printf("  [%2d] %-24s parent=%-16s pos=(%8.2f, %8.2f) rot=%7.2f\n",
			i, b.Name, b.Parent, x, y, mathutil.Rotation(g))
	}

	skin, err := doc.ActiveSkin()
	if err != nil {
		return err
	}
	fmt.Printf("--- SLOTS (skin %q) ---\n", skin.Name)
	for _, slot := range doc.Slots {
		att, ok, err := skin.Attachment(slot.Name, slot.Name)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("  %-24s (no attachment named after slot)\n", slot.Name)
			continue
		}
		if att.Kind() != skeleton.KindMesh {
			fmt.Printf("  %-24s %s\n", slot.Name, att.Kind())
			continue
		}
		mode := "unweighted"
		verts := len(att.Vertices) / 2
		if att.Weighted() {
			infl, err := skeleton.DecodeInfluences(att.Vertices)
			if err != nil {
				return fmt.Errorf("slot %s: %w", slot.Name, err)
			}
			mode = "weighted"
			verts = len(infl)
		}
		region := ""
		if mapper != nil {
			name := att.Path
			if name == "" {
				name = slot.Name
			}
			if _, ok := mapper.Frame(name); ok {
				region = " region=ok"
			} else {
				region = " region=missing"
			}
		}
		fmt.Printf("  %-24s mesh %s verts=%d tris=%d uvs=%d%s\n",
			slot.Name, mode, verts, len(att.Triangles)/3, len(att.UVs)/2, region)
	}
	return nil
}
