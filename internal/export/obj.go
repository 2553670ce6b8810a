// Package export writes baked scenes to interchange files.
package export

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"spine-mesh-baker/internal/scene"
)

// WriteOBJ writes s as Wavefront OBJ, one object per surface. Faces carry
// texture indices only for surfaces with an assigned UV layer.
func WriteOBJ(w io.Writer, s *scene.Scene, mtlLib string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# spine-mesh-baker")
	if mtlLib != "" {
		fmt.Fprintf(bw, "mtllib %s\n", mtlLib)
	}

	vBase, vtBase := 1, 1
	for _, surf := range s.Surfaces {
		fmt.Fprintf(bw, "o %s\n", surf.Name)
		for _, v := range surf.Vertices {
			fmt.Fprintf(bw, "v %.6f %.6f %.6f\n", v[0], v[1], v[2])
		}
		for _, uv := range surf.UVs {
			fmt.Fprintf(bw, "vt %.6f %.6f\n", uv[0], uv[1])
		}
		if surf.Material != nil {
			fmt.Fprintf(bw, "usemtl %s\n", surf.Material.Name)
		}
		for _, f := range surf.Faces {
			a, b, c := f[0]+vBase, f[1]+vBase, f[2]+vBase
			if len(surf.UVs) > 0 {
				ta, tb, tc := f[0]+vtBase, f[1]+vtBase, f[2]+vtBase
				fmt.Fprintf(bw, "f %d/%d %d/%d %d/%d\n", a, ta, b, tb, c, tc)
			} else {
				fmt.Fprintf(bw, "f %d %d %d\n", a, b, c)
			}
		}
		vBase += len(surf.Vertices)
		vtBase += len(surf.UVs)
	}
	return bw.Flush()
}

// WriteMTL writes one material block per distinct material. Texture paths
// are written relative to baseDir when possible.
func WriteMTL(w io.Writer, s *scene.Scene, baseDir string) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# spine-mesh-baker")
	seen := make(map[string]bool)
	for _, m := range s.Materials {
		if seen[m.Name] {
			continue
		}
		seen[m.Name] = true
		fmt.Fprintf(bw, "\nnewmtl %s\n", m.Name)
		fmt.Fprintln(bw, "Kd 1.000000 1.000000 1.000000")
		fmt.Fprintln(bw, "d 1.000000")
		fmt.Fprintln(bw, "illum 1")
		if m.ImagePath != "" {
			tex := texturePath(m.ImagePath, baseDir)
			fmt.Fprintf(bw, "map_Kd %s\n", tex)
			fmt.Fprintf(bw, "map_d %s\n", tex)
		}
	}
	return bw.Flush()
}

func texturePath(path, baseDir string) string {
	abs, err := filepath.Abs(path)
	if err != nil || baseDir == "" {
		return filepath.ToSlash(path)
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return filepath.ToSlash(abs)
	}
	if rel, err := filepath.Rel(absBase, abs); err == nil {
		return filepath.ToSlash(rel)
	}
	return filepath.ToSlash(abs)
}

// SaveOBJ writes <dir>/<base>.obj and <dir>/<base>.mtl.
func SaveOBJ(dir, base string, s *scene.Scene) (objPath string, err error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("export: mkdir %s: %w", dir, err)
	}

	mtlName := base + ".mtl"
	mtlLib := ""
	if len(s.Materials) > 0 {
		mtlLib = mtlName
		if err := writeFile(filepath.Join(dir, mtlName), func(w io.Writer) error {
			return WriteMTL(w, s, dir)
		}); err != nil {
			return "", err
		}
	}

	objPath = filepath.Join(dir, base+".obj")
	if err := writeFile(objPath, func(w io.Writer) error {
		return WriteOBJ(w, s, mtlLib)
	}); err != nil {
		return "", err
	}
	return objPath, nil
}

func writeFile(path string, fill func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: create %s: %w", path, err)
	}
	if err := fill(f); err != nil {
		f.Close()
		return fmt.Errorf("export: write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: close %s: %w", path, err)
	}
	return nil
}
