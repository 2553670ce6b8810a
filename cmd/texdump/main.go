package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"spine-mesh-baker/internal/atlas"
	"spine-mesh-baker/internal/export"
	"spine-mesh-baker/internal/texture"
)

// cropRegion cuts r out of page and turns rotated regions back upright.
// Rotated regions occupy Height×Width pixels on the page.
func cropRegion(page image.Image, r atlas.Region) *image.NRGBA {
	w, h := r.Width, r.Height
	if r.Rotated {
		w, h = h, w
	}
	img := imaging.Crop(page, image.Rect(r.X, r.Y, r.X+w, r.Y+h))
	if r.Rotated {
		img = imaging.Rotate270(img)
	}
	return img
}

func main() {
	texPath := flag.String("texture", "", "Page image (default: found next to the atlas)")
	outDir := flag.String("output", "regions", "Output directory")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: texdump [-texture page.png] [-output dir] <file.atlas>")
		os.Exit(2)
	}
	atlasPath := flag.Arg(0)

	a, err := atlas.ParseFile(atlasPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}
	info := atlas.Resolve(a)

	path := *texPath
	if path == "" {
		var ok bool
		path, ok = texture.BuildIndex(filepath.Dir(atlasPath)).ResolvePath(info.Page)
		if !ok {
			fmt.Fprintf(os.Stderr, "ERR page image %q not found next to %s\n", info.Page, atlasPath)
			os.Exit(1)
		}
	}
	page, err := texture.LoadTexture(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERR %v\n", err)
		os.Exit(1)
	}

	errors := 0
	for name, r := range info.Regions {
		dst := filepath.Join(*outDir, strings.ReplaceAll(name, "/", "_")+".webp")
		img := cropRegion(page, r)
		if err := export.SaveWebP(dst, img); err != nil {
			fmt.Fprintf(os.Stderr, "ERR %s: %v\n", name, err)
			errors++
			continue
		}
		fmt.Printf("OK  %s -> %s  (%dx%d)\n", name, dst, img.Rect.Dx(), img.Rect.Dy())
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Printf("\nDone. %d regions extracted.\n", len(info.Regions))
}
