package export

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"github.com/HugoSmits86/nativewebp"
)

// SaveWebP encodes img losslessly to path, creating parent directories.
func SaveWebP(path string, img image.Image) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("export: mkdir %s: %w", filepath.Dir(path), err)
	}
	return writeFile(path, func(w io.Writer) error {
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("webp encode: %w", err)
		}
		return nil
	})
}
