package texture

import (
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

var ErrUnsupportedFormat = errors.New("texture: unsupported image format")

// Decoders are chosen by extension. The tga package registers itself with
// an empty magic string, so image.Decode would hand every file to it.
var decoders = map[string]func(io.Reader) (image.Image, error){
	".png":  png.Decode,
	".jpg":  jpeg.Decode,
	".jpeg": jpeg.Decode,
	".webp": webp.Decode,
	".tga":  tga.Decode,
	".bmp":  bmp.Decode,
	".gif":  gif.Decode,
	".tif":  tiff.Decode,
	".tiff": tiff.Decode,
}

// LoadTexture decodes an atlas page image (PNG, JPEG, WebP, TGA, BMP, TIFF,
// GIF) into NRGBA.
func LoadTexture(path string) (*image.NRGBA, error) {
	ext := strings.ToLower(filepath.Ext(path))
	decode, ok := decoders[ext]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("texture: open %s: %w", path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("texture: decode %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}
