package media

import (
	"bytes"
	"fmt"
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// Images are re-encoded to JPEG at a fixed quality. Transparency is
// flattened onto white first since JPEG has no alpha channel.
const jpegQuality = 85

// NormalizeImage decodes raw image bytes in any registered format and
// re-encodes them as an opaque JPEG, entirely in memory. Undecodable
// input returns an error and must fail the pipeline for that file.
func NormalizeImage(input []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	if op, ok := img.(interface{ Opaque() bool }); !ok || !op.Opaque() {
		bg := imaging.New(img.Bounds().Dx(), img.Bounds().Dy(), color.White)
		img = imaging.Overlay(bg, img, image.Pt(0, 0), 1.0)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}
