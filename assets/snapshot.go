package assets

import (
	"fmt"
	"image"
	"os"

	"github.com/HugoSmits86/nativewebp"
)

// ImageFromPixels builds an image from RGBA8 rows stored bottom row first, which is how
// framebuffers are read back
func ImageFromPixels(width, height int32, pixels []byte) *image.NRGBA {

	img := image.NewNRGBA(image.Rect(0, 0, int(width), int(height)))
	if len(pixels) < int(width*height*4) {
		return img
	}

	rowSize := int(width) * 4
	for y := 0; y < int(height); y++ {
		srcRow := pixels[(int(height)-1-y)*rowSize : (int(height)-y)*rowSize]
		copy(img.Pix[y*img.Stride:y*img.Stride+rowSize], srcRow)
	}

	return img
}

// SaveWebP writes img to path as a lossless WebP
func SaveWebP(path string, img image.Image) error {

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("snapshot: create %s: %w", path, err)
	}

	if err := nativewebp.Encode(f, img, nil); err != nil {
		f.Close()
		return fmt.Errorf("snapshot: encode %s: %w", path, err)
	}

	return f.Close()
}
