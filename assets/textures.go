// Package assets loads textures from image files and writes renders back out as images.
package assets

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"sync/atomic"

	"github.com/bloeys/fourgl/assert"
	_ "github.com/ftrvxmtrx/tga"
	"github.com/mandykoh/prism"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

var (
	lastTexId atomic.Uint32

	// ConversionParallelism is how many goroutines are used to convert decoded images to NRGBA
	ConversionParallelism = 2
)

// Texture is CPU-side RGBA8 image data that can be sampled by texture uniforms.
// The GPU texture is created and uploaded lazily by the renderer, which finds it using Id.
type Texture struct {
	Id     uint32
	Width  int32
	Height int32
	// Pix holds non-premultiplied RGBA8 pixels, top row first
	Pix []byte

	dirty bool
}

// TextureSize lets a texture be sampled by texture uniforms
func (t *Texture) TextureSize() (width, height int32) {
	return t.Width, t.Height
}

// SetImage replaces the pixels of the texture and marks it for upload
func (t *Texture) SetImage(img image.Image) {

	nrgba := toNRGBA(img)
	b := nrgba.Bounds()

	t.Width = int32(b.Dx())
	t.Height = int32(b.Dy())
	t.Pix = nrgba.Pix
	t.dirty = true
}

func (t *Texture) MarkDirty() {
	t.dirty = true
}

func (t *Texture) IsDirty() bool {
	return t.dirty
}

func (t *Texture) ClearDirty() {
	t.dirty = false
}

// toNRGBA returns a tightly packed NRGBA version of img with its origin at (0,0)
func toNRGBA(img image.Image) *image.NRGBA {

	if n, ok := img.(*image.NRGBA); ok && isPacked(n) {
		return n
	}

	converted := prism.ConvertImageToNRGBA(img, ConversionParallelism)
	if isPacked(converted) {
		return converted
	}

	dst := image.NewNRGBA(image.Rect(0, 0, converted.Rect.Dx(), converted.Rect.Dy()))
	draw.Draw(dst, dst.Bounds(), converted, converted.Rect.Min, draw.Src)
	return dst
}

func isPacked(img *image.NRGBA) bool {
	return img.Rect.Min == (image.Point{}) && img.Stride == img.Rect.Dx()*4
}

func NewTextureFromImage(img image.Image) *Texture {

	assert.T(img != nil, "NewTextureFromImage got a nil image")

	t := &Texture{Id: lastTexId.Add(1)}
	t.SetImage(img)
	return t
}

// DecodeTexture decodes PNG, JPEG, TGA, BMP or WebP data into a texture
func DecodeTexture(data []byte) (*Texture, error) {

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}

	return NewTextureFromImage(img), nil
}

func LoadTexture(path string) (*Texture, error) {

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("texture: read %s: %w", path, err)
	}

	tex, err := DecodeTexture(data)
	if err != nil {
		return nil, fmt.Errorf("texture: %s: %w", path, err)
	}

	return tex, nil
}
