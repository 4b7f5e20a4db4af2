package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/webp"
)

var ErrFileTooLarge = errors.New("texture file exceeds size limit")

// ReadImage reads and decodes an image file into tightly packed RGBA.
// Files larger than maxSize bytes are rejected before reading.
func ReadImage(path string, maxSize int64) (*image.RGBA, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat texture: %w", err)
	}
	if maxSize > 0 && info.Size() > maxSize {
		return nil, fmt.Errorf("%s (%d bytes): %w", path, info.Size(), ErrFileTooLarge)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture: %w", err)
	}
	return DecodeImage(data)
}

// DecodeImage decodes PNG, JPEG, BMP or WebP bytes into RGBA.
func DecodeImage(data []byte) (*image.RGBA, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}

	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Copy(rgba, image.Point{}, img, b, xdraw.Src, nil)
	return rgba, nil
}
