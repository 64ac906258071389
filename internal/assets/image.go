package assets

import (
	"fmt"
	"image"
	"image/draw"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/anthonynsimon/bild/transform"
)

// Equirectangular panoramas are about twice as wide as they are tall.
const (
	EquirectAspectMin = 1.8
	EquirectAspectMax = 2.2
)

// Image is a decoded texture ready for upload.
type Image struct {
	Path string
	RGBA *image.RGBA
	// Equirect is true when the aspect ratio looks like a 2:1 panorama.
	Equirect bool
}

// LoadImage decodes path and scales it down so neither side exceeds maxSide, keeping the
// aspect ratio. maxSide <= 0 keeps the original size.
func LoadImage(path string, maxSide int) (*Image, error) {
	src, err := imgio.Open(path)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", path, err)
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("assets: %s: empty image", path)
	}

	var rgba *image.RGBA
	if nw, nh := fit(w, h, maxSide); nw != w || nh != h {
		rgba = transform.Resize(src, nw, nh, transform.Linear)
	} else {
		rgba = toRGBA(src)
	}
	aspect := float64(w) / float64(h)
	return &Image{
		Path:     path,
		RGBA:     rgba,
		Equirect: aspect >= EquirectAspectMin && aspect <= EquirectAspectMax,
	}, nil
}

// fit scales w×h so the longer side is at most maxSide.
func fit(w, h, maxSide int) (int, int) {
	if maxSide <= 0 || (w <= maxSide && h <= maxSide) {
		return w, h
	}
	if w >= h {
		return maxSide, max(1, h*maxSide/w)
	}
	return max(1, w*maxSide/h), maxSide
}

func toRGBA(src image.Image) *image.RGBA {
	if rgba, ok := src.(*image.RGBA); ok && rgba.Bounds().Min == (image.Point{}) {
		return rgba
	}
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
