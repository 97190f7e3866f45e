package imagediff

import (
	"image"
	"image/color"

	"github.com/disintegration/imaging"
)

// differs reports whether a and b differ in any pixel. Images with different
// dimensions always differ.
func differs(a, b *image.NRGBA) bool {
	if a.Rect.Dx() != b.Rect.Dx() || a.Rect.Dy() != b.Rect.Dy() {
		return true
	}
	w, h := a.Rect.Dx(), a.Rect.Dy()
	for y := 0; y < h; y++ {
		rowA := a.Pix[y*a.Stride : y*a.Stride+w*4]
		rowB := b.Pix[y*b.Stride : y*b.Stride+w*4]
		for i := range rowA {
			if rowA[i] != rowB[i] {
				return true
			}
		}
	}
	return false
}

// difference returns the absolute per-channel difference of a and b on the
// union of both canvases, with alpha forced opaque, and the bounding box of
// the pixels that differ. Pixels covered by only one image are compared
// against transparent black.
func difference(a, b *image.NRGBA) (*image.NRGBA, image.Rectangle) {
	w := max(a.Rect.Dx(), b.Rect.Dx())
	h := max(a.Rect.Dy(), b.Rect.Dy())
	out := imaging.New(w, h, color.NRGBA{A: 255})
	bbox := image.Rectangle{}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pa, inA := pixelAt(a, x, y)
			pb, inB := pixelAt(b, x, y)
			d := [4]uint8{absDiff(pa[0], pb[0]), absDiff(pa[1], pb[1]), absDiff(pa[2], pb[2]), absDiff(pa[3], pb[3])}
			if d != [4]uint8{} || inA != inB {
				bbox = bbox.Union(image.Rect(x, y, x+1, y+1))
			}
			i := out.PixOffset(x, y)
			out.Pix[i+0] = d[0]
			out.Pix[i+1] = d[1]
			out.Pix[i+2] = d[2]
			out.Pix[i+3] = 255
		}
	}
	return out, bbox
}

func pixelAt(img *image.NRGBA, x, y int) ([4]uint8, bool) {
	if x >= img.Rect.Dx() || y >= img.Rect.Dy() {
		return [4]uint8{}, false
	}
	i := img.PixOffset(img.Rect.Min.X+x, img.Rect.Min.Y+y)
	return [4]uint8{img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3]}, true
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
