package testsupport

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
)

// Solid returns a w×h image filled with c.
func Solid(w, h int, c color.Color) *image.NRGBA {
	return imaging.New(w, h, c)
}

// WithPixel returns a copy of img with one pixel replaced.
func WithPixel(img *image.NRGBA, x, y int, c color.Color) *image.NRGBA {
	out := imaging.Clone(img)
	out.Set(x, y, c)
	return out
}

// WritePNG encodes img as PNG at path, creating parent directories.
func WritePNG(t testing.TB, path string, img image.Image) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir for %s: %v", path, err)
	}
	if err := imaging.Save(img, path); err != nil {
		t.Fatalf("save %s: %v", path, err)
	}
}

// Archive builds screenshot fixtures under a temp root.
type Archive struct {
	t    testing.TB
	Root string
}

// NewArchive creates an empty archive root in a temp directory.
func NewArchive(t testing.TB) *Archive {
	t.Helper()
	root := filepath.Join(t.TempDir(), "pic")
	MkdirAll(t, root)
	return &Archive{t: t, Root: root}
}

// Frame writes <root>/<target>/<build>/<name> with a 4×4 image of colour c
// and returns the path.
func (a *Archive) Frame(target, build, name string, c color.Color) string {
	a.t.Helper()
	path := filepath.Join(a.Root, target, build, name)
	WritePNG(a.t, path, Solid(4, 4, c))
	return path
}

// Image writes img at <root>/<target>/<build>/<name> and returns the path.
func (a *Archive) Image(target, build, name string, img image.Image) string {
	a.t.Helper()
	path := filepath.Join(a.Root, target, build, name)
	WritePNG(a.t, path, img)
	return path
}

// Build creates an empty build directory.
func (a *Archive) Build(target, build string) {
	a.t.Helper()
	MkdirAll(a.t, filepath.Join(a.Root, target, build))
}

// Raw writes arbitrary bytes at <root>/<target>/<build>/<name>.
func (a *Archive) Raw(target, build, name string, data []byte) string {
	a.t.Helper()
	path := filepath.Join(a.Root, target, build, name)
	MkdirAll(a.t, filepath.Dir(path))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		a.t.Fatalf("write %s: %v", path, err)
	}
	return path
}
