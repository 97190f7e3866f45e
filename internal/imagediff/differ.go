package imagediff

import (
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"github.com/disintegration/imaging"

	"framediff/internal/logging"
)

// ErrUnreadable reports an image that could not be opened or decoded.
var ErrUnreadable = errors.New("image unreadable")

// Result is the full comparison of two images. Image fields hold base64
// encoded data in the differ's Format.
type Result struct {
	Different  bool
	Format     Format
	Source     string
	Compare    string
	Difference string
}

// Option configures a Differ.
type Option func(*Differ)

// WithEncoding selects the visualization format.
func WithEncoding(format Format) Option {
	return func(d *Differ) {
		d.format = format
	}
}

// WithLogger attaches a logger for unreadable-image warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(d *Differ) {
		d.logger = logger
	}
}

type pairKey struct {
	lo, hi string
}

func keyFor(a, b string) pairKey {
	if b < a {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

type outcome struct {
	different bool
	err       error
}

// Differ compares images and memoizes verdicts by unordered path pair.
// It is safe for concurrent use.
type Differ struct {
	format Format
	logger *slog.Logger

	mu    sync.Mutex
	memo  map[pairKey]outcome
	calls int
}

// New returns a Differ with an empty memo.
func New(opts ...Option) *Differ {
	d := &Differ{
		format: FormatPNG,
		memo:   make(map[pairKey]outcome),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(d)
		}
	}
	d.logger = logging.NewComponentLogger(d.logger, "imagediff")
	return d
}

// Format returns the visualization format in use.
func (d *Differ) Format() Format {
	return d.format
}

// Different reports whether the images at a and b differ. On a read or
// decode failure it returns true with an error wrapping ErrUnreadable.
func (d *Differ) Different(a, b string) (bool, error) {
	key := keyFor(a, b)
	if cached, ok := d.lookup(key); ok {
		return cached.different, cached.err
	}
	imgA, imgB, err := d.loadPair(a, b)
	if err != nil {
		return d.store(key, outcome{different: true, err: err}), err
	}
	return d.store(key, outcome{different: differs(imgA, imgB)}), nil
}

// Diff compares a and b and returns the encoded source, compare, and
// difference images. The boolean verdict shares the Different memo.
func (d *Differ) Diff(a, b string) (Result, error) {
	result := Result{Format: d.format}
	key := keyFor(a, b)
	imgA, imgB, err := d.loadPair(a, b)
	if err != nil {
		result.Different = d.store(key, outcome{different: true, err: err})
		return result, err
	}
	diffImg, bbox := difference(imgA, imgB)
	result.Different = d.store(key, outcome{different: !bbox.Empty()})

	if result.Source, err = encodeBase64(imgA, d.format); err != nil {
		return result, err
	}
	if result.Compare, err = encodeBase64(imgB, d.format); err != nil {
		return result, err
	}
	if result.Difference, err = encodeBase64(diffImg, d.format); err != nil {
		return result, err
	}
	return result, nil
}

// Encode returns one image re-encoded in the differ's format.
func (d *Differ) Encode(path string) (string, error) {
	img, err := d.load(path)
	if err != nil {
		return "", err
	}
	return encodeBase64(img, d.format)
}

// Computations reports how many pair verdicts were computed rather than
// served from the memo.
func (d *Differ) Computations() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls
}

func (d *Differ) lookup(key pairKey) (outcome, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	cached, ok := d.memo[key]
	return cached, ok
}

func (d *Differ) store(key pairKey, value outcome) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.memo[key]; !ok {
		d.calls++
	}
	d.memo[key] = value
	return value.different
}

func (d *Differ) loadPair(a, b string) (*image.NRGBA, *image.NRGBA, error) {
	imgA, errA := d.load(a)
	imgB, errB := d.load(b)
	if err := errors.Join(errA, errB); err != nil {
		return nil, nil, err
	}
	return imgA, imgB, nil
}

func (d *Differ) load(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path)
	if err != nil {
		logging.WarnWithContext(d.logger, "frame unreadable; treating pair as different", "frame_unreadable",
			logging.String("path", path),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the file is a complete, readable image"),
		)
		return nil, fmt.Errorf("%s: %w: %w", path, ErrUnreadable, err)
	}
	return imaging.Clone(img), nil
}
