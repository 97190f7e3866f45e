package moviediff

import (
	"log/slog"
	"sync"

	"framediff/internal/archive"
	"framediff/internal/logging"
)

// FrameComparer decides whether two frame files differ. A non-nil error
// means the pair could not be compared.
type FrameComparer interface {
	Different(a, b string) (bool, error)
}

// Outcome is the verdict for one movie between two builds. Degraded is set
// when at least one frame could not be read; such frames count as changed.
type Outcome struct {
	Changed  bool
	Degraded bool
}

type memoKey struct {
	target, current, previous, movie string
}

// Differ compares movies inside one target snapshot. Results are memoized
// for the lifetime of the Differ.
type Differ struct {
	archive  *archive.Archive
	snapshot *archive.TargetSnapshot
	frames   FrameComparer
	logger   *slog.Logger

	mu   sync.Mutex
	memo map[memoKey]Outcome
}

// New returns a Differ reading frames from snapshot.
func New(a *archive.Archive, snapshot *archive.TargetSnapshot, frames FrameComparer, logger *slog.Logger) *Differ {
	return &Differ{
		archive:  a,
		snapshot: snapshot,
		frames:   frames,
		logger:   logging.NewComponentLogger(logger, "moviediff"),
		memo:     make(map[memoKey]Outcome),
	}
}

// MovieDiff reports whether any frame number present in both builds differs.
// Common frames are visited in ascending order and the walk stops at the
// first difference. No common frames means no evidence of change.
func (d *Differ) MovieDiff(current, previous, movie string) Outcome {
	key := memoKey{target: d.snapshot.Target, current: current, previous: previous, movie: movie}
	d.mu.Lock()
	if cached, ok := d.memo[key]; ok {
		d.mu.Unlock()
		return cached
	}
	d.mu.Unlock()

	out := d.compute(current, previous, movie)

	d.mu.Lock()
	d.memo[key] = out
	d.mu.Unlock()
	return out
}

func (d *Differ) compute(current, previous, movie string) Outcome {
	cur := d.snapshot.Frames(current, movie)
	prev := d.snapshot.Frames(previous, movie)
	target := d.snapshot.Target

	for _, frame := range cur.Numbers() {
		prevFile, ok := prev[frame]
		if !ok {
			continue
		}
		different, err := d.frames.Different(
			d.archive.FramePath(target, current, cur[frame]),
			d.archive.FramePath(target, previous, prevFile),
		)
		if err != nil {
			d.logger.Debug("frame comparison degraded",
				logging.Target(target),
				logging.Movie(movie),
				logging.Int("frame", frame),
				logging.Error(err),
			)
			return Outcome{Changed: true, Degraded: true}
		}
		if different {
			return Outcome{Changed: true}
		}
	}
	return Outcome{}
}
