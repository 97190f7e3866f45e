package timeline

import (
	"framediff/internal/archive"
	"framediff/internal/moviediff"
)

// MovieDiffer compares one movie between two builds of the snapshot's target.
type MovieDiffer interface {
	MovieDiff(current, previous, movie string) moviediff.Outcome
}

// Reconciler computes verdict rows for the movies of one target snapshot.
type Reconciler struct {
	snapshot *archive.TargetSnapshot
	movies   MovieDiffer
}

// New returns a Reconciler over snapshot.
func New(snapshot *archive.TargetSnapshot, movies MovieDiffer) *Reconciler {
	return &Reconciler{snapshot: snapshot, movies: movies}
}

// Target returns the name of the reconciled target.
func (r *Reconciler) Target() string {
	return r.snapshot.Target
}

// ReconcileTarget returns one row per movie that appears anywhere in the
// target's history, sorted by movie name.
func (r *Reconciler) ReconcileTarget() []Row {
	movies := r.snapshot.AllMovies()
	rows := make([]Row, 0, len(movies))
	for _, movie := range movies {
		rows = append(rows, r.Reconcile(movie))
	}
	return rows
}

// Reconcile classifies movie in every build of the target.
func (r *Reconciler) Reconcile(movie string) Row {
	builds := r.snapshot.Ascending
	n := len(builds)

	// Presence and nearest-older-containing index are computed in one
	// ascending pass and shared by every cell of the row.
	present := make([]bool, n)
	nearestOlder := make([]int, n)
	first := -1
	last := -1
	for i, build := range builds {
		nearestOlder[i] = last
		present[i] = r.snapshot.Has(build, movie)
		if present[i] {
			if first < 0 {
				first = i
			}
			last = i
		}
	}

	row := Row{Target: r.snapshot.Target, Movie: movie, Cells: make([]Cell, 0, n)}
	for i := n - 1; i >= 0; i-- {
		row.Cells = append(row.Cells, r.classify(movie, i, first, present, nearestOlder))
	}
	return row
}

func (r *Reconciler) classify(movie string, i, first int, present []bool, nearestOlder []int) Cell {
	builds := r.snapshot.Ascending
	cell := Cell{
		Build:      builds[i],
		Present:    present[i],
		FrameCount: len(r.snapshot.Frames(builds[i], movie)),
	}
	if i > 0 {
		cell.Previous = builds[i-1]
	}
	setReference := func() {
		if ref := nearestOlder[i]; ref >= 0 {
			cell.Reference = builds[ref]
		} else {
			cell.NoReference = true
		}
	}

	switch {
	case i == first:
		cell.Verdict = FirstSeen
	case i == 0:
		cell.Verdict = Unknown
	case !present[i]:
		cell.Verdict = Missing
		setReference()
	case !present[i-1]:
		cell.Verdict = ReAdded
		setReference()
		if cell.Reference != "" {
			out := r.movies.MovieDiff(cell.Build, cell.Reference, movie)
			cell.ReferenceChanged = out.Changed
			cell.Degraded = out.Degraded
		}
	default:
		out := r.movies.MovieDiff(cell.Build, cell.Previous, movie)
		cell.Degraded = out.Degraded
		sameFrames := sameNumbers(r.snapshot.Frames(cell.Build, movie), r.snapshot.Frames(cell.Previous, movie))
		switch {
		case !out.Changed:
			cell.Verdict = Unchanged
		case sameFrames:
			cell.Verdict = Changed
		default:
			cell.Verdict = PartialChanged
		}
	}
	return cell
}

func sameNumbers(a, b archive.FrameSet) bool {
	if len(a) != len(b) {
		return false
	}
	for n := range a {
		if _, ok := b[n]; !ok {
			return false
		}
	}
	return true
}
