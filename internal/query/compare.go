package query

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"framediff/internal/archive"
	"framediff/internal/imagediff"
	"framediff/internal/logging"
)

// Compare builds the frame-by-frame table of movie between build1 and
// build2 over the union of their frame numbers, ascending. Frames present
// on both sides are diffed in parallel up to the configured worker count.
func (s *Service) Compare(ctx context.Context, target, build1, build2, movie string, withImages bool) (CompareTable, error) {
	if err := s.requireTarget(target); err != nil {
		return CompareTable{}, err
	}
	sess := s.begin(ctx, "compare", target)
	for _, build := range []string{build1, build2} {
		if !sess.snapshot.HasBuild(build) {
			return CompareTable{}, fmt.Errorf("%s/%s: %w", target, build, ErrBuildNotFound)
		}
	}

	left := sess.snapshot.Frames(build1, movie)
	right := sess.snapshot.Frames(build2, movie)
	table := CompareTable{
		QueryID: sess.id,
		Target:  target,
		Build1:  build1,
		Build2:  build2,
		Movie:   movie,
		Format:  sess.images.Format(),
		Rows:    make([]CompareRow, 0, len(left)+len(right)),
	}
	for _, n := range unionNumbers(left, right) {
		_, in1 := left[n]
		_, in2 := right[n]
		table.Rows = append(table.Rows, CompareRow{Frame: n, InBuild1: in1, InBuild2: in2})
	}

	sem := make(chan struct{}, s.workers)
	var wg sync.WaitGroup
	for i := range table.Rows {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return CompareTable{}, err
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(row *CompareRow) {
			defer wg.Done()
			defer func() { <-sem }()
			s.fillRow(sess, row, target, build1, build2, left, right, withImages)
		}(&table.Rows[i])
	}
	wg.Wait()

	sess.finish(
		logging.Movie(movie),
		logging.Int("frames", len(table.Rows)),
		logging.Int("changed", table.Changed()),
	)
	return table, nil
}

func (s *Service) fillRow(sess *session, row *CompareRow, target, build1, build2 string, left, right archive.FrameSet, withImages bool) {
	var path1, path2 string
	if row.InBuild1 {
		path1 = s.archive.FramePath(target, build1, left[row.Frame])
	}
	if row.InBuild2 {
		path2 = s.archive.FramePath(target, build2, right[row.Frame])
	}

	if !row.InBuild1 || !row.InBuild2 {
		row.HasDiff = true
		if !withImages {
			return
		}
		var err error
		if row.InBuild1 {
			row.Build1Image, err = sess.images.Encode(path1)
		} else {
			row.Build2Image, err = sess.images.Encode(path2)
		}
		row.Degraded = err != nil
		return
	}

	if !withImages {
		different, err := sess.images.Different(path1, path2)
		row.HasDiff = different
		row.Degraded = err != nil
		return
	}
	result, err := sess.images.Diff(path1, path2)
	row.HasDiff = result.Different
	row.Degraded = errors.Is(err, imagediff.ErrUnreadable)
	row.Build1Image = result.Source
	row.Build2Image = result.Compare
	row.DiffImage = result.Difference
	if err != nil && !row.Degraded {
		sess.logger.Warn("visualization encoding failed", logging.Int("frame", row.Frame), logging.Error(err))
	}
}

// FrameDiff returns the full visualization for one frame number.
func (s *Service) FrameDiff(ctx context.Context, target, build1, build2, movie string, frame int) (FrameDiff, error) {
	if err := s.requireTarget(target); err != nil {
		return FrameDiff{}, err
	}
	sess := s.begin(ctx, "diff", target)
	out := FrameDiff{QueryID: sess.id, Target: target, Build1: build1, Build2: build2, Movie: movie, Frame: frame}

	file1, ok1 := sess.snapshot.Frames(build1, movie)[frame]
	file2, ok2 := sess.snapshot.Frames(build2, movie)[frame]
	if !ok1 || !ok2 {
		return out, fmt.Errorf("%s/%s frame %d: %w", target, movie, frame, ErrFrameNotFound)
	}
	result, err := sess.images.Diff(
		s.archive.FramePath(target, build1, file1),
		s.archive.FramePath(target, build2, file2),
	)
	out.Result = result
	if err != nil {
		if !errors.Is(err, imagediff.ErrUnreadable) {
			return out, err
		}
		out.Degraded = true
	}
	sess.finish(logging.Movie(movie), logging.Int("frame", frame))
	return out, nil
}

func unionNumbers(a, b archive.FrameSet) []int {
	seen := make(map[int]struct{}, len(a)+len(b))
	for n := range a {
		seen[n] = struct{}{}
	}
	for n := range b {
		seen[n] = struct{}{}
	}
	out := make([]int, 0, len(seen))
	for n := range seen {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}
