package query_test

import (
	"context"
	"errors"
	"image/color"
	"reflect"
	"testing"

	"framediff/internal/archive"
	"framediff/internal/query"
	"framediff/internal/testsupport"
	"framediff/internal/timeline"
)

var (
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	black = color.NRGBA{A: 255}
)

func newService(t *testing.T, fx *testsupport.Archive, opts ...query.Option) *query.Service {
	t.Helper()
	return query.New(archive.New(fx.Root, archive.SplitFirst), opts...)
}

func gapFixture(t *testing.T) *testsupport.Archive {
	t.Helper()
	fx := testsupport.NewArchive(t)
	fx.Frame("linux", "1", "M-1.png", white)
	fx.Frame("linux", "1", "intro-1.png", white)
	fx.Frame("linux", "2", "intro-1.png", black)
	fx.Frame("linux", "3", "M-1.png", white)
	fx.Frame("linux", "3", "intro-1.png", black)
	fx.Frame("windows", "1", "intro-1.png", white)
	fx.Frame("mac", "1", "other-1.png", white)
	return fx
}

func TestTargets(t *testing.T) {
	svc := newService(t, gapFixture(t))
	targets, err := svc.Targets(context.Background())
	if err != nil {
		t.Fatalf("Targets: %v", err)
	}
	if !reflect.DeepEqual(targets, []string{"linux", "mac", "windows"}) {
		t.Fatalf("unexpected targets %v", targets)
	}
}

func TestTargetOverview(t *testing.T) {
	svc := newService(t, gapFixture(t))
	view, err := svc.TargetOverview(context.Background(), "linux")
	if err != nil {
		t.Fatalf("TargetOverview: %v", err)
	}
	if view.QueryID == "" {
		t.Fatal("expected query id")
	}
	if !reflect.DeepEqual(view.Builds, []string{"3", "2", "1"}) {
		t.Fatalf("unexpected builds %v", view.Builds)
	}
	if !reflect.DeepEqual(view.Membership["2"], []string{"intro"}) {
		t.Fatalf("unexpected membership %v", view.Membership)
	}
	if len(view.Rows) != 2 || view.Rows[0].Movie != "M" || view.Rows[1].Movie != "intro" {
		t.Fatalf("unexpected rows %+v", view.Rows)
	}
	intro := view.Rows[1]
	if cell, _ := intro.Cell("2"); cell.Verdict != timeline.Changed {
		t.Fatalf("intro build 2: %+v", cell)
	}
	if cell, _ := intro.Cell("3"); cell.Verdict != timeline.Unchanged {
		t.Fatalf("intro build 3: %+v", cell)
	}
	if cell, _ := view.Rows[0].Cell("3"); cell.Verdict != timeline.ReAdded || cell.Reference != "1" || cell.ReferenceChanged {
		t.Fatalf("M build 3: %+v", cell)
	}
}

func TestQueriesUseFreshIDs(t *testing.T) {
	svc := newService(t, gapFixture(t))
	first, err := svc.TargetOverview(context.Background(), "linux")
	if err != nil {
		t.Fatalf("TargetOverview: %v", err)
	}
	second, err := svc.TargetOverview(context.Background(), "linux")
	if err != nil {
		t.Fatalf("TargetOverview: %v", err)
	}
	if first.QueryID == second.QueryID {
		t.Fatal("expected distinct query ids")
	}
}

func TestUnknownTarget(t *testing.T) {
	svc := newService(t, gapFixture(t))
	if _, err := svc.TargetOverview(context.Background(), "plan9"); !errors.Is(err, archive.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound, got %v", err)
	}
	if _, err := svc.Compare(context.Background(), "../linux", "1", "2", "M", false); !errors.Is(err, archive.ErrTargetNotFound) {
		t.Fatalf("expected ErrTargetNotFound for traversal name, got %v", err)
	}
}

func TestBuildView(t *testing.T) {
	svc := newService(t, gapFixture(t))
	view, err := svc.BuildView(context.Background(), "linux", "2")
	if err != nil {
		t.Fatalf("BuildView: %v", err)
	}
	if view.Previous != "1" {
		t.Fatalf("unexpected previous %q", view.Previous)
	}
	if len(view.Movies) != 1 || view.Movies[0].Movie != "intro" || view.Movies[0].Cell.Verdict != timeline.Changed {
		t.Fatalf("unexpected movies %+v", view.Movies)
	}
	if !reflect.DeepEqual(view.Removed, []string{"M"}) {
		t.Fatalf("unexpected removed %v", view.Removed)
	}

	if _, err := svc.BuildView(context.Background(), "linux", "9"); !errors.Is(err, query.ErrBuildNotFound) {
		t.Fatalf("expected ErrBuildNotFound, got %v", err)
	}
}

func TestMovieMatrixOmitsTargetsWithoutMovie(t *testing.T) {
	svc := newService(t, gapFixture(t))
	matrix, err := svc.MovieMatrix(context.Background(), "intro")
	if err != nil {
		t.Fatalf("MovieMatrix: %v", err)
	}
	if len(matrix.Targets) != 2 || matrix.Targets[0].Target != "linux" || matrix.Targets[1].Target != "windows" {
		t.Fatalf("unexpected targets %+v", matrix.Targets)
	}
	if cell, _ := matrix.Targets[1].Row.Cell("1"); cell.Verdict != timeline.FirstSeen {
		t.Fatalf("windows build 1: %+v", cell)
	}
}

func TestMovieFrames(t *testing.T) {
	fx := testsupport.NewArchive(t)
	fx.Frame("linux", "1", "intro-1.png", white)
	fx.Frame("linux", "1", "intro-2.png", white)
	fx.Frame("linux", "2", "intro-2.png", white)
	fx.Frame("linux", "2", "intro-3.png", white)

	frames, err := newService(t, fx).MovieFrames(context.Background(), "linux", "intro")
	if err != nil {
		t.Fatalf("MovieFrames: %v", err)
	}
	want := []query.FramePresence{
		{Frame: 1, Builds: []string{"1"}},
		{Frame: 2, Builds: []string{"2", "1"}},
		{Frame: 3, Builds: []string{"2"}},
	}
	if !reflect.DeepEqual(frames.Frames, want) {
		t.Fatalf("unexpected frames %+v", frames.Frames)
	}
}

func TestCompareOneSidedFrame(t *testing.T) {
	fx := testsupport.NewArchive(t)
	fx.Frame("linux", "1", "intro-1.png", white)
	fx.Frame("linux", "1", "intro-5.png", white)
	fx.Frame("linux", "2", "intro-1.png", white)

	svc := newService(t, fx, query.WithWorkers(4))
	table, err := svc.Compare(context.Background(), "linux", "1", "2", "intro", true)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("unexpected rows %+v", table.Rows)
	}
	same, onlyLeft := table.Rows[0], table.Rows[1]
	if same.Frame != 1 || same.HasDiff || same.Degraded {
		t.Fatalf("frame 1: %+v", same)
	}
	if onlyLeft.Frame != 5 || !onlyLeft.HasDiff {
		t.Fatalf("frame 5: %+v", onlyLeft)
	}
	if onlyLeft.Build1Image == "" || onlyLeft.Build2Image != "" || onlyLeft.DiffImage != "" {
		t.Fatalf("expected only build1 image for frame 5, got %+v", onlyLeft)
	}
	if table.Changed() != 1 {
		t.Fatalf("expected one changed row, got %d", table.Changed())
	}
}

func TestCompareWithoutImagesFlagsUnreadable(t *testing.T) {
	fx := testsupport.NewArchive(t)
	for i, name := range []string{"intro-1.png", "intro-2.png", "intro-3.png"} {
		c := white
		if i == 1 {
			c = black
		}
		fx.Frame("linux", "1", name, white)
		fx.Frame("linux", "2", name, c)
	}
	fx.Frame("linux", "1", "intro-4.png", white)
	fx.Raw("linux", "2", "intro-4.png", []byte("corrupt"))

	table, err := newService(t, fx, query.WithWorkers(2)).Compare(context.Background(), "linux", "1", "2", "intro", false)
	if err != nil {
		t.Fatalf("Compare: %v", err)
	}
	got := make([]bool, 0, len(table.Rows))
	for _, row := range table.Rows {
		got = append(got, row.HasDiff)
		if row.Build1Image != "" || row.DiffImage != "" {
			t.Fatalf("expected no images, got %+v", row)
		}
	}
	if !reflect.DeepEqual(got, []bool{false, true, false, true}) {
		t.Fatalf("unexpected diffs %v", got)
	}
	if !table.Rows[3].Degraded {
		t.Fatalf("expected degraded row for unreadable frame: %+v", table.Rows[3])
	}
}

func TestFrameDiff(t *testing.T) {
	fx := gapFixture(t)
	svc := newService(t, fx)

	diff, err := svc.FrameDiff(context.Background(), "linux", "1", "2", "intro", 1)
	if err != nil {
		t.Fatalf("FrameDiff: %v", err)
	}
	if !diff.Result.Different || diff.Result.Difference == "" {
		t.Fatalf("unexpected diff %+v", diff.Result.Different)
	}
	if _, err := svc.FrameDiff(context.Background(), "linux", "1", "2", "M", 1); !errors.Is(err, query.ErrFrameNotFound) {
		t.Fatalf("expected ErrFrameNotFound, got %v", err)
	}
}
