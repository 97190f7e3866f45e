package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"

	"framediff/internal/archive"
	"framediff/internal/config"
	"framediff/internal/imagediff"
	"framediff/internal/logging"
	"framediff/internal/moviediff"
	"framediff/internal/timeline"
)

var (
	// ErrBuildNotFound reports a build name absent from the target.
	ErrBuildNotFound = errors.New("build not found")
	// ErrFrameNotFound reports a frame absent from one of the compared builds.
	ErrFrameNotFound = errors.New("frame not found")
)

// Service answers presentation queries against one archive.
type Service struct {
	archive *archive.Archive
	format  imagediff.Format
	workers int
	logger  *slog.Logger
}

// Option configures a Service.
type Option func(*Service)

// WithFormat selects the visualization encoding.
func WithFormat(format imagediff.Format) Option {
	return func(s *Service) { s.format = format }
}

// WithWorkers bounds concurrent frame comparisons inside Compare.
func WithWorkers(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.workers = n
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// New constructs a Service over a.
func New(a *archive.Archive, opts ...Option) *Service {
	s := &Service{archive: a, format: imagediff.FormatPNG, workers: 1}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.NewComponentLogger(s.logger, "query")
	return s
}

// NewFromConfig constructs a Service from the archive and diff sections of cfg.
func NewFromConfig(cfg *config.Config, logger *slog.Logger) *Service {
	a := archive.New(cfg.Paths.ArchiveRoot, archive.ParseSplit(cfg.Archive.MovieSplit), cfg.Archive.Extensions...)
	return New(a,
		WithFormat(imagediff.ParseFormat(cfg.Diff.Encoding)),
		WithWorkers(cfg.Diff.Workers),
		WithLogger(logger),
	)
}

// Archive returns the archive the service reads.
func (s *Service) Archive() *archive.Archive {
	return s.archive
}

// session holds the memos of one query.
type session struct {
	id       string
	started  time.Time
	snapshot *archive.TargetSnapshot
	images   *imagediff.Differ
	movies   *moviediff.Differ
	logger   *slog.Logger
}

func (s *Service) begin(ctx context.Context, op, target string) *session {
	id := uuid.NewString()
	ctx = logging.WithQueryID(ctx, id)
	logger := logging.WithContext(ctx, s.logger).With(
		logging.String("op", op),
		logging.Target(target),
	)
	sess := &session{id: id, started: time.Now(), logger: logger}
	sess.images = imagediff.New(imagediff.WithEncoding(s.format), imagediff.WithLogger(logger))
	if target != "" {
		sess.snapshot = s.archive.Snapshot(target)
		sess.movies = moviediff.New(s.archive, sess.snapshot, sess.images, logger)
	}
	return sess
}

func (sess *session) finish(attrs ...logging.Attr) {
	attrs = append(attrs,
		logging.Duration("elapsed", time.Since(sess.started)),
		logging.Int("image_diffs", sess.images.Computations()),
	)
	sess.logger.Debug("query complete", logging.Args(attrs...)...)
}

func (s *Service) requireTarget(target string) error {
	if !s.archive.HasTarget(target) {
		return fmt.Errorf("%q: %w", target, archive.ErrTargetNotFound)
	}
	return nil
}

// Targets lists target names.
func (s *Service) Targets(ctx context.Context) ([]string, error) {
	return s.archive.ListTargets()
}

// TargetOverview reconciles every movie of target.
func (s *Service) TargetOverview(ctx context.Context, target string) (TargetView, error) {
	if err := s.requireTarget(target); err != nil {
		return TargetView{}, err
	}
	sess := s.begin(ctx, "target", target)
	view := TargetView{
		QueryID:    sess.id,
		Target:     target,
		Builds:     sess.snapshot.Descending(),
		Membership: make(map[string][]string, len(sess.snapshot.Ascending)),
	}
	for _, build := range sess.snapshot.Ascending {
		view.Membership[build] = sess.snapshot.Movies(build)
	}
	view.Rows = timeline.New(sess.snapshot, sess.movies).ReconcileTarget()
	sess.finish(logging.Int("builds", len(view.Builds)), logging.Int("movies", len(view.Rows)))
	return view, nil
}

// BuildView lists the movies of build with their verdicts.
func (s *Service) BuildView(ctx context.Context, target, build string) (BuildView, error) {
	if err := s.requireTarget(target); err != nil {
		return BuildView{}, err
	}
	sess := s.begin(ctx, "build", target)
	if !sess.snapshot.HasBuild(build) {
		return BuildView{}, fmt.Errorf("%s/%s: %w", target, build, ErrBuildNotFound)
	}
	view := BuildView{
		QueryID:  sess.id,
		Target:   target,
		Build:    build,
		Previous: previousBuild(sess.snapshot.Ascending, build),
	}
	reconciler := timeline.New(sess.snapshot, sess.movies)
	for _, movie := range sess.snapshot.Movies(build) {
		cell, _ := reconciler.Reconcile(movie).Cell(build)
		view.Movies = append(view.Movies, BuildMovie{Movie: movie, Cell: cell})
	}
	if view.Previous != "" {
		for _, movie := range sess.snapshot.Movies(view.Previous) {
			if !sess.snapshot.Has(build, movie) {
				view.Removed = append(view.Removed, movie)
			}
		}
	}
	sess.finish(logging.Build(build), logging.Int("movies", len(view.Movies)))
	return view, nil
}

// MovieMatrix reconciles movie in every target that has it.
func (s *Service) MovieMatrix(ctx context.Context, movie string) (MovieMatrix, error) {
	targets, err := s.archive.ListTargets()
	if err != nil {
		return MovieMatrix{}, err
	}
	sess := s.begin(ctx, "movie", "")
	matrix := MovieMatrix{QueryID: sess.id, Movie: movie}
	for _, target := range targets {
		snapshot := s.archive.Snapshot(target)
		if !containsMovie(snapshot, movie) {
			continue
		}
		movies := moviediff.New(s.archive, snapshot, sess.images, sess.logger)
		matrix.Targets = append(matrix.Targets, MovieTarget{
			Target: target,
			Builds: snapshot.Descending(),
			Row:    timeline.New(snapshot, movies).Reconcile(movie),
		})
	}
	sess.finish(logging.Movie(movie), logging.Int("targets", len(matrix.Targets)))
	return matrix, nil
}

// MovieFrames maps each frame number of movie to the builds containing it.
func (s *Service) MovieFrames(ctx context.Context, target, movie string) (MovieFrames, error) {
	if err := s.requireTarget(target); err != nil {
		return MovieFrames{}, err
	}
	sess := s.begin(ctx, "frames", target)
	view := MovieFrames{QueryID: sess.id, Target: target, Movie: movie}
	byFrame := make(map[int][]string)
	for _, build := range sess.snapshot.Descending() {
		frames := sess.snapshot.Frames(build, movie)
		if len(frames) == 0 {
			continue
		}
		view.Builds = append(view.Builds, build)
		for n := range frames {
			byFrame[n] = append(byFrame[n], build)
		}
	}
	numbers := make([]int, 0, len(byFrame))
	for n := range byFrame {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)
	for _, n := range numbers {
		view.Frames = append(view.Frames, FramePresence{Frame: n, Builds: byFrame[n]})
	}
	sess.finish(logging.Movie(movie), logging.Int("frames", len(view.Frames)))
	return view, nil
}

func containsMovie(snapshot *archive.TargetSnapshot, movie string) bool {
	for _, build := range snapshot.Ascending {
		if snapshot.Has(build, movie) {
			return true
		}
	}
	return false
}

func previousBuild(ascending []string, build string) string {
	for i, b := range ascending {
		if b == build && i > 0 {
			return ascending[i-1]
		}
	}
	return ""
}
