package archive

import "sort"

// TargetSnapshot is one structural scan of a target. A query takes a single
// snapshot so every build directory is read once per query.
type TargetSnapshot struct {
	Target string
	// Ascending holds build names oldest first.
	Ascending []string
	movies    map[string]map[string]FrameSet
}

// Snapshot scans every build of target. A missing target yields an empty
// snapshot.
func (a *Archive) Snapshot(target string) *TargetSnapshot {
	snap := &TargetSnapshot{
		Target:    target,
		Ascending: a.BuildsAscending(target),
		movies:    make(map[string]map[string]FrameSet),
	}
	for _, build := range snap.Ascending {
		snap.movies[build] = a.scanBuild(target, build)
	}
	return snap
}

// Descending returns build names newest first.
func (s *TargetSnapshot) Descending() []string {
	out := append([]string(nil), s.Ascending...)
	reverse(out)
	return out
}

// HasBuild reports whether build is part of the snapshot.
func (s *TargetSnapshot) HasBuild(build string) bool {
	_, ok := s.movies[build]
	return ok
}

// Movies returns the sorted movies present in build.
func (s *TargetSnapshot) Movies(build string) []string {
	byMovie := s.movies[build]
	out := make([]string, 0, len(byMovie))
	for movie := range byMovie {
		out = append(out, movie)
	}
	sort.Strings(out)
	return out
}

// AllMovies returns every movie that appears in any build, sorted.
func (s *TargetSnapshot) AllMovies() []string {
	seen := make(map[string]struct{})
	for _, byMovie := range s.movies {
		for movie := range byMovie {
			seen[movie] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for movie := range seen {
		out = append(out, movie)
	}
	sort.Strings(out)
	return out
}

// Frames returns the frames of movie in build; absent movies yield nil.
func (s *TargetSnapshot) Frames(build, movie string) FrameSet {
	return s.movies[build][movie]
}

// Has reports whether movie has at least one frame in build.
func (s *TargetSnapshot) Has(build, movie string) bool {
	return len(s.movies[build][movie]) > 0
}
