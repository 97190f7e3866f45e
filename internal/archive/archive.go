package archive

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	// ErrTargetNotFound reports a target directory that does not exist.
	ErrTargetNotFound = errors.New("target not found")
	// ErrOutsideRoot reports a relative path that escapes the archive root.
	ErrOutsideRoot = errors.New("path escapes archive root")
)

// FrameSet maps a frame number to the file name holding it.
type FrameSet map[int]string

// Numbers returns the frame numbers in ascending order.
func (f FrameSet) Numbers() []int {
	out := make([]int, 0, len(f))
	for n := range f {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// Archive reads targets, builds, movies, and frames from Root.
type Archive struct {
	Root       string
	Split      Split
	Extensions []string
}

// New constructs an Archive. Extensions default to ".png".
func New(root string, split Split, extensions ...string) *Archive {
	exts := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = []string{".png"}
	}
	return &Archive{Root: root, Split: split, Extensions: exts}
}

// ListTargets returns target directory names in ascending order. Only a
// failure to read the root itself is reported as an error.
func (a *Archive) ListTargets() ([]string, error) {
	entries, err := os.ReadDir(a.Root)
	if err != nil {
		return nil, fmt.Errorf("read archive root: %w", err)
	}
	return dirNames(entries), nil
}

// HasTarget reports whether target exists as a directory under the root.
func (a *Archive) HasTarget(target string) bool {
	if !validName(target) {
		return false
	}
	info, err := os.Stat(filepath.Join(a.Root, target))
	return err == nil && info.IsDir()
}

// ListBuilds returns build names for target, newest first.
func (a *Archive) ListBuilds(target string) []string {
	builds := a.BuildsAscending(target)
	reverse(builds)
	return builds
}

// BuildsAscending returns build names for target, oldest first.
func (a *Archive) BuildsAscending(target string) []string {
	if !validName(target) {
		return nil
	}
	entries, err := os.ReadDir(filepath.Join(a.Root, target))
	if err != nil {
		return nil
	}
	return dirNames(entries)
}

// ListMovies returns the sorted set of movies present in one build.
func (a *Archive) ListMovies(target, build string) []string {
	movies := a.scanBuild(target, build)
	out := make([]string, 0, len(movies))
	for movie := range movies {
		out = append(out, movie)
	}
	sort.Strings(out)
	return out
}

// ListFrames returns the frames of movie in one build. A movie absent from
// the build yields an empty set.
func (a *Archive) ListFrames(target, build, movie string) FrameSet {
	frames := a.scanBuild(target, build)[movie]
	if frames == nil {
		return FrameSet{}
	}
	return frames
}

// FramePath returns the filesystem path of one frame file.
func (a *Archive) FramePath(target, build, file string) string {
	return filepath.Join(a.Root, target, build, file)
}

// ResolveRelative joins rel under the root and rejects results outside it.
func (a *Archive) ResolveRelative(rel string) (string, error) {
	root, err := filepath.Abs(a.Root)
	if err != nil {
		return "", fmt.Errorf("resolve archive root: %w", err)
	}
	cleaned := filepath.Clean(filepath.Join(root, filepath.FromSlash(strings.TrimPrefix(rel, "/"))))
	relToRoot, err := filepath.Rel(root, cleaned)
	if err != nil || relToRoot == ".." || strings.HasPrefix(relToRoot, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("%q: %w", rel, ErrOutsideRoot)
	}
	return cleaned, nil
}

// scanBuild reads one build directory and groups its frame files by movie.
func (a *Archive) scanBuild(target, build string) map[string]FrameSet {
	out := make(map[string]FrameSet)
	if !validName(target) || !validName(build) {
		return out
	}
	entries, err := os.ReadDir(filepath.Join(a.Root, target, build))
	if err != nil {
		return out
	}
	for _, entry := range entries {
		if entry.IsDir() || !a.isFrameFile(entry.Name()) {
			continue
		}
		movie, frame, ok := ParseFrameName(entry.Name(), a.Split)
		if !ok {
			continue
		}
		frames := out[movie]
		if frames == nil {
			frames = FrameSet{}
			out[movie] = frames
		}
		// Two files can collapse onto one frame number when the segment is
		// not numeric; keep the lexically smallest name for stable output.
		if existing, dup := frames[frame]; !dup || entry.Name() < existing {
			frames[frame] = entry.Name()
		}
	}
	return out
}

func (a *Archive) isFrameFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range a.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func dirNames(entries []fs.DirEntry) []string {
	out := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() && !strings.HasPrefix(entry.Name(), ".") {
			out = append(out, entry.Name())
		}
	}
	sort.Strings(out)
	return out
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

func reverse(values []string) {
	for i, j := 0, len(values)-1; i < j; i, j = i+1, j-1 {
		values[i], values[j] = values[j], values[i]
	}
}
