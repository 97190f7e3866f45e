package archive

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Split selects which hyphen separates the movie name from the frame number.
type Split string

const (
	// SplitFirst splits on the first hyphen: "a-b-3.png" is movie "a", frame 0.
	SplitFirst Split = "first"
	// SplitLast splits on the last hyphen: "a-b-3.png" is movie "a-b", frame 3.
	SplitLast Split = "last"
)

// ParseSplit maps a configuration value to a Split, defaulting to SplitFirst.
func ParseSplit(value string) Split {
	if strings.EqualFold(strings.TrimSpace(value), string(SplitLast)) {
		return SplitLast
	}
	return SplitFirst
}

// ParseFrameName splits a frame file name into movie and frame number.
// Names without a hyphen report ok=false and are not part of any movie.
// A frame segment that is not an integer parses as frame 0.
func ParseFrameName(name string, split Split) (movie string, frame int, ok bool) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	var idx int
	if split == SplitLast {
		idx = strings.LastIndexByte(base, '-')
	} else {
		idx = strings.IndexByte(base, '-')
	}
	if idx < 0 {
		return "", 0, false
	}
	movie = base[:idx]
	frame, err := strconv.Atoi(base[idx+1:])
	if err != nil {
		frame = 0
	}
	return movie, frame, true
}
