package query

import (
	"framediff/internal/imagediff"
	"framediff/internal/timeline"
)

// TargetView is the verdict matrix of one target.
type TargetView struct {
	QueryID string `json:"query_id"`
	Target  string `json:"target"`
	// Builds lists build names newest first.
	Builds []string `json:"builds"`
	// Membership maps each build to the movies it contains.
	Membership map[string][]string `json:"membership"`
	Rows       []timeline.Row      `json:"rows"`
}

// BuildMovie is one movie of a build with its verdict in that build.
type BuildMovie struct {
	Movie string        `json:"movie"`
	Cell  timeline.Cell `json:"cell"`
}

// BuildView lists the movies of one build against the previous build.
type BuildView struct {
	QueryID  string       `json:"query_id"`
	Target   string       `json:"target"`
	Build    string       `json:"build"`
	Previous string       `json:"previous,omitempty"`
	Movies   []BuildMovie `json:"movies"`
	// Removed lists movies of the previous build that this build lacks.
	Removed []string `json:"removed,omitempty"`
}

// MovieTarget is the reconciled row of a movie within one target.
type MovieTarget struct {
	Target string       `json:"target"`
	Builds []string     `json:"builds"`
	Row    timeline.Row `json:"row"`
}

// MovieMatrix is the verdict matrix of one movie across all targets.
type MovieMatrix struct {
	QueryID string        `json:"query_id"`
	Movie   string        `json:"movie"`
	Targets []MovieTarget `json:"targets"`
}

// FramePresence lists the builds containing one frame number.
type FramePresence struct {
	Frame  int      `json:"frame"`
	Builds []string `json:"builds"`
}

// MovieFrames is the frame presence table of one movie in one target.
type MovieFrames struct {
	QueryID string          `json:"query_id"`
	Target  string          `json:"target"`
	Movie   string          `json:"movie"`
	Builds  []string        `json:"builds"`
	Frames  []FramePresence `json:"frames"`
}

// CompareRow is one frame of a two-build comparison. A frame on only one
// side has HasDiff set and carries only that side's image.
type CompareRow struct {
	Frame    int  `json:"frame"`
	InBuild1 bool `json:"in_build1"`
	InBuild2 bool `json:"in_build2"`
	HasDiff  bool `json:"has_diff"`
	Degraded bool `json:"degraded,omitempty"`
	// Image fields hold base64 data in Format when images were requested.
	Build1Image string `json:"build1_image,omitempty"`
	Build2Image string `json:"build2_image,omitempty"`
	DiffImage   string `json:"diff_image,omitempty"`
}

// CompareTable compares one movie frame by frame between two builds.
type CompareTable struct {
	QueryID string           `json:"query_id"`
	Target  string           `json:"target"`
	Build1  string           `json:"build1"`
	Build2  string           `json:"build2"`
	Movie   string           `json:"movie"`
	Format  imagediff.Format `json:"format"`
	Rows    []CompareRow     `json:"rows"`
}

// Changed counts rows flagged as different.
func (c CompareTable) Changed() int {
	n := 0
	for _, row := range c.Rows {
		if row.HasDiff {
			n++
		}
	}
	return n
}

// FrameDiff is the full visualization of one frame between two builds.
type FrameDiff struct {
	QueryID  string           `json:"query_id"`
	Target   string           `json:"target"`
	Build1   string           `json:"build1"`
	Build2   string           `json:"build2"`
	Movie    string           `json:"movie"`
	Frame    int              `json:"frame"`
	Degraded bool             `json:"degraded,omitempty"`
	Result   imagediff.Result `json:"result"`
}
