package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"framediff/internal/timeline"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset   = "\x1b[0m"
	ansiRed     = "\x1b[31m"
	ansiGreen   = "\x1b[32m"
	ansiYellow  = "\x1b[33m"
	ansiBlue    = "\x1b[34m"
	ansiMagenta = "\x1b[35m"
	ansiDim     = "\x1b[2m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

// renderVerdict formats a cell for matrix tables: the verdict label, the
// comparison baseline when it is not the previous build, and a "!" marker
// for degraded cells.
func renderVerdict(cell timeline.Cell, colorize bool) string {
	label := cell.Verdict.Label()
	switch {
	case cell.NoReference:
		label += " (no ref)"
	case cell.Reference != "":
		label += " ← " + cell.Reference
	}
	if cell.Verdict == timeline.ReAdded && cell.ReferenceChanged {
		label += " *"
	}
	if cell.Degraded {
		label += " !"
	}
	if colorize {
		if color := verdictColor(cell.Verdict); color != "" {
			return color + label + ansiReset
		}
	}
	return label
}

func verdictColor(v timeline.Verdict) string {
	switch v {
	case timeline.Changed:
		return ansiRed
	case timeline.PartialChanged:
		return ansiYellow
	case timeline.Unchanged:
		return ansiGreen
	case timeline.FirstSeen:
		return ansiBlue
	case timeline.ReAdded:
		return ansiMagenta
	case timeline.Missing, timeline.Unknown:
		return ansiDim
	default:
		return ""
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
