package browse

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"framediff/internal/archive"
)

// Entry kinds.
const (
	KindDirectory = "directory"
	KindFile      = "file"
)

// Entry is one item of a directory listing. Path is relative to the archive
// root and always uses forward slashes.
type Entry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Kind     string    `json:"type"`
	Bytes    int64     `json:"bytes"`
	Size     string    `json:"size"`
	Modified time.Time `json:"modified"`
	// Image is set for files the archive treats as frames.
	Image bool `json:"image,omitempty"`
}

// Crumb is one step of the path from the root to the listed directory.
type Crumb struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// Listing is the content of one directory.
type Listing struct {
	Dir         string  `json:"dir"`
	Parent      string  `json:"parent,omitempty"`
	Breadcrumbs []Crumb `json:"breadcrumbs"`
	Entries     []Entry `json:"entries"`
}

// List reads dir, relative to the archive root, sorted case-insensitively.
// Paths escaping the root fail with archive.ErrOutsideRoot.
func List(a *archive.Archive, dir string) (Listing, error) {
	rel := cleanRel(dir)
	abs, err := a.ResolveRelative(rel)
	if err != nil {
		return Listing{}, err
	}
	entries, err := os.ReadDir(abs)
	if err != nil {
		return Listing{}, fmt.Errorf("read directory %q: %w", rel, err)
	}

	listing := Listing{Dir: rel, Breadcrumbs: Breadcrumbs(rel)}
	if rel != "" {
		listing.Parent = parentOf(rel)
	}
	for _, entry := range entries {
		info, err := entry.Info()
		if err != nil {
			continue
		}
		item := Entry{
			Name:     entry.Name(),
			Path:     path.Join(rel, entry.Name()),
			Modified: info.ModTime(),
		}
		switch {
		case info.IsDir():
			item.Kind = KindDirectory
			item.Size = "-"
		case info.Mode().IsRegular():
			item.Kind = KindFile
			item.Bytes = info.Size()
			item.Size = HumanSize(info.Size())
			item.Image = isImage(a, entry.Name())
		default:
			continue
		}
		listing.Entries = append(listing.Entries, item)
	}
	sort.SliceStable(listing.Entries, func(i, j int) bool {
		return strings.ToLower(listing.Entries[i].Name) < strings.ToLower(listing.Entries[j].Name)
	})
	return listing, nil
}

// Breadcrumbs returns one crumb per path segment of rel.
func Breadcrumbs(rel string) []Crumb {
	rel = cleanRel(rel)
	if rel == "" {
		return nil
	}
	parts := strings.Split(rel, "/")
	crumbs := make([]Crumb, 0, len(parts))
	for i, part := range parts {
		crumbs = append(crumbs, Crumb{Name: part, Path: strings.Join(parts[:i+1], "/")})
	}
	return crumbs
}

// HumanSize formats a byte count with binary units, such as "1.5 KiB".
func HumanSize(n int64) string {
	if n < 0 {
		return "-" + humanize.IBytes(uint64(-n))
	}
	return humanize.IBytes(uint64(n))
}

func cleanRel(dir string) string {
	dir = strings.TrimPrefix(strings.TrimSpace(filepath.ToSlash(dir)), "/")
	if dir == "" {
		return ""
	}
	cleaned := path.Clean(dir)
	if cleaned == "." {
		return ""
	}
	return cleaned
}

func parentOf(rel string) string {
	parent := path.Dir(rel)
	if parent == "." {
		return ""
	}
	return parent
}

func isImage(a *archive.Archive, name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range a.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}
