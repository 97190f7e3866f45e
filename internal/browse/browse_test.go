package browse_test

import (
	"errors"
	"image/color"
	"path/filepath"
	"reflect"
	"testing"

	"framediff/internal/archive"
	"framediff/internal/browse"
	"framediff/internal/testsupport"
)

func TestHumanSize(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		512:     "512 B",
		1536:    "1.5 KiB",
		1 << 20: "1.0 MiB",
	}
	for in, want := range tests {
		if got := browse.HumanSize(in); got != want {
			t.Fatalf("HumanSize(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestBreadcrumbs(t *testing.T) {
	got := browse.Breadcrumbs("linux/20240101/")
	want := []browse.Crumb{
		{Name: "linux", Path: "linux"},
		{Name: "20240101", Path: "linux/20240101"},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected crumbs %+v", got)
	}
	if crumbs := browse.Breadcrumbs("."); crumbs != nil {
		t.Fatalf("expected no crumbs at root, got %+v", crumbs)
	}
}

func TestListSortsCaseInsensitively(t *testing.T) {
	fx := testsupport.NewArchive(t)
	fx.Frame("linux", "1", "b-1.png", color.White)
	fx.Frame("linux", "1", "A-1.png", color.White)
	testsupport.WriteFile(t, filepath.Join(fx.Root, "linux", "1", "notes.txt"), 1536)
	testsupport.MkdirAll(t, filepath.Join(fx.Root, "linux", "1", "Cache"))

	listing, err := browse.List(archive.New(fx.Root, archive.SplitFirst), "linux/1")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	var names []string
	for _, entry := range listing.Entries {
		names = append(names, entry.Name)
	}
	if !reflect.DeepEqual(names, []string{"A-1.png", "b-1.png", "Cache", "notes.txt"}) {
		t.Fatalf("unexpected order %v", names)
	}
	if listing.Parent != "linux" || len(listing.Breadcrumbs) != 2 {
		t.Fatalf("unexpected navigation %+v", listing)
	}

	cache, notes := listing.Entries[2], listing.Entries[3]
	if cache.Kind != browse.KindDirectory || cache.Size != "-" {
		t.Fatalf("unexpected directory entry %+v", cache)
	}
	if notes.Kind != browse.KindFile || notes.Size != "1.5 KiB" || notes.Image || notes.Path != "linux/1/notes.txt" {
		t.Fatalf("unexpected file entry %+v", notes)
	}
	if !listing.Entries[0].Image {
		t.Fatalf("expected png to be flagged as image: %+v", listing.Entries[0])
	}
}

func TestListRoot(t *testing.T) {
	fx := testsupport.NewArchive(t)
	fx.Build("linux", "1")

	listing, err := browse.List(archive.New(fx.Root, archive.SplitFirst), "")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if listing.Dir != "" || listing.Parent != "" || len(listing.Entries) != 1 {
		t.Fatalf("unexpected root listing %+v", listing)
	}
}

func TestListRejectsTraversal(t *testing.T) {
	fx := testsupport.NewArchive(t)
	if _, err := browse.List(archive.New(fx.Root, archive.SplitFirst), "../.."); !errors.Is(err, archive.ErrOutsideRoot) {
		t.Fatalf("expected ErrOutsideRoot, got %v", err)
	}
}
