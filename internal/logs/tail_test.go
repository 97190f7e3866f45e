package logs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"framediff/internal/logs"
)

func writeLog(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write log: %v", err)
	}
}

func appendLog(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		t.Fatalf("open log: %v", err)
	}
	defer f.Close()
	if _, err := f.WriteString(content); err != nil {
		t.Fatalf("append log: %v", err)
	}
}

func TestLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framediff.log")
	writeLog(t, path, "a\nb\nc\npartial")

	snap, err := logs.Last(path, 2)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(snap.Lines) != 2 || snap.Lines[0] != "b" || snap.Lines[1] != "c" {
		t.Fatalf("unexpected lines: %#v", snap.Lines)
	}
	if snap.Offset != int64(len("a\nb\nc\n")) {
		t.Fatalf("expected offset to stop before the partial line, got %d", snap.Offset)
	}

	none, err := logs.Last(path, 0)
	if err != nil {
		t.Fatalf("Last(0): %v", err)
	}
	if len(none.Lines) != 0 || none.Offset != snap.Offset {
		t.Fatalf("unexpected zero-limit snapshot %+v", none)
	}
}

func TestLastMissingFile(t *testing.T) {
	snap, err := logs.Last(filepath.Join(t.TempDir(), "missing.log"), 5)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	if len(snap.Lines) != 0 || snap.Offset != 0 {
		t.Fatalf("expected empty snapshot, got %+v", snap)
	}
}

func TestFromOffsetAndRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framediff.log")
	writeLog(t, path, "one\n")

	snap, err := logs.Last(path, 10)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}
	appendLog(t, path, "two\nthr")

	next, err := logs.From(path, snap.Offset)
	if err != nil {
		t.Fatalf("From: %v", err)
	}
	if len(next.Lines) != 1 || next.Lines[0] != "two" {
		t.Fatalf("unexpected lines: %#v", next.Lines)
	}

	writeLog(t, path, "new\n")
	rotated, err := logs.From(path, next.Offset)
	if err != nil {
		t.Fatalf("From after rotation: %v", err)
	}
	if len(rotated.Lines) != 1 || rotated.Lines[0] != "new" {
		t.Fatalf("expected rotated file read from start, got %#v", rotated.Lines)
	}
}

func TestFollow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framediff.log")
	writeLog(t, path, "start\n")
	snap, err := logs.Last(path, 1)
	if err != nil {
		t.Fatalf("Last: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var got []string
	done := make(chan error, 1)
	go func() {
		done <- logs.Follow(ctx, path, snap.Offset, 10*time.Millisecond, func(line string) {
			mu.Lock()
			got = append(got, line)
			mu.Unlock()
		})
	}()

	time.Sleep(30 * time.Millisecond)
	appendLog(t, path, "later\n")

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n > 0 {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Follow: %v", err)
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0] != "later" {
		t.Fatalf("unexpected followed lines: %#v", got)
	}
}
