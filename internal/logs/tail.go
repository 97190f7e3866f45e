package logs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Snapshot is a batch of log lines and the file offset just past them.
type Snapshot struct {
	Lines  []string
	Offset int64
}

// Last returns up to n trailing complete lines of path. A missing file yields
// an empty snapshot at offset zero.
func Last(path string, n int) (Snapshot, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return Snapshot{}, err
	}
	defer file.Close()

	if n <= 0 {
		return Snapshot{Offset: completeOffset(file, size)}, nil
	}

	ring := make([]string, 0, n)
	var consumed int64
	reader := bufio.NewReaderSize(file, 64*1024)
	for {
		line, err := reader.ReadString('\n')
		if err == io.EOF {
			break
		}
		if err != nil {
			return Snapshot{}, fmt.Errorf("read log file: %w", err)
		}
		consumed += int64(len(line))
		if len(ring) == n {
			ring = append(ring[:0], ring[1:]...)
		}
		ring = append(ring, trimEOL(line))
	}
	return Snapshot{Lines: ring, Offset: consumed}, nil
}

// From returns the complete lines written at or after offset.
func From(path string, offset int64) (Snapshot, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return Snapshot{}, err
	}
	defer file.Close()

	if offset < 0 || offset > size {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Snapshot{Offset: offset}, fmt.Errorf("seek log file: %w", err)
	}
	data, err := io.ReadAll(io.LimitReader(file, size-offset))
	if err != nil {
		return Snapshot{Offset: offset}, fmt.Errorf("read log file: %w", err)
	}

	end := bytes.LastIndexByte(data, '\n')
	if end < 0 {
		return Snapshot{Offset: offset}, nil
	}
	var lines []string
	for _, line := range bytes.Split(data[:end], []byte{'\n'}) {
		lines = append(lines, trimEOL(string(line)))
	}
	return Snapshot{Lines: lines, Offset: offset + int64(end) + 1}, nil
}

// Follow polls path every interval starting at offset and calls emit for each
// new line. It returns nil once ctx is cancelled.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, emit func(string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		snap, err := From(path, offset)
		if err != nil {
			return err
		}
		for _, line := range snap.Lines {
			emit(line)
		}
		offset = snap.Offset

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func open(path string) (*os.File, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open log file: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat log file: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("log path %q is a directory", path)
	}
	return file, info.Size(), nil
}

// completeOffset returns the offset just past the last newline in the first
// size bytes of file.
func completeOffset(file *os.File, size int64) int64 {
	const chunk = 4096
	buf := make([]byte, chunk)
	for end := size; end > 0; {
		start := end - chunk
		if start < 0 {
			start = 0
		}
		n, err := file.ReadAt(buf[:end-start], start)
		if err != nil && err != io.EOF {
			return 0
		}
		if i := bytes.LastIndexByte(buf[:n], '\n'); i >= 0 {
			return start + int64(i) + 1
		}
		end = start
	}
	return 0
}

func trimEOL(line string) string {
	return strings.TrimRight(line, "\r\n")
}
