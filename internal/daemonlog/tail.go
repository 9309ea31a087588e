package daemonlog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"
)

const maxLineBytes = 1024 * 1024

// Chunk is a batch of lines and the byte offset just past the last one.
type Chunk struct {
	Lines  []string
	Offset int64
}

// Last returns up to n trailing complete lines. A missing file yields an
// empty chunk at offset 0.
func Last(path string, n int) (Chunk, error) {
	file, _, err := open(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	if n <= 0 {
		offset, err := scanLines(file, func(string) {})
		if err != nil {
			return Chunk{}, err
		}
		return Chunk{Offset: offset}, nil
	}

	ring := make([]string, n)
	count, idx := 0, 0
	offset, err := scanLines(file, func(line string) {
		ring[idx] = line
		idx = (idx + 1) % n
		if count < n {
			count++
		}
	})
	if err != nil {
		return Chunk{}, err
	}

	lines := make([]string, count)
	if count == n {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%n]
		}
	} else {
		copy(lines, ring[:count])
	}
	return Chunk{Lines: lines, Offset: offset}, nil
}

// Since returns the complete lines written after offset. When the file is now
// shorter than offset it is read from the beginning.
func Since(path string, offset int64) (Chunk, error) {
	file, size, err := open(path)
	if err != nil || file == nil {
		return Chunk{}, err
	}
	defer file.Close()

	if offset < 0 || offset > size {
		offset = 0
	}
	if _, err := file.Seek(offset, io.SeekStart); err != nil {
		return Chunk{}, fmt.Errorf("seek daemon log: %w", err)
	}

	var lines []string
	read, err := scanLines(file, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		return Chunk{}, err
	}
	return Chunk{Lines: lines, Offset: offset + read}, nil
}

// Follow calls fn with each batch of new lines written after offset until
// ctx is done. It returns nil on cancellation.
func Follow(ctx context.Context, path string, offset int64, interval time.Duration, fn func([]string)) error {
	if interval <= 0 {
		interval = 250 * time.Millisecond
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		chunk, err := Since(path, offset)
		if err != nil {
			return err
		}
		if len(chunk.Lines) > 0 {
			fn(chunk.Lines)
		}
		offset = chunk.Offset

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
		if errors.Is(err, fs.ErrNotExist) {
			return nil, 0, nil
		}
		return nil, 0, fmt.Errorf("open daemon log: %w", err)
	}
	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, 0, fmt.Errorf("stat daemon log: %w", err)
	}
	if info.IsDir() {
		file.Close()
		return nil, 0, fmt.Errorf("daemon log %q is a directory", path)
	}
	return file, info.Size(), nil
}

// scanLines feeds every newline-terminated line in r to fn and reports how
// many bytes those lines occupied. A trailing partial line is left unread.
func scanLines(r io.Reader, fn func(string)) (int64, error) {
	br := bufio.NewReaderSize(r, 64*1024)
	var consumed int64
	for {
		line, err := br.ReadString('\n')
		if err == nil {
			consumed += int64(len(line))
			if len(line) > maxLineBytes {
				line = line[:maxLineBytes]
			}
			fn(strings.TrimRight(line, "\r\n"))
			continue
		}
		if errors.Is(err, io.EOF) {
			return consumed, nil
		}
		return consumed, fmt.Errorf("read daemon log: %w", err)
	}
}
