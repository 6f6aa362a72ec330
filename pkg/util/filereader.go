package util

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/edsrzf/mmap-go"
)

// FileReader reads files via read-only memory mapping, falling back to
// os.ReadFile when mapping fails (special filesystems, exotic platforms).
//
// Token documents are read once and parsed, so mappings are short-lived:
// callers receive the mapped bytes together with a release func and must not
// retain the slice after calling release.
type FileReader struct {
	logger *slog.Logger

	statsMu sync.Mutex
	stats   FileReaderStats
}

// FileReaderStats tracks reader activity.
type FileReaderStats struct {
	FilesRead    int64
	BytesRead    int64
	MmapFailures int64
}

// NewFileReader builds a FileReader. A nil logger falls back to slog.Default.
func NewFileReader(logger *slog.Logger) *FileReader {
	if logger == nil {
		logger = slog.Default()
	}
	return &FileReader{logger: logger}
}

// ReadFile returns the file contents and a release func that must be called
// once the caller is done with the bytes. The returned slice may be a live
// memory mapping and must not be used after release.
func (r *FileReader) ReadFile(path string) ([]byte, func(), error) {
	noop := func() {}

	file, err := os.Open(path)
	if err != nil {
		return nil, noop, fmt.Errorf("open %q: %w", path, err)
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, noop, fmt.Errorf("stat %q: %w", path, err)
	}

	// Zero-length files cannot be mapped.
	if stat.Size() == 0 {
		file.Close()
		r.record(0, false)
		return nil, noop, nil
	}

	mapped, err := mmap.Map(file, mmap.RDONLY, 0)
	if err != nil {
		file.Close()
		r.logger.Warn("mmap failed, reading directly", "path", path, "error", err)

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, noop, fmt.Errorf("read %q: %w", path, readErr)
		}
		r.record(int64(len(data)), true)
		return data, noop, nil
	}

	release := func() {
		if err := mapped.Unmap(); err != nil {
			r.logger.Warn("unmap failed", "path", path, "error", err)
		}
		if err := file.Close(); err != nil {
			r.logger.Warn("close failed", "path", path, "error", err)
		}
	}
	r.record(stat.Size(), false)
	return mapped, release, nil
}

// Stats returns a snapshot of reader activity.
func (r *FileReader) Stats() FileReaderStats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

func (r *FileReader) record(n int64, mmapFailed bool) {
	r.statsMu.Lock()
	r.stats.FilesRead++
	r.stats.BytesRead += n
	if mmapFailed {
		r.stats.MmapFailures++
	}
	r.statsMu.Unlock()
}
