package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
)

// Writer handles streaming output to a file or io.Writer.
// File output goes to a temporary file in the destination directory that
// is synced and renamed over the destination on Close, so an existing file
// is never left truncated.
type Writer struct {
	mu        sync.Mutex
	output    io.Writer
	count     int64
	done      bool
	closeFunc func() error
	abortFunc func() error
}

// NewWriter creates a new writer that writes to the specified output.
// Close and Abort do not close w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		output: w,
	}
}

// NewFileWriter creates a new writer that atomically replaces filename.
// The permission bits of an existing destination are preserved; new files
// are created with mode 0644. The caller must call Close to commit or
// Abort to discard.
func NewFileWriter(filename string) (*Writer, error) {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(filename); err == nil {
		if !info.Mode().IsRegular() {
			return nil, fmt.Errorf("output path %s is not a regular file", filename)
		}
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(filename)
	if dir == "" {
		dir = "."
	}
	file, err := os.CreateTemp(dir, "."+base+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}
	tmpName := file.Name()

	if err := file.Chmod(mode); err != nil {
		_ = file.Close()
		_ = os.Remove(tmpName)
		return nil, fmt.Errorf("failed to set output file mode: %w", err)
	}

	commit := func() error {
		if err := file.Sync(); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpName)
			return fmt.Errorf("failed to sync output file: %w", err)
		}
		if err := file.Close(); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("failed to close output file: %w", err)
		}
		if err := os.Rename(tmpName, filename); err != nil {
			_ = os.Remove(tmpName)
			return fmt.Errorf("failed to rename output file: %w", err)
		}
		return nil
	}

	discard := func() error {
		_ = file.Close()
		if err := os.Remove(tmpName); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to remove temporary output file: %w", err)
		}
		return nil
	}

	return &Writer{
		output:    file,
		closeFunc: commit,
		abortFunc: discard,
	}, nil
}

// Write writes p to the output.
func (w *Writer) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return 0, fmt.Errorf("write to closed output")
	}

	n, err := w.output.Write(p)
	w.count += int64(n)
	if err != nil {
		return n, fmt.Errorf("failed to write output: %w", err)
	}
	return n, nil
}

// Count returns the number of bytes written.
func (w *Writer) Count() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.count
}

// Close commits the output. For file writers this renames the temporary
// file over the destination.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return nil
	}
	w.done = true

	if w.closeFunc != nil {
		return w.closeFunc()
	}
	return nil
}

// Abort discards the output. For file writers the destination is left
// untouched.
func (w *Writer) Abort() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.done {
		return nil
	}
	w.done = true

	if w.abortFunc != nil {
		return w.abortFunc()
	}
	return nil
}
