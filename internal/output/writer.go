package output

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathInvalid is returned for relative paths that are empty, absolute, or escape the root.
var ErrPathInvalid = errors.New("invalid output path")

// Writer mirrors relative paths under an output root. Every write goes to a
// temporary file in the destination directory and is renamed into place only
// after a successful flush and sync, so a failed write never leaves a truncated file.
type Writer struct {
	root     string
	permFile os.FileMode
	permDir  os.FileMode
}

// New creates the output root if needed. Failing to create it is fatal for a run.
func New(root string) (*Writer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve output root: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("create output root: %w", err)
	}
	return &Writer{root: abs, permFile: 0o644, permDir: 0o755}, nil
}

// Root returns the absolute output root.
func (w *Writer) Root() string { return w.root }

// Path maps rel to its destination under the root.
func (w *Writer) Path(rel string) (string, error) {
	rel = filepath.Clean(rel)
	if rel == "." || rel == "" || filepath.IsAbs(rel) || filepath.VolumeName(rel) != "" {
		return "", ErrPathInvalid
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathInvalid
	}
	return filepath.Join(w.root, rel), nil
}

// Write stores data at rel and returns the destination path.
func (w *Writer) Write(rel string, data []byte) (string, error) {
	dest, err := w.Path(rel)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(dest), w.permDir); err != nil {
		return dest, fmt.Errorf("create output directory: %w", err)
	}
	if err := w.writeAtomic(dest, data); err != nil {
		return dest, fmt.Errorf("write %s: %w", dest, err)
	}
	return dest, nil
}

func (w *Writer) writeAtomic(dest string, data []byte) error {
	dir := filepath.Dir(dest)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	fail := func(err error) error {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}

	bw := bufio.NewWriter(tmp)
	if _, err := bw.Write(data); err != nil {
		return fail(err)
	}
	if err := bw.Flush(); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Chmod(w.permFile); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	syncDir(dir)
	return nil
}

// syncDir best-effort fsyncs a directory to persist the rename.
func syncDir(dir string) {
	f, err := os.Open(dir)
	if err != nil {
		return
	}
	defer f.Close()
	_ = f.Sync()
}
