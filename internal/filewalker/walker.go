package filewalker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
)

// DefaultExtensions lists the file types translated by default.
var DefaultExtensions = []string{".ini", ".template"}

// DefaultExcludeDirs lists directory names never descended into.
var DefaultExcludeDirs = []string{".git", ".vscode", "__pycache__", "scripts", "翻译", "翻译结果"}

// Options selects which files a Walker yields.
type Options struct {
	// Extensions is the allow-list, matched case-insensitively.
	Extensions []string
	// ExcludeDirs are directory names skipped wherever they appear in the tree.
	ExcludeDirs []string
	// ExcludeFiles are base names skipped anywhere.
	ExcludeFiles []string
	// ExcludePaths are absolute directories skipped, e.g. an output root nested in the input.
	ExcludePaths []string
}

// DefaultOptions returns the default allow-list and exclusions.
func DefaultOptions() Options {
	return Options{
		Extensions:  append([]string(nil), DefaultExtensions...),
		ExcludeDirs: append([]string(nil), DefaultExcludeDirs...),
	}
}

// Walker traverses directories and selects translatable files.
type Walker struct {
	extensions   map[string]bool
	excludeDirs  map[string]bool
	excludeFiles map[string]bool
	excludePaths []string
}

// NewWalker creates a Walker from opts.
func NewWalker(opts Options) *Walker {
	w := &Walker{
		extensions:   make(map[string]bool),
		excludeDirs:  make(map[string]bool),
		excludeFiles: make(map[string]bool),
	}
	for _, ext := range opts.Extensions {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		w.extensions[ext] = true
	}
	for _, d := range opts.ExcludeDirs {
		w.excludeDirs[d] = true
	}
	for _, f := range opts.ExcludeFiles {
		w.excludeFiles[f] = true
	}
	for _, p := range opts.ExcludePaths {
		if abs, err := filepath.Abs(p); err == nil {
			w.excludePaths = append(w.excludePaths, abs)
		}
	}
	return w
}

// FileEntry represents a discovered file ready for processing.
type FileEntry struct {
	// Path is the absolute file path.
	Path string
	// RelPath is relative to the walk root and uses the OS separator.
	RelPath string
	Ext     string
}

// Accepts reports whether a file name passes the allow-list and name exclusions.
func (w *Walker) Accepts(name string) bool {
	if w.excludeFiles[filepath.Base(name)] {
		return false
	}
	return w.extensions[strings.ToLower(filepath.Ext(name))]
}

// Walk discovers all accepted files under root, sorted by relative path.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}

		if d.IsDir() {
			if path != root && (w.excludeDirs[d.Name()] || w.excludedPath(path)) {
				return filepath.SkipDir
			}
			return nil
		}

		if !w.Accepts(d.Name()) {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		entries = append(entries, FileEntry{
			Path:    path,
			RelPath: rel,
			Ext:     strings.ToLower(filepath.Ext(path)),
		})
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

func (w *Walker) excludedPath(path string) bool {
	for _, p := range w.excludePaths {
		if path == p {
			return true
		}
	}
	return false
}
