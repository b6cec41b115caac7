package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"unit-translator/internal/integrity"

	"gopkg.in/yaml.v3"
)

// conflictDocument is the export shape of an integrity report.
type conflictDocument struct {
	Path             string               `json:"path,omitempty" yaml:"path,omitempty"`
	Entries          int                  `json:"entries" yaml:"entries"`
	Terms            int                  `json:"terms" yaml:"terms"`
	Strict           bool                 `json:"strict" yaml:"strict"`
	DuplicateSources []integrity.Conflict `json:"duplicate_sources" yaml:"duplicate_sources"`
	DuplicateTargets []integrity.Conflict `json:"duplicate_targets" yaml:"duplicate_targets"`
}

func newConflictDocument(r *integrity.Report) conflictDocument {
	return conflictDocument{
		Path:             r.Path,
		Entries:          r.Entries,
		Terms:            r.Terms,
		Strict:           r.Strict,
		DuplicateSources: r.SourceConflicts(),
		DuplicateTargets: r.TargetConflicts(),
	}
}

// ExportConflicts writes r to path as YAML (.yaml/.yml) or JSON (anything else).
func ExportConflicts(r *integrity.Report, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create report directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	doc := newConflictDocument(r)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(f)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode YAML: %w", err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("flush YAML: %w", err)
		}
	default:
		enc := json.NewEncoder(f)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode JSON: %w", err)
		}
	}
	return nil
}
