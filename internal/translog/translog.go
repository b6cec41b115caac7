package translog

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"unit-translator/internal/rewriter"
	"unit-translator/internal/textutil"

	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"
)

// Record is one applied substitution with its provenance.
type Record struct {
	Kind   string `json:"type" yaml:"type"`
	Source string `json:"source" yaml:"source"`
	Target string `json:"target" yaml:"target"`
	File   string `json:"file" yaml:"file"`
}

// Hash identifies the record's (kind, source, target, file) tuple.
func (r Record) Hash() string {
	return textutil.Hash(r.Kind, r.Source, r.Target, r.File)
}

// Aggregate is a distinct record with its number of occurrences.
type Aggregate struct {
	Record      `yaml:",inline"`
	Hash        string `json:"hash" yaml:"hash"`
	Occurrences int    `json:"occurrences" yaml:"occurrences"`
}

// Log collects the substitutions of one run. It is filled by the caller after
// each file completes and is not safe for concurrent writers.
type Log struct {
	RunID     string
	Direction string
	records   []Record
}

// New creates an empty log for runID.
func New(runID, direction string) *Log {
	return &Log{RunID: runID, Direction: direction}
}

// Add appends the substitutions made in file.
func (l *Log) Add(file string, subs []rewriter.Substitution) {
	for _, s := range subs {
		l.records = append(l.records, Record{
			Kind:   string(s.Kind),
			Source: s.Source,
			Target: s.Target,
			File:   file,
		})
	}
}

// Records returns all records in insertion order.
func (l *Log) Records() []Record {
	out := make([]Record, len(l.records))
	copy(out, l.records)
	return out
}

// Len returns the number of records.
func (l *Log) Len() int { return len(l.records) }

// CountByKind tallies records per substitution kind.
func (l *Log) CountByKind() map[string]int {
	counts := make(map[string]int)
	for _, r := range l.records {
		counts[r.Kind]++
	}
	return counts
}

// Aggregates collapses identical records, keeping first-seen order.
func (l *Log) Aggregates() []Aggregate {
	index := make(map[string]int)
	var out []Aggregate
	for _, r := range l.records {
		h := r.Hash()
		if i, ok := index[h]; ok {
			out[i].Occurrences++
			continue
		}
		index[h] = len(out)
		out = append(out, Aggregate{Record: r, Hash: h, Occurrences: 1})
	}
	return out
}

// document is the export shape shared by JSON and YAML.
type document struct {
	RunID     string         `json:"run_id" yaml:"run_id"`
	Direction string         `json:"direction" yaml:"direction"`
	Counts    map[string]int `json:"counts" yaml:"counts"`
	Records   []Aggregate    `json:"records" yaml:"records"`
}

func (l *Log) document() document {
	records := l.Aggregates()
	sort.SliceStable(records, func(i, j int) bool { return records[i].Kind < records[j].Kind })
	return document{
		RunID:     l.RunID,
		Direction: l.Direction,
		Counts:    l.CountByKind(),
		Records:   records,
	}
}

// ExportJSON writes the log to outputPath.
func (l *Log) ExportJSON(outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create JSON file: %w", err)
	}
	defer f.Close()

	encoder := json.NewEncoder(f)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)

	if err := encoder.Encode(l.document()); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	log.Info().Str("path", outputPath).Int("records", len(l.records)).Msg("Exported translation log to JSON")
	return nil
}

// ExportYAML writes the log to outputPath.
func (l *Log) ExportYAML(outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("create YAML file: %w", err)
	}
	defer f.Close()

	encoder := yaml.NewEncoder(f)
	encoder.SetIndent(2)
	if err := encoder.Encode(l.document()); err != nil {
		return fmt.Errorf("encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return fmt.Errorf("flush YAML: %w", err)
	}

	log.Info().Str("path", outputPath).Int("records", len(l.records)).Msg("Exported translation log to YAML")
	return nil
}
