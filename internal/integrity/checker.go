package integrity

import (
	"fmt"
	"os"
	"sort"

	"unit-translator/internal/glossary"
)

// Options controls which collisions count as conflicts.
type Options struct {
	// IgnoreSectionKeyHomonym exempts a group made of exactly one Section entry
	// and one flat entry sharing a term. Disabling it is strict mode.
	IgnoreSectionKeyHomonym bool
}

// DefaultOptions returns the non-strict policy.
func DefaultOptions() Options {
	return Options{IgnoreSectionKeyHomonym: true}
}

// Occurrence locates one glossary entry taking part in a conflict.
type Occurrence struct {
	Source string        `json:"source" yaml:"source"`
	Target string        `json:"target" yaml:"target"`
	Line   int           `json:"line" yaml:"line"`
	Role   glossary.Role `json:"role" yaml:"role"`
}

// Conflict groups every occurrence of a colliding term, ordered by line.
type Conflict struct {
	Term        string       `json:"term" yaml:"term"`
	Occurrences []Occurrence `json:"occurrences" yaml:"occurrences"`
}

// FirstLine is the line of the earliest occurrence.
func (c Conflict) FirstLine() int {
	if len(c.Occurrences) == 0 {
		return 0
	}
	return c.Occurrences[0].Line
}

// Lines returns the line numbers of all occurrences.
func (c Conflict) Lines() []int {
	lines := make([]int, len(c.Occurrences))
	for i, o := range c.Occurrences {
		lines[i] = o.Line
	}
	return lines
}

// Report is the advisory result of a glossary integrity check.
type Report struct {
	Path string `json:"path,omitempty" yaml:"path,omitempty"`
	// Entries counts recognized glossary lines; Terms counts distinct sources.
	Entries int  `json:"entries" yaml:"entries"`
	Terms   int  `json:"terms" yaml:"terms"`
	Strict  bool `json:"strict" yaml:"strict"`
	// DuplicateSources maps a source term to every entry defining it.
	DuplicateSources map[string][]Occurrence `json:"-" yaml:"-"`
	// DuplicateTargets maps a target term to every entry reaching it.
	DuplicateTargets map[string][]Occurrence `json:"-" yaml:"-"`
}

// HasConflicts reports whether any duplicate was found.
func (r *Report) HasConflicts() bool {
	return len(r.DuplicateSources) > 0 || len(r.DuplicateTargets) > 0
}

// SourceConflicts returns duplicate sources ordered by their earliest line.
func (r *Report) SourceConflicts() []Conflict {
	out := toConflicts(r.DuplicateSources)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FirstLine() != out[j].FirstLine() {
			return out[i].FirstLine() < out[j].FirstLine()
		}
		return out[i].Term < out[j].Term
	})
	return out
}

// TargetConflicts returns duplicate targets ordered by term.
func (r *Report) TargetConflicts() []Conflict {
	out := toConflicts(r.DuplicateTargets)
	sort.Slice(out, func(i, j int) bool { return out[i].Term < out[j].Term })
	return out
}

// IsAmbiguousTarget reports whether reverse translation of term is lossy.
func (r *Report) IsAmbiguousTarget(term string) bool {
	_, ok := r.DuplicateTargets[term]
	return ok
}

func toConflicts(m map[string][]Occurrence) []Conflict {
	out := make([]Conflict, 0, len(m))
	for term, occ := range m {
		out = append(out, Conflict{Term: term, Occurrences: occ})
	}
	return out
}

// Check scans entries for duplicate sources and duplicate targets.
func Check(entries []glossary.Entry, opts Options) *Report {
	bySource := make(map[string][]Occurrence)
	byTarget := make(map[string][]Occurrence)
	var sourceOrder, targetOrder []string

	for _, e := range entries {
		occ := Occurrence{Source: e.Source, Target: e.Target, Line: e.Line, Role: e.Role}
		if _, seen := bySource[e.Source]; !seen {
			sourceOrder = append(sourceOrder, e.Source)
		}
		bySource[e.Source] = append(bySource[e.Source], occ)
		if _, seen := byTarget[e.Target]; !seen {
			targetOrder = append(targetOrder, e.Target)
		}
		byTarget[e.Target] = append(byTarget[e.Target], occ)
	}

	report := &Report{
		Entries:          len(entries),
		Terms:            len(bySource),
		Strict:           !opts.IgnoreSectionKeyHomonym,
		DuplicateSources: make(map[string][]Occurrence),
		DuplicateTargets: make(map[string][]Occurrence),
	}

	for _, term := range sourceOrder {
		occ := bySource[term]
		if len(occ) < 2 {
			continue
		}
		if opts.IgnoreSectionKeyHomonym && isHomonymPair(occ) {
			continue
		}
		report.DuplicateSources[term] = sortByLine(occ)
	}

	for _, term := range targetOrder {
		occ := byTarget[term]
		if distinctSources(occ) < 2 {
			continue
		}
		if opts.IgnoreSectionKeyHomonym && isHomonymPair(occ) {
			continue
		}
		report.DuplicateTargets[term] = sortByLine(occ)
	}

	return report
}

// CheckText re-scans raw glossary text.
func CheckText(text string, opts Options) *Report {
	return Check(glossary.ParseString(text), opts)
}

// CheckFile re-scans the glossary document at path.
func CheckFile(path string, opts Options) (*Report, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open glossary: %w", err)
	}
	defer f.Close()

	entries, err := glossary.Parse(f)
	if err != nil {
		return nil, err
	}
	report := Check(entries, opts)
	report.Path = path
	return report, nil
}

// isHomonymPair reports whether occ is exactly one Section entry and one flat entry.
func isHomonymPair(occ []Occurrence) bool {
	if len(occ) != 2 {
		return false
	}
	return (occ[0].Role == glossary.RoleSection) != (occ[1].Role == glossary.RoleSection)
}

func distinctSources(occ []Occurrence) int {
	seen := make(map[string]struct{}, len(occ))
	for _, o := range occ {
		seen[o.Source] = struct{}{}
	}
	return len(seen)
}

func sortByLine(occ []Occurrence) []Occurrence {
	out := make([]Occurrence, len(occ))
	copy(out, occ)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}
