package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"unit-translator/internal/integrity"
	"unit-translator/internal/rewriter"

	"github.com/fatih/color"
)

const rule = "============================================================"

// Printer renders conflict reports and run statistics for humans.
type Printer struct {
	w       io.Writer
	heading func(a ...interface{}) string
	warn    func(a ...interface{}) string
	ok      func(a ...interface{}) string
	dim     func(a ...interface{}) string
}

// NewPrinter writes to w; colored enables ANSI styling.
func NewPrinter(w io.Writer, colored bool) *Printer {
	styles := []*color.Color{
		color.New(color.Bold, color.FgCyan),
		color.New(color.Bold, color.FgYellow),
		color.New(color.FgGreen),
		color.New(color.Faint),
	}
	for _, c := range styles {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return &Printer{
		w:       w,
		heading: styles[0].SprintFunc(),
		warn:    styles[1].SprintFunc(),
		ok:      styles[2].SprintFunc(),
		dim:     styles[3].SprintFunc(),
	}
}

// Conflicts prints duplicate sources in earliest-line order and duplicate
// targets by term, each with every contributing line.
func (p *Printer) Conflicts(r *integrity.Report) {
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, p.heading("Glossary integrity check"))
	fmt.Fprintln(p.w, rule)
	if r.Path != "" {
		fmt.Fprintf(p.w, "Glossary: %s\n", r.Path)
	}
	if r.Strict {
		fmt.Fprintln(p.w, p.dim("[strict] section/key homonyms count as duplicates"))
	}
	fmt.Fprintf(p.w, "\nTotal terms: %d\n", r.Terms)
	fmt.Fprintf(p.w, "Duplicate sources: %d\n", len(r.DuplicateSources))
	fmt.Fprintf(p.w, "Duplicate targets: %d\n", len(r.DuplicateTargets))

	if sources := r.SourceConflicts(); len(sources) > 0 {
		fmt.Fprintln(p.w, "\n"+rule)
		fmt.Fprintln(p.w, p.warn("Duplicate source terms:"))
		fmt.Fprintln(p.w, rule)
		for _, c := range sources {
			fmt.Fprintf(p.w, "\n  Term: %s\n", c.Term)
			fmt.Fprintf(p.w, "  Lines: %s\n", joinInts(c.Lines()))
		}
	}

	if targets := r.TargetConflicts(); len(targets) > 0 {
		fmt.Fprintln(p.w, "\n"+rule)
		fmt.Fprintln(p.w, p.warn("Duplicate target terms (reverse translation is lossy):"))
		fmt.Fprintln(p.w, rule)
		for _, c := range targets {
			fmt.Fprintf(p.w, "\n  Target: %s\n", c.Term)
			fmt.Fprintln(p.w, "  Sources:")
			for _, o := range c.Occurrences {
				fmt.Fprintf(p.w, "    - [%s] %s (line %d)\n", o.Role, o.Source, o.Line)
			}
		}
	}

	if !r.HasConflicts() {
		fmt.Fprintln(p.w, "\n"+p.ok("✓ No duplicates found"))
	}
	fmt.Fprintln(p.w, "\n"+rule)
}

// Stats prints the aggregate counters of a translation run.
func (p *Printer) Stats(s rewriter.Stats) {
	fmt.Fprintln(p.w, rule)
	fmt.Fprintln(p.w, p.heading("Translation summary"))
	fmt.Fprintln(p.w, rule)
	fmt.Fprintf(p.w, "  Files processed:      %d\n", s.FilesProcessed)
	skipped := strconv.Itoa(s.FilesSkipped)
	if s.FilesSkipped > 0 {
		skipped = p.warn(skipped)
	}
	fmt.Fprintf(p.w, "  Files skipped:        %s\n", skipped)
	fmt.Fprintf(p.w, "  Sections translated:  %d\n", s.SectionsTranslated)
	fmt.Fprintf(p.w, "  Keys translated:      %d\n", s.KeysTranslated)
	fmt.Fprintf(p.w, "  Literals translated:  %d\n", s.LiteralsTranslated)
	fmt.Fprintf(p.w, "  Text substitutions:   %d\n", s.TextTranslated)
	fmt.Fprintf(p.w, "  Lines changed:        %d\n", s.LinesChanged)
	fmt.Fprintln(p.w, rule)
}

func joinInts(ns []int) string {
	parts := make([]string, len(ns))
	for i, n := range ns {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
