package rewriter

// SubstitutionKind names which map produced a substitution.
type SubstitutionKind string

const (
	KindSection SubstitutionKind = "section"
	KindKey     SubstitutionKind = "key"
	KindLiteral SubstitutionKind = "literal"
	KindText    SubstitutionKind = "text"
)

// Substitution is one applied glossary replacement.
type Substitution struct {
	Kind   SubstitutionKind
	Source string
	Target string
}

// Stats is an accumulator value: operations return one and callers merge them.
type Stats struct {
	FilesProcessed     int `json:"files_processed" yaml:"files_processed"`
	FilesSkipped       int `json:"files_skipped" yaml:"files_skipped"`
	SectionsTranslated int `json:"sections_translated" yaml:"sections_translated"`
	KeysTranslated     int `json:"keys_translated" yaml:"keys_translated"`
	LiteralsTranslated int `json:"literals_translated" yaml:"literals_translated"`
	TextTranslated     int `json:"text_translated" yaml:"text_translated"`
	LinesChanged       int `json:"lines_changed" yaml:"lines_changed"`
}

// Merge returns the sum of s and o.
func (s Stats) Merge(o Stats) Stats {
	return Stats{
		FilesProcessed:     s.FilesProcessed + o.FilesProcessed,
		FilesSkipped:       s.FilesSkipped + o.FilesSkipped,
		SectionsTranslated: s.SectionsTranslated + o.SectionsTranslated,
		KeysTranslated:     s.KeysTranslated + o.KeysTranslated,
		LiteralsTranslated: s.LiteralsTranslated + o.LiteralsTranslated,
		TextTranslated:     s.TextTranslated + o.TextTranslated,
		LinesChanged:       s.LinesChanged + o.LinesChanged,
	}
}

// Substitutions is the total number of replacements counted in s.
func (s Stats) Substitutions() int {
	return s.SectionsTranslated + s.KeysTranslated + s.LiteralsTranslated + s.TextTranslated
}

func statsOf(subs []Substitution) Stats {
	var s Stats
	for _, sub := range subs {
		switch sub.Kind {
		case KindSection:
			s.SectionsTranslated++
		case KindKey:
			s.KeysTranslated++
		case KindLiteral:
			s.LiteralsTranslated++
		case KindText:
			s.TextTranslated++
		}
	}
	return s
}
