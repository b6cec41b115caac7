package dictionary

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"unit-translator/internal/glossary"
)

// Dictionary is the directional lookup built once from a glossary. It is never
// mutated after Build and is safe to share across goroutines.
type Dictionary struct {
	direction Direction
	sections  map[string]string
	keys      map[string]string
	literals  map[string]string

	// priority holds key-map terms longest first; byFirst indexes the same
	// order by leading rune for the free-text scanner.
	priority []string
	byFirst  map[rune][]string
}

// Match records one free-text substitution.
type Match struct {
	Term        string
	Replacement string
}

// Build populates the three role maps for the given direction and derives the
// longest-match-first priority list for the key map. Later entries shadow earlier ones.
func Build(entries []glossary.Entry, dir Direction) *Dictionary {
	d := &Dictionary{
		direction: dir,
		sections:  make(map[string]string),
		keys:      make(map[string]string),
		literals:  make(map[string]string),
		byFirst:   make(map[rune][]string),
	}

	for _, e := range entries {
		from, to := e.Source, e.Target
		if dir == Reverse {
			from, to = to, from
		}
		switch e.Role {
		case glossary.RoleSection:
			d.sections[from] = to
		case glossary.RoleLiteral:
			d.literals[from] = to
		default:
			d.keys[from] = to
		}
	}

	for term, mapped := range d.keys {
		if term == mapped {
			continue
		}
		d.priority = append(d.priority, term)
	}
	sort.Slice(d.priority, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(d.priority[i]), utf8.RuneCountInString(d.priority[j])
		if li != lj {
			return li > lj
		}
		return d.priority[i] < d.priority[j]
	})
	for _, term := range d.priority {
		r, _ := utf8.DecodeRuneInString(term)
		d.byFirst[r] = append(d.byFirst[r], term)
	}

	return d
}

// Identity returns a dictionary that translates nothing.
func Identity(dir Direction) *Dictionary {
	return Build(nil, dir)
}

func (d *Dictionary) Direction() Direction { return d.direction }

// Section looks up a section name.
func (d *Dictionary) Section(name string) (string, bool) {
	v, ok := d.sections[name]
	return v, ok
}

// Key looks up a key name.
func (d *Dictionary) Key(name string) (string, bool) {
	v, ok := d.keys[name]
	return v, ok
}

// Literal looks up a whole reserved value token.
func (d *Dictionary) Literal(value string) (string, bool) {
	v, ok := d.literals[value]
	return v, ok
}

// Len returns the size of the map for role.
func (d *Dictionary) Len(role glossary.Role) int {
	switch role {
	case glossary.RoleSection:
		return len(d.sections)
	case glossary.RoleLiteral:
		return len(d.literals)
	default:
		return len(d.keys)
	}
}

// Priority returns a copy of the free-text substitution order.
func (d *Dictionary) Priority() []string {
	out := make([]string, len(d.priority))
	copy(out, d.priority)
	return out
}

// Substitute replaces every non-overlapping, boundary-delimited occurrence of a
// key term inside text in a single left-to-right pass. At each position the
// longest term wins and replaced text is not rescanned.
func (d *Dictionary) Substitute(text string) (string, []Match) {
	if len(d.priority) == 0 || text == "" {
		return text, nil
	}

	var (
		b       strings.Builder
		matches []Match
		prev    = rune(-1)
		last    int
	)
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if !isIdentRune(prev) {
			if term, ok := d.matchAt(text, i, r); ok {
				replacement := d.keys[term]
				b.WriteString(text[last:i])
				b.WriteString(replacement)
				matches = append(matches, Match{Term: term, Replacement: replacement})
				i += len(term)
				last = i
				prev, _ = utf8.DecodeLastRuneInString(term)
				continue
			}
		}
		prev = r
		i += size
	}

	if len(matches) == 0 {
		return text, nil
	}
	b.WriteString(text[last:])
	return b.String(), matches
}

// matchAt returns the highest-priority term starting at i whose end is not
// followed by an identifier character.
func (d *Dictionary) matchAt(text string, i int, first rune) (string, bool) {
	rest := text[i:]
	for _, term := range d.byFirst[first] {
		if !strings.HasPrefix(rest, term) {
			continue
		}
		if end := len(term); end < len(rest) {
			next, _ := utf8.DecodeRuneInString(rest[end:])
			if isIdentRune(next) {
				continue
			}
		}
		return term, true
	}
	return "", false
}

// isIdentRune reports whether r joins with neighbouring text into one token.
// Underscore is a separator in this dialect, so `running_fast` isolates `running`.
func isIdentRune(r rune) bool {
	return r >= 0 && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
