package rewriter

import (
	"strings"

	"unit-translator/internal/cache"
	"unit-translator/internal/dictionary"
	"unit-translator/internal/parser"
)

// ValueCache memoizes single-value translations within one run.
type ValueCache = cache.ValueCache[cachedValue]

type cachedValue struct {
	text string
	subs []Substitution
}

// NewCache creates a run-scoped value cache.
func NewCache() *ValueCache {
	return cache.NewValueCache[cachedValue]()
}

// Rewriter applies one directional dictionary to configuration text. It holds
// no per-file state and may be shared by concurrent workers.
type Rewriter struct {
	dict *dictionary.Dictionary
}

// New creates a rewriter over d. A nil dictionary behaves as identity.
func New(d *dictionary.Dictionary) *Rewriter {
	if d == nil {
		d = dictionary.Identity(dictionary.Forward)
	}
	return &Rewriter{dict: d}
}

func (r *Rewriter) Direction() dictionary.Direction { return r.dict.Direction() }

// Result is the outcome of rewriting one file's text.
type Result struct {
	Text          string
	Stats         Stats
	Substitutions []Substitution
}

// Changed reports whether any line was altered.
func (res Result) Changed() bool { return res.Stats.LinesChanged > 0 }

// Text rewrites a whole file, keeping its line-ending convention.
func (r *Rewriter) Text(text string, vc *ValueCache) Result {
	doc := parser.SplitDocument(text)
	out := make([]string, len(doc.Lines))

	var res Result
	for i, raw := range doc.Lines {
		translated, subs := r.Line(raw, vc)
		out[i] = translated
		if translated != raw {
			res.Stats.LinesChanged++
		}
		res.Substitutions = append(res.Substitutions, subs...)
	}

	counts := statsOf(res.Substitutions)
	counts.LinesChanged = res.Stats.LinesChanged
	res.Stats = counts
	res.Text = doc.Join(out)
	return res
}

// Line rewrites a single line given without its line ending.
func (r *Rewriter) Line(raw string, vc *ValueCache) (string, []Substitution) {
	l := parser.Classify(raw)
	switch l.Kind {
	case parser.KindSection:
		return r.section(l)
	case parser.KindKeyValue:
		return r.keyValue(l, vc)
	default:
		return raw, nil
	}
}

func (r *Rewriter) section(l parser.Line) (string, []Substitution) {
	name, ok := r.translateSection(l.Name)
	if !ok {
		return l.String(), nil
	}
	sub := Substitution{Kind: KindSection, Source: l.Name, Target: name}
	l.Name = name
	return l.String(), []Substitution{sub}
}

// translateSection tries the full name first, then the part before the first
// underscore; the suffix is a qualifier and is never translated.
func (r *Rewriter) translateSection(name string) (string, bool) {
	if t, ok := r.dict.Section(name); ok {
		return t, true
	}
	prefix, suffix, found := strings.Cut(name, "_")
	if !found {
		return name, false
	}
	if t, ok := r.dict.Section(prefix); ok {
		return t + "_" + suffix, true
	}
	return name, false
}

func (r *Rewriter) keyValue(l parser.Line, vc *ValueCache) (string, []Substitution) {
	var subs []Substitution
	if t, ok := r.dict.Key(l.Key); ok {
		subs = append(subs, Substitution{Kind: KindKey, Source: l.Key, Target: t})
		l.Key = t
	}

	value, valueSubs := r.Value(l.Value, vc)
	l.Value = value
	subs = append(subs, valueSubs...)
	return l.String(), subs
}

// Value translates a trimmed value. Comma lists are translated element-wise and
// rejoined with ", ".
func (r *Rewriter) Value(value string, vc *ValueCache) (string, []Substitution) {
	if !strings.Contains(value, ",") {
		return r.single(value, vc)
	}

	parts := strings.Split(value, ",")
	var subs []Substitution
	for i, part := range parts {
		translated, partSubs := r.single(strings.TrimSpace(part), vc)
		parts[i] = translated
		subs = append(subs, partSubs...)
	}
	return strings.Join(parts, ", "), subs
}

// single checks the literal map for an exact token, then substitutes key terms
// inside free-form text.
func (r *Rewriter) single(value string, vc *ValueCache) (string, []Substitution) {
	if value == "" {
		return value, nil
	}

	key := r.dict.Direction().String() + "\x00" + value
	if cv, ok := vc.Get(key); ok {
		return cv.text, cv.subs
	}

	var cv cachedValue
	if t, ok := r.dict.Literal(value); ok {
		cv = cachedValue{text: t, subs: []Substitution{{Kind: KindLiteral, Source: value, Target: t}}}
	} else {
		text, matches := r.dict.Substitute(value)
		cv.text = text
		for _, m := range matches {
			cv.subs = append(cv.subs, Substitution{Kind: KindText, Source: m.Term, Target: m.Replacement})
		}
	}

	vc.Set(key, cv)
	return cv.text, cv.subs
}
