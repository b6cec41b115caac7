package parser

import (
	"regexp"
	"strings"
)

// sectionPattern matches `[name]`, optionally followed by a comment after the bracket.
var sectionPattern = regexp.MustCompile(`^(\s*)\[([^\]]+)\](\s*)(#.*)?$`)

// keyValuePattern splits `key: value` / `key=value`. The key stops at the first
// ':', '=' or '#', and may not start with '['.
var keyValuePattern = regexp.MustCompile(`^(\s*)([^:=#\[\s][^:=#\[]*?)(\s*)([:=])(.*)$`)

// recognizer reports whether raw belongs to its kind and, if so, its parse.
type recognizer func(raw string) (Line, bool)

var recognizers = []recognizer{
	recognizeBlank,
	recognizeComment,
	recognizeSection,
	recognizeKeyValue,
}

// Classify parses one line (without line ending).
func Classify(raw string) Line {
	for _, recognize := range recognizers {
		if l, ok := recognize(raw); ok {
			return l
		}
	}
	return Line{Kind: KindUnrecognized, Raw: raw}
}

func recognizeBlank(raw string) (Line, bool) {
	if strings.TrimSpace(raw) != "" {
		return Line{}, false
	}
	return Line{Kind: KindBlank, Raw: raw}, true
}

func recognizeComment(raw string) (Line, bool) {
	if !strings.HasPrefix(strings.TrimSpace(raw), "#") {
		return Line{}, false
	}
	return Line{Kind: KindComment, Raw: raw}, true
}

func recognizeSection(raw string) (Line, bool) {
	m := sectionPattern.FindStringSubmatch(raw)
	if m == nil {
		return Line{}, false
	}

	l := Line{
		Kind:        KindSection,
		Raw:         raw,
		Indent:      m[1],
		Name:        m[2],
		Trailing:    m[3],
		TailComment: m[4],
	}
	if name, comment, found := strings.Cut(l.Name, "#"); found {
		l.Name = strings.TrimSpace(name)
		l.Comment = "#" + comment
	}
	return l, true
}

func recognizeKeyValue(raw string) (Line, bool) {
	m := keyValuePattern.FindStringSubmatch(raw)
	if m == nil {
		return Line{}, false
	}

	l := Line{
		Kind:      KindKeyValue,
		Raw:       raw,
		Indent:    m[1],
		Key:       m[2],
		KeyPad:    m[3],
		Separator: m[4],
	}

	value := m[5]
	if v, comment, found := strings.Cut(value, "#"); found {
		value = v
		l.Comment = "#" + comment
	}
	trimmedLeft := strings.TrimLeft(value, " \t")
	l.ValuePad = value[:len(value)-len(trimmedLeft)]
	l.Value = strings.TrimRight(trimmedLeft, " \t")
	l.Trailing = trimmedLeft[len(l.Value):]
	return l, true
}

// String reassembles the line. Blank, comment and unrecognized lines are
// returned unchanged.
func (l Line) String() string {
	switch l.Kind {
	case KindSection:
		return l.Indent + "[" + l.Name + "]" + l.Trailing + l.Comment + l.TailComment
	case KindKeyValue:
		var b strings.Builder
		b.WriteString(l.Indent)
		b.WriteString(l.Key)
		b.WriteString(l.KeyPad)
		b.WriteString(l.Separator)
		b.WriteString(l.ValuePad)
		b.WriteString(l.Value)
		switch {
		case l.Comment == "":
			b.WriteString(l.Trailing)
		case l.Value != "":
			b.WriteString(" ")
			b.WriteString(l.Comment)
		default:
			b.WriteString(l.Comment)
		}
		return b.String()
	default:
		return l.Raw
	}
}
