package parser

// Kind classifies a single line of the configuration dialect.
type Kind int

const (
	KindBlank Kind = iota
	KindComment
	KindSection
	KindKeyValue
	// KindUnrecognized lines match neither grammar and pass through unchanged.
	KindUnrecognized
)

func (k Kind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindComment:
		return "comment"
	case KindSection:
		return "section"
	case KindKeyValue:
		return "key-value"
	default:
		return "unrecognized"
	}
}

// Line is the transient parse of one input line. Only the fields relevant to
// Kind are set. String reassembles the line, so callers translate by replacing
// Name, Key or Value on a copy.
type Line struct {
	Kind Kind
	// Raw is the line without its line ending.
	Raw string
	// Indent is the leading whitespace of section and key-value lines.
	Indent string

	// Name is the bracket interior, minus any comment.
	Name string

	// Key is the trimmed key; KeyPad is the whitespace between key and separator.
	Key       string
	KeyPad    string
	Separator string
	// ValuePad is the whitespace after the separator; Value is trimmed.
	ValuePad string
	Value    string

	// Trailing is whitespace after `]` or after the value.
	Trailing string
	// Comment starts with '#'. For sections it was found inside the brackets.
	Comment string
	// TailComment is a section comment written after `]`, kept verbatim.
	TailComment string
}

// HasComment reports whether the line carries a trailing comment.
func (l Line) HasComment() bool {
	return l.Comment != "" || l.TailComment != ""
}
