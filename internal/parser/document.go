package parser

import "strings"

// Document is a file split into lines, remembering the file-level line ending.
type Document struct {
	Lines []string
	// LineEnding is "\r\n" when the file uses CRLF anywhere, "\n" otherwise.
	LineEnding string
}

// SplitDocument splits text into lines without their endings. A trailing line
// ending yields a final empty line so Join restores it.
func SplitDocument(text string) Document {
	ending := "\n"
	if strings.Contains(text, "\r\n") {
		ending = "\r\n"
	}
	lines := strings.Split(text, "\n")
	if ending == "\r\n" {
		for i, l := range lines {
			lines[i] = strings.TrimSuffix(l, "\r")
		}
	}
	return Document{Lines: lines, LineEnding: ending}
}

// Join reassembles lines with the document's line ending.
func (d Document) Join(lines []string) string {
	return strings.Join(lines, d.LineEnding)
}

// Parse classifies every line of the document.
func (d Document) Parse() []Line {
	out := make([]Line, len(d.Lines))
	for i, raw := range d.Lines {
		out[i] = Classify(raw)
	}
	return out
}
