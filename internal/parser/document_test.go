package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitDocument(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		lines  []string
		ending string
	}{
		{"lf", "a\nb", []string{"a", "b"}, "\n"},
		{"lf trailing", "a\nb\n", []string{"a", "b", ""}, "\n"},
		{"crlf", "a\r\nb\r\n", []string{"a", "b", ""}, "\r\n"},
		{"empty", "", []string{""}, "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := SplitDocument(tt.text)
			assert.Equal(t, tt.lines, doc.Lines)
			assert.Equal(t, tt.ending, doc.LineEnding)
			assert.Equal(t, tt.text, doc.Join(doc.Lines))
		})
	}
}

func TestDocumentParse(t *testing.T) {
	doc := SplitDocument("[core]\r\nspeed: 1\r\n# done\r\n")

	lines := doc.Parse()

	require.Len(t, lines, 4)
	assert.Equal(t, KindSection, lines[0].Kind)
	assert.Equal(t, KindKeyValue, lines[1].Kind)
	assert.Equal(t, KindComment, lines[2].Kind)
	assert.Equal(t, KindBlank, lines[3].Kind)
}
