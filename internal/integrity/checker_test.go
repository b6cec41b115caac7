package integrity

import (
	"os"
	"path/filepath"
	"testing"

	"unit-translator/internal/glossary"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDuplicateSources(t *testing.T) {
	text := "# units\nfoo = 甲\nbar = 乙\nfoo = 丙\n"

	r := CheckText(text, DefaultOptions())

	require.True(t, r.HasConflicts())
	require.Len(t, r.DuplicateSources, 1)
	assert.Empty(t, r.DuplicateTargets)

	conflicts := r.SourceConflicts()
	require.Len(t, conflicts, 1)
	assert.Equal(t, "foo", conflicts[0].Term)
	assert.Equal(t, []int{2, 4}, conflicts[0].Lines())
	assert.Equal(t, 3, r.Entries)
	assert.Equal(t, 2, r.Terms)
}

func TestSectionKeyHomonym(t *testing.T) {
	text := "[foo] = [甲]\nfoo = 甲\n"

	lenient := CheckText(text, DefaultOptions())
	assert.False(t, lenient.HasConflicts())

	strict := CheckText(text, Options{})
	assert.True(t, strict.Strict)
	require.Len(t, strict.DuplicateSources, 1)
	occ := strict.DuplicateSources["foo"]
	require.Len(t, occ, 2)
	assert.Equal(t, glossary.RoleSection, occ[0].Role)
	assert.Equal(t, glossary.RoleKey, occ[1].Role)
	assert.Empty(t, strict.DuplicateTargets, "one distinct source never makes an ambiguous target")
}

func TestHomonymExemptionNeedsExactlyOnePair(t *testing.T) {
	text := "[foo] = [甲]\nfoo = 乙\nfoo = 丙\n"

	r := CheckText(text, DefaultOptions())

	require.Contains(t, r.DuplicateSources, "foo")
	assert.Len(t, r.DuplicateSources["foo"], 3)
}

func TestDuplicateTargets(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		opts      Options
		ambiguous bool
	}{
		{"two keys", "alpha = 甲\nbeta = 甲\n", DefaultOptions(), true},
		{"section and key lenient", "[alpha] = [甲]\nbeta = 甲\n", DefaultOptions(), false},
		{"section and key strict", "[alpha] = [甲]\nbeta = 甲\n", Options{}, true},
		{"same source twice", "alpha = 甲\nalpha = 甲\n", DefaultOptions(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := CheckText(tt.text, tt.opts)
			assert.Equal(t, tt.ambiguous, r.IsAmbiguousTarget("甲"))
			if tt.ambiguous {
				conflicts := r.TargetConflicts()
				require.Len(t, conflicts, 1)
				assert.Equal(t, []int{1, 2}, conflicts[0].Lines())
			}
		})
	}
}

func TestSourceConflictsOrderedByFirstLine(t *testing.T) {
	text := "b = 1\na = 2\nb = 3\na = 4\n"

	conflicts := CheckText(text, DefaultOptions()).SourceConflicts()

	require.Len(t, conflicts, 2)
	assert.Equal(t, "b", conflicts[0].Term)
	assert.Equal(t, "a", conflicts[1].Term)
	assert.Equal(t, 1, conflicts[0].FirstLine())
}

func TestCheckFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "glossary.txt")
	require.NoError(t, os.WriteFile(path, []byte("foo = 甲\nfoo = 乙\n"), 0o644))

	r, err := CheckFile(path, DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, path, r.Path)
	assert.True(t, r.HasConflicts())

	_, err = CheckFile(filepath.Join(t.TempDir(), "missing.txt"), DefaultOptions())
	assert.Error(t, err)
}
