package glossary

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLine(t *testing.T) {
	tests := []struct {
		name string
		line string
		want Entry
		ok   bool
	}{
		{"section", "[core] = [核心]", Entry{Role: RoleSection, Source: "core", Target: "核心", Line: 7}, true},
		{"section with spaces", "  [ core ]   =   [ 核心 ]  ", Entry{Role: RoleSection, Source: "core", Target: "核心", Line: 7}, true},
		{"key", "speed = 速度", Entry{Role: RoleKey, Source: "speed", Target: "速度", Line: 7}, true},
		{"key splits on first equals", "a = b = c", Entry{Role: RoleKey, Source: "a", Target: "b = c", Line: 7}, true},
		{"literal", "LAND = 陆地", Entry{Role: RoleLiteral, Source: "LAND", Target: "陆地", Line: 7}, true},
		{"literal is case sensitive", "land = 陆地", Entry{Role: RoleKey, Source: "land", Target: "陆地", Line: 7}, true},
		{"blank", "   ", Entry{}, false},
		{"comment", "# speed = 速度", Entry{}, false},
		{"no equals", "just words", Entry{}, false},
		{"empty target", "speed =", Entry{}, false},
		{"empty source", "= 速度", Entry{}, false},
		{"malformed section", "[core] = 核心", Entry{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseLine(tt.line, 7)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeepsOrderAndLineNumbers(t *testing.T) {
	text := "\ufeff# glossary\n[core] = [核心]\n\nspeed = 速度\r\nbroken line\ntrue = 是\n"

	entries := ParseString(text)

	require.Len(t, entries, 3)
	assert.Equal(t, Entry{Role: RoleSection, Source: "core", Target: "核心", Line: 2}, entries[0])
	assert.Equal(t, Entry{Role: RoleKey, Source: "speed", Target: "速度", Line: 4}, entries[1])
	assert.Equal(t, Entry{Role: RoleLiteral, Source: "true", Target: "是", Line: 6}, entries[2])
}

func TestLoadMissingGlossaryDegrades(t *testing.T) {
	dir := t.TempDir()

	store := Load(filepath.Join(dir, "nope.txt"), filepath.Join(dir, "also-nope.txt"))

	require.NotNil(t, store)
	assert.False(t, store.Loaded())
	assert.True(t, errors.Is(store.Err, ErrNotFound))
	assert.Empty(t, store.Entries)
	assert.Equal(t, filepath.Join(dir, "nope.txt"), store.Path)
}

func TestLoadUsesFirstExistingCandidate(t *testing.T) {
	dir := t.TempDir()
	second := filepath.Join(dir, "second.txt")
	third := filepath.Join(dir, "third.txt")
	require.NoError(t, os.WriteFile(second, []byte("speed = 速度\n"), 0o644))
	require.NoError(t, os.WriteFile(third, []byte("speed = 快\n"), 0o644))

	store := Load(filepath.Join(dir, "first.txt"), second, third)

	require.True(t, store.Loaded())
	assert.Equal(t, second, store.Path)
	require.Len(t, store.Entries, 1)
	assert.Equal(t, "速度", store.Entries[0].Target)
	assert.Equal(t, 1, store.Count(RoleKey))
	assert.Equal(t, 0, store.Count(RoleSection))
}

func TestResolveSkipsDirectories(t *testing.T) {
	dir := t.TempDir()
	_, ok := Resolve(dir)
	assert.False(t, ok)
}

func TestRoleMarshalText(t *testing.T) {
	b, err := RoleLiteral.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "Literal", string(b))
	assert.True(t, RoleKey.IsFlat())
	assert.False(t, RoleSection.IsFlat())
}
