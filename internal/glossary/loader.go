package glossary

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"
)

// ErrNotFound is returned in Store.Err when none of the candidate paths exists.
var ErrNotFound = errors.New("glossary not found")

// DefaultCandidates lists the glossary locations tried in order when none is configured.
var DefaultCandidates = []string{
	"scripts/翻译库.txt",
	"翻译库.txt",
	"../scripts/翻译库.txt",
	"../../scripts/翻译库.txt",
}

// reservedLiterals are flat-form sources that translate as whole value tokens.
var reservedLiterals = map[string]bool{
	"true": true, "false": true,
	"TRUE": true, "FALSE": true,
	"True": true, "False": true,
	"LAND": true, "WATER": true, "HOVER": true, "AIR": true, "OVER_CLIFF": true,
	"AUTO": true, "NONE": true,
}

// IsReservedLiteral reports whether term is one of the reserved literal tokens.
func IsReservedLiteral(term string) bool {
	return reservedLiterals[term]
}

// sectionPattern matches `[A] = [B]` on a trimmed glossary line.
var sectionPattern = regexp.MustCompile(`^\[(.+?)\]\s*=\s*\[(.+?)\]$`)

// ParseLine recognizes a single glossary line. It returns false for blank lines,
// comments, and lines that match neither grammar.
func ParseLine(line string, lineNum int) (Entry, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return Entry{}, false
	}

	if m := sectionPattern.FindStringSubmatch(trimmed); m != nil {
		source := strings.TrimSpace(m[1])
		target := strings.TrimSpace(m[2])
		if source == "" || target == "" {
			return Entry{}, false
		}
		return Entry{Role: RoleSection, Source: source, Target: target, Line: lineNum}, true
	}

	source, target, found := strings.Cut(trimmed, "=")
	if !found {
		return Entry{}, false
	}
	source = strings.TrimSpace(source)
	target = strings.TrimSpace(target)
	if source == "" || target == "" || strings.HasPrefix(source, "[") {
		return Entry{}, false
	}

	role := RoleKey
	if IsReservedLiteral(source) {
		role = RoleLiteral
	}
	return Entry{Role: role, Source: source, Target: target, Line: lineNum}, true
}

// Parse reads a glossary document and returns its entries in document order.
func Parse(r io.Reader) ([]Entry, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	var entries []Entry
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()
		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if e, ok := ParseLine(line, lineNum); ok {
			entries = append(entries, e)
		}
	}
	if err := scanner.Err(); err != nil {
		return entries, fmt.Errorf("scan glossary: %w", err)
	}
	return entries, nil
}

// ParseString is Parse over an in-memory document.
func ParseString(text string) []Entry {
	entries, _ := Parse(strings.NewReader(text))
	return entries
}

// Resolve returns the first candidate path that exists as a regular file.
func Resolve(candidates ...string) (string, bool) {
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// Load reads the first existing candidate. It never fails: a missing or unreadable
// glossary yields an empty store with Err set, which callers treat as identity translation.
func Load(candidates ...string) *Store {
	if len(candidates) == 0 {
		candidates = DefaultCandidates
	}

	path, ok := Resolve(candidates...)
	if !ok {
		err := fmt.Errorf("%w: tried %s", ErrNotFound, strings.Join(candidates, ", "))
		log.Warn().Err(err).Msg("Glossary missing, continuing with identity translation")
		return &Store{Path: candidates[0], Err: err}
	}

	f, err := os.Open(path)
	if err != nil {
		err = fmt.Errorf("open glossary: %w", err)
		log.Warn().Err(err).Str("path", path).Msg("Glossary unreadable, continuing with identity translation")
		return &Store{Path: path, Err: err}
	}
	defer f.Close()

	entries, err := Parse(f)
	if err != nil {
		log.Warn().Err(err).Str("path", path).Int("entries", len(entries)).Msg("Glossary partially read")
		return &Store{Path: path, Entries: entries, Err: err}
	}

	return &Store{Path: path, Entries: entries}
}
