package glossary

import "fmt"

// Role partitions glossary entries into independent translation namespaces.
type Role int

const (
	// RoleSection entries translate section header names.
	RoleSection Role = iota
	// RoleKey entries translate keys and identifiers found inside values.
	RoleKey
	// RoleLiteral entries translate whole reserved value tokens (booleans, enums, sentinels).
	RoleLiteral
)

func (r Role) String() string {
	switch r {
	case RoleSection:
		return "Section"
	case RoleKey:
		return "Key"
	case RoleLiteral:
		return "Literal"
	default:
		return "Unknown"
	}
}

// MarshalText renders the role by name in JSON and YAML exports.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a role name written by MarshalText.
func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Section":
		*r = RoleSection
	case "Key":
		*r = RoleKey
	case "Literal":
		*r = RoleLiteral
	default:
		return fmt.Errorf("unknown glossary role %q", text)
	}
	return nil
}

// IsFlat reports whether the role comes from the flat `A = B` grammar.
func (r Role) IsFlat() bool {
	return r == RoleKey || r == RoleLiteral
}

// Entry is a single source/target pair read from the glossary document.
type Entry struct {
	// Role is the namespace the pair belongs to.
	Role Role
	// Source is the term in language A.
	Source string
	// Target is the term in language B.
	Target string
	// Line is the 1-based line number in the glossary document.
	Line int
}

// Store holds the ordered glossary entries for one run.
type Store struct {
	// Path is the glossary document that was read, or the first candidate when none was found.
	Path string
	// Entries are in document order.
	Entries []Entry
	// Err is non-nil when the glossary was missing or unreadable. Entries is then empty or
	// partial; an empty store builds identity dictionaries.
	Err error
}

// Loaded reports whether a glossary document was read successfully.
func (s *Store) Loaded() bool {
	return s != nil && s.Err == nil
}

// Count returns the number of entries with the given role.
func (s *Store) Count(role Role) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, e := range s.Entries {
		if e.Role == role {
			n++
		}
	}
	return n
}
