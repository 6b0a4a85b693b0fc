package model

import (
	"fmt"
	"strings"
)

// WildcardMarker terminates a prefix match key.
const WildcardMarker = "*"

// MatchKind distinguishes exact codes from prefix wildcards.
type MatchKind int

const (
	MatchExact MatchKind = iota
	MatchPrefix
)

// MatchKey identifies the module codes that satisfy a requirement line.
//
// For MatchExact, Value is the full code. For MatchPrefix, Value is the
// prefix with the wildcard marker stripped.
type MatchKey struct {
	Kind  MatchKind
	Value string
}

// ParseMatchKey converts a catalogue string such as "CS2040S" or "GEC*"
// into a MatchKey.
//
// Returns an error if the key is empty or is a bare wildcard.
func ParseMatchKey(raw string) (MatchKey, error) {
	key := strings.TrimSpace(raw)
	if key == "" {
		return MatchKey{}, fmt.Errorf("match key is empty")
	}
	if strings.HasSuffix(key, WildcardMarker) {
		prefix := strings.TrimSuffix(key, WildcardMarker)
		if prefix == "" {
			return MatchKey{}, fmt.Errorf("match key %q has no prefix", raw)
		}
		return MatchKey{Kind: MatchPrefix, Value: prefix}, nil
	}
	return MatchKey{Kind: MatchExact, Value: key}, nil
}

// MustMatchKey is like ParseMatchKey but panics on error. Intended for
// literals in tests and static tables.
func MustMatchKey(raw string) MatchKey {
	k, err := ParseMatchKey(raw)
	if err != nil {
		panic(err)
	}
	return k
}

// String renders the key back into catalogue form.
func (k MatchKey) String() string {
	if k.Kind == MatchPrefix {
		return k.Value + WildcardMarker
	}
	return k.Value
}

// IsWildcard reports whether the key is a prefix match.
func (k MatchKey) IsWildcard() bool {
	return k.Kind == MatchPrefix
}

// RequirementCourse is one line of a requirement category.
type RequirementCourse struct {
	Match MatchKey
	Title string
}

// RequirementCategory is a named bucket of degree requirements.
//
// RequiredCredits is reference metadata. Fulfilment is counted per line,
// not weighted by credits.
type RequirementCategory struct {
	Name            string
	RequiredCredits int
	Courses         []RequirementCourse
}
