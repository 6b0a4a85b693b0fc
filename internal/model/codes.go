package model

import "sort"

// CodeSet is a set of normalized module codes.
type CodeSet map[string]struct{}

// NewCodeSet builds a set from codes. Empty strings are skipped.
func NewCodeSet(codes ...string) CodeSet {
	set := make(CodeSet, len(codes))
	for _, c := range codes {
		if c == "" {
			continue
		}
		set[c] = struct{}{}
	}
	return set
}

// Has reports whether code is in the set.
func (s CodeSet) Has(code string) bool {
	_, ok := s[code]
	return ok
}

// Len returns the number of distinct codes.
func (s CodeSet) Len() int {
	return len(s)
}

// Union returns a new set holding the codes of s and other.
func (s CodeSet) Union(other CodeSet) CodeSet {
	out := make(CodeSet, len(s)+len(other))
	for c := range s {
		out[c] = struct{}{}
	}
	for c := range other {
		out[c] = struct{}{}
	}
	return out
}

// Sorted returns the codes in ascending order.
func (s CodeSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Strings(out)
	return out
}
