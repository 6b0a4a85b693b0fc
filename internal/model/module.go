package model

import (
	"fmt"
	"strings"
)

const (
	// CreditsPerModule is the fixed credit value of every planned module.
	CreditsPerModule = 4

	// GraduationCredits is the credit total required to graduate.
	GraduationCredits = 160
)

// Module is a course placed in a semester.
//
// Code is the identity key. HasError and ErrorMessage carry a precomputed
// prerequisite warning; they are display-only and never block placement.
type Module struct {
	Code         string `json:"code" yaml:"code"`
	Title        string `json:"title" yaml:"title"`
	HasError     bool   `json:"hasError,omitempty" yaml:"has_error,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty" yaml:"error_message,omitempty"`
}

// StagedType says why a staged module counts.
type StagedType string

const (
	StagedTaken    StagedType = "taken"
	StagedExempted StagedType = "exempted"
)

// ParseStagedType converts user input into a StagedType.
func ParseStagedType(s string) (StagedType, error) {
	switch StagedType(strings.ToLower(strings.TrimSpace(s))) {
	case StagedTaken:
		return StagedTaken, nil
	case StagedExempted:
		return StagedExempted, nil
	default:
		return "", fmt.Errorf("unknown staged type %q", s)
	}
}

// Valid reports whether t is one of the known staged types.
func (t StagedType) Valid() bool {
	return t == StagedTaken || t == StagedExempted
}

// Label returns the display label for the type.
func (t StagedType) Label() string {
	switch t {
	case StagedExempted:
		return "Exempted"
	default:
		return "Taken"
	}
}

// Toggle returns the other staged type.
func (t StagedType) Toggle() StagedType {
	if t == StagedExempted {
		return StagedTaken
	}
	return StagedExempted
}

// StagedModule is a completed or exempted module kept outside the timeline.
type StagedModule struct {
	ID      string     `json:"id"`
	Code    string     `json:"code"`
	Type    StagedType `json:"type"`
	Credits int        `json:"credits"`
}

// NormalizeCode trims whitespace and uppercases a module code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
