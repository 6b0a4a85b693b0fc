package requirements

import (
	"strings"

	"github.com/handiism/modplan/internal/model"
)

// IsSatisfied reports whether course is met by codes.
func IsSatisfied(course model.RequirementCourse, codes model.CodeSet) bool {
	switch course.Match.Kind {
	case model.MatchPrefix:
		for code := range codes {
			if strings.HasPrefix(code, course.Match.Value) {
				return true
			}
		}
		return false
	default:
		return codes.Has(course.Match.Value)
	}
}

// FulfilledCount returns how many lines of category are satisfied.
func FulfilledCount(category model.RequirementCategory, codes model.CodeSet) int {
	n := 0
	for _, c := range category.Courses {
		if IsSatisfied(c, codes) {
			n++
		}
	}
	return n
}

// Engine evaluates a fixed catalogue.
type Engine struct {
	categories []model.RequirementCategory
}

// NewEngine creates an Engine over categories.
func NewEngine(categories []model.RequirementCategory) *Engine {
	return &Engine{categories: categories}
}

// Categories returns the catalogue in order.
func (e *Engine) Categories() []model.RequirementCategory {
	return e.categories
}

// LineStatus is the evaluation of one requirement line.
type LineStatus struct {
	Course    model.RequirementCourse
	Satisfied bool
}

// CategoryStatus is the evaluation of one category.
type CategoryStatus struct {
	Category  model.RequirementCategory
	Lines     []LineStatus
	Fulfilled int
}

// Total returns the number of lines in the category.
func (s CategoryStatus) Total() int {
	return len(s.Lines)
}

// Complete reports whether every line is satisfied.
func (s CategoryStatus) Complete() bool {
	return s.Fulfilled == len(s.Lines)
}

// Evaluate checks every category against codes.
func (e *Engine) Evaluate(codes model.CodeSet) []CategoryStatus {
	out := make([]CategoryStatus, 0, len(e.categories))
	for _, cat := range e.categories {
		status := CategoryStatus{Category: cat, Lines: make([]LineStatus, 0, len(cat.Courses))}
		for _, course := range cat.Courses {
			ok := IsSatisfied(course, codes)
			if ok {
				status.Fulfilled++
			}
			status.Lines = append(status.Lines, LineStatus{Course: course, Satisfied: ok})
		}
		out = append(out, status)
	}
	return out
}
