// Package registry derives the set of satisfied module codes from the
// timeline and the staging pool, and the credit totals built on it.
//
// A Registry is computed fresh from its two sources on every call to
// Derive; nothing is cached between snapshots.
package registry

import (
	"math"

	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

// Registry is the combined view of planned and staged modules.
type Registry struct {
	codes model.CodeSet
}

// Derive unions the planned codes of tl with the staged codes of pool.
func Derive(tl timeline.Timeline, pool staging.Pool) Registry {
	return FromCodes(tl.AllModuleCodes().Union(pool.AllCodes()))
}

// FromCodes wraps an existing code set.
func FromCodes(codes model.CodeSet) Registry {
	if codes == nil {
		codes = model.CodeSet{}
	}
	return Registry{codes: codes}
}

// SatisfiedCodes returns the de-duplicated satisfied codes.
func (r Registry) SatisfiedCodes() model.CodeSet {
	return r.codes
}

// TotalCreditsEarned counts every distinct code at CreditsPerModule.
//
// This is independent of the staging pool's own credit total, which sums
// per-entry credit values.
func (r Registry) TotalCreditsEarned() int {
	return r.codes.Len() * model.CreditsPerModule
}

// ProgressPercent is the rounded share of GraduationCredits earned,
// clamped to [0, 100].
func (r Registry) ProgressPercent() int {
	pct := int(math.Round(float64(r.TotalCreditsEarned()) / float64(model.GraduationCredits) * 100))
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// Fraction returns ProgressPercent as a value in [0, 1] for progress bars.
func (r Registry) Fraction() float64 {
	return float64(r.ProgressPercent()) / 100
}
