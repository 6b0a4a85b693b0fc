package board

import (
	"github.com/handiism/modplan/internal/drag"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/registry"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

// DialogMode is the phase of the staged-module dialog.
type DialogMode int

const (
	DialogClosed DialogMode = iota
	DialogAdding
	DialogEditing
)

// Dialog holds the add/edit staged-module form.
type Dialog struct {
	Mode      DialogMode
	EditingID string
	Code      string
	Type      model.StagedType
}

// Open reports whether the dialog is showing.
func (d Dialog) Open() bool {
	return d.Mode != DialogClosed
}

// State is one immutable snapshot of the planning board.
type State struct {
	Timeline timeline.Timeline
	Staging  staging.Pool
	Drag     drag.Controller
	Dialog   Dialog
}

// New returns a board with the dialog closed and no drag in progress.
func New(tl timeline.Timeline, pool staging.Pool) State {
	return State{Timeline: tl, Staging: pool}
}

// Registry derives the satisfied-code registry from the current state.
func (s State) Registry() registry.Registry {
	return registry.Derive(s.Timeline, s.Staging)
}

// Progress is the derived graduation progress of a board.
type Progress struct {
	SatisfiedCodes model.CodeSet
	CreditsEarned  int
	Percent        int
	StagedCredits  int
	Categories     []requirements.CategoryStatus
}

// Progress evaluates the board against engine. A nil engine skips the
// category report.
func (s State) Progress(engine *requirements.Engine) Progress {
	reg := s.Registry()
	p := Progress{
		SatisfiedCodes: reg.SatisfiedCodes(),
		CreditsEarned:  reg.TotalCreditsEarned(),
		Percent:        reg.ProgressPercent(),
		StagedCredits:  s.Staging.TotalCredits(),
	}
	if engine != nil {
		p.Categories = engine.Evaluate(p.SatisfiedCodes)
	}
	return p
}

// Recommendation is a module suggested for a specific semester.
type Recommendation struct {
	SemesterID int
	Module     model.Module
}
