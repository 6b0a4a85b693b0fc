package board

import (
	"strings"

	"github.com/handiism/modplan/internal/drag"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/staging"
)

// Action is a user interaction applied by Reduce.
type Action interface {
	apply(State) State
}

// Reduce applies a to s and returns the next state.
func Reduce(s State, a Action) State {
	if a == nil {
		return s
	}
	return a.apply(s)
}

// BeginDrag starts dragging a card.
type BeginDrag struct{ Source drag.Source }

func (a BeginDrag) apply(s State) State {
	s.Drag = s.Drag.BeginDrag(a.Source)
	return s
}

// EnterTarget reports the pointer entering a semester during a drag.
type EnterTarget struct{ SemesterID int }

func (a EnterTarget) apply(s State) State {
	sem, ok := s.Timeline.Semester(a.SemesterID)
	if !ok {
		return s
	}
	s.Drag = s.Drag.EnterTarget(drag.Target{SemesterID: sem.ID, IsExchange: sem.IsExchange})
	return s
}

// EndDrag ends the drag from any state.
type EndDrag struct{}

func (EndDrag) apply(s State) State {
	s.Drag = s.Drag.EndDrag()
	return s
}

// ResetDrag clears drag and pan state at a full re-render boundary.
type ResetDrag struct{}

func (ResetDrag) apply(s State) State {
	s.Drag = s.Drag.Reset()
	return s
}

// Drop places the dragged card on a semester. It does not end the drag.
//
// A staged card adds its code to the semester and stays staged. A timeline
// card moves between semesters. The approved placeholder and drops on
// exchange or unknown semesters do nothing.
type Drop struct{ SemesterID int }

func (a Drop) apply(s State) State {
	src, ok := s.Drag.Source()
	if !ok {
		return s
	}
	sem, ok := s.Timeline.Semester(a.SemesterID)
	if !ok || sem.IsExchange {
		return s
	}
	switch src.Kind {
	case drag.SourceStagedCard:
		entry, ok := s.Staging.Get(src.StagedID)
		if !ok {
			return s
		}
		s.Timeline = s.Timeline.AddModule(sem.ID, model.Module{Code: entry.Code, Title: entry.Type.Label()})
	case drag.SourceTimelineCard:
		s.Timeline = s.Timeline.MoveModule(src.SemesterID, sem.ID, src.Code)
	}
	return s
}

// AddModule inserts a module into a semester.
type AddModule struct {
	SemesterID int
	Module     model.Module
}

func (a AddModule) apply(s State) State {
	s.Timeline = s.Timeline.AddModule(a.SemesterID, a.Module)
	return s
}

// AddRecommended inserts a recommended module into its target semester.
type AddRecommended struct{ Recommendation Recommendation }

func (a AddRecommended) apply(s State) State {
	return AddModule{SemesterID: a.Recommendation.SemesterID, Module: a.Recommendation.Module}.apply(s)
}

// RemoveModule removes a module from a semester.
type RemoveModule struct {
	SemesterID int
	Code       string
}

func (a RemoveModule) apply(s State) State {
	s.Timeline = s.Timeline.RemoveModule(a.SemesterID, a.Code)
	return s
}

// ApplyPlan replaces semester contents with a generated plan.
type ApplyPlan struct{ Plan map[string][]model.Module }

func (a ApplyPlan) apply(s State) State {
	s.Timeline = s.Timeline.ApplySemesterPlan(a.Plan)
	s.Drag = s.Drag.Reset()
	return s
}

// RemoveStaged deletes a staged module.
type RemoveStaged struct{ ID string }

func (a RemoveStaged) apply(s State) State {
	s.Staging = s.Staging.Remove(a.ID)
	return s
}

// OpenAddDialog opens an empty dialog for a new staged module.
type OpenAddDialog struct{}

func (OpenAddDialog) apply(s State) State {
	s.Dialog = Dialog{Mode: DialogAdding, Type: model.StagedTaken}
	return s
}

// OpenEditDialog opens the dialog prefilled with a staged module.
// Unknown ids leave the dialog as it was.
type OpenEditDialog struct{ ID string }

func (a OpenEditDialog) apply(s State) State {
	entry, ok := s.Staging.Get(a.ID)
	if !ok {
		return s
	}
	s.Dialog = Dialog{Mode: DialogEditing, EditingID: entry.ID, Code: entry.Code, Type: entry.Type}
	return s
}

// SetDialogCode updates the code field of an open dialog.
type SetDialogCode struct{ Code string }

func (a SetDialogCode) apply(s State) State {
	if !s.Dialog.Open() {
		return s
	}
	s.Dialog.Code = a.Code
	return s
}

// SetDialogType updates the type field of an open dialog.
type SetDialogType struct{ Type model.StagedType }

func (a SetDialogType) apply(s State) State {
	if !s.Dialog.Open() || !a.Type.Valid() {
		return s
	}
	s.Dialog.Type = a.Type
	return s
}

// SaveDialog commits the dialog. A blank code keeps the dialog open and the
// pool unchanged.
type SaveDialog struct{}

func (SaveDialog) apply(s State) State {
	d := s.Dialog
	if !d.Open() || strings.TrimSpace(d.Code) == "" {
		return s
	}
	kind := d.Type
	if !kind.Valid() {
		kind = model.StagedTaken
	}
	switch d.Mode {
	case DialogAdding:
		s.Staging, _ = s.Staging.Add(d.Code, kind)
	case DialogEditing:
		code := d.Code
		s.Staging = s.Staging.Update(d.EditingID, staging.Patch{Code: &code, Type: &kind})
	}
	s.Dialog = Dialog{}
	return s
}

// CancelDialog closes the dialog without saving.
type CancelDialog struct{}

func (CancelDialog) apply(s State) State {
	s.Dialog = Dialog{}
	return s
}
