package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/timeline"
)

// PlanFile is the on-disk plan format. A planned module is either a bare
// code or an object:
//
//	{
//	  "semesters": {
//	    "y1s1": ["CS1101S", {"code": "MA1521", "title": "Calculus for Computing"}]
//	  },
//	  "staged": [{"code": "CS1010", "type": "exempted", "credits": 4}]
//	}
type PlanFile struct {
	Semesters map[string][]PlanModule `json:"semesters"`
	Staged    []StagedEntry           `json:"staged,omitempty"`
}

// PlanModule is one planned module in a plan file.
type PlanModule struct {
	Code         string `json:"code"`
	Title        string `json:"title,omitempty"`
	HasError     bool   `json:"hasError,omitempty"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// UnmarshalJSON accepts a bare code string or a module object.
func (m *PlanModule) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		*m = PlanModule{Code: code}
		return nil
	}
	type plain PlanModule
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*m = PlanModule(p)
	return nil
}

func (m PlanModule) module() model.Module {
	return model.Module{Code: m.Code, Title: m.Title, HasError: m.HasError, ErrorMessage: m.ErrorMessage}
}

// StagedEntry is one staged module in a plan file.
type StagedEntry struct {
	Code    string `json:"code"`
	Type    string `json:"type"`
	Credits int    `json:"credits,omitempty"`
}

// NewPlanFile captures a timeline and staged modules.
func NewPlanFile(tl timeline.Timeline, staged []model.StagedModule) PlanFile {
	f := PlanFile{Semesters: make(map[string][]PlanModule)}
	for _, sem := range tl.Semesters() {
		key, _ := tl.SemesterKey(sem.ID)
		modules := make([]PlanModule, 0, len(sem.Modules))
		for _, m := range sem.Modules {
			modules = append(modules, PlanModule{Code: m.Code, Title: m.Title, HasError: m.HasError, ErrorMessage: m.ErrorMessage})
		}
		f.Semesters[key] = modules
	}
	for _, s := range staged {
		f.Staged = append(f.Staged, StagedEntry{Code: s.Code, Type: string(s.Type), Credits: s.Credits})
	}
	return f
}

// ReadPlanFile loads a plan file from disk.
func ReadPlanFile(path string) (PlanFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return PlanFile{}, err
	}
	return ParsePlanFile(data)
}

// ParsePlanFile decodes a plan file and checks every module code and staged
// type.
func ParsePlanFile(data []byte) (PlanFile, error) {
	var f PlanFile
	if err := json.Unmarshal(data, &f); err != nil {
		return PlanFile{}, fmt.Errorf("plan file: %w", err)
	}
	for key, modules := range f.Semesters {
		for i, m := range modules {
			if model.NormalizeCode(m.Code) == "" {
				return PlanFile{}, fmt.Errorf("plan file: %s[%d]: module code is empty", key, i)
			}
		}
	}
	for i, s := range f.Staged {
		if _, err := model.ParseStagedType(s.Type); err != nil {
			return PlanFile{}, fmt.Errorf("plan file: staged[%d]: %w", i, err)
		}
	}
	return f, nil
}

// Apply loads the file into state: named semesters are replaced and staged
// entries are appended to the pool.
func (f PlanFile) Apply(state board.State) board.State {
	if len(f.Semesters) > 0 {
		plan := make(map[string][]model.Module, len(f.Semesters))
		for key, entries := range f.Semesters {
			modules := make([]model.Module, 0, len(entries))
			for _, e := range entries {
				modules = append(modules, e.module())
			}
			plan[key] = modules
		}
		state = board.Reduce(state, board.ApplyPlan{Plan: plan})
	}

	for _, s := range f.Staged {
		kind, _ := model.ParseStagedType(s.Type)
		credits := s.Credits
		if credits <= 0 {
			credits = model.CreditsPerModule
		}
		state.Staging, _ = state.Staging.AddWithCredits(s.Code, kind, credits)
	}
	return state
}
