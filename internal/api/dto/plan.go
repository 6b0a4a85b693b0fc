package dto

import (
	"encoding/json"
	"fmt"
	"regexp"
	"sort"

	"github.com/handiism/modplan/internal/model"
)

var semesterKeyPattern = regexp.MustCompile(`^y\d+s\d+$`)

// GenerateRequest is the body of POST /api/plans/generate.
type GenerateRequest struct {
	Degree        string `json:"degree" validate:"required"`
	Major         string `json:"major" validate:"required"`
	FocusArea     string `json:"focus_area" validate:"required"`
	MaxMCs        int    `json:"max_mcs" validate:"gt=0"`
	MaxHardPerSem int    `json:"max_hard_per_sem" validate:"gt=0"`
}

// GenerateResponse wraps the generated plan.
type GenerateResponse struct {
	Success bool           `json:"success"`
	Plan    *GeneratedPlan `json:"plan"`
	Message string         `json:"message"`
}

// GeneratedPlan holds the per-semester module lists keyed by y<year>s<n>.
type GeneratedPlan struct {
	Plan map[string][]PlanModule `json:"plan"`
}

// PlanModule is one entry in a semester list. The service sends either a
// bare code string or an object with a code and title.
type PlanModule struct {
	Code  string `json:"code"`
	Title string `json:"title,omitempty"`
}

// UnmarshalJSON accepts "CS1010", {"code": "CS1010", "title": "..."} and
// {"moduleCode": "CS1010"}.
func (m *PlanModule) UnmarshalJSON(data []byte) error {
	var code string
	if err := json.Unmarshal(data, &code); err == nil {
		*m = PlanModule{Code: code}
		return nil
	}

	var obj struct {
		Code       string `json:"code"`
		ModuleCode string `json:"moduleCode"`
		Title      string `json:"title"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("unable to parse plan module: %s", data)
	}
	m.Code = obj.Code
	if m.Code == "" {
		m.Code = obj.ModuleCode
	}
	m.Title = obj.Title
	return nil
}

// MarshalJSON writes a bare code when the module has no title.
func (m PlanModule) MarshalJSON() ([]byte, error) {
	if m.Title == "" {
		return json.Marshal(m.Code)
	}
	type plain PlanModule
	return json.Marshal(plain(m))
}

// ToModules converts the plan into timeline input. Entries with a blank
// code are dropped.
func (p *GeneratedPlan) ToModules() map[string][]model.Module {
	if p == nil {
		return nil
	}
	return toModules(p.Plan)
}

// PlanDocument is the stored plan: a starting academic year plus the
// semester lists, flattened into one JSON object.
//
//	{"minYear": "2024/2025", "y1s1": ["CS1101S"], "y1s2": []}
type PlanDocument struct {
	MinYear   string
	Semesters map[string][]PlanModule
}

// MarshalJSON flattens the document.
func (d PlanDocument) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(d.Semesters)+1)
	out["minYear"] = d.MinYear
	for key, modules := range d.Semesters {
		if modules == nil {
			modules = []PlanModule{}
		}
		out[key] = modules
	}
	return json.Marshal(out)
}

// UnmarshalJSON reads minYear and every y<year>s<n> key. Other keys are
// ignored.
func (d *PlanDocument) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.MinYear = ""
	d.Semesters = make(map[string][]PlanModule)
	if v, ok := raw["minYear"]; ok {
		if err := json.Unmarshal(v, &d.MinYear); err != nil {
			return fmt.Errorf("minYear: %w", err)
		}
	}
	for key, v := range raw {
		if !semesterKeyPattern.MatchString(key) {
			continue
		}
		var modules []PlanModule
		if err := json.Unmarshal(v, &modules); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		d.Semesters[key] = modules
	}
	return nil
}

// Keys returns the semester keys in sorted order.
func (d PlanDocument) Keys() []string {
	keys := make([]string, 0, len(d.Semesters))
	for k := range d.Semesters {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ToModules converts the document into timeline input.
func (d PlanDocument) ToModules() map[string][]model.Module {
	return toModules(d.Semesters)
}

// NewPlanDocument builds a document from timeline modules.
func NewPlanDocument(minYear string, plan map[string][]model.Module) PlanDocument {
	doc := PlanDocument{MinYear: minYear, Semesters: make(map[string][]PlanModule, len(plan))}
	for key, modules := range plan {
		entries := make([]PlanModule, 0, len(modules))
		for _, m := range modules {
			entries = append(entries, PlanModule{Code: m.Code, Title: m.Title})
		}
		doc.Semesters[key] = entries
	}
	return doc
}

// EmptyPlanDocument returns a document with years × 2 empty semesters.
func EmptyPlanDocument(minYear string, years int) PlanDocument {
	doc := PlanDocument{MinYear: minYear, Semesters: make(map[string][]PlanModule, years*2)}
	for y := 1; y <= years; y++ {
		for s := 1; s <= 2; s++ {
			doc.Semesters[fmt.Sprintf("y%ds%d", y, s)] = []PlanModule{}
		}
	}
	return doc
}

// SavePlanRequest is the body of POST /api/plans.
type SavePlanRequest struct {
	UserID string       `json:"user_id" validate:"required"`
	Label  string       `json:"label" validate:"required"`
	Plan   PlanDocument `json:"plan"`
}

// FetchPlanResponse is returned by GET /api/plans/{userID}.
type FetchPlanResponse struct {
	Exists bool          `json:"exists"`
	Label  string        `json:"label,omitempty"`
	Plan   *PlanDocument `json:"plan,omitempty"`
}

func toModules(plan map[string][]PlanModule) map[string][]model.Module {
	out := make(map[string][]model.Module, len(plan))
	for key, entries := range plan {
		modules := make([]model.Module, 0, len(entries))
		for _, e := range entries {
			code := model.NormalizeCode(e.Code)
			if code == "" {
				continue
			}
			modules = append(modules, model.Module{Code: code, Title: e.Title})
		}
		out[key] = modules
	}
	return out
}
