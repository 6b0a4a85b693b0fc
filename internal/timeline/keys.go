package timeline

import (
	"fmt"

	"github.com/handiism/modplan/internal/model"
)

// SemesterKey returns the service key of a semester, "y<year>s<n>", where n
// is the semester's 1-based position inside its year.
func (t Timeline) SemesterKey(id int) (string, bool) {
	for _, y := range t.years {
		for i, s := range y.Semesters {
			if s.ID == id {
				return semesterKey(y.Year, i), true
			}
		}
	}
	return "", false
}

// SemesterKeys returns every semester key in display order.
func (t Timeline) SemesterKeys() []string {
	var keys []string
	for _, y := range t.years {
		for i := range y.Semesters {
			keys = append(keys, semesterKey(y.Year, i))
		}
	}
	return keys
}

// SemesterPlan exports the planned codes keyed by semester key.
func (t Timeline) SemesterPlan() map[string][]string {
	out := make(map[string][]string)
	for _, y := range t.years {
		for i, s := range y.Semesters {
			codes := make([]string, 0, len(s.Modules))
			for _, m := range s.Modules {
				codes = append(codes, m.Code)
			}
			out[semesterKey(y.Year, i)] = codes
		}
	}
	return out
}

// ApplySemesterPlan replaces the contents of every semester named in plan.
// Unknown keys are ignored and exchange semesters stay empty. Codes are
// normalized and de-duplicated within a semester.
func (t Timeline) ApplySemesterPlan(plan map[string][]model.Module) Timeline {
	next := t
	changed := false
	for _, y := range t.years {
		for i, s := range y.Semesters {
			modules, ok := plan[semesterKey(y.Year, i)]
			if !ok || s.IsExchange {
				continue
			}
			cleared := next.updateSemester(s.ID, func(s model.Semester) (model.Semester, bool) {
				s.Modules = nil
				return s, true
			})
			for _, m := range modules {
				cleared = cleared.AddModule(s.ID, m)
			}
			next = cleared
			changed = true
		}
	}
	if !changed {
		return t
	}
	next.rev = t.rev + 1
	return next
}

func semesterKey(year, index int) string {
	return fmt.Sprintf("y%ds%d", year, index+1)
}
