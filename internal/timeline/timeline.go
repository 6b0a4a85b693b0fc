package timeline

import (
	"fmt"

	"github.com/handiism/modplan/internal/model"
)

// Timeline is an immutable snapshot of the planned years.
type Timeline struct {
	years []model.AcademicYear
	rev   uint64
}

// New builds a Timeline from years. The input is deep-copied.
//
// Returns an error if two semesters share an ID.
func New(years []model.AcademicYear) (Timeline, error) {
	seen := make(map[int]string)
	copied := make([]model.AcademicYear, len(years))
	for yi, y := range years {
		sems := make([]model.Semester, len(y.Semesters))
		for si, s := range y.Semesters {
			if prev, ok := seen[s.ID]; ok {
				return Timeline{}, fmt.Errorf("timeline: semester id %d used by %s and %s %s", s.ID, prev, y.Label, s.Name)
			}
			seen[s.ID] = y.Label + " " + s.Name
			s.Modules = append([]model.Module(nil), s.Modules...)
			sems[si] = s
		}
		y.Semesters = sems
		copied[yi] = y
	}
	return Timeline{years: copied}, nil
}

// Years returns the years in display order, spacers included.
// The result must be treated as read-only.
func (t Timeline) Years() []model.AcademicYear {
	return t.years
}

// PlanningYears returns the years that hold at least one semester.
func (t Timeline) PlanningYears() []model.AcademicYear {
	out := make([]model.AcademicYear, 0, len(t.years))
	for _, y := range t.years {
		if !y.IsSpacer() {
			out = append(out, y)
		}
	}
	return out
}

// Revision increases every time a method returns a changed Timeline.
func (t Timeline) Revision() uint64 {
	return t.rev
}

// Semesters returns every semester in display order.
func (t Timeline) Semesters() []model.Semester {
	var out []model.Semester
	for _, y := range t.years {
		out = append(out, y.Semesters...)
	}
	return out
}

// Semester looks up a semester by ID.
func (t Timeline) Semester(id int) (model.Semester, bool) {
	for _, y := range t.years {
		for _, s := range y.Semesters {
			if s.ID == id {
				return s, true
			}
		}
	}
	return model.Semester{}, false
}

// AddModule returns a timeline with m appended to semester semesterID.
// The code is normalized first. The receiver is returned unchanged when the
// code is blank, the semester is unknown or already holds the code.
func (t Timeline) AddModule(semesterID int, m model.Module) Timeline {
	m.Code = model.NormalizeCode(m.Code)
	if m.Code == "" {
		return t
	}
	return t.updateSemester(semesterID, func(s model.Semester) (model.Semester, bool) {
		if s.HasModule(m.Code) {
			return s, false
		}
		return s.WithModule(m), true
	})
}

// RemoveModule returns a timeline without code in semester semesterID.
func (t Timeline) RemoveModule(semesterID int, code string) Timeline {
	code = model.NormalizeCode(code)
	return t.updateSemester(semesterID, func(s model.Semester) (model.Semester, bool) {
		return s.WithoutModule(code)
	})
}

// MoveModule moves code from one semester to another. Nothing happens when
// the semesters are the same, the origin lacks the code, or the target
// already holds it.
func (t Timeline) MoveModule(fromID, toID int, code string) Timeline {
	code = model.NormalizeCode(code)
	if fromID == toID {
		return t
	}
	from, ok := t.Semester(fromID)
	if !ok {
		return t
	}
	to, ok := t.Semester(toID)
	if !ok || to.HasModule(code) {
		return t
	}
	for _, m := range from.Modules {
		if m.Code == code {
			return t.RemoveModule(fromID, code).AddModule(toID, m)
		}
	}
	return t
}

// Locate returns the first semester holding code.
func (t Timeline) Locate(code string) (int, bool) {
	code = model.NormalizeCode(code)
	for _, y := range t.years {
		for _, s := range y.Semesters {
			if s.HasModule(code) {
				return s.ID, true
			}
		}
	}
	return 0, false
}

// AllModuleCodes returns a fresh set of every planned code.
func (t Timeline) AllModuleCodes() model.CodeSet {
	set := model.CodeSet{}
	for _, y := range t.years {
		for _, s := range y.Semesters {
			for _, m := range s.Modules {
				set[m.Code] = struct{}{}
			}
		}
	}
	return set
}

// CreditsForSemester returns the computed credits of a semester: zero for
// exchange or unknown semesters, otherwise CreditsPerModule per module.
func (t Timeline) CreditsForSemester(id int) int {
	s, ok := t.Semester(id)
	if !ok {
		return 0
	}
	return semesterCredits(s)
}

// CreditsForYear sums CreditsForSemester over the semesters of year.
func (t Timeline) CreditsForYear(year int) int {
	total := 0
	for _, y := range t.years {
		if y.Year != year {
			continue
		}
		for _, s := range y.Semesters {
			total += semesterCredits(s)
		}
	}
	return total
}

func semesterCredits(s model.Semester) int {
	if s.IsExchange {
		return 0
	}
	return model.CreditsPerModule * len(s.Modules)
}

func (t Timeline) updateSemester(id int, fn func(model.Semester) (model.Semester, bool)) Timeline {
	for yi, y := range t.years {
		for si, s := range y.Semesters {
			if s.ID != id {
				continue
			}
			next, changed := fn(s)
			if !changed {
				return t
			}
			years := make([]model.AcademicYear, len(t.years))
			copy(years, t.years)
			sems := make([]model.Semester, len(y.Semesters))
			copy(sems, y.Semesters)
			sems[si] = next
			years[yi].Semesters = sems
			return Timeline{years: years, rev: t.rev + 1}
		}
	}
	return t
}
