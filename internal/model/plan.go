package model

// Semester is one slot of the timeline.
type Semester struct {
	// ID is unique across the whole plan.
	ID int `json:"id" yaml:"id"`

	// Name is the display name, e.g. "Semester 1".
	Name string `json:"name" yaml:"name"`

	// CreditsDeclared is the declared workload. It is reference data only;
	// computed credits always come from the module count.
	CreditsDeclared int `json:"creditsDeclared" yaml:"credits_declared"`

	// Modules are the planned modules in display order.
	Modules []Module `json:"modules" yaml:"modules"`

	// IsExchange marks a semester abroad. Exchange semesters accept no
	// drops and contribute no credits.
	IsExchange bool `json:"isExchange,omitempty" yaml:"is_exchange,omitempty"`
}

// HasModule reports whether the semester already holds code.
func (s Semester) HasModule(code string) bool {
	return s.indexOf(code) >= 0
}

func (s Semester) indexOf(code string) int {
	for i, m := range s.Modules {
		if m.Code == code {
			return i
		}
	}
	return -1
}

// WithModule returns a copy of s with m appended. The receiver's module
// slice is never written to.
func (s Semester) WithModule(m Module) Semester {
	modules := make([]Module, len(s.Modules), len(s.Modules)+1)
	copy(modules, s.Modules)
	s.Modules = append(modules, m)
	return s
}

// WithoutModule returns a copy of s with code removed. The second result is
// false when code was not present.
func (s Semester) WithoutModule(code string) (Semester, bool) {
	idx := s.indexOf(code)
	if idx < 0 {
		return s, false
	}
	modules := make([]Module, 0, len(s.Modules)-1)
	modules = append(modules, s.Modules[:idx]...)
	modules = append(modules, s.Modules[idx+1:]...)
	s.Modules = modules
	return s, true
}

// AcademicYear groups the semesters of one year of study.
type AcademicYear struct {
	Year                 int        `json:"year" yaml:"year"`
	Label                string     `json:"label" yaml:"label"`
	AcademicYearLabel    string     `json:"academicYear" yaml:"academic_year"`
	TotalCreditsDeclared int        `json:"totalCreditsDeclared" yaml:"total_credits_declared"`
	Semesters            []Semester `json:"semesters" yaml:"semesters"`
}

// IsSpacer reports whether the year is a layout spacer with no semesters.
func (y AcademicYear) IsSpacer() bool {
	return len(y.Semesters) == 0
}

// User is the signed-in identity.
type User struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsGuest bool   `json:"isGuest,omitempty"`
}
