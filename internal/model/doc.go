// Package model defines the core data structures used throughout
// the modplan application.
//
// # Plan
//
// A plan is an ordered list of AcademicYear values, each holding ordered
// Semester values, each holding the planned Module values:
//
//	year := model.AcademicYear{
//	    Year:  1,
//	    Label: "Year 1",
//	    Semesters: []model.Semester{
//	        {ID: 1, Name: "Semester 1", Modules: []model.Module{{Code: "CS1101S"}}},
//	    },
//	}
//
// Semester IDs are unique across the whole plan. Exchange semesters
// (IsExchange) never hold modules and contribute no credits.
//
// # Staged Modules
//
// StagedModule records a module the student already completed ("taken") or
// was exempted from ("exempted"). Staged modules count towards requirements
// without occupying a semester slot. Their ID is synthetic; their Code is the
// identity used for requirement matching.
//
// # Codes
//
// Module codes are normalized to uppercase with NormalizeCode before they
// are stored. CodeSet is the set type used for satisfied-code lookups.
//
// # Requirements
//
// RequirementCategory groups RequirementCourse lines. Each line carries a
// MatchKey that is either an exact code or a prefix wildcard such as "GEC*".
package model
