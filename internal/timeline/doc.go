// Package timeline holds the ordered years → semesters → modules structure
// of a study plan.
//
// Timeline is an immutable value. Every mutating method returns a new
// Timeline and leaves the receiver untouched; a method that changes nothing
// returns the receiver itself, so Revision stays the same:
//
//	tl, _ := timeline.Template()
//	next := tl.AddModule(4, model.Module{Code: "CS3243", Title: "Introduction to AI"})
//	if next.Revision() != tl.Revision() {
//	    // redraw
//	}
//
// Adding a code that already exists in the target semester, or targeting an
// unknown semester, is a no-op. Exchange semesters report zero credits
// regardless of their contents.
package timeline
