// Package report renders a planning board for people and for files.
//
// # Formats
//
//   - FormatText: plain text for terminals
//   - FormatMarkdown: headings, module tables and requirement checklists
//   - FormatJSON: a PlanFile, readable again with ReadPlanFile
//
// # Basic Usage
//
//	snap := report.NewSnapshot("My Plan", user.Name, state, engine)
//	out, err := report.Render(report.FormatMarkdown, snap)
//
//	// Or write straight to disk, named after the label
//	path, err := report.Export(dir, report.FormatMarkdown, snap)
package report
