package report

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/handiism/modplan/internal/board"
	ioutils "github.com/handiism/modplan/internal/io"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/timeline"
)

// Format represents supported report formats.
//
//   - Text: aligned plain text for terminals
//   - Markdown: headings and tables
//   - JSON: a plan file that can be read back with ParsePlanFile
type Format int

const (
	FormatText Format = iota
	FormatMarkdown
	FormatJSON
)

// ParseFormat maps a format name to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "json":
		return FormatJSON, nil
	}
	return FormatText, fmt.Errorf("unknown report format %q", name)
}

// Extension returns the file extension for the format, with the dot.
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatJSON:
		return ".json"
	default:
		return ".txt"
	}
}

// Snapshot is everything a report shows.
type Snapshot struct {
	Label    string
	User     string
	Timeline timeline.Timeline
	Staged   []model.StagedModule
	Progress board.Progress
}

// NewSnapshot captures state for rendering. engine may be nil.
func NewSnapshot(label, user string, state board.State, engine *requirements.Engine) Snapshot {
	return Snapshot{
		Label:    label,
		User:     user,
		Timeline: state.Timeline,
		Staged:   state.Staging.Entries(),
		Progress: state.Progress(engine),
	}
}

// Render produces the report for snap in format.
//
// Example:
//
//	out, err := report.Render(report.FormatMarkdown, snap)
//	os.WriteFile("plan.md", []byte(out), 0644)
func Render(format Format, snap Snapshot) (string, error) {
	switch format {
	case FormatText:
		return renderText(snap), nil
	case FormatMarkdown:
		return renderMarkdown(snap), nil
	case FormatJSON:
		data, err := json.MarshalIndent(NewPlanFile(snap.Timeline, snap.Staged), "", "  ")
		if err != nil {
			return "", err
		}
		return string(data) + "\n", nil
	}
	return "", fmt.Errorf("unknown report format %d", format)
}

// Export renders snap and writes it to dir, naming the file after the label.
// It returns the written path.
func Export(dir string, format Format, snap Snapshot) (string, error) {
	content, err := Render(format, snap)
	if err != nil {
		return "", err
	}
	name := ioutils.SanitizeFileName(snap.Label)
	if name == "" {
		name = "plan"
	}
	path := filepath.Join(dir, name+format.Extension())
	if err := ioutils.WriteFileAtomic(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("export %s: %w", path, err)
	}
	return path, nil
}

func renderText(snap Snapshot) string {
	var sb strings.Builder

	title := snap.Label
	if snap.User != "" {
		title = fmt.Sprintf("%s (%s)", snap.Label, snap.User)
	}
	sb.WriteString(title + "\n")
	sb.WriteString(strings.Repeat("=", len(title)) + "\n\n")

	fmt.Fprintf(&sb, "Progress: %d/%d MCs (%d%%)\n\n",
		snap.Progress.CreditsEarned, model.GraduationCredits, snap.Progress.Percent)

	for _, y := range snap.Timeline.PlanningYears() {
		fmt.Fprintf(&sb, "%s  %s  [%d MCs]\n", y.Label, y.AcademicYearLabel, snap.Timeline.CreditsForYear(y.Year))
		for _, sem := range y.Semesters {
			if sem.IsExchange {
				fmt.Fprintf(&sb, "  %s (exchange)\n", sem.Name)
				continue
			}
			fmt.Fprintf(&sb, "  %s  [%d MCs]\n", sem.Name, snap.Timeline.CreditsForSemester(sem.ID))
			for _, m := range sem.Modules {
				line := fmt.Sprintf("    %-9s %s", m.Code, m.Title)
				if m.HasError {
					line += "  ! " + m.ErrorMessage
				}
				sb.WriteString(strings.TrimRight(line, " ") + "\n")
			}
		}
		sb.WriteString("\n")
	}

	if len(snap.Staged) > 0 {
		sb.WriteString("Completed / exempted\n")
		for _, s := range snap.Staged {
			fmt.Fprintf(&sb, "  %-9s %-8s %d MCs\n", s.Code, s.Type.Label(), s.Credits)
		}
		sb.WriteString("\n")
	}

	for _, c := range snap.Progress.Categories {
		mark := " "
		if c.Complete() {
			mark = "x"
		}
		fmt.Fprintf(&sb, "[%s] %s  %d/%d\n", mark, c.Category.Name, c.Fulfilled, c.Total())
		for _, l := range c.Lines {
			tick := "-"
			if l.Satisfied {
				tick = "+"
			}
			fmt.Fprintf(&sb, "    %s %s %s\n", tick, l.Course.Match, l.Course.Title)
		}
	}

	return sb.String()
}

func renderMarkdown(snap Snapshot) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# %s\n\n", snap.Label)
	if snap.User != "" {
		fmt.Fprintf(&sb, "_%s_\n\n", snap.User)
	}
	fmt.Fprintf(&sb, "**Progress:** %d/%d MCs (%d%%)\n\n",
		snap.Progress.CreditsEarned, model.GraduationCredits, snap.Progress.Percent)

	for _, y := range snap.Timeline.PlanningYears() {
		fmt.Fprintf(&sb, "## %s (%s)\n\n", y.Label, y.AcademicYearLabel)
		for _, sem := range y.Semesters {
			if sem.IsExchange {
				fmt.Fprintf(&sb, "### %s\n\n_Exchange semester_\n\n", sem.Name)
				continue
			}
			fmt.Fprintf(&sb, "### %s (%d MCs)\n\n", sem.Name, snap.Timeline.CreditsForSemester(sem.ID))
			if len(sem.Modules) == 0 {
				sb.WriteString("_No modules_\n\n")
				continue
			}
			sb.WriteString("| Code | Title | Note |\n|---|---|---|\n")
			for _, m := range sem.Modules {
				note := ""
				if m.HasError {
					note = m.ErrorMessage
				}
				fmt.Fprintf(&sb, "| %s | %s | %s |\n", m.Code, escapeCell(m.Title), escapeCell(note))
			}
			sb.WriteString("\n")
		}
	}

	if len(snap.Staged) > 0 {
		sb.WriteString("## Completed / exempted\n\n")
		for _, s := range snap.Staged {
			fmt.Fprintf(&sb, "- %s (%s, %d MCs)\n", s.Code, s.Type.Label(), s.Credits)
		}
		sb.WriteString("\n")
	}

	if len(snap.Progress.Categories) > 0 {
		sb.WriteString("## Requirements\n\n")
		for _, c := range snap.Progress.Categories {
			fmt.Fprintf(&sb, "### %s (%d/%d)\n\n", c.Category.Name, c.Fulfilled, c.Total())
			for _, l := range c.Lines {
				box := " "
				if l.Satisfied {
					box = "x"
				}
				fmt.Fprintf(&sb, "- [%s] %s %s\n", box, l.Course.Match, l.Course.Title)
			}
			sb.WriteString("\n")
		}
	}

	return sb.String()
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
