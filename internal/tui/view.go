package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/drag"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/planner"
)

// View renders the UI.
func (m Model) View() string {
	switch m.state {
	case StateLoading:
		return m.viewLoading()
	case StateAuth:
		return m.viewAuth()
	case StateOnboarding:
		return m.viewOnboarding()
	case StateBoard:
		if m.board.Dialog.Open() {
			return m.viewDialog()
		}
		return m.viewBoard()
	case StateError:
		return m.viewError()
	}
	return ""
}

func (m Model) viewLoading() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("modplan"))
	b.WriteString("\n\n")
	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Loading your plan..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewAuth() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("modplan"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Plan your modules, semester by semester"))
	b.WriteString("\n\n")

	heading := "Log in"
	if m.authMode == modeSignup {
		heading = "Create an account"
	}
	b.WriteString(subtitleStyle.Render(heading))
	b.WriteString("\n\n")

	labels := []string{"Username", "Email", "Password"}
	for i := m.firstField(); i < len(m.inputs); i++ {
		b.WriteString(infoStyle.Render(fmt.Sprintf("%-9s", labels[i])))
		b.WriteString(" ")
		b.WriteString(m.inputs[i].View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy&opAuth != 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" Signing in...\n\n")
	}
	b.WriteString(m.renderLogs())
	b.WriteString("\n")

	switchHint := "ctrl+n: sign up"
	if m.authMode == modeSignup {
		switchHint = "ctrl+n: log in"
	}
	b.WriteString(dimStyle.Render("enter: submit • tab: next field • " + switchHint + " • ctrl+g: continue as guest • esc: quit"))

	return b.String()
}

func (m Model) viewOnboarding() string {
	var b strings.Builder
	s := m.deps.Settings

	b.WriteString(titleStyle.Render("Start your academic plan"))
	b.WriteString("\n\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Degree: %s • Major: %s • Matriculated: %s", s.Degree, s.Major, s.StartYear)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Up to %d MCs and %d hard modules per semester", s.MaxCreditsSem, s.MaxHardPerSem)))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Focus area"))
	b.WriteString("\n")

	for i, choice := range onboardingChoices() {
		cursor := "  "
		style := dimStyle
		if i == m.focusChoice {
			cursor = "› "
			style = successStyle
		}
		b.WriteString(style.Render(cursor + choice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.busy&opGenerate != 0 {
		b.WriteString(m.spinner.View())
		b.WriteString(" Generating your plan...\n\n")
	}
	b.WriteString(m.renderLogs())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("enter: generate • ↑/↓: choose • s: skip • esc: later"))

	return b.String()
}

func (m Model) viewBoard() string {
	s := layoutBoard(m)
	full := s.bounds()

	info := m.progressInfo()
	name := m.user.Name
	if m.user.IsGuest {
		name += " (guest)"
	}
	s.put(0, 0, "modplan", titleStyle, full)
	s.put(9, 0, name, dimStyle, full)

	bar := m.progress.ViewAs(float64(info.Percent) / 100)
	summary := fmt.Sprintf(" %d/%d MCs • %d%% • %d staged MCs", info.CreditsEarned, model.GraduationCredits, info.Percent, info.StagedCredits)
	line := lipgloss.JoinHorizontal(lipgloss.Top, bar, infoStyle.Render(summary))

	status := m.statusLine()
	helpLine := m.help.View(m.keys)

	rows := strings.Split(s.render(), "\n")
	rows[1] = line
	if len(rows) >= footerHeight {
		rows[len(rows)-2] = status
		rows[len(rows)-1] = helpLine
	}
	return strings.Join(rows, "\n")
}

func (m Model) statusLine() string {
	if m.busy&(opGenerate|opSave) != 0 {
		what := "Saving..."
		if m.busy&opGenerate != 0 {
			what = "Generating plan..."
		}
		return m.spinner.View() + " " + infoStyle.Render(what)
	}

	if src, ok := m.board.Drag.Source(); ok {
		label := src.Code
		switch src.Kind {
		case drag.SourceStagedCard:
			if e, ok := m.board.Staging.Get(src.StagedID); ok {
				label = e.Code
			}
		case drag.SourceApproved:
			label = "approved modules"
		}
		target := ""
		if id, ok := m.board.Drag.Highlighted(); ok {
			if sem, ok := m.board.Timeline.Semester(id); ok {
				target = " → " + sem.Name
			}
		}
		return warningStyle.Render("Dragging " + label + target)
	}

	if len(m.logs) == 0 {
		return ""
	}
	return renderLog(m.logs[len(m.logs)-1])
}

func (m Model) viewDialog() string {
	var b strings.Builder

	title := "Add completed module"
	if m.board.Dialog.Mode == board.DialogEditing {
		title = "Edit completed module"
	}
	b.WriteString(subtitleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString("Code  ")
	b.WriteString(m.dialogInput.View())
	b.WriteString("\n")

	taken, exempted := "( )", "( )"
	if m.board.Dialog.Type == model.StagedExempted {
		exempted = "(•)"
	} else {
		taken = "(•)"
	}
	b.WriteString(fmt.Sprintf("Type  %s Taken  %s Exempted\n\n", taken, exempted))
	b.WriteString(dimStyle.Render("enter: save • tab: toggle type • esc: close"))

	box := boxStyle.Render(b.String())
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Could not start:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(dimStyle.Render("q: quit"))

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder
	for _, log := range m.logs {
		b.WriteString(renderLog(log))
		b.WriteString("\n")
	}
	return b.String()
}

func renderLog(log LogEntry) string {
	var style lipgloss.Style
	prefix := "•"
	switch log.Level {
	case planner.LevelError:
		style = errorStyle
		prefix = "✗"
	case planner.LevelWarning:
		style = warningStyle
		prefix = "!"
	case planner.LevelSuccess:
		style = successStyle
		prefix = "✓"
	case planner.LevelInfo:
		style = infoStyle
		prefix = "›"
	default:
		style = dimStyle
	}
	return style.Render(prefix + " " + log.Message)
}
