package tui

import (
	"context"
	"errors"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/planner"
	"github.com/handiism/modplan/internal/report"
)

var errNotConfigured = errors.New("planner service not configured")

// listenProgress waits for the next planner event.
func listenProgress(ch <-chan planner.ProgressEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// bootstrap loads the catalogue, starter plan and stored session.
func (m Model) bootstrap() tea.Cmd {
	ctx, manager := m.ctx, m.deps.Planner
	return func() tea.Msg {
		if manager == nil {
			return BootMsg{Err: errNotConfigured}
		}
		boot, err := manager.Initialize(ctx)
		return BootMsg{Boot: boot, Err: err}
	}
}

// submitAuth runs login or signup with the current form values.
func (m Model) submitAuth() tea.Cmd {
	ctx, epoch := m.ctx, m.epoch
	accounts, manager := m.deps.Accounts, m.deps.Planner
	mode := m.authMode
	username := m.inputs[fieldUsername].Value()
	email := m.inputs[fieldEmail].Value()
	password := m.inputs[fieldPassword].Value()

	return func() tea.Msg {
		if accounts == nil {
			return AuthDoneMsg{Epoch: epoch, Err: errNotConfigured}
		}
		var (
			user model.User
			err  error
		)
		if mode == modeSignup {
			user, err = accounts.Signup(ctx, username, email, password)
		} else {
			user, err = accounts.Login(ctx, email, password)
		}
		return authResult(ctx, manager, epoch, user, err)
	}
}

// guestLogin signs in as a guest, falling back to the offline identity.
func (m Model) guestLogin() tea.Cmd {
	ctx, epoch := m.ctx, m.epoch
	accounts, manager := m.deps.Accounts, m.deps.Planner

	return func() tea.Msg {
		if accounts == nil {
			return AuthDoneMsg{Epoch: epoch, Err: errNotConfigured}
		}
		user, err := accounts.Guest(ctx)
		return authResult(ctx, manager, epoch, user, err)
	}
}

func authResult(ctx context.Context, manager *planner.Manager, epoch int, user model.User, err error) AuthDoneMsg {
	if err != nil {
		return AuthDoneMsg{Epoch: epoch, Err: err}
	}
	msg := AuthDoneMsg{Epoch: epoch, User: user}
	if manager != nil {
		msg.Status, msg.Load = manager.CheckSavedPlan(ctx, user)
	}
	return msg
}

// generate requests, stores and returns a generated plan.
func (m Model) generate(focusArea string) tea.Cmd {
	ctx, epoch := m.ctx, m.epoch
	manager, userID := m.deps.Planner, m.user.ID

	return func() tea.Msg {
		if manager == nil {
			return GenerateDoneMsg{Epoch: epoch, Err: errNotConfigured}
		}
		apply, err := manager.Generate(ctx, userID, focusArea)
		return GenerateDoneMsg{Epoch: epoch, Apply: apply, Err: err}
	}
}

// skip stores an empty plan in the background.
func (m Model) skip() tea.Cmd {
	ctx, epoch := m.ctx, m.epoch
	manager, userID := m.deps.Planner, m.user.ID

	return func() tea.Msg {
		if manager != nil {
			manager.Skip(ctx, userID)
		}
		return SkipDoneMsg{Epoch: epoch}
	}
}

// save stores the current board.
func (m Model) save() tea.Cmd {
	ctx, epoch := m.ctx, m.epoch
	manager, userID, state := m.deps.Planner, m.user.ID, m.board

	return func() tea.Msg {
		if manager == nil {
			return SaveDoneMsg{Epoch: epoch, Err: errNotConfigured}
		}
		return SaveDoneMsg{Epoch: epoch, Err: manager.Save(ctx, userID, state)}
	}
}

// export writes a Markdown report of the current board.
func (m Model) export() tea.Cmd {
	settings := m.deps.Settings
	snap := report.NewSnapshot(settings.PlanLabel, m.user.Name, m.board, m.engine)

	return func() tea.Msg {
		path, err := report.Export(settings.ExportDir, report.FormatMarkdown, snap)
		return ExportDoneMsg{Path: path, Err: err}
	}
}
