// Package tui provides a Bubble Tea terminal user interface for modplan.
package tui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"go.uber.org/zap"

	"github.com/handiism/modplan/internal/account"
	"github.com/handiism/modplan/internal/api"
	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/config"
	"github.com/handiism/modplan/internal/drag"
	mphttp "github.com/handiism/modplan/internal/http"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/planner"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/session"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B"))

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	sectionStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#F8B500"))

	yearStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#4ECDC4"))

	semesterStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#34495E"))

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#1B1B1B")).
			Background(lipgloss.Color("#95E1A3"))

	exchangeStyle = lipgloss.NewStyle().
			Italic(true).
			Foreground(lipgloss.Color("#6C757D")).
			Background(lipgloss.Color("#2C2C2C"))

	cardStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#E0E0E0"))

	warningCardStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#FFE66D"))

	selectedStyle = lipgloss.NewStyle().
			Reverse(true)

	approvedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	buttonStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4")).
			Underline(true)

	dropStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D")).
			Italic(true)
)

// State represents the current UI screen.
type State int

const (
	StateLoading State = iota
	StateAuth
	StateOnboarding
	StateBoard
	StateError
)

// op is a boundary call kind. At most one of each kind runs at a time.
type op int

const (
	opAuth op = 1 << iota
	opGenerate
	opSave
	opSkip
	opExport
)

type authMode int

const (
	modeLogin authMode = iota
	modeSignup
)

// Auth form fields.
const (
	fieldUsername = iota
	fieldEmail
	fieldPassword
)

// LogEntry represents a status message in the UI.
type LogEntry struct {
	Message string
	Level   planner.ProgressLevel
}

// Deps are the collaborators the UI drives.
type Deps struct {
	Settings *config.Settings
	Accounts *account.Service
	Planner  *planner.Manager
	Progress <-chan planner.ProgressEvent
	Logger   *zap.Logger
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	deps  Deps
	state State
	err   error

	board   board.State
	initial board.State
	engine  *requirements.Engine
	user    model.User

	// epoch changes whenever the signed-in context changes; results of
	// calls started under an older epoch are dropped.
	epoch int
	busy  op

	authMode   authMode
	inputs     []textinput.Model
	focusField int

	focusChoice int

	dialogInput textinput.Model

	selection        region
	scrollX, scrollY int
	showRequirements bool

	spinner  spinner.Model
	progress progress.Model
	help     help.Model
	keys     boardKeys
	logs     []LogEntry

	ctx    context.Context
	cancel context.CancelFunc

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(deps Deps) Model {
	if deps.Settings == nil {
		deps.Settings = config.DefaultSettings()
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	inputs := make([]textinput.Model, 3)
	for i := range inputs {
		ti := textinput.New()
		ti.CharLimit = 120
		ti.Width = 40
		inputs[i] = ti
	}
	inputs[fieldUsername].Placeholder = "username"
	inputs[fieldEmail].Placeholder = "email@example.com"
	inputs[fieldPassword].Placeholder = "password"
	inputs[fieldPassword].EchoMode = textinput.EchoPassword
	inputs[fieldPassword].EchoCharacter = '•'
	inputs[fieldEmail].Focus()

	dialog := textinput.New()
	dialog.Placeholder = "CS1010"
	dialog.CharLimit = 16
	dialog.Width = 20

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 40

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		deps:        deps,
		state:       StateLoading,
		inputs:      inputs,
		focusField:  fieldEmail,
		dialogInput: dialog,
		spinner:     sp,
		progress:    prog,
		help:        help.New(),
		keys:        newBoardKeys(),
		ctx:         ctx,
		cancel:      cancel,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, m.bootstrap(), listenProgress(m.deps.Progress))
}

// Message types
type (
	// ProgressMsg carries a status update from the planner.
	ProgressMsg struct {
		Event planner.ProgressEvent
	}

	// BootMsg is sent when startup loading completes.
	BootMsg struct {
		Boot planner.Bootstrap
		Err  error
	}

	// AuthDoneMsg is sent when login, signup or guest access completes.
	AuthDoneMsg struct {
		Epoch  int
		User   model.User
		Status planner.PlanStatus
		Load   board.Action
		Err    error
	}

	// GenerateDoneMsg is sent when plan generation completes.
	GenerateDoneMsg struct {
		Epoch int
		Apply board.Action
		Err   error
	}

	// SaveDoneMsg is sent when saving the board completes.
	SaveDoneMsg struct {
		Epoch int
		Err   error
	}

	// SkipDoneMsg is sent when the empty plan has been stored.
	SkipDoneMsg struct {
		Epoch int
	}

	// ExportDoneMsg is sent when the report file is written.
	ExportDoneMsg struct {
		Path string
		Err  error
	}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = min(max(msg.Width-sidebarWidth-30, 20), 60)
		m.help.Width = msg.Width
		// Hit regions move with the layout.
		m.board = board.Reduce(m.board, board.ResetDrag{})
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.cancel()
			return m, tea.Quit
		}
		switch m.state {
		case StateAuth:
			return m.updateAuth(msg)
		case StateOnboarding:
			return m.updateOnboarding(msg)
		case StateBoard:
			if m.board.Dialog.Open() {
				return m.updateDialog(msg)
			}
			return m.updateBoard(msg)
		case StateError:
			if msg.String() == "q" || msg.String() == "esc" {
				return m, tea.Quit
			}
		}
		return m, nil

	case tea.MouseMsg:
		if m.state == StateBoard && !m.board.Dialog.Open() {
			m = m.handleMouse(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m.addLog(msg.Event.Message, msg.Event.Level)
		cmds = append(cmds, listenProgress(m.deps.Progress))

	case BootMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
			return m, nil
		}
		m.board = msg.Boot.Board
		m.initial = msg.Boot.Board
		m.engine = msg.Boot.Engine
		switch {
		case !msg.Boot.SignedIn:
			m.state = StateAuth
		case msg.Boot.NeedsOnboarding():
			m.user = msg.Boot.User
			m.state = StateOnboarding
		default:
			m.user = msg.Boot.User
			m.state = StateBoard
		}

	case AuthDoneMsg:
		if msg.Epoch != m.epoch {
			return m, nil
		}
		m.busy &^= opAuth
		if msg.Err != nil {
			m.addLog(api.UserMessage(msg.Err), planner.LevelError)
			return m, nil
		}
		m.user = msg.User
		m.board = board.Reduce(m.initial, msg.Load)
		m.clearAuthInputs()
		if msg.Status == planner.PlanMissing {
			m.state = StateOnboarding
		} else {
			m.state = StateBoard
		}
		m.addLog("Signed in as "+m.user.Name, planner.LevelSuccess)

	case GenerateDoneMsg:
		if msg.Epoch != m.epoch {
			return m, nil
		}
		m.busy &^= opGenerate
		if msg.Err != nil {
			return m, nil
		}
		m.board = board.Reduce(m.board, msg.Apply)
		m.state = StateBoard

	case SaveDoneMsg:
		if msg.Epoch != m.epoch {
			return m, nil
		}
		m.busy &^= opSave

	case SkipDoneMsg:
		if msg.Epoch != m.epoch {
			return m, nil
		}
		m.busy &^= opSkip

	case ExportDoneMsg:
		m.busy &^= opExport
		if msg.Err != nil {
			m.addLog("Export failed: "+msg.Err.Error(), planner.LevelError)
		} else {
			m.addLog("Exported to "+msg.Path, planner.LevelSuccess)
		}
	}

	if m.state == StateAuth {
		var cmd tea.Cmd
		m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) updateAuth(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return m, tea.Quit

	case "tab", "down":
		return m, m.moveFocus(1)

	case "shift+tab", "up":
		return m, m.moveFocus(-1)

	case "ctrl+n":
		if m.authMode == modeLogin {
			m.authMode = modeSignup
		} else {
			m.authMode = modeLogin
		}
		return m, m.setFocus(m.firstField())

	case "ctrl+g":
		if m.busy&opAuth != 0 {
			return m, nil
		}
		m.busy |= opAuth
		return m, tea.Batch(m.guestLogin(), m.spinner.Tick)

	case "enter":
		if m.busy&opAuth != 0 {
			return m, nil
		}
		m.busy |= opAuth
		return m, tea.Batch(m.submitAuth(), m.spinner.Tick)
	}

	var cmd tea.Cmd
	m.inputs[m.focusField], cmd = m.inputs[m.focusField].Update(msg)
	return m, cmd
}

func (m *Model) firstField() int {
	if m.authMode == modeSignup {
		return fieldUsername
	}
	return fieldEmail
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	first := m.firstField()
	n := len(m.inputs) - first
	next := first + ((m.focusField-first+delta)%n+n)%n
	return m.setFocus(next)
}

func (m *Model) setFocus(field int) tea.Cmd {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focusField = field
	return m.inputs[field].Focus()
}

func (m *Model) clearAuthInputs() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
	}
}

func (m Model) updateOnboarding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	choices := onboardingChoices()
	switch msg.String() {
	case "up", "k":
		m.focusChoice = (m.focusChoice - 1 + len(choices)) % len(choices)
	case "down", "j":
		m.focusChoice = (m.focusChoice + 1) % len(choices)
	case "enter":
		if m.busy&opGenerate != 0 {
			return m, nil
		}
		m.busy |= opGenerate
		return m, tea.Batch(m.generate(choices[m.focusChoice]), m.spinner.Tick)
	case "s":
		if m.busy&(opSkip|opGenerate) != 0 {
			return m, nil
		}
		m.busy |= opSkip
		m.state = StateBoard
		return m, m.skip()
	case "esc":
		if m.busy&opGenerate == 0 {
			m.state = StateBoard
		}
	}
	return m, nil
}

func onboardingChoices() []string {
	return append(api.FocusAreas(), "No specialisation")
}

func (m Model) updateDialog(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.board = board.Reduce(m.board, board.CancelDialog{})
		m.dialogInput.Blur()
		return m, nil

	case "tab":
		m.board = board.Reduce(m.board, board.SetDialogType{Type: m.board.Dialog.Type.Toggle()})
		return m, nil

	case "enter":
		m.board = board.Reduce(m.board, board.SetDialogCode{Code: m.dialogInput.Value()})
		m.board = board.Reduce(m.board, board.SaveDialog{})
		if !m.board.Dialog.Open() {
			m.dialogInput.Blur()
			m.dialogInput.SetValue("")
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.dialogInput, cmd = m.dialogInput.Update(msg)
	m.board = board.Reduce(m.board, board.SetDialogCode{Code: m.dialogInput.Value()})
	return m, cmd
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		m.cancel()
		return m, tea.Quit

	case "a":
		m.board = board.Reduce(m.board, board.OpenAddDialog{})
		m.dialogInput.SetValue("")
		return m, m.dialogInput.Focus()

	case "e":
		if m.selection.kind != regionStaged {
			return m, nil
		}
		m.board = board.Reduce(m.board, board.OpenEditDialog{ID: m.selection.stagedID})
		if !m.board.Dialog.Open() {
			return m, nil
		}
		m.dialogInput.SetValue(m.board.Dialog.Code)
		m.dialogInput.CursorEnd()
		return m, m.dialogInput.Focus()

	case "x", "delete":
		switch m.selection.kind {
		case regionStaged:
			m.board = board.Reduce(m.board, board.RemoveStaged{ID: m.selection.stagedID})
		case regionModule:
			m.board = board.Reduce(m.board, board.RemoveModule{SemesterID: m.selection.semesterID, Code: m.selection.code})
		}
		m.selection = region{}

	case "r":
		rec := m.deps.Settings.ToRecommendation()
		m.board = board.Reduce(m.board, board.AddRecommended{Recommendation: rec})
		m.addLog("Added "+rec.Module.Code+" to your plan", planner.LevelInfo)

	case "g":
		if m.busy&opGenerate != 0 {
			return m, nil
		}
		m.busy |= opGenerate
		return m, tea.Batch(m.generate(m.deps.Settings.FocusArea), m.spinner.Tick)

	case "ctrl+s":
		if m.busy&opSave != 0 {
			return m, nil
		}
		m.busy |= opSave
		return m, tea.Batch(m.save(), m.spinner.Tick)

	case "v":
		m.showRequirements = !m.showRequirements

	case "w":
		if m.busy&opExport != 0 {
			return m, nil
		}
		m.busy |= opExport
		return m, m.export()

	case "up":
		m.scrollY = max(m.scrollY-1, 0)
	case "down":
		m.scrollY++
	case "left":
		m.scrollX = max(m.scrollX-4, 0)
	case "right":
		m.scrollX += 4

	case "esc":
		m.board = board.Reduce(m.board, board.ResetDrag{})
		m.selection = region{}

	case "L":
		return m.logout()
	}
	return m, nil
}

func (m Model) logout() (tea.Model, tea.Cmd) {
	if m.deps.Accounts != nil {
		if err := m.deps.Accounts.Logout(); err != nil {
			m.deps.Logger.Warn("logout did not clear the session", zap.Error(err))
		}
	}
	m.epoch++
	m.busy = 0
	m.user = model.User{}
	m.board = m.initial
	m.selection = region{}
	m.scrollX, m.scrollY = 0, 0
	m.logs = nil
	m.authMode = modeLogin
	m.state = StateAuth
	return m, m.setFocus(fieldEmail)
}

// handleMouse drives the drag controller and pan mode from pointer events.
func (m Model) handleMouse(msg tea.MouseMsg) Model {
	s := layoutBoard(m)

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollY = max(m.scrollY-1, 0)
			return m
		case tea.MouseButtonWheelDown:
			m.scrollY++
			return m
		case tea.MouseButtonLeft:
		default:
			return m
		}

		r, ok := s.hit(msg.X, msg.Y)
		switch {
		case ok && r.kind == regionModule:
			m.selection = r
			m.board = board.Reduce(m.board, board.BeginDrag{Source: drag.Source{Kind: drag.SourceTimelineCard, SemesterID: r.semesterID, Code: r.code}})
		case ok && r.kind == regionStaged:
			m.selection = r
			m.board = board.Reduce(m.board, board.BeginDrag{Source: drag.Source{Kind: drag.SourceStagedCard, StagedID: r.stagedID}})
		case ok && r.kind == regionApproved:
			m.board = board.Reduce(m.board, board.BeginDrag{Source: drag.Source{Kind: drag.SourceApproved}})
		case ok && r.kind == regionAddButton:
			m.board = board.Reduce(m.board, board.OpenAddDialog{})
			m.dialogInput.SetValue("")
			m.dialogInput.Focus()
		case s.timelineClip().contains(msg.X, msg.Y):
			m.board.Drag = m.board.Drag.BeginPan(drag.HitCanvas, msg.X, msg.Y, m.scrollX, m.scrollY)
		}

	case tea.MouseActionMotion:
		if m.board.Drag.Panning() {
			if x, y, ok := m.board.Drag.PanTo(msg.X, msg.Y); ok {
				m.scrollX, m.scrollY = x, y
			}
			return m
		}
		if id, ok := s.semesterAt(msg.X, msg.Y); ok {
			m.board = board.Reduce(m.board, board.EnterTarget{SemesterID: id})
		}

	case tea.MouseActionRelease:
		if m.board.Drag.Panning() {
			m.board.Drag = m.board.Drag.EndPan()
			return m
		}
		if m.board.Drag.State() == drag.StateIdle {
			return m
		}
		if id, ok := s.semesterAt(msg.X, msg.Y); ok {
			m.board = board.Reduce(m.board, board.Drop{SemesterID: id})
		}
		m.board = board.Reduce(m.board, board.EndDrag{})
		if m.selection.kind == regionModule {
			if sem, ok := m.board.Timeline.Locate(m.selection.code); ok {
				m.selection.semesterID = sem
			}
		}
	}
	return m
}

func (m *Model) addLog(message string, level planner.ProgressLevel) {
	if message == "" {
		return
	}
	if level == planner.LevelVerbose {
		m.deps.Logger.Debug(message)
		return
	}
	m.logs = append(m.logs, LogEntry{Message: message, Level: level})
	// Keep only last 5 logs
	if len(m.logs) > 5 {
		m.logs = m.logs[len(m.logs)-5:]
	}
}

func (m Model) progressInfo() board.Progress {
	return m.board.Progress(m.engine)
}

// Run starts the TUI application.
func Run(settings *config.Settings, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	client := api.New(mphttp.NewClient(settings.APIURL, settings.AppName, settings.RequestTimeout), logger)
	store := session.NewStore(settings.SessionDir, settings.AppName)
	accounts := account.NewService(client, store, logger)

	events := make(chan planner.ProgressEvent, 64)
	manager := planner.NewManager(settings, client, accounts, logger, func(e planner.ProgressEvent) {
		select {
		case events <- e:
		default:
		}
	})

	m := NewModel(Deps{
		Settings: settings,
		Accounts: accounts,
		Planner:  manager,
		Progress: events,
		Logger:   logger,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
