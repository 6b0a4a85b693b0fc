package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/config"
	"github.com/handiism/modplan/internal/drag"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/planner"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

func newBoardModel(t *testing.T) Model {
	t.Helper()
	tl, err := timeline.Template()
	if err != nil {
		t.Fatal(err)
	}
	categories, err := requirements.Default()
	if err != nil {
		t.Fatal(err)
	}

	m := NewModel(Deps{Settings: config.DefaultSettings()})
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	m = update(t, m, BootMsg{Boot: planner.Bootstrap{
		Board:      board.New(tl, staging.NewPool()),
		Engine:     requirements.NewEngine(categories),
		User:       model.User{ID: "7", Name: "Ada"},
		SignedIn:   true,
		PlanStatus: planner.PlanExists,
	}})
	if m.state != StateBoard {
		t.Fatalf("state = %v, want board", m.state)
	}
	return m
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	return next.(Model)
}

func typeText(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func findRegion(t *testing.T, m Model, match func(region) bool) region {
	t.Helper()
	r, ok := layoutBoard(m).find(match)
	if !ok {
		t.Fatal("region not on screen")
	}
	return r
}

func semesterRegion(t *testing.T, m Model, id int) region {
	return findRegion(t, m, func(r region) bool { return r.kind == regionSemester && r.semesterID == id })
}

func TestBoot_Routes(t *testing.T) {
	tl, _ := timeline.Template()
	base := planner.Bootstrap{Board: board.New(tl, staging.NewPool())}

	tests := []struct {
		name string
		boot planner.Bootstrap
		want State
	}{
		{"signed out", base, StateAuth},
		{"needs onboarding", planner.Bootstrap{Board: base.Board, SignedIn: true, PlanStatus: planner.PlanMissing}, StateOnboarding},
		{"returning user", planner.Bootstrap{Board: base.Board, SignedIn: true, PlanStatus: planner.PlanExists}, StateBoard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := update(t, NewModel(Deps{}), BootMsg{Boot: tt.boot})
			if m.state != tt.want {
				t.Errorf("state = %v, want %v", m.state, tt.want)
			}
		})
	}
}

func TestDialog_AddScenario(t *testing.T) {
	m := newBoardModel(t)

	m = update(t, m, typeText("a"))
	if !m.board.Dialog.Open() {
		t.Fatal("a should open the add dialog")
	}

	m = update(t, m, typeText("   "))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if !m.board.Dialog.Open() {
		t.Fatal("a blank code must keep the dialog open")
	}
	if m.board.Staging.Len() != 0 {
		t.Fatal("a blank code must not stage anything")
	}

	m = update(t, m, typeText("cs2030s"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.board.Dialog.Open() {
		t.Error("dialog should close after a valid save")
	}
	entries := m.board.Staging.Entries()
	if len(entries) != 1 || entries[0].Code != "CS2030S" || entries[0].Type != model.StagedExempted || entries[0].Credits != 4 {
		t.Errorf("staged = %+v, want CS2030S exempted 4", entries)
	}
}

func TestDialog_EscapeCloses(t *testing.T) {
	m := newBoardModel(t)
	m = update(t, m, typeText("a"))
	m = update(t, m, typeText("cs1010"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	if m.board.Dialog.Open() || m.board.Staging.Len() != 0 {
		t.Errorf("esc left dialog %+v with %d staged", m.board.Dialog, m.board.Staging.Len())
	}
}

func TestMouse_MoveTimelineCard(t *testing.T) {
	m := newBoardModel(t)
	card := findRegion(t, m, func(r region) bool { return r.kind == regionModule && r.code == "CS1101S" })
	exchange := semesterRegion(t, m, 6)
	target := semesterRegion(t, m, 4)

	m = update(t, m, mouse(tea.MouseActionPress, card.rect.x+1, card.rect.y))
	if m.board.Drag.State() != drag.StateDragging {
		t.Fatalf("drag state = %s, want dragging", m.board.Drag.State())
	}

	m = update(t, m, mouse(tea.MouseActionMotion, exchange.rect.x+1, exchange.rect.y))
	if _, ok := m.board.Drag.Highlighted(); ok {
		t.Error("exchange semester must not be highlighted")
	}

	m = update(t, m, mouse(tea.MouseActionMotion, target.rect.x+1, target.rect.y))
	if id, ok := m.board.Drag.Highlighted(); !ok || id != 4 {
		t.Errorf("highlight = %d, %v; want 4", id, ok)
	}

	m = update(t, m, mouse(tea.MouseActionRelease, target.rect.x+1, target.rect.y))
	if m.board.Drag.State() != drag.StateIdle {
		t.Errorf("drag state = %s, want idle", m.board.Drag.State())
	}
	if sem, _ := m.board.Timeline.Locate("CS1101S"); sem != 4 {
		t.Errorf("CS1101S in semester %d, want 4", sem)
	}
}

func TestMouse_DropStagedCard(t *testing.T) {
	m := newBoardModel(t)
	m = update(t, m, typeText("a"))
	m = update(t, m, typeText("cs1231s"))
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	card := findRegion(t, m, func(r region) bool { return r.kind == regionStaged })
	target := semesterRegion(t, m, 3)

	m = update(t, m, mouse(tea.MouseActionPress, card.rect.x+1, card.rect.y))
	m = update(t, m, mouse(tea.MouseActionMotion, target.rect.x+2, target.rect.y+1))
	m = update(t, m, mouse(tea.MouseActionRelease, target.rect.x+2, target.rect.y+1))

	sem, _ := m.board.Timeline.Semester(3)
	if !sem.HasModule("CS1231S") {
		t.Fatalf("semester 3 = %+v, want CS1231S", sem.Modules)
	}
	if m.board.Staging.Len() != 1 {
		t.Error("the staged entry should remain after a drop")
	}
}

func TestMouse_ReleaseOutsideIsNoop(t *testing.T) {
	m := newBoardModel(t)
	card := findRegion(t, m, func(r region) bool { return r.kind == regionModule && r.code == "MA1521" })
	rev := m.board.Timeline.Revision()

	m = update(t, m, mouse(tea.MouseActionPress, card.rect.x, card.rect.y))
	m = update(t, m, mouse(tea.MouseActionRelease, 1, 1))

	if m.board.Timeline.Revision() != rev {
		t.Error("releasing outside a semester changed the timeline")
	}
	if m.board.Drag.State() != drag.StateIdle {
		t.Error("drag must end on release")
	}
}

func TestMouse_Pan(t *testing.T) {
	m := newBoardModel(t)

	m = update(t, m, mouse(tea.MouseActionPress, 100, 45))
	if !m.board.Drag.Panning() {
		t.Fatal("pressing empty canvas should start a pan")
	}

	m = update(t, m, mouse(tea.MouseActionMotion, 90, 40))
	if m.scrollX != 15 || m.scrollY != 7 {
		t.Errorf("scroll = (%d, %d), want (15, 7)", m.scrollX, m.scrollY)
	}

	m = update(t, m, mouse(tea.MouseActionMotion, 120, 60))
	if m.scrollX != 0 || m.scrollY != 0 {
		t.Errorf("scroll = (%d, %d), want clamped to (0, 0)", m.scrollX, m.scrollY)
	}

	m = update(t, m, mouse(tea.MouseActionRelease, 120, 60))
	if m.board.Drag.Panning() {
		t.Error("release should end the pan")
	}
}

func TestResize_ResetsDrag(t *testing.T) {
	m := newBoardModel(t)
	card := findRegion(t, m, func(r region) bool { return r.kind == regionModule && r.code == "CS1101S" })
	target := semesterRegion(t, m, 4)

	m = update(t, m, mouse(tea.MouseActionPress, card.rect.x, card.rect.y))
	m = update(t, m, mouse(tea.MouseActionMotion, target.rect.x, target.rect.y))
	if _, ok := m.board.Drag.Highlighted(); !ok {
		t.Fatal("semester 4 should be highlighted before the resize")
	}

	m = update(t, m, tea.WindowSizeMsg{Width: 90, Height: 40})
	if m.board.Drag.State() != drag.StateIdle {
		t.Errorf("drag state = %s, want idle after resize", m.board.Drag.State())
	}
	if _, ok := m.board.Drag.Highlighted(); ok {
		t.Error("highlight survived the resize")
	}

	rev := m.board.Timeline.Revision()
	m = update(t, m, mouse(tea.MouseActionRelease, target.rect.x, target.rect.y))
	if m.board.Timeline.Revision() != rev {
		t.Error("a release after the resize must not drop the card")
	}
}

func TestResize_EndsPan(t *testing.T) {
	m := newBoardModel(t)
	m = update(t, m, mouse(tea.MouseActionPress, 100, 45))
	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 50})
	if m.board.Drag.Panning() {
		t.Error("pan survived the resize")
	}
}

func TestKeys_RecommendAndRemove(t *testing.T) {
	m := newBoardModel(t)

	m = update(t, m, typeText("r"))
	sem, _ := m.board.Timeline.Semester(4)
	if !sem.HasModule("CS3243") {
		t.Fatalf("semester 4 = %+v, want CS3243", sem.Modules)
	}

	card := findRegion(t, m, func(r region) bool { return r.kind == regionModule && r.code == "CS3243" })
	m = update(t, m, mouse(tea.MouseActionPress, card.rect.x, card.rect.y))
	m = update(t, m, mouse(tea.MouseActionRelease, card.rect.x, card.rect.y))
	m = update(t, m, typeText("x"))

	sem, _ = m.board.Timeline.Semester(4)
	if sem.HasModule("CS3243") {
		t.Error("x should remove the selected module")
	}
}

func TestAsync_BusyAndEpoch(t *testing.T) {
	m := newBoardModel(t)

	next, cmd := m.Update(typeText("g"))
	m = next.(Model)
	if cmd == nil || m.busy&opGenerate == 0 {
		t.Fatal("g should start a generation")
	}
	if _, cmd := m.Update(typeText("g")); cmd != nil {
		t.Error("a second g while generating must be ignored")
	}

	plan := board.ApplyPlan{Plan: map[string][]model.Module{"y1s1": {{Code: "CS1010"}}}}
	stale := GenerateDoneMsg{Epoch: m.epoch - 1, Apply: plan}
	if got := update(t, m, stale); got.busy&opGenerate == 0 {
		t.Error("a stale result must be dropped")
	}

	m = update(t, m, GenerateDoneMsg{Epoch: m.epoch, Apply: plan})
	if m.busy&opGenerate != 0 {
		t.Error("busy flag not cleared")
	}
	sem, _ := m.board.Timeline.Semester(1)
	if len(sem.Modules) != 1 || sem.Modules[0].Code != "CS1010" {
		t.Errorf("semester 1 = %+v", sem.Modules)
	}
}

func TestLogout_DropsInFlightResults(t *testing.T) {
	m := newBoardModel(t)
	m = update(t, m, typeText("r"))
	before := m.epoch

	m = update(t, m, typeText("L"))
	if m.state != StateAuth || m.epoch != before+1 {
		t.Fatalf("state = %v, epoch = %d", m.state, m.epoch)
	}
	if sem, _ := m.board.Timeline.Semester(4); sem.HasModule("CS3243") {
		t.Error("logout should restore the starter board")
	}

	m = update(t, m, AuthDoneMsg{Epoch: before, User: model.User{ID: "old"}})
	if m.state != StateAuth || m.user.ID != "" {
		t.Error("a result from before logout must be dropped")
	}

	m = update(t, m, AuthDoneMsg{Epoch: m.epoch, User: model.User{ID: "9", Name: "Bo"}, Status: planner.PlanMissing})
	if m.state != StateOnboarding || m.user.Name != "Bo" {
		t.Errorf("state = %v, user = %+v", m.state, m.user)
	}
}

func TestView_Renders(t *testing.T) {
	m := newBoardModel(t)
	out := m.View()
	if out == "" {
		t.Fatal("empty view")
	}

	m = update(t, m, typeText("a"))
	if m.View() == out {
		t.Error("dialog view should differ from the board")
	}
}
