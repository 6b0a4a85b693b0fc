package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/handiism/modplan/internal/drag"
	"github.com/handiism/modplan/internal/model"
)

const (
	headerHeight = 3
	footerHeight = 2
	sidebarWidth = 26
	sidebarGap   = 2
	semWidth     = 28
	semGap       = 2

	defaultWidth  = 100
	defaultHeight = 40
)

type regionKind int

const (
	regionNone regionKind = iota
	regionSemester
	regionModule
	regionStaged
	regionApproved
	regionAddButton
)

type rect struct {
	x, y, w, h int
}

func (r rect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

func (r rect) intersect(o rect) rect {
	x0, y0 := max(r.x, o.x), max(r.y, o.y)
	x1, y1 := min(r.x+r.w, o.x+o.w), min(r.y+r.h, o.y+o.h)
	if x1 <= x0 || y1 <= y0 {
		return rect{}
	}
	return rect{x: x0, y: y0, w: x1 - x0, h: y1 - y0}
}

func (r rect) empty() bool {
	return r.w <= 0 || r.h <= 0
}

// region is a clickable area of the board in screen cells.
type region struct {
	kind       regionKind
	rect       rect
	semesterID int
	code       string
	stagedID   string
}

type span struct {
	x     int
	text  string
	style lipgloss.Style
}

// screen is a cell grid of styled spans plus the regions under them.
type screen struct {
	width, height int
	rows          [][]span
	regions       []region
}

func newScreen(width, height int) *screen {
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = defaultHeight
	}
	return &screen{width: width, height: height, rows: make([][]span, height)}
}

func (s *screen) bounds() rect {
	return rect{w: s.width, h: s.height}
}

// put writes text at (x, y), cropped to clip.
func (s *screen) put(x, y int, text string, style lipgloss.Style, clip rect) {
	clip = clip.intersect(s.bounds())
	if y < clip.y || y >= clip.y+clip.h {
		return
	}
	runes := []rune(text)
	start, end := 0, len(runes)
	if x < clip.x {
		start = clip.x - x
	}
	if x+end > clip.x+clip.w {
		end = clip.x + clip.w - x
	}
	if start >= end {
		return
	}
	s.rows[y] = append(s.rows[y], span{x: x + start, text: string(runes[start:end]), style: style})
}

func (s *screen) addRegion(r region, clip rect) {
	r.rect = r.rect.intersect(clip.intersect(s.bounds()))
	if r.rect.empty() {
		return
	}
	s.regions = append(s.regions, r)
}

// hit returns the topmost region at (x, y).
func (s *screen) hit(x, y int) (region, bool) {
	for i := len(s.regions) - 1; i >= 0; i-- {
		if s.regions[i].rect.contains(x, y) {
			return s.regions[i], true
		}
	}
	return region{}, false
}

// semesterAt returns the semester whose box contains (x, y).
func (s *screen) semesterAt(x, y int) (int, bool) {
	for _, r := range s.regions {
		if r.kind == regionSemester && r.rect.contains(x, y) {
			return r.semesterID, true
		}
	}
	return 0, false
}

func (s *screen) find(match func(region) bool) (region, bool) {
	for _, r := range s.regions {
		if match(r) {
			return r, true
		}
	}
	return region{}, false
}

func (s *screen) render() string {
	lines := make([]string, len(s.rows))
	for y, row := range s.rows {
		sort.SliceStable(row, func(i, j int) bool { return row[i].x < row[j].x })
		var b strings.Builder
		cursor := 0
		for _, sp := range row {
			runes := []rune(sp.text)
			if sp.x < cursor {
				skip := cursor - sp.x
				if skip >= len(runes) {
					continue
				}
				runes = runes[skip:]
				sp.x = cursor
			}
			b.WriteString(strings.Repeat(" ", sp.x-cursor))
			b.WriteString(sp.style.Render(string(runes)))
			cursor = sp.x + len(runes)
		}
		lines[y] = b.String()
	}
	return strings.Join(lines, "\n")
}

// timelineClip is the scrolled board area.
func (s *screen) timelineClip() rect {
	x := sidebarWidth + sidebarGap
	return rect{x: x, y: headerHeight, w: s.width - x, h: s.height - headerHeight - footerHeight}
}

func (s *screen) sidebarClip() rect {
	return rect{x: 0, y: headerHeight, w: sidebarWidth, h: s.height - headerHeight - footerHeight}
}

// layoutBoard places the sidebar and the scrolled timeline for m.
func layoutBoard(m Model) *screen {
	s := newScreen(m.width, m.height)
	layoutSidebar(s, m)
	layoutTimeline(s, m)
	return s
}

func layoutSidebar(s *screen, m Model) {
	clip := s.sidebarClip()
	y := clip.y

	s.put(0, y, "COMPLETED / EXEMPTED", sectionStyle, clip)
	y++

	s.put(0, y, "[+ Add module]", buttonStyle, clip)
	s.addRegion(region{kind: regionAddButton, rect: rect{x: 0, y: y, w: len("[+ Add module]"), h: 1}}, clip)
	y++

	entries := m.board.Staging.Entries()
	if len(entries) == 0 {
		s.put(0, y, "  nothing staged", dimStyle, clip)
		y++
	}
	for _, e := range entries {
		style := cardStyle
		if m.selection.kind == regionStaged && m.selection.stagedID == e.ID {
			style = selectedStyle
		}
		text := fmt.Sprintf(" %-9s %-8s %2d", e.Code, e.Type.Label(), e.Credits)
		s.put(0, y, pad(text, sidebarWidth-1), style, clip)
		s.addRegion(region{kind: regionStaged, rect: rect{x: 0, y: y, w: sidebarWidth - 1, h: 1}, stagedID: e.ID, code: e.Code}, clip)
		y++
	}
	y++

	s.put(0, y, pad(" ✓ Approved modules", sidebarWidth-1), approvedStyle, clip)
	s.addRegion(region{kind: regionApproved, rect: rect{x: 0, y: y, w: sidebarWidth - 1, h: 1}}, clip)
	y += 2

	s.put(0, y, "REQUIREMENTS", sectionStyle, clip)
	y++
	for _, c := range m.progressInfo().Categories {
		style := infoStyle
		if c.Complete() {
			style = successStyle
		}
		s.put(0, y, pad(fmt.Sprintf("%s %d/%d", truncate(c.Category.Name, sidebarWidth-7), c.Fulfilled, c.Total()), sidebarWidth-1), style, clip)
		y++
		if !m.showRequirements {
			continue
		}
		for _, l := range c.Lines {
			tick, style := "-", dimStyle
			if l.Satisfied {
				tick, style = "+", successStyle
			}
			s.put(0, y, truncate(fmt.Sprintf("  %s %s", tick, l.Course.Match), sidebarWidth-1), style, clip)
			y++
		}
	}
}

func layoutTimeline(s *screen, m Model) {
	clip := s.timelineClip()
	ox := clip.x - m.scrollX
	oy := clip.y - m.scrollY
	tl := m.board.Timeline

	highlighted, hasHighlight := m.board.Drag.Highlighted()
	dragging := m.board.Drag.State() != drag.StateIdle

	cy := 0
	for _, year := range tl.PlanningYears() {
		header := fmt.Sprintf("%s · %s · %d MCs", year.Label, year.AcademicYearLabel, tl.CreditsForYear(year.Year))
		s.put(ox, oy+cy, header, yearStyle, clip)
		cy++

		rows := 0
		for _, sem := range year.Semesters {
			rows = max(rows, len(sem.Modules))
		}
		boxH := rows + 2

		for i, sem := range year.Semesters {
			sx := ox + i*(semWidth+semGap)
			sy := oy + cy
			s.addRegion(region{kind: regionSemester, rect: rect{x: sx, y: sy, w: semWidth, h: boxH}, semesterID: sem.ID}, clip)

			titleStyle := semesterStyle
			title := fmt.Sprintf(" %s · %d MCs", sem.Name, tl.CreditsForSemester(sem.ID))
			switch {
			case sem.IsExchange:
				titleStyle = exchangeStyle
				title = fmt.Sprintf(" %s · exchange", sem.Name)
			case hasHighlight && highlighted == sem.ID:
				titleStyle = highlightStyle
			}
			s.put(sx, sy, pad(title, semWidth), titleStyle, clip)

			for j, mod := range sem.Modules {
				style := cardStyle
				if mod.HasError {
					style = warningCardStyle
				}
				if m.selection.kind == regionModule && m.selection.semesterID == sem.ID && m.selection.code == mod.Code {
					style = selectedStyle
				}
				s.put(sx, sy+1+j, pad(cardText(mod), semWidth), style, clip)
				s.addRegion(region{kind: regionModule, rect: rect{x: sx, y: sy + 1 + j, w: semWidth, h: 1}, semesterID: sem.ID, code: mod.Code}, clip)
			}

			if dragging && !sem.IsExchange {
				s.put(sx, sy+boxH-1, pad("   drop here", semWidth), dropStyle, clip)
			}
		}
		cy += boxH + 1
	}
}

func cardText(m model.Module) string {
	prefix := " "
	if m.HasError {
		prefix = "!"
	}
	return truncate(fmt.Sprintf("%s%-8s %s", prefix, m.Code, m.Title), semWidth)
}

func pad(s string, width int) string {
	s = truncate(s, width)
	if n := len([]rune(s)); n < width {
		s += strings.Repeat(" ", width-n)
	}
	return s
}

func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:max(width, 0)])
	}
	return string(runes[:width-1]) + "…"
}
