package drag

// State is the drag phase.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateHovering
)

func (s State) String() string {
	switch s {
	case StateDragging:
		return "dragging"
	case StateHovering:
		return "hovering"
	default:
		return "idle"
	}
}

// SourceKind identifies what kind of card is being dragged.
type SourceKind int

const (
	SourceNone SourceKind = iota
	SourceTimelineCard
	SourceStagedCard
	SourceApproved
)

// Source describes the dragged card.
type Source struct {
	Kind SourceKind

	// SemesterID and Code identify a timeline card.
	SemesterID int
	Code       string

	// StagedID identifies a staged card.
	StagedID string
}

// Target is a semester the pointer entered.
type Target struct {
	SemesterID int
	IsExchange bool
}

// HitKind classifies what lies under the pointer on press.
type HitKind int

const (
	HitCanvas HitKind = iota
	HitCard
	HitButton
	HitInput
)

// panFactor scales pointer travel into scroll distance, as a ratio.
const (
	panFactorNum = 3
	panFactorDen = 2
)

// Controller is an immutable drag and pan state machine. The zero value is
// Idle with no pan in progress.
type Controller struct {
	state  State
	source Source
	target int

	panning          bool
	panStartX        int
	panStartY        int
	panOriginScrollX int
	panOriginScrollY int
}

// State returns the drag phase.
func (c Controller) State() State {
	return c.state
}

// Source returns the dragged card while a drag is in progress.
func (c Controller) Source() (Source, bool) {
	if c.state == StateIdle {
		return Source{}, false
	}
	return c.source, true
}

// Highlighted returns the semester currently highlighted as a drop target.
func (c Controller) Highlighted() (int, bool) {
	if c.state != StateHovering {
		return 0, false
	}
	return c.target, true
}

// BeginDrag starts dragging src. It is accepted from Idle or Hovering and
// cancels any pan in progress. A second BeginDrag while already Dragging is
// ignored.
func (c Controller) BeginDrag(src Source) Controller {
	if c.state == StateDragging || src.Kind == SourceNone {
		return c
	}
	return Controller{state: StateDragging, source: src}
}

// EnterTarget highlights t. It is ignored outside a drag, for exchange
// semesters, and when t is already highlighted.
func (c Controller) EnterTarget(t Target) Controller {
	if c.state == StateIdle || t.IsExchange {
		return c
	}
	if c.state == StateHovering && c.target == t.SemesterID {
		return c
	}
	c.state = StateHovering
	c.target = t.SemesterID
	return c
}

// EndDrag returns to Idle and clears the highlight from any state.
func (c Controller) EndDrag() Controller {
	c.state = StateIdle
	c.source = Source{}
	c.target = 0
	return c
}

// Reset drops every drag and pan state.
func (c Controller) Reset() Controller {
	return Controller{}
}

// Panning reports whether a pan is in progress.
func (c Controller) Panning() bool {
	return c.panning
}

// BeginPan starts panning from pointer position (x, y) with the board
// scrolled to (scrollX, scrollY). It is ignored unless the press hit empty
// canvas and no drag is in progress.
func (c Controller) BeginPan(hit HitKind, x, y, scrollX, scrollY int) Controller {
	if hit != HitCanvas || c.state != StateIdle {
		return c
	}
	c.panning = true
	c.panStartX, c.panStartY = x, y
	c.panOriginScrollX, c.panOriginScrollY = scrollX, scrollY
	return c
}

// PanTo returns the scroll offsets for pointer position (x, y). Both axes
// move independently and never go below zero. ok is false when no pan is in
// progress.
func (c Controller) PanTo(x, y int) (scrollX, scrollY int, ok bool) {
	if !c.panning {
		return 0, 0, false
	}
	scrollX = c.panOriginScrollX - (x-c.panStartX)*panFactorNum/panFactorDen
	scrollY = c.panOriginScrollY - (y-c.panStartY)*panFactorNum/panFactorDen
	if scrollX < 0 {
		scrollX = 0
	}
	if scrollY < 0 {
		scrollY = 0
	}
	return scrollX, scrollY, true
}

// EndPan cancels panning. Used for both pointer release and leave.
func (c Controller) EndPan() Controller {
	c.panning = false
	c.panStartX, c.panStartY = 0, 0
	c.panOriginScrollX, c.panOriginScrollY = 0, 0
	return c
}
