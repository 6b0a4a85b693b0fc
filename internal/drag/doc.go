// Package drag tracks pointer-drag interactions on the planning board.
//
// Controller is a small immutable state machine:
//
//	Idle ──BeginDrag──▶ Dragging ──EnterTarget──▶ Hovering(semester)
//	  ▲                                               │
//	  └───────────────────── EndDrag ◀────────────────┘
//
// It only tracks which semester is visually highlighted. Dropping a card is
// a separate action performed by the caller on the same pointer release,
// before EndDrag is applied.
//
// Panning the board by pressing on empty canvas is a second, mutually
// exclusive mode. It starts only when the press lands on empty canvas and no
// card is being dragged, and stops on release or when the pointer leaves the
// board.
package drag
