// Package board composes the timeline, the staging pool, the drag
// controller and the staged-module dialog into one immutable State.
//
// Every user interaction is an Action applied with Reduce, which returns the
// next State and never fails; rejected input leaves the state as it was:
//
//	s := board.New(tl, pool)
//	s = board.Reduce(s, board.OpenAddDialog{})
//	s = board.Reduce(s, board.SetDialogCode{Code: "cs2030s"})
//	s = board.Reduce(s, board.SaveDialog{})
//
// Derived values (satisfied codes, credits, progress, requirement status)
// are recomputed from the current state by Progress on every call.
package board
