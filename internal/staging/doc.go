// Package staging keeps the modules a student has already completed or been
// exempted from. Staged modules count towards requirements without occupying
// a timeline slot.
//
// Pool is an immutable value; Add, Update and Remove return a new Pool.
// Invalid input (blank code, unknown id, unknown type) returns the receiver
// unchanged:
//
//	pool := staging.Pool{}
//	pool, id := pool.Add("cs1010", model.StagedTaken)
//	exempted := model.StagedExempted
//	pool = pool.Update(id, staging.Patch{Type: &exempted})
//
// Codes are normalized to uppercase on every write. Entries are keyed by a
// generated id, so the same code may be staged twice.
package staging
