package staging

import (
	"github.com/google/uuid"

	"github.com/handiism/modplan/internal/model"
)

// newID generates staged-module identifiers.
var newID = uuid.NewString

// Pool is an immutable collection of staged modules in insertion order.
type Pool struct {
	entries []model.StagedModule
}

// Patch is a partial update. Nil fields are left as they are.
type Patch struct {
	Code *string
	Type *model.StagedType
}

// NewPool builds a pool from existing entries. Entries without an id get a
// fresh one; codes are normalized and non-positive credits default to
// CreditsPerModule. Entries with a blank code or unknown type are dropped.
func NewPool(entries ...model.StagedModule) Pool {
	out := make([]model.StagedModule, 0, len(entries))
	for _, e := range entries {
		e.Code = model.NormalizeCode(e.Code)
		if e.Code == "" || !e.Type.Valid() {
			continue
		}
		if e.ID == "" {
			e.ID = newID()
		}
		if e.Credits <= 0 {
			e.Credits = model.CreditsPerModule
		}
		out = append(out, e)
	}
	return Pool{entries: out}
}

// Add stages code with the default credit value. It returns the new pool and
// the generated id, or the receiver and "" when the input was rejected.
func (p Pool) Add(code string, kind model.StagedType) (Pool, string) {
	return p.AddWithCredits(code, kind, model.CreditsPerModule)
}

// AddWithCredits is Add with an explicit credit value.
func (p Pool) AddWithCredits(code string, kind model.StagedType, credits int) (Pool, string) {
	code = model.NormalizeCode(code)
	if code == "" || !kind.Valid() {
		return p, ""
	}
	if credits <= 0 {
		credits = model.CreditsPerModule
	}
	entry := model.StagedModule{ID: newID(), Code: code, Type: kind, Credits: credits}
	entries := make([]model.StagedModule, len(p.entries), len(p.entries)+1)
	copy(entries, p.entries)
	return Pool{entries: append(entries, entry)}, entry.ID
}

// Update applies patch to the entry with id, keeping its position.
// Unknown ids, blank codes and unknown types leave the pool unchanged.
func (p Pool) Update(id string, patch Patch) Pool {
	idx := p.indexOf(id)
	if idx < 0 {
		return p
	}
	entry := p.entries[idx]
	if patch.Code != nil {
		code := model.NormalizeCode(*patch.Code)
		if code == "" {
			return p
		}
		entry.Code = code
	}
	if patch.Type != nil {
		if !patch.Type.Valid() {
			return p
		}
		entry.Type = *patch.Type
	}
	entries := make([]model.StagedModule, len(p.entries))
	copy(entries, p.entries)
	entries[idx] = entry
	return Pool{entries: entries}
}

// Remove drops the entry with id.
func (p Pool) Remove(id string) Pool {
	idx := p.indexOf(id)
	if idx < 0 {
		return p
	}
	entries := make([]model.StagedModule, 0, len(p.entries)-1)
	entries = append(entries, p.entries[:idx]...)
	entries = append(entries, p.entries[idx+1:]...)
	return Pool{entries: entries}
}

// Get returns the entry with id.
func (p Pool) Get(id string) (model.StagedModule, bool) {
	idx := p.indexOf(id)
	if idx < 0 {
		return model.StagedModule{}, false
	}
	return p.entries[idx], true
}

// Entries returns the staged modules in insertion order.
// The result must be treated as read-only.
func (p Pool) Entries() []model.StagedModule {
	return p.entries
}

// Len returns the number of entries.
func (p Pool) Len() int {
	return len(p.entries)
}

// AllCodes returns a fresh set of staged codes.
func (p Pool) AllCodes() model.CodeSet {
	set := make(model.CodeSet, len(p.entries))
	for _, e := range p.entries {
		set[e.Code] = struct{}{}
	}
	return set
}

// TotalCredits sums the credit values of every entry.
func (p Pool) TotalCredits() int {
	total := 0
	for _, e := range p.entries {
		total += e.Credits
	}
	return total
}

func (p Pool) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, e := range p.entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
