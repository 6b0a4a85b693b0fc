package staging

import (
	"fmt"
	"testing"

	"github.com/handiism/modplan/internal/model"
)

func withSequentialIDs(t *testing.T) {
	t.Helper()
	orig := newID
	n := 0
	newID = func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
	t.Cleanup(func() { newID = orig })
}

func TestAdd_NormalizesCode(t *testing.T) {
	pool, id := Pool{}.Add("cs1010", model.StagedTaken)
	if id == "" {
		t.Fatal("expected an id")
	}
	if !pool.AllCodes().Has("CS1010") {
		t.Errorf("AllCodes() = %v, want CS1010", pool.AllCodes().Sorted())
	}
	got, _ := pool.Get(id)
	if got.Credits != model.CreditsPerModule {
		t.Errorf("credits = %d, want %d", got.Credits, model.CreditsPerModule)
	}
}

func TestAdd_Rejects(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind model.StagedType
	}{
		{"empty", "", model.StagedTaken},
		{"whitespace", "   \t", model.StagedTaken},
		{"unknown type", "CS1010", model.StagedType("passed")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pool, id := Pool{}.Add(tt.code, tt.kind)
			if id != "" || pool.Len() != 0 {
				t.Errorf("Add(%q, %q) = %d entries, id %q; want rejection", tt.code, tt.kind, pool.Len(), id)
			}
		})
	}
}

func TestAdd_UniqueIDs(t *testing.T) {
	pool, a := Pool{}.Add("CS1010", model.StagedTaken)
	pool, b := pool.Add("CS1010", model.StagedExempted)
	if a == b {
		t.Fatal("ids must be unique")
	}
	if pool.Len() != 2 || pool.AllCodes().Len() != 1 {
		t.Errorf("expected two entries sharing one code, got %d entries / %d codes", pool.Len(), pool.AllCodes().Len())
	}
}

func TestUpdate(t *testing.T) {
	withSequentialIDs(t)
	pool, _ := Pool{}.Add("CS1010", model.StagedTaken)
	pool, id := pool.Add("MA1301", model.StagedTaken)
	pool, _ = pool.Add("GEA1000", model.StagedTaken)

	code := "ma1521"
	exempted := model.StagedExempted
	updated := pool.Update(id, Patch{Code: &code, Type: &exempted})

	got, _ := updated.Get(id)
	if got.Code != "MA1521" || got.Type != model.StagedExempted {
		t.Errorf("updated entry = %+v", got)
	}
	if updated.Entries()[1].ID != id {
		t.Error("update must keep the entry in place")
	}
	if orig, _ := pool.Get(id); orig.Code != "MA1301" {
		t.Error("update must not mutate the receiver")
	}

	onlyType := updated.Update(id, Patch{Type: ptr(model.StagedTaken)})
	if got, _ := onlyType.Get(id); got.Code != "MA1521" || got.Type != model.StagedTaken {
		t.Errorf("partial update = %+v", got)
	}
}

func TestUpdate_NoOps(t *testing.T) {
	withSequentialIDs(t)
	pool, id := Pool{}.Add("CS1010", model.StagedTaken)
	blank := "  "
	bad := model.StagedType("x")

	tests := []struct {
		name  string
		id    string
		patch Patch
	}{
		{"unknown id", "missing", Patch{Code: ptr("CS2030S")}},
		{"blank code", id, Patch{Code: &blank}},
		{"bad type", id, Patch{Type: &bad}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pool.Update(tt.id, tt.patch)
			entry, _ := got.Get(id)
			if entry.Code != "CS1010" || entry.Type != model.StagedTaken {
				t.Errorf("entry changed: %+v", entry)
			}
		})
	}
}

func TestRemove(t *testing.T) {
	pool, a := Pool{}.Add("CS1010", model.StagedTaken)
	pool, _ = pool.Add("MA1301", model.StagedExempted)

	removed := pool.Remove(a)
	if removed.AllCodes().Has("CS1010") || removed.Len() != 1 {
		t.Errorf("Remove left %v", removed.AllCodes().Sorted())
	}
	if pool.Len() != 2 {
		t.Error("Remove must not mutate the receiver")
	}
	if removed.Remove("missing").Len() != 1 {
		t.Error("removing an unknown id should be a no-op")
	}
}

func TestTotalCredits_UsesEntryCredits(t *testing.T) {
	pool, _ := Pool{}.Add("CS1010", model.StagedTaken)
	pool, _ = pool.AddWithCredits("MA1301", model.StagedExempted, 2)
	pool, _ = pool.AddWithCredits("CS1010", model.StagedExempted, 6)

	if got := pool.TotalCredits(); got != 12 {
		t.Errorf("TotalCredits() = %d, want 12", got)
	}
}

func TestNewPool(t *testing.T) {
	pool := NewPool(
		model.StagedModule{Code: "cs1010", Type: model.StagedTaken},
		model.StagedModule{ID: "keep", Code: "MA1301", Type: model.StagedExempted, Credits: 2},
		model.StagedModule{Code: " ", Type: model.StagedTaken},
	)
	if pool.Len() != 2 {
		t.Fatalf("NewPool kept %d entries, want 2", pool.Len())
	}
	if pool.Entries()[0].ID == "" || pool.Entries()[0].Credits != model.CreditsPerModule {
		t.Errorf("defaults not applied: %+v", pool.Entries()[0])
	}
	if _, ok := pool.Get("keep"); !ok {
		t.Error("existing ids must be preserved")
	}
}

func ptr[T any](v T) *T {
	return &v
}
