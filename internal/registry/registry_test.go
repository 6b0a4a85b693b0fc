package registry

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

func emptyTimeline(t *testing.T) timeline.Timeline {
	t.Helper()
	tl, err := timeline.New([]model.AcademicYear{
		{Year: 1, Semesters: []model.Semester{{ID: 1, Name: "Semester 1"}, {ID: 2, Name: "Semester 2"}}},
	})
	if err != nil {
		t.Fatalf("timeline.New: %v", err)
	}
	return tl
}

func TestDerive_StagedOnly(t *testing.T) {
	pool, _ := staging.Pool{}.Add("CS1010", model.StagedTaken)
	pool, _ = pool.Add("MA1301", model.StagedExempted)

	reg := Derive(emptyTimeline(t), pool)

	want := []string{"CS1010", "MA1301"}
	if got := reg.SatisfiedCodes().Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("SatisfiedCodes() = %v, want %v", got, want)
	}
	if got := reg.TotalCreditsEarned(); got != 8 {
		t.Errorf("TotalCreditsEarned() = %d, want 8", got)
	}
	if got := reg.ProgressPercent(); got != 5 {
		t.Errorf("ProgressPercent() = %d, want 5", got)
	}
}

func TestDerive_DeduplicatesAcrossSources(t *testing.T) {
	tl := emptyTimeline(t).
		AddModule(1, model.Module{Code: "CS1010"}).
		AddModule(2, model.Module{Code: "CS2030S"})
	pool, _ := staging.Pool{}.Add("cs1010", model.StagedTaken)
	pool, _ = pool.AddWithCredits("CS1010", model.StagedExempted, 8)

	reg := Derive(tl, pool)
	if got := reg.SatisfiedCodes().Len(); got != 2 {
		t.Errorf("SatisfiedCodes().Len() = %d, want 2", got)
	}
	if got := reg.TotalCreditsEarned(); got != 8 {
		t.Errorf("TotalCreditsEarned() = %d, want 8 (independent of staged credits)", got)
	}
	if pool.TotalCredits() != 12 {
		t.Errorf("staging total should stay per-entry, got %d", pool.TotalCredits())
	}
}

func TestProgressPercent_Clamped(t *testing.T) {
	tests := []struct {
		codes int
		want  int
	}{
		{0, 0},
		{1, 3},
		{20, 50},
		{40, 100},
		{45, 100},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d codes", tt.codes), func(t *testing.T) {
			set := model.CodeSet{}
			for i := 0; i < tt.codes; i++ {
				set[fmt.Sprintf("XX%04d", i)] = struct{}{}
			}
			if got := FromCodes(set).ProgressPercent(); got != tt.want {
				t.Errorf("ProgressPercent() = %d, want %d", got, tt.want)
			}
		})
	}
}
