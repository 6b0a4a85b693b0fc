package report

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/handiism/modplan/internal/board"
	"github.com/handiism/modplan/internal/model"
	"github.com/handiism/modplan/internal/requirements"
	"github.com/handiism/modplan/internal/staging"
	"github.com/handiism/modplan/internal/timeline"
)

func testSnapshot(t *testing.T) Snapshot {
	t.Helper()
	tl, err := timeline.Template()
	if err != nil {
		t.Fatal(err)
	}
	pool, _ := staging.NewPool().Add("GEA1000", model.StagedExempted)
	categories, err := requirements.Default()
	if err != nil {
		t.Fatal(err)
	}
	return NewSnapshot("My Plan", "Ada", board.New(tl, pool), requirements.NewEngine(categories))
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"MD", FormatMarkdown, false},
		{"markdown", FormatMarkdown, false},
		{"json", FormatJSON, false},
		{"pdf", FormatText, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestRender_Text(t *testing.T) {
	out, err := Render(FormatText, testSnapshot(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	for _, want := range []string{
		"My Plan (Ada)",
		"Year 1  2024/2025",
		"CS2040S",
		"! Prereq: CS1010 not fulfilled",
		"Exchange Semester (exchange)",
		"GEA1000   Exempted",
		"GEC* Cultures and Connections",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("text report missing %q", want)
		}
	}
}

func TestRender_Markdown(t *testing.T) {
	out, err := Render(FormatMarkdown, testSnapshot(t))
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	if !strings.HasPrefix(out, "# My Plan\n") {
		t.Errorf("markdown should start with the label heading, got %q", out[:20])
	}
	for _, want := range []string{
		"| Code | Title | Note |",
		"| MA1521 | Calculus for Computing |  |",
		"_Exchange semester_",
		"- GEA1000 (Exempted, 4 MCs)",
		"- [x] GEA1000 Data Literacy",
		"- [ ] GEC* Cultures and Connections",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("markdown report missing %q", want)
		}
	}
}

func TestRender_JSONRoundTrip(t *testing.T) {
	snap := testSnapshot(t)
	out, err := Render(FormatJSON, snap)
	if err != nil {
		t.Fatalf("Render() error: %v", err)
	}

	f, err := ParsePlanFile([]byte(out))
	if err != nil {
		t.Fatalf("ParsePlanFile() error: %v", err)
	}
	if got := f.Semesters["y1s1"]; len(got) != 6 || got[0].Code != "MA1521" {
		t.Errorf("y1s1 = %v", got)
	}

	tl, _ := timeline.Template()
	cleared := make(map[string][]model.Module)
	for _, key := range tl.SemesterKeys() {
		cleared[key] = nil
	}
	empty := board.New(tl.ApplySemesterPlan(cleared), staging.NewPool())
	restored := f.Apply(empty)

	for _, want := range snap.Timeline.Semesters() {
		got, _ := restored.Timeline.Semester(want.ID)
		if !slices.Equal(got.Modules, want.Modules) {
			t.Errorf("semester %d = %+v, want %+v", want.ID, got.Modules, want.Modules)
		}
	}
	if restored.Staging.Len() != 1 {
		t.Errorf("staged = %d, want 1", restored.Staging.Len())
	}
}

func TestParsePlanFile_Modules(t *testing.T) {
	data := `{"semesters": {"y1s2": ["cs1231s", {"code": "CS2040S", "title": "Data Structures", "hasError": true, "errorMessage": "Prereq missing"}]}}`
	f, err := ParsePlanFile([]byte(data))
	if err != nil {
		t.Fatalf("ParsePlanFile() error: %v", err)
	}

	tl, _ := timeline.Template()
	state := f.Apply(board.New(tl, staging.NewPool()))
	sem, _ := state.Timeline.Semester(2)
	want := []model.Module{
		{Code: "CS1231S"},
		{Code: "CS2040S", Title: "Data Structures", HasError: true, ErrorMessage: "Prereq missing"},
	}
	if !slices.Equal(sem.Modules, want) {
		t.Errorf("semester 2 = %+v, want %+v", sem.Modules, want)
	}
}

func TestParsePlanFile_BlankCode(t *testing.T) {
	_, err := ParsePlanFile([]byte(`{"semesters": {"y1s1": [{"title": "No code"}]}}`))
	if err == nil {
		t.Error("expected an error for a module without a code")
	}
}

func TestParsePlanFile_BadType(t *testing.T) {
	_, err := ParsePlanFile([]byte(`{"semesters": {}, "staged": [{"code": "CS1010", "type": "passed"}]}`))
	if err == nil {
		t.Error("expected an error for an unknown staged type")
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	snap := testSnapshot(t)
	snap.Label = "My Plan: 2024/2025"

	path, err := Export(dir, FormatMarkdown, snap)
	if err != nil {
		t.Fatalf("Export() error: %v", err)
	}
	if want := filepath.Join(dir, "My Plan_ 2024_2025.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
