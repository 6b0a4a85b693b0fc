package requirements

import (
	"strings"
	"testing"

	"github.com/handiism/modplan/internal/model"
)

func course(key string) model.RequirementCourse {
	return model.RequirementCourse{Match: model.MustMatchKey(key)}
}

func TestIsSatisfied(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		codes []string
		want  bool
	}{
		{"wildcard hit", "GEC*", []string{"GEC1001"}, true},
		{"wildcard miss", "GEC*", []string{"GEA1000"}, false},
		{"wildcard many", "GEC*", []string{"GEC1001", "GEC1002"}, true},
		{"wildcard case sensitive", "GEC*", []string{"gec1001"}, false},
		{"exact hit", "CS2040S", []string{"CS1010", "CS2040S"}, true},
		{"exact is not prefix", "CS2040", []string{"CS2040S"}, false},
		{"empty set", "CS2040S", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsSatisfied(course(tt.key), model.NewCodeSet(tt.codes...))
			if got != tt.want {
				t.Errorf("IsSatisfied(%s, %v) = %v, want %v", tt.key, tt.codes, got, tt.want)
			}
		})
	}
}

func TestFulfilledCount_NotWeighted(t *testing.T) {
	cat := model.RequirementCategory{
		Name:            "Common Curriculum",
		RequiredCredits: 40,
		Courses:         []model.RequirementCourse{course("CS1101S"), course("GEC*"), course("GEA1000")},
	}
	codes := model.NewCodeSet("CS1101S", "GEC1001", "GEC1002")

	if got := FulfilledCount(cat, codes); got != 2 {
		t.Errorf("FulfilledCount() = %d, want 2", got)
	}
}

func TestDefaultCatalogue(t *testing.T) {
	cats, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if len(cats) != 5 {
		t.Fatalf("got %d categories, want 5", len(cats))
	}
	first := cats[0]
	if first.Name != "Common Curriculum" || first.RequiredCredits != 40 {
		t.Errorf("first category = %s/%d", first.Name, first.RequiredCredits)
	}
	wild := 0
	for _, c := range first.Courses {
		if c.Match.IsWildcard() {
			wild++
		}
	}
	if wild != 3 {
		t.Errorf("Common Curriculum wildcard lines = %d, want 3", wild)
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"malformed", "categories: [", "parse catalogue"},
		{"missing name", "categories:\n  - required_credits: 4\n", "name is required"},
		{"bare wildcard", "categories:\n  - name: X\n    courses:\n      - { code: \"*\" }\n", "no prefix"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Parse error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestEngine_Evaluate(t *testing.T) {
	cats, err := Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	engine := NewEngine(cats)

	report := engine.Evaluate(model.NewCodeSet("MA1521", "MA1522", "ST2334", "GES1010"))

	var math, common CategoryStatus
	for _, s := range report {
		switch s.Category.Name {
		case "Math & Sciences":
			math = s
		case "Common Curriculum":
			common = s
		}
	}
	if !math.Complete() || math.Fulfilled != 3 {
		t.Errorf("Math & Sciences = %d/%d, want complete", math.Fulfilled, math.Total())
	}
	if common.Fulfilled != 1 || common.Total() != 6 {
		t.Errorf("Common Curriculum = %d/%d, want 1/6", common.Fulfilled, common.Total())
	}
}
