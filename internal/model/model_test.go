package model

import (
	"reflect"
	"testing"
)

func TestNormalizeCode(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"cs1010", "CS1010"},
		{"  ma1301 ", "MA1301"},
		{"CS2030S", "CS2030S"},
		{"   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := NormalizeCode(tt.input); got != tt.want {
				t.Errorf("NormalizeCode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseStagedType(t *testing.T) {
	tests := []struct {
		input   string
		want    StagedType
		wantErr bool
	}{
		{"taken", StagedTaken, false},
		{"Exempted", StagedExempted, false},
		{" TAKEN ", StagedTaken, false},
		{"passed", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseStagedType(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseStagedType(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseStagedType(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseMatchKey(t *testing.T) {
	tests := []struct {
		raw     string
		want    MatchKey
		wantErr bool
	}{
		{"CS2040S", MatchKey{Kind: MatchExact, Value: "CS2040S"}, false},
		{"GEC*", MatchKey{Kind: MatchPrefix, Value: "GEC"}, false},
		{" GES* ", MatchKey{Kind: MatchPrefix, Value: "GES"}, false},
		{"Focus Area 1", MatchKey{Kind: MatchExact, Value: "Focus Area 1"}, false},
		{"*", MatchKey{}, true},
		{"", MatchKey{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, err := ParseMatchKey(tt.raw)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMatchKey(%q) error = %v, wantErr %v", tt.raw, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMatchKey(%q) = %+v, want %+v", tt.raw, got, tt.want)
			}
		})
	}

	if got := MustMatchKey("GEN*").String(); got != "GEN*" {
		t.Errorf("String() = %q, want GEN*", got)
	}
}

func TestSemester_CopyOnWrite(t *testing.T) {
	orig := Semester{ID: 1, Modules: []Module{{Code: "CS1101S"}, {Code: "MA1521"}}}

	added := orig.WithModule(Module{Code: "CS1231S"})
	if len(orig.Modules) != 2 {
		t.Fatalf("original semester mutated: %d modules", len(orig.Modules))
	}
	if !added.HasModule("CS1231S") {
		t.Error("WithModule should append the module")
	}

	removed, ok := orig.WithoutModule("CS1101S")
	if !ok {
		t.Fatal("WithoutModule should report removal")
	}
	if orig.Modules[0].Code != "CS1101S" {
		t.Error("WithoutModule must not touch the receiver's slice")
	}
	if removed.HasModule("CS1101S") || !removed.HasModule("MA1521") {
		t.Errorf("unexpected modules after removal: %+v", removed.Modules)
	}

	if _, ok := orig.WithoutModule("XX0000"); ok {
		t.Error("removing an absent code should report false")
	}
}

func TestCodeSet_Union(t *testing.T) {
	a := NewCodeSet("CS1010", "MA1301")
	b := NewCodeSet("MA1301", "CS2030S", "")

	u := a.Union(b)
	want := []string{"CS1010", "CS2030S", "MA1301"}
	if got := u.Sorted(); !reflect.DeepEqual(got, want) {
		t.Errorf("Union().Sorted() = %v, want %v", got, want)
	}
	if a.Len() != 2 {
		t.Error("Union must not modify the receiver")
	}
}
