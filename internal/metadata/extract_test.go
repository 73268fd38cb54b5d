package metadata

import (
	"reflect"
	"sort"
	"strings"
	"testing"
)

// --- Parse ---

func TestParseAbsent(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty", ""},
		{"whitespace only", "   \t "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if got == nil {
				t.Fatal("Parse returned nil map")
			}
			if len(got) != 0 {
				t.Errorf("Parse(%q) = %v, want empty map", tt.raw, got)
			}
		})
	}
}

func TestParseLabeledFields(t *testing.T) {
	raw := "Prerequisites: CINE 350 and consent.; Repeatable: Up to 6 credits.; Grade Option: CR/NC only."
	got := Parse(raw)

	want := map[string]string{
		"Prerequisites": "CINE 350 and consent.",
		"Repeatable":    "Up to 6 credits.",
		"Grade Option":  "CR/NC only.",
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Parse(%q) = %v, want %v", raw, got, want)
	}
	if len(got) != 3 {
		t.Errorf("len = %d, want exactly 3 keys", len(got))
	}
	// Trailing periods are data, not punctuation to strip.
	if !strings.HasSuffix(got["Prerequisites"], ".") {
		t.Error("trailing period was stripped from value")
	}
}

func TestParseUnrecognizedSegment(t *testing.T) {
	got := Parse("Some freeform note; Repeatable: Yes")

	if got["Repeatable"] != "Yes" {
		t.Errorf("Repeatable = %q, want %q", got["Repeatable"], "Yes")
	}
	if got[Unrecognized] != "Some freeform note" {
		t.Errorf("bucket = %q, want the freeform note", got[Unrecognized])
	}
	if len(got) != 2 {
		t.Errorf("len = %d, want 2", len(got))
	}
}

func TestParseMajorRestrictions(t *testing.T) {
	// The internship-style records carry a restriction field alongside the
	// usual labels.
	raw := "Prerequisites: CINE 350 and consent.; Repeatable: Up to 6 credits.; Grade Option: CR/NC only.; Major Restrictions: SCA majors only."
	got := Parse(raw)

	if got["Major Restrictions"] != "SCA majors only." {
		t.Errorf("Major Restrictions = %q, want %q", got["Major Restrictions"], "SCA majors only.")
	}
}

func TestParseUnknownLabelRetained(t *testing.T) {
	got := Parse("Lab Fee: $25 per semester; Repeatable: Yes")

	if got["Lab Fee"] != "$25 per semester" {
		t.Errorf("unknown label not retained verbatim: %v", got)
	}
	if Known("Lab Fee") {
		t.Error("Lab Fee should not be in the known set")
	}
}

func TestParseCaseSensitiveLabels(t *testing.T) {
	got := Parse("prerequisites: MATH 140")

	if _, ok := got["Prerequisites"]; ok {
		t.Error("label matching must be case-sensitive")
	}
	if got["prerequisites"] != "MATH 140" {
		t.Errorf("lowercased label should pass through verbatim, got %v", got)
	}
}

func TestParseSplitsOnFirstColon(t *testing.T) {
	got := Parse("Prerequisites: MATH 241: Calculus I or placement")

	want := "MATH 241: Calculus I or placement"
	if got["Prerequisites"] != want {
		t.Errorf("Prerequisites = %q, want %q", got["Prerequisites"], want)
	}
}

func TestParseDuplicateLabelConcatenates(t *testing.T) {
	got := Parse("Prerequisites: MATH 140; Prerequisites: ENG 100")

	want := "MATH 140, ENG 100"
	if got["Prerequisites"] != want {
		t.Errorf("Prerequisites = %q, want %q", got["Prerequisites"], want)
	}
}

func TestParseDegradesOnMalformedInput(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want map[string]string
	}{
		{
			"empty segments skipped",
			"Repeatable: Yes;;  ; Grade Option: A-F",
			map[string]string{"Repeatable": "Yes", "Grade Option": "A-F"},
		},
		{
			"empty label goes to bucket",
			": orphan value",
			map[string]string{Unrecognized: ": orphan value"},
		},
		{
			"empty value kept",
			"Prerequisites:",
			map[string]string{"Prerequisites": ""},
		},
		{
			"multiple bare segments concatenate",
			"first note; second note",
			map[string]string{Unrecognized: "first note; second note"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

// --- Round trip ---

func TestParseCanonicalRoundTrip(t *testing.T) {
	raws := []string{
		"Prerequisites: CINE 350 and consent.; Repeatable: Up to 6 credits.; Grade Option: CR/NC only.",
		"Some freeform note; Repeatable: Yes",
		"Class Hours: 3 lecture; Semester Offered: Fall, Spring",
		"one bare note; another bare note; Credits: 3",
		"General Education Designation(s): DA; Major Restrictions: SCA majors only.",
		// Repeated labels merge on first parse; the merged value must
		// survive as one segment, not split back apart.
		"Prerequisites: MATH 140; Prerequisites: ENG 100",
		"Prerequisites: MATH 140; a bare note; Prerequisites: ENG 100; Repeatable: Yes",
	}
	for _, raw := range raws {
		t.Run(raw, func(t *testing.T) {
			first := Parse(raw)
			second := Parse(Canonical(first))
			if !reflect.DeepEqual(first, second) {
				t.Errorf("round trip changed mapping:\n first = %v\nsecond = %v", first, second)
			}
		})
	}
}

// --- Canonical ---

func TestCanonical(t *testing.T) {
	tests := []struct {
		name   string
		fields map[string]string
		want   string
	}{
		{"empty", map[string]string{}, ""},
		{"nil", nil, ""},
		{
			"sorted order",
			map[string]string{"Repeatable": "Yes", "Grade Option": "A-F"},
			"Grade Option: A-F; Repeatable: Yes",
		},
		{
			"empty values skipped",
			map[string]string{"Prerequisites": "MATH 140", "Corequisites": ""},
			"Prerequisites: MATH 140",
		},
		{
			"bucket sorts first",
			map[string]string{"Repeatable": "Yes", Unrecognized: "a note"},
			"_unrecognized: a note; Repeatable: Yes",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Canonical(tt.fields); got != tt.want {
				t.Errorf("Canonical = %q, want %q", got, tt.want)
			}
		})
	}
}

// --- Add ---

func TestAdd(t *testing.T) {
	fields := map[string]string{}

	Add(fields, "Prerequisites", "MATH 140")
	Add(fields, "Prerequisites", "ENG 100")
	Add(fields, "Repeatable", "")
	Add(fields, "Repeatable", "Yes")
	Add(fields, Unrecognized, "first note")
	Add(fields, Unrecognized, "second note")

	if fields["Prerequisites"] != "MATH 140, ENG 100" {
		t.Errorf("Prerequisites = %q", fields["Prerequisites"])
	}
	// An empty first value is replaced, not joined.
	if fields["Repeatable"] != "Yes" {
		t.Errorf("Repeatable = %q, want %q", fields["Repeatable"], "Yes")
	}
	// Bucket entries keep the segment separator; they re-parse back into
	// the bucket.
	if fields[Unrecognized] != "first note; second note" {
		t.Errorf("bucket = %q", fields[Unrecognized])
	}
}

// --- Known labels ---

func TestKnownLabels(t *testing.T) {
	labels := KnownLabels()

	if !sort.StringsAreSorted(labels) {
		t.Error("KnownLabels should be sorted")
	}
	for _, must := range []string{
		"Prerequisites", "Corequisites", "Repeatable",
		"Grade Option", "Major Restrictions", "General Education Designation(s)",
	} {
		if !Known(must) {
			t.Errorf("label %q missing from known set", must)
		}
	}
	if Known(Unrecognized) {
		t.Error("bucket key should not be a known label")
	}
}

// --- LabelCounts ---

func TestLabelCounts(t *testing.T) {
	raws := []string{
		"Prerequisites: MATH 140; Repeatable: Yes",
		"Prerequisites: ENG 100",
		"a bare note",
		"",
	}
	got := LabelCounts(raws)

	want := map[string]int{
		"Prerequisites": 2,
		"Repeatable":    1,
		Unrecognized:    1,
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("LabelCounts = %v, want %v", got, want)
	}
}
