package batch

import (
	"testing"
	"time"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParseTextStructured(t *testing.T) {
	entries := ParseText("Alpha - Jane Doe - Review - Backend, Frontend - 10-01-2025 - 15-01-2025")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}

	e := entries[0]
	if e.SquadName != "Alpha" {
		t.Errorf("SquadName = %q, want Alpha", e.SquadName)
	}
	if e.PersonName != "Jane Doe" {
		t.Errorf("PersonName = %q, want Jane Doe", e.PersonName)
	}
	if e.LogType != "Review" {
		t.Errorf("LogType = %q, want Review", e.LogType)
	}
	if len(e.Categories) != 2 || e.Categories[0] != "Backend" || e.Categories[1] != "Frontend" {
		t.Errorf("Categories = %v, want [Backend Frontend]", e.Categories)
	}
	if !e.StartDate.Equal(date(2025, 1, 10)) {
		t.Errorf("StartDate = %v, want 2025-01-10", e.StartDate)
	}
	if e.EndDate == nil || !e.EndDate.Equal(date(2025, 1, 15)) {
		t.Errorf("EndDate = %v, want 2025-01-15", e.EndDate)
	}
	if e.Description != "Log de Review para Jane Doe" {
		t.Errorf("Description = %q", e.Description)
	}
	if e.LineNumber != 1 {
		t.Errorf("LineNumber = %d, want 1", e.LineNumber)
	}
}

// Round-trip: canonical accent-free single-spaced fields survive parsing
func TestParseTextRoundTrip(t *testing.T) {
	entries := ParseText("Bravo - John Smith - Incident - Infra - 03-06-2025 - fixed the outage")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SquadName != "Bravo" || e.PersonName != "John Smith" || e.LogType != "Incident" {
		t.Errorf("unexpected fields: %q %q %q", e.SquadName, e.PersonName, e.LogType)
	}
	if len(e.Categories) != 1 || e.Categories[0] != "Infra" {
		t.Errorf("Categories = %v", e.Categories)
	}
	if !e.StartDate.Equal(date(2025, 6, 3)) {
		t.Errorf("StartDate = %v", e.StartDate)
	}
	if e.EndDate != nil {
		t.Errorf("EndDate = %v, want nil", e.EndDate)
	}
	if e.Description != "fixed the outage" {
		t.Errorf("Description = %q", e.Description)
	}
}

func TestParseTextNaturalLanguage(t *testing.T) {
	entries := ParseText("da squad Alpha, Jane Doe fazendo Review sobre Backend, Frontend de 10-01-2025 até 15-01-2025")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SquadName != "Alpha" || e.PersonName != "Jane Doe" || e.LogType != "Review" {
		t.Errorf("unexpected fields: %q %q %q", e.SquadName, e.PersonName, e.LogType)
	}
	if len(e.Categories) != 2 {
		t.Errorf("Categories = %v", e.Categories)
	}
	if !e.StartDate.Equal(date(2025, 1, 10)) || e.EndDate == nil || !e.EndDate.Equal(date(2025, 1, 15)) {
		t.Errorf("dates = %v .. %v", e.StartDate, e.EndDate)
	}
	if e.Description != "Log de Review para Jane Doe" {
		t.Errorf("Description = %q", e.Description)
	}
}

func TestParseTextFlexible(t *testing.T) {
	entries := ParseText("Alpha - Jane Doe - Review - Backend - 10/01/2025 - 15/01/2025 - custom note")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SquadName != "Alpha" || e.PersonName != "Jane Doe" {
		t.Errorf("unexpected fields: %q %q", e.SquadName, e.PersonName)
	}
	if !e.StartDate.Equal(date(2025, 1, 10)) {
		t.Errorf("StartDate = %v", e.StartDate)
	}
	if e.EndDate == nil || !e.EndDate.Equal(date(2025, 1, 15)) {
		t.Errorf("EndDate = %v", e.EndDate)
	}
	if e.Description != "custom note" {
		t.Errorf("Description = %q", e.Description)
	}
}

func TestParseTextUnpaddedDashDates(t *testing.T) {
	entries := ParseText("Alpha - Jane Doe - Review - Backend - 1-1-2025 - 5-2-2025")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.SquadName != "Alpha" || e.PersonName != "Jane Doe" || e.LogType != "Review" {
		t.Errorf("unexpected fields: %q %q %q", e.SquadName, e.PersonName, e.LogType)
	}
	if len(e.Categories) != 1 || e.Categories[0] != "Backend" {
		t.Errorf("Categories = %v", e.Categories)
	}
	if !e.StartDate.Equal(date(2025, 1, 1)) {
		t.Errorf("StartDate = %v, want 2025-01-01", e.StartDate)
	}
	if e.EndDate == nil || !e.EndDate.Equal(date(2025, 2, 5)) {
		t.Errorf("EndDate = %v, want 2025-02-05", e.EndDate)
	}
}

func TestParseTextMultiLine(t *testing.T) {
	input := "Alpha - Jane - Review - Backend - 10-01-2025\n" +
		"\n" +
		"this line is noise\n" +
		"Bravo - John - Incident - Infra - 12-01-2025\n"

	entries := ParseText(input)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	// Line numbers count blanks and unparsed lines
	if entries[0].LineNumber != 1 || entries[1].LineNumber != 4 {
		t.Errorf("line numbers = %d, %d, want 1, 4", entries[0].LineNumber, entries[1].LineNumber)
	}
}

func TestParseTextInvalidDateKeptForValidation(t *testing.T) {
	entries := ParseText("Alpha - Jane - Review - Backend - 99-99-2025")
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	if !entries[0].StartDate.IsZero() {
		t.Errorf("StartDate = %v, want zero", entries[0].StartDate)
	}
}

func TestCanParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{name: "structured", input: "Alpha - Jane - Review - Backend - 10-01-2025", want: true},
		{name: "natural", input: "da squad Alpha, Jane fazendo Review sobre Backend de 10-01-2025", want: true},
		{name: "dash segments", input: "a - b - c - d - e", want: true},
		{name: "mixed with noise", input: "noise\nAlpha - Jane - Review - Backend - 10-01-2025", want: true},
		{name: "plain prose", input: "hello there", want: false},
		{name: "empty", input: "", want: false},
		{name: "blank lines", input: "\n\n  \n", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanParse(tt.input); got != tt.want {
				t.Errorf("CanParse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestSplitCategories(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"Backend, Frontend", []string{"Backend", "Frontend"}},
		{"backend; frontend", []string{"Backend", "Frontend"}},
		{"Backend e Frontend", []string{"Backend", "Frontend"}},
		{"Backend and Frontend", []string{"Backend", "Frontend"}},
		{"Backend & Frontend", []string{"Backend", "Frontend"}},
		{"Backend, , Frontend,", []string{"Backend", "Frontend"}},
		{"  infra  ", []string{"Infra"}},
	}

	for _, tt := range tests {
		got := SplitCategories(tt.input)
		if len(got) != len(tt.want) {
			t.Errorf("SplitCategories(%q) = %v, want %v", tt.input, got, tt.want)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("SplitCategories(%q)[%d] = %q, want %q", tt.input, i, got[i], tt.want[i])
			}
		}
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		input string
		want  time.Time
		ok    bool
	}{
		{"10-01-2025", date(2025, 1, 10), true},
		{"10/01/2025", date(2025, 1, 10), true},
		{"3-6-2025", date(2025, 6, 3), true},
		{"31-02-2025", time.Time{}, false},
		{"2025-01-10", time.Time{}, false},
		{"not a date", time.Time{}, false},
	}

	for _, tt := range tests {
		got, ok := ParseDate(tt.input)
		if ok != tt.ok {
			t.Errorf("ParseDate(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			continue
		}
		if ok && !got.Equal(tt.want) {
			t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
