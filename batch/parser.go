package batch

import (
	"regexp"
	"strings"
	"time"

	"github.com/crewlog/crewlog/logger"
)

// Parsing strategies, tried in order per line. The structured pattern is
// the documented input shape; the natural pattern tolerates connector
// words people actually type; the flexible fallback is a positional
// dash-split for everything else.
var (
	// Squad - Person - Type - Cat[,Cat...] - DD-MM-YYYY [- DD-MM-YYYY] [- Description]
	// Day and month may be unpadded
	structuredPattern = regexp.MustCompile(
		`^\s*(.+?)\s*-\s*(.+?)\s*-\s*(.+?)\s*-\s*(.+?)\s*-\s*(\d{1,2}-\d{1,2}-\d{4})(?:\s*-\s*(\d{1,2}-\d{1,2}-\d{4}))?(?:\s*-\s*(.+?))?\s*$`)

	// "da squad Alpha, Jane Doe fazendo Review sobre Backend de 10-01-2025 até 15-01-2025"
	naturalPattern = regexp.MustCompile(
		`(?i)^\s*(?:[nd]a\s+)?squad\s+(.+?)\s*[,:]\s*(.+?)\s+(?:fazendo|fez|realizou)\s+(.+?)\s+(?:sobre|nas?\s+categorias?)\s+(.+?)\s+(?:de|em|no\s+dia)\s+(\d{1,2}[-/]\d{1,2}[-/]\d{4})(?:\s+(?:a|ate|até)\s+(\d{1,2}[-/]\d{1,2}[-/]\d{4}))?(?:\s*[-:]\s*(.+?))?\s*$`)

	dateToken = regexp.MustCompile(`^\d{1,2}[-/]\d{1,2}[-/]\d{4}$`)
)

// dateLayouts accepts day-month-year with either delimiter, padded or not
var dateLayouts = []string{
	"02-01-2006",
	"02/01/2006",
	"2-1-2006",
	"2/1/2006",
}

// ParseDate parses a DD-MM-YYYY or DD/MM/YYYY date token
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// categorySeparators rewrites every accepted list separator to a comma
var categorySeparators = strings.NewReplacer(
	";", ",",
	" e ", ",", " E ", ",",
	" and ", ",", " And ", ",",
	" & ", ",",
)

// SplitCategories splits a raw category list into trimmed, title-cased
// names, dropping empty pieces.
func SplitCategories(raw string) []string {
	var out []string
	for _, piece := range strings.Split(categorySeparators.Replace(raw), ",") {
		piece = strings.TrimSpace(piece)
		if piece == "" {
			continue
		}
		out = append(out, TitleCase(piece))
	}
	return out
}

// ParseText splits raw input on line breaks and parses each non-blank line
// independently. A line that fails every strategy is omitted from the
// output; a failure on one line never aborts the batch.
func ParseText(raw string) []Entry {
	var entries []Entry
	for i, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		entry, ok := parseLine(line, i+1)
		if !ok {
			logger.Debugw("line matched no parsing strategy", "line", i+1)
			continue
		}
		entries = append(entries, entry)
	}
	return entries
}

// CanParse reports whether at least one non-blank line looks parseable.
// Cheap gate to run before the full parse.
func CanParse(raw string) bool {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(strings.TrimRight(line, "\r"))
		if line == "" {
			continue
		}
		if structuredPattern.MatchString(line) || naturalPattern.MatchString(line) {
			return true
		}
		if len(strings.Split(line, "-")) >= 5 {
			return true
		}
	}
	return false
}

func parseLine(line string, lineNumber int) (Entry, bool) {
	if e, ok := parseStructured(line, lineNumber); ok {
		return e, true
	}
	if e, ok := parseNatural(line, lineNumber); ok {
		return e, true
	}
	return parseFlexible(line, lineNumber)
}

func parseStructured(line string, lineNumber int) (Entry, bool) {
	m := structuredPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return buildEntry(lineNumber, m[1], m[2], m[3], m[4], m[5], m[6], m[7]), true
}

func parseNatural(line string, lineNumber int) (Entry, bool) {
	m := naturalPattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return buildEntry(lineNumber, m[1], m[2], m[3], m[4], m[5], m[6], m[7]), true
}

// parseFlexible splits the line on dashes and reads the segments
// positionally. It only engages when at least five segments exist and the
// fifth is a recognizable date token, which in practice means slash dates.
func parseFlexible(line string, lineNumber int) (Entry, bool) {
	parts := strings.Split(line, "-")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	if len(parts) < 5 || !dateToken.MatchString(parts[4]) {
		return Entry{}, false
	}

	endDate, description := "", ""
	rest := parts[5:]
	if len(rest) > 0 && dateToken.MatchString(rest[0]) {
		endDate = rest[0]
		rest = rest[1:]
	}
	if len(rest) > 0 {
		description = strings.Join(rest, " - ")
	}

	return buildEntry(lineNumber, parts[0], parts[1], parts[2], parts[3], parts[4], endDate, description), true
}

func buildEntry(lineNumber int, squad, person, logType, categories, start, end, description string) Entry {
	e := Entry{
		SquadName:  TitleCase(squad),
		PersonName: TitleCase(person),
		LogType:    TitleCase(logType),
		Categories: SplitCategories(categories),
		LineNumber: lineNumber,
	}

	// An unparseable date stays zero and is reported by validation
	if t, ok := ParseDate(start); ok {
		e.StartDate = t
	}
	if end != "" {
		if t, ok := ParseDate(end); ok {
			e.EndDate = &t
		}
	}

	description = strings.TrimSpace(description)
	if description == "" {
		description = DefaultDescription(e.LogType, e.PersonName)
	}
	e.Description = description

	return e
}
