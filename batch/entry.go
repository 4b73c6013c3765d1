// Package batch implements the squad-log batch ingestion pipeline: parsing
// free-form multi-line text into candidate entries, resolving names against
// the catalog with diacritic-insensitive fuzzy matching, and validating the
// result into catalog-ready records.
package batch

import (
	"fmt"
	"regexp"
	"time"

	"github.com/crewlog/crewlog/catalog"
)

// Field tags one editable entry field, used to flag hand-edited fields
// after parsing.
type Field string

// UnresolvedID marks an identity field whose display name was edited and
// not yet re-resolved. Distinct from catalog.AllTeamID so an edited entry
// can never pass for a deliberate whole-team entry.
const UnresolvedID int64 = -1

const (
	FieldSquad       Field = "squad"
	FieldPerson      Field = "person"
	FieldType        Field = "type"
	FieldCategories  Field = "categories"
	FieldStartDate   Field = "startDate"
	FieldEndDate     Field = "endDate"
	FieldDescription Field = "description"
)

// Entry is one candidate or resolved log record, one per source line.
//
// The parser fills the display fields from the raw text; validation
// produces a new Entry with the identity fields resolved and the display
// fields replaced by canonical catalog names.
type Entry struct {
	// Identity fields, set on successful resolution. UserID of
	// catalog.AllTeamID means the log applies to the whole squad.
	SquadID     int64
	UserID      int64
	TypeID      int64
	CategoryIDs []int64

	// Display fields as parsed, overwritten with canonical names
	SquadName  string
	PersonName string
	LogType    string
	Categories []string

	Description string
	StartDate   time.Time
	EndDate     *time.Time

	// LineNumber is the 1-based origin line, used in error messages
	LineNumber int

	// ModifiedFields flags fields hand-edited after parsing
	ModifiedFields map[Field]bool
}

// MarkModified records that a field was hand-edited
func (e *Entry) MarkModified(f Field) {
	if e.ModifiedFields == nil {
		e.ModifiedFields = make(map[Field]bool)
	}
	e.ModifiedFields[f] = true
}

// Clone returns a copy of the entry that shares no mutable state
func (e Entry) Clone() Entry {
	c := e
	c.CategoryIDs = append([]int64(nil), e.CategoryIDs...)
	c.Categories = append([]string(nil), e.Categories...)
	if e.EndDate != nil {
		end := *e.EndDate
		c.EndDate = &end
	}
	if e.ModifiedFields != nil {
		c.ModifiedFields = make(map[Field]bool, len(e.ModifiedFields))
		for k, v := range e.ModifiedFields {
			c.ModifiedFields[k] = v
		}
	}
	return c
}

// ToRecord converts a resolved entry into the sink's wire form
func (e Entry) ToRecord() catalog.LogRecord {
	rec := catalog.LogRecord{
		SquadID:     e.SquadID,
		UserID:      e.UserID,
		TypeID:      e.TypeID,
		CategoryIDs: append([]int64(nil), e.CategoryIDs...),
		Description: e.Description,
		StartDate:   catalog.ISODate(e.StartDate),
	}
	if e.EndDate != nil {
		end := catalog.ISODate(*e.EndDate)
		rec.EndDate = &end
	}
	return rec
}

// ParsingResult is the outcome of validating a parsed batch
type ParsingResult struct {
	ValidEntries   []Entry
	Errors         []string
	TotalProcessed int
}

// defaultDescriptionPattern recognizes descriptions the parser synthesized,
// so validation can regenerate them from resolved names.
var defaultDescriptionPattern = regexp.MustCompile(`^Log de .+ para .+$`)

// DefaultDescription synthesizes the placeholder description for a type
// and person pair.
func DefaultDescription(logType, person string) string {
	return fmt.Sprintf("Log de %s para %s", logType, person)
}

// IsDefaultDescription reports whether desc matches the synthesized
// placeholder pattern.
func IsDefaultDescription(desc string) bool {
	return defaultDescriptionPattern.MatchString(desc)
}
