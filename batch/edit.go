package batch

import (
	"strings"

	"github.com/crewlog/crewlog/errors"
)

// ApplyEdit assigns one hand-edited field on an entry and records it in
// ModifiedFields. Date ordering is enforced here, at edit time; the batch
// validator deliberately does not re-check it. Edited entries are expected
// to be re-validated as a singleton list through Validator.Validate.
func ApplyEdit(e *Entry, field Field, value string) error {
	value = strings.TrimSpace(value)

	switch field {
	case FieldSquad:
		if value == "" {
			return errors.New("squad cannot be empty")
		}
		e.SquadName = TitleCase(value)
		e.SquadID = UnresolvedID
	case FieldPerson:
		if value == "" {
			return errors.New("person cannot be empty")
		}
		e.PersonName = TitleCase(value)
		e.UserID = UnresolvedID
	case FieldType:
		if value == "" {
			return errors.New("log type cannot be empty")
		}
		e.LogType = TitleCase(value)
		e.TypeID = UnresolvedID
	case FieldCategories:
		categories := SplitCategories(value)
		if len(categories) == 0 {
			return errors.New("categories cannot be empty")
		}
		e.Categories = categories
		e.CategoryIDs = nil
	case FieldStartDate:
		t, ok := ParseDate(value)
		if !ok {
			return errors.Newf("invalid start date %q, expected DD-MM-YYYY", value)
		}
		if e.EndDate != nil && e.EndDate.Before(t) {
			return errors.New("end date cannot precede start date")
		}
		e.StartDate = t
	case FieldEndDate:
		if value == "" {
			e.EndDate = nil
			e.MarkModified(field)
			return nil
		}
		t, ok := ParseDate(value)
		if !ok {
			return errors.Newf("invalid end date %q, expected DD-MM-YYYY", value)
		}
		if !e.StartDate.IsZero() && t.Before(e.StartDate) {
			return errors.New("end date cannot precede start date")
		}
		e.EndDate = &t
	case FieldDescription:
		e.Description = value
	default:
		return errors.Newf("unknown field %q", string(field))
	}

	e.MarkModified(field)
	return nil
}
