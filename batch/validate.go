package batch

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/crewlog/crewlog/catalog"
)

// Validator resolves parsed entries against the remote catalog and
// partitions them into valid and invalid.
type Validator struct {
	provider catalog.Provider
	log      *zap.SugaredLogger
}

// NewValidator creates a validator backed by the given catalog provider
func NewValidator(provider catalog.Provider, log *zap.SugaredLogger) *Validator {
	return &Validator{provider: provider, log: log}
}

// Validate loads a catalog snapshot once, then resolves each entry
// independently. Valid entries come back as new resolved values; the
// parsed input is never mutated. An entry with any failure contributes its
// error strings and is dropped whole.
//
// A catalog fetch failure propagates as a typed error; everything else is
// collected into the result.
func (v *Validator) Validate(ctx context.Context, entries []Entry) (*ParsingResult, error) {
	ref, err := loadRefData(ctx, v.provider)
	if err != nil {
		return nil, err
	}

	result := &ParsingResult{TotalProcessed: len(entries)}
	for _, entry := range entries {
		resolved, errs := v.resolveEntry(entry, ref)
		if len(errs) > 0 {
			result.Errors = append(result.Errors, errs...)
			continue
		}
		result.ValidEntries = append(result.ValidEntries, resolved)
	}

	if v.log != nil {
		v.log.Debugw("batch validated",
			"total", result.TotalProcessed,
			"valid", len(result.ValidEntries),
			"errors", len(result.Errors))
	}
	return result, nil
}

// resolveEntry produces a resolved copy of one entry, or the list of
// error strings that disqualify it.
func (v *Validator) resolveEntry(entry Entry, ref *refData) (Entry, []string) {
	resolved := entry.Clone()
	var errs []string

	squadOK := false
	if key, ok := resolveName(entry.SquadName, ref.squads); ok {
		resolved.SquadID = ref.squads[key]
		resolved.SquadName = key
		squadOK = true
	} else {
		errs = append(errs, fmt.Sprintf("Line %d: Squad '%s' not found", entry.LineNumber, entry.SquadName))
	}

	// Person resolution needs a squad; when the squad failed only the
	// squad error is reported.
	if squadOK {
		members := ref.members[resolved.SquadID]
		if key, ok := resolvePersonName(entry.PersonName, members); ok {
			resolved.UserID = members[key]
			resolved.PersonName = key
		} else {
			errs = append(errs, fmt.Sprintf("Line %d: Person '%s' not found in squad '%s'",
				entry.LineNumber, entry.PersonName, resolved.SquadName))
		}
	}

	if key, ok := resolveName(entry.LogType, ref.types); ok {
		resolved.TypeID = ref.types[key]
		resolved.LogType = key
	} else {
		errs = append(errs, fmt.Sprintf("Line %d: Log type '%s' not found", entry.LineNumber, entry.LogType))
	}

	if ids, names, ok := resolveCategories(entry.Categories, ref.categories); ok {
		resolved.CategoryIDs = ids
		resolved.Categories = names
	} else {
		errs = append(errs, fmt.Sprintf("Line %d: Categories '%s' not found",
			entry.LineNumber, strings.Join(entry.Categories, ", ")))
	}

	if entry.StartDate.IsZero() {
		errs = append(errs, fmt.Sprintf("Line %d: Start date missing or invalid", entry.LineNumber))
	}

	// Keep a synthesized description in sync with the canonical names
	// fuzzy correction may have changed.
	if IsDefaultDescription(resolved.Description) {
		resolved.Description = DefaultDescription(resolved.LogType, resolved.PersonName)
	}

	return resolved, errs
}

// resolveCategories resolves every category or none: a single miss leaves
// the whole field unresolved.
func resolveCategories(requested []string, index map[string]int64) ([]int64, []string, bool) {
	if len(requested) == 0 {
		return nil, nil, false
	}
	ids := make([]int64, 0, len(requested))
	names := make([]string, 0, len(requested))
	for _, name := range requested {
		key, ok := resolveName(name, index)
		if !ok {
			return nil, nil, false
		}
		ids = append(ids, index[key])
		names = append(names, key)
	}
	return ids, names, true
}
