package batch

import (
	"context"

	"github.com/crewlog/crewlog/catalog"
	"github.com/crewlog/crewlog/errors"
)

// refData is a per-validation snapshot of the catalog, indexed by display
// name. It is loaded once per Validate call and never cached across calls.
//
// Member indexes carry each person under first name, last name and
// "first last", plus the reserved catalog.AllTeamName key for the whole
// squad. Colliding keys are last-write-wins; that precision/recall
// trade-off is deliberate.
type refData struct {
	squads     map[string]int64           // display name -> squad id
	members    map[int64]map[string]int64 // squad id -> display key -> person id
	types      map[string]int64           // display name -> type id
	categories map[string]int64           // display name -> category id
}

func loadRefData(ctx context.Context, provider catalog.Provider) (*refData, error) {
	squads, err := provider.ListSquads(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load squads")
	}
	logTypes, err := provider.ListLogTypes(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load log types")
	}
	categories, err := provider.ListCategories(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load categories")
	}

	ref := &refData{
		squads:     make(map[string]int64, len(squads)),
		members:    make(map[int64]map[string]int64, len(squads)),
		types:      make(map[string]int64, len(logTypes)),
		categories: make(map[string]int64, len(categories)),
	}

	for _, squad := range squads {
		ref.squads[squad.Name] = squad.ID
		ref.members[squad.ID] = indexMembers(squad.Members)
	}
	for _, t := range logTypes {
		ref.types[t.Name] = t.ID
	}
	for _, c := range categories {
		ref.categories[c.Name] = c.ID
	}

	return ref, nil
}

func indexMembers(members []catalog.Member) map[string]int64 {
	index := make(map[string]int64, len(members)*3+1)
	for _, m := range members {
		if m.FirstName != "" {
			index[m.FirstName] = m.ID
		}
		if m.LastName != "" {
			index[m.LastName] = m.ID
		}
		index[m.FullName()] = m.ID
	}
	index[catalog.AllTeamName] = catalog.AllTeamID
	return index
}
