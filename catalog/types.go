// Package catalog defines the remote catalog boundary: read access to
// squads, people, log types and categories, and write access for finished
// log records. The rest of the system consumes it only through the
// Provider and Sink interfaces.
package catalog

import (
	"context"
	"time"
)

// AllTeamID is the reserved person id meaning a log applies to the whole
// squad rather than one member.
const AllTeamID int64 = 0

// AllTeamName is the display name indexed for the AllTeamID sentinel.
const AllTeamName = "All team"

// Member is one person belonging to a squad
type Member struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// FullName returns "First Last" for display
func (m Member) FullName() string {
	if m.LastName == "" {
		return m.FirstName
	}
	return m.FirstName + " " + m.LastName
}

// Squad is a team with its nested members
type Squad struct {
	ID      int64    `json:"id"`
	Name    string   `json:"name"`
	Members []Member `json:"members"`
}

// LogType is one kind of squad log (review, incident, ...)
type LogType struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Category is one classification tag for a log record
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// LogRecord is a finished, fully resolved log entry as the sink accepts it.
// Dates are ISO YYYY-MM-DD.
type LogRecord struct {
	SquadID     int64   `json:"squadId"`
	UserID      int64   `json:"userId"`
	TypeID      int64   `json:"typeId"`
	CategoryIDs []int64 `json:"categoryIds"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate,omitempty"`
}

// ISODate formats a time as the sink's YYYY-MM-DD wire form
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Provider exposes the catalog's reference data
type Provider interface {
	ListSquads(ctx context.Context) ([]Squad, error)
	ListLogTypes(ctx context.Context) ([]LogType, error)
	ListCategories(ctx context.Context) ([]Category, error)
}

// Sink accepts finished log records, one call per record
type Sink interface {
	CreateLog(ctx context.Context, rec LogRecord) error
	UpdateLog(ctx context.Context, id int64, rec LogRecord) error
}
