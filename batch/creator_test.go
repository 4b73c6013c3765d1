package batch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlog/crewlog/catalog"
	"github.com/crewlog/crewlog/errors"
)

// fakeSink records every create call and fails on chosen line numbers
type fakeSink struct {
	created   []catalog.LogRecord
	failLines map[int]bool
	calls     int
}

func (f *fakeSink) CreateLog(ctx context.Context, rec catalog.LogRecord) error {
	f.calls++
	if f.failLines[f.calls] {
		return errors.New("sink rejected the record")
	}
	f.created = append(f.created, rec)
	return nil
}

func (f *fakeSink) UpdateLog(ctx context.Context, id int64, rec catalog.LogRecord) error {
	return nil
}

func threeEntries() []Entry {
	return []Entry{
		{SquadID: 1, UserID: 42, TypeID: 7, CategoryIDs: []int64{3}, StartDate: date(2025, 1, 10), LineNumber: 1},
		{SquadID: 1, UserID: 43, TypeID: 7, CategoryIDs: []int64{3}, StartDate: date(2025, 1, 11), LineNumber: 2},
		{SquadID: 2, UserID: 50, TypeID: 8, CategoryIDs: []int64{4}, StartDate: date(2025, 1, 12), LineNumber: 3},
	}
}

// A failure mid-batch must not stop the remaining entries
func TestCreateAllPartialFailure(t *testing.T) {
	sink := &fakeSink{failLines: map[int]bool{2: true}}
	c := NewCreator(sink, 0, nil)

	report := c.CreateAll(context.Background(), threeEntries())

	assert.Len(t, report.Created, 2)
	require.Len(t, report.Failures, 1)
	assert.Equal(t, 2, report.Failures[0].Entry.LineNumber)
	assert.Equal(t, 3, sink.calls)
	assert.NotEmpty(t, report.ID)
}

func TestCreateAllSuccess(t *testing.T) {
	sink := &fakeSink{}
	c := NewCreator(sink, 0, nil)

	report := c.CreateAll(context.Background(), threeEntries())

	assert.Len(t, report.Created, 3)
	assert.Empty(t, report.Failures)
	require.Len(t, sink.created, 3)
	assert.Equal(t, "2025-01-10", sink.created[0].StartDate)
}

func TestCreateAllEmpty(t *testing.T) {
	sink := &fakeSink{}
	c := NewCreator(sink, 0, nil)

	report := c.CreateAll(context.Background(), nil)
	assert.Empty(t, report.Created)
	assert.Empty(t, report.Failures)
	assert.Equal(t, 0, sink.calls)
}

// Pacing still submits everything, in order
func TestCreateAllWithLimiter(t *testing.T) {
	sink := &fakeSink{}
	c := NewCreator(sink, 1000, nil)

	report := c.CreateAll(context.Background(), threeEntries())
	assert.Len(t, report.Created, 3)
	assert.Equal(t, 3, sink.calls)
}
