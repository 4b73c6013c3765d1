package catalog

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crewlog/crewlog/errors"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "test-token", 5*time.Second)
}

func TestListSquads(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/squads", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]Squad{
			{ID: 1, Name: "Alpha", Members: []Member{{ID: 42, FirstName: "Jane", LastName: "Doe"}}},
		})
	}))

	squads, err := client.ListSquads(context.Background())
	require.NoError(t, err)
	require.Len(t, squads, 1)
	assert.Equal(t, "Alpha", squads[0].Name)
	require.Len(t, squads[0].Members, 1)
	assert.Equal(t, "Jane Doe", squads[0].Members[0].FullName())
}

func TestListLogTypesAndCategories(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/log-types":
			json.NewEncoder(w).Encode([]LogType{{ID: 7, Name: "Review"}})
		case "/categories":
			json.NewEncoder(w).Encode([]Category{{ID: 3, Name: "Backend"}})
		default:
			http.NotFound(w, r)
		}
	}))

	types, err := client.ListLogTypes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Review", types[0].Name)

	cats, err := client.ListCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), cats[0].ID)
}

func TestCreateLog(t *testing.T) {
	var received LogRecord
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/logs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))

	end := "2025-01-15"
	rec := LogRecord{
		SquadID:     1,
		UserID:      42,
		TypeID:      7,
		CategoryIDs: []int64{3, 4},
		Description: "review",
		StartDate:   "2025-01-10",
		EndDate:     &end,
	}
	require.NoError(t, client.CreateLog(context.Background(), rec))
	assert.Equal(t, rec, received)
}

func TestUpdateLog(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/logs/9", r.URL.Path)
	}))

	err := client.UpdateLog(context.Background(), 9, LogRecord{SquadID: 1})
	require.NoError(t, err)
}

// Failures come back as typed sentinels, not prose to be sniffed
func TestErrorClassification(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(error) bool
	}{
		{name: "unauthorized", status: http.StatusUnauthorized, check: errors.IsUnauthorized},
		{name: "forbidden", status: http.StatusForbidden, check: errors.IsUnauthorized},
		{name: "not found", status: http.StatusNotFound, check: errors.IsNotFound},
		{name: "gateway timeout", status: http.StatusGatewayTimeout, check: errors.IsTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			}))

			_, err := client.ListSquads(context.Background())
			require.Error(t, err)
			assert.True(t, tt.check(err), "expected typed sentinel for status %d, got %v", tt.status, err)
		})
	}
}

func TestTransportTimeoutIsTyped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	t.Cleanup(server.Close)

	client := NewClient(server.URL, "", 20*time.Millisecond)
	_, err := client.ListSquads(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsTimeout(err))
}

func TestConnectionRefusedIsUnavailable(t *testing.T) {
	// Nothing listens on this port
	client := NewClient("http://127.0.0.1:1", "", time.Second)
	_, err := client.ListSquads(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsUnavailable(err))
}

func TestServerErrorIsGeneric(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.ListSquads(context.Background())
	require.Error(t, err)
	assert.False(t, errors.IsTimeout(err))
	assert.False(t, errors.IsUnauthorized(err))
	assert.False(t, errors.IsUnavailable(err))
}
