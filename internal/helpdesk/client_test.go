package helpdesk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTickets(t *testing.T) {
	var gotQuery string
	var gotAuth string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/tickets", r.URL.Path)
		gotQuery = r.URL.RawQuery
		gotAuth = r.Header.Get("Authorization")

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"ticket_id": "TKT-1", "category": "Billing", "resolution_minutes": 30},
			{"ticket_id": "TKT-2"}
		]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "ops", "secret")
	tickets, err := client.GetTickets(context.Background(), nil, 50)
	require.NoError(t, err)

	require.Len(t, tickets, 2)
	assert.Equal(t, "TKT-1", tickets[0].TicketID())
	assert.Equal(t, "Billing", tickets[0].Category())
	// Integer fields survive decoding as json.Number, not float64.
	assert.Equal(t, json.Number("30"), tickets[0]["resolution_minutes"])

	assert.Contains(t, gotQuery, "maxResults=50")
	assert.NotContains(t, gotQuery, "updatedAfter")
	assert.Contains(t, gotAuth, "Basic ")
}

func TestGetTicketsUpdatedAfter(t *testing.T) {
	var gotQuery string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	after := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)
	tickets, err := client.GetTickets(context.Background(), &after, 10)
	require.NoError(t, err)
	assert.Empty(t, tickets)
	assert.Contains(t, gotQuery, "updatedAfter=2026-08-25T12:00:00Z")
}

func TestGetTicketsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	_, err := client.GetTickets(context.Background(), nil, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "helpdesk API error 500")
}

func TestPing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/health" {
			w.WriteHeader(http.StatusOK)
			return
		}
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", "")
	assert.NoError(t, client.Ping(context.Background()))

	bad := NewClient(srv.URL+"/missing", "", "")
	assert.Error(t, bad.Ping(context.Background()))
}

func TestPollerAdvancesCheckpoint(t *testing.T) {
	var calls []string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.URL.Query().Get("updatedAfter"))

		if len(calls) == 1 {
			w.Write([]byte(`[
				{"ticket_id": "TKT-1", "updated_at": "2026-08-25T10:00:00Z"},
				{"ticket_id": "TKT-2", "updated_at": "2026-08-25T11:30:00Z"},
				{"ticket_id": "TKT-3", "updated_at": "not a timestamp"}
			]`))
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	poller := NewPoller(NewClient(srv.URL, "", ""), 100)
	require.Nil(t, poller.GetCheckpoint())

	tickets, err := poller.Poll(context.Background())
	require.NoError(t, err)
	assert.Len(t, tickets, 3)

	checkpoint := poller.GetCheckpoint()
	require.NotNil(t, checkpoint)
	assert.Equal(t, time.Date(2026, 8, 25, 11, 30, 0, 0, time.UTC), checkpoint.UTC())

	// Second poll passes the checkpoint to the helpdesk.
	_, err = poller.Poll(context.Background())
	require.NoError(t, err)
	require.Len(t, calls, 2)
	assert.Equal(t, "", calls[0])
	assert.Equal(t, "2026-08-25T11:30:00Z", calls[1])
}

func TestPollerSetCheckpoint(t *testing.T) {
	poller := NewPoller(NewClient("http://localhost:0", "", ""), 10)

	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	poller.SetCheckpoint(at)

	checkpoint := poller.GetCheckpoint()
	require.NotNil(t, checkpoint)
	assert.True(t, checkpoint.Equal(at))
}
