// A minimal in-memory helpdesk API for local pipeline runs. Accepts posted
// tickets and serves them back with updated_after filtering, the contract
// the pipeline polls against.
package main

import (
	"encoding/json"
	"log"
	"net/http"
	"os"
	"sort"
	"strconv"
	"sync"
	"time"
)

type server struct {
	mu      sync.Mutex
	tickets []map[string]any
}

func main() {
	s := &server{}

	http.HandleFunc("/api/health", s.handleHealth)
	http.HandleFunc("/api/tickets", s.handleTickets)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting demo helpdesk on http://localhost:%s/api", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func (s *server) handleTickets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.addTicket(w, r)
	case http.MethodGet:
		s.listTickets(w, r)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *server) addTicket(w http.ResponseWriter, r *http.Request) {
	var t map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&t); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if _, ok := t["updated_at"]; !ok {
		t["updated_at"] = time.Now().UTC().Format(time.RFC3339)
	}

	s.mu.Lock()
	s.tickets = append(s.tickets, t)
	count := len(s.tickets)
	s.mu.Unlock()

	log.Printf("Accepted ticket (%d total)", count)
	w.WriteHeader(http.StatusCreated)
}

func (s *server) listTickets(w http.ResponseWriter, r *http.Request) {
	var updatedAfter *time.Time
	if raw := r.URL.Query().Get("updatedAfter"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			http.Error(w, "bad updatedAfter: "+err.Error(), http.StatusBadRequest)
			return
		}
		updatedAfter = &t
	}

	maxResults := 100
	if raw := r.URL.Query().Get("maxResults"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			maxResults = n
		}
	}

	s.mu.Lock()
	matched := make([]map[string]any, 0)
	for _, t := range s.tickets {
		if updatedAfter != nil {
			raw, ok := t["updated_at"].(string)
			if !ok {
				continue
			}
			ts, err := time.Parse(time.RFC3339, raw)
			if err != nil || !ts.After(*updatedAfter) {
				continue
			}
		}
		matched = append(matched, t)
	}
	s.mu.Unlock()

	// RFC3339 strings sort chronologically.
	sort.Slice(matched, func(i, j int) bool {
		a, _ := matched[i]["updated_at"].(string)
		b, _ := matched[j]["updated_at"].(string)
		return a < b
	})
	if len(matched) > maxResults {
		matched = matched[:maxResults]
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(matched)
}
