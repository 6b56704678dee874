// A small JSON viewer over the archived reports and diagnostics in
// Postgres, for poking at pipeline output during local runs.
package main

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/opsdeck/ticket-insights/internal/store"
)

var archive *store.Store

func main() {
	connString := os.Getenv("POSTGRES_CONN_STRING")
	if connString == "" {
		connString = "postgres://localhost:5432/tickets?sslmode=disable"
	}

	var err error
	archive, err = store.NewFromConnString(context.Background(), connString)
	if err != nil {
		log.Fatal("connect to Postgres:", err)
	}
	defer archive.Close()

	http.HandleFunc("/api/reports", handleReports)
	http.HandleFunc("/api/diagnostics", handleDiagnostics)

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	log.Printf("Starting report viewer on http://localhost:%s", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func handleReports(w http.ResponseWriter, r *http.Request) {
	reports, err := archive.RecentReports(r.Context(), limitParam(r, 20))
	if err != nil {
		jsonError(w, err, http.StatusInternalServerError)
		return
	}
	jsonResponse(w, reports)
}

func handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	diagnostics, err := archive.RecentDiagnostics(r.Context(), limitParam(r, 50))
	if err != nil {
		jsonError(w, err, http.StatusInternalServerError)
		return
	}
	jsonResponse(w, diagnostics)
}

func limitParam(r *http.Request, def int) int {
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func jsonResponse(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encode response: %v", err)
	}
}

func jsonError(w http.ResponseWriter, err error, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
