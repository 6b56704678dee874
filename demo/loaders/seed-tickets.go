// Seeds the demo helpdesk with sample tickets, including a few malformed
// records so the pipeline's diagnostics have something to report.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"time"
)

var sampleTickets = []map[string]any{
	{
		"category":           "Billing",
		"priority":           "Low",
		"resolution_minutes": 45,
	},
	{
		"category":           "Billing",
		"priority":           "Medium",
		"resolution_minutes": 90,
	},
	{
		"category":           "Network",
		"priority":           "Critical",
		"resolution_minutes": 240,
	},
	{
		"category":           "Network",
		"priority":           "High",
		"resolution_minutes": 120,
	},
	{
		"category":           "Account",
		"priority":           "Low",
		"resolution_minutes": 15,
	},
	{
		// No category: lands in the Unknown group.
		"priority":           "Low",
		"resolution_minutes": 30,
	},
	{
		// Wrong type: excluded from averages, flagged by the validator.
		"category":           "Billing",
		"priority":           "Low",
		"resolution_minutes": "pending",
	},
	{
		// Still open: no resolution yet.
		"category": "Account",
		"priority": "Critical",
	},
}

func main() {
	baseURL := os.Getenv("HELPDESK_BASE_URL")
	if baseURL == "" {
		baseURL = "http://localhost:8080/api"
	}

	count := 20
	if len(os.Args) > 1 {
		fmt.Sscanf(os.Args[1], "%d", &count)
	}

	log.Printf("Seeding %d tickets...", count)

	for i := 0; i < count; i++ {
		sample := sampleTickets[rand.Intn(len(sampleTickets))]

		t := make(map[string]any, len(sample)+2)
		for k, v := range sample {
			t[k] = v
		}
		t["ticket_id"] = fmt.Sprintf("TKT-%03d", i+1)
		t["updated_at"] = time.Now().UTC().Format(time.RFC3339)

		body, _ := json.Marshal(t)
		resp, err := http.Post(baseURL+"/tickets", "application/json", bytes.NewReader(body))
		if err != nil {
			log.Printf("Failed to post %s: %v", t["ticket_id"], err)
			continue
		}
		resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			log.Printf("Failed to post %s: status %d", t["ticket_id"], resp.StatusCode)
			continue
		}

		log.Printf("Posted %v (%v)", t["ticket_id"], t["category"])
		time.Sleep(100 * time.Millisecond)
	}

	log.Printf("Done! Seeded %d tickets", count)
}
