package helpdesk

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/opsdeck/ticket-insights/internal/ticket"
)

// Client is a helpdesk REST API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	authHeader string
}

// NewClient creates a new helpdesk client
func NewClient(baseURL, username, password string) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	if username != "" && password != "" {
		auth := base64.StdEncoding.EncodeToString([]byte(username + ":" + password))
		c.authHeader = "Basic " + auth
	}
	return c
}

// GetTickets queries ticket records, oldest update first. Records come back
// as raw field maps; numbers are decoded with UseNumber so integer fields
// keep their integer identity.
func (c *Client) GetTickets(ctx context.Context, updatedAfter *time.Time, maxResults int) ([]ticket.Record, error) {
	url := fmt.Sprintf("%s/tickets?sortBy=updated_at&sortOrder=asc&maxResults=%d", c.baseURL, maxResults)
	if updatedAfter != nil {
		url += "&updatedAfter=" + updatedAfter.UTC().Format(time.RFC3339)
	}

	var result []ticket.Record
	if err := c.get(ctx, url, &result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client) get(ctx context.Context, url string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("helpdesk API error %d: %s", resp.StatusCode, string(body))
	}

	dec := json.NewDecoder(resp.Body)
	dec.UseNumber()
	return dec.Decode(result)
}

// Ping checks connectivity to the helpdesk
func (c *Client) Ping(ctx context.Context) error {
	url := fmt.Sprintf("%s/health", c.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.authHeader != "" {
		req.Header.Set("Authorization", c.authHeader)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("helpdesk ping failed with status %d", resp.StatusCode)
	}
	return nil
}
