package helpdesk

import (
	"context"
	"time"

	"github.com/opsdeck/ticket-insights/internal/ticket"
)

// Poller polls the helpdesk for ticket updates
type Poller struct {
	client       *Client
	batchSize    int
	lastPollTime *time.Time
}

// NewPoller creates a new helpdesk poller
func NewPoller(client *Client, batchSize int) *Poller {
	return &Poller{
		client:    client,
		batchSize: batchSize,
	}
}

// Poll fetches ticket records updated since the last poll and advances the
// checkpoint to the newest updated_at seen. Records without a parseable
// updated_at still come back; they just never move the checkpoint.
func (p *Poller) Poll(ctx context.Context) ([]ticket.Record, error) {
	tickets, err := p.client.GetTickets(ctx, p.lastPollTime, p.batchSize)
	if err != nil {
		return nil, err
	}

	for _, t := range tickets {
		raw, ok := t["updated_at"].(string)
		if !ok {
			continue
		}
		updatedAt, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			continue
		}
		if p.lastPollTime == nil || updatedAt.After(*p.lastPollTime) {
			p.lastPollTime = &updatedAt
		}
	}

	return tickets, nil
}

// SetCheckpoint sets the polling checkpoint
func (p *Poller) SetCheckpoint(t time.Time) {
	p.lastPollTime = &t
}

// GetCheckpoint returns the current polling checkpoint
func (p *Poller) GetCheckpoint() *time.Time {
	return p.lastPollTime
}
