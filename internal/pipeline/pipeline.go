package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/opsdeck/ticket-insights/internal/config"
	"github.com/opsdeck/ticket-insights/internal/helpdesk"
	"github.com/opsdeck/ticket-insights/internal/kafka"
	"github.com/opsdeck/ticket-insights/internal/store"
	"github.com/opsdeck/ticket-insights/internal/ticket"
)

// Source supplies batches of ticket records.
type Source interface {
	Poll(ctx context.Context) ([]ticket.Record, error)
}

// Publisher sends reports and diagnostics downstream.
type Publisher interface {
	SendReport(ctx context.Context, key string, report any) error
	SendDiagnostics(ctx context.Context, key string, diagnostics any) error
	Close() error
}

// Archive persists reports and diagnostics for later inspection.
type Archive interface {
	SaveReport(ctx context.Context, report ticket.Report) error
	SaveDiagnostics(ctx context.Context, batchKey string, diagnostics []ticket.InvalidResolution) error
}

// Diagnostics is the validation payload published alongside each report.
type Diagnostics struct {
	BatchKey           string                     `json:"batch_key"`
	MissingKeyIndices  []int                      `json:"missing_key_indices"`
	InvalidResolutions []ticket.InvalidResolution `json:"invalid_resolutions"`
}

// Pipeline orchestrates the flow from the helpdesk to Kafka and Postgres
type Pipeline struct {
	cfg       *config.Config
	client    *helpdesk.Client
	source    Source
	publisher Publisher
	archive   Archive
}

// New creates a new pipeline
func New(ctx context.Context, cfg *config.Config) (*Pipeline, error) {
	client := helpdesk.NewClient(
		cfg.Helpdesk.BaseURL,
		cfg.Helpdesk.Username,
		cfg.Helpdesk.Password,
	)

	producer := kafka.NewProducer(
		cfg.Kafka.Brokers,
		cfg.Kafka.ReportsTopic,
		cfg.Kafka.DiagnosticsTopic,
	)

	poller := helpdesk.NewPoller(client, cfg.Pipeline.BatchSize)

	p := &Pipeline{
		cfg:       cfg,
		client:    client,
		source:    poller,
		publisher: producer,
	}

	if cfg.Postgres.ConnString != "" {
		st, err := store.NewFromConnString(ctx, cfg.Postgres.ConnString)
		if err != nil {
			return nil, err
		}
		if err := st.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		p.archive = st
	}

	return p, nil
}

// Run starts the summary pipeline
func (p *Pipeline) Run(ctx context.Context) error {
	log.Printf("Starting ticket summary pipeline")
	log.Printf("  Helpdesk: %s", p.cfg.Helpdesk.BaseURL)
	log.Printf("  Kafka: %v", p.cfg.Kafka.Brokers)
	log.Printf("  Poll interval: %s", p.cfg.Pipeline.PollInterval)
	log.Printf("  Required keys: %v", p.cfg.Pipeline.RequiredKeys)

	// Check helpdesk connectivity
	if err := p.client.Ping(ctx); err != nil {
		return fmt.Errorf("failed to connect to helpdesk: %w", err)
	}
	log.Printf("Connected to helpdesk")

	ticker := time.NewTicker(p.cfg.Pipeline.PollInterval)
	defer ticker.Stop()

	// Initial poll
	if err := p.poll(ctx); err != nil {
		log.Printf("Initial poll error: %v", err)
	}

	for {
		select {
		case <-ctx.Done():
			log.Printf("Shutting down pipeline")
			return p.publisher.Close()
		case <-ticker.C:
			if err := p.poll(ctx); err != nil {
				log.Printf("Poll error: %v", err)
			}
		}
	}
}

func (p *Pipeline) poll(ctx context.Context) error {
	tickets, err := p.source.Poll(ctx)
	if err != nil {
		return err
	}

	if len(tickets) == 0 {
		return nil
	}

	log.Printf("Polled %d tickets from helpdesk", len(tickets))

	batchKey := time.Now().UTC().Format(time.RFC3339Nano)

	diagnostics := Diagnostics{
		BatchKey:           batchKey,
		MissingKeyIndices:  ticket.ValidateKeys(tickets, p.cfg.Pipeline.RequiredKeys),
		InvalidResolutions: ticket.FindInvalidResolutions(tickets),
	}

	if n := len(diagnostics.MissingKeyIndices); n > 0 {
		log.Printf("%d tickets missing required keys: %v", n, diagnostics.MissingKeyIndices)
	}
	if n := len(diagnostics.InvalidResolutions); n > 0 {
		log.Printf("%d tickets with invalid resolution_minutes", n)
	}

	if err := p.publisher.SendDiagnostics(ctx, batchKey, diagnostics); err != nil {
		log.Printf("Failed to send diagnostics for batch %s: %v", batchKey, err)
	}

	report := ticket.GenerateReport(tickets)
	if err := p.publisher.SendReport(ctx, batchKey, report); err != nil {
		log.Printf("Failed to send report for batch %s: %v", batchKey, err)
	}

	if p.archive != nil {
		if err := p.archive.SaveReport(ctx, report); err != nil {
			log.Printf("Failed to archive report for batch %s: %v", batchKey, err)
		}
		if len(diagnostics.InvalidResolutions) > 0 {
			if err := p.archive.SaveDiagnostics(ctx, batchKey, diagnostics.InvalidResolutions); err != nil {
				log.Printf("Failed to archive diagnostics for batch %s: %v", batchKey, err)
			}
		}
	}

	return nil
}
