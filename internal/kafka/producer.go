package kafka

import (
	"context"
	"encoding/json"
	"log"

	"github.com/segmentio/kafka-go"
)

// Producer sends summary output to Kafka
type Producer struct {
	reportsWriter     *kafka.Writer
	diagnosticsWriter *kafka.Writer
}

// NewProducer creates a new Kafka producer
func NewProducer(brokers []string, reportsTopic, diagnosticsTopic string) *Producer {
	return &Producer{
		reportsWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    reportsTopic,
			Balancer: &kafka.LeastBytes{},
		},
		diagnosticsWriter: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    diagnosticsTopic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

// SendReport sends an assembled report to the reports topic
func (p *Producer) SendReport(ctx context.Context, key string, report any) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.reportsWriter.WriteMessages(ctx, msg); err != nil {
		return err
	}

	log.Printf("Sent report to Kafka: %s", key)
	return nil
}

// SendDiagnostics sends validation diagnostics to the diagnostics topic
func (p *Producer) SendDiagnostics(ctx context.Context, key string, diagnostics any) error {
	data, err := json.Marshal(diagnostics)
	if err != nil {
		return err
	}

	msg := kafka.Message{
		Key:   []byte(key),
		Value: data,
	}

	if err := p.diagnosticsWriter.WriteMessages(ctx, msg); err != nil {
		return err
	}

	log.Printf("Sent diagnostics to Kafka: %s", key)
	return nil
}

// Close closes the Kafka writers
func (p *Producer) Close() error {
	if err := p.reportsWriter.Close(); err != nil {
		return err
	}
	return p.diagnosticsWriter.Close()
}
