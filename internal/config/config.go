package config

import (
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Helpdesk HelpdeskConfig `yaml:"helpdesk"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Postgres PostgresConfig `yaml:"postgres"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	LogLevel string         `yaml:"log_level"`
}

type HelpdeskConfig struct {
	BaseURL  string `yaml:"base_url"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type KafkaConfig struct {
	Brokers          []string `yaml:"brokers"`
	ReportsTopic     string   `yaml:"reports_topic"`
	DiagnosticsTopic string   `yaml:"diagnostics_topic"`
}

type PostgresConfig struct {
	// ConnString enables report persistence when set.
	ConnString string `yaml:"conn_string"`
}

type PipelineConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int           `yaml:"batch_size"`
	// RequiredKeys are the fields every ticket is expected to carry;
	// tickets missing any of them are reported in the diagnostics.
	RequiredKeys []string `yaml:"required_keys"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Helpdesk: HelpdeskConfig{
			BaseURL:  "http://localhost:8080/api",
			Username: "",
			Password: "",
		},
		Kafka: KafkaConfig{
			Brokers:          []string{"localhost:9092"},
			ReportsTopic:     "ticket-reports",
			DiagnosticsTopic: "ticket-diagnostics",
		},
		Pipeline: PipelineConfig{
			PollInterval: 30 * time.Second,
			BatchSize:    200,
			RequiredKeys: []string{"ticket_id", "category", "priority", "resolution_minutes"},
		},
		LogLevel: "info",
	}

	// Load from YAML if exists
	if data, err := os.ReadFile("config.yaml"); err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, err
		}
	}

	// Override from environment
	if v := os.Getenv("HELPDESK_BASE_URL"); v != "" {
		cfg.Helpdesk.BaseURL = v
	}
	if v := os.Getenv("HELPDESK_USERNAME"); v != "" {
		cfg.Helpdesk.Username = v
	}
	if v := os.Getenv("HELPDESK_PASSWORD"); v != "" {
		cfg.Helpdesk.Password = v
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		cfg.Kafka.Brokers = strings.Split(v, ",")
	}
	if v := os.Getenv("POSTGRES_CONN_STRING"); v != "" {
		cfg.Postgres.ConnString = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}

	return cfg, nil
}
