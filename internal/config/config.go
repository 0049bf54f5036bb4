package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration for the resto-mania backend.
type Config struct {
	Server   Server   `yaml:"server"`
	Database Postgres `yaml:"database"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
	Notify   Notify   `yaml:"notify"`
	Live     Live     `yaml:"live"`
	Logging  Logging  `yaml:"logging"`
}

type Server struct {
	Port        int      `yaml:"port"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type Postgres struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
}

// DSN builds a postgres connection string for pgx.
func (p Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.Database)
}

type RabbitMQ struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
}

func (r RabbitMQ) URL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", r.User, r.Password, r.Host, r.Port)
}

// Notify selects and configures the outbound notification channel.
// Kind is either "webhook" or "amqp". Endpoint URLs and the exchange
// name are configuration, not constants, because deployments differ.
type Notify struct {
	Kind           string `yaml:"kind"`
	OrderUpdateURL string `yaml:"order_update_url"`
	BillUpdateURL  string `yaml:"bill_update_url"`
	Exchange       string `yaml:"exchange"`
}

// Live holds the polling cadence for the snapshot readers and status
// detectors, in seconds.
type Live struct {
	KitchenOrdersInterval  int `yaml:"kitchen_orders_interval"`
	PreviousOrdersInterval int `yaml:"previous_orders_interval"`
	BillRequestsInterval   int `yaml:"bill_requests_interval"`
	SessionStatusInterval  int `yaml:"session_status_interval"`
	BillStatusInterval     int `yaml:"bill_status_interval"`
}

func (l Live) KitchenOrdersPeriod() time.Duration {
	return time.Duration(l.KitchenOrdersInterval) * time.Second
}

func (l Live) PreviousOrdersPeriod() time.Duration {
	return time.Duration(l.PreviousOrdersInterval) * time.Second
}

func (l Live) BillRequestsPeriod() time.Duration {
	return time.Duration(l.BillRequestsInterval) * time.Second
}

func (l Live) SessionStatusPeriod() time.Duration {
	return time.Duration(l.SessionStatusInterval) * time.Second
}

func (l Live) BillStatusPeriod() time.Duration {
	return time.Duration(l.BillStatusInterval) * time.Second
}

// validate rejects non-positive intervals; a zero period would blow
// up the ticker the first time polling starts.
func (l Live) validate() error {
	intervals := map[string]int{
		"live.kitchen_orders_interval":  l.KitchenOrdersInterval,
		"live.previous_orders_interval": l.PreviousOrdersInterval,
		"live.bill_requests_interval":   l.BillRequestsInterval,
		"live.session_status_interval":  l.SessionStatusInterval,
		"live.bill_status_interval":     l.BillStatusInterval,
	}
	for name, v := range intervals {
		if v <= 0 {
			return fmt.Errorf("%s must be a positive number of seconds, got %d", name, v)
		}
	}
	return nil
}

type Logging struct {
	Level string `yaml:"level"`
}

// Load reads the YAML config at path and applies defaults and
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyEnv(cfg)

	if cfg.Notify.Kind != "webhook" && cfg.Notify.Kind != "amqp" {
		return nil, fmt.Errorf("notify.kind must be \"webhook\" or \"amqp\", got %q", cfg.Notify.Kind)
	}
	if cfg.Notify.Kind == "webhook" && (cfg.Notify.OrderUpdateURL == "" || cfg.Notify.BillUpdateURL == "") {
		return nil, fmt.Errorf("notify.order_update_url and notify.bill_update_url are required for webhook notifications")
	}
	if err := cfg.Live.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{Port: 5000},
		Database: Postgres{
			Host: "localhost",
			Port: 5432,
		},
		RabbitMQ: RabbitMQ{
			Host: "localhost",
			Port: 5672,
		},
		Notify: Notify{
			Kind:     "webhook",
			Exchange: "order_events_fanout",
		},
		Live: Live{
			KitchenOrdersInterval:  5,
			PreviousOrdersInterval: 15,
			BillRequestsInterval:   5,
			SessionStatusInterval:  5,
			BillStatusInterval:     5,
		},
		Logging: Logging{Level: "info"},
	}
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("DB_HOST"); v != "" {
		cfg.Database.Host = v
	}
	if v := os.Getenv("DB_USER"); v != "" {
		cfg.Database.User = v
	}
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		cfg.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		cfg.Database.Database = v
	}
	if v := os.Getenv("RABBITMQ_HOST"); v != "" {
		cfg.RabbitMQ.Host = v
	}
	if v := os.Getenv("RABBITMQ_USER"); v != "" {
		cfg.RabbitMQ.User = v
	}
	if v := os.Getenv("RABBITMQ_PASS"); v != "" {
		cfg.RabbitMQ.Password = v
	}
	if v := os.Getenv("ORDER_WEBHOOK_URL"); v != "" {
		cfg.Notify.OrderUpdateURL = v
	}
	if v := os.Getenv("BILL_WEBHOOK_URL"); v != "" {
		cfg.Notify.BillUpdateURL = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}
