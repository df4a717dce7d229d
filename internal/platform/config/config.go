package config

import (
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// PostingPolicy controls when a run's ledger effects are written.
type PostingPolicy string

const (
	// PostAtCreation writes ledger rows when the run is created.
	PostAtCreation PostingPolicy = "creation"
	// PostAtSettlement writes ledger rows when the run is marked paid.
	PostAtSettlement PostingPolicy = "settlement"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// TxTimeout bounds settlement transactions.
	TxTimeout time.Duration

	// PayCycleDays is the default cycle length for new pay schedules.
	PayCycleDays int

	// Posting policies by run kind.
	ExplicitRunPosting PostingPolicy
	DebtRunPosting     PostingPolicy

	// Kafka settings for the settlement outbox.
	KafkaBrokers      []string
	OutboxPollSeconds int

	// Rate limiting, e.g. "100-M" for 100 requests per minute.
	RateLimit string
}

func parsePostingPolicy(raw string) PostingPolicy {
	switch PostingPolicy(strings.ToLower(raw)) {
	case PostAtSettlement:
		return PostAtSettlement
	default:
		return PostAtCreation
	}
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("TX_TIMEOUT", "120s")
	viper.SetDefault("PAY_CYCLE_DAYS", 14)
	viper.SetDefault("POSTING_EXPLICIT_RUN", string(PostAtCreation))
	viper.SetDefault("POSTING_DEBT_RUN", string(PostAtCreation))
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("OUTBOX_POLL_SECONDS", 5)
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	txTimeoutStr := viper.GetString("TX_TIMEOUT")
	txTimeout, err := time.ParseDuration(txTimeoutStr)
	if err != nil {
		txTimeout = 120 * time.Second
		if txTimeoutStr != "" {
			log.Printf("Warning: Invalid value for TX_TIMEOUT ('%s'). Defaulting to %s.\n", txTimeoutStr, txTimeout.String())
		}
	}

	cfg.PayCycleDays = viper.GetInt("PAY_CYCLE_DAYS")
	if cfg.PayCycleDays <= 0 {
		cfg.PayCycleDays = 14
		log.Printf("Warning: PAY_CYCLE_DAYS must be positive. Defaulting to %d.\n", cfg.PayCycleDays)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")
	cfg.TxTimeout = txTimeout
	cfg.ExplicitRunPosting = parsePostingPolicy(viper.GetString("POSTING_EXPLICIT_RUN"))
	cfg.DebtRunPosting = parsePostingPolicy(viper.GetString("POSTING_DEBT_RUN"))
	cfg.KafkaBrokers = strings.Split(viper.GetString("KAFKA_BROKERS"), ",")
	cfg.OutboxPollSeconds = viper.GetInt("OUTBOX_POLL_SECONDS")
	if cfg.OutboxPollSeconds <= 0 {
		cfg.OutboxPollSeconds = 5
	}
	cfg.RateLimit = viper.GetString("RATE_LIMIT")

	return cfg, nil
}
