package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	DBConfig struct {
		DBHost     string `env:"FULFILLMENT_DB_HOST"`
		DBPort     string `env:"FULFILLMENT_DB_PORT"`
		DBUser     string `env:"FULFILLMENT_DB_USER"`
		DBPassword string `env:"FULFILLMENT_DB_PASSWORD"`
		DBName     string `env:"FULFILLMENT_DB_NAME"`
		DBSSLMode  string `env:"FULFILLMENT_DB_SSLMODE"`
	}

	KafkaURL           string        `env:"KAFKA_BROKER_URL"`
	KafkaIntakeTopic   string        `env:"KAFKA_INTAKE_TOPIC"`
	KafkaConsumerGroup string        `env:"KAFKA_CONSUMER_GROUP"`
	BatchSize          int           `env:"FULFILLMENT_BATCH_SIZE"`
	BatchMaxWait       time.Duration `env:"FULFILLMENT_BATCH_MAX_WAIT"`
	Workers            int           `env:"FULFILLMENT_WORKERS"`

	OracleCatalogURL string        `env:"ORACLE_CATALOG_URL"`
	OracleTimeout    time.Duration `env:"ORACLE_TIMEOUT"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	MailFrom     string `env:"MAIL_FROM"`

	ArtifactDir    string `env:"ARTIFACT_DIR"`
	MigrationsPath string `env:"MIGRATIONS_PATH"`
	MetricsAddr    string `env:"METRICS_ADDR"`
	GatewayPort    int    `env:"GATEWAY_PORT"`

	RelayPollInterval time.Duration `env:"RELAY_POLL_INTERVAL"`
	RelayBatchLimit   int           `env:"RELAY_BATCH_LIMIT"`
}

func LoadConfig() (*Config, error) {
	cfg := &Config{}

	cfg.DBConfig.DBHost = getEnvOrDefault("FULFILLMENT_DB_HOST", "localhost")
	cfg.DBConfig.DBPort = getEnvOrDefault("FULFILLMENT_DB_PORT", "5432")
	cfg.DBConfig.DBUser = getEnvOrDefault("FULFILLMENT_DB_USER", "postgres")
	cfg.DBConfig.DBPassword = getEnvOrDefault("FULFILLMENT_DB_PASSWORD", "postgres")
	cfg.DBConfig.DBName = getEnvOrDefault("FULFILLMENT_DB_NAME", "orders_db")
	cfg.DBConfig.DBSSLMode = getEnvOrDefault("FULFILLMENT_DB_SSLMODE", "disable")

	cfg.KafkaURL = getEnvOrDefault("KAFKA_BROKER_URL", "localhost:9092")
	cfg.KafkaIntakeTopic = getEnvOrDefault("KAFKA_INTAKE_TOPIC", "order_intake")
	cfg.KafkaConsumerGroup = getEnvOrDefault("KAFKA_CONSUMER_GROUP", "fulfillment-worker-group")

	var err error
	if cfg.BatchSize, err = getEnvInt("FULFILLMENT_BATCH_SIZE", 10); err != nil {
		return nil, err
	}
	if cfg.BatchMaxWait, err = getEnvDuration("FULFILLMENT_BATCH_MAX_WAIT", "2s"); err != nil {
		return nil, err
	}
	if cfg.Workers, err = getEnvInt("FULFILLMENT_WORKERS", 4); err != nil {
		return nil, err
	}

	cfg.OracleCatalogURL = getEnvOrDefault("ORACLE_CATALOG_URL", "http://localhost:4566/frontend/products.json")
	if cfg.OracleTimeout, err = getEnvDuration("ORACLE_TIMEOUT", "5s"); err != nil {
		return nil, err
	}

	cfg.SMTPHost = getEnvOrDefault("SMTP_HOST", "")
	if cfg.SMTPPort, err = getEnvInt("SMTP_PORT", 587); err != nil {
		return nil, err
	}
	cfg.SMTPUser = getEnvOrDefault("SMTP_USER", "")
	cfg.SMTPPassword = getEnvOrDefault("SMTP_PASSWORD", "")
	cfg.MailFrom = getEnvOrDefault("MAIL_FROM", "no-reply@projetsiteecommerce.local")

	cfg.ArtifactDir = getEnvOrDefault("ARTIFACT_DIR", "./data/artifacts")
	cfg.MigrationsPath = getEnvOrDefault("MIGRATIONS_PATH", "file://migrations")
	cfg.MetricsAddr = getEnvOrDefault("METRICS_ADDR", ":8090")
	if cfg.GatewayPort, err = getEnvInt("GATEWAY_PORT", 8080); err != nil {
		return nil, err
	}

	if cfg.RelayPollInterval, err = getEnvDuration("RELAY_POLL_INTERVAL", "5s"); err != nil {
		return nil, err
	}
	if cfg.RelayBatchLimit, err = getEnvInt("RELAY_BATCH_LIMIT", 100); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getEnvDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnvOrDefault(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func (c *Config) GetDBConnectionString() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetDBMigrationConnectionString() string {
	return fmt.Sprintf("%s:%s@%s:%s/%s?sslmode=%s",
		c.DBConfig.DBUser, c.DBConfig.DBPassword, c.DBConfig.DBHost, c.DBConfig.DBPort, c.DBConfig.DBName, c.DBConfig.DBSSLMode)
}

func (c *Config) GetKafkaBrokers() []string {
	return []string{c.KafkaURL}
}
