// Package config provides application configuration with multi-source priority.
//
// Sources (highest to lowest):
//  1. Environment variables
//  2. Config file (~/.tourism/config.yaml or ./config.yaml)
//  3. Default values
//
// Sensitive values (the Postgres password) are masked in MarshalJSON/String.
// The Gemini API key is read directly by the Genkit plugin from GEMINI_API_KEY;
// Validate only checks that it is present.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

var (
	// ErrMissingAPIKey indicates GEMINI_API_KEY is not set.
	ErrMissingAPIKey = errors.New("missing API key")

	// ErrInvalidModelName indicates an empty model name.
	ErrInvalidModelName = errors.New("invalid model name")

	// ErrInvalidEmbedderModel indicates an empty embedder model.
	ErrInvalidEmbedderModel = errors.New("invalid embedder model")

	// ErrInvalidMilvusHost indicates the Milvus host is empty.
	ErrInvalidMilvusHost = errors.New("invalid Milvus host")

	// ErrInvalidMilvusPort indicates the Milvus port is out of range.
	ErrInvalidMilvusPort = errors.New("invalid Milvus port")

	// ErrInvalidCollection indicates an empty collection name.
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrInvalidIndexParam indicates nlist/nprobe are out of range.
	ErrInvalidIndexParam = errors.New("invalid index parameter")

	// ErrInvalidPostgresHost indicates the PostgreSQL host is empty.
	ErrInvalidPostgresHost = errors.New("invalid PostgreSQL host")

	// ErrInvalidPostgresPort indicates the PostgreSQL port is out of range.
	ErrInvalidPostgresPort = errors.New("invalid PostgreSQL port")

	// ErrInvalidPostgresDBName indicates the PostgreSQL database name is empty.
	ErrInvalidPostgresDBName = errors.New("invalid PostgreSQL database name")
)

// Default model identifiers, matching the hosted Gemini API.
const (
	// DefaultGenerationModel is the text generation model.
	DefaultGenerationModel = "gemini-1.5-flash"

	// DefaultEmbedderModel is the embedding model. It produces 768-dimension
	// vectors, matching the collection schema.
	DefaultEmbedderModel = "embedding-001"
)

// Config stores application configuration.
type Config struct {
	// Gemini models
	ModelName     string `mapstructure:"model_name" json:"model_name"`
	EmbedderModel string `mapstructure:"embedder_model" json:"embedder_model"`

	// Milvus vector index
	MilvusHost   string `mapstructure:"milvus_host" json:"milvus_host"`
	MilvusPort   int    `mapstructure:"milvus_port" json:"milvus_port"`
	Collection   string `mapstructure:"collection" json:"collection"`
	IndexNList   int    `mapstructure:"index_nlist" json:"index_nlist"`
	SearchNProbe int    `mapstructure:"search_nprobe" json:"search_nprobe"`

	// HTTP server
	ServeAddr string `mapstructure:"serve_addr" json:"serve_addr"`

	// PostgreSQL relational source (ingestion only)
	PostgresHost     string `mapstructure:"postgres_host" json:"postgres_host"`
	PostgresPort     int    `mapstructure:"postgres_port" json:"postgres_port"`
	PostgresUser     string `mapstructure:"postgres_user" json:"postgres_user"`
	PostgresPassword string `mapstructure:"postgres_password" json:"postgres_password"` // SENSITIVE: masked in MarshalJSON
	PostgresDBName   string `mapstructure:"postgres_db_name" json:"postgres_db_name"`
	PostgresSSLMode  string `mapstructure:"postgres_ssl_mode" json:"postgres_ssl_mode"`
}

// Load loads configuration.
// Priority: environment variables > configuration file > default values.
func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("getting user home directory: %w", err)
	}

	configDir := filepath.Join(home, ".tourism")
	if err := os.MkdirAll(configDir, 0o750); err != nil {
		return nil, fmt.Errorf("creating config directory: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)
	viper.AddConfigPath(".")

	setDefaults()
	bindEnvVariables()

	if err := viper.ReadInConfig(); err != nil {
		// Missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		slog.Debug("configuration file not found, using defaults",
			"search_paths", []string{configDir, "."})
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration: %w", err)
	}

	// DATABASE_URL, when set, overrides the individual Postgres fields.
	if err := cfg.parseDatabaseURL(); err != nil {
		return nil, fmt.Errorf("parsing DATABASE_URL: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults() {
	viper.SetDefault("model_name", DefaultGenerationModel)
	viper.SetDefault("embedder_model", DefaultEmbedderModel)

	viper.SetDefault("milvus_host", "localhost")
	viper.SetDefault("milvus_port", 19530)
	viper.SetDefault("collection", "tourism_search")
	viper.SetDefault("index_nlist", 128)
	viper.SetDefault("search_nprobe", 10)

	viper.SetDefault("serve_addr", "0.0.0.0:8080")

	viper.SetDefault("postgres_host", "localhost")
	viper.SetDefault("postgres_port", 5432)
	viper.SetDefault("postgres_user", "tourism")
	viper.SetDefault("postgres_password", "tourism_dev_password")
	viper.SetDefault("postgres_db_name", "tourism")
	viper.SetDefault("postgres_ssl_mode", "disable")
}

// bindEnvVariables binds environment overrides explicitly.
// GEMINI_API_KEY is read directly by the Genkit Google AI plugin, not via
// Viper; Validate checks its presence.
func bindEnvVariables() {
	mustBind := func(key, envVar string) {
		if err := viper.BindEnv(key, envVar); err != nil {
			panic(fmt.Sprintf("BUG: failed to bind %q to %q: %v", key, envVar, err))
		}
	}

	mustBind("model_name", "TOURISM_MODEL_NAME")
	mustBind("embedder_model", "TOURISM_EMBEDDER_MODEL")
	mustBind("milvus_host", "MILVUS_HOST")
	mustBind("milvus_port", "MILVUS_PORT")
	mustBind("collection", "TOURISM_COLLECTION")
	mustBind("serve_addr", "TOURISM_SERVE_ADDR")
	mustBind("postgres_host", "DB_SERVER")
	mustBind("postgres_db_name", "DB_DATABASE")
	mustBind("postgres_user", "DB_USER")
	mustBind("postgres_password", "DB_PASSWORD")
}

// parseDatabaseURL applies DATABASE_URL on top of the individual fields.
func (c *Config) parseDatabaseURL() error {
	raw := os.Getenv("DATABASE_URL")
	if raw == "" {
		return nil
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}
	if u.Scheme != "postgres" && u.Scheme != "postgresql" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}

	if host := u.Hostname(); host != "" {
		c.PostgresHost = host
	}
	if port := u.Port(); port != "" {
		p, err := strconv.Atoi(port)
		if err != nil {
			return fmt.Errorf("invalid port %q: %w", port, err)
		}
		c.PostgresPort = p
	}
	if u.User != nil {
		c.PostgresUser = u.User.Username()
		if pw, ok := u.User.Password(); ok {
			c.PostgresPassword = pw
		}
	}
	if db := filepath.Base(u.Path); db != "" && db != "/" && db != "." {
		c.PostgresDBName = db
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		c.PostgresSSLMode = mode
	}
	return nil
}

// Validate checks the configuration, failing fast on the first problem.
func (c *Config) Validate() error {
	if os.Getenv("GEMINI_API_KEY") == "" {
		return fmt.Errorf("%w: GEMINI_API_KEY environment variable not set", ErrMissingAPIKey)
	}
	if c.ModelName == "" {
		return fmt.Errorf("%w: model_name is empty", ErrInvalidModelName)
	}
	if c.EmbedderModel == "" {
		return fmt.Errorf("%w: embedder_model is empty", ErrInvalidEmbedderModel)
	}
	if c.MilvusHost == "" {
		return fmt.Errorf("%w: milvus_host is empty", ErrInvalidMilvusHost)
	}
	if c.MilvusPort < 1 || c.MilvusPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidMilvusPort, c.MilvusPort)
	}
	if c.Collection == "" {
		return fmt.Errorf("%w: collection is empty", ErrInvalidCollection)
	}
	if c.IndexNList < 1 {
		return fmt.Errorf("%w: index_nlist=%d", ErrInvalidIndexParam, c.IndexNList)
	}
	if c.SearchNProbe < 1 || c.SearchNProbe > c.IndexNList {
		return fmt.Errorf("%w: search_nprobe=%d (index_nlist=%d)", ErrInvalidIndexParam, c.SearchNProbe, c.IndexNList)
	}
	return nil
}

// ValidateIngest additionally checks the relational source settings used by
// the sync and seed jobs.
func (c *Config) ValidateIngest() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.PostgresHost == "" {
		return fmt.Errorf("%w: postgres_host is empty", ErrInvalidPostgresHost)
	}
	if c.PostgresPort < 1 || c.PostgresPort > 65535 {
		return fmt.Errorf("%w: %d", ErrInvalidPostgresPort, c.PostgresPort)
	}
	if c.PostgresDBName == "" {
		return fmt.Errorf("%w: postgres_db_name is empty", ErrInvalidPostgresDBName)
	}
	return nil
}

// MilvusAddr returns the host:port address of the Milvus server.
func (c *Config) MilvusAddr() string {
	return net.JoinHostPort(c.MilvusHost, strconv.Itoa(c.MilvusPort))
}

// PostgresURL returns the postgres:// connection URL for the relational source.
func (c *Config) PostgresURL() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.PostgresUser, c.PostgresPassword),
		Host:     net.JoinHostPort(c.PostgresHost, strconv.Itoa(c.PostgresPort)),
		Path:     "/" + c.PostgresDBName,
		RawQuery: "sslmode=" + c.PostgresSSLMode,
	}
	return u.String()
}

// maskedValue replaces secrets in serialized output.
const maskedValue = "████████"

func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	return maskedValue
}

// MarshalJSON masks sensitive fields.
func (c Config) MarshalJSON() ([]byte, error) {
	type alias Config
	a := alias(c)
	a.PostgresPassword = maskSecret(a.PostgresPassword)
	data, err := json.Marshal(a)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// String implements Stringer to keep secrets out of logs.
func (c Config) String() string {
	data, err := c.MarshalJSON()
	if err != nil {
		return fmt.Sprintf("Config{error: %v}", err)
	}
	return string(data)
}
