package global

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	SourceHTTP  = "http"
	SourceMongo = "mongo"
)

// Config holds runtime configuration for the assistant.
type Config struct {
	AppEnv      string   `envconfig:"APP_ENV" default:"development"`
	Port        string   `envconfig:"PORT" default:"8000"`
	LogFormat   string   `envconfig:"LOG_FORMAT" default:"text"`
	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000,http://localhost:5173"`
	APIKeyHash  string   `envconfig:"API_KEY_HASH"`

	SourceKind       string        `envconfig:"SOURCE_KIND" default:"http"`
	InventoryURL     string        `envconfig:"INVENTORY_URL" default:"http://10.123.79.112:1026/u/home/json/pmai006"`
	OrdersURL        string        `envconfig:"ORDERS_URL" default:"http://10.123.79.112:1026/u/home/json/pmai009"`
	CouponsURL       string        `envconfig:"COUPONS_URL" default:"http://10.123.79.112:1026/u/home/json/pmai016"`
	UpstreamTimeout  time.Duration `envconfig:"UPSTREAM_TIMEOUT" default:"10s"`
	UpstreamInsecure bool          `envconfig:"UPSTREAM_INSECURE_TLS" default:"true"`

	MongoURI      string `envconfig:"MONGODB_URI"`
	MongoDatabase string `envconfig:"MONGODB_DATABASE" default:"retail_assistant"`

	RedisAddress      string        `envconfig:"REDIS_ADDRESS"`
	RedisPassword     string        `envconfig:"REDIS_PASSWORD"`
	EmbeddingCacheTTL time.Duration `envconfig:"EMBEDDING_CACHE_TTL" default:"24h"`

	OpenAIEndpoint       string `envconfig:"AZURE_OPENAI_ENDPOINT"`
	OpenAIAPIKey         string `envconfig:"AZURE_OPENAI_API_KEY"`
	OpenAIDeploymentName string `envconfig:"AZURE_OPENAI_DEPLOYMENT_NAME" default:"gpt-35-turbo"`
	EmbeddingModel       string `envconfig:"OPENAI_EMBEDDING_MODEL" default:"text-embedding-3-small"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints envconfig cannot express.
func (c *Config) Validate() error {
	switch c.SourceKind {
	case SourceHTTP:
		if c.InventoryURL == "" || c.OrdersURL == "" || c.CouponsURL == "" {
			return errors.New("http source requires INVENTORY_URL, ORDERS_URL and COUPONS_URL")
		}
	case SourceMongo:
		if c.MongoURI == "" {
			return errors.New("mongo source requires MONGODB_URI")
		}
	default:
		return fmt.Errorf("unknown SOURCE_KIND %q", c.SourceKind)
	}
	if c.UpstreamTimeout <= 0 {
		return errors.New("UPSTREAM_TIMEOUT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}

// AIEnabled reports whether OpenAI credentials were provided.
func (c *Config) AIEnabled() bool {
	return c.OpenAIEndpoint != "" && c.OpenAIAPIKey != ""
}
