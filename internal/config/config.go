package config

import (
	"fmt"  // For DSN formatting
	"time" // For durations

	"github.com/joho/godotenv"             // For loading .env files
	"github.com/kelseyhightower/envconfig" // For decoding environment variables
)

// Config holds the application configuration
type Config struct {
	AppPort    string `envconfig:"APP_PORT" default:"8080"`         // Application port
	DBDriver   string `envconfig:"DB_DRIVER" default:"mysql"`       // Database driver: mysql or sqlite
	DBUser     string `envconfig:"DB_USER"`                         // Database user
	DBPassword string `envconfig:"DB_PASSWORD"`                     // Database password
	DBHost     string `envconfig:"DB_HOST" default:"127.0.0.1"`     // Database host
	DBPort     string `envconfig:"DB_PORT" default:"3306"`          // Database port
	DBName     string `envconfig:"DB_NAME" default:"storefront"`    // Database name
	DBPath     string `envconfig:"DB_PATH" default:"storefront.db"` // SQLite file path

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"` // JWT secret key
	JWTTTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`      // Session token lifetime

	RedisAddr string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"` // Redis server address
	RedisPass string        `envconfig:"REDIS_PASS"`                          // Redis password
	RedisDB   int           `envconfig:"REDIS_DB"`                            // Redis database number
	CacheTTL  time.Duration `envconfig:"CACHE_TTL" default:"60s"`             // Read cache lifetime

	IsProd   bool   `envconfig:"IS_PROD"`                  // Is production environment
	LogLevel string `envconfig:"LOG_LEVEL" default:"info"` // Logrus level

	AdminUsername string  `envconfig:"ADMIN_USERNAME" default:"admin"`         // Reserved administrator name
	AdminPassword string  `envconfig:"ADMIN_PASSWORD" default:"change-me-now"` // Seed password for the administrator
	AdminWallet   float64 `envconfig:"ADMIN_WALLET" default:"999999999"`       // Seed balance for the administrator

	PurchaseRate   float64 `envconfig:"PURCHASE_RATE" default:"2"`          // Purchases per second per user
	PurchaseBurst  int     `envconfig:"PURCHASE_BURST" default:"4"`         // Purchase burst per user
	MaxUploadBytes int64   `envconfig:"MAX_UPLOAD_BYTES" default:"2097152"` // Largest accepted image upload
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // Load .env file if present
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err // Missing required or malformed variable
	}
	return &cfg, nil
}

// MySQLDSN builds the Data Source Name for the MySQL driver
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true&charset=utf8mb4", c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}
