package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection, etc.), security settings
// - default: Values common across all environments (timezone, timeout, etc.), standard settings
// -----------------------------------------------------------------------------

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	DB      DBConfig
	CORS    CORSConfig
	Log     LogConfig
	JWT     JWTConfig
	Booking BookingConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

const (
	StorageDriverPostgres = "postgres"
	StorageDriverMemory   = "memory"
)

type StorageConfig struct {
	Driver string `envconfig:"STORAGE_DRIVER" default:"postgres"`
	// SeedFile is a YAML file of users and properties loaded by the memory driver.
	SeedFile string `envconfig:"STORAGE_SEED_FILE"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	DBName   string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	TimeZone string `envconfig:"DB_TIMEZONE" default:"UTC"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"10"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level          string `envconfig:"LOG_LEVEL" default:"info"`
	TimeZone       string `envconfig:"LOG_TIMEZONE" default:"Asia/Tokyo"`
	TimeFormat     string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
	TimeZoneOffset int    `envconfig:"LOG_TIMEZONE_OFFSET" default:"32400"` // 9*60*60
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// BookingConfig holds the platform-wide booking and payout policy.
type BookingConfig struct {
	MinStayWeeks           int           `envconfig:"BOOKING_MIN_STAY_WEEKS" default:"2"`
	GuestServiceFeePercent int64         `envconfig:"BOOKING_GUEST_SERVICE_FEE_PERCENT" default:"10"`
	PlatformFeePercent     int64         `envconfig:"BOOKING_PLATFORM_FEE_PERCENT" default:"10"`
	PayoutDelay            time.Duration `envconfig:"BOOKING_PAYOUT_DELAY" default:"168h"`
	CompletionGraceDays    int           `envconfig:"BOOKING_COMPLETION_GRACE_DAYS" default:"1"`
}

func (c BookingConfig) Validate() error {
	switch {
	case c.MinStayWeeks < 0:
		return fmt.Errorf("BOOKING_MIN_STAY_WEEKS must not be negative: %d", c.MinStayWeeks)
	case c.GuestServiceFeePercent < 0 || c.GuestServiceFeePercent > 100:
		return fmt.Errorf("BOOKING_GUEST_SERVICE_FEE_PERCENT must be within 0..100: %d", c.GuestServiceFeePercent)
	case c.PlatformFeePercent < 0 || c.PlatformFeePercent > 100:
		return fmt.Errorf("BOOKING_PLATFORM_FEE_PERCENT must be within 0..100: %d", c.PlatformFeePercent)
	case c.PayoutDelay < 0:
		return fmt.Errorf("BOOKING_PAYOUT_DELAY must not be negative: %s", c.PayoutDelay)
	case c.CompletionGraceDays < 0:
		return fmt.Errorf("BOOKING_COMPLETION_GRACE_DAYS must not be negative: %d", c.CompletionGraceDays)
	}
	return nil
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s&timezone=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode, c.TimeZone,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	switch cfg.Storage.Driver {
	case StorageDriverPostgres:
		// required only when Postgres is the store
		if cfg.DB.User == "" || cfg.DB.Password == "" || cfg.DB.DBName == "" {
			return Config{}, fmt.Errorf("DB_USER, DB_PASSWORD and DB_NAME are required for STORAGE_DRIVER=postgres")
		}
	case StorageDriverMemory:
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Storage.Driver)
	}
	if err := cfg.Booking.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889", // Test port
		},
		Storage: StorageConfig{Driver: StorageDriverMemory},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433", // Test DB port
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			TimeZone: "UTC",
			MaxConns: 4,
		},
		CORS: CORSConfig{
			AllowOrigins: []string{"http://localhost:3000"},
			AllowMethods: []string{"GET", "POST", "OPTIONS"},
			AllowHeaders: []string{"Origin", "Content-Type", "Accept", "Authorization"},
			MaxAge:       time.Hour,
		},
		Log: LogConfig{
			Level:          "error", // Error level only for tests
			TimeZone:       "Asia/Tokyo",
			TimeFormat:     "2006-01-02 15:04:05.000",
			TimeZoneOffset: 32400,
		},
		JWT: JWTConfig{Secret: "test-secret", Duration: time.Hour},
		Booking: BookingConfig{
			MinStayWeeks:           2,
			GuestServiceFeePercent: 10,
			PlatformFeePercent:     10,
			PayoutDelay:            7 * 24 * time.Hour,
			CompletionGraceDays:    1,
		},
	}
}
