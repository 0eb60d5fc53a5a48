package config

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Server struct {
		Env      string `envconfig:"ENV"`
		LogLevel string `envconfig:"LOG_LEVEL"`
		Port     string `envconfig:"PORT"`
		Host     string `envconfig:"HOST"`
		Shutdown struct {
			CleanupPeriodSeconds int64 `envconfig:"CLEANUP_PERIOD_SECONDS"`
			GracePeriodSeconds   int64 `envconfig:"GRACE_PERIOD_SECONDS"`
		} `envconfig:"SHUTDOWN"`
	} `envconfig:"SERVER"`

	App struct {
		Name     string `envconfig:"APP_NAME"`
		Timezone string `envconfig:"TIMEZONE"`
		CORS     struct {
			AllowCredentials bool     `envconfig:"ALLOW_CREDENTIALS"`
			AllowedHeaders   []string `envconfig:"ALLOWED_HEADERS"`
			AllowedMethods   []string `envconfig:"ALLOWED_METHODS"`
			AllowedOrigins   []string `envconfig:"ALLOWED_ORIGINS"`
			Enable           bool     `envconfig:"ENABLE"`
			MaxAgeSeconds    int      `envconfig:"MAX_AGE_SECONDS"`
		} `envconfig:"CORS"`
		RateLimiter struct {
			Enable        bool `envconfig:"ENABLE"`
			MaxRequests   int  `envconfig:"MAX_REQUESTS"`
			WindowSeconds int  `envconfig:"WINDOW_SECONDS"`
		} `envconfig:"RATE_LIMITER"`
		APIKey string `envconfig:"API_KEY"`
	} `envconfig:"APP"`

	Booking struct {
		CourtCount                int `envconfig:"COURT_COUNT"                 default:"6"`
		FirstSlotHour             int `envconfig:"FIRST_SLOT_HOUR"             default:"6"`
		LastSlotHour              int `envconfig:"LAST_SLOT_HOUR"              default:"21"`
		RegularLimit              int `envconfig:"REGULAR_LIMIT"               default:"2"`
		ShortNoticeLimit          int `envconfig:"SHORT_NOTICE_LIMIT"          default:"1"`
		ShortNoticeMinutes        int `envconfig:"SHORT_NOTICE_MINUTES"        default:"15"`
		CancellationWindowMinutes int `envconfig:"CANCELLATION_WINDOW_MINUTES" default:"15"`
	} `envconfig:"BOOKING"`

	Cache struct {
		Redis struct {
			Primary struct {
				Host     string `envconfig:"HOST"`
				Port     string `envconfig:"PORT"`
				Password string `envconfig:"PASSWORD"`
				DB       int    `envconfig:"DB"`
				PoolSize int    `envconfig:"POOL_SIZE"       default:"10"`
				Timeout  int    `envconfig:"TIMEOUT_SECONDS" default:"3"`
			} `envconfig:"PRIMARY"`
		} `envconfig:"REDIS"`
		TTL int `envconfig:"TTL" default:"300"`
	} `envconfig:"CACHE"`

	// JWT verifies access tokens minted by the club's identity service.
	JWT struct {
		AccessSecret    string `envconfig:"ACCESS_SECRET"`
		AccessExpireMin int    `envconfig:"ACCESS_EXPIRE_MIN" default:"60"`
		Issuer          string `envconfig:"ISSUER"`
		LeewaySeconds   int    `envconfig:"LEEWAY_SECONDS"    default:"30"`
	} `envconfig:"JWT"`

	DB struct {
		Postgres struct {
			MaxRetry       int              `envconfig:"MAX_RETRY"        default:"5"`
			RetryWaitTime  int              `envconfig:"RETRY_WAIT_TIME"  default:"2"`
			TxMaxRetry     int              `envconfig:"TX_MAX_RETRY"     default:"3"`
			MigrationTable string           `envconfig:"MIGRATION_TABLE"  default:"schema_migrations"`
			AutoMigrate    bool             `envconfig:"AUTO_MIGRATE"`
			Prefix         string           `envconfig:"PREFIX"`
			Read           PostgresEndpoint `envconfig:"READ"`
			Write          PostgresEndpoint `envconfig:"WRITE"`
		} `envconfig:"POSTGRES"`
	} `envconfig:"DB"`

	Notification struct {
		// Driver selects the event publisher: kafka, amqp or log.
		Driver   string `envconfig:"DRIVER"   default:"log"`
		Topic    string `envconfig:"TOPIC"    default:"reservation-events"`
		Exchange string `envconfig:"EXCHANGE" default:"reservation.events"`
	} `envconfig:"NOTIFICATION"`

	Kafka struct {
		Brokers []string `envconfig:"BROKERS"`
		SASL    struct {
			Username string `envconfig:"USERNAME"`
			Password string `envconfig:"PASSWORD"`
		} `envconfig:"SASL"`
	} `envconfig:"KAFKA"`

	AMQP struct {
		URL string `envconfig:"URL"`
	} `envconfig:"AMQP"`

	External struct {
		Otel struct {
			Endpoint    string  `envconfig:"ENDPOINT"`
			SampleRatio float64 `envconfig:"SAMPLE_RATIO" default:"1"`
		} `envconfig:"OTEL"`
	}
}

// PostgresEndpoint addresses one side of the read/write split.
type PostgresEndpoint struct {
	Host     string `envconfig:"HOST"`
	Port     string `envconfig:"PORT"`
	Username string `envconfig:"USER"`
	Password string `envconfig:"PASSWORD"`
	Name     string `envconfig:"NAME"`
	Timezone string `envconfig:"TIMEZONE"`
	SSLMode  string `envconfig:"SSL_MODE"`
}

var notificationDrivers = []string{"kafka", "amqp", "log"}

// Validate rejects settings the booking rules cannot work with.
func (c *Config) Validate() error {
	b := c.Booking

	var errs []error

	if b.CourtCount < 1 {
		errs = append(errs, fmt.Errorf("BOOKING_COURT_COUNT must be positive, got %d", b.CourtCount))
	}

	if b.FirstSlotHour < 0 || b.LastSlotHour > 23 || b.FirstSlotHour > b.LastSlotHour {
		errs = append(errs, fmt.Errorf("slot hours must satisfy 0 <= first <= last <= 23, got %d..%d", b.FirstSlotHour, b.LastSlotHour))
	}

	if b.RegularLimit < 0 || b.ShortNoticeLimit < 0 {
		errs = append(errs, errors.New("reservation limits must not be negative"))
	}

	if b.ShortNoticeMinutes < 0 || b.CancellationWindowMinutes < 0 {
		errs = append(errs, errors.New("booking windows must not be negative"))
	}

	if !slices.Contains(notificationDrivers, c.Notification.Driver) {
		errs = append(errs, fmt.Errorf("NOTIFICATION_DRIVER must be one of %v, got %q", notificationDrivers, c.Notification.Driver))
	}

	return errors.Join(errs...)
}

var (
	conf Config
	once sync.Once
)

// Load reads the environment, after merging a .env file when one exists, and validates it.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("No .env file loaded, using the process environment")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Get loads the configuration once and stops the process when it is unusable.
func Get() *Config {
	once.Do(func() {
		cfg, err := Load()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize configuration")
		}

		conf = *cfg

		log.Info().Msg("Service configuration initialized successfully")
	})

	return &conf
}
