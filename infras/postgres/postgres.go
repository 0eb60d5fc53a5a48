package postgres

//nolint:revive
import (
	"courtbook/config"
	"net"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	postgresMaxIdleConnection = 10
	postgresMaxOpenConnection = 10
	postgresConnMaxLifetime   = 30 * time.Minute
)

// Connection splits reads from writes. Booking decisions read and write through Write so
// they never observe replica lag.
type Connection struct {
	Read  *sqlx.DB
	Write *sqlx.DB
}

// Endpoint describes one postgres server.
type Endpoint struct {
	Name     string
	Username string
	Password string
	Host     string
	Port     string
	DBName   string
	SSLMode  string
	Timezone string
	// Options are extra query parameters, e.g. for the migration driver.
	Options map[string]string
}

func New(cfg *config.Config) *Connection {
	pg := cfg.DB.Postgres

	return &Connection{
		Read:  CreatePostgresConnection(EndpointFrom("read", pg.Prefix, pg.Read), pg.MaxRetry, pg.RetryWaitTime),
		Write: CreatePostgresConnection(EndpointFrom("write", pg.Prefix, pg.Write), pg.MaxRetry, pg.RetryWaitTime),
	}
}

// EndpointFrom names a configured endpoint. A non-empty prefix is prepended to the
// database name, which keeps test databases apart from the real one.
func EndpointFrom(name, prefix string, cfg config.PostgresEndpoint) Endpoint {
	return Endpoint{
		Name:     name,
		Username: cfg.Username,
		Password: cfg.Password,
		Host:     cfg.Host,
		Port:     cfg.Port,
		DBName:   prefix + cfg.Name,
		SSLMode:  cfg.SSLMode,
		Timezone: cfg.Timezone,
	}
}

// DSN renders the endpoint as a lib/pq connection URL.
func (e Endpoint) DSN() string {
	query := url.Values{}
	query.Set("sslmode", e.SSLMode)

	if e.Timezone != "" {
		query.Set("timezone", e.Timezone)
	}

	for key, value := range e.Options {
		query.Set(key, value)
	}

	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(e.Username, e.Password),
		Host:     net.JoinHostPort(e.Host, e.Port),
		Path:     e.DBName,
		RawQuery: query.Encode(),
	}

	return dsn.String()
}

// CreatePostgresConnection retries the connection maxRetry times and stops the process
// when the database stays unreachable.
func CreatePostgresConnection(endpoint Endpoint, maxRetry, waitTime int) *sqlx.DB {
	logger := log.With().
		Str("name", endpoint.Name).
		Str("host", endpoint.Host).
		Str("port", endpoint.Port).
		Str("dbName", endpoint.DBName).
		Logger()

	var lastErr error

	for retry := range max(maxRetry, 1) {
		sqlDB, err := sqlx.Connect("postgres", endpoint.DSN())
		if err == nil {
			logger.Info().Msg("Connected to database")

			sqlDB.SetMaxIdleConns(postgresMaxIdleConnection)
			sqlDB.SetMaxOpenConns(postgresMaxOpenConnection)
			sqlDB.SetConnMaxLifetime(postgresConnMaxLifetime)

			return sqlDB
		}

		lastErr = err

		logger.Error().Err(err).Int("attempt", retry+1).Msg("Failed connecting to database, retrying")

		time.Sleep(time.Duration(waitTime) * time.Second)
	}

	logger.Fatal().Err(lastErr).Msg("Database unreachable")

	return nil
}
