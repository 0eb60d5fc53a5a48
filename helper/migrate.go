package helper

//nolint:revive
import (
	"courtbook/config"
	"courtbook/infras/postgres"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/rs/zerolog/log"
)

const migrationSource = "file://migrations/postgres"

type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStepUp Direction = "step-up"
	DirectionDrop   Direction = "drop"
)

// connectionString targets the write database; migrations never run against a replica.
func connectionString(cfg *config.Config) string {
	pg := cfg.DB.Postgres
	endpoint := postgres.EndpointFrom("migrate", pg.Prefix, pg.Write)

	if pg.MigrationTable != "" {
		endpoint.Options = map[string]string{"x-migrations-table": pg.MigrationTable}
	}

	return endpoint.DSN()
}

func Runner(config *config.Config, direction Direction) error {
	mig, err := migrate.New(migrationSource, connectionString(config))
	if err != nil {
		return fmt.Errorf("error creating migrate instance: %w", err)
	}

	defer mig.Close()

	switch direction {
	case DirectionUp:
		err = mig.Up()
	case DirectionDown:
		err = mig.Steps(-1)
	case DirectionStepUp:
		err = mig.Steps(1)
	case DirectionDrop:
		err = mig.Down()
	default:
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("error running %s migrations: %w", direction, err)
	}

	version, dirty, err := mig.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return fmt.Errorf("error reading migration version: %w", err)
	}

	log.Info().
		Str("direction", string(direction)).
		Uint("version", version).
		Bool("dirty", dirty).
		Msg("Database migrations completed successfully")

	return nil
}

// ParseDirection accepts the command line spelling of a direction.
func ParseDirection(raw string) (Direction, error) {
	switch direction := Direction(raw); direction {
	case DirectionUp, DirectionDown, DirectionStepUp, DirectionDrop:
		return direction, nil
	default:
		return "", fmt.Errorf("unknown migration direction %q, want up, down, step-up or drop", raw)
	}
}

// Up applies every pending migration. The app runs it on boot when auto migration is on.
func Up(config *config.Config) error {
	return Runner(config, DirectionUp)
}
