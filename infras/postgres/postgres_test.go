package postgres_test

import (
	"courtbook/config"
	"courtbook/infras/postgres"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEndpoint_DSN(t *testing.T) {
	endpoint := postgres.Endpoint{
		Username: "court",
		Password: "secret",
		Host:     "db",
		Port:     "5432",
		DBName:   "courtbook",
		SSLMode:  "disable",
		Timezone: "Europe/Berlin",
	}

	assert.Equal(t, "postgres://court:secret@db:5432/courtbook?sslmode=disable&timezone=Europe%2FBerlin", endpoint.DSN())

	endpoint.Timezone = ""
	assert.Equal(t, "postgres://court:secret@db:5432/courtbook?sslmode=disable", endpoint.DSN())
}

func TestEndpointFrom(t *testing.T) {
	endpoint := postgres.EndpointFrom("read", "test_", config.PostgresEndpoint{
		Host:     "replica",
		Port:     "5433",
		Username: "reader",
		Password: "pw",
		Name:     "courtbook",
		SSLMode:  "require",
	})

	assert.Equal(t, "read", endpoint.Name)
	assert.Equal(t, "test_courtbook", endpoint.DBName)

	endpoint.Options = map[string]string{"application_name": "courtbook"}
	assert.Equal(t, "postgres://reader:pw@replica:5433/test_courtbook?application_name=courtbook&sslmode=require", endpoint.DSN())
}
