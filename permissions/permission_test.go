package permissions_test

import (
	"courtbook/permissions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	assert.True(t, data.FindPermissions("/health", "GET").Skip)
	assert.Equal(t, []string{"admin", "superadmin"}, data.FindPermissions("/v1/blocks/", "POST").Permissions)
	assert.Contains(t, data.FindPermissions("/v1/reservations/{id}", "DELETE").Permissions, "user")
	assert.Empty(t, data.FindPermissions("/v1/unknown", "GET").Permissions)
}

func TestPermission_Allows(t *testing.T) {
	data := permissions.Get()
	require.NotNil(t, data)

	apply := data.FindPermissions("/v1/blocks/{id}/apply", "POST")
	assert.False(t, apply.Allows("user"))
	assert.True(t, apply.Allows("admin"))

	mine := data.FindPermissions("/v1/reservations/mine", "GET")
	assert.True(t, mine.Allows("user"))

	assert.True(t, data.FindPermissions("/metrics", "GET").Allows(""))
	assert.False(t, data.FindPermissions("/v1/reservations/", "GET").Allows("user"))
}

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		wantErr string
	}{
		{
			name: "valid",
			raw:  `{"endpoints":[{"path":"/v1/blocks/","method":"GET","permissions":["user"]}]}`,
		},
		{
			name:    "malformed json",
			raw:     `{"endpoints":`,
			wantErr: "decode permissions",
		},
		{
			name:    "unknown role",
			raw:     `{"endpoints":[{"path":"/v1/blocks/","method":"GET","permissions":["coach"]}]}`,
			wantErr: `unknown role "coach"`,
		},
		{
			name:    "unknown method",
			raw:     `{"endpoints":[{"path":"/v1/blocks/","method":"FETCH"}]}`,
			wantErr: "unsupported method",
		},
		{
			name:    "relative path",
			raw:     `{"endpoints":[{"path":"v1/blocks/","method":"GET"}]}`,
			wantErr: "must start with a slash",
		},
		{
			name: "duplicate route",
			raw: `{"endpoints":[
				{"path":"/v1/blocks/","method":"GET"},
				{"path":"/v1/blocks/","method":"GET","permissions":["admin"]}
			]}`,
			wantErr: "duplicate route GET /v1/blocks/",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := permissions.Parse([]byte(tt.raw))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				assert.Nil(t, data)

				return
			}

			require.NoError(t, err)
			assert.Len(t, data.Endpoints, 1)
		})
	}
}
