package permissions

import (
	_ "embed"
	"courtbook/shared/constant"
	"encoding/json"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var knownRoles = []string{constant.RoleUser, constant.RoleAdmin, constant.RoleSuperAdmin}

var knownMethods = []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodPut, http.MethodDelete}

// Permission lists the roles allowed on one route pattern. Skip marks public routes.
type Permission struct {
	Permissions []string `json:"permissions"`
	Path        string   `json:"path"`
	Method      string   `json:"method"`
	Skip        bool     `json:"skip"`
}

// Allows reports whether role may call the route. A route without roles is open
// to any authenticated caller.
func (p Permission) Allows(role string) bool {
	return p.Skip || len(p.Permissions) == 0 || slices.Contains(p.Permissions, role)
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	once  sync.Once
	index map[string]Permission
}

func routeKey(method, path string) string {
	return method + " " + path
}

// FindPermissions looks a chi route pattern up. Unknown routes yield the zero Permission.
func (r *PermissionData) FindPermissions(path, method string) Permission {
	r.once.Do(func() {
		r.index = make(map[string]Permission, len(r.Endpoints))
		for _, endpoint := range r.Endpoints {
			r.index[routeKey(endpoint.Method, endpoint.Path)] = endpoint
		}
	})

	return r.index[routeKey(method, path)]
}

// Validate rejects tables with unknown roles or methods and duplicated routes.
func (r *PermissionData) Validate() error {
	seen := make(map[string]struct{}, len(r.Endpoints))

	for _, endpoint := range r.Endpoints {
		if !strings.HasPrefix(endpoint.Path, "/") {
			return fmt.Errorf("path %q must start with a slash", endpoint.Path)
		}

		if !slices.Contains(knownMethods, endpoint.Method) {
			return fmt.Errorf("unsupported method %q on %s", endpoint.Method, endpoint.Path)
		}

		key := routeKey(endpoint.Method, endpoint.Path)
		if _, ok := seen[key]; ok {
			return fmt.Errorf("duplicate route %s", key)
		}

		seen[key] = struct{}{}

		for _, role := range endpoint.Permissions {
			if !slices.Contains(knownRoles, role) {
				return fmt.Errorf("unknown role %q on %s", role, key)
			}
		}
	}

	return nil
}

// Parse decodes and validates a permission table.
func Parse(raw []byte) (*PermissionData, error) {
	var data PermissionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("decode permissions: %w", err)
	}

	if err := data.Validate(); err != nil {
		return nil, err
	}

	return &data, nil
}

// Get returns the embedded table, or nil when it is broken so that RBAC denies everything.
func Get() *PermissionData {
	data, err := Parse(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Successfully loaded embedded permissions")

	return data
}
