package security

import (
	"net/http"
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func noopAuth(r *http.Request) (interface{}, error) { return "ok", nil }

func reqs(alternatives ...openapi3.SecurityRequirement) *openapi3.SecurityRequirements {
	s := openapi3.SecurityRequirements(alternatives)
	return &s
}

func TestResolve(t *testing.T) {
	reg := Registry{"api_key": noopAuth, "oauth": noopAuth}

	tests := []struct {
		name       string
		reqs       *openapi3.SecurityRequirements
		wantScheme string
		wantOK     bool
	}{
		{
			"first alternative matches",
			reqs(openapi3.SecurityRequirement{"api_key": {}}, openapi3.SecurityRequirement{"basic": {}}),
			"api_key", true,
		},
		{
			"first misses, second configured, still none",
			reqs(openapi3.SecurityRequirement{"basic": {}}, openapi3.SecurityRequirement{"api_key": {}}),
			"", false,
		},
		{
			"no security declared",
			nil,
			"", false,
		},
		{
			"empty requirements",
			reqs(),
			"", false,
		},
		{
			"no intersection at all",
			reqs(openapi3.SecurityRequirement{"basic": {}}),
			"", false,
		},
		{
			"multiple schemes in first requirement, sorted order wins",
			reqs(openapi3.SecurityRequirement{"oauth": {}, "api_key": {}}),
			"api_key", true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheme, auth, ok := Resolve(tt.reqs, reg)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantScheme, scheme)
			if tt.wantOK {
				require.NotNil(t, auth)
			} else {
				assert.Nil(t, auth)
			}
		})
	}
}

func TestResolveEmptyRegistry(t *testing.T) {
	_, _, ok := Resolve(reqs(openapi3.SecurityRequirement{"api_key": {}}), nil)
	assert.False(t, ok)
}
