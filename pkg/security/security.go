// Package security resolves which configured authenticator applies to an
// operation's declared security requirements.
package security

import (
	"net/http"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
)

// Authenticator authenticates a request and returns the auth context that is
// attached to the request before schema validation runs. An error rejects the
// request.
type Authenticator func(r *http.Request) (interface{}, error)

// Registry maps scheme name to the authenticator configured for it. It is
// populated before startup and read only afterwards.
type Registry map[string]Authenticator

// Resolve picks the single authenticator for an operation. Only the first
// declared requirement is consulted; its scheme names are checked in sorted
// order and the first one present in the registry wins. Later alternatives are
// never consulted, so a document relying on a fallback requirement gets no
// authenticator rather than a silently different one.
//
// Returns ok=false when the operation declares no security or the first
// requirement has no configured scheme.
func Resolve(reqs *openapi3.SecurityRequirements, reg Registry) (scheme string, auth Authenticator, ok bool) {
	if reqs == nil || len(*reqs) == 0 || len(reg) == 0 {
		return "", nil, false
	}

	first := (*reqs)[0]
	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if a, found := reg[name]; found {
			return name, a, true
		}
	}
	return "", nil, false
}
