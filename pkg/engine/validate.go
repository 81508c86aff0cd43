package engine

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/julienschmidt/httprouter"
	"github.com/specbind/specbind/pkg/schema"
)

// ValidationError is a request that failed the schema attached to its route.
// It is always reported to the caller as HTTP 400, whatever the underlying
// validator's own classification.
type ValidationError struct {
	Location string // query, path or body
	Name     string // parameter name, empty for body
	Err      error
}

func (e *ValidationError) Error() string {
	if e.Name != "" {
		return fmt.Sprintf("%s parameter %q: %s", e.Location, e.Name, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Location, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// validateRequest checks the request against the route's derived schema and
// returns the decoded JSON body when a body schema is declared. Parameter
// names are visited in sorted order so the first reported defect is stable.
func validateRequest(d *schema.Derived, r *http.Request, ps httprouter.Params) (interface{}, error) {
	if d == nil {
		return nil, nil
	}

	if len(d.Query) > 0 {
		values := r.URL.Query()
		for _, name := range sortedKeys(d.Query) {
			raw, present := values[name]
			if !present || len(raw) == 0 {
				continue
			}
			v, err := coerce(raw[0], d.Query[name])
			if err != nil {
				return nil, &ValidationError{Location: "query", Name: name, Err: err}
			}
			if err := d.Query[name].VisitJSON(v); err != nil {
				return nil, &ValidationError{Location: "query", Name: name, Err: err}
			}
		}
	}

	if d.Params != nil {
		obj := make(map[string]interface{}, len(d.Params.Properties))
		for name, ref := range d.Params.Properties {
			var sch *openapi3.Schema
			if ref != nil {
				sch = ref.Value
			}
			v, err := coerce(ps.ByName(name), sch)
			if err != nil {
				return nil, &ValidationError{Location: "path", Name: name, Err: err}
			}
			obj[name] = v
		}
		if err := d.Params.VisitJSON(obj); err != nil {
			return nil, &ValidationError{Location: "path", Err: err}
		}
	}

	var payload interface{}
	if d.Body != nil {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			return nil, &ValidationError{Location: "body", Err: err}
		}
		if len(raw) == 0 {
			return nil, &ValidationError{Location: "body", Err: fmt.Errorf("request body is required")}
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return nil, &ValidationError{Location: "body", Err: err}
		}
		if err := d.Body.VisitJSON(payload); err != nil {
			return nil, &ValidationError{Location: "body", Err: err}
		}
	}

	return payload, nil
}

// coerce converts a raw path or query string into the JSON value kind its
// schema declares so kin-openapi validates the value, not its string form.
func coerce(raw string, sch *openapi3.Schema) (interface{}, error) {
	if sch == nil {
		return raw, nil
	}
	switch sch.Type {
	case openapi3.TypeInteger, openapi3.TypeNumber:
		f, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid %s", raw, sch.Type)
		}
		return f, nil
	case openapi3.TypeBoolean:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a valid boolean", raw)
		}
		return b, nil
	default:
		return raw, nil
	}
}

func sortedKeys(m map[string]*openapi3.Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
