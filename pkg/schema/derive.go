package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

const (
	ContentTypeJSON      = "application/json"
	ContentTypeMultipart = "multipart/form-data"
)

// Derived is the per operation validation schema split by input location.
// Every part is independently optional; a nil part means the operation
// declares nothing for that location.
type Derived struct {
	// Query maps parameter name to its value schema
	Query map[string]*openapi3.Schema

	// Params is a JSON schema object (type: object) whose properties are the
	// declared path parameters
	Params *openapi3.Schema

	// Body is the schema of the JSON request body
	Body *openapi3.Schema

	// Response maps status code to the JSON response schema
	Response map[string]*openapi3.Schema

	// Multipart holds the multipart body schema until the upload field is
	// extracted. It must never reach the engine's validator.
	Multipart *openapi3.Schema
}

// InvalidMultipartSchemaError indicates a multipart request body that cannot
// be bound to the single file upload middleware. This is a defect in the
// source document and fails startup.
type InvalidMultipartSchemaError struct {
	Properties []string
	Reason     string
}

func (e *InvalidMultipartSchemaError) Error() string {
	return fmt.Sprintf("invalid multipart schema: %s (properties: [%s])", e.Reason, strings.Join(e.Properties, ", "))
}

// Derive maps one operation's parameters, request body and responses into a
// Derived schema. Partial or missing fields are tolerated; only declared
// pieces contribute.
func Derive(op *openapi3.Operation) *Derived {
	d := &Derived{}

	for _, pref := range op.Parameters {
		p := pref.Value
		if p == nil || p.Schema == nil || p.Schema.Value == nil {
			continue
		}
		switch p.In {
		case openapi3.ParameterInQuery:
			if d.Query == nil {
				d.Query = make(map[string]*openapi3.Schema)
			}
			d.Query[p.Name] = p.Schema.Value
		case openapi3.ParameterInPath:
			if d.Params == nil {
				d.Params = &openapi3.Schema{
					Type:       openapi3.TypeObject,
					Properties: make(openapi3.Schemas),
				}
			}
			d.Params.Properties[p.Name] = p.Schema
		}
	}

	if op.RequestBody != nil && op.RequestBody.Value != nil {
		content := op.RequestBody.Value.Content
		if mt := content.Get(ContentTypeJSON); mt != nil && mt.Schema != nil {
			d.Body = mt.Schema.Value
		}
		if mt := content.Get(ContentTypeMultipart); mt != nil && mt.Schema != nil {
			d.Multipart = mt.Schema.Value
		}
	}

	for code, rref := range op.Responses {
		if rref == nil || rref.Value == nil {
			continue
		}
		mt := rref.Value.Content.Get(ContentTypeJSON)
		if mt == nil || mt.Schema == nil || mt.Schema.Value == nil {
			continue
		}
		if d.Response == nil {
			d.Response = make(map[string]*openapi3.Schema)
		}
		d.Response[code] = mt.Schema.Value
	}

	return d
}

// ExtractUploadField pulls the upload field name out of the multipart schema
// and removes the multipart entry so the engine's validator never sees it.
// Returns "" when the operation has no multipart body. A multipart schema with
// zero or more than one property, or whose property carries no type, is an
// *InvalidMultipartSchemaError.
func (d *Derived) ExtractUploadField() (string, error) {
	if d.Multipart == nil {
		return "", nil
	}

	names := make([]string, 0, len(d.Multipart.Properties))
	for k := range d.Multipart.Properties {
		names = append(names, k)
	}
	sort.Strings(names)

	if len(names) != 1 {
		return "", &InvalidMultipartSchemaError{
			Properties: names,
			Reason:     fmt.Sprintf("expected exactly one property, got %d", len(names)),
		}
	}

	field := names[0]
	prop := d.Multipart.Properties[field]
	if prop == nil || prop.Value == nil || prop.Value.Type == "" {
		return "", &InvalidMultipartSchemaError{
			Properties: names,
			Reason:     fmt.Sprintf("property %q has no type", field),
		}
	}

	d.Multipart = nil
	return field, nil
}
