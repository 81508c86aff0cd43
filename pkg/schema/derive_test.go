package schema

import (
	"testing"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func schemaRef(typ string) *openapi3.SchemaRef {
	return &openapi3.SchemaRef{Value: &openapi3.Schema{Type: typ}}
}

func param(name, in string, typ string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{Value: &openapi3.Parameter{
		Name:   name,
		In:     in,
		Schema: schemaRef(typ),
	}}
}

func jsonBody(typ string) *openapi3.RequestBodyRef {
	return &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
		Content: openapi3.Content{
			ContentTypeJSON: &openapi3.MediaType{Schema: schemaRef(typ)},
		},
	}}
}

func multipartBody(props ...string) *openapi3.RequestBodyRef {
	sch := &openapi3.Schema{Type: openapi3.TypeObject, Properties: make(openapi3.Schemas)}
	for _, p := range props {
		sch.Properties[p] = &openapi3.SchemaRef{Value: &openapi3.Schema{Type: "string", Format: "binary"}}
	}
	return &openapi3.RequestBodyRef{Value: &openapi3.RequestBody{
		Content: openapi3.Content{
			ContentTypeMultipart: &openapi3.MediaType{Schema: &openapi3.SchemaRef{Value: sch}},
		},
	}}
}

func TestDeriveParameters(t *testing.T) {
	op := &openapi3.Operation{
		Parameters: openapi3.Parameters{
			param("limit", openapi3.ParameterInQuery, "integer"),
			param("sort", openapi3.ParameterInQuery, "string"),
			param("id", openapi3.ParameterInPath, "string"),
		},
	}

	d := Derive(op)

	require.Len(t, d.Query, 2)
	assert.Equal(t, "integer", d.Query["limit"].Type)
	assert.Equal(t, "string", d.Query["sort"].Type)

	require.NotNil(t, d.Params)
	assert.Equal(t, openapi3.TypeObject, d.Params.Type)
	require.Contains(t, d.Params.Properties, "id")
	assert.Equal(t, "string", d.Params.Properties["id"].Value.Type)

	assert.Nil(t, d.Body)
	assert.Nil(t, d.Response)
	assert.Nil(t, d.Multipart)
}

func TestDeriveBodyAndResponses(t *testing.T) {
	op := &openapi3.Operation{
		RequestBody: jsonBody(openapi3.TypeObject),
		Responses: openapi3.Responses{
			"200": &openapi3.ResponseRef{Value: &openapi3.Response{
				Content: openapi3.Content{
					ContentTypeJSON: &openapi3.MediaType{Schema: schemaRef(openapi3.TypeObject)},
				},
			}},
			"204": &openapi3.ResponseRef{Value: &openapi3.Response{}},
		},
	}

	d := Derive(op)

	require.NotNil(t, d.Body)
	assert.Equal(t, openapi3.TypeObject, d.Body.Type)

	require.Len(t, d.Response, 1)
	assert.Contains(t, d.Response, "200")

	assert.Nil(t, d.Query)
	assert.Nil(t, d.Params)
}

func TestDeriveMultipartNotMergedIntoBody(t *testing.T) {
	op := &openapi3.Operation{RequestBody: multipartBody("upload")}

	d := Derive(op)

	assert.Nil(t, d.Body)
	require.NotNil(t, d.Multipart)
	assert.Contains(t, d.Multipart.Properties, "upload")
}

func TestExtractUploadField(t *testing.T) {
	tests := []struct {
		name      string
		props     []string
		wantField string
		wantErr   bool
	}{
		{"single property", []string{"upload"}, "upload", false},
		{"zero properties", nil, "", true},
		{"two properties", []string{"a", "b"}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Derive(&openapi3.Operation{RequestBody: multipartBody(tt.props...)})

			field, err := d.ExtractUploadField()
			if tt.wantErr {
				require.Error(t, err)
				var merr *InvalidMultipartSchemaError
				assert.ErrorAs(t, err, &merr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantField, field)
			assert.Nil(t, d.Multipart, "multipart entry must be stripped after extraction")
		})
	}
}

func TestExtractUploadFieldUntypedProperty(t *testing.T) {
	rb := multipartBody()
	rb.Value.Content[ContentTypeMultipart].Schema.Value.Properties["upload"] = &openapi3.SchemaRef{Value: &openapi3.Schema{}}
	d := Derive(&openapi3.Operation{RequestBody: rb})

	_, err := d.ExtractUploadField()
	var merr *InvalidMultipartSchemaError
	require.ErrorAs(t, err, &merr)
}

func TestExtractUploadFieldNoMultipart(t *testing.T) {
	d := Derive(&openapi3.Operation{})

	field, err := d.ExtractUploadField()
	require.NoError(t, err)
	assert.Equal(t, "", field)
}
