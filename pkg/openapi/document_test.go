package openapi

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadDoc(t *testing.T, raw string) *Document {
	t.Helper()
	doc, err := LoadData(context.Background(), []byte(raw))
	require.NoError(t, err)
	return doc
}

func TestBasePrefix(t *testing.T) {
	tests := []struct {
		name    string
		servers string
		want    string
	}{
		{"path only", `servers: [{url: /api/v1}]`, "/api/v1"},
		{"full url", `servers: [{url: "https://api.example.com/api/v1"}]`, "/api/v1"},
		{"full url no path", `servers: [{url: "https://api.example.com"}]`, ""},
		{"trailing slash trimmed", `servers: [{url: /api/}]`, "/api"},
		{"no servers", ``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := fmt.Sprintf(`
openapi: "3.0.0"
info: {title: t, version: "1"}
%s
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200": {description: ok}
`, tt.servers)
			assert.Equal(t, tt.want, loadDoc(t, raw).BasePrefix())
		})
	}
}

func TestPathEntriesSortedWithController(t *testing.T) {
	doc := loadDoc(t, `
openapi: "3.0.0"
info: {title: t, version: "1"}
paths:
  /zebras:
    x-controller: zebras
    get:
      operationId: listZebras
      responses:
        "200": {description: ok}
  /apples:
    x-controller: apples
    get:
      operationId: listApples
      responses:
        "200": {description: ok}
    post:
      operationId: createApple
      responses:
        "200": {description: ok}
`)

	entries := doc.PathEntries()
	require.Len(t, entries, 2)

	assert.Equal(t, "/apples", entries[0].Template)
	assert.Equal(t, "apples", entries[0].Controller)
	require.Len(t, entries[0].Operations, 2)
	// fixed method order: get before post
	assert.Equal(t, "get", entries[0].Operations[0].Method)
	assert.Equal(t, "post", entries[0].Operations[1].Method)

	assert.Equal(t, "/zebras", entries[1].Template)
	assert.Equal(t, "zebras", entries[1].Controller)
}

func TestPathEntriesMissingController(t *testing.T) {
	doc := loadDoc(t, `
openapi: "3.0.0"
info: {title: t, version: "1"}
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200": {description: ok}
`)

	entries := doc.PathEntries()
	require.Len(t, entries, 1)
	assert.Equal(t, "", entries[0].Controller)
}
