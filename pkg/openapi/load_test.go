package openapi

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalDoc = `
openapi: "3.0.0"
info:
  title: test
  version: "1.0.0"
paths:
  /ping:
    get:
      operationId: ping
      responses:
        "200":
          description: pong
`

func TestLoadDataValidDocument(t *testing.T) {
	doc, err := LoadData(context.Background(), []byte(minimalDoc))
	require.NoError(t, err)
	require.NotNil(t, doc)
	assert.Len(t, doc.PathEntries(), 1)
}

func TestLoadDataRejectsSwagger2(t *testing.T) {
	raw := []byte(`{"swagger": "2.0", "info": {"title": "t", "version": "1"}, "paths": {}}`)

	_, err := LoadData(context.Background(), raw)
	var serr *SpecValidationError
	require.ErrorAs(t, err, &serr)
	assert.Contains(t, serr.Error(), "swagger 2.0")
}

func TestLoadDataRejectsMissingVersion(t *testing.T) {
	_, err := LoadData(context.Background(), []byte(`{"info": {"title": "t"}}`))
	var serr *SpecValidationError
	require.ErrorAs(t, err, &serr)
}

func TestLoadDataRejectsInvalidDocument(t *testing.T) {
	// missing info, fails document validation
	raw := []byte(`{"openapi": "3.0.0", "paths": {}}`)

	_, err := LoadData(context.Background(), raw)
	var serr *SpecValidationError
	require.ErrorAs(t, err, &serr)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(minimalDoc), 0o644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Location())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	var serr *SpecValidationError
	require.ErrorAs(t, err, &serr)
}

func TestLoadEmptyLocation(t *testing.T) {
	_, err := Load(context.Background(), "  ")
	var serr *SpecValidationError
	require.ErrorAs(t, err, &serr)
}
