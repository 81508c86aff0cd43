// Package serve wires the loader, synthesizer and engine together for the CLI
// binaries.
package serve

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/specbind/specbind/pkg/engine"
	errors2 "github.com/specbind/specbind/pkg/errors"
	"github.com/specbind/specbind/pkg/log"
	"github.com/specbind/specbind/pkg/openapi"
	"github.com/specbind/specbind/pkg/router"
	"github.com/specbind/specbind/pkg/schema"
)

// RouteSummary is one row of the inspection table produced by Preview.
type RouteSummary struct {
	Method      string
	Path        string
	OperationID string
	Controller  string
	AuthSchemes string // declared scheme names of the first requirement
	UploadField string
	Schema      *schema.Derived
}

// Load loads and validates the configured document.
func Load(ctx context.Context, o *Options) (*openapi.Document, error) {
	start := time.Now()
	doc, err := openapi.Load(ctx, o.SpecLocation, o.LoadOpts...)
	if err != nil {
		return nil, err
	}
	log.Debug().Str("location", doc.Location()).Dur("took", time.Since(start)).Msg("loaded document")
	return doc, nil
}

// Preview synthesizes the inspection table for a document without requiring
// controllers or authenticators to be configured. Operations without an
// operationId are omitted, matching what Bind would register. Document
// defects (multipart schemas, unbound placeholders) are accumulated and
// returned alongside the rows that did synthesize.
func Preview(doc *openapi.Document) ([]RouteSummary, error) {
	ops, err := router.Operations(doc)

	rows := make([]RouteSummary, 0, len(ops))
	for _, op := range ops {
		rows = append(rows, RouteSummary{
			Method:      op.Record.Method,
			Path:        op.Record.Path,
			OperationID: op.OperationID,
			Controller:  op.Controller,
			AuthSchemes: declaredSchemes(op.Op),
			UploadField: op.Record.UploadField,
			Schema:      op.Record.Schema,
		})
	}

	return rows, err
}

// declaredSchemes renders the scheme names of the operation's first security
// requirement, the only one resolution ever consults.
func declaredSchemes(op *openapi3.Operation) string {
	if op.Security == nil || len(*op.Security) == 0 {
		return ""
	}
	first := (*op.Security)[0]
	names := make([]string, 0, len(first))
	for name := range first {
		names = append(names, name)
	}
	sort.Strings(names)
	return strings.Join(names, ",")
}

// Serve binds the document's routes and serves until the context is
// cancelled. Startup errors (document, synthesis, registration) are returned
// before the listener opens.
func Serve(ctx context.Context, opts ...Option) error {
	o := NewOptions(opts...)

	doc := o.Document
	if doc == nil {
		var err error
		doc, err = Load(ctx, o)
		if err != nil {
			return err
		}
	}

	eng := engine.New(o.EngineOpts...)
	if err := router.Bind(doc,
		router.Controllers(o.Controllers),
		router.Security(o.Security),
		router.Engine(eng),
	); err != nil {
		errors2.PrintError(err, 0)
		return err
	}

	srv := &http.Server{
		Addr:    o.ListenAddr,
		Handler: eng,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("shutdown failed")
		}
	}()

	log.Info().Str("addr", o.ListenAddr).Int("routes", len(eng.Routes())).Msg("serving")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
