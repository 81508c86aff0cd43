package router

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/hashicorp/go-multierror"
	"github.com/segmentio/ksuid"
	"github.com/specbind/specbind/pkg/controller"
	"github.com/specbind/specbind/pkg/engine"
	errors2 "github.com/specbind/specbind/pkg/errors"
	"github.com/specbind/specbind/pkg/log"
	"github.com/specbind/specbind/pkg/openapi"
	"github.com/specbind/specbind/pkg/schema"
	"github.com/specbind/specbind/pkg/security"
)

// UnboundPathParamError indicates a path template that still contains brace
// placeholders after the rewrite decision, i.e. placeholders with no declared
// path parameters. Registering such a template with literal braces would
// produce a route no caller can reach, so it fails startup instead.
type UnboundPathParamError struct {
	Template string
}

func (e *UnboundPathParamError) Error() string {
	return fmt.Sprintf("path template %q contains placeholders with no declared path parameters", e.Template)
}

// Options configures a Bind pass
type Options struct {
	Controllers *controller.Registry
	Security    security.Registry
	Engine      *engine.Engine
}

type Option func(*Options)

func Controllers(r *controller.Registry) Option {
	return func(o *Options) {
		o.Controllers = r
	}
}

func Security(r security.Registry) Option {
	return func(o *Options) {
		o.Security = r
	}
}

func Engine(e *engine.Engine) Option {
	return func(o *Options) {
		o.Engine = e
	}
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		Controllers: controller.NewRegistry(),
	}
	for _, v := range opts {
		v(o)
	}
	return o
}

// Bind synthesizes one route per identified operation in the document and
// registers all of them with the engine. Operations without an operationId are
// skipped with a warning. Any defect aborts the pass before registration; the
// returned error is a multierror carrying a RouteError per failed operation.
func Bind(doc *openapi.Document, opts ...Option) error {
	o := NewOptions(opts...)
	if o.Engine == nil {
		return fmt.Errorf("router: no engine configured")
	}

	records, err := Synthesize(doc, o)
	if err != nil {
		return err
	}

	var merr *multierror.Error
	for _, rt := range records {
		if err := o.Engine.Register(rt); err != nil {
			merr = multierror.Append(merr, &errors2.RouteError{
				ID:      rt.ID,
				Method:  rt.Method,
				Route:   rt.Path,
				Err:     err,
				Context: "registration",
			})
		}
	}
	return merr.ErrorOrNil()
}

// Operation is one identified operation's synthesized record together with
// its document-side identity, before handler and authenticator resolution.
type Operation struct {
	Record      *engine.Route
	Template    string // path template as declared in the document
	OperationID string
	Controller  string
	Op          *openapi3.Operation
}

// Operations runs the per-operation synthesis step (skip, derive, upload
// extraction, path rewrite) for every identified operation in the document.
// Operations appear in document order: path templates sorted, methods in the
// document's fixed order. Defects accumulate in the returned multierror; the
// returned slice holds whatever did synthesize.
func Operations(doc *openapi.Document) ([]Operation, error) {
	prefix := doc.BasePrefix()

	var (
		merr *multierror.Error
		ops  []Operation
	)

	for _, entry := range doc.PathEntries() {
		for _, mo := range entry.Operations {
			if mo.Op.OperationID == "" {
				log.Warn().
					Str("method", mo.Method).
					Str("path", entry.Template).
					Msg("operation has no operationId, skipping route")
				continue
			}

			rt, err := synthesizeOne(prefix, entry, mo)
			if err != nil {
				merr = multierror.Append(merr, err)
				continue
			}

			ops = append(ops, Operation{
				Record:      rt,
				Template:    entry.Template,
				OperationID: mo.Op.OperationID,
				Controller:  entry.Controller,
				Op:          mo.Op,
			})
		}
	}

	return ops, merr.ErrorOrNil()
}

// Synthesize produces the route records for every identified operation
// without registering them, resolving each operation's handler and
// authenticator.
func Synthesize(doc *openapi.Document, o *Options) ([]*engine.Route, error) {
	ops, opErr := Operations(doc)

	var (
		merr    = multierror.Append(nil, opErr)
		records []*engine.Route
	)

	for _, op := range ops {
		rt := op.Record

		handler, err := o.Controllers.Resolve(op.Controller, op.OperationID)
		if err != nil {
			merr = multierror.Append(merr, &errors2.RouteError{
				ID:          rt.ID,
				Method:      rt.Method,
				Route:       op.Template,
				OperationID: op.OperationID,
				Err:         err,
				Context:     "controller",
			})
			continue
		}
		rt.Handler = handler

		rt.AuthScheme, rt.Authenticator, _ = security.Resolve(op.Op.Security, o.Security)

		records = append(records, rt)
	}

	if err := merr.ErrorOrNil(); err != nil {
		return nil, err
	}
	return records, nil
}

// synthesizeOne assembles the schema and path parts of a single route record.
func synthesizeOne(prefix string, entry openapi.PathEntry, mo openapi.MethodOperation) (*engine.Route, error) {
	id := ksuid.New().String()

	d := schema.Derive(mo.Op)

	uploadField, err := d.ExtractUploadField()
	if err != nil {
		return nil, &errors2.RouteError{
			ID:          id,
			Method:      mo.Method,
			Route:       entry.Template,
			OperationID: mo.Op.OperationID,
			Err:         err,
			Context:     "multipart",
		}
	}

	path := entry.Template
	if d.Params != nil {
		path = schema.RewritePath(path)
	}
	if strings.Contains(path, "{") {
		return nil, &errors2.RouteError{
			ID:          id,
			Method:      mo.Method,
			Route:       entry.Template,
			OperationID: mo.Op.OperationID,
			Err:         &UnboundPathParamError{Template: entry.Template},
			Context:     "path",
		}
	}

	return &engine.Route{
		ID:          id,
		Method:      strings.ToUpper(mo.Method),
		Path:        prefix + path,
		Schema:      d,
		UploadField: uploadField,
	}, nil
}
