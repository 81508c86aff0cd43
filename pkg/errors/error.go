package errors

import (
	"errors"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/specbind/specbind/pkg/log"
)

// prefixFromDepth will create the indent prefix for a certain depth,
// e.g. 2 will yield "  " * 2 -> "    "
func prefixFromDepth(depth int) string {
	var p []byte
	for i := 0; i < depth; i++ {
		p = append(p, "  "...)
	}
	return string(p)
}

// PrintError will attempt to traverse the nested error and recursively print
// out any RouteErrors found. If a multierror.Error is found, each contained
// error is printed at the next depth.
func PrintError(err error, depth int) {
	var (
		merr *multierror.Error
		rerr *RouteError
	)

	if errors.As(err, &merr) {
		for _, v := range merr.Errors {
			PrintError(v, depth+1)
		}
	} else if errors.As(err, &rerr) {
		rerr.LogError(depth)
	} else {
		log.Error().Err(err).Msg(prefixFromDepth(depth) + "error")
	}
}

// RouteError encapsulates the contextual error relating to synthesizing one
// route from the document
type RouteError struct {
	ID          string // ID is the ksuid assigned to the route record, allowing you to backref which route the error came from
	Method      string // Method is the HTTP method of the operation
	Route       string // Route is the path template as declared in the document
	OperationID string // OperationID is the document's name for the operation, empty when the operation has none
	Err         error  // Err is the underlying error. If this is a wrapped error, Error() will not print this field
	Context     string // Context is an arbitrary field explaining which part of synthesis failed
}

// Error returns the string representation of the error. If the underlying
// error is wrapped, we omit printing it, allowing the caller to determine how
// to display the wrapped error.
func (r *RouteError) Error() string {
	if err := errors.Unwrap(r.Err); err != nil {
		return fmt.Sprintf("routeError [%s %s %s %s]: %s", r.ID, r.Method, r.Route, r.OperationID, r.Context)
	}
	return fmt.Sprintf("routeError [%s %s %s %s]: %s: %s", r.ID, r.Method, r.Route, r.OperationID, r.Context, r.Err.Error())
}

func (r *RouteError) Unwrap() error {
	return r.Err
}

// LogError will log the context surrounding the error. The depth argument
// modifies the indentation of the pretty printed error.
func (r *RouteError) LogError(depth int) {
	var (
		merr *multierror.Error
		rerr *RouteError
	)
	base := log.Error().
		Str("ID", r.ID).
		Str("Method", r.Method).
		Str("Route", r.Route).
		Str("OperationID", r.OperationID).
		Str("Context", r.Context)

	if errors.As(r.Err, &merr) {
		base.Msg(prefixFromDepth(depth))
		PrintError(merr, depth+1)
	} else if errors.As(r.Err, &rerr) {
		base.Err(rerr.Err).Msg(prefixFromDepth(depth))
		rerr.LogError(depth + 1)
	} else {
		base.Err(r.Err).Msg(prefixFromDepth(depth))
	}
}
