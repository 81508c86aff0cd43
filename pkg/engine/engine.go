package engine

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/julienschmidt/httprouter"
	"github.com/specbind/specbind/pkg/log"
	"github.com/specbind/specbind/pkg/schema"
	"github.com/specbind/specbind/pkg/security"
)

// Route is one synthesized route registration record.
type Route struct {
	ID     string          // ksuid assigned by the synthesizer, for log correlation
	Method string          // uppercased HTTP method
	Path   string          // absolute path with :name placeholders
	Schema *schema.Derived // multipart part already stripped

	AuthScheme    string // resolved scheme name, empty when unauthenticated
	Authenticator security.Authenticator

	Handler     HandlerFunc
	UploadField string // multipart field name, empty when the route has no upload
}

// DuplicateRouteError indicates two operations resolved to the same
// method+path registration.
type DuplicateRouteError struct {
	Method string
	Path   string
}

func (e *DuplicateRouteError) Error() string {
	return fmt.Sprintf("duplicate route registration: %s %s", e.Method, e.Path)
}

// ConflictingRouteError indicates a path that cannot coexist with a previously
// registered one in the route tree, e.g. a parameterized segment alongside a
// static sibling at the same position.
type ConflictingRouteError struct {
	Method string
	Path   string
	Reason string
}

func (e *ConflictingRouteError) Error() string {
	return fmt.Sprintf("conflicting route registration: %s %s: %s", e.Method, e.Path, e.Reason)
}

// Options configures the engine
type Options struct {
	MaxUploadSize int64
}

type Option func(*Options)

func MaxUploadSize(n int64) Option {
	return func(o *Options) {
		o.MaxUploadSize = n
	}
}

func NewOptions(opts ...Option) *Options {
	o := &Options{MaxUploadSize: DefaultMaxUploadSize}
	for _, v := range opts {
		v(o)
	}
	return o
}

// Engine routes requests to registered handlers, running each route's
// pipeline: request id, upload decoding, auth pre hook, schema validation,
// handler, JSON response.
type Engine struct {
	router        *httprouter.Router
	routes        []*Route
	registered    map[string]*Route
	maxUploadSize int64
}

func New(opts ...Option) *Engine {
	o := NewOptions(opts...)

	router := httprouter.New()
	router.NotFound = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not found")
	})
	router.MethodNotAllowed = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	router.PanicHandler = func(w http.ResponseWriter, r *http.Request, v interface{}) {
		log.Error().Str("method", r.Method).Str("path", r.URL.Path).Interface("panic", v).Msg("handler panicked")
		writeError(w, http.StatusInternalServerError, "internal server error")
	}

	return &Engine{
		router:        router,
		registered:    make(map[string]*Route),
		maxUploadSize: o.MaxUploadSize,
	}
}

// Register mounts the route. Routes must be registered before the engine
// starts serving; registration is not safe concurrently with request
// handling.
func (e *Engine) Register(rt *Route) error {
	if rt.Handler == nil {
		return fmt.Errorf("route %s %s has no handler", rt.Method, rt.Path)
	}
	if rt.Schema != nil && rt.Schema.Multipart != nil {
		return fmt.Errorf("route %s %s: multipart schema must be extracted before registration", rt.Method, rt.Path)
	}

	key := rt.Method + " " + rt.Path
	if _, ok := e.registered[key]; ok {
		return &DuplicateRouteError{Method: rt.Method, Path: rt.Path}
	}

	if err := e.mount(rt); err != nil {
		return err
	}
	e.registered[key] = rt
	e.routes = append(e.routes, rt)

	log.Debug().
		Str("ID", rt.ID).
		Str("method", rt.Method).
		Str("path", rt.Path).
		Str("auth", rt.AuthScheme).
		Str("upload", rt.UploadField).
		Msg("registered route")
	return nil
}

// mount adds the route to the tree. httprouter reports tree conflicts by
// panicking, so the panic is recovered here and surfaced as a registration
// error instead of killing startup.
func (e *Engine) mount(rt *Route) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = &ConflictingRouteError{Method: rt.Method, Path: rt.Path, Reason: fmt.Sprint(v)}
		}
	}()
	e.router.Handle(rt.Method, rt.Path, e.handle(rt))
	return nil
}

// Routes returns the registered routes in registration order.
func (e *Engine) Routes() []*Route {
	return e.routes
}

func (e *Engine) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	e.router.ServeHTTP(w, r)
}

func (e *Engine) handle(rt *Route) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		reqID := uuid.NewString()
		w.Header().Set("X-Request-Id", reqID)
		ctx := context.WithValue(r.Context(), requestIDKey, reqID)

		if rt.UploadField != "" {
			up, err := parseUpload(r, rt.UploadField, e.maxUploadSize)
			if err != nil {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			ctx = context.WithValue(ctx, uploadKey, up)
		}

		if rt.Authenticator != nil {
			authCtx, err := rt.Authenticator(r)
			if err != nil {
				log.Debug().Str("request_id", reqID).Str("scheme", rt.AuthScheme).Err(err).Msg("authentication rejected")
				writeError(w, http.StatusUnauthorized, "unauthorized")
				return
			}
			ctx = context.WithValue(ctx, authKey, authCtx)
		}

		payload, err := validateRequest(rt.Schema, r, ps)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		out, err := rt.Handler(ctx, &Request{
			Request: r.WithContext(ctx),
			Params:  ps,
			Payload: payload,
		})
		if err != nil {
			log.Error().Str("request_id", reqID).Str("ID", rt.ID).Err(err).Msg("handler failed")
			writeError(w, http.StatusInternalServerError, "internal server error")
			return
		}

		writeJSON(w, http.StatusOK, out)
	}
}
