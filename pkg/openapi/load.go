package openapi

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"
)

// SpecValidationError indicates the document failed to load or validate.
// This is fatal to startup: the server must not begin serving routes with an
// unvalidated contract.
type SpecValidationError struct {
	Location string // file path or URL the document was loaded from
	Err      error
}

func (e *SpecValidationError) Error() string {
	return fmt.Sprintf("spec validation failed for %s: %s", e.Location, e.Err)
}

func (e *SpecValidationError) Unwrap() error { return e.Err }

// LoadOptions configures document loading
type LoadOptions struct {
	FetchTimeout time.Duration
	MaxRetries   int
	BackoffBase  time.Duration

	// AllowFileRefs permits file based external refs when the root document
	// was itself fetched over http. It is always permitted for local roots.
	AllowFileRefs bool
}

type LoadOption func(*LoadOptions)

func FetchTimeout(d time.Duration) LoadOption { return func(o *LoadOptions) { o.FetchTimeout = d } }
func MaxRetries(n int) LoadOption             { return func(o *LoadOptions) { o.MaxRetries = n } }
func BackoffBase(d time.Duration) LoadOption  { return func(o *LoadOptions) { o.BackoffBase = d } }
func AllowFileRefs(v bool) LoadOption         { return func(o *LoadOptions) { o.AllowFileRefs = v } }

func NewLoadOptions(opts ...LoadOption) *LoadOptions {
	o := &LoadOptions{
		FetchTimeout: DefaultFetchTimeout,
		MaxRetries:   DefaultMaxRetries,
		BackoffBase:  DefaultBackoffBase,
	}
	for _, v := range opts {
		v(o)
	}
	return o
}

// Load reads, parses and validates an OpenAPI 3 document from a filesystem
// path or an http/https URL. Any failure is returned as a *SpecValidationError.
func Load(ctx context.Context, location string, opts ...LoadOption) (*Document, error) {
	if strings.TrimSpace(location) == "" {
		return nil, &SpecValidationError{Location: location, Err: fmt.Errorf("empty document location")}
	}

	o := NewLoadOptions(opts...)
	f := newFetcher(o.FetchTimeout, o.MaxRetries, o.BackoffBase)

	u, uerr := url.Parse(location)
	isRemote := uerr == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""

	var (
		raw []byte
		err error
	)
	if isRemote {
		raw, err = f.Fetch(location)
	} else {
		location, err = filepath.Abs(location)
		if err == nil {
			raw, err = os.ReadFile(location)
		}
	}
	if err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}

	if err := checkVersion(raw); err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}

	loader := newLoader(f, o.AllowFileRefs || !isRemote)

	var doc *openapi3.T
	if isRemote {
		doc, err = loader.LoadFromURI(u)
	} else {
		doc, err = loader.LoadFromFile(location)
	}
	if err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}

	if err := doc.Validate(ctx); err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}

	return &Document{doc: doc, location: location}, nil
}

// LoadData parses and validates an in-memory OpenAPI 3 document. External
// refs are resolved relative to the process working directory.
func LoadData(ctx context.Context, raw []byte, opts ...LoadOption) (*Document, error) {
	const location = "<data>"

	if err := checkVersion(raw); err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}

	o := NewLoadOptions(opts...)
	loader := newLoader(newFetcher(o.FetchTimeout, o.MaxRetries, o.BackoffBase), true)

	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, &SpecValidationError{Location: location, Err: err}
	}
	return &Document{doc: doc, location: location}, nil
}

// newLoader builds the kin-openapi loader with external ref resolution routed
// through our fetcher. file refs are only honoured when allowFile is set.
func newLoader(f *fetcher, allowFile bool) *openapi3.Loader {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true
	loader.ReadFromURIFunc = func(l *openapi3.Loader, uri *url.URL) ([]byte, error) {
		switch strings.ToLower(uri.Scheme) {
		case "", "file":
			if !allowFile {
				return nil, fmt.Errorf("blocked file ref: %s", uri.String())
			}
			path := uri.Path
			if path == "" {
				path = uri.Opaque
			}
			return os.ReadFile(path)
		case "http", "https":
			return f.Fetch(uri.String())
		default:
			return nil, fmt.Errorf("unsupported ref scheme: %s", uri.Scheme)
		}
	}
	return loader
}

// checkVersion rejects non v3 documents before kin-openapi sees them, so a
// swagger 2.0 input produces a precise message instead of a pile of
// validation errors.
func checkVersion(raw []byte) error {
	var root map[string]interface{}
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return fmt.Errorf("parse document: %w", err)
	}
	if v, ok := root["openapi"]; ok {
		if s, _ := v.(string); strings.HasPrefix(strings.TrimSpace(s), "3.") {
			return nil
		}
		return fmt.Errorf("unsupported openapi version %v", v)
	}
	if _, ok := root["swagger"]; ok {
		return fmt.Errorf("swagger 2.0 documents are not supported, convert to OpenAPI 3 first")
	}
	return fmt.Errorf("missing openapi version field")
}
