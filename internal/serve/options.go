package serve

import (
	"github.com/specbind/specbind/pkg/controller"
	"github.com/specbind/specbind/pkg/engine"
	"github.com/specbind/specbind/pkg/openapi"
	"github.com/specbind/specbind/pkg/security"
)

const (
	DefaultListenAddr = "127.0.0.1:8080"
)

type Options struct {
	SpecLocation string
	ListenAddr   string

	// Document short circuits loading when the caller already holds a
	// validated document, e.g. one embedded in the binary.
	Document *openapi.Document

	Controllers *controller.Registry
	Security    security.Registry

	LoadOpts   []openapi.LoadOption
	EngineOpts []engine.Option
}

type Option func(*Options)

func SpecLocation(v string) Option {
	return func(o *Options) {
		o.SpecLocation = v
	}
}

func Document(v *openapi.Document) Option {
	return func(o *Options) {
		o.Document = v
	}
}

func ListenAddr(v string) Option {
	return func(o *Options) {
		o.ListenAddr = v
	}
}

func Controllers(v *controller.Registry) Option {
	return func(o *Options) {
		o.Controllers = v
	}
}

func Security(v security.Registry) Option {
	return func(o *Options) {
		o.Security = v
	}
}

func LoadOpts(v ...openapi.LoadOption) Option {
	return func(o *Options) {
		o.LoadOpts = append(o.LoadOpts, v...)
	}
}

func EngineOpts(v ...engine.Option) Option {
	return func(o *Options) {
		o.EngineOpts = append(o.EngineOpts, v...)
	}
}

func NewOptions(opts ...Option) *Options {
	o := &Options{
		ListenAddr:  DefaultListenAddr,
		Controllers: controller.NewRegistry(),
	}
	for _, v := range opts {
		v(o)
	}
	return o
}
