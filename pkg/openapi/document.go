package openapi

import (
	"encoding/json"
	"net/url"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ControllerExtension is the path level extension naming the controller module
// that exports the handlers for the operations under that path.
const ControllerExtension = "x-controller"

// Document is a validated, read only OpenAPI 3 document.
type Document struct {
	doc      *openapi3.T
	location string
}

// MethodOperation pairs an HTTP method name with its declared operation.
type MethodOperation struct {
	Method string
	Op     *openapi3.Operation
}

// PathEntry is one path template together with its controller binding and the
// operations declared beneath it.
type PathEntry struct {
	Template   string
	Controller string
	Operations []MethodOperation
}

// Location returns where the document was loaded from.
func (d *Document) Location() string { return d.location }

// Raw exposes the underlying kin-openapi document for read only use.
func (d *Document) Raw() *openapi3.T { return d.doc }

// BasePrefix returns the path portion of the first declared server entry.
// A server URL without a path component, or an absent servers list, yields "".
func (d *Document) BasePrefix() string {
	if len(d.doc.Servers) == 0 {
		return ""
	}
	raw := d.doc.Servers[0].URL
	if u, err := url.Parse(raw); err == nil && u.Scheme != "" {
		raw = u.Path
	}
	return strings.TrimSuffix(raw, "/")
}

// PathEntries returns the document's path entries sorted by template, each
// with its operations in a fixed method order. Sorting keeps synthesis and
// registration deterministic across runs.
func (d *Document) PathEntries() []PathEntry {
	templates := make([]string, 0, len(d.doc.Paths))
	for tpl := range d.doc.Paths {
		templates = append(templates, tpl)
	}
	sort.Strings(templates)

	entries := make([]PathEntry, 0, len(templates))
	for _, tpl := range templates {
		item := d.doc.Paths[tpl]
		if item == nil {
			continue
		}

		ops := []MethodOperation{
			{"get", item.Get},
			{"put", item.Put},
			{"post", item.Post},
			{"delete", item.Delete},
			{"options", item.Options},
			{"head", item.Head},
			{"patch", item.Patch},
			{"trace", item.Trace},
		}
		declared := ops[:0]
		for _, v := range ops {
			if v.Op != nil {
				declared = append(declared, v)
			}
		}

		entries = append(entries, PathEntry{
			Template:   tpl,
			Controller: extensionString(item.Extensions, ControllerExtension),
			Operations: declared,
		})
	}
	return entries
}

// extensionString decodes a string valued extension. kin-openapi keeps
// extension values as raw JSON when the document came off disk and as plain
// strings when built in code, so both are handled.
func extensionString(ext map[string]interface{}, key string) string {
	v, ok := ext[key]
	if !ok {
		return ""
	}
	switch vv := v.(type) {
	case string:
		return vv
	case json.RawMessage:
		var s string
		if err := json.Unmarshal(vv, &s); err == nil {
			return s
		}
	}
	return ""
}
