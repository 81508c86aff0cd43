/*
Package router synthesizes route registrations from a loaded document.

Bind walks every path entry and every declared method, binds the operation's
handler through the controller registry, derives the per location validation
schema, extracts the upload field, rewrites the path template, resolves the
authenticator and registers the assembled route with the engine.

The pass is strictly sequential and two phased: every operation is synthesized
first with defects accumulated into a multierror, and registration only starts
when synthesis produced no errors. A failed pass registers nothing, so a
partially available API can never enter service.
*/
package router
