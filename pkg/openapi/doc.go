/*
Package openapi loads and validates OpenAPI 3 documents and exposes the
document shape the route synthesizer consumes.

Load accepts a filesystem path or an http/https URL, sniffs the declared
version before parsing so Swagger 2.0 inputs fail with a precise message, and
validates the parsed document. Remote documents and remote $ref targets are
fetched through fasthttp with bounded retries.

A loaded Document is read only. BasePrefix returns the path portion of the
first declared server entry, and PathEntries returns the path templates in a
deterministic order together with their controller binding and per method
operations.
*/
package openapi
