/*
Package specbind turns a validated OpenAPI 3 document into live HTTP routes.

Given a document describing operations, specbind derives each route's method,
path, per-location validation schema, authenticator and handler binding, and
registers the result against an httprouter backed engine. The document is the
single source of truth: no hand-written route registration code.

There are no exports in the root package.

CLI tools part of `cmd/` include:
	- specbind - inspect and validate documents and print the synthesized route table
	- testServer - a runnable demo server binding an embedded document to demo controllers

*/
package specbind
