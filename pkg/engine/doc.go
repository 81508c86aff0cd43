/*
Package engine is the request routing engine the synthesizer registers routes
against.

It wraps httprouter with the per route pipeline the document contract implies:
request id assignment, multipart upload decoding for routes bound to an upload
field, the authentication pre hook, per location schema validation, and JSON
response writing. Validation failures are always reported as HTTP 400,
authenticator rejections as 401, and handler failures or panics as 500.

Routes are registered once during startup; the engine holds no mutable state
per request beyond the request itself.
*/
package engine
