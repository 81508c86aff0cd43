/*
Package schema derives per location validation schemas from a single document
operation and rewrites brace delimited path templates into the engine's :name
placeholder syntax.

The derived schema keeps query, path, body and response schemas as independent
optional parts. A multipart body schema is captured separately and must be
extracted (yielding the upload field name) before the schema reaches the
engine's validator.
*/
package schema
