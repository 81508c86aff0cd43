/*
Package cmd provides all the commands for the specbind binary.

The commands are separated by file, one file per subcommand. There are a few
global CLI flags that configure how specbind operates; these are defined by
the globally exposed variables in root.go.

Usage

	specbind routes ./openapi.yaml
	specbind validate https://example.com/openapi.json

*/
package cmd
