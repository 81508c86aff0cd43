/*
The errors package provides the custom error type and utilities used when
synthesizing routes from an OpenAPI document.

RouteError carries the method, path template and operation id of the operation
that produced the error, plus the ksuid assigned to the route record so log
lines and startup failures can be correlated. The printing utilities walk
nested multierrors and render each contained error with its context.

Usage

	import errors2 "github.com/specbind/specbind/pkg/errors"

	...

	if err := router.Bind(doc, opts...); err != nil {
		var merr *multierror.Error
		if errors.As(err, &merr) {
			for _, v := range merr.Errors {
				errors2.PrintError(v, 0)
			}
		}
		return err
	}

*/
package errors
