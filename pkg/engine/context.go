package engine

import (
	"context"
	"net/http"

	"github.com/julienschmidt/httprouter"
)

type ctxKey int

const (
	uploadKey ctxKey = iota
	authKey
	requestIDKey
)

// Request is the request representation handed to handlers.
type Request struct {
	*http.Request

	// Params are the matched :name path segments
	Params httprouter.Params

	// Payload is the decoded JSON request body, nil when the route declares no
	// body schema
	Payload interface{}
}

// HandlerFunc is the signature of an operation handler. The returned value is
// serialized as the JSON body of a 200 response.
type HandlerFunc func(ctx context.Context, req *Request) (interface{}, error)

// AuthFromContext returns the value the route's authenticator attached to the
// request.
func AuthFromContext(ctx context.Context) (interface{}, bool) {
	v := ctx.Value(authKey)
	return v, v != nil
}

// UploadFromContext returns the uploaded file decoded by the route's upload
// middleware.
func UploadFromContext(ctx context.Context) (*UploadedFile, bool) {
	v, ok := ctx.Value(uploadKey).(*UploadedFile)
	return v, ok
}

// RequestIDFromContext returns the id assigned to the request.
func RequestIDFromContext(ctx context.Context) string {
	v, _ := ctx.Value(requestIDKey).(string)
	return v
}
