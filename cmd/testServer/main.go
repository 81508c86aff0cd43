package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"

	"github.com/specbind/specbind/internal/serve"
	ctx2 "github.com/specbind/specbind/pkg/context"
	"github.com/specbind/specbind/pkg/controller"
	"github.com/specbind/specbind/pkg/engine"
	"github.com/specbind/specbind/pkg/log"
	"github.com/specbind/specbind/pkg/openapi"
	"github.com/specbind/specbind/pkg/security"
)

// demoDocument is a small self contained document exercising every part of
// the pipeline: query and path parameters, a JSON body, an authenticated
// operation and a multipart upload.
const demoDocument = `
openapi: "3.0.0"
info:
  title: specbind demo
  version: "1.0.0"
servers:
  - url: /api/v1
components:
  securitySchemes:
    api_key:
      type: apiKey
      name: X-Api-Key
      in: header
paths:
  /items:
    x-controller: items
    get:
      operationId: listItems
      parameters:
        - name: limit
          in: query
          schema:
            type: integer
      responses:
        "200":
          description: item list
          content:
            application/json:
              schema:
                type: array
                items:
                  type: object
    post:
      operationId: createItem
      security:
        - api_key: []
      requestBody:
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
      responses:
        "200":
          description: created item
          content:
            application/json:
              schema:
                type: object
  /items/{id}:
    x-controller: items
    get:
      operationId: getItem
      parameters:
        - name: id
          in: path
          required: true
          schema:
            type: string
      responses:
        "200":
          description: one item
          content:
            application/json:
              schema:
                type: object
  /upload:
    x-controller: files
    post:
      operationId: uploadFile
      requestBody:
        content:
          multipart/form-data:
            schema:
              type: object
              properties:
                upload:
                  type: string
                  format: binary
      responses:
        "200":
          description: upload receipt
          content:
            application/json:
              schema:
                type: object
`

func itemsModule() (controller.Module, error) {
	return controller.Module{
		"listItems": func(ctx context.Context, req *engine.Request) (interface{}, error) {
			return []map[string]string{{"id": "1", "name": "first"}}, nil
		},
		"createItem": func(ctx context.Context, req *engine.Request) (interface{}, error) {
			auth, _ := engine.AuthFromContext(ctx)
			return map[string]interface{}{"created": req.Payload, "auth": auth}, nil
		},
		"getItem": func(ctx context.Context, req *engine.Request) (interface{}, error) {
			return map[string]string{"id": req.Params.ByName("id")}, nil
		},
	}, nil
}

func filesModule() (controller.Module, error) {
	return controller.Module{
		"uploadFile": func(ctx context.Context, req *engine.Request) (interface{}, error) {
			up, ok := engine.UploadFromContext(ctx)
			if !ok {
				return nil, fmt.Errorf("upload missing from context")
			}
			return map[string]interface{}{
				"field":    up.FieldName,
				"filename": up.Filename,
				"size":     up.Size,
			}, nil
		},
	}, nil
}

func main() {
	var (
		addr   string
		apiKey string
	)
	flag.StringVar(&addr, "addr", "127.0.0.1:14000", "address to serve on")
	flag.StringVar(&apiKey, "key", "hunter2", "api key accepted by the api_key scheme")
	flag.Parse()

	doc, err := openapi.LoadData(ctx2.Context(), []byte(demoDocument))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load demo document")
	}

	controllers := controller.NewRegistry()
	controllers.RegisterModule("items", itemsModule)
	controllers.RegisterModule("files", filesModule)

	auth := security.Registry{
		"api_key": func(r *http.Request) (interface{}, error) {
			if r.Header.Get("X-Api-Key") != apiKey {
				return nil, fmt.Errorf("bad api key")
			}
			return map[string]string{"subject": "demo"}, nil
		},
	}

	if err := serve.Serve(ctx2.Context(),
		serve.Document(doc),
		serve.ListenAddr(addr),
		serve.Controllers(controllers),
		serve.Security(auth),
	); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
