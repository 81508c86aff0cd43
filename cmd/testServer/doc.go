/*
testServer binds a small embedded document to demo controllers and serves it.

Useful for poking every part of the pipeline by hand:

	go run ./cmd/testServer -addr 127.0.0.1:14000
	curl 127.0.0.1:14000/api/v1/items
	curl -H 'X-Api-Key: hunter2' -d '{"name":"x"}' 127.0.0.1:14000/api/v1/items
	curl -F upload=@somefile 127.0.0.1:14000/api/v1/upload

*/
package main
