package main

import (
	"github.com/specbind/specbind/cmd/specbind/cmd"
)

func main() {
	cmd.Execute()
}
