// Package main is the entry point for the rxp CLI client.
package main

import (
	"github.com/donaldgifford/rx-price-tracker/cmd/rxp/cmd"
)

func main() {
	cmd.Execute()
}
