// Package main is the entry point for the rx-price-tracker service.
package main

import (
	"os"

	"github.com/donaldgifford/rx-price-tracker/cmd/rx-price-tracker/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
