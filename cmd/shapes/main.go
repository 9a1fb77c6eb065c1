// Package main provides the shapes CLI.
package main

import "github.com/mesh-intelligence/shapes/internal/cli"

func main() {
	cli.Execute()
}
