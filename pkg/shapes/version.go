// Package shapes carries the module's public version information.
package shapes

// Version is the released version of the shapes module and CLI.
const Version = "0.3.0"

// ModulePath is the Go module path.
const ModulePath = "github.com/mesh-intelligence/shapes"
