// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the shapes project using Mage.
//
// Usage:
//
//	mage build         Compile the shapes binary to bin/
//	mage test:all      Run all tests
//	mage test:race     Run all tests with the race detector
//	mage test:cover    Run tests and write coverage.out
//	mage lint          Run golangci-lint
//	mage demo          Build and run the catalog walkthrough in a temp dir
//	mage clean         Remove build artifacts
//	mage install       Install shapes to GOPATH/bin
package main

import (
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "shapes"
	binaryDir  = "bin"
	cmdDir     = "./cmd/shapes"
)

// Default target when mage runs without arguments.
var Default = Build

// Build compiles the shapes binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath(), cmdDir)
}

// Clean removes build artifacts.
func Clean() error {
	for _, p := range []string{binaryDir, coverFile} {
		if err := os.RemoveAll(p); err != nil {
			return err
		}
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	return sh.Copy(filepath.Join(gopath, "bin", binaryName), binaryPath())
}

// Demo builds the binary and runs "shapes demo" against throwaway
// config and data directories.
func Demo() error {
	mg.Deps(Build)
	tmp, err := os.MkdirTemp("", "shapes-demo-")
	if err != nil {
		return err
	}
	defer os.RemoveAll(tmp)

	return sh.RunV(binaryPath(),
		"--config-dir", filepath.Join(tmp, "config"),
		"--data-dir", filepath.Join(tmp, "data"),
		"demo")
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}
