//go:build mage

// Package main provides build targets for foodblog using Mage.
//
// Usage:
//
//	mage build     Compile foodblog to bin/
//	mage test      Run all tests
//	mage cover     Run tests with a coverage profile in bin/
//	mage lint      Run golangci-lint
//	mage clean     Remove build artifacts
//	mage install   Install foodblog to GOPATH/bin
//	mage demo      Seed a scratch database and run a search against it
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "foodblog"
	binaryDir  = "bin"
	cmdDir     = "./cmd/foodblog"
	coverFile  = "coverage.out"
)

// Build compiles the foodblog binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	return sh.RunV(binGo, "build", "-v", "-o", binaryPath(), cmdDir)
}

// Test runs all tests.
func Test() error {
	return sh.RunV(binGo, "test", "./...")
}

// Cover runs all tests and prints per-function coverage.
func Cover() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	profile := filepath.Join(binaryDir, coverFile)
	if err := sh.RunV(binGo, "test", "-coverprofile="+profile, "./..."); err != nil {
		return err
	}
	return sh.RunV(binGo, "tool", "cover", "-func="+profile)
}

// Lint runs golangci-lint.
func Lint() error {
	return sh.RunV("golangci-lint", "run", "./...")
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
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

// Demo builds foodblog, bootstraps a scratch database and searches it.
func Demo() error {
	mg.Deps(Build)
	dir, err := os.MkdirTemp("", "foodblog-demo")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	db := filepath.Join(dir, "food_blog.db")
	if err := sh.RunV(binaryPath(), "list", db, "meals"); err != nil {
		return err
	}
	fmt.Println("searching for milk and cacao at breakfast:")
	return sh.RunV(binaryPath(), db, "--ingredients", "milk,cacao", "--meals", "breakfast")
}

func binaryPath() string {
	return filepath.Join(binaryDir, binaryName)
}
