//go:build mage

package main

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binaryName = "srt2anki"
	mainPath   = "./cmd/srt2anki"
)

// Default target to run when none is specified
var Default = Build

// Build builds the srt2anki binary
func Build() error {
	return sh.RunV("go", "build", "-o", binaryName, mainPath)
}

// Install installs srt2anki into GOPATH/bin
func Install() error {
	mg.Deps(Test)
	return sh.RunV("go", "install", mainPath)
}

// Test runs all tests
func Test() error {
	return sh.RunV("go", "test", "./...")
}

// Vet runs go vet
func Vet() error {
	return sh.RunV("go", "vet", "./...")
}

// Fmt formats the source code
func Fmt() error {
	return sh.RunV("gofmt", "-s", "-w", ".")
}

// Run builds and runs srt2anki on the subtitle file given in SRT
func Run() error {
	mg.Deps(Build)
	srt := os.Getenv("SRT")
	if srt == "" {
		return errors.New("set SRT to the subtitle file to convert")
	}
	return sh.RunV("./"+binaryName, srt, "--name", "example", "--summary")
}

// Clean removes the binary and generated decks
func Clean() error {
	if err := sh.Rm(binaryName); err != nil {
		return err
	}
	matches, err := filepath.Glob("*.apkg")
	if err != nil {
		return err
	}
	for _, match := range matches {
		if err := sh.Rm(match); err != nil {
			return err
		}
	}
	return nil
}
