//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
)

type Build mg.Namespace

// Compiles cmd/lumen into bin/lumen.
func (Build) Lumen() error {
	_, err := executeCmd("go", withArgs("build", "-o", binary, "./cmd/lumen"), withStream())
	return err
}

// Runs go vet over every package.
func (Build) Vet() error {
	_, err := executeCmd("go", withArgs("vet", "./..."), withStream())
	return err
}

// Runs the test suite with the race detector.
func (Build) Test() error {
	_, err := executeCmd("go", withArgs("test", "-race", "./..."), withStream())
	return err
}

// Removes build output.
func (Build) Clean() error {
	return os.RemoveAll("bin")
}
