//go:build mage

package main

import (
	"fmt"

	"github.com/magefile/mage/mg"
)

type Run mg.Namespace

// Builds and runs lumen with config.toml, reloading it on change.
func (Run) Lumen() error {
	mg.Deps(Build.Lumen)
	fmt.Println("Run lumen...")
	_, err := executeCmd(binary, withArgs("-config", "config.toml"), withStream())
	return err
}
