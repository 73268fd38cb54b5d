//go:build mage

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Build compiles the CLI binary into bin/, stamping the version from git.
func Build() error {
	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", binDir, err)
	}

	version, err := sh.Output("git", "describe", "--tags", "--always", "--dirty")
	if err != nil {
		version = "dev"
	}

	out := filepath.Join(binDir, binName)
	if err := sh.RunV("go", "build",
		"-ldflags", fmt.Sprintf("-X main.version=%s", version),
		"-o", out, cmdPkg); err != nil {
		return fmt.Errorf("go build: %w", err)
	}
	fmt.Printf("Built %s (%s)\n", out, version)
	return nil
}

// bin returns the built binary path, building it first.
func bin() (string, error) {
	out := filepath.Join(binDir, binName)
	if _, err := os.Stat(out); os.IsNotExist(err) {
		if err := Build(); err != nil {
			return "", err
		}
	}
	return out, nil
}

// runStage invokes one CLI subcommand against the default data directory.
func runStage(stage string, args ...string) error {
	cli, err := bin()
	if err != nil {
		return err
	}
	return sh.RunV(cli, append([]string{stage}, args...)...)
}

// Scrape fetches the HTML catalogs into data/raw/.
func Scrape() error {
	mg.Deps(Init)
	return runStage("scrape")
}

// Convert extracts the PDF catalogs into data/raw/.
func Convert() error {
	mg.Deps(Init)
	return runStage("convert")
}

// Clean normalizes raw records into data/clean/.
func Clean() error {
	return runStage("clean")
}

// Combine merges and deduplicates clean records into data/combined/.
func Combine() error {
	return runStage("combine")
}

// Export writes the CSV and JSON exports under data/csv/.
func Export() error {
	return runStage("export")
}

// Report prints dataset statistics and validates invariants.
func Report() error {
	return runStage("stats", "--check")
}

// Pipeline runs every stage in order over the default data directory.
func Pipeline() error {
	mg.SerialDeps(Scrape, Convert, Clean, Combine, Export, Report)
	return nil
}
