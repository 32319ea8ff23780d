//go:build mage

package main

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// rawFiles globs the downloaded partition files.
func rawFiles() ([]string, error) {
	files, err := filepath.Glob("corpus/raw/*.conll")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no partition files in corpus/raw/ (run fetch first)")
	}
	return files, nil
}

// run executes the built CLI binary with the given arguments.
func run(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	return cmd.Run()
}

// Validate checks all downloaded partition files for format problems.
func Validate() error {
	mg.Deps(Build)
	files, err := rawFiles()
	if err != nil {
		return err
	}
	return run(append([]string{"validate"}, files...)...)
}

// Convert produces JSON copies of all downloaded partition files in corpus/json/.
func Convert() error {
	mg.Deps(Build)
	files, err := rawFiles()
	if err != nil {
		return err
	}
	args := []string{"convert", "--to", "json", "--output-dir", "corpus/json"}
	return run(append(args, files...)...)
}

// Index ingests all downloaded partition files into the corpus index.
func Index() error {
	mg.Deps(Build)
	files, err := rawFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		part := filepath.Base(f)
		part = part[:len(part)-len(filepath.Ext(part))]
		args := []string{"corpus", "store", "--partition", part, f}
		if err := run(args...); err != nil {
			return err
		}
	}
	return nil
}

// Report prints label statistics for each downloaded partition file.
func Report() error {
	mg.Deps(Build)
	files, err := rawFiles()
	if err != nil {
		return err
	}
	for _, f := range files {
		part := filepath.Base(f)
		part = part[:len(part)-len(filepath.Ext(part))]
		fmt.Printf("=== %s ===\n", part)
		if err := run("stats", "--partition", part, f); err != nil {
			return err
		}
	}
	return nil
}
