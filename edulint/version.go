package edulint

import (
	"context"
	"fmt"
	"strings"
)

// Packages are the Python distributions the linter is built from.
var Packages = []string{"edulint", "pylint", "flake8"}

const versionScript = "import importlib.metadata as m, sys; print(m.version(sys.argv[1]))"

// Versions looks up installed package versions through a Python
// interpreter.
type Versions struct {
	python string
	runner *Runner
}

// NewVersions creates a lookup using python, "python3" when empty.
func NewVersions(python string, runner *Runner) *Versions {
	if python == "" {
		python = "python3"
	}
	if runner == nil {
		runner = NewRunner(nil)
	}
	return &Versions{python: python, runner: runner}
}

// Version returns the installed version of pkg.
func (v *Versions) Version(ctx context.Context, pkg string) (string, error) {
	out, err := v.runner.Run(ctx, []string{v.python, "-c", versionScript, pkg})
	if err != nil {
		return "", fmt.Errorf("version of %s: %w", pkg, err)
	}
	version := strings.TrimSpace(string(out.Stdout))
	if version == "" {
		return "", fmt.Errorf("version of %s: empty output", pkg)
	}
	return version, nil
}

// All returns the versions of every package that could be found.
func (v *Versions) All(ctx context.Context, pkgs ...string) map[string]string {
	found := make(map[string]string, len(pkgs))
	for _, pkg := range pkgs {
		if version, err := v.Version(ctx, pkg); err == nil {
			found[pkg] = version
		}
	}
	return found
}
