// Package installer hands a downloaded package to the platform's installer.
package installer

import (
	"context"
	"os/exec"
	"runtime"
	"strings"

	"github.com/appupdater/cli/internal/download"
	oerrors "github.com/appupdater/cli/internal/errors"
	"github.com/appupdater/cli/internal/output"
)

const (
	// PlaceholderPath is replaced with the package's local path.
	PlaceholderPath = "{path}"

	// PlaceholderURI is replaced with the package's file:// URI.
	PlaceholderURI = "{uri}"
)

// Installer launches installation of a downloaded package.
type Installer interface {
	Install(ctx context.Context, pkg *download.Package) error
}

// Starter launches a process without waiting for it.
type Starter func(ctx context.Context, name string, args ...string) error

// CommandInstaller opens the package with an external command.
// The launched process is not awaited.
type CommandInstaller struct {
	Command string
	Args    []string

	start Starter
}

// DefaultCommand returns the platform "open" command for goos.
func DefaultCommand(goos string) (string, []string) {
	switch goos {
	case "darwin":
		return "open", []string{PlaceholderPath}
	case "windows":
		return "rundll32", []string{"url.dll,FileProtocolHandler", PlaceholderPath}
	default:
		return "xdg-open", []string{PlaceholderURI}
	}
}

// NewCommandInstaller creates an installer for command. An empty command
// selects the platform default. Args without placeholders get the path appended.
func NewCommandInstaller(command string, args []string) *CommandInstaller {
	if strings.TrimSpace(command) == "" {
		command, args = DefaultCommand(runtime.GOOS)
	}
	return &CommandInstaller{Command: command, Args: args, start: startDetached}
}

// WithStarter replaces the process launcher.
func (c *CommandInstaller) WithStarter(s Starter) *CommandInstaller {
	c.start = s
	return c
}

// Install issues the handoff and returns once the process has started.
func (c *CommandInstaller) Install(ctx context.Context, pkg *download.Package) error {
	if pkg == nil || pkg.Path == "" {
		return oerrors.Wrap(oerrors.ErrInstallerHandoff, nil, "no package to install")
	}

	uri := pkg.URI
	if uri == "" {
		uri = download.FileURI(pkg.Path)
	}
	args := ExpandArgs(c.Args, pkg.Path, uri)

	output.Debug("launching installer", "command", c.Command, "args", args)
	if err := c.start(ctx, c.Command, args...); err != nil {
		return oerrors.Wrap(oerrors.ErrInstallerHandoff, err, "launching "+c.Command)
	}
	return nil
}

// ExpandArgs substitutes placeholders in args. When none is present the
// path is appended as the last argument.
func ExpandArgs(args []string, path, uri string) []string {
	out := make([]string, 0, len(args)+1)
	found := false
	for _, a := range args {
		if strings.Contains(a, PlaceholderPath) || strings.Contains(a, PlaceholderURI) {
			found = true
		}
		a = strings.ReplaceAll(a, PlaceholderPath, path)
		a = strings.ReplaceAll(a, PlaceholderURI, uri)
		out = append(out, a)
	}
	if !found {
		out = append(out, path)
	}
	return out
}

func startDetached(_ context.Context, name string, args ...string) error {
	// The installer outlives this process, so it is not bound to ctx.
	cmd := exec.Command(name, args...)
	if err := cmd.Start(); err != nil {
		return err
	}
	return cmd.Process.Release()
}
