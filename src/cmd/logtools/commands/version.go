// FILE: logtools/src/cmd/logtools/commands/version.go
package commands

import (
	"fmt"

	"logtools/src/internal/version"
)

// VersionCommand handles version display
type VersionCommand struct {
	env *Env
}

// NewVersionCommand creates a new version command
func NewVersionCommand(env *Env) *VersionCommand {
	return &VersionCommand{env: env}
}

func (c *VersionCommand) Execute(args []string) error {
	fmt.Fprintln(c.env.Stdout, version.String())
	return nil
}

func (c *VersionCommand) Description() string {
	return "Show version information"
}

func (c *VersionCommand) Help() string {
	return `Version Command - Show logtools version information

Usage:
  logtools version

Output includes:
  - Version number
  - Git commit hash
  - Build time
`
}
