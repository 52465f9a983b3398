// FILE: logtools/src/cmd/logtools/commands/config.go
package commands

import (
	"fmt"

	"logtools/src/internal/config"

	"github.com/spf13/pflag"
)

// ConfigCommand writes the effective configuration as TOML.
type ConfigCommand struct {
	env *Env
}

func NewConfigCommand(env *Env) *ConfigCommand {
	return &ConfigCommand{env: env}
}

func (c *ConfigCommand) Execute(args []string) error {
	var defaults bool

	fs := pflag.NewFlagSet("config", pflag.ContinueOnError)
	fs.BoolVar(&defaults, "defaults", false, "Write the built-in defaults instead of the effective configuration")

	if err := parseFlags(fs, args); err != nil {
		return err
	}
	path, err := requiredArg(fs, "output path")
	if err != nil {
		return err
	}

	cfg := c.env.Config
	if defaults {
		cfg = config.Default()
	}
	if err := cfg.SaveToFile(path); err != nil {
		return err
	}

	c.env.Logger.Info("msg", "Configuration written",
		"component", "config",
		"path", path,
		"defaults", defaults)
	fmt.Fprintf(c.env.Stdout, "Configuration written to %s\n", path)
	return nil
}

func (c *ConfigCommand) Description() string {
	return "Write the effective configuration to a TOML file"
}

func (c *ConfigCommand) Help() string {
	return fmt.Sprintf(`Config Command - Write the configuration as TOML

Usage:
  logtools config [--defaults] <path>

Writes the configuration currently in effect (defaults, file and
environment combined) to path. The result can be edited and placed at
%s, or selected with LOGTOOLS_CONFIG_FILE or -c.

Options:
      --defaults               Write the built-in defaults instead

Examples:
  logtools config --defaults ~/.config/logtools.toml
`, config.GetConfigPath())
}
