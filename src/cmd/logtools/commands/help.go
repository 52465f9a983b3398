// FILE: logtools/src/cmd/logtools/commands/help.go
package commands

import (
	"fmt"
	"sort"
	"strings"
)

// generalHelpTemplate is the default help message shown when no specific command is requested.
const generalHelpTemplate = `logtools: tools for multi-line, timestamped log entries.

Usage:
  logtools [global options] <command> [options] [args]

Commands:
%s

Global Options:
  -c, --config <path>      Path to configuration file (default: ~/.config/logtools.toml)
  -q, --quiet              Suppress diagnostics and error messages
      --debug              Log debug diagnostics to stderr

For command-specific help:
  logtools help <command>
  logtools <command> --help

Configuration Sources (Precedence: CLI > Env > File > Defaults):
  - Command flags override all other settings
  - LOGTOOLS_* environment variables override file settings
  - TOML configuration file holds shared defaults

Examples:
  # Merge every log below /var/log/app, labeled with the parent directory
  logtools merge -S /var/log/app

  # Entries mentioning "timeout" but not "retry"
  logtools grep -f timeout -F retry app.log

  # Requests per second chart
  logtools plot -o rate.svg app.log
`

// HelpCommand handles the display of general or command-specific help messages.
type HelpCommand struct {
	router *CommandRouter
}

// NewHelpCommand creates a new help command handler.
func NewHelpCommand(router *CommandRouter) *HelpCommand {
	return &HelpCommand{router: router}
}

// Execute displays the appropriate help message based on the provided arguments.
func (c *HelpCommand) Execute(args []string) error {
	out := c.router.env.Stdout

	// Check if help is requested for a specific command
	if len(args) > 0 && args[0] != "" {
		cmdName := args[0]

		if handler, exists := c.router.GetCommand(cmdName); exists {
			fmt.Fprint(out, handler.Help())
			return nil
		}

		return usageErrorf("unknown command: %s", cmdName)
	}

	// Display general help with command list
	fmt.Fprintf(out, generalHelpTemplate, c.formatCommandList())
	return nil
}

// Description returns a brief one-line description of the command.
func (c *HelpCommand) Description() string {
	return "Display help information"
}

// Help returns the detailed help text for the 'help' command itself.
func (c *HelpCommand) Help() string {
	return `Help Command - Display help information

Usage:
  logtools help              Show general help
  logtools help <command>    Show help for a specific command

Examples:
  logtools help              # Show general help
  logtools help merge        # Show merge command help
  logtools merge --help      # Alternative way to get command help
`
}

// formatCommandList creates a formatted and aligned list of all available commands.
func (c *HelpCommand) formatCommandList() string {
	commands := c.router.GetCommands()

	// Sort command names for consistent output
	names := make([]string, 0, len(commands))
	maxLen := 0
	for name := range commands {
		names = append(names, name)
		if len(name) > maxLen {
			maxLen = len(name)
		}
	}
	sort.Strings(names)

	// Format each command with aligned descriptions
	var lines []string
	for _, name := range names {
		handler := commands[name]
		padding := strings.Repeat(" ", maxLen-len(name)+2)
		lines = append(lines, fmt.Sprintf("  %s%s%s", name, padding, handler.Description()))
	}

	return strings.Join(lines, "\n")
}
