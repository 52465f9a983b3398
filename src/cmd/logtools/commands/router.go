// FILE: logtools/src/cmd/logtools/commands/router.go
package commands

import (
	"errors"
	"fmt"
	"io"

	"logtools/src/internal/config"

	"github.com/lixenwraith/log"
	"github.com/spf13/pflag"
)

// Handler defines the interface required for all subcommands.
type Handler interface {
	Execute(args []string) error
	Description() string
	Help() string
}

// Env carries what every command needs from main.
type Env struct {
	Config *config.Config
	Logger *log.Logger

	// Stdout receives command reports (help, version, plot summary).
	// Entry output goes through the sink selected by each command.
	Stdout io.Writer
	Stderr io.Writer
}

// UsageError reports a bad command line. It maps to exit code 2.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string {
	return e.Err.Error()
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

func usageErrorf(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err is, or wraps, a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// CommandRouter handles the routing of CLI arguments to the appropriate subcommand handler.
type CommandRouter struct {
	commands map[string]Handler
	env      *Env
}

// NewCommandRouter creates and initializes the command router with all available commands.
func NewCommandRouter(env *Env) *CommandRouter {
	router := &CommandRouter{
		commands: make(map[string]Handler),
		env:      env,
	}

	// Register available commands
	router.commands["grep"] = NewGrepCommand(env)
	router.commands["merge"] = NewMergeCommand(env)
	router.commands["sort"] = NewSortCommand(env)
	router.commands["offset"] = NewOffsetCommand(env)
	router.commands["uniq"] = NewUniqCommand(env)
	router.commands["plot"] = NewPlotCommand(env)
	router.commands["config"] = NewConfigCommand(env)
	router.commands["version"] = NewVersionCommand(env)
	router.commands["help"] = NewHelpCommand(router)

	return router
}

// Route executes the subcommand named by args[0] with the remaining
// arguments. A missing or unknown command is a usage error.
func (r *CommandRouter) Route(args []string) error {
	if len(args) == 0 {
		r.commands["help"].Execute(nil)
		return usageErrorf("no command given")
	}

	cmdName := args[0]
	handler, exists := r.commands[cmdName]
	if !exists {
		return usageErrorf("unknown command: %s\n\nRun 'logtools help' for usage", cmdName)
	}

	// Help flag before any "--" shows command-specific help
	for _, arg := range args[1:] {
		if arg == "--" {
			break
		}
		if arg == "--help" || (arg == "-h" && cmdName != "plot") {
			fmt.Fprint(r.env.Stdout, handler.Help())
			return nil
		}
	}

	return handler.Execute(args[1:])
}

// GetCommand returns a specific command handler by its name.
func (r *CommandRouter) GetCommand(name string) (Handler, bool) {
	cmd, exists := r.commands[name]
	return cmd, exists
}

// GetCommands returns a map of all registered commands.
func (r *CommandRouter) GetCommands() map[string]Handler {
	return r.commands
}

// parseFlags parses args with fs, turning flag errors into usage errors.
func parseFlags(fs *pflag.FlagSet, args []string) error {
	fs.SetOutput(io.Discard)
	if err := fs.Parse(args); err != nil {
		return &UsageError{Err: fmt.Errorf("%s: %w", fs.Name(), err)}
	}
	return nil
}
