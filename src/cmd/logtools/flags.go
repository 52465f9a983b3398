// FILE: logtools/src/cmd/logtools/flags.go
package main

import (
	"fmt"
	"strings"

	"logtools/src/internal/config"
)

// GlobalFlags are accepted in front of the command name. --debug and
// --quiet are also accepted anywhere before a "--" argument.
type GlobalFlags struct {
	ConfigFile string
	Quiet      bool
	Debug      bool
}

// ParseGlobalFlags removes the global flags from args and returns the rest,
// starting with the command name.
func ParseGlobalFlags(args []string) (GlobalFlags, []string, error) {
	var flags GlobalFlags
	rest := make([]string, 0, len(args))

	commandSeen := false
	for i := 0; i < len(args); i++ {
		arg := args[i]

		if arg == "--" {
			rest = append(rest, args[i:]...)
			break
		}

		switch {
		case arg == "--debug" || arg == "--print-debug":
			flags.Debug = true
			continue
		case arg == "--quiet" || (arg == "-q" && !commandSeen):
			flags.Quiet = true
			continue
		}

		if !commandSeen {
			switch {
			case arg == "-c" || arg == "--config":
				if i+1 >= len(args) {
					return flags, nil, fmt.Errorf("%s requires a path", arg)
				}
				i++
				flags.ConfigFile = args[i]
				continue
			case strings.HasPrefix(arg, "--config="):
				flags.ConfigFile = strings.TrimPrefix(arg, "--config=")
				continue
			case arg == "-h" || arg == "--help":
				arg = "help"
			case arg == "-v" || arg == "--version":
				arg = "version"
			case strings.HasPrefix(arg, "-") && arg != "-":
				return flags, nil, fmt.Errorf("unknown global option: %s", arg)
			}
			commandSeen = true
		}

		rest = append(rest, arg)
	}

	return flags, rest, nil
}

// applyGlobalFlags lets the global flags override the loaded logging settings.
func applyGlobalFlags(cfg *config.Config, flags GlobalFlags) {
	if cfg.Logging == nil {
		cfg.Logging = config.DefaultLogConfig()
	}
	if flags.Debug {
		cfg.Logging.Level = "debug"
	}
	if flags.Quiet {
		cfg.Logging.Output = "none"
	}
}
