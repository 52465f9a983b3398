// FILE: logtools/src/cmd/logtools/main.go
package main

import (
	"os"
	"time"

	"logtools/src/cmd/logtools/commands"
	"logtools/src/internal/config"
	"logtools/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	os.Exit(run(os.Args[1:]))
}

// run executes one command and returns the process exit code:
// 0 on completion, 1 on a fatal error, 2 on a usage error.
func run(args []string) int {
	flagCfg, rest, err := ParseGlobalFlags(args)
	InitOutputHandler(flagCfg.Quiet)
	if err != nil {
		Error("Error: %v\n", err)
		return 2
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("LOGTOOLS_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.Load()
	if err != nil {
		Error("Failed to load config: %v\n", err)
		return 1
	}
	applyGlobalFlags(cfg, flagCfg)

	if err := initializeLogger(cfg); err != nil {
		Error("Failed to initialize logger: %v\n", err)
		return 1
	}
	defer shutdownLogger()

	logger.Debug("msg", "logtools starting",
		"version", version.Short(),
		"config_file", config.GetConfigPath(),
		"args", rest)

	router := commands.NewCommandRouter(&commands.Env{
		Config: cfg,
		Logger: logger,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})

	if err := router.Route(rest); err != nil {
		if commands.IsUsageError(err) {
			Error("Error: %v\n", err)
			return 2
		}
		logger.Error("msg", "Command failed", "error", err)
		Error("Error: %v\n", err)
		return 1
	}
	return 0
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
