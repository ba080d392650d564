package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	cmdopts "github.com/gswatchdog/gswatchdog/internal/cmd/options"
	"github.com/gswatchdog/gswatchdog/internal/flags"
)

var version = "dev" // Set at build time using -ldflags

type createCmdFunc func(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error)

// Execute builds the root command and runs it against os.Args.
func Execute() error {
	baseCmd := &cmd.BaseCmd{}
	defer func() { _ = baseCmd.Close() }()

	rootCmd, err := NewRootCmd(baseCmd)
	if err != nil {
		return err
	}

	return rootCmd.Execute()
}

// NewRootCmd creates the root command. Without a subcommand it runs the watchdog, same as 'run'.
func NewRootCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	runCmd, err := newRunCmd(baseCmd, opt...)
	if err != nil {
		return nil, err
	}

	rootCmd := &cobra.Command{
		Use:           "gswatchdog [command]",
		Short:         "Restarts a game server container when it stops reporting a map.",
		Long:          longDescription(),
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version,
		Args:          cobra.NoArgs,
		RunE:          runCmd.run,
	}

	// Global flags
	flags.InitFlags(rootCmd.PersistentFlags())

	fns := []createCmdFunc{
		NewRunCmd,
		NewCheckCmd,
		NewConfigCmd,
	}

	for _, fn := range fns {
		tempCmd, err := fn(baseCmd, opt...)
		if err != nil {
			return nil, err
		}
		rootCmd.AddCommand(tempCmd)
	}

	return rootCmd, nil
}

func longDescription() string {
	return `gswatchdog periodically queries a game server and restarts its Docker container
once the server has failed to report a valid map for a configured number of
consecutive checks. After a restart, checks pause for a cooldown period.

Configuration is read from the environment (SERVER_HOST, SERVER_PORT, SERVER_TYPE,
UPDATE_INTERVAL, MAX_BAD_MAP_STREAK, RESTART_COOLDOWN, TARGET_CONTAINER_NAME, ...),
falling back to an optional .env file, an optional TOML config file and defaults.`
}
