package cmd

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/gswatchdog/gswatchdog/internal/cmd"
	cmdopts "github.com/gswatchdog/gswatchdog/internal/cmd/options"
	"github.com/gswatchdog/gswatchdog/internal/cmd/output"
	"github.com/gswatchdog/gswatchdog/internal/config"
)

// ConfigCmd represents the 'config' command.
type ConfigCmd struct {
	*cmd.BaseCmd
	Format    cmd.OutputFormat
	cfgLoader config.Loader
}

// NewConfigCmd creates a newly configured (Cobra) command.
func NewConfigCmd(baseCmd *cmd.BaseCmd, opt ...cmdopts.CmdOption) (*cobra.Command, error) {
	opts, err := cmdopts.NewOptions(opt...)
	if err != nil {
		return nil, err
	}

	c := &ConfigCmd{
		BaseCmd:   baseCmd,
		Format:    cmd.FormatText,
		cfgLoader: opts.ConfigLoader,
	}

	cobraCommand := &cobra.Command{
		Use:   "config",
		Short: "Prints the effective configuration",
		Long: "Loads and validates the configuration from defaults, the config file, the env file and " +
			"the environment, then prints the result. The text format is valid TOML for the config file.",
		Args: cobra.NoArgs,
		RunE: c.run,
	}

	allowed := cmd.AllowedOutputFormats()
	cobraCommand.Flags().Var(
		&c.Format,
		cmd.FlagNameFormat,
		fmt.Sprintf("Specify the output format (one of: %s)", allowed.String()),
	)

	return cobraCommand, nil
}

func (c *ConfigCmd) run(cobraCmd *cobra.Command, _ []string) error {
	handler, err := cmd.NewHandler[config.Config](c.Format, cobraCmd.OutOrStdout(), output.PrinterFunc[config.Config](printConfig))
	if err != nil {
		return err
	}

	cfg, err := c.cfgLoader.Load()
	if err != nil {
		return handleFailure(handler, err)
	}

	return handler.HandleResult(*cfg)
}

func printConfig(w io.Writer, cfg config.Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}
