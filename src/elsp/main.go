package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/uber/embedded-lsp/src/elsp/app"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"
)

// flagEnv maps command line flags onto the environment variables read while loading configuration.
var flagEnv = map[string]string{
	"config-dir":  "ELSP_CONFIG_DIR",
	"address":     "ELSP_ADDRESS",
	"environment": "ELSP_ENVIRONMENT",
}

func opts() fx.Option {
	return fx.Options(
		app.Module,
		fx.WithLogger(newFxLogger),
	)
}

// newFxLogger sends container lifecycle events to the configured log outputs.
func newFxLogger(logger *zap.Logger) fxevent.Logger {
	return &fxevent.ZapLogger{Logger: logger.Named("fx")}
}

func newRootCommand(run func()) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "elsp",
		Short:        "Language server for files that embed other languages",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := applyFlags(cmd.Flags()); err != nil {
				return err
			}
			run()
			return nil
		},
	}
	cmd.Flags().String("config-dir", "", "directory holding meta.yaml (default src/elsp/config)")
	cmd.Flags().String("address", "", "host:port to accept LSP connections on; port 0 picks a free port")
	cmd.Flags().String("environment", "", "configuration environment, local or development")
	return cmd
}

// applyFlags exports every flag given on the command line to its environment variable.
func applyFlags(flags *pflag.FlagSet) error {
	var err error
	flags.Visit(func(f *pflag.Flag) {
		if name, ok := flagEnv[f.Name]; ok && err == nil {
			err = os.Setenv(name, f.Value.String())
		}
	})
	return err
}

func main() {
	cmd := newRootCommand(func() { fx.New(opts()).Run() })
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
