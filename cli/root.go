// Package cli wires the compiler into a cobra command line: vizforge
// compiles a declarative chart spec into its low-level rendering fragment.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/vizforge/vizforge/pkg/logger"
)

// RootCmd builds the root command with the shared logging flags.
func RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "vizforge",
		Short: "vizforge compiles declarative visualization specs",
		Long: "vizforge normalizes a declarative chart spec into canonical form and " +
			"compiles it into a low-level rendering fragment.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logLevel, logJSON, logSource, err := logger.GetLoggerConfig(cmd)
			if err != nil {
				return err
			}
			logger.SetupLogger(logLevel, logJSON, logSource)
			return nil
		},
	}

	cmd.PersistentFlags().String("log-level", "info", "Log level (debug, info, warn, error)")
	cmd.PersistentFlags().Bool("log-json", false, "Emit logs as JSON")
	cmd.PersistentFlags().Bool("log-source", false, "Include source locations in logs")

	cmd.AddCommand(CompileCmd())
	cmd.AddCommand(VersionCmd())
	return cmd
}
