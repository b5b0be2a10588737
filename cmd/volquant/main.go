// Command volquant is the Options Volatility Decision Engine's CLI
// shell (spec.md §6.1, SPEC_FULL §5.9): the `cmd`, `updated`, `task`,
// and `monitor` subcommands, structured the way
// cmd/cryptorun/main.go builds its cobra root and subcommands.
package main

import (
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/foreverwb/volquant/internal/obslog"
)

var (
	verbose    bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "volquant",
	Short:   "Options volatility decision engine",
	Version: "0.1.0",
	Long: `volquant turns a per-symbol market microstructure snapshot into a
classified long-vol / short-vol / stand-aside decision, with a
concrete options strategy, resolved strikes, an expected-value
estimate, and an execution-gate verdict.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		obslog.Init(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config override file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}
