package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/foreverwb/volquant/internal/config"
	"github.com/foreverwb/volquant/internal/gexbot"
	"github.com/foreverwb/volquant/internal/schema"
)

var (
	cmdSymbol     string
	cmdDate       string
	cmdRuntimeDir string
	cmdContext    string
)

var initCmd = &cobra.Command{
	Use:   "cmd",
	Short: "Initialize the input/output session files for a symbol and date",
	Long: `Ensures inputs/{SYMBOL}_i_{date}.json exists (writing a null-valued
template when it doesn't, validating it when it does) and initializes
outputs/.../{SYMBOL}_o_{date}.json with a fresh updates=[] skeleton
and the current data-collection command list. Prints both paths.`,
	RunE: runCmd,
}

func init() {
	initCmd.Flags().StringVarP(&cmdSymbol, "symbol", "s", "", "ticker symbol (required)")
	initCmd.Flags().StringVarP(&cmdDate, "date", "d", "", "session date, YYYY-MM-DD (required)")
	initCmd.Flags().StringVar(&cmdRuntimeDir, "runtime-dir", "", "override the configured runtime directory")
	initCmd.Flags().StringVarP(&cmdContext, "context", "c", "", "optional free-form session context note, carried into neither file")
	initCmd.MarkFlagRequired("symbol")
	initCmd.MarkFlagRequired("date")
	rootCmd.AddCommand(initCmd)
}

func runCmd(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	inputsDir, outputsDir := cfg.Paths.InputsDir, cfg.Paths.OutputsDir
	if cmdRuntimeDir != "" {
		inputsDir = filepath.Join(cmdRuntimeDir, "inputs")
		outputsDir = filepath.Join(cmdRuntimeDir, "outputs")
	}

	inputPath := filepath.Join(inputsDir, fmt.Sprintf("%s_i_%s.json", cmdSymbol, cmdDate))
	outputPath := filepath.Join(outputsDir, fmt.Sprintf("%s_o_%s.json", cmdSymbol, cmdDate))

	if err := ensureInput(inputPath); err != nil {
		return err
	}

	obj, err := schema.LoadOrInit(outputPath, cmdSymbol, cmdDate)
	if err != nil {
		return err
	}
	obj.GexbotCommands = gexbot.Commands(cmdSymbol, gexbot.DefaultParams())
	if err := schema.Persist(outputPath, obj); err != nil {
		return err
	}

	fmt.Println(inputPath)
	fmt.Println(outputPath)
	return nil
}

// ensureInput writes a null-valued template when no input file exists
// yet, or validates the existing one in place (spec.md §6.1's `cmd`
// subcommand). A structurally invalid existing file is reported but
// left untouched, rather than overwritten.
func ensureInput(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		return os.WriteFile(path, schema.EmptyTemplate(cmdSymbol, cmdDate+"T00:00:00Z"), 0o644)
	}

	if _, verrs := schema.Validate(raw); verrs != nil {
		return fmt.Errorf("existing input file is invalid: %v", verrs)
	}
	return nil
}
