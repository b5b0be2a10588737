package main

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	updatedInput  string
	updatedOutput string
)

var updatedCmd = &cobra.Command{
	Use:   "updated",
	Short: "Run the light regime-monitoring update path",
	Long: `Validates -i, runs FeatureCalculator(light) plus the regime-change
detector, appends an update record to -c, and persists. Never touches
probability, strategy, or strike components.`,
	RunE: runUpdated,
}

func init() {
	updatedCmd.Flags().StringVarP(&updatedInput, "input", "i", "", "input snapshot JSON path (required)")
	updatedCmd.Flags().StringVarP(&updatedOutput, "output", "c", "", "output session JSON path (required)")
	updatedCmd.MarkFlagRequired("input")
	updatedCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(updatedCmd)
}

func runUpdated(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}

	_, err = eng.orch.RunUpdate(context.Background(), updatedInput, updatedOutput)
	return err
}
