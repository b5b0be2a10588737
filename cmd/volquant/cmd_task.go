package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/foreverwb/volquant/internal/schema"
)

var (
	taskInput       string
	taskOutput      string
	taskReplay      bool
	taskEventWeek   bool
	taskConservative bool
	taskRIM         float64
	taskRIMSet      bool
	taskDTE         int
)

var taskCmd = &cobra.Command{
	Use:   "task",
	Short: "Run the full decision pipeline",
	Long: `Runs the full dataflow graph (feature calculation, signal scoring,
probability calibration, decision classification, strategy selection,
strike resolution, EV estimation, execution gate) and writes
full_analysis to -c. --replay is accepted and reserved for backtest
mode; it currently changes nothing in the core.`,
	RunE: runTask,
}

func init() {
	taskCmd.Flags().StringVarP(&taskInput, "input", "i", "", "input snapshot JSON path (required)")
	taskCmd.Flags().StringVarP(&taskOutput, "output", "c", "", "output session JSON path (required)")
	taskCmd.Flags().BoolVar(&taskReplay, "replay", false, "reserved for backtest mode; no effect on the core")
	taskCmd.Flags().BoolVar(&taskEventWeek, "event-week", false, "flag this session as an event week")
	taskCmd.Flags().BoolVar(&taskConservative, "conservative", false, "require the stricter conservative-mode probability floor")
	taskCmd.Flags().Float64Var(&taskRIM, "rim", 0, "realized/implied move ratio, if known")
	taskCmd.Flags().IntVar(&taskDTE, "dte", 30, "target days to expiration for strategy/strike/gate evaluation")
	taskCmd.MarkFlagRequired("input")
	taskCmd.MarkFlagRequired("output")
	rootCmd.AddCommand(taskCmd)
}

func runTask(cmd *cobra.Command, args []string) error {
	if cmd.Flags().Changed("rim") {
		taskRIMSet = true
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	cctx := schema.Context{
		IsEventWeek:      taskEventWeek,
		ConservativeMode: taskConservative,
		DTE:              taskDTE,
	}
	if taskRIMSet {
		cctx.RIM = &taskRIM
	}

	_, err = eng.orch.RunTask(context.Background(), taskInput, taskOutput, cctx, taskReplay)
	return err
}
