package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
)

var patternsCmd = &cobra.Command{
	Use:   "patterns",
	Short: "Show recommendation frequency over retained history",
	Long: `Aggregates how often each program was recommended across the
de-identified history window (30 days by default). Diagnostic only; the
counts never feed back into scoring.`,
	RunE: runPatterns,
}

func init() {
	patternsCmd.Flags().String("format", "table", "output format: table or json")
	rootCmd.AddCommand(patternsCmd)
}

func runPatterns(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	format, _ := cmd.Flags().GetString("format")

	env, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	patterns, err := env.Recorder.AnalyzePatterns(ctx)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(patterns)
	}

	if len(patterns) == 0 {
		fmt.Println("No history retained.")
		return nil
	}

	fmt.Printf("%-30s %s\n", "Program", "Recommendations")
	fmt.Println(strings.Repeat("-", 46))
	for _, pc := range patterns {
		fmt.Printf("%-30s %d\n", pc.ProgramID, pc.Count)
	}
	return nil
}
