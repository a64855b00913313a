package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/caseharbor/placement-cli/internal/directory"
	"github.com/caseharbor/placement-cli/internal/model"
)

var scoreCmd = &cobra.Command{
	Use:   "score",
	Short: "Score a single program against a client profile",
	Long: `Scores one program from the candidate file against the profile and
prints the weighted score, the per-factor breakdown and the confidence
estimate. No history is recorded.

Example:
  score --profile client.json --candidates programs.json --program prog-a`,
	RunE: runScore,
}

func init() {
	f := scoreCmd.Flags()
	f.String("profile", "", "client profile file (.json or .yaml)")
	f.String("candidates", "", "candidate program file (.json, .yaml or .xlsx)")
	f.String("program", "", "program id to score")
	f.String("format", "table", "output format: table or json")
	_ = scoreCmd.MarkFlagRequired("profile")
	_ = scoreCmd.MarkFlagRequired("candidates")
	_ = scoreCmd.MarkFlagRequired("program")

	rootCmd.AddCommand(scoreCmd)
}

func runScore(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profilePath, _ := cmd.Flags().GetString("profile")
	candidatesPath, _ := cmd.Flags().GetString("candidates")
	programID, _ := cmd.Flags().GetString("program")
	format, _ := cmd.Flags().GetString("format")

	p, err := directory.LoadProfile(profilePath)
	if err != nil {
		return err
	}
	candidates, err := directory.LoadPrograms(candidatesPath)
	if err != nil {
		return err
	}

	var prog *model.Program
	for i := range candidates {
		if candidates[i].ID == programID {
			prog = &candidates[i]
			break
		}
	}
	if prog == nil {
		return eris.Errorf("score: program %q not found in %s", programID, candidatesPath)
	}

	env, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	result := env.Engine.Score(p, prog)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	fmt.Printf("Program:    %s (%s)\n", prog.Name, prog.ID)
	fmt.Printf("Score:      %d / 100\n", result.Score)
	fmt.Printf("Confidence: %d / 100\n", result.Confidence)
	fmt.Println("\nBreakdown:")
	for _, factor := range []string{
		model.FactorInsurance, model.FactorLocation, model.FactorServices,
		model.FactorAge, model.FactorGender,
	} {
		fs, ok := result.Breakdown[factor]
		switch {
		case !ok, !fs.Applicable:
			fmt.Printf("  %-10s not applicable\n", factor)
		default:
			fmt.Printf("  %-10s %.2f\n", factor, fs.Value)
		}
	}
	return nil
}
