package main

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/caseharbor/placement-cli/internal/directory"
	"github.com/caseharbor/placement-cli/internal/model"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Rank candidate programs for a client profile",
	Long: `Scores every candidate program against the profile and prints the
ranked recommendations, insights and alternative-search suggestions.

Examples:
  # Top 10 matches as a table
  match --profile client.json --candidates programs.yaml

  # Top 3 as JSON
  match --profile client.json --candidates programs.xlsx --limit 3 --format json`,
	RunE: runMatch,
}

func init() {
	f := matchCmd.Flags()
	f.String("profile", "", "client profile file (.json or .yaml)")
	f.String("candidates", "", "candidate program file (.json, .yaml or .xlsx)")
	f.Int("limit", 0, "max recommendations (0=use config default)")
	f.String("format", "table", "output format: table or json")
	_ = matchCmd.MarkFlagRequired("profile")
	_ = matchCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	profilePath, _ := cmd.Flags().GetString("profile")
	candidatesPath, _ := cmd.Flags().GetString("candidates")
	limit, _ := cmd.Flags().GetInt("limit")
	format, _ := cmd.Flags().GetString("format")

	if format != "table" && format != "json" {
		return eris.Errorf("match: --format must be table or json (got %q)", format)
	}

	p, err := directory.LoadProfile(profilePath)
	if err != nil {
		return err
	}
	candidates, err := directory.LoadPrograms(candidatesPath)
	if err != nil {
		return err
	}

	env, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	zap.L().Info("matching",
		zap.String("profile_id", p.ID),
		zap.Int("candidates", len(candidates)),
	)

	bundle := env.Engine.Recommend(ctx, p, candidates, limit)

	if format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(bundle)
	}

	printBundle(bundle)
	return nil
}

func printBundle(b *model.RecommendationBundle) {
	if len(b.Matches) == 0 {
		fmt.Println("No matching programs.")
	} else {
		fmt.Printf("%-4s %-20s %-40s %6s %11s\n", "Rank", "ID", "Name", "Score", "Confidence")
		fmt.Println(strings.Repeat("-", 85))
		for i, m := range b.Matches {
			name := m.Program.Name
			if len(name) > 40 {
				name = name[:37] + "..."
			}
			fmt.Printf("%-4d %-20s %-40s %6d %11d\n", i+1, m.Program.ID, name, m.Score, m.Confidence)
		}
	}

	if len(b.Insights) > 0 {
		fmt.Println("\nInsights:")
		for _, ins := range b.Insights {
			fmt.Printf("  [%s] %s\n", ins.Type, ins.Message)
		}
	}
	if len(b.Alternatives) > 0 {
		fmt.Println("\nAlternatives:")
		for _, alt := range b.Alternatives {
			fmt.Printf("  [%s] %s\n", alt.Type, alt.Suggestion)
		}
	}
}
