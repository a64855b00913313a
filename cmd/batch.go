package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync/atomic"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/caseharbor/placement-cli/internal/directory"
	"github.com/caseharbor/placement-cli/internal/model"
)

var batchCmd = &cobra.Command{
	Use:   "batch [profile files...]",
	Short: "Match many client profiles against one candidate list",
	Long: `Runs the matcher for every profile file concurrently against a shared
candidate list. Each result is written as JSON next to its profile file
(or into --out-dir) as <profile>.recommendations.json. History writes are
serialized internally, so concurrent runs never lose records.

Example:
  batch --candidates programs.yaml --concurrency 8 intake/*.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func init() {
	f := batchCmd.Flags()
	f.String("candidates", "", "candidate program file (.json, .yaml or .xlsx)")
	f.Int("limit", 0, "max recommendations per profile (0=use config default)")
	f.Int("concurrency", 4, "max profiles matched in parallel")
	f.String("out-dir", "", "directory for result files (default: next to each profile)")
	_ = batchCmd.MarkFlagRequired("candidates")

	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	candidatesPath, _ := cmd.Flags().GetString("candidates")
	limit, _ := cmd.Flags().GetInt("limit")
	concurrency, _ := cmd.Flags().GetInt("concurrency")
	outDir, _ := cmd.Flags().GetString("out-dir")

	if concurrency < 1 {
		concurrency = 1
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

	zap.L().Info("processing batch",
		zap.Int("profiles", len(args)),
		zap.Int("candidates", len(candidates)),
		zap.Int("concurrency", concurrency),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	var succeeded, failed atomic.Int64

	for _, path := range args {
		path := path
		g.Go(func() error {
			log := zap.L().With(zap.String("profile_file", path))

			if err := matchOne(gctx, env, path, candidates, limit, outDir); err != nil {
				failed.Add(1)
				log.Error("match failed", zap.Error(err))
				return nil // don't abort the batch on individual failure
			}

			succeeded.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return eris.Wrap(err, "batch: processing")
	}

	zap.L().Info("batch complete",
		zap.Int64("succeeded", succeeded.Load()),
		zap.Int64("failed", failed.Load()),
	)
	fmt.Printf("Batch complete: %d succeeded, %d failed\n", succeeded.Load(), failed.Load())

	if failed.Load() > 0 {
		return eris.Errorf("batch: %d of %d profiles failed", failed.Load(), len(args))
	}
	return nil
}

func matchOne(ctx context.Context, env *matchEnv, profilePath string, candidates []model.Program, limit int, outDir string) error {
	p, err := directory.LoadProfile(profilePath)
	if err != nil {
		return err
	}

	bundle := env.Engine.Recommend(ctx, p, candidates, limit)

	out := resultPath(profilePath, outDir)
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return eris.Wrap(err, "batch: encode result")
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return eris.Wrapf(err, "batch: write result %s", out)
	}
	return nil
}

func resultPath(profilePath, outDir string) string {
	base := strings.TrimSuffix(filepath.Base(profilePath), filepath.Ext(profilePath))
	name := base + ".recommendations.json"
	if outDir != "" {
		return filepath.Join(outDir, name)
	}
	return filepath.Join(filepath.Dir(profilePath), name)
}
