package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/caseharbor/placement-cli/internal/directory"
	"github.com/caseharbor/placement-cli/internal/model"
	"github.com/caseharbor/placement-cli/internal/profile"
)

var (
	servePort       int
	serveCandidates string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the matching HTTP API",
	Long: `Exposes the matcher over HTTP:

  POST /v1/match     score candidates for a profile
  GET  /v1/patterns  recommendation frequency over retained history
  GET  /health       liveness probe

When --candidates is given the file is loaded once at startup and used
for requests that carry no candidate list of their own.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "server port (default from config)")
	serveCmd.Flags().StringVar(&serveCandidates, "candidates", "", "candidate program file served as the default candidate list")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var defaults []model.Program
	if serveCandidates != "" {
		var err error
		defaults, err = directory.LoadPrograms(serveCandidates)
		if err != nil {
			return err
		}
		zap.L().Info("loaded default candidates",
			zap.String("file", serveCandidates),
			zap.Int("programs", len(defaults)),
		)
	}

	env, err := initEngine(ctx)
	if err != nil {
		return err
	}
	defer env.Close()

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))
	r.Use(rateLimit(rate.NewLimiter(rate.Limit(cfg.Server.RateLimit), cfg.Server.RateBurst)))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Post("/v1/match", handleMatch(env, defaults))

	r.Get("/v1/patterns", func(w http.ResponseWriter, req *http.Request) {
		patterns, err := env.Recorder.AnalyzePatterns(req.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "pattern analysis failed"})
			return
		}
		writeJSON(w, http.StatusOK, patterns)
	})

	port := servePort
	if port == 0 {
		port = cfg.Server.Port
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: r,
	}

	go func() {
		<-ctx.Done()
		zap.L().Info("shutting down server")
		srv.Shutdown(ctx)
	}()

	zap.L().Info("starting server", zap.Int("port", port))
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "serve: listen")
	}

	return nil
}

// matchRequest is the POST /v1/match body. The profile is loosely shaped
// and normalized through the profile builder; candidates fall back to the
// server's default list when omitted.
type matchRequest struct {
	Profile    map[string]any  `json:"profile"`
	Candidates []model.Program `json:"candidates"`
	Limit      int             `json:"limit"`
}

func handleMatch(env *matchEnv, defaults []model.Program) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req matchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
			return
		}
		if req.Profile == nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "profile is required"})
			return
		}

		candidates := req.Candidates
		if len(candidates) == 0 {
			candidates = defaults
		}
		if len(candidates) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "no candidates supplied and no default candidate list configured"})
			return
		}

		p := profile.FromRaw(req.Profile)
		bundle := env.Engine.Recommend(r.Context(), p, candidates, req.Limit)
		writeJSON(w, http.StatusOK, bundle)
	}
}

// rateLimit applies one shared token bucket across all clients.
func rateLimit(limiter *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				writeJSON(w, http.StatusTooManyRequests, map[string]string{"error": "rate limit exceeded"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.L().Warn("serve: write response", zap.Error(err))
	}
}
