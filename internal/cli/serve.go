package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/roadwatch/triage/internal/engine"
	"github.com/roadwatch/triage/internal/model"
	"github.com/roadwatch/triage/internal/server"
	"github.com/spf13/cobra"
)

var (
	serveAddr     string
	serveStatic   string
	serveMaxConns int
	serveRate     float64
	serveBurst    int
	serveCacheTTL time.Duration
	serveNoCache  bool
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the incident analysis HTTP service",
	Long: `Serve exposes the analysis engine over HTTP:

  POST /ai-analysis   analyse an incident payload
  GET  /health        engine readiness marker

The endpoint accepts {"incident": {...}} and returns the full analysis -
authenticity and quality scores, red flags, recommendation, and reasoning -
under a {"status": "success", "analysis": ...} envelope.

Example:
  triage serve
  triage serve --addr :8080 --static ./build
  triage serve --rate 50 --burst 100 --no-cache`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	defaults := model.DefaultConfig()
	serveCmd.Flags().StringVar(&serveAddr, "addr", defaults.Server.Addr, "listen address")
	serveCmd.Flags().StringVar(&serveStatic, "static", "", "serve a frontend build from this directory")
	serveCmd.Flags().IntVar(&serveMaxConns, "max-conns", defaults.Server.MaxConnections, "max concurrent connections (0 = unlimited)")
	serveCmd.Flags().Float64Var(&serveRate, "rate", defaults.Server.RequestsPerSec, "per-client requests per second (0 = unlimited)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", defaults.Server.Burst, "per-client burst size")
	serveCmd.Flags().DurationVar(&serveCacheTTL, "cache-ttl", defaults.Cache.TTL, "response cache TTL")
	serveCmd.Flags().BoolVar(&serveNoCache, "no-cache", false, "disable response caching")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := model.DefaultConfig()
	cfg.Server.Addr = serveAddr
	cfg.Server.StaticDir = serveStatic
	cfg.Server.MaxConnections = serveMaxConns
	cfg.Server.RequestsPerSec = serveRate
	cfg.Server.Burst = serveBurst
	cfg.Cache.TTL = serveCacheTTL
	cfg.Cache.Enabled = !serveNoCache
	cfg.Output.Verbose = verbose

	eng := engine.New()

	if verbose {
		fmt.Fprintf(os.Stderr, "Engine: %s\n", eng.Status().Message)
		fmt.Fprintf(os.Stderr, "Cache: %v\n", cfg.Cache.Enabled)
		if cfg.Server.StaticDir != "" {
			fmt.Fprintf(os.Stderr, "Static dir: %s\n", cfg.Server.StaticDir)
		}
	}

	fmt.Fprintf(os.Stderr, "Listening on %s\n", cfg.Server.Addr)

	srv := server.New(eng, cfg)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}
