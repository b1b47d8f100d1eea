package cli

import (
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jokarl/banlist/internal/config"
	"github.com/jokarl/banlist/internal/server"
	"github.com/jokarl/banlist/internal/validator"
)

var addrFlag string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP validation service",
	Long: `Serve validation over HTTP:

  POST /v1/validate  {"text": "...", "validators": [{"name", "on_fail", "args"}]}
  POST /v1/match     {"pattern": "...", "text": "...", "max_l_dist": 1}
  GET  /health
  GET  /metrics      Prometheus metrics

Requests without validators use the ones configured in ` + config.FileName + `.
The server shuts down gracefully on SIGINT or SIGTERM.`,
	Args: withUsage(cobra.NoArgs),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&addrFlag, "addr", "", "Listen address (default from config, :8080)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log := logger.Named("server")

	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}

	engine, err := cfg.BuildEngine(validator.DefaultRegistry, log)
	if errors.Is(err, config.ErrNoValidators) {
		log.Warn("no validators configured, requests must name their validators")
		engine = nil
	} else if err != nil {
		return err
	}

	addr := cfg.Server.Addr
	if addrFlag != "" {
		addr = addrFlag
	}

	srv := server.NewServer(server.Options{
		Engine:       engine,
		Registry:     validator.DefaultRegistry,
		Registerer:   prometheus.DefaultRegisterer,
		Gatherer:     prometheus.DefaultGatherer,
		Logger:       log,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	})

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Start(ctx, addr)
}
