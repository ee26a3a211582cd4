package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fredcamaral/mdpptx/internal/adapters/primary/http"
	"github.com/fredcamaral/mdpptx/internal/adapters/secondary/config"
	"github.com/fredcamaral/mdpptx/internal/domain/entities"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve conversions over HTTP",
	Long: `Start an HTTP server that converts markdown into presentations.

Endpoints:
  POST /api/convert   JSON {"template", "documents": [{"name", "content"}]}
                      or a raw markdown body with ?template=
  GET  /api/themes    available templates
  GET  /api/stats     conversion counters
  GET  /health        liveness

Example:
  mdpptx serve --port 8080
  curl --data-binary @talk.md "localhost:8080/api/convert?template=modern" -o talk.pptx`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	// Defaults come from the config files; flags only override when set
	serveCmd.Flags().IntP(config.FlagPort, "p", 0, "Port to serve on (overrides config)")
	serveCmd.Flags().String(config.FlagHost, "", "Host to bind to (overrides config)")
	serveCmd.Flags().StringP(config.FlagTemplate, "t", "", "Template used when a request names none")
}

// validateServeConfig validates configuration after it's loaded
func validateServeConfig(cfg *entities.Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid port number: %d", cfg.Server.Port)
	}
	if strings.TrimSpace(cfg.Server.Host) == "" || strings.ContainsAny(cfg.Server.Host, " !") {
		return fmt.Errorf("invalid host: %q", cfg.Server.Host)
	}
	return nil
}

func runServe(cmd *cobra.Command, _ []string) error {
	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	cfg, err := loadConfig(cmd, workingDir)
	if err != nil {
		return err
	}
	if err := validateServeConfig(cfg); err != nil {
		return err
	}

	a, err := newApp(cfg)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a.monitor.Start(ctx, 30*time.Second)
	defer a.monitor.Stop()

	defaults := cfg.Conversion.Options()
	server := http.NewServer(a.converter, a.themes, cfg.Server,
		http.WithLogger(a.logs.GetLogger("http")),
		http.WithConversionDefaults(defaults),
		http.WithMonitor(a.monitor),
	)

	a.logger.Info("serving conversions",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"template", defaults.TemplateName(),
		"environment", cfg.Server.Environment,
	)
	fmt.Fprintf(cmd.OutOrStdout(), "listening on http://%s:%d\n", cfg.Server.Host, cfg.Server.Port)

	return server.Serve(ctx, cfg.Server.Host, cfg.Server.Port)
}
