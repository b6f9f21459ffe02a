package cmd

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MeKo-Tech/paperforge/internal/detector"
	"github.com/MeKo-Tech/paperforge/internal/exam"
	"github.com/MeKo-Tech/paperforge/internal/pipeline"
	"github.com/MeKo-Tech/paperforge/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP server exposing the authoring workflow:

  POST /suggest             - suggest question regions on an uploaded page image
  GET  /pools/{exam}        - read an exam's candidate pool
  PUT  /pools/{exam}/candidates - upsert a question candidate
  POST /papers              - generate a practice paper
  GET  /ws/papers           - generate with websocket progress streaming
  GET  /health              - health check
  GET  /metrics             - prometheus metrics

Examples:
  paperforge serve
  paperforge serve --host 0.0.0.0 --port 3000 --booklet-dir booklets/`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().String("host", "localhost", "host to bind to")
	serveCmd.Flags().Int("port", 8080, "port to listen on")
	serveCmd.Flags().String("booklet-dir", "booklets", "directory holding <exam>.pdf source booklets")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	host := cfg.Server.Host
	if cmd.Flags().Changed("host") {
		host, _ = cmd.Flags().GetString("host")
	}
	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	bookletDir, _ := cmd.Flags().GetString("booklet-dir")

	serverCfg := cfg.Server
	serverCfg.Host = host
	serverCfg.Port = port

	det, err := detector.New(cfg.Detector)
	if err != nil {
		return err
	}
	store, err := exam.NewStore(cfg.DataDir)
	if err != nil {
		return err
	}

	suggester := pipeline.NewSuggester(det, cfg.Paper.Frame())
	sources := func(examID string) (pipeline.PageSource, error) {
		return pipeline.NewBookletSource(bookletPath(bookletDir, examID), nil)
	}

	srv, err := server.New(serverCfg, cfg.Paper, suggester, store, sources)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		slog.Info("received signal, shutting down", "signal", sig)
	}

	ctx, cancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()
	return srv.Shutdown(ctx)
}

// bookletPath resolves an exam identifier to its booklet PDF. The identifier
// comes from HTTP requests, so it is sanitized the same way pool file names
// are and can never leave the booklet directory.
func bookletPath(dir, examID string) string {
	return filepath.Join(dir, exam.SanitizeName(examID)+".pdf")
}
