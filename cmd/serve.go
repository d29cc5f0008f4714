package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/srazzak/tutorsite/internal/catalog"
	"github.com/srazzak/tutorsite/internal/config"
	"github.com/srazzak/tutorsite/internal/contenttree"
	"github.com/srazzak/tutorsite/internal/convert"
	"github.com/srazzak/tutorsite/internal/logger"
	"github.com/srazzak/tutorsite/internal/server"
	"github.com/srazzak/tutorsite/internal/site"
	"github.com/srazzak/tutorsite/internal/viewer"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the tutorsite web server",
	Long:  `Starts the HTTP server with the course pages, the catalog API and the document conversion endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; it only supplies TUTORSITE_* overrides.
		_ = godotenv.Load()

		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port = servePort
		}

		log, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer log.Sync()

		reg, err := buildRegistry(cfg)
		if err != nil {
			return fmt.Errorf("building content trees: %w", err)
		}

		srv := server.New(server.Config{
			Port:           cfg.Port,
			AllowAll:       cfg.AllowAllOrigins,
			RequestTimeout: time.Duration(cfg.RequestTimeout) * time.Second,
		}, log)

		if err := registerAllRoutes(srv.Router(), cfg, reg, log); err != nil {
			return err
		}

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-ctx.Done()
			log.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				log.Error("server shutdown", "error", err)
			}
		}()

		for _, t := range reg.Trees() {
			log.Info("content tree", "kind", string(t.Kind), "route", t.Route, "dir", t.BaseDir)
		}
		log.Info("tutorsite starting", "version", Version, "port", cfg.Port)

		return srv.Start()
	},
}

// registerAllRoutes wires up every feature package.
func registerAllRoutes(r chi.Router, cfg *config.Config, reg *contenttree.Registry, log *logger.Logger) error {
	// Document conversion
	convert.RegisterRoutes(r, reg, convert.Options{
		Logger:           log,
		MaxBodyBytes:     cfg.MaxBodyBytes,
		MaxDocumentBytes: cfg.MaxDocumentBytes,
	})

	// Viewer policy for the page script
	viewer.RegisterRoutes(r, viewer.DefaultPolicy())

	// Catalog API
	cat := catalog.Default()
	pages := catalog.NewPageCounter(pdfRoot(cfg))
	catalog.RegisterRoutes(r, cat, pages)

	// Pages and static assets
	s, err := site.New(cat, reg, pages, log)
	if err != nil {
		return fmt.Errorf("building site: %w", err)
	}
	s.RegisterRoutes(r)
	return nil
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 3000, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
