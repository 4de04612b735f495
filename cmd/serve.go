package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-gallery/internal/config"
	"github.com/kozaktomas/face-gallery/internal/embedder"
	"github.com/kozaktomas/face-gallery/internal/gallery"
	"github.com/kozaktomas/face-gallery/internal/storage"
	"github.com/kozaktomas/face-gallery/internal/storage/postgres"
	"github.com/kozaktomas/face-gallery/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web server",
	Long: `Start the Face Gallery web server.
The server accepts event photo uploads, computes face descriptors through
the embedding service, and serves guests the photos containing their face.`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().Int("port", 8080, "Port to listen on")
	serveCmd.Flags().String("host", "0.0.0.0", "Host to bind to")
	serveCmd.Flags().String("session-secret", "", "Secret for signing admin session cookies")
}

// resolveServeHostPort resolves port and host from flags and environment variables.
func resolveServeHostPort(cmd *cobra.Command) (int, string, string) {
	port := mustGetInt(cmd, "port")
	host := mustGetString(cmd, "host")
	sessionSecret := mustGetString(cmd, "session-secret")

	if sessionSecret == "" {
		sessionSecret = os.Getenv("WEB_SESSION_SECRET")
	}
	if envPort := os.Getenv("WEB_PORT"); envPort != "" {
		fmt.Sscanf(envPort, "%d", &port)
	}
	if envHost := os.Getenv("WEB_HOST"); envHost != "" {
		host = envHost
	}
	return port, host, sessionSecret
}

// buildDescriptorStore picks the descriptor backend: PostgreSQL with pgvector
// when DATABASE_URL is set, descriptor files next to the photos otherwise.
func buildDescriptorStore(cfg *config.Config, fs *storage.Filesystem) (storage.DescriptorStore, func(), error) {
	if cfg.Database.URL == "" {
		fmt.Println("Using filesystem descriptor store")
		return storage.NewDescriptorFiles(fs), func() {}, nil
	}

	fmt.Println("Connecting to PostgreSQL database...")
	pool, err := postgres.Initialize(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
	}
	fmt.Println("Using PostgreSQL descriptor store")
	return postgres.NewDescriptorRepository(pool), func() { pool.Close() }, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	fs, err := storage.NewFilesystem(cfg.Upload.Dir)
	if err != nil {
		return fmt.Errorf("failed to initialize photo storage: %w", err)
	}

	descriptors, closeStore, err := buildDescriptorStore(cfg, fs)
	if err != nil {
		return err
	}
	defer closeStore()

	faceClient := embedder.NewClient(cfg.Embedding.URL, cfg.Matching.MaxImageSize, cfg.Embedding.Dim)
	registry := gallery.NewRegistry(fs, descriptors)
	presence := gallery.NewPresence()
	service := gallery.NewService(registry, fs, descriptors, presence, faceClient, cfg.Matching.Threshold)

	port, host, sessionSecret := resolveServeHostPort(cmd)
	server := web.NewServer(cfg, service, fs, port, host, sessionSecret)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nShutting down...")

		shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 30*time.Second)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			fmt.Printf("Error during shutdown: %v\n", err)
		}
	}()

	fmt.Printf("Starting Face Gallery on http://%s:%d\n", host, port)
	fmt.Println("Press Ctrl+C to stop")

	if err := server.Start(); err != nil {
		return fmt.Errorf("starting server: %w", err)
	}
	return nil
}
