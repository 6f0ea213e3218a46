package main

import (
	"errors"
	"fmt"

	"github.com/jonathan/style-remixer/internal/config"
	"github.com/jonathan/style-remixer/internal/enhance"
	"github.com/jonathan/style-remixer/internal/llm"
	"github.com/jonathan/style-remixer/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the remix, diagnostics, style parsing and preset
endpoints. GEMINI_API_KEY enables enhancement and style parsing; JWT_SECRET enables
bearer auth on preset routes.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	port := servePort
	if port == 0 {
		port = settings.Port
	}
	if port == 0 {
		port = config.DefaultPort
	}

	store, closeStore, err := openStore(ctx, settings)
	if err != nil {
		return err
	}
	defer closeStore()

	cfg := server.Config{
		Port:   port,
		Store:  store,
		Logger: logger,
	}

	client, err := newLLMClient(ctx, settings, "", 0)
	switch {
	case err == nil:
		defer func() { _ = client.Close() }()
		cfg.LLM = client
		cfg.Enhancer = enhance.NewLLMEnhancer(client)
	case errors.Is(err, llm.ErrMissingAPIKey):
		logger.Warn("GEMINI_API_KEY not set, enhancement and style parsing disabled")
	default:
		return err
	}

	jwtConfig, err := config.NewJWTConfig()
	switch {
	case err == nil:
		cfg.JWT = jwtConfig
	case errors.Is(err, config.ErrJWTSecretMissing):
		logger.Warn("JWT_SECRET not set, preset routes are unauthenticated")
	default:
		return err
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	logger.Info("serving", zap.Int("port", port), zap.Bool("auth", cfg.JWT != nil), zap.Bool("llm", cfg.LLM != nil))
	return srv.Start()
}
