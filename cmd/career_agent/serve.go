package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonathan/career-recommender/internal/catalog"
	"github.com/jonathan/career-recommender/internal/config"
	"github.com/jonathan/career-recommender/internal/db"
	"github.com/jonathan/career-recommender/internal/llm"
	"github.com/jonathan/career-recommender/internal/logging"
	"github.com/jonathan/career-recommender/internal/metrics"
	"github.com/jonathan/career-recommender/internal/resume"
	"github.com/jonathan/career-recommender/internal/server"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes the profile, recommendation and dashboard endpoints.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Server.Port = servePort
	}
	if cfg.Database.URL == "" {
		return fmt.Errorf("database URL is required (set CAREER_DATABASE_URL or DATABASE_URL)")
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ds, err := catalog.Load(cfg.Catalog.JobsPath, cfg.Catalog.ReferencePath)
	if err != nil {
		return fmt.Errorf("failed to load datasets: %w", err)
	}
	logger.Info("datasets loaded",
		zap.Int("jobs", ds.Catalog.Len()),
		zap.String("catalog_version", ds.Catalog.Version()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	database, err := db.Connect(ctx, cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer database.Close()
	if err := database.EnsureSchema(ctx); err != nil {
		return fmt.Errorf("failed to apply schema: %w", err)
	}

	var extractor resume.SkillExtractor
	if cfg.LLM.APIKey != "" {
		client, err := llm.NewGeminiClient(ctx, cfg.LLM.APIKey, cfg.LLM.Model)
		if err != nil {
			return fmt.Errorf("failed to create LLM client: %w", err)
		}
		defer func() { _ = client.Close() }()
		extractor = llm.NewSkillExtractor(client, cfg.LLM.Timeout)
		logger.Info("resume skill extraction enabled", zap.String("model", client.Model()))
	}

	srv, err := server.New(server.Deps{
		Config:    cfg,
		Store:     database,
		Datasets:  ds,
		Extractor: extractor,
		Metrics:   metrics.New(),
		Logger:    logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	return srv.Run(ctx)
}
