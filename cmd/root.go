/*
Copyright © 2025 dperales2022
*/
package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dperales2022/atmirasalesproposals/config"
	"github.com/dperales2022/atmirasalesproposals/schema"
	"github.com/dperales2022/atmirasalesproposals/service"
	"github.com/dperales2022/atmirasalesproposals/utils"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "atmirasalesproposals",
	Short: "Extract structured data from sales proposal documents",
	Long: `Fetches a sales proposal (PDF or Word), extracts its text and asks a
language model to fill a fixed field contract, returning JSON.

Run "start" for the HTTP service or "extract-document" for a single file.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", config.DefaultConfigPath, "config file (missing file is ignored)")
	rootCmd.PersistentFlags().String("log-level", "", "override log_level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("model", "", "override the model identifier")
}

// loadConfig reads the config file and environment, applies flag overrides
// and validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(cfgFile)
	if err != nil {
		return nil, err
	}
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if model, _ := cmd.Flags().GetString("model"); model != "" {
		cfg.Model = model
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetString("port")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// pipeline holds everything one process needs to serve extractions.
type pipeline struct {
	logger    *zap.Logger
	registry  *schema.Registry
	extractor service.Extractor
	service   *service.ExtractionService
}

func newPipeline(ctx context.Context, cfg *config.Config) (*pipeline, error) {
	logger, err := utils.NewLogger(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	log := logger.Sugar()

	registry, err := schema.NewDefaultRegistry(cfg.DefaultVariant)
	if err != nil {
		return nil, fmt.Errorf("load schema variants: %w", err)
	}
	extractor, err := service.NewExtractor(ctx, cfg, log)
	if err != nil {
		return nil, fmt.Errorf("init %s extractor: %w", cfg.Provider, err)
	}

	svc := service.NewExtractionService(
		service.NewFetchService(cfg.Fetch, log),
		service.NewDocumentService(cfg.Fetch.MaxDocumentBytes, log),
		extractor,
		registry,
		log,
	)
	return &pipeline{logger: logger, registry: registry, extractor: extractor, service: svc}, nil
}

func (p *pipeline) Close() {
	if c, ok := p.extractor.(io.Closer); ok {
		_ = c.Close()
	}
	_ = p.logger.Sync()
}
