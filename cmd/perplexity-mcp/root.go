package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/leofalp/perplexity-mcp/core/server"
	"github.com/leofalp/perplexity-mcp/internal/config"
	"github.com/leofalp/perplexity-mcp/providers/observability"
	slogobs "github.com/leofalp/perplexity-mcp/providers/observability/slog"
	"github.com/leofalp/perplexity-mcp/providers/tool"
	"github.com/leofalp/perplexity-mcp/providers/tool/perplexity"
)

const serverName = "Perplexity Research"

const instructions = `Workflow:
1. search - Ground yourself first by finding sources
2. ask - Get AI-synthesized answers from those sources
3. ask_more - Dig deeper with more comprehensive analysis`

type rootFlags struct {
	configPath string
	transport  string
	httpAddr   string
	logLevel   string
}

func newRootCmd() *cobra.Command {
	flags := &rootFlags{}

	cmd := &cobra.Command{
		Use:   "perplexity-mcp",
		Short: "MCP server for web search and grounded answers from Perplexity",
		Long: `perplexity-mcp exposes three tools to MCP hosts:

  search    raw web results with titles, URLs and snippets
  ask       AI-synthesized answers with citations
  ask_more  deeper, more comprehensive answers

PERPLEXITY_API_KEY must be set in the environment or in a .env file.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.configPath, "config", "", "path to a YAML config file (default $"+config.EnvConfigPath+")")
	cmd.Flags().StringVar(&flags.transport, "transport", "", "transport to serve: stdio or http (default stdio)")
	cmd.Flags().StringVar(&flags.httpAddr, "http-addr", "", "listen address for the http transport (default localhost:8000)")
	cmd.Flags().StringVar(&flags.logLevel, "log-level", "", "log level: DEBUG, INFO, WARN or ERROR")

	return cmd
}

func run(cmd *cobra.Command, flags *rootFlags) error {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := flags.apply(cfg); err != nil {
		return err
	}

	level, err := slogobs.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	observer := slogobs.New(slogobs.NewLogger(os.Stderr, level))
	observer.Debug(cmd.Context(), "configuration loaded", observability.String("config", cfg.String()))

	client, err := perplexity.NewClient(cfg.APIKey,
		perplexity.WithBaseURL(cfg.BaseURL),
		perplexity.WithTimeouts(cfg.Timeouts.Search, cfg.Timeouts.Chat),
		perplexity.WithModels(perplexity.Models{Standard: cfg.Models.Standard, Deep: cfg.Models.Deep}),
		perplexity.WithUserAgent("perplexity-mcp/"+version),
	)
	if err != nil {
		return err
	}

	catalog, err := buildCatalog(client, cfg.DisabledTools)
	if err != nil {
		return err
	}
	observer.Info(cmd.Context(), "tools registered", observability.Int("count", catalog.Size()))

	srv, err := server.New(catalog, observer, &server.Options{
		Name:         serverName,
		Version:      version,
		Instructions: instructions,
	})
	if err != nil {
		return err
	}

	return srv.Run(cmd.Context(), cfg.Transport, cfg.HTTPAddr)
}

// buildCatalog returns the catalog of enabled tools. Unknown names in
// disabled are an error, and so is disabling every tool.
func buildCatalog(client *perplexity.Client, disabled []string) (*tool.Catalog, error) {
	catalog := tool.NewCatalogWithTools(perplexity.Tools(client)...)
	for _, name := range disabled {
		if !catalog.Has(name) {
			return nil, fmt.Errorf("disabled_tools: unknown tool %q", name)
		}
		catalog.Remove(name)
	}
	if catalog.Size() == 0 {
		return nil, fmt.Errorf("disabled_tools: every tool is disabled")
	}
	return catalog, nil
}

// apply overrides cfg with the flags that were set and revalidates it.
func (f *rootFlags) apply(cfg *config.Config) error {
	if f.transport != "" {
		cfg.Transport = f.transport
	}
	if f.httpAddr != "" {
		cfg.HTTPAddr = f.httpAddr
	}
	if f.logLevel != "" {
		cfg.LogLevel = f.logLevel
	}
	return cfg.Validate()
}
