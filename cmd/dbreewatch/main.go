package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aleister1102/dbreewatch/internal/config"
	"github.com/aleister1102/dbreewatch/internal/datastore"
	"github.com/aleister1102/dbreewatch/internal/httpclient"
	"github.com/aleister1102/dbreewatch/internal/logger"
	"github.com/aleister1102/dbreewatch/internal/notifier"
	"github.com/aleister1102/dbreewatch/internal/orchestrator"
	"github.com/aleister1102/dbreewatch/internal/search"

	"github.com/rs/zerolog"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := ParseFlags(flag.NewFlagSet("dbreewatch", flag.ContinueOnError), args)
	if err != nil {
		return 2
	}

	gCfg, err := config.LoadGlobalConfig(flags.GlobalConfigFile, zerolog.Nop())
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not load config using path '%s': %v\n", flags.GlobalConfigFile, err)
		return 1
	}
	if len(flags.Queries) > 0 {
		gCfg.Queries = flags.Queries
	}

	zLogger, err := logger.New(gCfg.LogConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[FATAL] Could not initialize logger: %v\n", err)
		return 1
	}

	if err := config.ValidateConfig(gCfg); err != nil {
		zLogger.Error().Err(err).Msg("Configuration validation failed")
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := datastore.OpenSeenStore(config.StorageConfig{
		Backend: gCfg.StoreBackend(),
		Path:    gCfg.StorePath(),
	}, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to open seen-set")
		return 1
	}
	defer func() {
		if err := store.Close(); err != nil {
			zLogger.Error().Err(err).Msg("Failed to close seen-set")
		}
	}()

	searchClient, err := search.New(search.Config{
		BaseURI: gCfg.DbreeBaseURI,
		Cookies: gCfg.AuthCookies(),
		HTTP:    gCfg.HTTPClientConfig.ToClientConfig(),
	}, zLogger)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create search client")
		return 1
	}

	webhookClient, err := httpclient.NewHTTPClientBuilder(zLogger).
		WithTimeout(gCfg.HTTPClientConfig.ToClientConfig().Timeout).
		WithInsecureSkipVerify(gCfg.HTTPClientConfig.InsecureSkipVerify).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to create webhook HTTP client")
		return 1
	}

	discordNotifier, err := notifier.NewDiscordNotifier(zLogger, webhookClient, gCfg.Discord.UserAgent)
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to initialize Discord notifier")
		return 1
	}

	if gCfg.Discord.WebhookURI == "" && !flags.DryRun {
		zLogger.Warn().Msg("No Discord webhook configured, new files will only be printed")
	}

	discoveryOrchestrator, err := orchestrator.NewDiscoveryOrchestratorBuilder(zLogger).
		WithSearcher(searchClient).
		WithStore(store).
		WithSink(discordNotifier).
		WithIgnoredKeywords(gCfg.IgnoredKeywords).
		WithWebhookURL(gCfg.Discord.WebhookURI).
		WithUsername(gCfg.Discord.Username).
		WithBaseURI(gCfg.DbreeBaseURI).
		WithOutput(os.Stdout).
		WithDryRun(flags.DryRun).
		Build()
	if err != nil {
		zLogger.Error().Err(err).Msg("Failed to build discovery orchestrator")
		return 1
	}

	zLogger.Info().Int("queries", len(gCfg.Queries)).Bool("dry_run", flags.DryRun).Msg("Starting discovery")

	if err := discoveryOrchestrator.RunAll(ctx, gCfg.Queries); err != nil {
		zLogger.Error().Err(err).Msg("Discovery finished with errors")
		return 1
	}

	zLogger.Info().Msg("Discovery finished")
	return 0
}
