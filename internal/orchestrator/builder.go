package orchestrator

import (
	"io"
	"time"

	"github.com/aleister1102/dbreewatch/internal/common"
	"github.com/aleister1102/dbreewatch/internal/datastore"
	"github.com/aleister1102/dbreewatch/internal/notifier"

	"github.com/rs/zerolog"
)

// DiscoveryOrchestratorBuilder provides a fluent interface for wiring the orchestrator
type DiscoveryOrchestratorBuilder struct {
	orchestrator DiscoveryOrchestrator
}

// NewDiscoveryOrchestratorBuilder creates a builder with the wall clock and no output
func NewDiscoveryOrchestratorBuilder(logger zerolog.Logger) *DiscoveryOrchestratorBuilder {
	return &DiscoveryOrchestratorBuilder{
		orchestrator: DiscoveryOrchestrator{
			clock:  time.Now,
			logger: logger.With().Str("module", "DiscoveryOrchestrator").Logger(),
		},
	}
}

func (b *DiscoveryOrchestratorBuilder) WithSearcher(searcher Searcher) *DiscoveryOrchestratorBuilder {
	b.orchestrator.searcher = searcher
	return b
}

func (b *DiscoveryOrchestratorBuilder) WithStore(store datastore.SeenStore) *DiscoveryOrchestratorBuilder {
	b.orchestrator.store = store
	return b
}

func (b *DiscoveryOrchestratorBuilder) WithSink(sink notifier.Notifier) *DiscoveryOrchestratorBuilder {
	b.orchestrator.sink = sink
	return b
}

func (b *DiscoveryOrchestratorBuilder) WithIgnoredKeywords(keywords []string) *DiscoveryOrchestratorBuilder {
	b.orchestrator.ignoredKeywords = append([]string(nil), keywords...)
	return b
}

func (b *DiscoveryOrchestratorBuilder) WithWebhookURL(webhookURL string) *DiscoveryOrchestratorBuilder {
	b.orchestrator.webhookURL = webhookURL
	return b
}

// WithUsername overrides the webhook's display name on every message
func (b *DiscoveryOrchestratorBuilder) WithUsername(username string) *DiscoveryOrchestratorBuilder {
	b.orchestrator.username = username
	return b
}

// WithBaseURI sets the index site root used for file links in embeds
func (b *DiscoveryOrchestratorBuilder) WithBaseURI(baseURI string) *DiscoveryOrchestratorBuilder {
	b.orchestrator.baseURI = baseURI
	return b
}

func (b *DiscoveryOrchestratorBuilder) WithClock(clock func() time.Time) *DiscoveryOrchestratorBuilder {
	b.orchestrator.clock = clock
	return b
}

// WithOutput prints every new file as "<id>: <name> (<size>)"
func (b *DiscoveryOrchestratorBuilder) WithOutput(out io.Writer) *DiscoveryOrchestratorBuilder {
	b.orchestrator.output = out
	return b
}

// WithDryRun still marks records seen but never calls the sink
func (b *DiscoveryOrchestratorBuilder) WithDryRun(dryRun bool) *DiscoveryOrchestratorBuilder {
	b.orchestrator.dryRun = dryRun
	return b
}

// Build validates the wiring and returns the orchestrator
func (b *DiscoveryOrchestratorBuilder) Build() (*DiscoveryOrchestrator, error) {
	o := b.orchestrator
	if o.searcher == nil {
		return nil, common.NewValidationError("searcher", nil, "searcher is required")
	}
	if o.store == nil {
		return nil, common.NewValidationError("store", nil, "seen store is required")
	}
	if o.sink == nil && !o.dryRun {
		return nil, common.NewValidationError("sink", nil, "notification sink is required unless dry run")
	}
	if o.clock == nil {
		o.clock = time.Now
	}
	return &o, nil
}
