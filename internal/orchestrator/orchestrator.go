package orchestrator

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/aleister1102/dbreewatch/internal/common"
	"github.com/aleister1102/dbreewatch/internal/datastore"
	"github.com/aleister1102/dbreewatch/internal/models"
	"github.com/aleister1102/dbreewatch/internal/notifier"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Searcher fetches and extracts one results page.
type Searcher interface {
	Search(ctx context.Context, q models.SearchQuery) ([]models.FileRecord, error)
}

// DiscoveryOrchestrator runs the fetch, filter, mark and deliver pipeline for one query at a time.
type DiscoveryOrchestrator struct {
	searcher        Searcher
	store           datastore.SeenStore
	sink            notifier.Notifier
	ignoredKeywords []string
	webhookURL      string
	username        string
	baseURI         string
	clock           func() time.Time
	output          io.Writer
	dryRun          bool
	logger          zerolog.Logger
}

// Discover processes a single query end to end.
// Fetch, extraction and storage failures abort the query and are returned wrapped with the query text.
// Delivery failures are logged and counted in the summary; the remaining chunks are still sent.
func (o *DiscoveryOrchestrator) Discover(ctx context.Context, q models.SearchQuery) (RunSummary, error) {
	summary := newRunSummary(q.Query, o.clock())
	runLogger := o.logger.With().
		Str("run_id", summary.RunID).
		Str("query", q.Query).
		Uint32("offset", q.Offset).
		Logger()

	runLogger.Info().Msg("Searching")

	records, err := o.searcher.Search(ctx, q)
	if err != nil {
		runLogger.Error().Err(err).Msg("Search failed")
		return summary.finish(o.clock()), common.WrapErrorf(err, "query %q", q.Query)
	}
	summary.Found = len(records)

	qualifying, err := o.filter(ctx, records, &summary, runLogger)
	if err != nil {
		runLogger.Error().Err(err).Msg("Seen-set access failed")
		return summary.finish(o.clock()), common.WrapErrorf(err, "query %q", q.Query)
	}
	summary.New = len(qualifying)

	if len(qualifying) > 0 {
		o.deliver(ctx, q.Query, qualifying, &summary, runLogger)
	}

	summary = summary.finish(o.clock())
	runLogger.Info().
		Int("found", summary.Found).
		Int("duplicates", summary.Duplicates).
		Int("ignored", summary.Ignored).
		Int("new", summary.New).
		Int("chunks_sent", summary.ChunksSent).
		Int("chunks_failed", summary.ChunksFailed).
		Dur("duration", summary.Duration).
		Msg("Query finished")

	return summary, nil
}

// filter partitions records and marks every non-duplicate as seen, in page order.
func (o *DiscoveryOrchestrator) filter(ctx context.Context, records []models.FileRecord, summary *RunSummary, logger zerolog.Logger) ([]models.FileRecord, error) {
	var qualifying []models.FileRecord

	for _, record := range records {
		class, err := o.classify(ctx, record)
		if err != nil {
			return nil, err
		}

		recordLogger := logger.With().Str("id", record.ID).Str("name", record.Name).Logger()
		switch class {
		case models.RecordDuplicate:
			summary.Duplicates++
			recordLogger.Debug().Msg("Already seen")
			continue
		case models.RecordIgnored:
			summary.Ignored++
			recordLogger.Debug().Msg("Ignored by keyword")
		case models.RecordQualifying:
			recordLogger.Info().Str("size", record.Size).Msg("New file")
		}

		if err := o.store.Mark(ctx, record.ID); err != nil {
			return nil, err
		}

		if class == models.RecordQualifying {
			qualifying = append(qualifying, record)
			if o.output != nil {
				fmt.Fprintf(o.output, "%s: %s (%s)\n", record.ID, record.Name, record.Size)
			}
		}
	}

	return qualifying, nil
}

func (o *DiscoveryOrchestrator) classify(ctx context.Context, record models.FileRecord) (models.RecordClass, error) {
	seen, err := o.store.Contains(ctx, record.ID)
	if err != nil {
		return models.RecordDuplicate, err
	}
	if seen {
		return models.RecordDuplicate, nil
	}
	if o.isIgnored(record.Name) {
		return models.RecordIgnored, nil
	}
	return models.RecordQualifying, nil
}

// isIgnored is a case-sensitive substring match against the ignored keywords.
func (o *DiscoveryOrchestrator) isIgnored(name string) bool {
	for _, keyword := range o.ignoredKeywords {
		if keyword != "" && strings.Contains(name, keyword) {
			return true
		}
	}
	return false
}

func (o *DiscoveryOrchestrator) deliver(ctx context.Context, query string, records []models.FileRecord, summary *RunSummary, logger zerolog.Logger) {
	now := o.clock()
	batches := notifier.BuildBatches(len(records), query, o.username, records, func(record models.FileRecord) models.DiscordEmbed {
		return notifier.NewFileEmbed(o.baseURI, record, now)
	})

	if o.dryRun {
		logger.Info().Int("chunks", len(batches)).Msg("Dry run, skipping delivery")
		return
	}

	for i, payload := range batches {
		if err := o.sink.Send(ctx, o.webhookURL, payload); err != nil {
			summary.ChunksFailed++
			logger.Warn().Err(err).Int("chunk", i+1).Int("chunks", len(batches)).Msg("Chunk delivery failed")
			continue
		}
		summary.ChunksSent++
		logger.Debug().Int("chunk", i+1).Int("embeds", len(payload.Embeds)).Msg("Chunk delivered")
	}
}

// RunAll processes queries sequentially at offset 0. A failing query does not stop the
// following ones; the returned error joins every per-query failure.
func (o *DiscoveryOrchestrator) RunAll(ctx context.Context, queries []string) error {
	if len(queries) == 0 {
		return common.ErrNoQueries
	}

	collector := common.NewErrorCollector()
	for _, query := range queries {
		if err := ctx.Err(); err != nil {
			o.logger.Warn().Err(err).Str("query", query).Msg("Stopping before query, context done")
			collector.AddWithContext(err, fmt.Sprintf("query %q", query))
			break
		}
		if _, err := o.Discover(ctx, models.NewSearchQuery(query)); err != nil {
			collector.Add(err)
		}
	}

	return collector.Error()
}

func newRunSummary(query string, start time.Time) RunSummary {
	return RunSummary{
		RunID:     uuid.NewString(),
		Query:     query,
		StartTime: start,
	}
}
