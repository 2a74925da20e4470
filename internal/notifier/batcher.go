package notifier

import (
	"fmt"

	"github.com/aleister1102/dbreewatch/internal/models"
)

// EmbedRenderer turns one record into one embed.
type EmbedRenderer func(record models.FileRecord) models.DiscordEmbed

// SummaryMessage is the text content of every message of a run.
func SummaryMessage(total int, query string) string {
	suffix := "s"
	if total == 1 {
		suffix = ""
	}
	return fmt.Sprintf("Detected %d new file%s for query `%s`.", total, suffix, query)
}

// BuildBatches splits records into messages of at most MaxEmbedsPerMessage embeds.
// Every message carries the same content with the run total, not the chunk size.
// An empty username keeps the webhook's own name. No records means no messages.
func BuildBatches(total int, query, username string, records []models.FileRecord, render EmbedRenderer) []models.DiscordMessagePayload {
	if len(records) == 0 {
		return nil
	}

	content := SummaryMessage(total, query)
	payloads := make([]models.DiscordMessagePayload, 0, (len(records)+MaxEmbedsPerMessage-1)/MaxEmbedsPerMessage)

	for start := 0; start < len(records); start += MaxEmbedsPerMessage {
		end := start + MaxEmbedsPerMessage
		if end > len(records) {
			end = len(records)
		}

		builder := NewDiscordMessagePayloadBuilder().WithContent(content).WithUsername(username)
		for _, record := range records[start:end] {
			builder.AddEmbed(render(record))
		}
		payloads = append(payloads, builder.Build())
	}

	return payloads
}
