package notifier

import (
	"time"

	"github.com/aleister1102/dbreewatch/internal/models"
	"github.com/aleister1102/dbreewatch/internal/urlhandler"
)

// DiscordEmbedBuilder helps in constructing models.DiscordEmbed objects.
type DiscordEmbedBuilder struct {
	embed models.DiscordEmbed
}

// NewDiscordEmbedBuilder creates a new instance of DiscordEmbedBuilder.
func NewDiscordEmbedBuilder() *DiscordEmbedBuilder {
	return &DiscordEmbedBuilder{
		embed: models.DiscordEmbed{},
	}
}

// WithTitle sets the Title for the DiscordEmbed.
func (b *DiscordEmbedBuilder) WithTitle(title string) *DiscordEmbedBuilder {
	b.embed.Title = title
	return b
}

// WithURL sets the URL for the DiscordEmbed.
func (b *DiscordEmbedBuilder) WithURL(url string) *DiscordEmbedBuilder {
	b.embed.URL = url
	return b
}

// WithTimestamp sets the Timestamp for the DiscordEmbed, in UTC with millisecond precision.
func (b *DiscordEmbedBuilder) WithTimestamp(timestamp time.Time) *DiscordEmbedBuilder {
	b.embed.Timestamp = timestamp.UTC().Format(EmbedTimestampLayout)
	return b
}

// WithFooter sets the Footer for the DiscordEmbed.
func (b *DiscordEmbedBuilder) WithFooter(text string) *DiscordEmbedBuilder {
	b.embed.Footer = &models.DiscordEmbedFooter{Text: text}
	return b
}

// Build returns the constructed models.DiscordEmbed object.
func (b *DiscordEmbedBuilder) Build() models.DiscordEmbed {
	return b.embed
}

// FileViewURL is the link to a file's page on the index site.
func FileViewURL(baseURI, id string) string {
	return urlhandler.JoinPath(baseURI, fileViewSegment, id)
}

// NewFileEmbed renders one discovered file: name as title, view page as url, size in the footer.
func NewFileEmbed(baseURI string, record models.FileRecord, now time.Time) models.DiscordEmbed {
	return NewDiscordEmbedBuilder().
		WithTitle(record.Name).
		WithURL(FileViewURL(baseURI, record.ID)).
		WithTimestamp(now).
		WithFooter(record.Size).
		Build()
}
