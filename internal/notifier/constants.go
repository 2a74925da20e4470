package notifier

const (
	// MaxEmbedsPerMessage is Discord's limit on embeds in one webhook message.
	MaxEmbedsPerMessage = 10

	// EmbedTimestampLayout is RFC 3339 with millisecond precision; times are rendered in UTC.
	EmbedTimestampLayout = "2006-01-02T15:04:05.000Z07:00"

	// fileViewSegment is the index site's path segment for a single file page.
	fileViewSegment = "v"

	// maxLoggedResponseBody caps how much of a webhook error response is kept.
	maxLoggedResponseBody = 1024
)
