package models

// DiscordMessagePayload represents the JSON payload sent to a Discord webhook.
type DiscordMessagePayload struct {
	Content  string         `json:"content"`            // Message content (text)
	Username string         `json:"username,omitempty"` // Override the default webhook username
	Embeds   []DiscordEmbed `json:"embeds"`             // Array of embed objects
}

// DiscordEmbed represents a Discord embed object.
type DiscordEmbed struct {
	Title     string              `json:"title"`     // Title of embed
	URL       string              `json:"url"`       // URL of embed
	Timestamp string              `json:"timestamp"` // ISO8601 timestamp
	Footer    *DiscordEmbedFooter `json:"footer,omitempty"`
}

// DiscordEmbedFooter represents the footer of an embed.
type DiscordEmbedFooter struct {
	Text string `json:"text"` // Footer text
}
