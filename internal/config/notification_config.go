package config

// DiscordConfig defines where discovery notifications are delivered
type DiscordConfig struct {
	WebhookURI string `json:"webhook_uri,omitempty" yaml:"webhook_uri,omitempty" toml:"webhook_uri,omitempty" env:"DBREEWATCH_WEBHOOK_URI" validate:"omitempty,url"`
	Username   string `json:"username,omitempty" yaml:"username,omitempty" toml:"username,omitempty" env:"DBREEWATCH_DISCORD_USERNAME"`
	UserAgent  string `json:"user_agent,omitempty" yaml:"user_agent,omitempty" toml:"user_agent,omitempty"`
}

// NewDefaultDiscordConfig creates default notification configuration
func NewDefaultDiscordConfig() DiscordConfig {
	return DiscordConfig{
		WebhookURI: "",
		UserAgent:  DefaultDiscordUserAgent,
	}
}
