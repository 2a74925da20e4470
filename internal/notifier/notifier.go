package notifier

import (
	"context"

	"github.com/aleister1102/dbreewatch/internal/models"
)

// Notifier delivers one rendered message to a webhook.
type Notifier interface {
	Send(ctx context.Context, webhookURL string, payload models.DiscordMessagePayload) error
}

var _ Notifier = (*DiscordNotifier)(nil)
