package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/aleister1102/dbreewatch/internal/httpclient"
	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/rs/zerolog"
)

// DiscordNotifier handles sending notifications to a Discord webhook.
type DiscordNotifier struct {
	logger     zerolog.Logger
	httpClient *httpclient.HTTPClient
	userAgent  string
}

// NewDiscordNotifier creates a new DiscordNotifier. The webhook URL is provided per send call.
func NewDiscordNotifier(logger zerolog.Logger, httpClient *httpclient.HTTPClient, userAgent string) (*DiscordNotifier, error) {
	moduleLogger := logger.With().Str("module", "DiscordNotifier").Logger()

	if httpClient == nil {
		moduleLogger.Warn().Msg("HTTP client is nil, using default HTTP client")
		client, err := httpclient.NewHTTPClientBuilder(moduleLogger).Build()
		if err != nil {
			return nil, fmt.Errorf("failed to build default http client: %w", err)
		}
		httpClient = client
	}

	moduleLogger.Debug().Msg("DiscordNotifier initialized")
	return &DiscordNotifier{
		logger:     moduleLogger,
		httpClient: httpClient,
		userAgent:  userAgent,
	}, nil
}

// Send posts one message to webhookURL. Discord answers a successful webhook with 204;
// anything else is a DeliveryError. An empty webhookURL disables delivery.
func (dn *DiscordNotifier) Send(ctx context.Context, webhookURL string, payload models.DiscordMessagePayload) error {
	if webhookURL == "" {
		dn.logger.Info().Int("embeds", len(payload.Embeds)).Msg("Webhook URL is empty. Skipping Discord notification.")
		return nil
	}

	if _, err := url.ParseRequestURI(webhookURL); err != nil {
		dn.logger.Error().Err(err).Msg("Invalid Discord webhook URL")
		return &models.DeliveryError{Err: fmt.Errorf("invalid webhook url: %w", err)}
	}

	body, err := json.Marshal(payload)
	if err != nil {
		dn.logger.Error().Err(err).Msg("Failed to marshal Discord payload to JSON")
		return &models.DeliveryError{Err: fmt.Errorf("failed to marshal discord payload: %w", err)}
	}

	headers := map[string]string{"Content-Type": "application/json"}
	if dn.userAgent != "" {
		headers["User-Agent"] = dn.userAgent
	}

	dn.logger.Debug().Int("embeds", len(payload.Embeds)).Msg("Posting to webhook")

	resp, err := dn.httpClient.Do(&httpclient.HTTPRequest{
		URL:     webhookURL,
		Method:  http.MethodPost,
		Headers: headers,
		Body:    bytes.NewReader(body),
		Context: ctx,
	})
	if err != nil {
		dn.logger.Error().Err(err).Msg("Failed to send Discord notification")
		return &models.DeliveryError{Err: err}
	}

	if resp.StatusCode != http.StatusNoContent {
		respBody := string(resp.Body)
		if len(respBody) > maxLoggedResponseBody {
			respBody = respBody[:maxLoggedResponseBody]
		}
		dn.logger.Error().
			Int("status_code", resp.StatusCode).
			Str("response_body", respBody).
			Msg("Discord notification failed")
		return &models.DeliveryError{StatusCode: resp.StatusCode, Body: respBody}
	}

	dn.logger.Debug().Int("status_code", resp.StatusCode).Msg("Discord notification sent")
	return nil
}
