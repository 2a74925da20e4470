package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/aleister1102/dbreewatch/internal/httpclient"
	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestNotifier(t *testing.T) *DiscordNotifier {
	t.Helper()
	client, err := httpclient.NewHTTPClientBuilder(zerolog.Nop()).WithHTTP2(false).Build()
	require.NoError(t, err)

	notifier, err := NewDiscordNotifier(zerolog.Nop(), client, "dbreewatch-test")
	require.NoError(t, err)
	return notifier
}

func samplePayload() models.DiscordMessagePayload {
	return BuildBatches(1, "linux", "", []models.FileRecord{{ID: "abc", Name: "Foo", Size: "1 GB"}}, func(r models.FileRecord) models.DiscordEmbed {
		return NewDiscordEmbedBuilder().WithTitle(r.Name).WithURL(FileViewURL("https://dbree.org", r.ID)).WithFooter(r.Size).Build()
	})[0]
}

func TestDiscordNotifier_Send(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "dbreewatch-test", r.Header.Get("User-Agent"))

		raw, err := io.ReadAll(r.Body)
		assert.NoError(t, err)

		var body struct {
			Content string                   `json:"content"`
			Embeds  []map[string]interface{} `json:"embeds"`
		}
		if !assert.NoError(t, json.Unmarshal(raw, &body)) || !assert.Len(t, body.Embeds, 1) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		assert.Equal(t, "Detected 1 new file for query `linux`.", body.Content)

		embed := body.Embeds[0]
		assert.Equal(t, "Foo", embed["title"])
		assert.Equal(t, "https://dbree.org/v/abc", embed["url"])
		assert.Equal(t, map[string]interface{}{"text": "1 GB"}, embed["footer"])

		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	err := newTestNotifier(t).Send(context.Background(), server.URL, samplePayload())
	assert.NoError(t, err)
}

func TestDiscordNotifier_Send_UnexpectedStatus(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusBadRequest, http.StatusTooManyRequests} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"message":"nope"}`))
			}))
			defer server.Close()

			err := newTestNotifier(t).Send(context.Background(), server.URL, samplePayload())
			require.Error(t, err)

			var dErr *models.DeliveryError
			require.True(t, errors.As(err, &dErr))
			assert.Equal(t, status, dErr.StatusCode)
			assert.Contains(t, dErr.Body, "nope")
		})
	}
}

func TestDiscordNotifier_Send_EmptyWebhookIsNoop(t *testing.T) {
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
	}))
	defer server.Close()

	err := newTestNotifier(t).Send(context.Background(), "", samplePayload())
	assert.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&hits))
}

func TestDiscordNotifier_Send_ConnectionFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target := server.URL
	server.Close()

	err := newTestNotifier(t).Send(context.Background(), target, samplePayload())

	var dErr *models.DeliveryError
	require.True(t, errors.As(err, &dErr))
	assert.Zero(t, dErr.StatusCode)
	assert.Error(t, dErr.Err)
}

func TestDiscordNotifier_Send_InvalidURL(t *testing.T) {
	err := newTestNotifier(t).Send(context.Background(), "not a url", samplePayload())

	var dErr *models.DeliveryError
	assert.True(t, errors.As(err, &dErr))
}
