package notifier

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeRecords(n int) []models.FileRecord {
	records := make([]models.FileRecord, n)
	for i := range records {
		records[i] = models.FileRecord{
			ID:   fmt.Sprintf("id%02d", i),
			Name: fmt.Sprintf("file %d", i),
			Size: fmt.Sprintf("%d MB", i+1),
		}
	}
	return records
}

func titleRenderer(record models.FileRecord) models.DiscordEmbed {
	return models.DiscordEmbed{Title: record.Name}
}

func TestSummaryMessage(t *testing.T) {
	assert.Equal(t, "Detected 1 new file for query `x`.", SummaryMessage(1, "x"))
	assert.Equal(t, "Detected 12 new files for query `linux iso`.", SummaryMessage(12, "linux iso"))
	assert.Equal(t, "Detected 0 new files for query `q`.", SummaryMessage(0, "q"))
}

func TestBuildBatches_ChunkSizes(t *testing.T) {
	tests := []struct {
		records  int
		expected []int
	}{
		{records: 0, expected: nil},
		{records: 1, expected: []int{1}},
		{records: 10, expected: []int{10}},
		{records: 11, expected: []int{10, 1}},
		{records: 12, expected: []int{10, 2}},
		{records: 25, expected: []int{10, 10, 5}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d records", tt.records), func(t *testing.T) {
			payloads := BuildBatches(tt.records, "q", "", makeRecords(tt.records), titleRenderer)

			var sizes []int
			for _, p := range payloads {
				sizes = append(sizes, len(p.Embeds))
				assert.LessOrEqual(t, len(p.Embeds), MaxEmbedsPerMessage)
				assert.Equal(t, SummaryMessage(tt.records, "q"), p.Content)
			}
			assert.Equal(t, tt.expected, sizes)
		})
	}
}

func TestBuildBatches_PreservesOrder(t *testing.T) {
	records := makeRecords(23)
	payloads := BuildBatches(len(records), "q", "", records, titleRenderer)
	require.Len(t, payloads, 3)

	var titles []string
	for _, p := range payloads {
		for _, e := range p.Embeds {
			titles = append(titles, e.Title)
		}
	}
	require.Len(t, titles, len(records))
	for i, record := range records {
		assert.Equal(t, record.Name, titles[i])
	}
}

func TestNewFileEmbed(t *testing.T) {
	now := time.Date(2024, 3, 1, 14, 5, 9, 123456789, time.FixedZone("UTC+2", 2*60*60))
	record := models.FileRecord{ID: "abc123", Name: "Movie.mkv", Size: "1.4 GB"}

	embed := NewFileEmbed("https://dbree.org/", record, now)

	assert.Equal(t, "Movie.mkv", embed.Title)
	assert.Equal(t, "https://dbree.org/v/abc123", embed.URL)
	assert.Equal(t, "2024-03-01T12:05:09.123Z", embed.Timestamp)
	require.NotNil(t, embed.Footer)
	assert.Equal(t, "1.4 GB", embed.Footer.Text)
}

func TestNewFileEmbed_Deterministic(t *testing.T) {
	now := time.Unix(1700000000, 0)
	record := models.FileRecord{ID: "a", Name: "b", Size: "c"}

	assert.Equal(t, NewFileEmbed("https://dbree.org", record, now), NewFileEmbed("https://dbree.org", record, now))
}

func TestBuildBatches_Username(t *testing.T) {
	tests := []struct {
		name     string
		username string
		wantJSON bool
	}{
		{name: "custom name on every chunk", username: "dbreewatch", wantJSON: true},
		{name: "empty keeps the webhook name", username: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payloads := BuildBatches(12, "q", tt.username, makeRecords(12), titleRenderer)
			require.Len(t, payloads, 2)

			for _, p := range payloads {
				assert.Equal(t, tt.username, p.Username)

				raw, err := json.Marshal(p)
				require.NoError(t, err)
				assert.Equal(t, tt.wantJSON, strings.Contains(string(raw), `"username"`))
			}
		})
	}
}
