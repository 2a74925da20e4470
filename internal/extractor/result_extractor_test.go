package extractor

import (
	"errors"
	"testing"

	"github.com/aleister1102/dbreewatch/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoItemPage = `<!DOCTYPE html>
<html><body>
<ul class="list-group">
  <li class="list-group-item"><span class="badge">1 GB</span><a href="/v/aaa">Foo</a></li>
  <li class="list-group-item"><span class="badge">2 GB</span><a href="/v/bbb">Bar</a></li>
</ul>
</body></html>`

func TestExtractResults_DocumentOrder(t *testing.T) {
	records, err := ExtractResults([]byte(twoItemPage))
	require.NoError(t, err)

	assert.Equal(t, []models.FileRecord{
		{ID: "aaa", Name: "Foo", Size: "1 GB"},
		{ID: "bbb", Name: "Bar", Size: "2 GB"},
	}, records)
}

func TestExtractResults_EmptyPage(t *testing.T) {
	records, err := ExtractResults([]byte(`<html><body><ul class="list-group"></ul></body></html>`))
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestExtractResults_IgnoresItemsOutsideResultList(t *testing.T) {
	page := `<html><body>
<ul class="nav"><li class="list-group-item"><a href="/v/zzz">nav</a></li></ul>
<ul class="list-group"><li class="list-group-item"><span class="badge">5 MB</span><a href="/v/abc">notes.txt</a></li></ul>
</body></html>`

	records, err := ExtractResults([]byte(page))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "abc", records[0].ID)
}

func TestExtractResults_NestedTextKeptVerbatim(t *testing.T) {
	page := `<ul class="list-group"><li class="list-group-item">
  <span class="badge"><b> 700 MB </b></span>
  <a href="/v/x1y2">
     Some File (2024).mkv
  </a>
</li></ul>`

	records, err := ExtractResults([]byte(page))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, models.FileRecord{
		ID:   "x1y2",
		Name: "\n     Some File (2024).mkv\n  ",
		Size: " 700 MB ",
	}, records[0])
}

func TestExtractResults_StrictFailures(t *testing.T) {
	tests := []struct {
		name    string
		item    string
		missing string
	}{
		{
			name:    "missing badge",
			item:    `<a href="/v/ccc">Baz</a>`,
			missing: "no badge found",
		},
		{
			name:    "badge without text",
			item:    `<span class="badge"></span><a href="/v/ccc">Baz</a>`,
			missing: "badge has no text",
		},
		{
			name:    "missing link",
			item:    `<span class="badge">3 GB</span>`,
			missing: "search item has no <a>",
		},
		{
			name:    "link without text",
			item:    `<span class="badge">3 GB</span><a href="/v/ccc"></a>`,
			missing: "search item's <a> has no text",
		},
		{
			name:    "link without href",
			item:    `<span class="badge">3 GB</span><a>Baz</a>`,
			missing: "search item's <a> has no href",
		},
		{
			name:    "link target shorter than prefix",
			item:    `<span class="badge">3 GB</span><a href="/v">Baz</a>`,
			missing: "link target too short: /v",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := `<ul class="list-group">
<li class="list-group-item"><span class="badge">1 GB</span><a href="/v/aaa">Foo</a></li>
<li class="list-group-item">` + tt.item + `</li>
</ul>`

			records, err := ExtractResults([]byte(page))
			require.Error(t, err)
			assert.Nil(t, records, "a malformed item must not yield a partial page")

			var pErr *models.ParseError
			require.True(t, errors.As(err, &pErr))
			assert.Equal(t, 1, pErr.Item)
			assert.Equal(t, tt.missing, pErr.Missing)
		})
	}
}

func TestStripLinkPrefix(t *testing.T) {
	tests := []struct {
		href   string
		wantID string
		wantOK bool
	}{
		{"/v/aaa", "aaa", true},
		{"/v/", "", true},
		{"/v", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			id, ok := stripLinkPrefix(tt.href)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantID, id)
		})
	}
}
