package urlhandler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateURLFormat(t *testing.T) {
	tests := []struct {
		input   string
		wantErr error
	}{
		{input: "https://dbree.org"},
		{input: "  http://localhost:8080/base  "},
		{input: "", wantErr: ErrEmptyURL},
		{input: "dbree.org", wantErr: ErrNotAbsoluteURL},
		{input: "ftp://dbree.org", wantErr: ErrNotAbsoluteURL},
		{input: "https://", wantErr: ErrNotAbsoluteURL},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateURLFormat(tt.input)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidateURLFormat_Unparseable(t *testing.T) {
	assert.Error(t, ValidateURLFormat("http://[::1"))
}

func TestNormalizeBaseURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "https://dbree.org", expected: "https://dbree.org"},
		{input: "HTTPS://DBree.ORG/", expected: "https://dbree.org"},
		{input: " https://mirror.example/dbree/ ", expected: "https://mirror.example/dbree"},
		{input: "https://dbree.org/?x=1#top", expected: "https://dbree.org"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			normalized, err := NormalizeBaseURL(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, normalized)
		})
	}

	_, err := NormalizeBaseURL("not a url")
	assert.Error(t, err)
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "https://dbree.org/v/abc", JoinPath("https://dbree.org/", "v", "abc"))
	assert.Equal(t, "https://dbree.org/s/a%2Fb", JoinPath("https://dbree.org", "s", "a%2Fb"))
	assert.Equal(t, "https://dbree.org", JoinPath("https://dbree.org/"))
}
