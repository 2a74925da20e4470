package urlhandler

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyURL       = errors.New("URL is empty or only whitespace")
	ErrNotAbsoluteURL = errors.New("URL must have an http or https scheme and a host")
)

// ValidateURLFormat accepts absolute http(s) URLs with a hostname.
func ValidateURLFormat(rawURL string) error {
	trimmedURL := strings.TrimSpace(rawURL)
	if trimmedURL == "" {
		return ErrEmptyURL
	}

	parsedURL, err := url.Parse(trimmedURL)
	if err != nil {
		return fmt.Errorf("could not parse URL '%s': %w", trimmedURL, err)
	}

	scheme := strings.ToLower(parsedURL.Scheme)
	if (scheme != "http" && scheme != "https") || parsedURL.Hostname() == "" {
		return fmt.Errorf("'%s': %w", trimmedURL, ErrNotAbsoluteURL)
	}
	return nil
}

// NormalizeBaseURL trims whitespace and trailing slashes and lowercases the scheme and host.
// Paths are kept so a site mounted under a prefix still works.
func NormalizeBaseURL(rawURL string) (string, error) {
	if err := ValidateURLFormat(rawURL); err != nil {
		return "", err
	}

	parsedURL, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	parsedURL.Scheme = strings.ToLower(parsedURL.Scheme)
	parsedURL.Host = strings.ToLower(parsedURL.Host)
	parsedURL.Fragment = ""
	parsedURL.RawQuery = ""

	return strings.TrimRight(parsedURL.String(), "/"), nil
}

// JoinPath appends already-escaped path segments to base with single slashes.
func JoinPath(base string, segments ...string) string {
	var b strings.Builder
	b.WriteString(strings.TrimRight(base, "/"))
	for _, segment := range segments {
		b.WriteByte('/')
		b.WriteString(segment)
	}
	return b.String()
}
