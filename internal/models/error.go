package models

import "fmt"

// ParseError is returned when a results page is missing an expected element.
// One malformed item fails the whole page.
type ParseError struct {
	Item    int    // zero-based index of the offending result item, -1 for the document itself
	Missing string // which structural piece was absent
	Err     error
}

func (e *ParseError) Error() string {
	if e.Item < 0 {
		if e.Err != nil {
			return fmt.Sprintf("parse error: %s: %v", e.Missing, e.Err)
		}
		return fmt.Sprintf("parse error: %s", e.Missing)
	}
	return fmt.Sprintf("parse error in result item %d: %s", e.Item, e.Missing)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NetworkError covers connection failures, timeouts, redirect overflow, bad
// status codes and malformed URIs while talking to the index site.
type NetworkError struct {
	URL    string
	Reason string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("network error for '%s': %s: %v", e.URL, e.Reason, e.Err)
	}
	return fmt.Sprintf("network error for '%s': %s", e.URL, e.Reason)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NewNetworkError creates a new network error
func NewNetworkError(url, reason string, err error) *NetworkError {
	return &NetworkError{URL: url, Reason: reason, Err: err}
}

// HTMLDecodeError is returned when a response body cannot be decoded as text.
type HTMLDecodeError struct {
	URL         string
	ContentType string
	Err         error
}

func (e *HTMLDecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot decode body of '%s' (content-type %q): %v", e.URL, e.ContentType, e.Err)
	}
	return fmt.Sprintf("cannot decode body of '%s' (content-type %q)", e.URL, e.ContentType)
}

func (e *HTMLDecodeError) Unwrap() error {
	return e.Err
}

// StorageError wraps a failure of the durable seen-set.
type StorageError struct {
	Op  string
	Key string
	Err error
}

func (e *StorageError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("storage error during %s of '%s': %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// NewStorageError creates a new storage error
func NewStorageError(op, key string, err error) *StorageError {
	return &StorageError{Op: op, Key: key, Err: err}
}

// DeliveryError is a webhook delivery that did not get the expected response.
type DeliveryError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *DeliveryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("webhook delivery failed: %v", e.Err)
	}
	return fmt.Sprintf("webhook responded with status %d: %s", e.StatusCode, e.Body)
}

func (e *DeliveryError) Unwrap() error {
	return e.Err
}
