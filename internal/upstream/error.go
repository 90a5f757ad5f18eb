package upstream

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"
)

const genericFailureMessage = "The request could not be completed."

// APIError is a failed upstream call with enough context to classify it.
// Status 0 means the request never produced an HTTP response.
type APIError struct {
	Status       int
	Message      string
	AuthRedirect bool
}

func (e *APIError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("upstream: %s", e.Message)
	}
	return fmt.Sprintf("upstream: status %d: %s", e.Status, e.Message)
}

// Class buckets upstream failures per the rollback policy.
type Class int

const (
	// ClassDefinite is a 4xx other than 401: the mutation definitely did not
	// apply, so the optimistic write must be rolled back and the user told.
	ClassDefinite Class = iota
	// ClassAmbiguous covers network failures, 5xx, and plain 401s: the
	// mutation may have applied server-side, so the optimistic write is kept.
	ClassAmbiguous
	// ClassAuthRedirect is a 401 raised mid re-authentication; swallowed
	// entirely.
	ClassAuthRedirect
)

// Classify buckets any error from an upstream call. Non-APIError values are
// ambiguous by definition.
func Classify(err error) Class {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return ClassAmbiguous
	}
	if apiErr.AuthRedirect {
		return ClassAuthRedirect
	}
	if apiErr.Status >= 400 && apiErr.Status < 500 && apiErr.Status != http.StatusUnauthorized {
		return ClassDefinite
	}
	return ClassAmbiguous
}

// Notice extracts the most specific user-facing message from an error,
// falling back to a generic string.
func Notice(err error) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return genericFailureMessage
}

// extractMessage walks the response body for the most specific message:
// message field, bare string body, error field, detail field, then a small
// details object flattened to "key: value" pairs.
func extractMessage(body []byte) string {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return genericFailureMessage
	}

	var payload struct {
		Message string          `json:"message"`
		Err     json.RawMessage `json:"error"`
		Detail  string          `json:"detail"`
		Details map[string]any  `json:"details"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		// Not JSON: a bare string body is the message itself.
		return trimmed
	}

	if msg := strings.TrimSpace(payload.Message); msg != "" {
		return msg
	}
	if len(payload.Err) > 0 {
		var errStr string
		if json.Unmarshal(payload.Err, &errStr) == nil && strings.TrimSpace(errStr) != "" {
			return strings.TrimSpace(errStr)
		}
	}
	if msg := strings.TrimSpace(payload.Detail); msg != "" {
		return msg
	}
	if len(payload.Details) > 0 && len(payload.Details) <= 8 {
		keys := make([]string, 0, len(payload.Details))
		for k := range payload.Details {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, payload.Details[k]))
		}
		return strings.Join(parts, "; ")
	}
	return genericFailureMessage
}
