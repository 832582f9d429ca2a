package gemini

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"postcraft/internal/domain"
)

var boundaryErrors = []error{
	domain.ErrInvalidCredentials,
	domain.ErrQuotaExceeded,
	domain.ErrContentBlocked,
	domain.ErrMalformedOutput,
	domain.ErrProviderFailure,
}

// ClassifyError maps an SDK or validation error onto the boundary taxonomy.
// Status codes are consulted first, then message keywords. Cancellation is
// returned unchanged so callers can tell it apart from provider failures.
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range boundaryErrors {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, domain.ErrSchemaViolation) {
		return fmt.Errorf("%w: %w", domain.ErrMalformedOutput, err)
	}

	if code, status, ok := apiStatus(err); ok {
		switch {
		case code == http.StatusUnauthorized || code == http.StatusForbidden:
			return fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
		case code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED":
			return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
		}
	}

	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "API key"), strings.Contains(lower, "api_key_invalid"):
		return fmt.Errorf("%w: %w", domain.ErrInvalidCredentials, err)
	case strings.Contains(lower, "quota"), strings.Contains(lower, "rate limit"), strings.Contains(lower, "rate-limit"):
		return fmt.Errorf("%w: %w", domain.ErrQuotaExceeded, err)
	case strings.Contains(msg, "SAFETY"), strings.Contains(lower, "blocked"):
		return fmt.Errorf("%w: %w", domain.ErrContentBlocked, err)
	}
	return fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
}

// apiStatus finds a genai.APIError in err's chain, in value or pointer form.
func apiStatus(err error) (int, string, bool) {
	for e := err; e != nil; e = errors.Unwrap(e) {
		switch v := any(e).(type) {
		case genai.APIError:
			return v.Code, v.Status, true
		case *genai.APIError:
			if v != nil {
				return v.Code, v.Status, true
			}
		}
	}
	return 0, "", false
}

// Kind names the boundary class of err for logs and error bodies.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, domain.ErrQuotaExceeded):
		return "quota_exceeded"
	case errors.Is(err, domain.ErrContentBlocked):
		return "content_blocked"
	case errors.Is(err, domain.ErrMalformedOutput):
		return "malformed_output"
	case errors.Is(err, domain.ErrSchemaViolation):
		return "schema_violation"
	case errors.Is(err, context.Canceled):
		return "canceled"
	case errors.Is(err, context.DeadlineExceeded):
		return "timeout"
	default:
		return "provider_failure"
	}
}
