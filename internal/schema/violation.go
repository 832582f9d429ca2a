// Package schema validates untrusted analysis payloads into typed domain values.
// Invalid enum values are rejected, never coerced to a fallback.
package schema

import (
	"fmt"
	"strings"

	"postcraft/internal/domain"
)

// Violation is one structural problem found in a payload.
type Violation struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

func (v Violation) String() string {
	if v.Path == "" {
		return v.Reason
	}
	return v.Path + ": " + v.Reason
}

// ViolationError reports every violation found while validating a payload.
// It matches domain.ErrSchemaViolation under errors.Is.
type ViolationError struct {
	Subject    string
	Violations []Violation
}

func (e *ViolationError) Error() string {
	parts := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s: %s: %s", e.Subject, domain.ErrSchemaViolation, strings.Join(parts, "; "))
}

func (e *ViolationError) Unwrap() error { return domain.ErrSchemaViolation }

// checker walks a decoded JSON document and records violations as it goes.
type checker struct {
	violations []Violation
}

func (c *checker) fail(path, format string, args ...any) {
	c.violations = append(c.violations, Violation{Path: path, Reason: fmt.Sprintf(format, args...)})
}

func (c *checker) err(subject string) error {
	if len(c.violations) == 0 {
		return nil
	}
	return &ViolationError{Subject: subject, Violations: c.violations}
}

func join(path, key string) string {
	if path == "" {
		return key
	}
	return path + "." + key
}

func index(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// object asserts v is a JSON object.
func (c *checker) object(path string, v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		c.fail(path, "expected object, got %s", kindOf(v))
		return nil, false
	}
	return m, true
}

func (c *checker) field(m map[string]any, path, key string) (any, bool) {
	v, ok := m[key]
	if !ok {
		c.fail(join(path, key), "required field is missing")
		return nil, false
	}
	return v, true
}

func (c *checker) str(m map[string]any, path, key string) string {
	v, ok := c.field(m, path, key)
	if !ok {
		return ""
	}
	s, ok := v.(string)
	if !ok {
		c.fail(join(path, key), "expected string, got %s", kindOf(v))
		return ""
	}
	return s
}

func (c *checker) stringList(m map[string]any, path, key string) []string {
	v, ok := c.field(m, path, key)
	if !ok {
		return nil
	}
	list, ok := v.([]any)
	if !ok {
		c.fail(join(path, key), "expected array, got %s", kindOf(v))
		return nil
	}
	out := make([]string, 0, len(list))
	for i, item := range list {
		s, ok := item.(string)
		if !ok {
			c.fail(index(join(path, key), i), "expected string, got %s", kindOf(item))
			continue
		}
		out = append(out, s)
	}
	return out
}

// enum reads a string field and checks it against the allowed set.
func enum[T ~string](c *checker, m map[string]any, path, key string, allowed []T) T {
	before := len(c.violations)
	s := c.str(m, path, key)
	if len(c.violations) > before {
		return ""
	}
	for _, a := range allowed {
		if string(a) == s {
			return a
		}
	}
	c.fail(join(path, key), "%q is not one of %s", s, strings.Join(domain.Strings(allowed), ", "))
	return ""
}

func kindOf(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case string:
		return "string"
	case bool:
		return "boolean"
	case float64, int, int64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return fmt.Sprintf("%T", v)
	}
}
