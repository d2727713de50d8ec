package apierr

import (
	"errors"
	"strings"
)

// Default texts used when a form does not supply its own
const (
	DefaultUnauthorized  = "Invalid credentials."
	DefaultForbidden     = "You are not permitted to do that."
	DefaultNotFound      = "The requested resource was not found."
	DefaultConflict      = "Data conflict. Check the information and try again."
	DefaultUnprocessable = "Please check required fields."
	DefaultNetwork       = "Could not reach the server. Try again."
	DefaultFallback      = "Something went wrong. Try again."
)

// DetailRule maps a substring of the backend detail to a message, for a given kind
type DetailRule struct {
	Kind     Kind
	Contains []string
	// Message replaces the text. An empty message surfaces the backend detail verbatim.
	Message string
	// As reclassifies the error when set
	As Kind
}

// Messages templates the text shown for each kind on one form. Empty fields
// fall back to the backend detail, then to the package defaults.
type Messages struct {
	Validation    string
	Unauthorized  string
	Forbidden     string
	NotFound      string
	Conflict      string
	Unprocessable string
	Network       string
	Fallback      string
	Rules         []DetailRule
}

// Translate classifies err and picks its user visible message
func Translate(err error, msgs Messages) *Error {
	if err == nil {
		return nil
	}

	// errors built on the client side are final
	var existing *Error
	if errors.As(err, &existing) && existing.Status == 0 && existing.Kind != "" {
		return existing
	}

	e := classify(err)

	lowered := strings.ToLower(e.Detail)
	for _, rule := range msgs.Rules {
		if rule.Kind != e.Kind || !containsAny(lowered, rule.Contains) {
			continue
		}
		if rule.As != "" {
			e.Kind = rule.As
		}
		e.Message = firstNonEmpty(rule.Message, e.Detail)
		return e
	}

	switch e.Kind {
	case KindValidation:
		e.Message = firstNonEmpty(msgs.Validation, e.Detail, DefaultUnprocessable)
	case KindUnauthorized:
		e.Message = firstNonEmpty(msgs.Unauthorized, e.Detail, DefaultUnauthorized)
	case KindForbidden:
		e.Message = firstNonEmpty(msgs.Forbidden, e.Detail, DefaultForbidden)
	case KindNotFound:
		e.Message = firstNonEmpty(msgs.NotFound, e.Detail, DefaultNotFound)
	case KindConflict:
		e.Message = firstNonEmpty(msgs.Conflict, e.Detail, DefaultConflict)
	case KindUnprocessable:
		e.Message = firstNonEmpty(msgs.Unprocessable, DefaultUnprocessable)
	case KindNetwork:
		e.Message = firstNonEmpty(msgs.Network, DefaultNetwork)
	default:
		e.Message = firstNonEmpty(e.Message, msgs.Fallback, e.Detail, DefaultFallback)
	}
	return e
}

func containsAny(s string, needles []string) bool {
	for _, needle := range needles {
		if strings.Contains(s, strings.ToLower(needle)) {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
