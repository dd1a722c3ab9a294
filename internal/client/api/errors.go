package api

import "fmt"

// NetworkErrorMessage replaces the transport error text on connection-level
// failures so the UI never shows a raw dial/DNS error.
const NetworkErrorMessage = "Network error. Please check your internet connection."

// Kind classifies a normalized API failure.
type Kind int

const (
	// KindGeneric is any non-success response not covered below.
	KindGeneric Kind = iota
	// KindAuth covers rejected credentials and invalid/expired tokens.
	KindAuth
	// KindValidation covers field-level validation failures (HTTP 400 with
	// a field-error map in the body).
	KindValidation
	// KindNetwork covers transport failures: the request never produced an
	// HTTP response.
	KindNetwork
)

// Error is the uniform failure shape produced for every unsuccessful call.
// Callers retrieve it with errors.As; no raw transport error or
// backend-specific payload ever crosses this package's boundary.
type Error struct {
	// Message is user-presentable. Taken from the body's "message" field,
	// then "detail", then a generic fallback.
	Message string

	// StatusCode is the body's "status_code" override when present,
	// otherwise the HTTP status. Zero for transport failures.
	StatusCode int

	// Kind tags the failure for caller-side branching.
	Kind Kind

	// Fields holds per-field validation errors, keyed by field name.
	// Populated only for KindValidation.
	Fields map[string][]string

	// Raw is the full parsed response body, when one could be parsed.
	Raw map[string]any

	cause error
}

func (e *Error) Error() string { return e.Message }

// Unwrap exposes the underlying transport error, if any.
func (e *Error) Unwrap() error { return e.cause }

// newNetworkError wraps a transport-level failure.
func newNetworkError(cause error) *Error {
	return &Error{Message: NetworkErrorMessage, Kind: KindNetwork, cause: cause}
}

// normalizeError builds an Error from an HTTP error response. body is the
// parsed response payload and may be nil when the body was empty or not JSON.
func normalizeError(httpStatus int, body map[string]any) *Error {
	e := &Error{StatusCode: httpStatus, Raw: body}

	if s, ok := body["message"].(string); ok && s != "" {
		e.Message = s
	} else if s, ok := body["detail"].(string); ok && s != "" {
		e.Message = s
	} else {
		e.Message = fmt.Sprintf("Request failed with status %d", httpStatus)
	}

	if n, ok := body["status_code"].(float64); ok {
		e.StatusCode = int(n)
	}

	e.Fields = fieldErrors(body)

	switch {
	case httpStatus == 401 || httpStatus == 403:
		e.Kind = KindAuth
	case httpStatus == 400 && len(e.Fields) > 0:
		e.Kind = KindValidation
	default:
		e.Kind = KindGeneric
	}

	return e
}

// fieldErrors extracts a DRF-style field-error map: every key whose value is
// a list of strings, skipping the reserved envelope keys.
func fieldErrors(body map[string]any) map[string][]string {
	var fields map[string][]string
	for key, value := range body {
		if key == "message" || key == "detail" || key == "status_code" {
			continue
		}
		list, ok := value.([]any)
		if !ok || len(list) == 0 {
			continue
		}
		msgs := make([]string, 0, len(list))
		for _, item := range list {
			if s, ok := item.(string); ok {
				msgs = append(msgs, s)
			}
		}
		if len(msgs) == 0 {
			continue
		}
		if fields == nil {
			fields = make(map[string][]string)
		}
		fields[key] = msgs
	}
	return fields
}
