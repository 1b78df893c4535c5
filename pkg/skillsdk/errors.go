package skillsdk

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"
	"strings"
)

var (
	ErrBadCredentials = errors.New("skillsdk: bad credentials")
	ErrNotSignedIn    = errors.New("skillsdk: not signed in")
	ErrSkillNotFound  = errors.New("skillsdk: skill not found")
	ErrRateLimited    = errors.New("skillsdk: too many requests")
	ErrNotReady       = errors.New("skillsdk: service not ready")
)

// StatusError is an unexpected response from the service.
type StatusError struct {
	StatusCode int
	Location   string // redirect target, if any
	Message    string // message from the error page, if any
}

func (e *StatusError) Error() string {
	switch {
	case e.Message != "":
		return fmt.Sprintf("skillsdk: unexpected status %d: %s", e.StatusCode, e.Message)
	case e.Location != "":
		return fmt.Sprintf("skillsdk: unexpected redirect %d to %s", e.StatusCode, e.Location)
	default:
		return fmt.Sprintf("skillsdk: unexpected status %d", e.StatusCode)
	}
}

// ValidationError is returned when the service rejects a skill form. Fields
// maps the form field (description, targetDate) to the message shown.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range slices.Sorted(maps.Keys(e.Fields)) {
		parts = append(parts, field+": "+e.Fields[field])
	}
	return "skillsdk: invalid skill: " + strings.Join(parts, "; ")
}

// parseErrorResponse turns a response with an unexpected status into the
// matching error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	location := resp.Header.Get("Location")

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return ErrRateLimited
	case resp.StatusCode == http.StatusFound && strings.HasPrefix(location, "/login"):
		return ErrNotSignedIn
	}

	statusErr := &StatusError{StatusCode: resp.StatusCode, Location: location}
	if doc, err := parseHTML(body); err == nil {
		statusErr.Message = errorPageMessage(doc)
	}

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", ErrSkillNotFound, statusErr.Message)
	}
	return statusErr
}
