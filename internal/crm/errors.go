package crm

import "fmt"

// maxBodySnippet bounds how much of a CRM response body is retained for
// diagnostics. Bodies can carry account internals, so they are truncated,
// and access tokens never appear in them.
const maxBodySnippet = 512

// Error is returned when the CRM answered with a non-success HTTP status.
// Body holds a truncated snippet of the response for diagnostics.
type Error struct {
	Status int
	Body   string
}

func (e *Error) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("amocrm: status %d", e.Status)
	}
	return fmt.Sprintf("amocrm: status %d: %s", e.Status, e.Body)
}

func truncate(body []byte, limit int) string {
	if len(body) <= limit {
		return string(body)
	}
	return string(body[:limit]) + "..."
}
