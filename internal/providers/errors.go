package providers

import "fmt"

// UpstreamError reports a transport failure or non-2xx response from an
// external source. Requests that hit one fail outright; nothing is retried.
type UpstreamError struct {
	Source     string
	StatusCode int
	Err        error
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s returned status %d", e.Source, e.StatusCode)
	}
	return fmt.Sprintf("%s unavailable: %v", e.Source, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MalformedRecordError reports a single source record that failed required-field
// extraction or type coercion. Whether it aborts the whole response or just
// drops the record is an adapter-level policy: Sleeper aborts because the pick
// amount is structurally required, the HTML scrapes skip because their
// extraction works over free text.
type MalformedRecordError struct {
	Source string
	Reason string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("%s: malformed record: %s", e.Source, e.Reason)
}

// UnknownCodeError reports a numeric code absent from a static lookup table.
// It always aborts the response: a code outside the table means the table is
// stale against the upstream platform, not that one record is odd.
type UnknownCodeError struct {
	Source string
	Kind   string
	Code   int
}

func (e *UnknownCodeError) Error() string {
	return fmt.Sprintf("%s: unknown %s code %d", e.Source, e.Kind, e.Code)
}
