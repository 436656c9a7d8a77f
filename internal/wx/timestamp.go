package wx

import (
	"encoding/json"
	"fmt"
	"time"
)

// Timestamp is the canonical time type at the deserialization boundary.
// Forecasts that have been through a JSON round trip (for example via an
// external cache) may carry timestamps as RFC 3339 strings, bare dates, or
// Unix epoch numbers; Timestamp accepts all of them so that everything
// downstream of decoding works with a plain time.Time.
type Timestamp struct {
	time.Time
}

// NewTimestamp wraps a time.Time.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t}
}

var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// UnmarshalJSON accepts an RFC 3339 string (with or without zone), a bare
// calendar date, or an epoch number in seconds or milliseconds.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}

	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		for _, layout := range timestampLayouts {
			parsed, perr := time.Parse(layout, s)
			if perr == nil {
				t.Time = parsed.UTC()
				return nil
			}
		}
		return fmt.Errorf("unrecognized timestamp %q", s)
	}

	var epoch float64
	if err := json.Unmarshal(b, &epoch); err == nil {
		// Values past the year 9999 in seconds are treated as milliseconds.
		if epoch > 2.5e11 {
			t.Time = time.UnixMilli(int64(epoch)).UTC()
		} else {
			t.Time = time.Unix(int64(epoch), 0).UTC()
		}
		return nil
	}

	return fmt.Errorf("unrecognized timestamp value %s", string(b))
}

// MarshalJSON serializes as RFC 3339 in UTC.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Time.UTC().Format(time.RFC3339))
}
