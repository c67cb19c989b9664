package fixtures

import (
	"encoding/json"
	"time"
)

// SessionKey is the sessionStorage key the reader uses to persist list state
// across navigation. Tests read and corrupt this key directly.
const SessionKey = "reader:list-state"

// SessionPayload mirrors the JSON blob the reader stores under SessionKey.
type SessionPayload struct {
	ScrollOffset int         `json:"scrollOffset"`
	Filter       FilterState `json:"filter"`
	ReadIDs      []string    `json:"readIds"`
	SavedAt      string      `json:"savedAt"`
}

// NewSessionPayload builds a well-formed payload with a fixed timestamp.
func NewSessionPayload(scrollOffset int, filter FilterState, readIDs []string) SessionPayload {
	if readIDs == nil {
		readIDs = []string{}
	}
	return SessionPayload{
		ScrollOffset: scrollOffset,
		Filter:       filter,
		ReadIDs:      readIDs,
		SavedAt:      baseTime.Format(time.RFC3339),
	}
}

// Encode returns the payload as the JSON string stored in sessionStorage.
func (p SessionPayload) Encode() string {
	b, _ := json.Marshal(p)
	return string(b)
}

// CorruptSessionPayloads returns malformed sessionStorage values the app must
// tolerate: truncated JSON, wrong types, and plain garbage. Each entry is
// named so failing subtests identify the payload.
func CorruptSessionPayloads() map[string]string {
	return map[string]string{
		"truncated":    `{"scrollOffset": 120, "filter": {"readFil`,
		"wrong-types":  `{"scrollOffset": "deep", "readIds": 42}`,
		"not-json":     `<<<garbage>>>`,
		"empty-string": ``,
		"null":         `null`,
		"array-root":   `[1,2,3]`,
	}
}
