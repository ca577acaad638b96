// Package provenance provides field-level tracking of which source won each
// reconciled fact and why.
package provenance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/agentstation/factmap/pkg/confirmation"
	"github.com/agentstation/factmap/pkg/sources"
)

// Provenance records the origin of a reconciled field value.
type Provenance struct {
	Source     sources.ID          // Source that provided the winning value
	Status     confirmation.Status // Confirmation status of that source
	Field      string              // Field path (e.g., "name", "director")
	Value      any                 // The selected value
	Timestamp  time.Time           // Capture time of the winning observation
	Candidates int                 // How many observations competed
	Reason     string              // Why this observation was selected
}

// Map tracks provenance for multiple records; the key is "recordID:field".
type Map map[string]Provenance

// Tracker manages provenance tracking during reconciliation.
type Tracker interface {
	// Track records provenance for a field
	Track(recordID, field string, p Provenance)

	// Find retrieves provenance for a specific field
	Find(recordID, field string) (Provenance, bool)

	// FindByRecord retrieves all provenance for a record, keyed by field
	FindByRecord(recordID string) map[string]Provenance

	// Map returns the complete provenance map
	Map() Map

	// Clear removes all provenance data
	Clear()
}

// tracker is the default implementation.
type tracker struct {
	provenance Map
	enabled    bool
}

// NewTracker creates a new provenance tracker.
func NewTracker(enabled bool) Tracker {
	return &tracker{
		provenance: make(Map),
		enabled:    enabled,
	}
}

// Track records provenance for a field.
func (t *tracker) Track(recordID, field string, p Provenance) {
	if !t.enabled {
		return
	}
	if p.Timestamp.IsZero() {
		p.Timestamp = time.Now()
	}
	t.provenance[makeKey(recordID, field)] = p
}

// Find retrieves provenance for a specific field.
func (t *tracker) Find(recordID, field string) (Provenance, bool) {
	p, ok := t.provenance[makeKey(recordID, field)]
	return p, ok
}

// FindByRecord retrieves all provenance for a record, keyed by field.
func (t *tracker) FindByRecord(recordID string) map[string]Provenance {
	prefix := recordID + ":"
	result := make(map[string]Provenance)
	for key, p := range t.provenance {
		if strings.HasPrefix(key, prefix) {
			result[strings.TrimPrefix(key, prefix)] = p
		}
	}
	return result
}

// Map returns the complete provenance map.
func (t *tracker) Map() Map {
	return t.provenance
}

// Clear removes all provenance data.
func (t *tracker) Clear() {
	t.provenance = make(Map)
}

func makeKey(recordID, field string) string {
	return recordID + ":" + field
}

// Summary renders a sorted human-readable listing of the map, one line per
// tracked field.
func (m Map) Summary() string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, key := range keys {
		p := m[key]
		fmt.Fprintf(&b, "%s <- %s (%s, %d candidates): %s\n",
			key, p.Source, p.Status, p.Candidates, p.Reason)
	}
	return b.String()
}
