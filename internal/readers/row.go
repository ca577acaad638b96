package readers

import (
	"strings"
	"time"

	"github.com/agentstation/utc"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/sources"
)

// Row is one normalized observation row as it appears in ingestion files:
// a company identifier, the fact being observed, the observed value, the
// source tag, and the capture time.
type Row struct {
	INN       string     `json:"inn" yaml:"inn" xml:"inn,attr"`
	Field     string     `json:"field" yaml:"field" xml:"field,attr"`
	Value     string     `json:"value" yaml:"value" xml:"value"`
	Source    sources.ID `json:"source" yaml:"source" xml:"source,attr"`
	Timestamp string     `json:"timestamp" yaml:"timestamp" xml:"timestamp,attr"`
}

// sourceID normalizes a raw source cell to a source tag. Validation against
// the closed set happens in Row.Observation.
func sourceID(raw string) sources.ID {
	return sources.ID(strings.ToLower(strings.TrimSpace(raw)))
}

// timestampFormats lists the accepted capture-time layouts, tried in order.
var timestampFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// ParseTimestamp parses a row timestamp in any accepted layout.
func ParseTimestamp(s string) (utc.Time, error) {
	for _, layout := range timestampFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return utc.Time{Time: t.UTC()}, nil
		}
	}
	return utc.Time{}, errors.NewValidationError("timestamp", s, "not a recognized time format")
}

// Observation converts the row to a reconciler observation, validating the
// source tag against the closed set and parsing the capture time.
func (r Row) Observation() (reconcile.Observation, error) {
	if !r.Source.IsValid() {
		return reconcile.Observation{}, errors.NewUnknownSourceError(string(r.Source))
	}
	ts, err := ParseTimestamp(r.Timestamp)
	if err != nil {
		return reconcile.Observation{}, err
	}
	return reconcile.Observation{
		Value:     r.Value,
		Source:    r.Source,
		Timestamp: ts,
	}, nil
}

// Group converts rows into per-company fact observations, preserving row
// order within each fact so the reconciler's input-order stability holds.
func Group(rows []Row) (map[string]map[reconcile.Field][]reconcile.Observation, error) {
	grouped := make(map[string]map[reconcile.Field][]reconcile.Observation)
	for _, row := range rows {
		if row.INN == "" {
			return nil, errors.NewValidationError("inn", row, "row has no company identifier")
		}
		obs, err := row.Observation()
		if err != nil {
			return nil, err
		}
		facts, ok := grouped[row.INN]
		if !ok {
			facts = make(map[reconcile.Field][]reconcile.Observation)
			grouped[row.INN] = facts
		}
		field := reconcile.Field(row.Field)
		facts[field] = append(facts[field], obs)
	}
	return grouped, nil
}
