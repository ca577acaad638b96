package reconcile

import (
	"github.com/agentstation/utc"

	"github.com/agentstation/factmap/pkg/sources"
)

// Observation is one candidate value for a company fact, tagged with the
// source that produced it and its capture time. Observations are immutable
// once constructed; the reconciler only reads and selects among them. The
// value is opaque payload and is never inspected for ordering or equality.
type Observation struct {
	Value     any        `json:"value" yaml:"value"`
	Source    sources.ID `json:"source" yaml:"source"`
	Timestamp utc.Time   `json:"timestamp" yaml:"timestamp"`
}

// Field identifies a company fact being reconciled.
type Field string

// String returns the string representation of a field.
func (f Field) String() string {
	return string(f)
}

// The company facts tracked by the system.
const (
	// FieldName is the company's legal name.
	FieldName Field = "name"
	// FieldDirector is the company's acting director.
	FieldDirector Field = "director"
	// FieldAddress is the company's registered address.
	FieldAddress Field = "address"
)

// Fields returns all defined fact fields.
func Fields() []Field {
	return []Field{FieldName, FieldDirector, FieldAddress}
}

// Record is a reconciled company record: one winning observation per fact,
// keyed by the company's tax identifier (INN).
type Record struct {
	INN   string                `json:"inn" yaml:"inn"`
	Facts map[Field]Observation `json:"facts" yaml:"facts"`
}
