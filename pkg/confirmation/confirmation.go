// Package confirmation maps every data source to a confirmation status and
// defines the strict ordering over those statuses. Confirmation status is a
// coarse trust class: it dominates source rank during reconciliation, so an
// unconfirmed manual entry never outranks automatically confirmed registry
// data regardless of how fresh it is.
//
// Like the source hierarchy, the status order and source mapping are
// process-wide, read-only configuration.
package confirmation

import (
	"slices"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/sources"
)

// Status represents a confirmation status tag.
type Status string

// String returns the string representation of a status.
func (s Status) String() string {
	return string(s)
}

// The closed set of confirmation statuses.
const (
	// Confirmed marks data confirmed automatically by a registry feed.
	Confirmed Status = "confirmed"
	// ManualConfirmed marks operator-entered data that passed review.
	ManualConfirmed Status = "manual_confirmed"
	// ManualUnconfirmed marks operator-entered data awaiting review.
	ManualUnconfirmed Status = "manual_unconfirmed"
)

// Order returns the canonical priority ordering of all statuses, highest
// priority first. The index of a status is its rank.
func Order() []Status {
	return []Status{
		Confirmed,
		ManualConfirmed,
		ManualUnconfirmed,
	}
}

// Statuses returns all defined statuses.
func Statuses() []Status {
	return Order()
}

// IsValid returns true if the status is one of the defined constants.
func (s Status) IsValid() bool {
	return slices.Contains(Statuses(), s)
}

// statusBySource is the total map from source to confirmation status.
// Its domain must be exactly sources.IDs(); ValidateMap checks this.
var statusBySource = map[sources.ID]Status{
	sources.FSIN:              Confirmed,
	sources.Rosstat:           Confirmed,
	sources.AuditRu:           Confirmed,
	sources.ManualConfirmed:   ManualConfirmed,
	sources.ManualUnconfirmed: ManualUnconfirmed,
}

// Map returns a copy of the canonical source-to-status mapping.
func Map() map[sources.ID]Status {
	m := make(map[sources.ID]Status, len(statusBySource))
	for id, s := range statusBySource {
		m[id] = s
	}
	return m
}

// Of returns the confirmation status assigned to the source. The mapping is
// total over the closed source set, so a miss means a foreign tag reached
// the core; it returns errors.ErrUnmappedSource.
func Of(src sources.ID) (Status, error) {
	return OfIn(statusBySource, src)
}

// OfIn performs the status lookup in the given mapping.
func OfIn(m map[sources.ID]Status, src sources.ID) (Status, error) {
	if s, ok := m[src]; ok {
		return s, nil
	}
	return "", errors.NewUnmappedSourceError(string(src))
}

// Rank returns the status's position in the canonical order.
// Rank 0 is the highest priority status.
func Rank(s Status) (int, error) {
	if i := slices.Index(Order(), s); i >= 0 {
		return i, nil
	}
	return 0, errors.NewValidationError("status", s, "not a defined confirmation status")
}

// Compare compares two statuses by rank. It returns -1 if a has higher
// priority than b, 1 if b has higher priority, and 0 if they are equal.
func Compare(a, b Status) (int, error) {
	ra, err := Rank(a)
	if err != nil {
		return 0, err
	}
	rb, err := Rank(b)
	if err != nil {
		return 0, err
	}
	switch {
	case ra < rb:
		return -1, nil
	case ra > rb:
		return 1, nil
	default:
		return 0, nil
	}
}

// ValidateMap reports whether the mapping covers exactly the closed source
// set: every source mapped, no foreign source present, every status defined.
func ValidateMap(m map[sources.ID]Status) error {
	for _, id := range sources.IDs() {
		s, ok := m[id]
		if !ok {
			return errors.NewUnmappedSourceError(string(id))
		}
		if !s.IsValid() {
			return errors.NewValidationError("status", s, "not a defined confirmation status")
		}
	}
	for id := range m {
		if !id.IsValid() {
			return errors.NewUnknownSourceError(string(id))
		}
	}
	return nil
}
