// Package sources defines the closed set of company-data sources and their
// trust hierarchy. Every observation carries a source tag; the hierarchy
// assigns each tag a strict rank (lower rank = more trusted) used by the
// reconciler to break conflicts between sources.
//
// The hierarchy is process-wide, read-only configuration. It never changes
// at runtime, so all lookups here are pure and safe for concurrent use.
//
// Example usage:
//
//	rank, err := sources.Rank(sources.Rosstat)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Compare two sources by trust
//	if cmp, _ := sources.Compare(sources.FSIN, sources.AuditRu); cmp < 0 {
//	    // FSIN outranks audit.ru
//	}
package sources

import (
	"slices"

	"github.com/agentstation/factmap/pkg/errors"
)

// ID represents the identifier of a data source.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// The closed set of source IDs.
const (
	// FSIN is the Federal Penitentiary Service registry feed.
	FSIN ID = "fsin"
	// Rosstat is the Federal State Statistics Service registry feed.
	Rosstat ID = "rosstat"
	// AuditRu is the public audit disclosure data (audit.ru).
	AuditRu ID = "audit_ru"
	// ManualConfirmed is operator-entered data that passed review.
	ManualConfirmed ID = "manual_confirmed"
	// ManualUnconfirmed is operator-entered data awaiting review.
	ManualUnconfirmed ID = "manual_unconfirmed"
)

// labels maps source IDs to human-readable names.
var labels = map[ID]string{
	FSIN:              "FSIN registry",
	Rosstat:           "Rosstat registry",
	AuditRu:           "audit.ru disclosures",
	ManualConfirmed:   "manual entry (confirmed)",
	ManualUnconfirmed: "manual entry (unconfirmed)",
}

// Name returns the human-readable label for the source.
func (id ID) Name() string {
	if name, ok := labels[id]; ok {
		return name
	}
	return string(id)
}

// Hierarchy returns the canonical trust ordering of all sources, most trusted
// first. The slice is a permutation of IDs(): every source appears exactly
// once, and its index is its rank.
func Hierarchy() []ID {
	return []ID{
		FSIN,
		Rosstat,
		AuditRu,
		ManualConfirmed,
		ManualUnconfirmed,
	}
}

// IDs returns all defined source IDs.
// This provides a convenient way to iterate over all ID values.
func IDs() []ID {
	return Hierarchy()
}

// IsValid returns true if the ID is one of the defined constants.
// Uses IDs() to ensure consistency with the authoritative id list.
func (id ID) IsValid() bool {
	return slices.Contains(IDs(), id)
}

// Rank returns the source's position in the canonical hierarchy.
// Rank 0 is the most trusted source. Upstream collaborators may pass
// loosely-typed input, so an ID outside the closed set returns
// errors.ErrUnknownSource rather than a sentinel rank.
func Rank(id ID) (int, error) {
	return RankIn(Hierarchy(), id)
}

// RankIn returns the source's position in the given hierarchy.
// It backs Rank and lets callers with a custom hierarchy reuse the
// same lookup and failure semantics.
func RankIn(hierarchy []ID, id ID) (int, error) {
	if i := slices.Index(hierarchy, id); i >= 0 {
		return i, nil
	}
	return 0, errors.NewUnknownSourceError(string(id))
}

// Compare compares two sources by hierarchy rank. It returns -1 if a
// outranks b, 1 if b outranks a, and 0 only if a == b (ranks are unique,
// so equal rank implies the same source).
func Compare(a, b ID) (int, error) {
	return CompareIn(Hierarchy(), a, b)
}

// CompareIn compares two sources within the given hierarchy.
func CompareIn(hierarchy []ID, a, b ID) (int, error) {
	ra, err := RankIn(hierarchy, a)
	if err != nil {
		return 0, err
	}
	rb, err := RankIn(hierarchy, b)
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

// ValidateHierarchy reports whether the given ordering is a permutation of
// the full source set: every defined source exactly once, nothing foreign.
func ValidateHierarchy(hierarchy []ID) error {
	if len(hierarchy) != len(IDs()) {
		return errors.NewValidationError("hierarchy", hierarchy, "must contain every source exactly once")
	}
	seen := make(map[ID]bool, len(hierarchy))
	for _, id := range hierarchy {
		if !id.IsValid() {
			return errors.NewUnknownSourceError(string(id))
		}
		if seen[id] {
			return errors.NewValidationError("hierarchy", id, "duplicate source in hierarchy")
		}
		seen[id] = true
	}
	return nil
}
