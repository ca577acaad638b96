// Package reconcile selects the single most authoritative observation among
// conflicting ones gathered from multiple sources.
//
// Selection is a three-level cascade: confirmation status dominates source
// trust, which dominates recency. An unconfirmed observation from a trusted
// source must never outrank a confirmed observation from a lesser source;
// recency is only a last resort among otherwise-equal-quality observations.
//
// The reconciler is pure and stateless between calls (provenance tracking
// aside): it reads its input and two static configuration tables, performs
// no I/O, and is safe for concurrent use with independent inputs.
//
// Example usage:
//
//	winner, err := reconcile.Select(observations)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("selected %v from %s\n", winner.Value, winner.Source)
package reconcile

import (
	"fmt"

	"github.com/agentstation/factmap/pkg/confirmation"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/provenance"
	"github.com/agentstation/factmap/pkg/sources"
)

// Reconciler selects winning observations using a source hierarchy and a
// confirmation policy. The zero value is not usable; construct with New.
type Reconciler struct {
	hierarchy     []sources.ID
	confirmations map[sources.ID]confirmation.Status
	tracker       provenance.Tracker
}

// New creates a new Reconciler with options. Without options it uses the
// canonical hierarchy and confirmation map.
func New(opts ...Option) (*Reconciler, error) {
	r := &Reconciler{
		hierarchy:     sources.Hierarchy(),
		confirmations: confirmation.Map(),
		tracker:       provenance.NewTracker(false),
	}
	for _, opt := range opts {
		if err := opt(r); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Select returns the single most authoritative observation using the
// canonical hierarchy and confirmation map. It fails with
// errors.ErrEmptyInput on an empty sequence and with
// errors.ErrUnknownSource / errors.ErrUnmappedSource when an observation
// carries a tag outside the closed configuration set.
func Select(observations []Observation) (Observation, error) {
	r, err := New()
	if err != nil {
		return Observation{}, err
	}
	return r.Select(observations)
}

// Select returns the single most authoritative observation. The result is
// always an element of the input, never a synthesized or merged value.
func (r *Reconciler) Select(observations []Observation) (Observation, error) {
	winner, _, err := r.selectWithReason(observations)
	return winner, err
}

// selectWithReason runs the cascade and reports why the winner was chosen.
func (r *Reconciler) selectWithReason(observations []Observation) (Observation, string, error) {
	if len(observations) == 0 {
		return Observation{}, "", errors.ErrEmptyInput
	}

	// Partition by confirmation status, validating every tag up front so a
	// foreign source fails the whole call rather than silently losing.
	groups := make(map[confirmation.Status][]Observation)
	for _, obs := range observations {
		if _, err := sources.RankIn(r.hierarchy, obs.Source); err != nil {
			return Observation{}, "", err
		}
		status, err := confirmation.OfIn(r.confirmations, obs.Source)
		if err != nil {
			return Observation{}, "", err
		}
		groups[status] = append(groups[status], obs)
	}

	// Keep only the best-ranked confirmation group.
	var best confirmation.Status
	found := false
	for status := range groups {
		if !found {
			best, found = status, true
			continue
		}
		cmp, err := confirmation.Compare(status, best)
		if err != nil {
			return Observation{}, "", err
		}
		if cmp < 0 {
			best = status
		}
	}
	candidates := groups[best]

	if len(candidates) == 1 {
		return candidates[0], fmt.Sprintf("only observation with %s status", best), nil
	}

	// Keep only the best source rank within the group. Filtering preserves
	// input order, which step 3 relies on for stability.
	bestRank := -1
	for _, obs := range candidates {
		rank, err := sources.RankIn(r.hierarchy, obs.Source)
		if err != nil {
			return Observation{}, "", err
		}
		if bestRank < 0 || rank < bestRank {
			bestRank = rank
		}
	}
	finalists := candidates[:0:0]
	for _, obs := range candidates {
		rank, err := sources.RankIn(r.hierarchy, obs.Source)
		if err != nil {
			return Observation{}, "", err
		}
		if rank == bestRank {
			finalists = append(finalists, obs)
		}
	}

	if len(finalists) == 1 {
		return finalists[0], fmt.Sprintf("highest-ranked source within %s tier", best), nil
	}

	// Latest timestamp wins. Strict comparison keeps the earliest input
	// element when timestamps tie exactly.
	winner := finalists[0]
	for _, obs := range finalists[1:] {
		if obs.Timestamp.After(winner.Timestamp) {
			winner = obs
		}
	}
	return winner, "latest timestamp among equally trusted observations", nil
}

// Record reconciles every fact of a company independently and returns the
// assembled record. Facts with no observations are omitted from the result;
// a record with no facts at all fails with errors.ErrEmptyInput.
func (r *Reconciler) Record(inn string, facts map[Field][]Observation) (Record, error) {
	if inn == "" {
		return Record{}, errors.NewValidationError("inn", inn, "cannot be empty")
	}

	record := Record{INN: inn, Facts: make(map[Field]Observation, len(facts))}
	for field, observations := range facts {
		if len(observations) == 0 {
			continue
		}
		winner, reason, err := r.selectWithReason(observations)
		if err != nil {
			return Record{}, errors.WrapResource("reconcile", "fact", fmt.Sprintf("%s/%s", inn, field), err)
		}
		record.Facts[field] = winner

		status, err := confirmation.OfIn(r.confirmations, winner.Source)
		if err != nil {
			return Record{}, err
		}
		r.tracker.Track(inn, string(field), provenance.Provenance{
			Source:     winner.Source,
			Status:     status,
			Field:      string(field),
			Value:      winner.Value,
			Timestamp:  winner.Timestamp.Time,
			Candidates: len(observations),
			Reason:     reason,
		})
	}

	if len(record.Facts) == 0 {
		return Record{}, errors.ErrEmptyInput
	}
	return record, nil
}

// Provenance returns the provenance collected so far. Tracking is off by
// default; enable it with WithTracking.
func (r *Reconciler) Provenance() provenance.Map {
	return r.tracker.Map()
}
