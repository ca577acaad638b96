package reconcile

import (
	"github.com/agentstation/factmap/pkg/confirmation"
	"github.com/agentstation/factmap/pkg/provenance"
	"github.com/agentstation/factmap/pkg/sources"
)

// Option configures a Reconciler.
type Option func(*Reconciler) error

// WithHierarchy overrides the canonical source hierarchy. The ordering must
// be a permutation of the full source set.
func WithHierarchy(hierarchy []sources.ID) Option {
	return func(r *Reconciler) error {
		if err := sources.ValidateHierarchy(hierarchy); err != nil {
			return err
		}
		r.hierarchy = append([]sources.ID(nil), hierarchy...)
		return nil
	}
}

// WithConfirmations overrides the canonical source-to-status mapping. The
// mapping must cover exactly the closed source set.
func WithConfirmations(m map[sources.ID]confirmation.Status) Option {
	return func(r *Reconciler) error {
		if err := confirmation.ValidateMap(m); err != nil {
			return err
		}
		copied := make(map[sources.ID]confirmation.Status, len(m))
		for id, s := range m {
			copied[id] = s
		}
		r.confirmations = copied
		return nil
	}
}

// WithTracking enables or disables provenance tracking for Record calls.
func WithTracking(enabled bool) Option {
	return func(r *Reconciler) error {
		r.tracker = provenance.NewTracker(enabled)
		return nil
	}
}
