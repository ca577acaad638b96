// Package factmap reconciles conflicting company-fact observations gathered
// from multiple sources of varying trustworthiness and selects the single
// most authoritative value for each fact.
//
// The facade ties the ingestion collaborators (file readers, the EGRUL
// client) to the reconciler. The decision logic itself lives in
// pkg/reconcile with its configuration tables in pkg/sources and
// pkg/confirmation.
package factmap

import (
	"context"
	"fmt"
	"sort"

	"github.com/agentstation/factmap/internal/egrul"
	"github.com/agentstation/factmap/internal/readers"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/provenance"
	"github.com/agentstation/factmap/pkg/reconcile"
)

// Factmap reconciles observation files into company records.
type Factmap interface {
	// ReconcileFiles reads observation rows from the given files and
	// returns one reconciled record per company, sorted by INN.
	ReconcileFiles(ctx context.Context, paths ...string) ([]reconcile.Record, error)

	// Provenance returns field-level provenance collected so far.
	// Empty unless tracking was enabled with WithTracking.
	Provenance() provenance.Map
}

// factmap is the internal implementation of the Factmap interface.
type factmap struct {
	config     *config
	factory    *readers.Factory
	reconciler *reconcile.Reconciler
	egrul      *egrul.Client
}

// New creates a new Factmap instance with the given options.
func New(opts ...Option) (Factmap, error) {
	f := &factmap{config: defaultConfig()}
	if err := f.options(opts...); err != nil {
		return nil, fmt.Errorf("applying options: %w", err)
	}

	f.factory = readers.NewFactory()
	f.factory.Register(readers.NewCSVReader(f.config.csvOptions...))

	reconciler, err := reconcile.New(f.config.reconcileOptions...)
	if err != nil {
		return nil, fmt.Errorf("configuring reconciler: %w", err)
	}
	f.reconciler = reconciler

	if f.config.liveLookups {
		f.egrul = egrul.New(f.config.egrulOptions...)
	}

	return f, nil
}

// ReconcileFiles reads observation rows from the given files and returns one
// reconciled record per company.
func (f *factmap) ReconcileFiles(ctx context.Context, paths ...string) ([]reconcile.Record, error) {
	var rows []readers.Row
	for _, path := range paths {
		batch, err := f.factory.Read(ctx, path)
		if err != nil {
			return nil, err
		}
		rows = append(rows, batch...)
	}

	grouped, err := readers.Group(rows)
	if err != nil {
		return nil, err
	}

	if f.egrul != nil {
		if err := f.augment(ctx, grouped); err != nil {
			return nil, err
		}
	}

	inns := make([]string, 0, len(grouped))
	for inn := range grouped {
		inns = append(inns, inn)
	}
	sort.Strings(inns)

	records := make([]reconcile.Record, 0, len(inns))
	for _, inn := range inns {
		record, err := f.reconciler.Record(inn, grouped[inn])
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

// augment appends a live EGRUL observation to every company's facts. EGRUL
// misses are logged and skipped; file observations still reconcile.
func (f *factmap) augment(ctx context.Context, grouped map[string]map[reconcile.Field][]reconcile.Observation) error {
	for inn, facts := range grouped {
		card, err := f.egrul.Lookup(ctx, inn)
		if err != nil {
			if ctx.Err() != nil {
				return err
			}
			logging.Ctx(ctx).Warn().Str("inn", inn).Err(err).Msg("EGRUL lookup failed, reconciling file data only")
			continue
		}
		for field, obs := range card.Observations() {
			facts[field] = append(facts[field], obs...)
		}
	}
	return nil
}

// Provenance returns field-level provenance collected so far.
func (f *factmap) Provenance() provenance.Map {
	return f.reconciler.Provenance()
}
