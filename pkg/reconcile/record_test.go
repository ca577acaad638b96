package reconcile_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/sources"
)

func TestRecord(t *testing.T) {
	r, err := reconcile.New(reconcile.WithTracking(true))
	require.NoError(t, err)

	facts := map[reconcile.Field][]reconcile.Observation{
		reconcile.FieldName: {
			obs("OOO Vympel", sources.Rosstat, t0),
			obs("OOO Vympel (stale)", sources.ManualUnconfirmed, t0.Add(5*time.Hour)),
		},
		reconcile.FieldDirector: {
			obs("Ivanov I.I.", sources.FSIN, t0),
			obs("Petrov P.P.", sources.Rosstat, t0.Add(time.Hour)),
		},
		reconcile.FieldAddress: {
			obs("Moscow, Tverskaya 1", sources.ManualConfirmed, t0),
		},
	}

	record, err := r.Record("7736207543", facts)
	require.NoError(t, err)

	assert.Equal(t, "7736207543", record.INN)
	assert.Len(t, record.Facts, 3)
	assert.Equal(t, "OOO Vympel", record.Facts[reconcile.FieldName].Value)
	assert.Equal(t, "Ivanov I.I.", record.Facts[reconcile.FieldDirector].Value)
	assert.Equal(t, "Moscow, Tverskaya 1", record.Facts[reconcile.FieldAddress].Value)
}

func TestRecordProvenance(t *testing.T) {
	r, err := reconcile.New(reconcile.WithTracking(true))
	require.NoError(t, err)

	facts := map[reconcile.Field][]reconcile.Observation{
		reconcile.FieldName: {
			obs("OOO Vympel", sources.Rosstat, t0),
			obs("OOO Wimpel", sources.ManualUnconfirmed, t0.Add(time.Hour)),
		},
	}

	_, err = r.Record("7736207543", facts)
	require.NoError(t, err)

	pmap := r.Provenance()
	require.Len(t, pmap, 1)

	p, ok := pmap["7736207543:name"]
	require.True(t, ok, "expected provenance entry for the name fact")
	assert.Equal(t, sources.Rosstat, p.Source)
	assert.Equal(t, 2, p.Candidates)
	assert.NotEmpty(t, p.Reason)
	assert.NotEmpty(t, pmap.Summary())
}

func TestRecordTrackingDisabledByDefault(t *testing.T) {
	r, err := reconcile.New()
	require.NoError(t, err)

	_, err = r.Record("7736207543", map[reconcile.Field][]reconcile.Observation{
		reconcile.FieldName: {obs("OOO Vympel", sources.Rosstat, t0)},
	})
	require.NoError(t, err)
	assert.Empty(t, r.Provenance())
}

func TestRecordSkipsEmptyFacts(t *testing.T) {
	r, err := reconcile.New()
	require.NoError(t, err)

	record, err := r.Record("7736207543", map[reconcile.Field][]reconcile.Observation{
		reconcile.FieldName:     {obs("OOO Vympel", sources.AuditRu, t0)},
		reconcile.FieldDirector: {},
	})
	require.NoError(t, err)
	assert.Len(t, record.Facts, 1)
	assert.NotContains(t, record.Facts, reconcile.FieldDirector)
}

func TestRecordFailures(t *testing.T) {
	r, err := reconcile.New()
	require.NoError(t, err)

	t.Run("empty inn", func(t *testing.T) {
		_, err := r.Record("", map[reconcile.Field][]reconcile.Observation{
			reconcile.FieldName: {obs("x", sources.FSIN, t0)},
		})
		assert.True(t, errors.IsValidationError(err))
	})

	t.Run("no facts at all", func(t *testing.T) {
		_, err := r.Record("7736207543", map[reconcile.Field][]reconcile.Observation{})
		assert.True(t, errors.IsEmptyInput(err))
	})

	t.Run("foreign source inside a fact", func(t *testing.T) {
		_, err := r.Record("7736207543", map[reconcile.Field][]reconcile.Observation{
			reconcile.FieldName: {obs("x", sources.ID("egrul"), t0)},
		})
		assert.True(t, errors.IsUnknownSource(err))
	})
}
