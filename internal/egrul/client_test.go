package egrul_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/factmap/internal/egrul"
	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/sources"
)

const resultPage = `<html><body>
<div class="res-row">
	<a href="/card/1">ООО "ВЫМПЕЛ"</a>
	125009, ГОРОД МОСКВА, УЛИЦА ТВЕРСКАЯ, Д. 1
	ГЕНЕРАЛЬНЫЙ ДИРЕКТОР: ИВАНОВ ИВАН ИВАНОВИЧ ОГРН: 1027700132195
	ИНН: 7736207543
</div>
</body></html>`

const emptyPage = `<html><body><div class="no-results">Ничего не найдено</div></body></html>`

func testServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func fastClient(srv *httptest.Server, opts ...egrul.Option) *egrul.Client {
	base := []egrul.Option{
		egrul.WithBaseURL(srv.URL),
		egrul.WithRateLimit(time.Millisecond),
	}
	return egrul.New(append(base, opts...)...)
}

func TestLookup(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7736207543", r.URL.Query().Get("query"))
		_, _ = w.Write([]byte(resultPage))
	})

	card, err := fastClient(srv).Lookup(context.Background(), "7736207543")
	require.NoError(t, err)

	assert.True(t, card.Found)
	assert.Equal(t, `ООО "ВЫМПЕЛ"`, card.Name)
	assert.Equal(t, "ИВАНОВ ИВАН ИВАНОВИЧ", card.Director)
	assert.Contains(t, card.Address, "УЛИЦА ТВЕРСКАЯ")
	assert.NotContains(t, card.Address, "ОГРН")
	assert.NotContains(t, card.Address, "ВЫМПЕЛ")
	assert.False(t, card.FetchedAt.IsZero())
}

func TestLookupNotFound(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(emptyPage))
	})

	card, err := fastClient(srv).Lookup(context.Background(), "1234567890")
	require.NoError(t, err)
	assert.False(t, card.Found)
	assert.Nil(t, card.Observations())
}

func TestLookupEmptyINN(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(emptyPage))
	})

	_, err := fastClient(srv).Lookup(context.Background(), "")
	assert.True(t, errors.IsValidationError(err))
}

func TestLookupRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(resultPage))
	})

	card, err := fastClient(srv, egrul.WithRetries(2)).Lookup(context.Background(), "7736207543")
	require.NoError(t, err)
	assert.True(t, card.Found)
	assert.Equal(t, int32(2), calls.Load())
}

func TestLookupGivesUpAfterRetries(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := fastClient(srv, egrul.WithRetries(1)).Lookup(context.Background(), "7736207543")
	require.Error(t, err)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusServiceUnavailable, apiErr.StatusCode)
}

func TestObservations(t *testing.T) {
	srv := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(resultPage))
	})

	card, err := fastClient(srv).Lookup(context.Background(), "7736207543")
	require.NoError(t, err)

	facts := card.Observations()
	require.Len(t, facts, 3)
	for _, field := range []reconcile.Field{reconcile.FieldName, reconcile.FieldDirector, reconcile.FieldAddress} {
		obs := facts[field]
		require.Len(t, obs, 1, "field %s", field)
		assert.Equal(t, sources.AuditRu, obs[0].Source)
	}

	// The scraped card feeds straight into the reconciler.
	winner, err := reconcile.Select(facts[reconcile.FieldName])
	require.NoError(t, err)
	assert.Equal(t, `ООО "ВЫМПЕЛ"`, winner.Value)
}
