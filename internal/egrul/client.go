// Package egrul fetches company cards from the EGRUL public search
// (egrul.nalog.ru) by tax identifier (INN). It is an ingestion collaborator:
// it produces observation rows tagged audit_ru and knows nothing about
// reconciliation.
package egrul

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/agentstation/utc"
	"golang.org/x/time/rate"

	"github.com/agentstation/factmap/pkg/errors"
	"github.com/agentstation/factmap/pkg/logging"
	"github.com/agentstation/factmap/pkg/reconcile"
	"github.com/agentstation/factmap/pkg/sources"
)

// DefaultBaseURL is the EGRUL search endpoint.
const DefaultBaseURL = "https://egrul.nalog.ru"

// defaultTimeout bounds a single search request.
const defaultTimeout = 20 * time.Second

// Card is one company card extracted from an EGRUL search result.
type Card struct {
	INN       string
	Name      string
	Director  string
	Address   string
	Found     bool
	FetchedAt utc.Time
}

// Client queries the EGRUL search page and parses result cards.
type Client struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	retries int
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the search endpoint (used in tests).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithHTTPClient overrides the HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		c.http = h
	}
}

// WithRateLimit sets the minimum interval between lookups. Public registry
// endpoints throttle aggressive crawlers, so the default is one request per
// second.
func WithRateLimit(interval time.Duration) Option {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Every(interval), 1)
	}
}

// WithRetries sets how many times a failed request is retried.
func WithRetries(n int) Option {
	return func(c *Client) {
		c.retries = n
	}
}

// New creates an EGRUL client.
func New(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		http:    &http.Client{Timeout: defaultTimeout},
		limiter: rate.NewLimiter(rate.Every(time.Second), 1),
		retries: 2,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Lookup fetches the company card for the given INN. A search with no
// results returns a card with Found set to false, not an error; errors are
// reserved for transport and decode failures.
func (c *Client) Lookup(ctx context.Context, inn string) (Card, error) {
	if inn == "" {
		return Card{}, errors.NewValidationError("inn", inn, "cannot be empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return Card{}, err
	}

	log := logging.Ctx(ctx)
	endpoint := c.baseURL + "/search-result?" + url.Values{"query": {inn}}.Encode()

	var resp *http.Response
	var err error
	for attempt := 0; attempt <= c.retries; attempt++ {
		if attempt > 0 {
			log.Debug().Str("inn", inn).Int("attempt", attempt).Msg("retrying EGRUL lookup")
		}
		resp, err = c.get(ctx, endpoint)
		if err == nil {
			break
		}
		if ctx.Err() != nil {
			return Card{}, ctx.Err()
		}
	}
	if err != nil {
		return Card{}, err
	}
	defer resp.Body.Close()

	card, err := parseCard(inn, resp.Body)
	if err != nil {
		return Card{}, err
	}
	card.FetchedAt = utc.Now()

	if !card.Found {
		log.Warn().Str("inn", inn).Msg("company not found in EGRUL")
	} else {
		log.Info().Str("inn", inn).Str("name", card.Name).Msg("fetched EGRUL card")
	}
	return card, nil
}

// get performs a single GET and converts non-200 responses to APIErrors.
func (c *Client) get(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.WrapResource("create", "request", "GET "+endpoint, err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &errors.APIError{Endpoint: endpoint, Message: "request failed", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, errors.NewAPIError(endpoint, resp.StatusCode, "unexpected status")
	}
	return resp, nil
}

// Observations converts a found card into observation rows tagged audit_ru.
// Missing facts are skipped rather than emitted as empty values.
func (c *Card) Observations() map[reconcile.Field][]reconcile.Observation {
	if !c.Found {
		return nil
	}
	facts := make(map[reconcile.Field][]reconcile.Observation, 3)
	add := func(field reconcile.Field, value string) {
		if value == "" {
			return
		}
		facts[field] = []reconcile.Observation{{
			Value:     value,
			Source:    sources.AuditRu,
			Timestamp: c.FetchedAt,
		}}
	}
	add(reconcile.FieldName, c.Name)
	add(reconcile.FieldDirector, c.Director)
	add(reconcile.FieldAddress, c.Address)
	return facts
}
