package marketstack

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"strings"
	"time"

	"quotescore/internal/quote"
)

// eodResponse is the strict intermediate schema for the EOD endpoint. Only
// the fields the pipeline consumes are decoded; every numeric field is
// optional because the provider omits them freely.
type eodResponse struct {
	Data []eodItem `json:"data"`
}

type eodItem struct {
	Symbol string   `json:"symbol"`
	Open   *float64 `json:"open"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
	Date   string   `json:"date"`
}

// EODLatest retrieves the single most recent end-of-day record for every
// requested symbol in one grouped request. On 429 the request is retried
// per the configured RetryPolicy with exponentially growing delays; after
// the budget is spent the last rate-limited response surfaces as a
// rate_limit error. A 404 is a valid empty result, not an error. The
// client never substitutes stale or fabricated data.
func (c *Client) EODLatest(ctx context.Context, symbols []string) ([]quote.UpstreamRecord, error) {
	query := maps.Clone(c.query)
	query.Set("symbols", strings.Join(symbols, ","))
	query.Set("limit", "1")
	url := fmt.Sprintf("%s/v1/eod?%s", c.baseURL, query.Encode())

	attempts := c.retry.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	delay := c.retry.BaseDelay

	for i := 0; ; i++ {
		records, err := c.eodOnce(ctx, url)
		if err == nil {
			return records, nil
		}
		var qerr *quote.Error
		if !errors.As(err, &qerr) || qerr.Kind != quote.KindRateLimited || i >= attempts-1 {
			return nil, err
		}
		if serr := c.sleep(ctx, delay); serr != nil {
			return nil, quote.Wrap(quote.KindUpstream, serr)
		}
		if c.retry.Multiplier > 0 {
			delay = time.Duration(float64(delay) * c.retry.Multiplier)
		}
	}
}

// eodOnce performs a single request/decode cycle.
func (c *Client) eodOnce(ctx context.Context, url string) ([]quote.UpstreamRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, quote.Wrap(quote.KindUpstream, fmt.Errorf("creating request: %w", err))
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, quote.Wrap(quote.KindUpstream, fmt.Errorf("performing request: %w", err))
	}
	defer res.Body.Close()

	switch res.StatusCode {
	case http.StatusOK:
		break

	case http.StatusNotFound:
		// Unknown symbols answer 404; the reconciler fills the gaps.
		return []quote.UpstreamRecord{}, nil

	case http.StatusTooManyRequests:
		return nil, quote.E(quote.KindRateLimited, readBody(res.Body))

	default:
		return nil, quote.E(quote.KindUpstream, fmt.Sprintf("status %d: %s", res.StatusCode, readBody(res.Body)))
	}

	var body eodResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return nil, quote.Wrap(quote.KindUpstream, fmt.Errorf("decoding eod response: %w", err))
	}

	records := make([]quote.UpstreamRecord, 0, len(body.Data))
	for _, it := range body.Data {
		records = append(records, quote.UpstreamRecord{
			Symbol: it.Symbol,
			Open:   it.Open,
			Close:  it.Close,
			Volume: it.Volume,
		})
	}
	return records, nil
}

// readBody drains up to 2KiB of an error body for the failure detail.
func readBody(r io.Reader) string {
	b, _ := io.ReadAll(io.LimitReader(r, 2<<10))
	return strings.TrimSpace(string(b))
}
