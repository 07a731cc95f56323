package quote_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"quotescore/internal/cache"
	"quotescore/internal/quote"
)

func toPtr[T any](v T) *T { return &v }

// fakeFetcher replays canned upstream records and counts calls.
type fakeFetcher struct {
	records []quote.UpstreamRecord
	err     error
	calls   int
}

func (f *fakeFetcher) EODLatest(_ context.Context, symbols []string) ([]quote.UpstreamRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func twoSymbolRecords() []quote.UpstreamRecord {
	return []quote.UpstreamRecord{
		{Symbol: "AAPL", Open: toPtr(145.0), Close: toPtr(150.0), Volume: toPtr(1000.0)},
		{Symbol: "MSFT", Open: toPtr(300.0), Close: toPtr(300.0), Volume: toPtr(500.0)},
	}
}

func TestSnapshot_MissThenCacheHit(t *testing.T) {
	t.Parallel()

	// Arrange: a service over a fake upstream and a real memory cache
	fetcher := &fakeFetcher{records: twoSymbolRecords()}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), true, nil)

	// Act: first call misses, second hits
	first, err := svc.Snapshot(t.Context(), "aapl;msft")
	require.NoError(t, err)
	second, err := svc.Snapshot(t.Context(), "aapl;msft")
	require.NoError(t, err)

	// Assert: one upstream call, cached flag flips, data identical
	require.Equal(t, 1, fetcher.calls)
	require.False(t, first.Cached)
	require.True(t, second.Cached)
	require.Equal(t, first.Data, second.Data)

	// Assert: output order mirrors the request
	require.Equal(t, "AAPL", first.Data[0].Symbol)
	require.Equal(t, "MSFT", first.Data[1].Symbol)
	require.Greater(t, first.Data[0].Score, 50.0)
	require.Less(t, first.Data[1].Score, 50.0)
}

func TestSnapshot_MissingCredentialFailsBeforeAnything(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{records: twoSymbolRecords()}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), false, nil)

	// Act: any input, valid or not, fails identically
	for _, raw := range []string{"AAPL;MSFT", "", ";;;"} {
		snap, err := svc.Snapshot(t.Context(), raw)

		// Assert: config error, no upstream call attempted
		require.Nil(t, snap)
		var qerr *quote.Error
		require.ErrorAs(t, err, &qerr)
		require.Equal(t, quote.KindConfig, qerr.Kind)
	}
	require.Zero(t, fetcher.calls)
}

func TestSnapshot_InvalidSymbols(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), true, nil)

	snap, err := svc.Snapshot(t.Context(), " ; , ")
	require.Nil(t, snap)
	var qerr *quote.Error
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, quote.KindValidation, qerr.Kind)
	require.Zero(t, fetcher.calls)
}

func TestSnapshot_FailureWritesNothing(t *testing.T) {
	t.Parallel()

	// Arrange: the first fetch fails
	fetcher := &fakeFetcher{err: quote.E(quote.KindRateLimited, "slow down")}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), true, nil)

	snap, err := svc.Snapshot(t.Context(), "AAPL;MSFT")
	require.Nil(t, snap)
	var qerr *quote.Error
	require.ErrorAs(t, err, &qerr)
	require.Equal(t, quote.KindRateLimited, qerr.Kind)

	// Arrange: upstream recovers
	fetcher.err = nil
	fetcher.records = twoSymbolRecords()

	// Act: the retry is a fresh fetch, not a cache hit
	snap, err = svc.Snapshot(t.Context(), "AAPL;MSFT")
	require.NoError(t, err)
	require.False(t, snap.Cached)
	require.Equal(t, 2, fetcher.calls)
}

func TestSnapshot_ReorderedSetsAreDistinctEntries(t *testing.T) {
	t.Parallel()

	fetcher := &fakeFetcher{records: twoSymbolRecords()}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), true, nil)

	_, err := svc.Snapshot(t.Context(), "AAPL;MSFT")
	require.NoError(t, err)
	snap, err := svc.Snapshot(t.Context(), "MSFT;AAPL")
	require.NoError(t, err)

	// the key preserves request order, so this was a second fetch
	require.False(t, snap.Cached)
	require.Equal(t, 2, fetcher.calls)
	require.Equal(t, "MSFT", snap.Data[0].Symbol)
}

func TestSnapshot_UpstreamOmissionStillScored(t *testing.T) {
	t.Parallel()

	// upstream only knows AAPL
	fetcher := &fakeFetcher{records: []quote.UpstreamRecord{
		{Symbol: "AAPL", Open: toPtr(145.0), Close: toPtr(150.0), Volume: toPtr(1000.0)},
	}}
	svc := quote.NewService(fetcher, cache.NewMemory(time.Minute), true, nil)

	snap, err := svc.Snapshot(t.Context(), "AAPL;NOPE")
	require.NoError(t, err)
	require.Len(t, snap.Data, 2)

	missing := snap.Data[1]
	require.Equal(t, "NOPE", missing.Symbol)
	require.Empty(t, missing.Name)
	require.Nil(t, missing.Price)
	require.Nil(t, missing.ChangePct)
	require.Nil(t, missing.Volume)
	require.NotZero(t, missing.Score)
}
