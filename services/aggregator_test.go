package services

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-aggregator/models"
	"price-aggregator/utils"
)

type fakeSource struct {
	platform models.Platform
	listings []models.Listing
	panicMsg string
	delay    time.Duration
	calls    atomic.Int32
	ctxErr   error
}

func (f *fakeSource) Platform() models.Platform { return f.platform }

func (f *fakeSource) Fetch(ctx context.Context, _ string) []models.Listing {
	f.calls.Add(1)
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	f.ctxErr = ctx.Err()
	if f.panicMsg != "" {
		panic(f.panicMsg)
	}
	return f.listings
}

func offers(p models.Platform, prices ...string) []models.Listing {
	out := make([]models.Listing, 0, len(prices))
	for i, price := range prices {
		out = append(out, models.Listing{
			Title:    string(p) + " item " + string(rune('A'+i)),
			Price:    price,
			Link:     "https://example.com/" + string(p) + "/" + string(rune('a'+i)),
			Platform: p,
		})
	}
	return out
}

func newAggregator(sets map[string][]Source) *Aggregator {
	return NewAggregator(NewCatalog(sets), utils.NewNopLogger())
}

func TestAggregatorMergesInSourceOrder(t *testing.T) {
	swiggy := &fakeSource{platform: models.Swiggy, listings: offers(models.Swiggy, "₹27"), delay: 20 * time.Millisecond}
	blinkit := &fakeSource{platform: models.Blinkit, listings: offers(models.Blinkit, "₹34", "₹35")}
	zepto := &fakeSource{platform: models.Zepto, listings: offers(models.Zepto, "₹30")}

	agg := newAggregator(map[string][]Source{"grocery": {swiggy, blinkit, zepto}})

	got, err := agg.Search(context.Background(), "milk", "grocery")
	require.NoError(t, err)
	require.Len(t, got, 4)

	assert.Equal(t, models.Swiggy, got[0].Platform)
	assert.Equal(t, models.Blinkit, got[1].Platform)
	assert.Equal(t, models.Blinkit, got[2].Platform)
	assert.Equal(t, models.Zepto, got[3].Platform)
}

func TestAggregatorSurvivesPanickingSource(t *testing.T) {
	swiggy := &fakeSource{platform: models.Swiggy, listings: offers(models.Swiggy, "₹27")}
	blinkit := &fakeSource{platform: models.Blinkit, panicMsg: "selector engine exploded"}
	zepto := &fakeSource{platform: models.Zepto, listings: offers(models.Zepto, "₹30", "₹31")}

	agg := newAggregator(map[string][]Source{"grocery": {swiggy, blinkit, zepto}})

	got, err := agg.Search(context.Background(), "milk", "grocery")
	require.NoError(t, err)

	want := append(offers(models.Swiggy, "₹27"), offers(models.Zepto, "₹30", "₹31")...)
	assert.Equal(t, want, got)
	assert.EqualValues(t, 1, blinkit.calls.Load())
}

func TestAggregatorAllEmpty(t *testing.T) {
	agg := newAggregator(map[string][]Source{"products": {
		&fakeSource{platform: models.Amazon},
		&fakeSource{platform: models.Flipkart},
	}})

	_, err := agg.Search(context.Background(), "iphone", "products")
	assert.ErrorIs(t, err, ErrNoResults)
}

func TestAggregatorUnknownCategory(t *testing.T) {
	amazon := &fakeSource{platform: models.Amazon, listings: offers(models.Amazon, "₹1")}
	agg := newAggregator(map[string][]Source{"products": {amazon}})

	_, err := agg.Search(context.Background(), "iphone", "hotels")
	assert.ErrorIs(t, err, ErrInvalidCategory)
	assert.Zero(t, amazon.calls.Load())
}

func TestAggregatorIgnoresCallerCancellation(t *testing.T) {
	amazon := &fakeSource{platform: models.Amazon, listings: offers(models.Amazon, "₹1"), delay: 10 * time.Millisecond}
	agg := newAggregator(map[string][]Source{"products": {amazon}})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := agg.Search(ctx, "iphone", "products")
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.NoError(t, amazon.ctxErr)
}

func TestAggregatorRunsSourcesConcurrently(t *testing.T) {
	var sources []Source
	for _, p := range []models.Platform{models.Swiggy, models.Blinkit, models.Zepto} {
		sources = append(sources, &fakeSource{platform: p, listings: offers(p, "₹1"), delay: 100 * time.Millisecond})
	}
	agg := newAggregator(map[string][]Source{"grocery": sources})

	start := time.Now()
	_, err := agg.Search(context.Background(), "milk", "grocery")
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 250*time.Millisecond)
}
