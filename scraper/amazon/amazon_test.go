package amazon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-aggregator/models"
	"price-aggregator/scraper"
)

const resultsPage = `<html><body>
<div class="s-main-slot">
  <div data-component-type="s-search-result" data-asin="B0AAA">
    <div class="sg-col-inner">
      <img class="s-image" src="https://m.media-amazon.com/images/I/aaa.jpg">
      <a class="a-link-normal s-no-outline" href="/boAt-Rockerz-450/dp/B0AAA/ref=sr_1_1">img</a>
      <h2 class="a-size-mini"><span class="a-size-medium a-color-base a-text-normal">boAt Rockerz 450 Bluetooth Headphones</span></h2>
      <span class="a-price"><span class="a-offscreen">₹1,299</span><span class="a-price-whole">1,299</span></span>
      <span class="a-icon-alt">4.1 out of 5 stars</span>
    </div>
  </div>
  <div data-component-type="s-search-result" data-asin="B0BBB">
    <h2><a class="a-link-normal" href="/JBL-Tune/dp/B0BBB"><span>JBL Tune 510BT</span></a></h2>
    <span class="a-price"><span class="a-price-whole">2,499.</span></span>
    <img class="s-image" data-src="https://m.media-amazon.com/images/I/bbb.jpg">
  </div>
  <div data-component-type="s-search-result" data-asin="B0CCC">
    <h2><span>Sponsored bundle without price</span></h2>
    <a class="a-link-normal s-no-outline" href="/dp/B0CCC">x</a>
  </div>
  <div data-component-type="s-search-result" data-asin="B0DDD">
    <h2><span>Listing with dead link</span></h2>
    <span class="a-price"><span class="a-offscreen">₹999</span></span>
    <a class="a-link-normal s-no-outline" href="javascript:void(0)">x</a>
  </div>
</div>
</body></html>`

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.amazon.in/s?k=wireless+headphones&ref=nb_sb_noss",
		Site().SearchURL("wireless headphones"))
	assert.Equal(t, "https://www.amazon.in/s?k=a%26b&ref=nb_sb_noss", Site().SearchURL("a&b"))
}

func TestExtractResults(t *testing.T) {
	page := &scraper.Page{URL: "https://www.amazon.in/s?k=headphones&ref=nb_sb_noss", HTML: resultsPage}

	listings, err := scraper.Extract(Site(), page, 10)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, models.Listing{
		Title:    "boAt Rockerz 450 Bluetooth Headphones",
		Price:    "₹1,299",
		Image:    "https://m.media-amazon.com/images/I/aaa.jpg",
		Link:     "https://www.amazon.in/boAt-Rockerz-450/dp/B0AAA/ref=sr_1_1",
		Rating:   "4.1 out of 5 stars",
		Platform: models.Amazon,
	}, listings[0])

	assert.Equal(t, "JBL Tune 510BT", listings[1].Title)
	assert.Equal(t, "2,499.", listings[1].Price)
	assert.Equal(t, "https://www.amazon.in/JBL-Tune/dp/B0BBB", listings[1].Link)
	assert.Equal(t, "https://m.media-amazon.com/images/I/bbb.jpg", listings[1].Image)
	assert.Empty(t, listings[1].Rating)
}

func TestExtractFallsBackToResultItemSelector(t *testing.T) {
	html := `<div class="s-result-item"><h2><span>Cable</span></h2>
	<span class="a-price"><span class="a-offscreen">₹199</span></span>
	<a href="/cable/dp/B0X">x</a></div>`

	listings, err := scraper.Extract(Site(), &scraper.Page{BaseURL: baseURL, HTML: html}, 10)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "https://www.amazon.in/cable/dp/B0X", listings[0].Link)
}

func TestExtractFallsBackPastPlaceholderURLs(t *testing.T) {
	page := &scraper.Page{URL: "https://www.amazon.in/s?k=headphones", HTML: `<html><body>
<div data-component-type="s-search-result" data-asin="B07">
  <h2><span>boAt Rockerz 450</span></h2>
  <span class="a-price"><span class="a-offscreen">₹1,299</span></span>
  <a class="a-link-normal s-no-outline" href="javascript:void(0)">x</a>
  <a href="/Boat-Rockerz/dp/B07">y</a>
  <img class="s-image" src="data:image/gif;base64,R0lGODlhAQABAAAAACw=" data-src="https://m.media-amazon.com/images/I/b07.jpg">
</div>
</body></html>`}

	listings, err := scraper.Extract(Site(), page, 10)
	require.NoError(t, err)
	require.Len(t, listings, 1)
	assert.Equal(t, "https://www.amazon.in/Boat-Rockerz/dp/B07", listings[0].Link)
	assert.Equal(t, "https://m.media-amazon.com/images/I/b07.jpg", listings[0].Image)
}
