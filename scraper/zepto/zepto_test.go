package zepto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"price-aggregator/models"
	"price-aggregator/scraper"
)

var delhi = scraper.Location{
	ID:        "2a52f8a8-b6b3-4672-9cc8-8339f0b83b3e",
	Latitude:  28.6139,
	Longitude: 77.2090,
	Address:   "Connaught Place, New Delhi, Delhi, India",
}

const resultsPage = `<html><body>
<div class="product-list-wrapper grid">
  <a href="/pn/amul-butter/pvid/abc">
    <div class="product-card-wrapper">
      <img class="product-img" src="https://cdn.zeptonow.com/butter.jpg">
      <h5 class="product-name font-bold">Amul Salted Butter</h5>
      <p class="product-meta-info">100 g</p>
      <p class="selling-price text-lg">₹58</p>
    </div>
  </a>
  <div class="product-card-wrapper">
    <h5 class="product-name">Britannia Butter</h5>
    <p class="product-meta-info">500 g</p>
    <p class="selling-price">₹275</p>
  </div>
  <div class="product-card-wrapper">
    <h5 class="product-name">Out of stock</h5>
  </div>
</div>
<div class="product-card-wrapper">
  <h5 class="product-name">Recommended elsewhere</h5>
  <p class="selling-price">₹10</p>
</div>
</body></html>`

func TestLocationCookie(t *testing.T) {
	site := Site(delhi)
	require.Len(t, site.Cookies, 1)

	c := site.Cookies[0]
	assert.Equal(t, "location_v2", c.Name)
	assert.Equal(t, ".zeptonow.com", c.Domain)
	assert.Equal(t, "/", c.Path)

	var got scraper.Location
	require.NoError(t, json.Unmarshal([]byte(c.Value), &got))
	assert.Equal(t, delhi, got)
}

func TestSearchURL(t *testing.T) {
	assert.Equal(t, "https://www.zeptonow.com/search?q=peanut+butter", Site(delhi).SearchURL("peanut butter"))
}

func TestExtractResults(t *testing.T) {
	page := &scraper.Page{URL: "https://www.zeptonow.com/search?q=butter", HTML: resultsPage}

	listings, err := scraper.Extract(Site(delhi), page, 10)
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, models.Listing{
		Title:    "Amul Salted Butter",
		Price:    "₹58",
		Image:    "https://cdn.zeptonow.com/butter.jpg",
		Link:     "https://www.zeptonow.com/pn/amul-butter/pvid/abc",
		Quantity: "100 g",
		Platform: models.Zepto,
	}, listings[0])

	assert.Equal(t, "Britannia Butter", listings[1].Title)
	assert.Equal(t, "https://www.zeptonow.com/search?q=butter", listings[1].Link)
	assert.Equal(t, "500 g", listings[1].Quantity)
}
