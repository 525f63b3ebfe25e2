package scraper

import (
	"context"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"price-aggregator/models"
	"price-aggregator/utils"
)

// DefaultMaxListings bounds how many listings one adapter returns.
const DefaultMaxListings = 10

// Fields holds one fallback chain per listing field.
type Fields struct {
	Title    Chain
	Price    Chain
	Image    Chain
	Link     Chain
	Quantity Chain
	Rating   Chain
}

// Timing holds the per-site waits.
type Timing struct {
	Navigation time.Duration
	Settle     time.Duration
	Selector   time.Duration
	Scroll     time.Duration
}

// Site describes how to search one retailer and read its result cards.
type Site struct {
	Platform models.Platform
	BaseURL  string
	// SearchURL builds the results page URL for an already trimmed term.
	SearchURL func(term string) string
	WarmupURL string
	Cookies   []Cookie
	Width     int
	Height    int
	Timing    Timing
	// Containers is the result selector fallback chain. When Items is set,
	// the first matching container is searched for Items; otherwise every
	// element matching the container selector is a result card.
	Containers []string
	Items      string
	Fields     Fields
}

// Options are the settings shared by every adapter.
type Options struct {
	UserAgent      string
	MaxListings    int
	SessionTimeout time.Duration
}

// Adapter runs a Site definition in its own browser session.
type Adapter struct {
	site     Site
	launcher Launcher
	opts     Options
	logger   *utils.Logger
}

// NewAdapter binds a site definition to a launcher.
func NewAdapter(site Site, launcher Launcher, opts Options, logger *utils.Logger) *Adapter {
	if opts.MaxListings < 1 {
		opts.MaxListings = DefaultMaxListings
	}
	return &Adapter{
		site:     site,
		launcher: launcher,
		opts:     opts,
		logger:   logger.Named("scraper." + strings.ToLower(string(site.Platform))),
	}
}

// Platform returns the retailer this adapter searches.
func (a *Adapter) Platform() models.Platform {
	return a.site.Platform
}

// Fetch searches the site for term. It never fails: any error or panic is
// logged and yields an empty result.
func (a *Adapter) Fetch(ctx context.Context, term string) (listings []models.Listing) {
	start := time.Now()
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("[%s] Scrape panicked: %v", a.site.Platform, r)
			listings = nil
		}
	}()

	a.logger.Info("[%s] Searching for: %s", a.site.Platform, term)

	listings, err := a.fetch(ctx, term)
	if err != nil {
		a.logger.Warn("[%s] Scrape failed after %v: %v", a.site.Platform, time.Since(start), err)
		return nil
	}

	a.logger.Info("[%s] Extracted %d listings in %v", a.site.Platform, len(listings), time.Since(start))
	return listings
}

func (a *Adapter) fetch(ctx context.Context, term string) ([]models.Listing, error) {
	if a.opts.SessionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.opts.SessionTimeout)
		defer cancel()
	}

	session, err := a.launcher.Launch(ctx, Fingerprint{
		UserAgent: a.opts.UserAgent,
		Width:     a.site.Width,
		Height:    a.site.Height,
	})
	if err != nil {
		return nil, eris.Wrap(err, "launch session")
	}
	defer func() {
		if err := session.Close(); err != nil {
			a.logger.Warn("[%s] Session close: %v", a.site.Platform, err)
		}
	}()

	req := a.renderRequest(term)
	a.logger.Debug("[%s] Navigating to %s", a.site.Platform, req.URL)

	page, err := session.Render(ctx, req)
	if err != nil {
		return nil, err
	}
	if page.BaseURL == "" {
		page.BaseURL = a.site.BaseURL
	}

	return Extract(a.site, page, a.opts.MaxListings)
}

func (a *Adapter) renderRequest(term string) RenderRequest {
	return RenderRequest{
		URL:               a.site.SearchURL(strings.TrimSpace(term)),
		WarmupURL:         a.site.WarmupURL,
		Cookies:           a.site.Cookies,
		NavigationTimeout: a.site.Timing.Navigation,
		SettleDelay:       a.site.Timing.Settle,
		SelectorTimeout:   a.site.Timing.Selector,
		ScrollDelay:       a.site.Timing.Scroll,
		Containers:        a.site.Containers,
	}
}

// Extract reads up to limit complete listings from a rendered page.
func Extract(site Site, page *Page, limit int) ([]models.Listing, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page.HTML))
	if err != nil {
		return nil, eris.Wrap(err, "parse page")
	}

	items, err := resultItems(doc, site, page.Container)
	if err != nil {
		return nil, err
	}

	seen := utils.NewListingSet()
	listings := make([]models.Listing, 0, limit)

	items.EachWithBreak(func(_ int, item *goquery.Selection) bool {
		l := models.Listing{
			Platform: site.Platform,
			Title:    site.Fields.Title.Find(item, page),
			Price:    site.Fields.Price.Find(item, page),
			Image:    site.Fields.Image.FindURL(item, page),
			Link:     site.Fields.Link.FindURL(item, page),
			Quantity: site.Fields.Quantity.Find(item, page),
			Rating:   site.Fields.Rating.Find(item, page),
		}
		if !l.Complete() {
			return true
		}
		if !seen.Add(l.Link, l.Title) {
			return true
		}
		listings = append(listings, l)
		return len(listings) < limit
	})

	return listings, nil
}

// resultItems adopts the first container selector with at least one match,
// starting with the one the browser already settled on.
func resultItems(doc *goquery.Document, site Site, preferred string) (*goquery.Selection, error) {
	candidates := site.Containers
	if preferred != "" {
		candidates = append([]string{preferred}, site.Containers...)
	}

	for _, sel := range candidates {
		found := doc.Find(sel)
		if found.Length() == 0 {
			continue
		}
		if site.Items == "" {
			return found, nil
		}
		if items := found.First().Find(site.Items); items.Length() > 0 {
			return items, nil
		}
	}
	return nil, eris.Wrapf(ErrNoContainer, "%s page", site.Platform)
}
