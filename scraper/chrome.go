package scraper

import (
	"context"
	"os"
	"os/exec"
	"sync"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
	"github.com/rotisserie/eris"

	"price-aggregator/utils"
)

// hideWebdriver runs before any page script so sites cannot read the
// automation flag.
const hideWebdriver = `Object.defineProperty(navigator, 'webdriver', { get: () => undefined });`

// ChromeOptions configures how browser processes are started.
type ChromeOptions struct {
	ChromeBin string
	Headless  bool
}

// ChromeLauncher starts one Chrome process per session via chromedp.
type ChromeLauncher struct {
	opts    ChromeOptions
	limiter *utils.BrowserLimiter
	logger  *utils.Logger
	binary  string
}

// NewChromeLauncher creates a launcher. limiter may be nil for no bound.
func NewChromeLauncher(opts ChromeOptions, limiter *utils.BrowserLimiter, logger *utils.Logger) *ChromeLauncher {
	bin := findChromeBinary(opts.ChromeBin)
	if bin != "" {
		logger.Info("[browser] Using browser binary: %s", bin)
	} else {
		logger.Warn("[browser] No browser binary found, relying on chromedp lookup")
	}
	return &ChromeLauncher{opts: opts, limiter: limiter, logger: logger, binary: bin}
}

// Launch starts an isolated browser with the given fingerprint. The returned
// session owns the process; Close tears it down.
func (l *ChromeLauncher) Launch(ctx context.Context, fp Fingerprint) (Session, error) {
	release := func() {}
	if l.limiter != nil {
		if err := l.limiter.Acquire(ctx); err != nil {
			return nil, eris.Wrap(err, "browser: wait for slot")
		}
		release = l.limiter.Release
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", l.opts.Headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-setuid-sandbox", true),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("disable-features", "VizDisplayCompositor"),
		chromedp.Flag("enable-automation", false),
		chromedp.WindowSize(fp.Width, fp.Height),
		chromedp.UserAgent(fp.UserAgent),
	)
	if l.binary != "" {
		opts = append(opts, chromedp.ExecPath(l.binary))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))

	s := &chromeSession{
		ctx: browserCtx,
		cancel: func() {
			cancelBrowser()
			cancelAlloc()
			release()
		},
		logger: l.logger,
	}

	err := chromedp.Run(browserCtx,
		emulation.SetDeviceMetricsOverride(int64(fp.Width), int64(fp.Height), 1.0, false),
		network.Enable(),
		network.SetExtraHTTPHeaders(network.Headers(map[string]interface{}{
			"Accept-Language": "en-IN,en;q=0.9",
		})),
		chromedp.ActionFunc(func(ctx context.Context) error {
			_, err := page.AddScriptToEvaluateOnNewDocument(hideWebdriver).Do(ctx)
			return err
		}),
	)
	if err != nil {
		_ = s.Close()
		return nil, eris.Wrap(err, "browser: start")
	}
	return s, nil
}

type chromeSession struct {
	ctx    context.Context
	cancel func()
	once   sync.Once
	logger *utils.Logger
}

// Render loads the search page and returns the rendered HTML once a result
// container is present.
func (s *chromeSession) Render(ctx context.Context, req RenderRequest) (*Page, error) {
	runCtx, cancel := context.WithTimeout(s.ctx, renderBudget(req))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	var (
		location  string
		html      string
		container string
	)

	actions := []chromedp.Action{}
	if len(req.Cookies) > 0 {
		actions = append(actions, setCookies(req.Cookies))
	}
	if req.WarmupURL != "" {
		actions = append(actions, navigate(req.WarmupURL, req.NavigationTimeout))
	}
	actions = append(actions,
		navigate(req.URL, req.NavigationTimeout),
		chromedp.Sleep(req.SettleDelay),
		chromedp.ActionFunc(func(ctx context.Context) error {
			sel, err := s.waitForContainer(ctx, req.Containers, req.SelectorTimeout)
			container = sel
			return err
		}),
	)
	if req.ScrollDelay > 0 {
		// Scroll to load lazy cards and images.
		actions = append(actions,
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight / 2)`, nil),
			chromedp.Sleep(req.ScrollDelay),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(req.ScrollDelay),
		)
	}
	actions = append(actions,
		chromedp.Location(&location),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)

	if err := chromedp.Run(runCtx, actions...); err != nil {
		return nil, eris.Wrapf(err, "browser: render %s", req.URL)
	}

	return &Page{URL: location, HTML: html, Container: container}, nil
}

// renderBudget is the longest a Render may take: every navigation, the
// settle delay, a full wait on each container selector and both scroll pauses.
func renderBudget(req RenderRequest) time.Duration {
	budget := req.NavigationTimeout + req.SettleDelay + time.Duration(len(req.Containers))*req.SelectorTimeout
	if req.WarmupURL != "" {
		budget += req.NavigationTimeout
	}
	return budget + 2*req.ScrollDelay
}

// waitForContainer tries each selector in order, giving each up to timeout to
// appear.
func (s *chromeSession) waitForContainer(ctx context.Context, selectors []string, timeout time.Duration) (string, error) {
	for _, sel := range selectors {
		waitCtx, cancel := context.WithTimeout(ctx, timeout)
		err := chromedp.WaitReady(sel, chromedp.ByQuery).Do(waitCtx)
		cancel()
		if err == nil {
			s.logger.Debug("[browser] Container matched: %s", sel)
			return sel, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		s.logger.Debug("[browser] Selector %s not found, trying next", sel)
	}
	return "", ErrNoContainer
}

// Close terminates the browser process. Safe to call repeatedly.
func (s *chromeSession) Close() error {
	s.once.Do(s.cancel)
	return nil
}

func navigate(target string, timeout time.Duration) chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		navCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return chromedp.Navigate(target).Do(navCtx)
	})
}

func setCookies(cookies []Cookie) chromedp.Action {
	params := make([]*network.CookieParam, 0, len(cookies))
	for _, c := range cookies {
		path := c.Path
		if path == "" {
			path = "/"
		}
		params = append(params, &network.CookieParam{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   path,
		})
	}
	return network.SetCookies(params)
}

// findChromeBinary locates a Chrome/Chromium binary, preferring the
// configured path.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}
	if bin := os.Getenv("CHROME_BIN"); bin != "" {
		return bin
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
