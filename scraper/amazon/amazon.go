package amazon

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"market-scout/config"
	"market-scout/models"
	"market-scout/utils"
)

// FetchStatus classifies the outcome of fetching one results page.
type FetchStatus int

const (
	FetchSuccess FetchStatus = iota
	FetchEmpty
	FetchFailure
)

// FetchResult is the surfaced outcome of one page fetch, so the caller can
// decide what a failure means instead of inheriting silence.
type FetchResult struct {
	Page   int
	URL    string
	Status FetchStatus
	HTML   string
	Err    error
}

// Scraper collects sponsored listings from paginated search results.
type Scraper struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
	pacer  *utils.Pacer
}

// New creates a ready-to-use Scraper.
func New(cfg *config.Config, logger *utils.Logger) *Scraper {
	return &Scraper{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
		pacer: utils.NewPacer(time.Duration(cfg.PageDelayMs) * time.Millisecond),
	}
}

// Scrape fetches the configured number of result pages sequentially, with a
// courtesy delay between pages, and returns the sponsored listings found.
// A failed page is logged and skipped; it never aborts the whole run. The
// browser is released on every exit path.
func (s *Scraper) Scrape(ctx context.Context) ([]*models.RawProduct, error) {
	chromeBin := findChromeBinary(s.cfg.ChromeBin)
	s.logger.Info("[amazon] Using browser binary: %s", chromeBin)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, allocatorOptions(chromeBin)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelBrowser()

	baseURL := s.searchURL()
	var collected []*models.RawProduct

	for page := 1; page <= s.cfg.PagesToScrape; page++ {
		if page > 1 {
			s.pacer.Wait()
		}

		url := pageURL(baseURL, page)
		s.logger.Info("[amazon] Scraping page %d — %s", page, url)

		res := s.fetchPage(browserCtx, url, page)
		if res.Status == FetchFailure {
			s.logger.Error("[amazon] Page %d failed: %v — continuing", page, res.Err)
			continue
		}

		products, err := ExtractProducts(res.HTML, s.cfg.AmazonHost)
		if err != nil {
			s.logger.Error("[amazon] Page %d extraction failed: %v — continuing", page, err)
			continue
		}
		if len(products) == 0 {
			res.Status = FetchEmpty
			s.logger.Warn("[amazon] Page %d returned no listings", page)
			continue
		}

		sponsored := 0
		for _, p := range products {
			if p.Sponsored {
				collected = append(collected, p)
				sponsored++
			}
		}

		s.logger.Info("[amazon] Page %d: %d listings, %d sponsored — %d collected so far",
			page, len(products), sponsored, len(collected))
	}

	s.logger.Info("[amazon] Scrape complete — total sponsored listings: %d", len(collected))
	return collected, nil
}

// fetchPage loads one results page and captures its rendered HTML, retrying
// with back-off on failure.
func (s *Scraper) fetchPage(browserCtx context.Context, url string, page int) FetchResult {
	res := FetchResult{Page: page, URL: url}

	err := s.retry.Do(browserCtx, fmt.Sprintf("fetch-page-%d", page), func() error {
		ctx, cancel := chromedp.NewContext(browserCtx)
		defer cancel()

		ctx, cancelTimeout := context.WithTimeout(ctx,
			time.Duration(s.cfg.RequestTimeoutSec)*time.Second)
		defer cancelTimeout()

		var html string
		err := chromedp.Run(ctx,
			chromedp.Navigate(url),
			chromedp.Sleep(2*time.Second),
			chromedp.Evaluate(`window.scrollTo(0, document.body.scrollHeight)`, nil),
			chromedp.Sleep(time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return fmt.Errorf("chromedp: %w", err)
		}

		res.HTML = html
		return nil
	})
	if err != nil {
		res.Status = FetchFailure
		res.Err = err
		return res
	}

	res.Status = FetchSuccess
	return res
}

// searchURL builds the first results page URL for the configured term.
func (s *Scraper) searchURL() string {
	term := strings.ReplaceAll(strings.TrimSpace(s.cfg.SearchTerm), " ", "+")
	return fmt.Sprintf("%s/s?k=%s&ref=sr_pg_1", s.cfg.AmazonHost, term)
}

// pageURL appends the incrementing page parameter; page 1 is the base URL.
func pageURL(base string, page int) string {
	if page <= 1 {
		return base
	}
	return fmt.Sprintf("%s&page=%d", base, page)
}
