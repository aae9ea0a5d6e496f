package amazon

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"market-scout/models"
)

// resultSelector matches one listing container on a search results page.
const resultSelector = `div[data-component-type="s-search-result"]`

var (
	sponsoredPattern = regexp.MustCompile(`(?i)\bsponsored\b`)
	ratingPattern    = regexp.MustCompile(`\d+(?:\.\d+)?`)
)

// ExtractProducts parses one rendered results page and returns a record per
// listing container. A container without a resolvable title and link is
// skipped entirely — no partially-filled records. All other fields are
// best-effort and stay display-formatted; the cleaner coerces them later.
func ExtractProducts(html, host string) ([]*models.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("extract: parse page: %w", err)
	}

	var products []*models.RawProduct
	now := time.Now()

	doc.Find(resultSelector).Each(func(_ int, item *goquery.Selection) {
		link := item.Find("h2 a").First()
		title := strings.TrimSpace(link.Text())
		href, _ := link.Attr("href")
		if title == "" || href == "" {
			return
		}

		p := &models.RawProduct{
			Title:      title,
			ProductURL: host + href,
			Brand:      strings.TrimSpace(item.Find("span.a-size-base-plus.a-color-base").First().Text()),
			Price:      strings.TrimSpace(item.Find("span.a-price-whole").First().Text()),
			Reviews:    strings.TrimSpace(item.Find("span.a-size-base.s-underline-text").First().Text()),
			ScrapedAt:  now,
		}

		if alt := item.Find("span.a-icon-alt").First().Text(); alt != "" {
			p.Rating = ratingPattern.FindString(alt)
		}
		if src, ok := item.Find("img.s-image").First().Attr("src"); ok {
			p.ImageURL = src
		}

		item.Find("span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			if sponsoredPattern.MatchString(s.Text()) {
				p.Sponsored = true
				return false
			}
			return true
		})

		products = append(products, p)
	})

	return products, nil
}
