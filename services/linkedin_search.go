package services

import (
	"log"
	"net/url"
	"regexp"
	"strings"

	"github.com/playwright-community/playwright-go"
)

var linkedInJobIDPattern = regexp.MustCompile(`/jobs/view/(\d+)`)

// LinkedInSearcher walks LinkedIn job search results. LinkedIn renders an
// infinite-scroll list, so "next page" here is another scroll-to-bottom.
type LinkedInSearcher struct {
	browser *BrowserManager
}

func NewLinkedInSearcher(browser *BrowserManager) *LinkedInSearcher {
	return &LinkedInSearcher{browser: browser}
}

func (s *LinkedInSearcher) Platform() string { return "linkedin" }

func (s *LinkedInSearcher) Search(query, location string, remote bool, maxResults int) []Listing {
	params := url.Values{}
	params.Set("keywords", query)
	params.Set("location", location)
	if remote {
		params.Set("f_WT", "2")
	}

	page, err := s.browser.NewPage("https://www.linkedin.com/jobs/search/?" + params.Encode())
	if err != nil {
		log.Printf("LinkedIn search could not open results page: %v", err)
		return nil
	}
	defer s.browser.ClosePage(page)
	settle(page, s.browser.cfg.SettleMs)

	pager := &linkedInPager{page: page, settleMs: s.browser.cfg.SettleMs}
	return collectListings(pager, maxResults, s.browser.cfg.MaxSearchPages)
}

type linkedInPager struct {
	page     playwright.Page
	settleMs float64
	consumed int
}

func (p *linkedInPager) Extract() ([]Listing, error) {
	cards, err := p.page.Locator(".jobs-search-results__list-item, .job-card-container").All()
	if err != nil {
		return nil, err
	}

	var listings []Listing
	// Cards already consumed on earlier scroll rounds are skipped; the
	// list only grows at the bottom.
	for i := p.consumed; i < len(cards); i++ {
		listing, ok := p.extractCard(cards[i])
		if ok {
			listings = append(listings, listing)
		}
	}
	p.consumed = len(cards)
	return listings, nil
}

func (p *linkedInPager) extractCard(card playwright.Locator) (Listing, bool) {
	titleEl := card.Locator(".job-card-list__title, .job-card-container__link")
	if count, err := titleEl.Count(); err != nil || count == 0 {
		return Listing{}, false
	}
	title, err := titleEl.InnerText()
	if err != nil || strings.TrimSpace(title) == "" {
		return Listing{}, false
	}

	// Click the card so the details pane loads company, location and
	// description for this listing.
	if err := card.Click(); err != nil {
		return Listing{}, false
	}
	settle(p.page, p.settleMs)

	company := textOrDefault(p.page.Locator(".job-details-jobs-unified-top-card__company-name, .jobs-unified-top-card__company-name"), "Unknown")
	location := textOrDefault(p.page.Locator(".job-details-jobs-unified-top-card__bullet, .jobs-unified-top-card__bullet"), "")
	description := textOrDefault(p.page.Locator(".jobs-description__content, .jobs-box__html-content"), "")

	easyApplyCount, _ := p.page.Locator(`button:has-text("Easy Apply")`).Count()
	currentURL := p.page.URL()

	return Listing{
		Source:      "linkedin",
		SourceURL:   currentURL,
		SourceJobID: linkedInJobID(currentURL),
		Title:       strings.TrimSpace(title),
		Company:     company,
		Location:    location,
		Description: truncate(description, 5000),
		IsEasyApply: easyApplyCount > 0,
	}, true
}

func (p *linkedInPager) Next() (bool, error) {
	if _, err := p.page.Evaluate("window.scrollTo(0, document.body.scrollHeight)"); err != nil {
		return false, err
	}
	settle(p.page, p.settleMs)

	cards, err := p.page.Locator(".jobs-search-results__list-item, .job-card-container").Count()
	if err != nil {
		return false, err
	}
	// No new cards appeared: the list is exhausted.
	return cards > p.consumed, nil
}

func linkedInJobID(u string) string {
	match := linkedInJobIDPattern.FindStringSubmatch(u)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}
