package services

import (
	"log"
	"net/url"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/playwright-community/playwright-go"
)

const indeedRemoteFilter = "032b3046-06a4-71de-9bf3-fad6cc26cf76"

var indeedJobIDPattern = regexp.MustCompile(`jk=([a-f0-9]+)`)

// IndeedSearcher walks Indeed search results, clicking each card so the
// description side panel loads before the listing is normalized.
type IndeedSearcher struct {
	browser *BrowserManager
}

func NewIndeedSearcher(browser *BrowserManager) *IndeedSearcher {
	return &IndeedSearcher{browser: browser}
}

func (s *IndeedSearcher) Platform() string { return "indeed" }

func (s *IndeedSearcher) Search(query, location string, remote bool, maxResults int) []Listing {
	params := url.Values{}
	params.Set("q", query)
	params.Set("l", location)
	if remote {
		params.Set("remotejob", indeedRemoteFilter)
	}

	page, err := s.browser.NewPage("https://www.indeed.com/jobs?" + params.Encode())
	if err != nil {
		log.Printf("Indeed search could not open results page: %v", err)
		return nil
	}
	defer s.browser.ClosePage(page)
	settle(page, s.browser.cfg.SettleMs)

	pager := &indeedPager{page: page, settleMs: s.browser.cfg.SettleMs}
	return collectListings(pager, maxResults, s.browser.cfg.MaxSearchPages)
}

type indeedPager struct {
	page     playwright.Page
	settleMs float64
}

func (p *indeedPager) Extract() ([]Listing, error) {
	cards, err := p.page.Locator(".job_seen_beacon, .jobsearch-ResultsList > li").All()
	if err != nil {
		return nil, err
	}

	var listings []Listing
	for _, card := range cards {
		// One malformed card is skipped, never fatal to the pass.
		listing, ok := p.extractCard(card)
		if ok {
			listings = append(listings, listing)
		}
	}
	return listings, nil
}

func (p *indeedPager) extractCard(card playwright.Locator) (Listing, bool) {
	titleEl := card.Locator("h2.jobTitle a, h2 a")
	if count, err := titleEl.Count(); err != nil || count == 0 {
		return Listing{}, false
	}

	title, err := titleEl.InnerText()
	if err != nil || strings.TrimSpace(title) == "" {
		return Listing{}, false
	}
	href, _ := titleEl.GetAttribute("href")

	company := textOrDefault(card.Locator(`[data-testid="company-name"], .companyName`), "Unknown")
	location := textOrDefault(card.Locator(`[data-testid="text-location"], .companyLocation`), "")
	salary := textOrDefault(card.Locator(".salary-snippet-container, .metadata.salary-snippet-container"), "")

	// Click the card so the description loads in the side panel.
	description := ""
	if err := titleEl.Click(); err == nil {
		settle(p.page, p.settleMs)
		description = textOrDefault(p.page.Locator("#jobDescriptionText, .jobsearch-JobComponent-description"), "")
	}

	sourceURL := href
	if !strings.HasPrefix(href, "http") {
		sourceURL = "https://www.indeed.com" + href
	}

	return Listing{
		Source:      "indeed",
		SourceURL:   sourceURL,
		SourceJobID: indeedJobID(href),
		Title:       strings.TrimSpace(title),
		Company:     company,
		Location:    location,
		Description: truncate(description, 5000),
		SalaryInfo:  salary,
	}, true
}

func (p *indeedPager) Next() (bool, error) {
	nextBtn := p.page.Locator(`[data-testid="pagination-page-next"]`)
	count, err := nextBtn.Count()
	if err != nil || count == 0 {
		return false, err
	}
	if err := nextBtn.Click(); err != nil {
		return false, err
	}
	if err := p.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State: playwright.LoadStateDomcontentloaded,
	}); err != nil {
		return false, err
	}
	settle(p.page, p.settleMs)
	return true, nil
}

func indeedJobID(href string) string {
	match := indeedJobIDPattern.FindStringSubmatch(href)
	if len(match) < 2 {
		return ""
	}
	return match[1]
}

// textOrDefault reads the first matching element's inner text, trimmed,
// falling back when the element is absent or unreadable.
func textOrDefault(locator playwright.Locator, fallback string) string {
	count, err := locator.Count()
	if err != nil || count == 0 {
		return fallback
	}
	text, err := locator.First().InnerText()
	if err != nil {
		return fallback
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return fallback
	}
	return text
}

// truncate caps s at max bytes without splitting a UTF-8 sequence.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
