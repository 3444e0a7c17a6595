package services

import (
	"log"

	"golang.org/x/text/cases"
)

// Listing is one normalized job posting produced by a search driver.
// Immutable once produced; deduplication happens downstream over the
// union of all drivers' output.
type Listing struct {
	Source      string `json:"source"`
	SourceURL   string `json:"source_url"`
	SourceJobID string `json:"source_job_id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	Description string `json:"description"`
	SalaryInfo  string `json:"salary_info,omitempty"`
	JobType     string `json:"job_type,omitempty"`
	PostedDate  string `json:"posted_date,omitempty"`
	IsEasyApply bool   `json:"is_easy_apply"`
}

// Searcher is a platform-specific search driver. Search never errors: on
// internal failure it logs the cause and returns whatever was accumulated.
type Searcher interface {
	Platform() string
	Search(query, location string, remote bool, maxResults int) []Listing
}

// listingPager abstracts one results view a driver walks through: extract
// the cards currently visible, then move to the next batch. Next returns
// false when there is no further page.
type listingPager interface {
	Extract() ([]Listing, error)
	Next() (bool, error)
}

// collectListings runs the shared pagination loop: extract, accumulate,
// advance, until maxResults listings are gathered, the pager is exhausted,
// or maxPages batches have been consumed. The page bound keeps infinite-
// scroll UIs from looping forever.
func collectListings(pager listingPager, maxResults, maxPages int) []Listing {
	var listings []Listing

	for pageNum := 0; pageNum < maxPages; pageNum++ {
		batch, err := pager.Extract()
		if err != nil {
			log.Printf("Listing extraction failed on batch %d: %v", pageNum, err)
			break
		}
		listings = append(listings, batch...)
		if len(listings) >= maxResults {
			break
		}

		more, err := pager.Next()
		if err != nil {
			log.Printf("Pagination failed on batch %d: %v", pageNum, err)
			break
		}
		if !more {
			break
		}
	}

	if len(listings) > maxResults {
		listings = listings[:maxResults]
	}
	return listings
}

// DedupListings removes duplicates across drivers, keyed by case-folded
// (title, company). First occurrence wins, order preserved.
func DedupListings(listings []Listing) []Listing {
	fold := cases.Fold()
	seen := make(map[string]bool, len(listings))
	deduped := make([]Listing, 0, len(listings))

	for _, l := range listings {
		key := fold.String(l.Title) + "\x00" + fold.String(l.Company)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, l)
	}
	return deduped
}
