package services

import (
	"errors"
	"fmt"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

// fakePager serves a fixed number of cards per batch.
type fakePager struct {
	cardsPerPage int
	pages        int
	alwaysMore   bool
	extractErr   error

	page    int
	nextRow int
}

func (p *fakePager) Extract() ([]Listing, error) {
	if p.extractErr != nil {
		return nil, p.extractErr
	}
	var batch []Listing
	for i := 0; i < p.cardsPerPage; i++ {
		p.nextRow++
		batch = append(batch, Listing{
			Source:  "fake",
			Title:   fmt.Sprintf("Engineer %d", p.nextRow),
			Company: fmt.Sprintf("Company %d", p.nextRow),
		})
	}
	return batch, nil
}

func (p *fakePager) Next() (bool, error) {
	if p.alwaysMore {
		return true, nil
	}
	p.page++
	return p.page < p.pages, nil
}

func TestCollectListings_MaxResultsAcrossPages(t *testing.T) {
	// 3 valid cards per page, 2 pages available, max 5: exactly 5 records
	// in first-seen order.
	pager := &fakePager{cardsPerPage: 3, pages: 2}

	listings := collectListings(pager, 5, 5)

	assert.Len(t, listings, 5)
	for i, l := range listings {
		assert.Equal(t, fmt.Sprintf("Engineer %d", i+1), l.Title)
	}
}

func TestCollectListings_PageBoundStopsInfinitePagination(t *testing.T) {
	// Next always reports another page; the page-count bound must stop it.
	pager := &fakePager{cardsPerPage: 1, alwaysMore: true}

	listings := collectListings(pager, 1000, 4)

	assert.Len(t, listings, 4)
}

func TestCollectListings_ExhaustedPagerReturnsPartial(t *testing.T) {
	pager := &fakePager{cardsPerPage: 2, pages: 2}

	listings := collectListings(pager, 100, 10)

	assert.Len(t, listings, 4)
}

func TestCollectListings_ExtractionFailureReturnsAccumulated(t *testing.T) {
	pager := &fakePager{extractErr: errors.New("dom changed under us")}

	listings := collectListings(pager, 10, 5)

	assert.Empty(t, listings)
}

func TestDedupListings_CaseInsensitiveTitleCompany(t *testing.T) {
	listings := []Listing{
		{Title: "Engineer", Company: "Acme"},
		{Title: "ENGINEER", Company: "acme"},
		{Title: "Engineer", Company: "Globex"},
	}

	deduped := DedupListings(listings)

	assert.Len(t, deduped, 2)
	assert.Equal(t, "Acme", deduped[0].Company)
	assert.Equal(t, "Globex", deduped[1].Company)
}

func TestDedupListings_FirstSeenWins(t *testing.T) {
	listings := []Listing{
		{Title: "Engineer", Company: "Acme", Source: "indeed"},
		{Title: "engineer", Company: "ACME", Source: "linkedin"},
	}

	deduped := DedupListings(listings)

	assert.Len(t, deduped, 1)
	assert.Equal(t, "indeed", deduped[0].Source)
}

func TestDedupListings_Empty(t *testing.T) {
	assert.Empty(t, DedupListings(nil))
}

func TestTruncate_KeepsRunesIntact(t *testing.T) {
	assert.Equal(t, "hel", truncate("hello", 3))
	assert.Equal(t, "hello", truncate("hello", 10))

	// "日" occupies bytes 2..4; a cut at byte 4 must back up to the rune
	// boundary instead of leaving a partial sequence.
	s := "ab日本語"
	got := truncate(s, 4)
	assert.Equal(t, "ab", got)
	assert.True(t, utf8.ValidString(got))

	got = truncate(s, 5)
	assert.Equal(t, "ab日", got)
	assert.True(t, utf8.ValidString(got))
}
