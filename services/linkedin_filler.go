package services

import "log"

const easyApplyModal = ".jobs-easy-apply-modal"

// LinkedInFiller drives the Easy Apply modal. Everything happens inside
// the modal container; the loop stops in front of the submit button and
// leaves the tab open for the human to finish.
type LinkedInFiller struct {
	browser     *BrowserManager
	screenshots *ScreenshotService
}

func NewLinkedInFiller(browser *BrowserManager, screenshots *ScreenshotService) *LinkedInFiller {
	return &LinkedInFiller{browser: browser, screenshots: screenshots}
}

func (f *LinkedInFiller) Platform() string { return "linkedin" }

func (f *LinkedInFiller) Fill(url string, candidate *Candidate, resumePath, coverLetterPath string) *FillOutcome {
	page, err := f.browser.NewPage(url)
	if err != nil {
		return errorOutcome(url, "could not open job page: %v", err)
	}
	settle(page, f.browser.cfg.SettleMs)

	easyApply := page.Locator(`button:has-text("Easy Apply"), .jobs-apply-button`)
	count, err := easyApply.Count()
	if err != nil || count == 0 {
		outcome := errorOutcome(page.URL(), "Easy Apply button not found; this posting may require an external application")
		f.browser.ClosePage(page)
		return outcome
	}
	if err := easyApply.First().Click(); err != nil {
		outcome := errorOutcome(page.URL(), "could not open Easy Apply modal: %v", err)
		f.browser.ClosePage(page)
		return outcome
	}
	settle(page, f.browser.cfg.SettleMs)

	wizard := &playwrightWizard{
		page: page,
		selectors: wizardSelectors{
			scope:  easyApplyModal,
			submit: `button[aria-label*="Submit"], button:has-text("Submit application")`,
			advance: []string{
				`button:has-text("Review")`,
				`button[aria-label="Continue to next step"], button:has-text("Next")`,
			},
		},
		settleMs: f.browser.cfg.SettleMs,
	}

	outcome := runWizard(wizard, candidate, resumePath, coverLetterPath, f.browser.cfg.MaxFillSteps)
	if outcome.Status == StatusError {
		f.browser.ClosePage(page)
		return outcome
	}

	if f.screenshots != nil {
		if key, err := f.screenshots.Capture(page, "linkedin_application"); err == nil {
			outcome.ScreenshotKey = key
		} else {
			log.Printf("Screenshot capture failed: %v", err)
		}
	}
	// Tab stays open: the human reviews and submits there.
	log.Printf("LinkedIn fill left tab open for review: %s", outcome.PageURL)
	return outcome
}
