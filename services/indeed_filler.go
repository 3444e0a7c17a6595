package services

import "log"

// IndeedFiller drives Indeed's multi-page application flow. Unlike the
// LinkedIn modal, each step is a document navigation.
type IndeedFiller struct {
	browser     *BrowserManager
	screenshots *ScreenshotService
}

func NewIndeedFiller(browser *BrowserManager, screenshots *ScreenshotService) *IndeedFiller {
	return &IndeedFiller{browser: browser, screenshots: screenshots}
}

func (f *IndeedFiller) Platform() string { return "indeed" }

func (f *IndeedFiller) Fill(url string, candidate *Candidate, resumePath, coverLetterPath string) *FillOutcome {
	page, err := f.browser.NewPage(url)
	if err != nil {
		return errorOutcome(url, "could not open job page: %v", err)
	}
	settle(page, f.browser.cfg.SettleMs)

	applyBtn := page.Locator(`button:has-text("Apply now"), a:has-text("Apply now"), #indeedApplyButton`)
	count, err := applyBtn.Count()
	if err != nil || count == 0 {
		outcome := errorOutcome(page.URL(), "Apply button not found")
		f.browser.ClosePage(page)
		return outcome
	}
	if err := applyBtn.First().Click(); err != nil {
		outcome := errorOutcome(page.URL(), "could not start application: %v", err)
		f.browser.ClosePage(page)
		return outcome
	}
	settle(page, f.browser.cfg.SettleMs)

	wizard := &playwrightWizard{
		page: page,
		selectors: wizardSelectors{
			submit: `button:has-text("Submit your application"), button[type="submit"]:has-text("Submit")`,
			advance: []string{
				`button:has-text("Continue"), button:has-text("Next"), .ia-continueButton`,
			},
			waitLoad: true,
		},
		settleMs: f.browser.cfg.SettleMs,
	}

	outcome := runWizard(wizard, candidate, resumePath, coverLetterPath, f.browser.cfg.MaxFillSteps)
	if outcome.Status == StatusError {
		f.browser.ClosePage(page)
		return outcome
	}

	if f.screenshots != nil {
		if key, err := f.screenshots.Capture(page, "indeed_application"); err == nil {
			outcome.ScreenshotKey = key
		} else {
			log.Printf("Screenshot capture failed: %v", err)
		}
	}
	log.Printf("Indeed fill left tab open for review: %s", outcome.PageURL)
	return outcome
}
