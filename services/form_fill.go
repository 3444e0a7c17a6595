package services

import (
	"fmt"
	"log"
)

// FillStatus is the terminal state of one fill attempt.
//
// StatusFilled means the wizard ran out of steps without ever showing a
// submission control. StatusAwaitingSubmission means a submission control
// was detected and the driver stopped deliberately in front of it, so the
// human finishes in the still-open tab. The split keeps the
// human-in-the-loop boundary unambiguous in the UI.
type FillStatus string

const (
	StatusFilled             FillStatus = "filled"
	StatusAwaitingSubmission FillStatus = "awaiting_submission"
	StatusError              FillStatus = "error"
)

// ReviewItem flags one field the driver declined to fill.
type ReviewItem struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// FillOutcome is the immutable result record of one fill attempt. Always
// returned, never thrown: field-level failures are data inside it.
type FillOutcome struct {
	Status        FillStatus   `json:"status"`
	FieldsFilled  []string     `json:"fields_filled"`
	NeedsReview   []ReviewItem `json:"needs_review"`
	PageURL       string       `json:"page_url"`
	ScreenshotKey string       `json:"screenshot_key,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// FormFiller is a platform-specific form-fill driver.
type FormFiller interface {
	Platform() string
	Fill(url string, candidate *Candidate, resumePath, coverLetterPath string) *FillOutcome
}

// formField is one text-like input discovered on the current wizard step.
type formField interface {
	Label() string
	Value() string
	Fill(value string) error
}

// fileSlot is one file-input the driver can upload an artifact into.
type fileSlot interface {
	Upload(path string) error
}

// wizardPage abstracts the application wizard surface the step loop drives.
// The Playwright implementation lives in wizard_playwright.go; tests
// substitute a simulated DOM.
type wizardPage interface {
	// FileInputs lists the file-upload slots visible on this step.
	FileInputs() []fileSlot
	// TextFields lists the visible text-like inputs on this step.
	TextFields() ([]formField, error)
	// ReviewOnlyLabels lists labels of textareas and dropdowns, which are
	// never auto-filled.
	ReviewOnlyLabels() []string
	// HasSubmitControl reports whether a final-submission control is
	// visible. The loop halts without invoking it.
	HasSubmitControl() bool
	// AdvanceStep clicks an intermediate review/next/continue control and
	// waits for the next step. False when no progression control exists.
	AdvanceStep() (bool, error)
	CurrentURL() string
}

// runWizard drives the bounded step loop over an application wizard.
//
// Per step: upload artifacts into any file inputs, fill empty text inputs
// through the field mapper, flag textareas/dropdowns for review, then halt
// in front of a submission control or advance via next/continue. The step
// bound keeps a pathological or bot-detecting form from looping forever.
// Fields already holding a value are left untouched, so re-entering a
// partially-filled wizard never clobbers prior state.
func runWizard(w wizardPage, candidate *Candidate, resumePath, coverLetterPath string, maxSteps int) *FillOutcome {
	outcome := &FillOutcome{
		Status:       StatusFilled,
		FieldsFilled: []string{},
		NeedsReview:  []ReviewItem{},
	}
	// A field is accounted for exactly once across the attempt, so
	// FieldsFilled and NeedsReview stay disjoint even when the same
	// element is rediscovered on a later step.
	seen := make(map[string]bool)

	fill := func(field string) {
		if seen[field] {
			return
		}
		seen[field] = true
		outcome.FieldsFilled = append(outcome.FieldsFilled, field)
	}
	review := func(field, reason string) {
		if seen[field] {
			return
		}
		seen[field] = true
		outcome.NeedsReview = append(outcome.NeedsReview, ReviewItem{Field: field, Reason: reason})
	}

	for step := 0; step < maxSteps; step++ {
		// 1. Artifact uploads.
		for i, slot := range w.FileInputs() {
			name := "resume_upload"
			if i > 0 {
				name = fmt.Sprintf("resume_upload_%d", i+1)
			}
			path := resumePath
			if i > 0 && coverLetterPath != "" {
				path = coverLetterPath
				name = "cover_letter_upload"
			}
			if err := slot.Upload(path); err != nil {
				review(name, "file upload failed")
			} else {
				fill(name)
			}
		}

		// 2. Text-like inputs through the mapper.
		fields, err := w.TextFields()
		if err != nil {
			outcome.Status = StatusError
			outcome.Error = fmt.Sprintf("field discovery failed: %v", err)
			outcome.PageURL = w.CurrentURL()
			return outcome
		}
		for _, field := range fields {
			if field.Value() != "" {
				continue // already populated, leave untouched
			}
			label := field.Label()
			value, ok := MapField(label, candidate)
			if !ok {
				review(label, "no matching candidate data")
				continue
			}
			if err := field.Fill(value); err != nil {
				review(label, "fill failed")
				continue
			}
			fill(label)
		}

		// 3. Free-text and enumerated-choice fields carry too much risk of
		// a wrong, submitted-looking answer; always route to review.
		for _, label := range w.ReviewOnlyLabels() {
			review(label, "needs manual review")
		}

		// 4. Submission control: stop in front of it, never invoke it.
		if w.HasSubmitControl() {
			outcome.Status = StatusAwaitingSubmission
			break
		}

		// 5./6. Advance, or treat the wizard as complete.
		advanced, err := w.AdvanceStep()
		if err != nil {
			outcome.Status = StatusError
			outcome.Error = fmt.Sprintf("step advance failed: %v", err)
			outcome.PageURL = w.CurrentURL()
			return outcome
		}
		if !advanced {
			break
		}
	}

	outcome.PageURL = w.CurrentURL()
	log.Printf("Fill loop finished: status=%s filled=%d review=%d", outcome.Status, len(outcome.FieldsFilled), len(outcome.NeedsReview))
	return outcome
}

// errorOutcome builds the error-terminal outcome with whatever was
// gathered up to that point.
func errorOutcome(pageURL, format string, args ...interface{}) *FillOutcome {
	return &FillOutcome{
		Status:       StatusError,
		FieldsFilled: []string{},
		NeedsReview:  []ReviewItem{},
		PageURL:      pageURL,
		Error:        fmt.Sprintf(format, args...),
	}
}

// GetFormFiller returns the fill driver for a platform. The screenshot
// service is optional; without it attempts simply skip the final capture.
func GetFormFiller(platform string, browser *BrowserManager, screenshots *ScreenshotService) (FormFiller, error) {
	switch platform {
	case "linkedin":
		return NewLinkedInFiller(browser, screenshots), nil
	case "indeed":
		return NewIndeedFiller(browser, screenshots), nil
	default:
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
}
