package services

import (
	"strings"

	"github.com/playwright-community/playwright-go"
)

// wizardSelectors carries the platform-specific DOM conventions of one
// application wizard: where it lives and which controls move it forward
// or finalize it.
type wizardSelectors struct {
	// scope prefixes every lookup, e.g. a modal container. Empty means
	// the whole page.
	scope string
	// submit controls are detected but never invoked.
	submit string
	// advance controls are tried in order; the first visible one wins.
	advance []string
	// waitLoad reloads the document between steps (full-page wizards).
	waitLoad bool
}

// playwrightWizard implements wizardPage against a live Playwright page.
type playwrightWizard struct {
	page      playwright.Page
	selectors wizardSelectors
	settleMs  float64
}

func (w *playwrightWizard) scoped(selector string) string {
	if w.selectors.scope == "" {
		return selector
	}
	parts := strings.Split(selector, ", ")
	for i, p := range parts {
		parts[i] = w.selectors.scope + " " + p
	}
	return strings.Join(parts, ", ")
}

func (w *playwrightWizard) FileInputs() []fileSlot {
	inputs, err := w.page.Locator(w.scoped(`input[type="file"]`)).All()
	if err != nil {
		return nil
	}
	slots := make([]fileSlot, 0, len(inputs))
	for _, input := range inputs {
		slots = append(slots, &playwrightFileSlot{input: input})
	}
	return slots
}

func (w *playwrightWizard) TextFields() ([]formField, error) {
	inputs, err := w.page.Locator(w.scoped(`input[type="text"], input[type="email"], input[type="tel"]`)).All()
	if err != nil {
		return nil, err
	}
	fields := make([]formField, 0, len(inputs))
	for _, input := range inputs {
		fields = append(fields, &playwrightField{page: w.page, input: input})
	}
	return fields, nil
}

func (w *playwrightWizard) ReviewOnlyLabels() []string {
	var labels []string
	for _, selector := range []string{"textarea", "select"} {
		elements, err := w.page.Locator(w.scoped(selector)).All()
		if err != nil {
			continue
		}
		for _, el := range elements {
			labels = append(labels, FieldLabel(w.page, el))
		}
	}
	return labels
}

func (w *playwrightWizard) HasSubmitControl() bool {
	count, err := w.page.Locator(w.scoped(w.selectors.submit)).Count()
	return err == nil && count > 0
}

func (w *playwrightWizard) AdvanceStep() (bool, error) {
	for _, selector := range w.selectors.advance {
		btn := w.page.Locator(w.scoped(selector))
		count, err := btn.Count()
		if err != nil || count == 0 {
			continue
		}
		if err := btn.First().Click(); err != nil {
			return false, err
		}
		if w.selectors.waitLoad {
			if err := w.page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
				State: playwright.LoadStateDomcontentloaded,
			}); err != nil {
				return false, err
			}
		}
		settle(w.page, w.settleMs)
		return true, nil
	}
	return false, nil
}

func (w *playwrightWizard) CurrentURL() string { return w.page.URL() }

type playwrightFileSlot struct {
	input playwright.Locator
}

func (s *playwrightFileSlot) Upload(path string) error {
	return s.input.SetInputFiles(path)
}

type playwrightField struct {
	page  playwright.Page
	input playwright.Locator
}

func (f *playwrightField) Label() string {
	return FieldLabel(f.page, f.input)
}

func (f *playwrightField) Value() string {
	value, err := f.input.InputValue()
	if err != nil {
		return ""
	}
	return value
}

func (f *playwrightField) Fill(value string) error {
	return f.input.Fill(value)
}
