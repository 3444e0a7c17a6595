package services

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"
)

// UnknownFieldLabel is the sentinel returned when no lookup strategy can
// name a field.
const UnknownFieldLabel = "unknown_field"

// labelStrategy attempts one way of resolving the human-readable label of
// a form element. Strategies are tried in a fixed order that prefers
// explicit association over looser hints.
type labelStrategy func(page playwright.Page, el playwright.Locator) (string, bool)

func labelByForID(page playwright.Page, el playwright.Locator) (string, bool) {
	id, err := el.GetAttribute("id")
	if err != nil || id == "" {
		return "", false
	}
	label := page.Locator(fmt.Sprintf(`label[for=%q]`, id))
	count, err := label.Count()
	if err != nil || count == 0 {
		return "", false
	}
	text, err := label.First().InnerText()
	if err != nil {
		return "", false
	}
	return trimmedLabel(text)
}

func labelByAria(page playwright.Page, el playwright.Locator) (string, bool) {
	return attributeLabel(el, "aria-label")
}

func labelByPlaceholder(page playwright.Page, el playwright.Locator) (string, bool) {
	return attributeLabel(el, "placeholder")
}

func labelByName(page playwright.Page, el playwright.Locator) (string, bool) {
	return attributeLabel(el, "name")
}

func attributeLabel(el playwright.Locator, attr string) (string, bool) {
	value, err := el.GetAttribute(attr)
	if err != nil {
		return "", false
	}
	return trimmedLabel(value)
}

// trimmedLabel normalizes raw label text. Whitespace-only text is not a
// label; reporting it as one would stop the strategy cascade early.
func trimmedLabel(text string) (string, bool) {
	text = strings.TrimSpace(text)
	return text, text != ""
}

var labelStrategies = []labelStrategy{
	labelByForID,
	labelByAria,
	labelByPlaceholder,
	labelByName,
}

// FieldLabel resolves the label of an input, textarea or select:
// label-for-id binding first, then aria-label, placeholder and name
// attribute, falling back to UnknownFieldLabel.
func FieldLabel(page playwright.Page, el playwright.Locator) string {
	for _, strategy := range labelStrategies {
		if label, ok := strategy(page, el); ok {
			return label
		}
	}
	return UnknownFieldLabel
}

// settle gives client-side rendering a bounded window to catch up after a
// navigation or click. A fixed delay, not convergence polling.
func settle(page playwright.Page, ms float64) {
	page.WaitForTimeout(ms)
}
