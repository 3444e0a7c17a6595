package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// fakeField simulates one text input.
type fakeField struct {
	label   string
	value   string
	fillErr error
	filled  []string
}

func (f *fakeField) Label() string { return f.label }
func (f *fakeField) Value() string { return f.value }
func (f *fakeField) Fill(value string) error {
	if f.fillErr != nil {
		return f.fillErr
	}
	f.filled = append(f.filled, value)
	f.value = value
	return nil
}

type fakeSlot struct {
	uploads   []string
	uploadErr error
}

func (s *fakeSlot) Upload(path string) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	s.uploads = append(s.uploads, path)
	return nil
}

// fakeWizard simulates an application wizard as a sequence of steps.
type wizardStep struct {
	files      []fileSlot
	fields     []formField
	reviewOnly []string
	hasSubmit  bool
	canAdvance bool
	advanceErr error
	fieldsErr  error
}

type fakeWizard struct {
	steps    []wizardStep
	current  int
	advances int
}

func (w *fakeWizard) step() wizardStep {
	if w.current >= len(w.steps) {
		return wizardStep{}
	}
	return w.steps[w.current]
}

func (w *fakeWizard) FileInputs() []fileSlot { return w.step().files }

func (w *fakeWizard) TextFields() ([]formField, error) {
	if err := w.step().fieldsErr; err != nil {
		return nil, err
	}
	return w.step().fields, nil
}

func (w *fakeWizard) ReviewOnlyLabels() []string { return w.step().reviewOnly }

func (w *fakeWizard) HasSubmitControl() bool { return w.step().hasSubmit }

func (w *fakeWizard) AdvanceStep() (bool, error) {
	if err := w.step().advanceErr; err != nil {
		return false, err
	}
	if !w.step().canAdvance {
		return false, nil
	}
	w.advances++
	w.current++
	return true, nil
}

func (w *fakeWizard) CurrentURL() string { return "https://example.test/apply" }

func TestRunWizard_StopsBeforeSubmit(t *testing.T) {
	// A submit control on any step must halt the loop without invoking it.
	field := &fakeField{label: "First Name"}
	w := &fakeWizard{steps: []wizardStep{
		{fields: []formField{field}, canAdvance: true},
		{hasSubmit: true, canAdvance: true},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusAwaitingSubmission, outcome.Status)
	assert.Equal(t, 1, w.advances, "must not advance past the submit step")
}

func TestRunWizard_FilledWhenWizardExhausted(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{fields: []formField{&fakeField{label: "Email"}}},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusFilled, outcome.Status)
	assert.Contains(t, outcome.FieldsFilled, "Email")
}

func TestRunWizard_FieldsFilledAndReviewDisjointAndCovering(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{
			files: []fileSlot{&fakeSlot{}},
			fields: []formField{
				&fakeField{label: "First Name"},
				&fakeField{label: "Favorite Color"},
			},
			reviewOnly: []string{"Why do you want this job?"},
		},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	discovered := make(map[string]bool)
	for _, field := range []string{"resume_upload", "First Name", "Favorite Color", "Why do you want this job?"} {
		discovered[field] = false
	}
	for _, f := range outcome.FieldsFilled {
		assert.False(t, discovered[f], "field %q reported twice", f)
		discovered[f] = true
	}
	for _, r := range outcome.NeedsReview {
		assert.False(t, discovered[r.Field], "field %q in both lists", r.Field)
		discovered[r.Field] = true
	}
	for field, seen := range discovered {
		assert.True(t, seen, "field %q not covered by the outcome", field)
	}
}

func TestRunWizard_IdempotentOverPrefilledFields(t *testing.T) {
	prefilled := &fakeField{label: "Email", value: "existing@example.com"}
	w := &fakeWizard{steps: []wizardStep{
		{fields: []formField{prefilled}},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Empty(t, prefilled.filled, "prefilled field must not be touched")
	assert.Equal(t, "existing@example.com", prefilled.value)
	assert.NotContains(t, outcome.FieldsFilled, "Email")
}

func TestRunWizard_BoundedSteps(t *testing.T) {
	// A wizard that always advances must terminate at the step bound.
	steps := make([]wizardStep, 100)
	for i := range steps {
		steps[i] = wizardStep{canAdvance: true}
	}
	w := &fakeWizard{steps: steps}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusFilled, outcome.Status)
	assert.LessOrEqual(t, w.advances, 10)
}

func TestRunWizard_TextareasAndDropdownsAlwaysReviewed(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{reviewOnly: []string{"Cover letter", "Years of experience"}},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	labels := make([]string, 0, len(outcome.NeedsReview))
	for _, r := range outcome.NeedsReview {
		labels = append(labels, r.Field)
	}
	assert.Contains(t, labels, "Cover letter")
	assert.Contains(t, labels, "Years of experience")
}

func TestRunWizard_UploadFailureIsReviewNotAbort(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{
			files:  []fileSlot{&fakeSlot{uploadErr: errors.New("input rejected file")}},
			fields: []formField{&fakeField{label: "First Name"}},
		},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusFilled, outcome.Status)
	assert.Contains(t, outcome.FieldsFilled, "First Name")

	var reviewed []string
	for _, r := range outcome.NeedsReview {
		reviewed = append(reviewed, r.Field)
	}
	assert.Contains(t, reviewed, "resume_upload")
}

func TestRunWizard_FillFailureIsReviewNotAbort(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{fields: []formField{&fakeField{label: "Email", fillErr: errors.New("element detached")}}},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusFilled, outcome.Status)
	assert.Empty(t, outcome.FieldsFilled)
	assert.Len(t, outcome.NeedsReview, 1)
	assert.Equal(t, "Email", outcome.NeedsReview[0].Field)
}

func TestRunWizard_DiscoveryErrorReturnsErrorWithPartials(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{fields: []formField{&fakeField{label: "First Name"}}, canAdvance: true},
		{fieldsErr: errors.New("page crashed")},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusError, outcome.Status)
	assert.NotEmpty(t, outcome.Error)
	assert.Equal(t, "https://example.test/apply", outcome.PageURL)
	// Partial progress from step 1 is preserved.
	assert.Contains(t, outcome.FieldsFilled, "First Name")
}

func TestRunWizard_AdvanceErrorReturnsErrorOutcome(t *testing.T) {
	w := &fakeWizard{steps: []wizardStep{
		{advanceErr: errors.New("click intercepted")},
	}}

	outcome := runWizard(w, testCandidate(), "/tmp/resume.pdf", "", 10)

	assert.Equal(t, StatusError, outcome.Status)
}

func TestRunWizard_UploadsCoverLetterIntoSecondSlot(t *testing.T) {
	resumeSlot := &fakeSlot{}
	coverSlot := &fakeSlot{}
	w := &fakeWizard{steps: []wizardStep{
		{files: []fileSlot{resumeSlot, coverSlot}},
	}}

	runWizard(w, testCandidate(), "/tmp/resume.pdf", "/tmp/cover.docx", 10)

	assert.Equal(t, []string{"/tmp/resume.pdf"}, resumeSlot.uploads)
	assert.Equal(t, []string{"/tmp/cover.docx"}, coverSlot.uploads)
}
