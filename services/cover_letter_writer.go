package services

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"baliance.com/gooxml/document"
)

// CoverLetterWriter renders stored cover-letter text into a .docx artifact
// the fill drivers can upload. Content generation stays upstream; this
// only materializes text to a file.
type CoverLetterWriter struct {
	outputDir string
}

func NewCoverLetterWriter(outputDir string) *CoverLetterWriter {
	return &CoverLetterWriter{outputDir: outputDir}
}

// Write saves the text as a Word document and returns its path.
func (w *CoverLetterWriter) Write(text string, applicationID int) (string, error) {
	doc := document.New()
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(para)
		if para == "" {
			continue
		}
		doc.AddParagraph().AddRun().AddText(para)
	}

	path := filepath.Join(w.outputDir, fmt.Sprintf("cover_letter_%d_%d.docx", applicationID, time.Now().Unix()))
	if err := doc.SaveToFile(path); err != nil {
		return "", fmt.Errorf("failed to save cover letter: %w", err)
	}
	return path, nil
}
