package services

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
)

// ScreenshotService captures full-page screenshots of fill attempts so the
// human can see exactly where the automation stopped. Uploads go to S3
// when configured, otherwise to a local static directory.
type ScreenshotService struct {
	s3        *S3Service
	staticDir string
}

func NewScreenshotService(s3 *S3Service, staticDir string) *ScreenshotService {
	os.MkdirAll(staticDir, 0o755)
	return &ScreenshotService{s3: s3, staticDir: staticDir}
}

// Capture takes a full-page screenshot and returns its S3 key or local
// static path.
func (s *ScreenshotService) Capture(page playwright.Page, kind string) (string, error) {
	filename := fmt.Sprintf("%s_%d.png", kind, time.Now().Unix())
	tempPath := filepath.Join(os.TempDir(), filename)

	if _, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(tempPath),
		FullPage: playwright.Bool(true),
	}); err != nil {
		return "", fmt.Errorf("failed to take screenshot: %w", err)
	}

	if s.s3 != nil {
		key := "screenshots/" + filename
		if _, err := s.s3.UploadFile(tempPath, key); err == nil {
			os.Remove(tempPath)
			return key, nil
		}
		log.Printf("S3 upload failed, falling back to local storage")
	}

	localPath := filepath.Join(s.staticDir, filename)
	if err := os.Rename(tempPath, localPath); err != nil {
		return "", fmt.Errorf("failed to save screenshot locally: %w", err)
	}
	return "/static/" + filename, nil
}
