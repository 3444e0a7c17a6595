package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"sync"

	"github.com/playwright-community/playwright-go"

	"jobbuddy/config"
)

// ErrSessionUnavailable is returned when the browser session could not be
// created or healed after one recreate attempt. The session stays absent
// until the next acquire.
var ErrSessionUnavailable = errors.New("browser session unavailable")

// sessionConn is the narrow slice of a persistent browser context the
// manager needs. Tests substitute a fake; production uses Playwright.
type sessionConn interface {
	NewPage() (playwright.Page, error)
	Pages() []playwright.Page
	Healthy() bool
	Close() error
}

type sessionLauncher func(cfg config.BrowserConfig) (sessionConn, error)

type playwrightSession struct {
	pw  *playwright.Playwright
	ctx playwright.BrowserContext
}

func (s *playwrightSession) NewPage() (playwright.Page, error) { return s.ctx.NewPage() }

func (s *playwrightSession) Pages() []playwright.Page { return s.ctx.Pages() }

func (s *playwrightSession) Healthy() bool {
	browser := s.ctx.Browser()
	return browser != nil && browser.IsConnected()
}

func (s *playwrightSession) Close() error {
	err := s.ctx.Close()
	if stopErr := s.pw.Stop(); stopErr != nil && err == nil {
		err = stopErr
	}
	return err
}

func launchPersistent(cfg config.BrowserConfig) (sessionConn, error) {
	if err := os.MkdirAll(cfg.ProfileDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create profile dir: %w", err)
	}

	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	ctx, err := pw.Chromium.LaunchPersistentContext(cfg.ProfileDir, playwright.BrowserTypeLaunchPersistentContextOptions{
		Headless: playwright.Bool(cfg.Headless),
		Viewport: &playwright.Size{Width: 1280, Height: 900},
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--no-sandbox",
		},
		IgnoreDefaultArgs: []string{"--enable-automation"},
	})
	if err != nil {
		if stopErr := pw.Stop(); stopErr != nil {
			log.Printf("Error stopping playwright after failed launch: %v", stopErr)
		}
		return nil, fmt.Errorf("failed to launch persistent context: %w", err)
	}

	return &playwrightSession{pw: pw, ctx: ctx}, nil
}

// BrowserStatus reports the session state plus best-effort login state per
// platform, inferred by navigating to an authenticated-only URL.
type BrowserStatus struct {
	Initialized      bool `json:"initialized"`
	Pages            int  `json:"pages"`
	LinkedInLoggedIn bool `json:"linkedin_logged_in"`
	IndeedLoggedIn   bool `json:"indeed_logged_in"`
}

// BrowserManager owns the single persistent browser session shared by all
// search and fill drivers. Lifecycle transitions (create, heal, shutdown)
// are serialized behind the mutex; pages, once handed out, may be driven
// concurrently by independent callers.
type BrowserManager struct {
	cfg    config.BrowserConfig
	launch sessionLauncher

	mu          sync.Mutex
	conn        sessionConn
	initialized bool
}

func NewBrowserManager(cfg config.BrowserConfig) *BrowserManager {
	return &BrowserManager{cfg: cfg, launch: launchPersistent}
}

// Start creates the session if it is not already live. Idempotent.
func (m *BrowserManager) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureLiveLocked()
}

// ensureLiveLocked brings the session to the live state: creates it when
// absent, tears down and recreates when the health check fails. Callers
// must hold m.mu.
func (m *BrowserManager) ensureLiveLocked() error {
	if m.initialized && m.conn != nil && m.conn.Healthy() {
		return nil
	}

	if m.conn != nil {
		log.Printf("Browser session is stale, recreating")
		if err := m.conn.Close(); err != nil {
			log.Printf("Error closing stale session: %v", err)
		}
		m.conn = nil
		m.initialized = false
	}

	conn, err := m.launch(m.cfg)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
	}

	m.conn = conn
	m.initialized = true
	log.Printf("Browser session started (profile=%s headless=%v)", m.cfg.ProfileDir, m.cfg.Headless)
	return nil
}

// teardownLocked drops the current session so the next ensure recreates it.
func (m *BrowserManager) teardownLocked() {
	if m.conn != nil {
		if err := m.conn.Close(); err != nil {
			log.Printf("Error closing session: %v", err)
		}
	}
	m.conn = nil
	m.initialized = false
}

// NewPage opens a new tab, optionally navigating to a URL. If the session
// is found stale mid-call it heals once and retries; a second failure
// surfaces ErrSessionUnavailable.
func (m *BrowserManager) NewPage(url string) (playwright.Page, error) {
	m.mu.Lock()
	if err := m.ensureLiveLocked(); err != nil {
		m.mu.Unlock()
		return nil, err
	}

	page, err := m.conn.NewPage()
	if err != nil {
		// One heal-and-retry, then give up.
		m.teardownLocked()
		if err := m.ensureLiveLocked(); err != nil {
			m.mu.Unlock()
			return nil, err
		}
		page, err = m.conn.NewPage()
		if err != nil {
			m.teardownLocked()
			m.mu.Unlock()
			return nil, fmt.Errorf("%w: %v", ErrSessionUnavailable, err)
		}
	}
	m.mu.Unlock()

	if url != "" {
		if _, err := page.Goto(url, playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(m.cfg.NavigationTimeoutMs),
		}); err != nil {
			m.ClosePage(page)
			return nil, fmt.Errorf("navigation to %s failed: %w", url, err)
		}
	}

	return page, nil
}

// HealthCheck classifies the session live vs stale without erroring.
func (m *BrowserManager) HealthCheck() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.initialized && m.conn != nil && m.conn.Healthy()
}

// ClosePage releases a tab. Safe to call on an already-closed page.
func (m *BrowserManager) ClosePage(page playwright.Page) {
	if page == nil {
		return
	}
	if err := page.Close(); err != nil {
		log.Printf("Error closing page: %v", err)
	}
}

// CloseAll closes every open tab but keeps the session alive.
func (m *BrowserManager) CloseAll() {
	m.mu.Lock()
	conn := m.conn
	m.mu.Unlock()
	if conn == nil {
		return
	}
	for _, page := range conn.Pages() {
		if err := page.Close(); err != nil {
			log.Printf("Error closing page: %v", err)
		}
	}
}

// Close shuts the session down. Safe to call twice.
func (m *BrowserManager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.conn == nil {
		return nil
	}
	err := m.conn.Close()
	m.conn = nil
	m.initialized = false
	return err
}

var loginURLs = map[string]string{
	"linkedin": "https://www.linkedin.com/login",
	"indeed":   "https://secure.indeed.com/auth",
}

// OpenLoginPage opens a platform login page for manual authentication.
func (m *BrowserManager) OpenLoginPage(platform string) (playwright.Page, error) {
	url, ok := loginURLs[platform]
	if !ok {
		return nil, fmt.Errorf("unknown platform: %s", platform)
	}
	return m.NewPage(url)
}

// IsLoggedIn checks login state by visiting an authenticated-only URL and
// looking for a redirect to login. Best-effort; failures read as false.
func (m *BrowserManager) IsLoggedIn(platform string) bool {
	page, err := m.NewPage("")
	if err != nil {
		return false
	}
	defer m.ClosePage(page)

	switch platform {
	case "linkedin":
		if _, err := page.Goto("https://www.linkedin.com/feed/", playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(m.cfg.NavigationTimeoutMs),
		}); err != nil {
			return false
		}
		page.WaitForTimeout(m.cfg.SettleMs)
		url := page.URL()
		return strings.Contains(url, "feed") && !strings.Contains(url, "login")
	case "indeed":
		if _, err := page.Goto("https://www.indeed.com/account/view", playwright.PageGotoOptions{
			WaitUntil: playwright.WaitUntilStateDomcontentloaded,
			Timeout:   playwright.Float(m.cfg.NavigationTimeoutMs),
		}); err != nil {
			return false
		}
		page.WaitForTimeout(m.cfg.SettleMs)
		url := page.URL()
		return !strings.Contains(url, "login") && !strings.Contains(url, "auth")
	}
	return false
}

// Status reports the session state. Login checks open short-lived tabs, so
// this is comparatively expensive when the session is live.
func (m *BrowserManager) Status() BrowserStatus {
	m.mu.Lock()
	initialized := m.initialized && m.conn != nil
	var pages int
	if initialized {
		pages = len(m.conn.Pages())
	}
	m.mu.Unlock()

	if !initialized {
		return BrowserStatus{}
	}

	return BrowserStatus{
		Initialized:      true,
		Pages:            pages,
		LinkedInLoggedIn: m.IsLoggedIn("linkedin"),
		IndeedLoggedIn:   m.IsLoggedIn("indeed"),
	}
}
