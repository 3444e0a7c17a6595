package services

import (
	"errors"
	"testing"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"

	"jobbuddy/config"
)

// fakeConn is an in-memory stand-in for a persistent browser context.
type fakeConn struct {
	healthy    bool
	newPageErr error
	pageCalls  int
	closed     bool
}

func (c *fakeConn) NewPage() (playwright.Page, error) {
	c.pageCalls++
	if c.newPageErr != nil {
		return nil, c.newPageErr
	}
	return nil, nil
}

func (c *fakeConn) Pages() []playwright.Page { return nil }

func (c *fakeConn) Healthy() bool { return c.healthy }

func (c *fakeConn) Close() error {
	c.closed = true
	return nil
}

// fakeLauncher hands out the queued connections in order and counts launches.
type fakeLauncher struct {
	conns    []*fakeConn
	err      error
	launches int
}

func (l *fakeLauncher) launch(cfg config.BrowserConfig) (sessionConn, error) {
	l.launches++
	if l.err != nil {
		return nil, l.err
	}
	if len(l.conns) == 0 {
		return nil, errors.New("no more connections queued")
	}
	conn := l.conns[0]
	l.conns = l.conns[1:]
	return conn, nil
}

func newTestManager(l *fakeLauncher) *BrowserManager {
	return &BrowserManager{cfg: config.BrowserConfig{}, launch: l.launch}
}

func TestBrowserManager_StartIsIdempotent(t *testing.T) {
	launcher := &fakeLauncher{conns: []*fakeConn{{healthy: true}}}
	m := newTestManager(launcher)

	assert.NoError(t, m.Start())
	assert.NoError(t, m.Start())
	assert.Equal(t, 1, launcher.launches, "a live session must not be relaunched")
	assert.True(t, m.HealthCheck())
}

func TestBrowserManager_StartRecreatesStaleSession(t *testing.T) {
	stale := &fakeConn{healthy: false}
	fresh := &fakeConn{healthy: true}
	launcher := &fakeLauncher{conns: []*fakeConn{stale, fresh}}
	m := newTestManager(launcher)

	assert.NoError(t, m.Start())
	// The first connection reports unhealthy, so the next Start heals.
	assert.NoError(t, m.Start())

	assert.Equal(t, 2, launcher.launches)
	assert.True(t, stale.closed, "the stale session must be torn down before relaunch")
	assert.True(t, m.HealthCheck())
}

func TestBrowserManager_StartSurfacesSessionUnavailable(t *testing.T) {
	launcher := &fakeLauncher{err: errors.New("chromium not installed")}
	m := newTestManager(launcher)

	err := m.Start()
	assert.ErrorIs(t, err, ErrSessionUnavailable)
	assert.False(t, m.HealthCheck())
}

func TestBrowserManager_NewPageHealsOnce(t *testing.T) {
	broken := &fakeConn{healthy: true, newPageErr: errors.New("target closed")}
	fresh := &fakeConn{healthy: true}
	launcher := &fakeLauncher{conns: []*fakeConn{broken, fresh}}
	m := newTestManager(launcher)

	_, err := m.NewPage("")

	assert.NoError(t, err)
	assert.Equal(t, 2, launcher.launches, "exactly one teardown and recreate")
	assert.True(t, broken.closed)
	assert.Equal(t, 1, broken.pageCalls)
	assert.Equal(t, 1, fresh.pageCalls)
}

func TestBrowserManager_NewPageGivesUpAfterOneHeal(t *testing.T) {
	first := &fakeConn{healthy: true, newPageErr: errors.New("target closed")}
	second := &fakeConn{healthy: true, newPageErr: errors.New("target closed")}
	launcher := &fakeLauncher{conns: []*fakeConn{first, second}}
	m := newTestManager(launcher)

	_, err := m.NewPage("")

	assert.ErrorIs(t, err, ErrSessionUnavailable)
	assert.Equal(t, 2, launcher.launches, "the retry must not loop")
	assert.True(t, second.closed, "the failed replacement must be torn down")
	assert.False(t, m.HealthCheck(), "session stays absent until the next acquire")
}

func TestBrowserManager_NewPageRelaunchFailure(t *testing.T) {
	broken := &fakeConn{healthy: true, newPageErr: errors.New("target closed")}
	launcher := &fakeLauncher{conns: []*fakeConn{broken}}
	m := newTestManager(launcher)

	_, err := m.NewPage("")

	assert.ErrorIs(t, err, ErrSessionUnavailable)
	assert.True(t, broken.closed)
}

func TestBrowserManager_CloseIsSafeTwice(t *testing.T) {
	launcher := &fakeLauncher{conns: []*fakeConn{{healthy: true}}}
	m := newTestManager(launcher)

	assert.NoError(t, m.Start())
	assert.NoError(t, m.Close())
	assert.NoError(t, m.Close())
	assert.False(t, m.HealthCheck())
}

func TestBrowserManager_StatusBeforeStart(t *testing.T) {
	m := newTestManager(&fakeLauncher{})

	status := m.Status()

	assert.False(t, status.Initialized)
	assert.Zero(t, status.Pages)
}

func TestBrowserManager_OpenLoginPageUnknownPlatform(t *testing.T) {
	m := newTestManager(&fakeLauncher{})

	_, err := m.OpenLoginPage("monster")
	assert.Error(t, err)
}
