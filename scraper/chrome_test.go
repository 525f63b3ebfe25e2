package scraper

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBudget(t *testing.T) {
	req := RenderRequest{
		NavigationTimeout: 30 * time.Second,
		SettleDelay:       2 * time.Second,
		SelectorTimeout:   5 * time.Second,
		Containers:        []string{"a", "b", "c", "d"},
	}
	assert.Equal(t, 52*time.Second, renderBudget(req))

	req.WarmupURL = "https://www.swiggy.com/instamart"
	req.ScrollDelay = time.Second
	assert.Equal(t, 84*time.Second, renderBudget(req))
}

func fakeBinary(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func TestFindChromeBinaryPrefersConfigured(t *testing.T) {
	t.Setenv("CHROME_BIN", "/from/env/chrome")
	assert.Equal(t, "/opt/custom/chrome", findChromeBinary("/opt/custom/chrome"))
}

func TestFindChromeBinaryUsesEnv(t *testing.T) {
	t.Setenv("CHROME_BIN", "/from/env/chrome")
	assert.Equal(t, "/from/env/chrome", findChromeBinary(""))
}

func TestFindChromeBinaryLookupOrder(t *testing.T) {
	dir := t.TempDir()
	fakeBinary(t, dir, "chromium")
	want := fakeBinary(t, dir, "google-chrome")

	t.Setenv("CHROME_BIN", "")
	t.Setenv("PATH", dir)

	assert.Equal(t, want, findChromeBinary(""))
}
