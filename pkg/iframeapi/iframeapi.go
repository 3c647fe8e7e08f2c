// Package iframeapi downloads the script that defines the widget constructor
// inside a browser page.
package iframeapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
)

const (
	scriptPath     = "//www.youtube.com/iframe_api"
	maxScriptBytes = 4 << 20
)

var (
	ErrEmptyScript    = errors.New("iframe api script is empty")
	ErrScriptTooLarge = errors.New("iframe api script is too large")
)

// ScriptURL returns the script address for a page served over scheme. Pages
// served over plain http load it over http, everything else uses https.
func ScriptURL(scheme string) string {
	if scheme == "http" || scheme == "http:" {
		return "http:" + scriptPath
	}

	return "https:" + scriptPath
}

// Fetch downloads the script at url.
func Fetch(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to load script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	script, err := io.ReadAll(io.LimitReader(resp.Body, maxScriptBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read script: %w", err)
	}

	if len(script) > maxScriptBytes {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrScriptTooLarge, maxScriptBytes)
	}

	if len(script) == 0 {
		return nil, ErrEmptyScript
	}

	return script, nil
}
