// Package marathon is a minimal client for the Marathon v2 REST API as
// exposed on a DC/OS master, reached through a local tunnel endpoint.
package marathon

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const apiPrefix = "/marathon/v2"

// APIError reports a non-2xx response from the Marathon API.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("marathon: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// DeploymentRef identifies a pending deployment.
type DeploymentRef struct {
	ID           string   `json:"id"`
	AffectedApps []string `json:"affectedApps,omitempty"`
}

// CreateAppResponse is the relevant subset of the app creation response.
type CreateAppResponse struct {
	ID          string          `json:"id"`
	Deployments []DeploymentRef `json:"deployments"`
}

// Client calls the Marathon REST API at a fixed base URL.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a client for the given base URL, e.g.
// http://127.0.0.1:8001. A nil httpClient selects a default with a
// request timeout.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// CreateApp submits an app deployment request. Any transport error or
// non-2xx status is returned as an error; nothing is retried.
func (c *Client) CreateApp(ctx context.Context, app *App) (*CreateAppResponse, error) {
	body, err := json.Marshal(app)
	if err != nil {
		return nil, fmt.Errorf("marshal app request: %w", err)
	}
	path := apiPrefix + "/apps"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: http.MethodPost, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out CreateAppResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return &out, nil
}

// Deployments lists pending deployments. An empty slice means the
// orchestrator has converged.
func (c *Client) Deployments(ctx context.Context) ([]DeploymentRef, error) {
	path := apiPrefix + "/deployments"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get %s: %w", path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s response: %w", path, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{Method: http.MethodGet, Path: path, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(data))}
	}

	var out []DeploymentRef
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", path, err)
	}
	return out, nil
}
