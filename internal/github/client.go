package github

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/KOFI-GYIMAH/portfolio/pkg/errors"
	"github.com/KOFI-GYIMAH/portfolio/pkg/logger"
)

var (
	baseURL = "https://api.github.com"
)

type Client struct {
	httpClient   *http.Client
	token        string
	strictStatus bool
	rates        *RateTracker
}

type Option func(*Client)

// * WithStrictStatus rejects any response that is not 200 OK. Without it a
// * parseable body is accepted whatever the status code.
func WithStrictStatus() Option {
	return func(c *Client) { c.strictStatus = true }
}

// * WithTimeout bounds each request. Zero leaves requests unbounded.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

func NewClient(token string, opts ...Option) *Client {
	rt := NewRateTracker()

	c := &Client{
		httpClient: &http.Client{
			Transport: rt.Middleware(http.DefaultTransport),
		},
		token: token,
		rates: rt,
	}

	for _, opt := range opts {
		opt(c)
	}
	return c
}

// * Rates exposes the last rate-limit budget reported by GitHub
func (c *Client) Rates() *RateTracker {
	return c.rates
}

func (c *Client) makeRequest(ctx context.Context, method, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP request: %w", err)
	}

	if c.token != "" {
		req.Header.Set("Authorization", "token "+c.token)
	}
	req.Header.Set("Accept", "application/vnd.github.v3+json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute HTTP request: %w", err)
	}
	return resp, nil
}

// * GetRepository fetches one repository by its owner/name descriptor
func (c *Client) GetRepository(ctx context.Context, descriptor string) (*Repository, error) {
	resp, err := c.makeRequest(ctx, http.MethodGet, "/repos/"+descriptor)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to fetch repository from GitHub",
			fmt.Sprintf("Could not retrieve repository %s from GitHub API", descriptor),
			err,
			errors.LevelError,
		)
	}
	defer resp.Body.Close()

	if c.strictStatus {
		if err := checkStatus(resp, descriptor); err != nil {
			return nil, err
		}
	} else if resp.StatusCode != http.StatusOK {
		logger.Debug("GitHub returned status %d for %s, decoding body anyway", resp.StatusCode, descriptor)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to read GitHub API response",
			"Could not read the response body from GitHub API",
			err,
			errors.LevelError,
		)
	}

	var repository Repository
	if err := json.Unmarshal(body, &repository); err != nil {
		return nil, errors.New(
			errors.RefGitHubAPI,
			"Failed to parse GitHub API response",
			fmt.Sprintf("Could not understand the response for %s from GitHub API", descriptor),
			err,
			errors.LevelError,
		)
	}

	return &repository, nil
}

func checkStatus(resp *http.Response, descriptor string) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return errors.New(
			errors.RefRepositoryNotFound,
			"Repository not found on GitHub",
			fmt.Sprintf("The repository %s does not exist or you don't have access to it", descriptor),
			nil,
			errors.LevelInfo,
		)
	default:
		return errors.New(
			errors.RefGitHubAPI,
			"Unexpected response from GitHub API",
			fmt.Sprintf("GitHub API returned status %d when fetching repository %s", resp.StatusCode, descriptor),
			nil,
			errors.LevelError,
		)
	}
}
