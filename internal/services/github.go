package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/AnshRaj112/devconnect-backend/internal/models"
	"golang.org/x/oauth2"
)

const (
	DefaultGitHubAPIURL = "https://api.github.com"
	msgNoGitHubProfile  = "No Github Profile Found"
	maxGitHubBody       = 1 << 20
)

type GitHubConfig struct {
	BaseURL      string
	Token        string
	ClientID     string
	ClientSecret string
	Timeout      time.Duration
}

// GitHubClient fetches a user's recent public repositories.
type GitHubClient struct {
	baseURL      string
	httpClient   *http.Client
	clientID     string
	clientSecret string
	hasToken     bool
}

// NewGitHubClient authenticates with a personal token through oauth2 when
// one is configured, and falls back to the OAuth app's client credentials.
func NewGitHubClient(cfg GitHubConfig) *GitHubClient {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultGitHubAPIURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	httpClient := &http.Client{Timeout: cfg.Timeout}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, httpClient)
		httpClient = oauth2.NewClient(ctx, oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}))
		httpClient.Timeout = cfg.Timeout
	}

	return &GitHubClient{
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		httpClient:   httpClient,
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		hasToken:     cfg.Token != "",
	}
}

// Repos returns GitHub's JSON array of the user's five most recent repos as
// received. Any failure is reported as a missing GitHub profile.
func (c *GitHubClient) Repos(ctx context.Context, username string) (json.RawMessage, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, fmt.Errorf("empty username"))
	}

	q := url.Values{}
	q.Set("per_page", "5")
	q.Set("sort", "created:asc")
	endpoint := fmt.Sprintf("%s/users/%s/repos?%s", c.baseURL, url.PathEscape(username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, err)
	}
	req.Header.Set("User-Agent", "devconnect-backend")
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.clientID != "" && c.clientSecret != "" && !c.hasToken {
		req.SetBasicAuth(c.clientID, c.clientSecret)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, fmt.Errorf("github returned %d", resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxGitHubBody))
	if err != nil {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, err)
	}
	if !json.Valid(body) {
		return nil, models.NewUpstreamError(msgNoGitHubProfile, fmt.Errorf("github returned invalid JSON"))
	}
	return json.RawMessage(body), nil
}
