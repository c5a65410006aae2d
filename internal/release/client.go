package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
)

// DefaultAPIBase is the public GitHub API endpoint. RELCHECK_API_BASE
// overrides it, which is also how tests point the client at a fake host.
const DefaultAPIBase = "https://api.github.com"

const defaultTimeout = 30 * time.Second

// TokenFromEnv returns the GitHub bearer token, preferring the
// relcheck-specific variable over the conventional one.
func TokenFromEnv() string {
	if tok := strings.TrimSpace(os.Getenv("RELCHECK_GITHUB_TOKEN")); tok != "" {
		return tok
	}
	return strings.TrimSpace(os.Getenv("GITHUB_TOKEN"))
}

// UserAgent identifies relcheck to the release host.
func UserAgent(version string) string {
	return fmt.Sprintf("relcheck/%s", version)
}

// FetchError reports a failed interaction with the release host. A failed
// metadata fetch is fatal to the run: no resolution strategy can proceed
// without it. Asset fetch failures wrap the same type but surface as
// strategy misses.
type FetchError struct {
	URL    string
	Status int
	Err    error
}

func (e *FetchError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.Status)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client talks to a GitHub-compatible release API.
type Client struct {
	base      string
	userAgent string
	token     string
	http      *http.Client
	log       *zap.Logger
}

// NewClient builds a client for the given API base. Empty base and
// non-positive timeout select the defaults. Every URL the client touches
// originates from the configured host or its release payload, so the bearer
// token (when present in the environment) is sent on all requests.
func NewClient(base, userAgent string, timeout time.Duration, log *zap.Logger) *Client {
	if base == "" {
		base = DefaultAPIBase
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Client{
		base:      strings.TrimRight(base, "/"),
		userAgent: userAgent,
		token:     TokenFromEnv(),
		http:      &http.Client{Timeout: timeout},
		log:       log,
	}
}

// Latest fetches the most recent release for "owner/name", validates the
// payload against the embedded release schema, and decodes it.
func (c *Client) Latest(ctx context.Context, repo string) (*Release, error) {
	url := fmt.Sprintf("%s/repos/%s/releases/latest", c.base, repo)
	body, err := c.fetch(ctx, url)
	if err != nil {
		return nil, err
	}
	if err := validatePayload(body); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("release payload: %w", err)}
	}
	var rel Release
	if err := json.Unmarshal(body, &rel); err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("decode release: %w", err)}
	}
	c.log.Debug("fetched release metadata",
		zap.String("repo", repo),
		zap.String("tag", rel.TagName),
		zap.Int("assets", len(rel.Assets)))
	return &rel, nil
}

// DownloadTo streams url into path. Used for all asset fetches so every
// downloaded artifact lives in the run workspace.
func (c *Client) DownloadTo(ctx context.Context, url, path string) error {
	resp, err := c.get(ctx, url)
	if err != nil {
		return &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &FetchError{URL: url, Status: resp.StatusCode}
	}

	f, err := os.Create(path) // #nosec G304 -- path under the run workspace
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, resp.Body); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	resp, err := c.get(ctx, url)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{URL: url, Status: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	return c.http.Do(req)
}
