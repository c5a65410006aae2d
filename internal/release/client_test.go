package release

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLatest(t *testing.T) {
	payload := `{
		"tag_name": "v0.25.0",
		"assets": [
			{"name": "cyclonedx-linux-x64", "browser_download_url": "https://example.invalid/bin", "size": 42},
			{"name": "checksums.txt", "browser_download_url": "https://example.invalid/sums"}
		]
	}`

	var gotUA, gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAuth = r.Header.Get("Authorization")
		if r.URL.Path != "/repos/test/example/releases/latest" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(payload))
	}))
	defer ts.Close()

	t.Setenv("RELCHECK_GITHUB_TOKEN", "tok-123")

	client := NewClient(ts.URL, UserAgent("test"), time.Second, nil)
	rel, err := client.Latest(context.Background(), "test/example")
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}

	if rel.TagName != "v0.25.0" {
		t.Fatalf("TagName = %q, want %q", rel.TagName, "v0.25.0")
	}
	if len(rel.Assets) != 2 {
		t.Fatalf("assets = %d, want 2", len(rel.Assets))
	}
	if rel.Assets[0].Size != 42 {
		t.Fatalf("asset size = %d, want 42", rel.Assets[0].Size)
	}
	if gotUA != "relcheck/test" {
		t.Fatalf("User-Agent = %q, want %q", gotUA, "relcheck/test")
	}
	if gotAuth != "Bearer tok-123" {
		t.Fatalf("Authorization = %q, want bearer token", gotAuth)
	}
}

func TestLatestErrors(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantSub string
	}{
		{name: "not found", status: http.StatusNotFound, body: `{"message":"Not Found"}`, wantSub: "status 404"},
		{name: "rate limited", status: http.StatusForbidden, body: `{"message":"rate limit"}`, wantSub: "status 403"},
		{name: "not json", status: http.StatusOK, body: `<html>`, wantSub: "invalid JSON"},
		{name: "missing tag_name", status: http.StatusOK, body: `{"assets": []}`, wantSub: "release payload"},
		{name: "empty tag_name", status: http.StatusOK, body: `{"tag_name": "", "assets": []}`, wantSub: "release payload"},
		{name: "asset without url", status: http.StatusOK, body: `{"tag_name": "v1.0.0", "assets": [{"name": "x"}]}`, wantSub: "release payload"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer ts.Close()

			client := NewClient(ts.URL, UserAgent("test"), time.Second, nil)
			_, err := client.Latest(context.Background(), "test/example")
			if err == nil {
				t.Fatal("expected an error")
			}
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("error %T is not a *FetchError", err)
			}
			if !strings.Contains(err.Error(), tc.wantSub) {
				t.Fatalf("error %q does not contain %q", err.Error(), tc.wantSub)
			}
		})
	}
}

func TestLatestUnreachableHost(t *testing.T) {
	// A closed server yields a transport error, not a status.
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	client := NewClient(ts.URL, UserAgent("test"), time.Second, nil)
	_, err := client.Latest(context.Background(), "test/example")
	if err == nil {
		t.Fatal("expected an error")
	}
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("error %T is not a *FetchError", err)
	}
	if fe.Status != 0 {
		t.Fatalf("Status = %d, want 0 for transport errors", fe.Status)
	}
}

func TestDownloadTo(t *testing.T) {
	body := []byte("artifact bytes")
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write(body)
	}))
	defer ts.Close()

	client := NewClient(ts.URL, UserAgent("test"), time.Second, nil)
	dest := filepath.Join(t.TempDir(), "asset")

	if err := client.DownloadTo(context.Background(), ts.URL+"/asset", dest); err != nil {
		t.Fatalf("DownloadTo: %v", err)
	}
	got, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read downloaded file: %v", err)
	}
	if string(got) != string(body) {
		t.Fatalf("downloaded %q, want %q", got, body)
	}

	err = client.DownloadTo(context.Background(), ts.URL+"/missing", filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected an error for 404")
	}
	var fe *FetchError
	if !errors.As(err, &fe) || fe.Status != http.StatusNotFound {
		t.Fatalf("error = %v, want FetchError with status 404", err)
	}
}

func TestTokenFromEnv(t *testing.T) {
	t.Setenv("RELCHECK_GITHUB_TOKEN", " specific ")
	t.Setenv("GITHUB_TOKEN", "generic")
	if got := TokenFromEnv(); got != "specific" {
		t.Fatalf("TokenFromEnv = %q, want %q", got, "specific")
	}

	t.Setenv("RELCHECK_GITHUB_TOKEN", "")
	if got := TokenFromEnv(); got != "generic" {
		t.Fatalf("TokenFromEnv = %q, want %q", got, "generic")
	}
}
