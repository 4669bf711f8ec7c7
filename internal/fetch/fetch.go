// Package fetch retrieves the raw HTML of the pages to sift, from HTTP(S) URLs,
// local files, or standard input.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// size limits for fetched content; a page is read fully into memory before extraction
const (
	MaxFileSizeBytes = 50 * 1024 * 1024  // 50MB for local files and stdin
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB for HTTP bodies (Content-Length may be missing)
)

// UserAgent is sent with every HTTP request.
const UserAgent = "prosesift/0.1"

// HTTPRequestTimeout bounds a whole HTTP request.
const HTTPRequestTimeout = 30 * time.Second

// phase timeouts, derived from HTTPRequestTimeout
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6 // ~17%, connecting
	HTTPTLSTimeout            = HTTPRequestTimeout / 6 // ~17%, TLS handshake
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2 // 50%, server think time, usually the slowest phase
)

// limitedReadCloser fails reads once more than N bytes were consumed
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared by all page fetches and safe for concurrent use
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		DialContext: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).DialContext,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		// one request per page; pooled connections would only sit idle between sources
		DisableKeepAlives: true,
	},
}

// Page is an opened source. The caller must Close it.
type Page struct {
	// Source is the argument the page was opened from
	Source string
	// BaseURL is the page URL for HTTP sources, nil otherwise
	BaseURL *url.URL
	// Body yields the raw page content
	Body io.ReadCloser
}

// Close releases the page body.
func (p *Page) Close() error {
	return p.Body.Close()
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// Open opens source for reading:
//   - "-" reads standard input
//   - "http://" and "https://" URLs are fetched with GET
//   - anything else is a local file path
func Open(ctx context.Context, source string) (*Page, error) {
	switch {
	case source == "-":
		// NopCloser so closing the page never closes the process's stdin
		return &Page{
			Source: "stdin",
			Body: &limitedReadCloser{
				ReadCloser: io.NopCloser(os.Stdin),
				N:          MaxFileSizeBytes,
				source:     "stdin",
			},
		}, nil
	case IsURL(source):
		return openURL(ctx, source)
	default:
		return openFile(source)
	}
}

// openURL GETs an HTTP(S) page, rejecting non-200 responses and oversized bodies
func openURL(ctx context.Context, rawURL string) (*Page, error) {
	baseURL, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid URL %q: %w", rawURL, err)
	}

	// create request with User-Agent and context so SIGINT aborts a slow server
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	// execute request using shared client
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", rawURL, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %s", rawURL, resp.Status)
	}

	// reject oversized bodies up front when the server announces their size;
	// limitedReadCloser covers the rest
	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)", size, MaxHTTPSizeBytes)
		}
	}

	// the final URL after redirects resolves relative links
	if resp.Request != nil && resp.Request.URL != nil {
		baseURL = resp.Request.URL
	}

	return &Page{
		Source:  rawURL,
		BaseURL: baseURL,
		Body: &limitedReadCloser{
			ReadCloser: resp.Body,
			N:          MaxHTTPSizeBytes,
			source:     rawURL,
		},
	}, nil
}

// openFile opens a local HTML file after checking its size
func openFile(path string) (*Page, error) {
	fileInfo, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", path, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", path)
	}
	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			path, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", path, err)
	}
	return &Page{Source: path, Body: file}, nil
}
