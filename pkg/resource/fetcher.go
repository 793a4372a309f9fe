package resource

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

const DefaultUserAgent = "lantern/1.0 (compatible; Go)"

var ErrUnsupportedScheme = errors.New("unsupported scheme")

// Status is a response's status code and reason phrase.
type Status struct {
	Code        int
	Explanation string
}

func (s Status) String() string {
	return fmt.Sprintf("%d %s", s.Code, s.Explanation)
}

// Response is a fetched document. Header names are lower-case and Body is
// decoded to UTF-8.
type Response struct {
	Version string
	Status  Status
	Headers map[string]string
	Body    string
}

// StatusError reports a non-2xx response.
type StatusError struct {
	URL    URL
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Status)
}

// Fetcher retrieves documents.
type Fetcher interface {
	Fetch(ctx context.Context, u URL) (*Response, error)
}

// HTTPFetcher fetches http, https and file URLs.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	logger    *zap.Logger
}

func NewHTTPFetcher(timeout time.Duration, userAgent string, logger *zap.Logger) *HTTPFetcher {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
		logger:    logger.Named("fetcher"),
	}
}

func (f *HTTPFetcher) Fetch(ctx context.Context, u URL) (*Response, error) {
	start := time.Now()
	var (
		resp *Response
		err  error
	)
	switch u.Scheme {
	case "http", "https":
		resp, err = f.fetchHTTP(ctx, u)
	case "file":
		resp, err = f.fetchFile(u)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, u.Scheme)
	}
	if err != nil {
		return nil, err
	}
	f.logger.Debug("fetched",
		zap.Stringer("url", u),
		zap.Int("status", resp.Status.Code),
		zap.Int("bytes", len(resp.Body)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp, nil
}

func (f *HTTPFetcher) fetchHTTP(ctx context.Context, u URL) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	httpResp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", u, err)
	}
	defer httpResp.Body.Close()

	status := Status{
		Code:        httpResp.StatusCode,
		Explanation: strings.TrimPrefix(httpResp.Status, strconv.Itoa(httpResp.StatusCode)+" "),
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return nil, &StatusError{URL: u, Status: status}
	}

	headers := make(map[string]string, len(httpResp.Header))
	for name, values := range httpResp.Header {
		headers[strings.ToLower(name)] = strings.Join(values, ", ")
	}

	body, err := decode(httpResp.Body, headers["content-type"])
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	return &Response{Version: httpResp.Proto, Status: status, Headers: headers, Body: body}, nil
}

func (f *HTTPFetcher) fetchFile(u URL) (*Response, error) {
	path := filepath.FromSlash(u.Path)
	if u.Host != "" {
		path = filepath.Join(u.Host, path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	contentType := mime.TypeByExtension(filepath.Ext(path))
	body, err := decode(bytes.NewReader(data), contentType)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", u, err)
	}
	headers := map[string]string{}
	if contentType != "" {
		headers["content-type"] = contentType
	}
	return &Response{Status: Status{Code: 200, Explanation: "OK"}, Headers: headers, Body: body}, nil
}

// decode converts r to UTF-8 using the charset named in contentType, or
// one sniffed from the content.
func decode(r io.Reader, contentType string) (string, error) {
	utf8Reader, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(utf8Reader)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
