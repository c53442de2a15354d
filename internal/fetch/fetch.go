package fetch

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Result is the outcome of a single fetch. Transport failures populate Err
// and leave Status zero; HTTP error statuses are still successful fetches.
type Result struct {
	URL    string
	Status int
	Header http.Header
	Body   string
	Size   int
	Err    string
}

// Fetched reports whether any HTTP response came back at all.
func (r Result) Fetched() bool { return r.Err == "" && r.Status > 0 }

// OK reports a usable response: fetched and not an HTTP error.
func (r Result) OK() bool { return r.Fetched() && r.Status < 400 }

// Client performs timeout-bounded GETs with redirect following and a
// response size cap. It never returns an error: failure is a Result value.
type Client struct {
	client    *http.Client
	sizeCap   int64
	userAgent string
}

func NewClient(timeout, dialTimeout time.Duration, sizeCap int64, userAgent string) *Client {
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   dialTimeout,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}
	return &Client{
		client: &http.Client{
			Transport: transport,
			Timeout:   timeout,
		},
		sizeCap:   sizeCap,
		userAgent: userAgent,
	}
}

// Get fetches one URL. Each call is a single attempt; there is no retry.
func (c *Client) Get(ctx context.Context, rawURL string) Result {
	res := Result{URL: rawURL}

	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		res.Err = "invalid url"
		return res
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.client.Do(req)
	if err != nil {
		res.Err = err.Error()
		return res
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, c.sizeCap))
	if err != nil {
		res.Err = err.Error()
		return res
	}

	res.Status = resp.StatusCode
	res.Header = resp.Header
	res.Size = len(raw)
	res.Body = decodeToUTF8(raw, resp.Header.Get("Content-Type"))
	return res
}

// decodeToUTF8 converts the body using the declared or sniffed charset,
// falling back to the raw bytes when decoding is not possible.
func decodeToUTF8(raw []byte, contentType string) string {
	r, err := charset.NewReader(strings.NewReader(string(raw)), contentType)
	if err != nil {
		return string(raw)
	}
	decoded, err := io.ReadAll(r)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}
