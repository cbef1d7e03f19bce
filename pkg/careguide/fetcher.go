// Package careguide pulls the readable text out of a care-guide web page.
package careguide

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"gardenguru/pkg/apperr"
)

type Guide struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Text  string `json:"text"`
}

type Fetcher struct {
	allow    map[string]bool
	maxBytes int64
	httpc    *http.Client
}

const maxRedirects = 5

var errRedirectNotAllowed = apperr.Validation("redirect to a domain that is not allowed")

// New builds a fetcher restricted to the given hosts. An empty allow list
// denies every host. Redirects are checked against the same list.
func New(allowed []string, maxBytes int64, timeout time.Duration) *Fetcher {
	allow := map[string]bool{}
	for _, h := range allowed {
		if h = strings.ToLower(strings.TrimSpace(h)); h != "" {
			allow[h] = true
		}
	}
	if maxBytes <= 0 {
		maxBytes = 1500000
	}
	f := &Fetcher{allow: allow, maxBytes: maxBytes}
	f.httpc = &http.Client{
		Timeout: timeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return apperr.Validation("too many redirects")
			}
			if !f.allowed(req.URL) {
				return errRedirectNotAllowed
			}
			return nil
		},
	}
	return f
}

func (f *Fetcher) allowed(u *url.URL) bool {
	return f.allow[strings.ToLower(u.Hostname())]
}

func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Guide, error) {
	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, apperr.Validation("bad url")
	}
	if !f.allowed(u) {
		return nil, apperr.Validation("domain not allowed")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, apperr.Upstream("build care guide request", err)
	}
	resp, err := f.httpc.Do(req)
	if err != nil {
		var ae *apperr.Error
		if errors.As(err, &ae) {
			return nil, ae
		}
		return nil, apperr.Upstream("fetch care guide", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, apperr.Upstream(fmt.Sprintf("fetch care guide: %s", resp.Status), nil)
	}
	if resp.ContentLength > f.maxBytes {
		return nil, apperr.Validation("page too large")
	}
	b, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes))
	if err != nil {
		return nil, apperr.Upstream("read care guide", err)
	}

	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	switch {
	case strings.Contains(ct, "text/plain"):
		s := string(b)
		return &Guide{Title: guessTitleFromText(s), URL: rawURL, Text: cleanWhitespace(s)}, nil
	case strings.Contains(ct, "text/html"):
	default:
		return nil, apperr.Validation("unsupported content-type: " + ct)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(b))
	if err != nil {
		return nil, apperr.Parse("parse care guide html", err)
	}
	title := strings.TrimSpace(doc.Find("title").First().Text())

	// main/article content, falling back to the whole page
	var parts []string
	sel := doc.Find("main, article")
	if sel.Length() == 0 {
		sel = doc.Selection
	}
	sel.Find("h1,h2,h3,p,li").Each(func(_ int, s *goquery.Selection) {
		if t := strings.TrimSpace(s.Text()); t != "" {
			parts = append(parts, t)
		}
	})
	return &Guide{Title: title, URL: rawURL, Text: cleanWhitespace(strings.Join(parts, "\n"))}, nil
}

var wsRX = regexp.MustCompile(`[ \t]*\n\s*`)

func cleanWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\r", "")
	return strings.TrimSpace(wsRX.ReplaceAllString(s, "\n"))
}

func guessTitleFromText(s string) string {
	line := strings.SplitN(strings.TrimSpace(s), "\n", 2)[0]
	if r := []rune(line); len(r) > 120 {
		line = string(r[:120])
	}
	return strings.TrimSpace(line)
}
