// Package crawler discovers every file behind a Nexus 2 style HTML directory
// listing. Listings are plain pages of anchors: hrefs ending in "/" are
// sub-directories, everything else is a file.
package crawler

import (
	"context"
	"io"
	"net/http"
	"sort"
	"strings"

	httputil "github.com/harness/nexus-migrate/module/migrate/http"
	"github.com/harness/nexus-migrate/util/common/errors"

	"github.com/rs/zerolog/log"
	"golang.org/x/net/html"
)

const parentLink = "../"

// Doer sends HTTP requests. *httputil.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Crawler
type Option func(*Crawler)

// WithOnDirectory registers fn to be called with every directory URL right
// before it is fetched.
func WithOnDirectory(fn func(dirURL string)) Option {
	return func(c *Crawler) {
		c.onDirectory = fn
	}
}

type Crawler struct {
	client      Doer
	onDirectory func(string)
}

func New(client Doer, opts ...Option) *Crawler {
	if client == nil {
		client = httputil.NewClient(nil)
	}
	c := &Crawler{client: client}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl walks the listing tree below rootURL and returns the sorted set of
// leaf file URLs. Directories are visited depth first from an explicit stack,
// so tree depth never grows the goroutine stack. A directory reachable twice
// is fetched once.
func (c *Crawler) Crawl(ctx context.Context, rootURL string) ([]string, error) {
	files := make(map[string]struct{})
	visited := make(map[string]struct{})
	stack := []string{rootURL}

	for len(stack) > 0 {
		dir := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[dir]; ok {
			continue
		}
		visited[dir] = struct{}{}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		hrefs, err := c.list(ctx, dir)
		if err != nil {
			return nil, err
		}

		// push in reverse so the first listed sub-directory is visited first
		var subdirs []string
		for _, href := range hrefs {
			if href == parentLink || strings.HasPrefix(href, "?") {
				continue
			}
			abs := absolutify(dir, href)
			if strings.HasSuffix(href, "/") {
				subdirs = append(subdirs, abs)
			} else {
				files[abs] = struct{}{}
			}
		}
		for i := len(subdirs) - 1; i >= 0; i-- {
			stack = append(stack, subdirs[i])
		}
	}

	result := make([]string, 0, len(files))
	for f := range files {
		result = append(result, f)
	}
	sort.Strings(result)
	return result, nil
}

func (c *Crawler) list(ctx context.Context, dir string) ([]string, error) {
	log.Debug().Str("url", dir).Msg("Crawling")
	if c.onDirectory != nil {
		c.onDirectory(dir)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dir, nil)
	if err != nil {
		return nil, errors.NewFetchError(dir, 0, err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, errors.NewFetchError(dir, 0, err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return nil, errors.NewFetchError(dir, resp.StatusCode, nil)
	}

	hrefs, err := extractHrefs(resp.Body)
	if err != nil {
		return nil, errors.NewParseError(dir, err)
	}
	return hrefs, nil
}

// extractHrefs returns the href of every anchor in document order.
func extractHrefs(r io.Reader) ([]string, error) {
	var hrefs []string

	z := html.NewTokenizer(r)
	for {
		switch z.Next() {

		case html.ErrorToken:
			if z.Err() == io.EOF {
				return hrefs, nil // finished parsing
			}
			return nil, z.Err() // real error

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			if tok.Data != "a" {
				continue
			}
			for _, attr := range tok.Attr {
				if attr.Key == "href" {
					hrefs = append(hrefs, attr.Val)
				}
			}
		}
	}
}

func absolutify(prefix, href string) string {
	if isAbsoluteURL(href) {
		return href
	}
	return prefix + href
}

func isAbsoluteURL(href string) bool {
	return strings.HasPrefix(href, "http:") || strings.HasPrefix(href, "https:")
}
