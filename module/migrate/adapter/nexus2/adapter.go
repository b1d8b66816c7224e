package nexus2

import (
	"context"
	"io"
	"net/http"
	"os"
	"sort"
	"strings"

	adp "github.com/harness/nexus-migrate/module/migrate/adapter"
	"github.com/harness/nexus-migrate/module/migrate/crawler"
	httputil "github.com/harness/nexus-migrate/module/migrate/http"
	"github.com/harness/nexus-migrate/module/migrate/http/auth/basic"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common"
	"github.com/harness/nexus-migrate/util/common/errors"

	"github.com/rs/zerolog/log"
)

var _ adp.Source = (*Adapter)(nil)

// Adapter reads a hosted repository of a Nexus 2 server through its HTML
// content listings.
type Adapter struct {
	client  *httputil.Client
	crawler *crawler.Crawler
	reg     types.RegistryConfig
	root    string
}

// newClient constructs a client authenticating with the source credentials,
// anonymous when no username is configured.
func newClient(reg types.RegistryConfig) *httputil.Client {
	return httputil.NewClient(
		&http.Client{
			Transport: httputil.GetHTTPTransport(httputil.WithInsecure(reg.Insecure)),
		},
		basic.NewAuthorizer(reg.Credentials.Username, reg.Credentials.Password),
	)
}

func New(reg types.RegistryConfig, opts ...crawler.Option) *Adapter {
	client := newClient(reg)
	return &Adapter{
		client:  client,
		crawler: crawler.New(client, opts...),
		reg:     reg,
		root:    reg.RepositoryURL(),
	}
}

// Root is the repository root URL, always ending in "/".
func (a *Adapter) Root() string {
	return a.root
}

func (a *Adapter) Crawl(ctx context.Context) ([]string, error) {
	log.Info().Str("url", a.root).Msg("Crawling source repository")
	urls, err := a.crawler.Crawl(ctx, a.root)
	if err != nil {
		return nil, err
	}
	log.Info().Int("files", len(urls)).Msg("Crawl complete")
	return urls, nil
}

// Strip removes base from absoluteURL. It returns false when absoluteURL is not
// below base.
func Strip(base, absoluteURL string) (string, bool) {
	if !strings.HasPrefix(absoluteURL, base) {
		return "", false
	}
	return absoluteURL[len(base):], true
}

func (a *Adapter) RelativePaths(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	paths := make([]string, 0, len(urls))
	for _, u := range urls {
		rel, ok := Strip(a.root, u)
		if !ok {
			log.Debug().Str("url", u).Msg("Dropping url outside repository root")
			continue
		}
		if rel == "" {
			continue
		}
		if _, dup := seen[rel]; dup {
			continue
		}
		seen[rel] = struct{}{}
		paths = append(paths, rel)
	}
	sort.Strings(paths)
	return paths
}

func (a *Adapter) Download(ctx context.Context, relativePath, dir string) (string, int64, error) {
	url := a.root + relativePath

	resp, err := a.client.Get(ctx, url)
	if err != nil {
		return "", 0, errors.NewDownloadError(relativePath, 0, err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		return "", 0, errors.NewDownloadError(relativePath, resp.StatusCode, nil)
	}

	file, err := os.CreateTemp(dir, "nexus2-*-"+tempName(relativePath))
	if err != nil {
		return "", 0, errors.NewFileError(dir, "create", err)
	}

	size, err := io.Copy(file, resp.Body)
	if closeErr := file.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(file.Name())
		return "", 0, errors.NewDownloadError(relativePath, resp.StatusCode, err)
	}

	log.Debug().Str("path", relativePath).Str("size", common.GetSize(size)).Msg("Downloaded artifact")
	return file.Name(), size, nil
}

// tempName keeps the artifact's file name recognisable in the temp dir while
// staying a single valid path element.
func tempName(relativePath string) string {
	return strings.NewReplacer("/", "_", "*", "_", string(os.PathSeparator), "_").
		Replace(common.FileName(relativePath))
}
