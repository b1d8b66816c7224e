package adapter

import (
	"context"

	"github.com/harness/nexus-migrate/module/migrate/format"
)

// Source is the registry artifacts are read from.
type Source interface {
	// Crawl returns every artifact URL below the repository root.
	Crawl(ctx context.Context) ([]string, error)
	// RelativePaths strips the repository root from urls.
	RelativePaths(urls []string) []string
	// Download stores the artifact at relativePath in a new file under dir and
	// returns its path and size. The caller removes the file.
	Download(ctx context.Context, relativePath, dir string) (string, int64, error)
}

// Destination is the registry artifacts are written to.
type Destination interface {
	Exists(ctx context.Context, probePath string) (bool, error)
	UploadArtifact(ctx context.Context, f format.Format, localPath, relativePath string) error
}
