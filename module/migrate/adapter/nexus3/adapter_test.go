package nexus3

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/harness/nexus-migrate/module/migrate/format"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type part struct {
	Name        string
	Filename    string
	ContentType string
	Body        string
}

type recorder struct {
	mu       sync.Mutex
	requests []recorded
}

type recorded struct {
	Query string
	User  string
	Pass  string
	Parts []part
}

func (r *recorder) add(rec recorded) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requests = append(r.requests, rec)
}

func (r *recorder) all() []recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recorded(nil), r.requests...)
}

// uploadServer records every multipart upload in wire order and answers with
// status.
func uploadServer(t *testing.T, status int, body string) (*httptest.Server, *recorder) {
	t.Helper()
	rec := &recorder{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/service/rest/v1/components" {
			http.NotFound(w, r)
			return
		}
		user, pass, _ := r.BasicAuth()
		got := recorded{Query: r.URL.Query().Get("repository"), User: user, Pass: pass}

		mr, err := r.MultipartReader()
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		for {
			p, err := mr.NextPart()
			if err == io.EOF {
				break
			}
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			data, _ := io.ReadAll(p)
			got.Parts = append(got.Parts, part{
				Name:        p.FormName(),
				Filename:    p.FileName(),
				ContentType: p.Header.Get("Content-Type"),
				Body:        string(data),
			})
		}
		rec.add(got)
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newAdapter(t *testing.T, srvURL string) *Adapter {
	t.Helper()
	a, err := New(types.RegistryConfig{
		Endpoint:    srvURL + "/repository/",
		Repository:  "maven-releases",
		RestAPI:     srvURL + "/service/rest/v1/components",
		Credentials: types.CredentialsConfig{Username: "admin", Password: "admin123"},
	})
	require.NoError(t, err)
	return a
}

func writeTemp(t *testing.T, content []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "artifact")
	require.NoError(t, os.WriteFile(p, content, 0o600))
	return p
}

func mustFormat(t *testing.T, f types.RepositoryFormat) format.Format {
	t.Helper()
	fm, err := format.Get(f)
	require.NoError(t, err)
	return fm
}

func TestExists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if user, pass, ok := r.BasicAuth(); !ok || user != "admin" || pass != "admin123" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/repository/maven-releases/pkg/1.0/pkg-1.0.jar":
			w.WriteHeader(http.StatusOK)
		case "/repository/maven-releases/broken.jar":
			w.WriteHeader(http.StatusInternalServerError)
		case "/repository/maven-releases/created.jar":
			w.WriteHeader(http.StatusNoContent)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	a := newAdapter(t, srv.URL)

	tests := map[string]bool{
		"pkg/1.0/pkg-1.0.jar": true,
		"pkg/1.0/pkg-2.0.jar": false,
		"broken.jar":          false,
		"created.jar":         false,
	}
	for probe, want := range tests {
		got, err := a.Exists(context.Background(), probe)
		require.NoError(t, err, probe)
		assert.Equal(t, want, got, probe)
	}
}

func TestExistsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	a := newAdapter(t, url)
	_, err := a.Exists(context.Background(), "pkg/1.0/pkg-1.0.jar")

	var transportErr *errors.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, url+"/repository/maven-releases/pkg/1.0/pkg-1.0.jar", transportErr.URL)
}

func TestUploadMaven(t *testing.T) {
	srv, rec := uploadServer(t, http.StatusNoContent, "")
	a := newAdapter(t, srv.URL)

	local := writeTemp(t, []byte("sources-bytes"))
	err := a.UploadArtifact(context.Background(), mustFormat(t, types.MAVEN2), local,
		"a/b/c/ArtifactX/1.0/ArtifactX-1.0-sources.jar")
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, "maven-releases", reqs[0].Query)
	assert.Equal(t, "admin", reqs[0].User)
	assert.Equal(t, "admin123", reqs[0].Pass)
	assert.Equal(t, []part{
		{Name: "maven2.groupId", Body: "a.b.c"},
		{Name: "maven2.artifactId", Body: "ArtifactX"},
		{Name: "maven2.version", Body: "1.0"},
		{Name: "maven2.asset1", Filename: "ArtifactX-1.0-sources.jar", ContentType: "application/java-archive", Body: "sources-bytes"},
		{Name: "maven2.asset1.extension", Body: "jar"},
		{Name: "maven2.asset1.classifier", Body: "sources"},
	}, stripScalarContentType(reqs[0].Parts))
}

func TestUploadNuget(t *testing.T) {
	srv, rec := uploadServer(t, http.StatusCreated, "")
	a := newAdapter(t, srv.URL)

	local := writeTemp(t, []byte("nupkg-bytes"))
	err := a.UploadArtifact(context.Background(), mustFormat(t, types.NUGET), local,
		"Newtonsoft.Json/13.0.1/Newtonsoft.Json.13.0.1.nupkg")
	require.NoError(t, err)

	reqs := rec.all()
	require.Len(t, reqs, 1)
	assert.Equal(t, []part{
		{Name: "nuget.asset", Filename: "Newtonsoft.Json.13.0.1.nupkg", ContentType: "application/octet-stream", Body: "nupkg-bytes"},
	}, reqs[0].Parts)
}

func TestUploadStreamsLargeFile(t *testing.T) {
	srv, rec := uploadServer(t, http.StatusOK, "")
	a := newAdapter(t, srv.URL)

	content := bytes.Repeat([]byte("0123456789abcdef"), 256*1024)
	local := writeTemp(t, content)
	require.NoError(t, a.UploadArtifact(context.Background(), mustFormat(t, types.NUGET), local, "big/1.0/big.1.0.nupkg"))

	reqs := rec.all()
	require.Len(t, reqs, 1)
	require.Len(t, reqs[0].Parts, 1)
	assert.Equal(t, len(content), len(reqs[0].Parts[0].Body))
}

func TestUploadRejected(t *testing.T) {
	srv, _ := uploadServer(t, http.StatusInternalServerError, "  Repository does not allow updating assets  ")
	a := newAdapter(t, srv.URL)

	err := a.UploadArtifact(context.Background(), mustFormat(t, types.MAVEN2), writeTemp(t, []byte("x")),
		"com/acme/pkg/1.0/pkg-1.0.jar")

	var uploadErr *errors.UploadError
	require.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, http.StatusInternalServerError, uploadErr.Status)
	assert.Equal(t, "Repository does not allow updating assets", uploadErr.Body)
	assert.Equal(t, "com/acme/pkg/1.0/pkg-1.0.jar", uploadErr.Path)
}

func TestUploadEarlyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()
	a := newAdapter(t, srv.URL)

	content := bytes.Repeat([]byte("x"), 8<<20)
	err := a.UploadArtifact(context.Background(), mustFormat(t, types.NUGET), writeTemp(t, content), "big/1.0/big.nupkg")

	var uploadErr *errors.UploadError
	assert.True(t, errors.As(err, &uploadErr))
}

func TestUploadInvalidPath(t *testing.T) {
	srv, rec := uploadServer(t, http.StatusOK, "")
	a := newAdapter(t, srv.URL)

	err := a.UploadArtifact(context.Background(), mustFormat(t, types.MAVEN2), writeTemp(t, []byte("x")), "Artifact-2.1.jar")

	var invalid *errors.InvalidPathError
	require.True(t, errors.As(err, &invalid))
	assert.Empty(t, rec.all())
}

func TestUploadMissingFile(t *testing.T) {
	srv, rec := uploadServer(t, http.StatusOK, "")
	a := newAdapter(t, srv.URL)

	err := a.UploadArtifact(context.Background(), mustFormat(t, types.NUGET),
		filepath.Join(t.TempDir(), "gone"), "pkg/1.0/pkg.nupkg")

	var fileErr *errors.FileError
	require.True(t, errors.As(err, &fileErr))
	assert.Empty(t, rec.all())
}

// scalar parts written by WriteField carry no Content-Type; only the asset
// part is compared on it.
func stripScalarContentType(parts []part) []part {
	out := make([]part, len(parts))
	for i, p := range parts {
		if p.Filename == "" {
			p.ContentType = ""
		}
		out[i] = p
	}
	return out
}
