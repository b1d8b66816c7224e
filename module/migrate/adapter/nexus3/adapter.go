package nexus3

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"strings"

	adp "github.com/harness/nexus-migrate/module/migrate/adapter"
	"github.com/harness/nexus-migrate/module/migrate/format"
	httputil "github.com/harness/nexus-migrate/module/migrate/http"
	"github.com/harness/nexus-migrate/module/migrate/http/auth/basic"
	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common"
	"github.com/harness/nexus-migrate/util/common/errors"

	"github.com/rs/zerolog/log"
)

// maxErrorBody bounds how much of a rejected upload's response is kept.
const maxErrorBody = 1024

var _ adp.Destination = (*Adapter)(nil)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// Adapter writes components to a hosted repository of a Nexus 3 server.
type Adapter struct {
	client    *httputil.Client
	reg       types.RegistryConfig
	root      string
	uploadURL string
}

func New(reg types.RegistryConfig) (*Adapter, error) {
	uploadURL, err := reg.UploadURL()
	if err != nil {
		return nil, err
	}
	return &Adapter{
		client: httputil.NewClient(
			&http.Client{
				Transport: httputil.GetHTTPTransport(httputil.WithInsecure(reg.Insecure)),
			},
			basic.NewAuthorizer(reg.Credentials.Username, reg.Credentials.Password),
		),
		reg:       reg,
		root:      reg.RepositoryURL(),
		uploadURL: uploadURL,
	}, nil
}

// Exists reports whether probePath answers 200 on the target repository. A GET
// is used because HEAD is unreliable behind some proxies. Every status other
// than 200 counts as absent.
func (a *Adapter) Exists(ctx context.Context, probePath string) (bool, error) {
	url := a.root + probePath
	resp, err := a.client.Get(ctx, url)
	if err != nil {
		return false, errors.NewTransportError(http.MethodGet, url, err)
	}
	defer resp.Body.Close()

	log.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Probed target")
	return resp.StatusCode == http.StatusOK, nil
}

// UploadArtifact posts the file at localPath as a component of the destination
// repository, laid out according to f. The body is streamed from disk.
func (a *Adapter) UploadArtifact(ctx context.Context, f format.Format, localPath, relativePath string) error {
	form, err := f.Form(relativePath, common.FileName(relativePath))
	if err != nil {
		return err
	}

	file, err := os.Open(localPath)
	if err != nil {
		return errors.NewFileError(localPath, "open", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	writer := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := writeForm(writer, form, file)
		if err == nil {
			err = writer.Close()
		}
		pw.CloseWithError(err)
	}()

	resp, err := a.client.Post(ctx, a.uploadURL, writer.FormDataContentType(), pr)
	// unblocks the writer if the server answered before consuming the body
	pr.Close()
	<-done
	if err != nil {
		return errors.NewUploadError(relativePath, 0, "", err)
	}
	defer resp.Body.Close()

	if !httputil.IsSuccess(resp.StatusCode) {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return errors.NewUploadError(relativePath, resp.StatusCode, strings.TrimSpace(string(body)), nil)
	}
	log.Debug().Str("path", relativePath).Int("status", resp.StatusCode).Msg("Uploaded component")
	return nil
}

func writeForm(w *multipart.Writer, form *format.Form, content io.Reader) error {
	for _, field := range form.Fields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return err
		}
	}

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(form.Asset.FieldName), quoteEscaper.Replace(form.Asset.Filename)))
	h.Set("Content-Type", form.Asset.ContentType)
	part, err := w.CreatePart(h)
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, content); err != nil {
		return err
	}

	for _, field := range form.AssetFields {
		if err := w.WriteField(field.Name, field.Value); err != nil {
			return err
		}
	}
	return nil
}
