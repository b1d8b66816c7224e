package format

import (
	"errors"
	"fmt"
	"mime"
	"path"
	"strings"

	"github.com/harness/nexus-migrate/module/migrate/types"
)

const octetStream = "application/octet-stream"

// Format captures everything that differs between package ecosystems: which
// crawled paths are worth migrating, how existence is probed on the target and
// how the component upload form is laid out.
type Format interface {
	Type() types.RepositoryFormat
	// Accept reports whether relativePath is a migration candidate.
	Accept(relativePath string) bool
	// ProbePath returns the path checked on the target to decide whether
	// relativePath is already present.
	ProbePath(relativePath string) string
	// Form describes the multipart upload for relativePath. filename is the
	// name sent with the binary part.
	Form(relativePath, filename string) (*Form, error)
}

// Field is a scalar form-data part.
type Field struct {
	Name  string
	Value string
}

// Asset describes the binary part of an upload.
type Asset struct {
	FieldName   string
	Filename    string
	ContentType string
}

// Form is the ordered layout of a component upload: scalar fields, the binary
// asset, then scalar fields annotating the asset.
type Form struct {
	Fields      []Field
	Asset       Asset
	AssetFields []Field
}

var registry = map[types.RepositoryFormat]Factory{}

type Factory interface {
	Create() Format
}

// RegisterFactory registers one format factory to the registry.
func RegisterFactory(t types.RepositoryFormat, factory Factory) error {
	if len(t) == 0 {
		return errors.New("invalid type")
	}
	if factory == nil {
		return errors.New("empty format factory")
	}

	if _, exist := registry[t]; exist {
		return fmt.Errorf("format factory for %s already exists", t)
	}
	registry[t] = factory
	return nil
}

// GetFactory gets the format factory by the specified name.
func GetFactory(t types.RepositoryFormat) (Factory, error) {
	factory, exist := registry[t]
	if !exist {
		return nil, fmt.Errorf("format factory for %s not found", t)
	}
	return factory, nil
}

// Get returns the Format implementation for t.
func Get(t types.RepositoryFormat) (Format, error) {
	factory, err := GetFactory(t)
	if err != nil {
		return nil, err
	}
	return factory.Create(), nil
}

// contentType picks a media type for an asset from its extension.
func contentType(filename string) string {
	switch ext := strings.ToLower(path.Ext(filename)); ext {
	case ".jar", ".war", ".ear":
		return "application/java-archive"
	case ".pom":
		return "application/xml"
	case "":
		return octetStream
	default:
		if t := mime.TypeByExtension(ext); t != "" {
			return t
		}
		return octetStream
	}
}
