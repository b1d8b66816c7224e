package format

import (
	"strings"

	"github.com/harness/nexus-migrate/module/migrate/types"
	"github.com/harness/nexus-migrate/util/common/errors"
)

const (
	mavenGroupID    = "maven2.groupId"
	mavenArtifactID = "maven2.artifactId"
	mavenVersion    = "maven2.version"
	mavenAsset      = "maven2.asset1"
	mavenExtension  = "maven2.asset1.extension"
	mavenClassifier = "maven2.asset1.classifier"
)

// checksum and metadata side files are regenerated by the target registry
var mavenSideFileSuffixes = []string{".sha1", ".md5", ".xml"}

func init() {
	if err := RegisterFactory(types.MAVEN2, new(mavenFactory)); err != nil {
		return
	}
}

type mavenFactory struct{}

func (mavenFactory) Create() Format { return maven{} }

// Coordinates identify a Maven artifact file.
type Coordinates struct {
	GroupID    string
	ArtifactID string
	Version    string
	Classifier string
	Extension  string
}

// ParseCoordinates derives coordinates from a repository relative path shaped
// like <group segments>/<artifactId>/<version>/<artifactId>-<version>[-<classifier>].<ext>.
// Segments are counted on the rooted path "/<relativePath>", which must have at
// least four, so a path directly below the root has an empty group.
func ParseCoordinates(relativePath string) (Coordinates, error) {
	parts := strings.Split(strings.TrimPrefix(relativePath, "/"), "/")
	if len(parts)+1 < 4 {
		return Coordinates{}, errors.NewInvalidPathError(relativePath,
			"maven path needs at least artifactId, version and file segments")
	}

	n := len(parts)
	c := Coordinates{
		GroupID:    strings.Join(parts[:n-3], "."),
		ArtifactID: parts[n-3],
		Version:    parts[n-2],
	}

	filename := parts[n-1]
	c.Extension = filename
	if dot := strings.LastIndex(filename, "."); dot >= 0 {
		c.Extension = filename[dot+1:]
	}

	prefix := c.ArtifactID + "-" + c.Version + "-"
	if strings.HasPrefix(filename, prefix) {
		rest := filename[len(prefix):]
		if dot := strings.LastIndex(rest, "."); dot > 0 {
			c.Classifier = rest[:dot]
		}
	}
	return c, nil
}

type maven struct{}

func (maven) Type() types.RepositoryFormat { return types.MAVEN2 }

func (maven) Accept(relativePath string) bool {
	for _, suffix := range mavenSideFileSuffixes {
		if strings.HasSuffix(relativePath, suffix) {
			return false
		}
	}
	return true
}

func (maven) ProbePath(relativePath string) string {
	return relativePath
}

func (maven) Form(relativePath, filename string) (*Form, error) {
	c, err := ParseCoordinates(relativePath)
	if err != nil {
		return nil, err
	}

	form := &Form{
		Fields: []Field{
			{Name: mavenGroupID, Value: c.GroupID},
			{Name: mavenArtifactID, Value: c.ArtifactID},
			{Name: mavenVersion, Value: c.Version},
		},
		Asset: Asset{
			FieldName:   mavenAsset,
			Filename:    filename,
			ContentType: contentType(filename),
		},
	}
	if c.Extension != "" {
		form.AssetFields = append(form.AssetFields, Field{Name: mavenExtension, Value: c.Extension})
	}
	if c.Classifier != "" {
		form.AssetFields = append(form.AssetFields, Field{Name: mavenClassifier, Value: c.Classifier})
	}
	return form, nil
}
