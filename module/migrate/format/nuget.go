package format

import (
	"strings"

	"github.com/harness/nexus-migrate/module/migrate/types"
)

const nugetAsset = "nuget.asset"

func init() {
	if err := RegisterFactory(types.NUGET, new(nugetFactory)); err != nil {
		return
	}
}

type nugetFactory struct{}

func (nugetFactory) Create() Format { return nuget{} }

// nuget uploads carry no coordinates, the registry reads identity from the
// package's embedded nuspec.
type nuget struct{}

func (nuget) Type() types.RepositoryFormat { return types.NUGET }

func (nuget) Accept(string) bool { return true }

// ProbePath drops the file name: NuGet existence is checked per package
// version, not per asset.
func (nuget) ProbePath(relativePath string) string {
	idx := strings.LastIndex(relativePath, "/")
	if idx < 0 {
		return relativePath
	}
	return relativePath[:idx]
}

func (nuget) Form(_, filename string) (*Form, error) {
	return &Form{
		Asset: Asset{
			FieldName:   nugetAsset,
			Filename:    filename,
			ContentType: octetStream,
		},
	}, nil
}
