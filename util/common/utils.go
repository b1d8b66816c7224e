package common

import (
	"net/url"
	"path"

	"github.com/inhies/go-bytesize"
)

// GetSize renders a byte count as a human readable size, e.g. "1.50MB".
func GetSize(sizeVal int64) string {
	size := bytesize.New(float64(sizeVal))
	return size.String()
}

// FileName returns the last segment of a slash separated artifact path with any
// percent-encoding from the source listing removed.
func FileName(relativePath string) string {
	name := path.Base(relativePath)
	if unescaped, err := url.PathUnescape(name); err == nil {
		return unescaped
	}
	return name
}
