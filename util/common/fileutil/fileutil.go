package fileutil

import (
	"os"

	"github.com/harness/nexus-migrate/util/common/errors"
)

// validateWritePermissions checks if a directory is writable.
// Returns an error if the directory is not writable or if testing
// write permissions fails.
func validateWritePermissions(dir string) error {
	// Create a temporary file to test write permissions
	f, err := os.CreateTemp(dir, ".write_test-*")
	if err != nil {
		return errors.NewFileError(dir, "write_permission", err)
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return nil
}

// EnsureWritableDir creates path when it is missing and verifies that files
// can be created in it.
func EnsureWritableDir(path string) error {
	if path == "" {
		return errors.NewValidationError("path", "path cannot be empty")
	}

	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return errors.NewFileError(path, "create", err)
		}
	case err != nil:
		return errors.NewFileError(path, "stat", err)
	case !info.IsDir():
		return errors.NewValidationError("path", path+" is not a directory")
	}

	return validateWritePermissions(path)
}

// RemoveFile deletes path, treating a file that is already gone as success.
func RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.NewFileError(path, "remove", err)
	}
	return nil
}
