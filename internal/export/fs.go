package export

import (
	"os"
)

// FileSystem is the write side the exporter needs.
type FileSystem interface {
	// MkdirAll creates path and any missing parents; an existing directory is not an error
	MkdirAll(path string) error
	// WriteFile creates or truncates path and writes data in full
	WriteFile(path string, data []byte) error
}

// OSFileSystem writes to the local disk.
type OSFileSystem struct{}

var _ FileSystem = OSFileSystem{}

func (OSFileSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (OSFileSystem) WriteFile(path string, data []byte) (err error) {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = f.Write(data)
	return err
}
