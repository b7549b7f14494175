// Package fs is the filesystem seam used for workspace settings and log directories.
package fs

import (
	"errors"
	iofs "io/fs"
	"os"

	"go.uber.org/fx"
)

// Module is the Fx module for this package.
var Module = fx.Provide(New)

// ElspFS wraps the filesystem operations used by the language server.
type ElspFS interface {
	// DirExists reports whether path names a directory.
	DirExists(path string) (bool, error)
	// FileExists reports whether path names a regular file.
	FileExists(path string) (bool, error)
	ReadFile(name string) ([]byte, error)
	// MkdirAll creates path and any missing parents.
	MkdirAll(path string) error
}

type osFS struct{}

// New returns an ElspFS backed by the host filesystem.
func New() ElspFS {
	return osFS{}
}

func (osFS) DirExists(path string) (bool, error) {
	return statIs(path, iofs.FileInfo.IsDir)
}

func (osFS) FileExists(path string) (bool, error) {
	return statIs(path, func(info iofs.FileInfo) bool {
		return info.Mode().IsRegular()
	})
}

func (osFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (osFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

// statIs reports whether path exists and satisfies want. A missing path is not an error.
func statIs(path string, want func(iofs.FileInfo) bool) (bool, error) {
	info, err := os.Stat(path)
	switch {
	case errors.Is(err, iofs.ErrNotExist):
		return false, nil
	case err != nil:
		return false, err
	}
	return want(info), nil
}
