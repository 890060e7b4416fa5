package home

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	// DefaultDirName is the default name for the aithor home directory.
	DefaultDirName = ".aithor"

	// LibraryFileName is the local library database file.
	LibraryFileName = "library.db"

	// TokenFileName holds the persisted auth token.
	TokenFileName = "token.json"

	// ConfigFileName is the default config file name.
	ConfigFileName = "config.yaml"

	// UploadsDirName is the staging directory for files queued for upload.
	UploadsDirName = "uploads"
)

// Dir represents the aithor home directory structure.
type Dir struct {
	path string
}

// New creates a new Dir with the given path.
// If path is empty, uses the default (~/.aithor).
func New(path string) (*Dir, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		path = filepath.Join(home, DefaultDirName)
	}

	return &Dir{path: path}, nil
}

// Path returns the root path of the home directory.
func (d *Dir) Path() string {
	return d.path
}

// LibraryPath returns the path to the local library database.
func (d *Dir) LibraryPath() string {
	return filepath.Join(d.path, LibraryFileName)
}

// TokenPath returns the path to the persisted auth token.
func (d *Dir) TokenPath() string {
	return filepath.Join(d.path, TokenFileName)
}

// ConfigPath returns the path to the default config file.
func (d *Dir) ConfigPath() string {
	return filepath.Join(d.path, ConfigFileName)
}

// UploadsPath returns the path to the uploads staging directory.
func (d *Dir) UploadsPath() string {
	return filepath.Join(d.path, UploadsDirName)
}

// EnsureExists creates the home directory and subdirectories if they don't exist.
func (d *Dir) EnsureExists() error {
	// Create uploads directory (this also creates the parent)
	if err := os.MkdirAll(d.UploadsPath(), 0o755); err != nil {
		return fmt.Errorf("failed to create uploads directory: %w", err)
	}
	return nil
}

// Exists returns true if the home directory exists.
func (d *Dir) Exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}

// ConfigExists returns true if the config file exists in the home directory.
func (d *Dir) ConfigExists() bool {
	_, err := os.Stat(d.ConfigPath())
	return err == nil
}
