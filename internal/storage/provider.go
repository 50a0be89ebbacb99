// Package storage defines the notes-repository file-system abstraction.
package storage

// Provider is the interface for repository file operations. All paths are
// relative to the repository root.
type Provider interface {
	// Read returns the raw bytes of the file at path.
	Read(path string) ([]byte, error)
	// Write atomically writes content to path, creating parent directories.
	Write(path string, content []byte) error
	// Exists reports whether a regular file exists at path.
	Exists(path string) (bool, error)
	// List returns the relative paths of every .md file under dir.
	List(dir string) ([]string, error)
}
