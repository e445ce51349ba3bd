package validate

import (
	"context"
	"io/fs"
	"os"

	"github.com/temirov/codeowners_check/internal/manifest"
)

// ManifestParser classifies manifest lines and reports the stale entries.
type ManifestParser interface {
	Parse(manifestPath string, resolutionRoot string) ([]manifest.StaleEntry, []string, error)
}

// ParserFunc adapts a parse function to the ManifestParser interface.
type ParserFunc func(manifestPath string, resolutionRoot string) ([]manifest.StaleEntry, []string, error)

// Parse implements ManifestParser by invoking the wrapped function.
func (parserFunc ParserFunc) Parse(manifestPath string, resolutionRoot string) ([]manifest.StaleEntry, []string, error) {
	return parserFunc(manifestPath, resolutionRoot)
}

// PatchGenerator renders a unified diff removing the stale manifest lines.
type PatchGenerator interface {
	Generate(executionContext context.Context, manifestPath string, staleEntries []manifest.StaleEntry, manifestLines []string) string
}

// FileSystem provides the filesystem operations required by the workflow.
type FileSystem interface {
	WriteFile(path string, data []byte, permissions fs.FileMode) error
}

// OSFileSystem implements FileSystem using the operating system primitives.
type OSFileSystem struct{}

// WriteFile writes data to a file with the supplied permissions.
func (OSFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	return os.WriteFile(path, data, permissions)
}
