package validate_test

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/codeowners_check/internal/manifest"
	"github.com/temirov/codeowners_check/internal/validate"
)

type memoryFileSystem struct {
	files map[string][]byte
}

func newMemoryFileSystem() *memoryFileSystem {
	return &memoryFileSystem{files: map[string][]byte{}}
}

func (fileSystem *memoryFileSystem) WriteFile(path string, data []byte, permissions fs.FileMode) error {
	fileSystem.files[path] = data
	return nil
}

func buildCheckCommand(testInstance *testing.T, builder validate.CommandBuilder) (*cobra.Command, *bytes.Buffer) {
	testInstance.Helper()
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(&outputBuffer)
	command.SetContext(context.Background())
	return command, &outputBuffer
}

func TestCheckCommandReportsStaleEntries(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	require.NoError(testInstance, os.WriteFile(filepath.Join(resolutionRoot, "kept.txt"), []byte("content"), 0o644))

	manifestPath := filepath.Join(testInstance.TempDir(), "CODEOWNERS")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("/kept.txt owner1\n/gone.txt owner2\n"), 0o644))

	command, outputBuffer := buildCheckCommand(testInstance, validate.CommandBuilder{})
	command.SetArgs([]string{manifestPath, "--project-root", resolutionRoot})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "1 files/patterns in "+manifestPath+" do not exist (anymore).")
	require.Contains(testInstance, outputBuffer.String(), "/gone.txt")
	require.Contains(testInstance, outputBuffer.String(), "owner2")
}

func TestCheckCommandMissingManifestFails(testInstance *testing.T) {
	missingPath := filepath.Join(testInstance.TempDir(), "CODEOWNERS")

	command, _ := buildCheckCommand(testInstance, validate.CommandBuilder{})
	command.SetArgs([]string{missingPath})

	executionError := command.Execute()
	require.Error(testInstance, executionError)

	var notFoundError manifest.NotFoundError
	require.ErrorAs(testInstance, executionError, &notFoundError)
}

func TestCheckCommandRejectsUnsupportedFormat(testInstance *testing.T) {
	command, _ := buildCheckCommand(testInstance, validate.CommandBuilder{})
	command.SetArgs([]string{"CODEOWNERS", "--format", "xml"})

	executionError := command.Execute()
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported report format")
}

func TestCheckCommandUsesConfigurationFormat(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	manifestPath := filepath.Join(testInstance.TempDir(), "CODEOWNERS")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("/gone.txt owner2\n"), 0o644))

	builder := validate.CommandBuilder{
		ConfigurationProvider: func() validate.CommandConfiguration {
			return validate.CommandConfiguration{ProjectRoot: resolutionRoot, Format: "csv"}
		},
	}
	command, outputBuffer := buildCheckCommand(testInstance, builder)
	command.SetArgs([]string{manifestPath})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "line,pattern,owner,text\n")
	require.Contains(testInstance, outputBuffer.String(), "1,/gone.txt,owner2,/gone.txt owner2\n")
}

func TestCheckCommandPatchMode(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	manifestDirectory := testInstance.TempDir()
	manifestPath := filepath.Join(manifestDirectory, "CODEOWNERS")
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte("/gone.txt owner2\n"), 0o644))

	fileSystem := newMemoryFileSystem()
	builder := validate.CommandBuilder{
		PatchGenerator: stubPatchGenerator{patchText: "--- a/CODEOWNERS\n+++ b/CODEOWNERS\n@@ -1,1 +1,0 @@\n-/gone.txt owner2\n"},
		FileSystem:     fileSystem,
	}
	command, outputBuffer := buildCheckCommand(testInstance, builder)
	command.SetArgs([]string{manifestPath, "--project-root", resolutionRoot, "--patch", "--patch-file", "stale.patch"})

	require.NoError(testInstance, command.Execute())
	require.Contains(testInstance, outputBuffer.String(), "Wrote stale.patch removing 1 stale entries.")
	require.Contains(testInstance, string(fileSystem.files["stale.patch"]), "-/gone.txt owner2\n")
}

func TestCheckCommandRequiresManifestArgument(testInstance *testing.T) {
	command, _ := buildCheckCommand(testInstance, validate.CommandBuilder{})
	command.SetArgs([]string{})

	require.Error(testInstance, command.Execute())
}
