package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/codeowners_check/internal/manifest"
)

const (
	testManifestFileNameConstant = "CODEOWNERS"
)

func writeManifest(testInstance *testing.T, directory string, content string) string {
	testInstance.Helper()
	manifestPath := filepath.Join(directory, testManifestFileNameConstant)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(content), 0o644))
	return manifestPath
}

func createFile(testInstance *testing.T, root string, relativePath string) {
	testInstance.Helper()
	fullPath := filepath.Join(root, filepath.FromSlash(relativePath))
	require.NoError(testInstance, os.MkdirAll(filepath.Dir(fullPath), 0o755))
	require.NoError(testInstance, os.WriteFile(fullPath, []byte("content"), 0o644))
}

func TestParseMissingManifest(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	missingPath := filepath.Join(resolutionRoot, testManifestFileNameConstant)

	staleEntries, manifestLines, parseError := manifest.Parse(missingPath, resolutionRoot)
	require.Nil(testInstance, staleEntries)
	require.Nil(testInstance, manifestLines)
	require.Error(testInstance, parseError)

	var notFoundError manifest.NotFoundError
	require.ErrorAs(testInstance, parseError, &notFoundError)
	require.Equal(testInstance, missingPath, notFoundError.Path)
}

func TestParseClassification(testInstance *testing.T) {
	testCases := []struct {
		name            string
		manifestContent string
		existingFiles   []string
		expectedEntries []manifest.StaleEntry
		expectedLines   []string
	}{
		{
			name:            "comments_and_blanks_yield_nothing",
			manifestContent: "# heading\n\n   \n# trailing comment\n",
			expectedLines:   []string{"# heading", "", "   ", "# trailing comment"},
		},
		{
			name:            "root_anchored_missing_path_is_stale",
			manifestContent: "/docs/missing.md @team/docs\n",
			expectedEntries: []manifest.StaleEntry{
				{LineNumber: 1, Pattern: "/docs/missing.md", Owner: "@team/docs", Text: "/docs/missing.md @team/docs"},
			},
			expectedLines: []string{"/docs/missing.md @team/docs"},
		},
		{
			name:            "root_anchored_existing_path_is_kept",
			manifestContent: "/docs/present.md @team/docs\n",
			existingFiles:   []string{"docs/present.md"},
			expectedLines:   []string{"/docs/present.md @team/docs"},
		},
		{
			name:            "relative_path_resolves_against_root",
			manifestContent: "tools/build.sh @team/infra\n",
			existingFiles:   []string{"tools/build.sh"},
			expectedLines:   []string{"tools/build.sh @team/infra"},
		},
		{
			name:            "glob_with_matches_is_kept",
			manifestContent: "src/*.go @team/backend\n",
			existingFiles:   []string{"src/service.go"},
			expectedLines:   []string{"src/*.go @team/backend"},
		},
		{
			name:            "glob_without_matches_is_stale",
			manifestContent: "src/*.go @team/backend\n",
			expectedEntries: []manifest.StaleEntry{
				{LineNumber: 1, Pattern: "src/*.go", Owner: "@team/backend", Text: "src/*.go @team/backend"},
			},
			expectedLines: []string{"src/*.go @team/backend"},
		},
		{
			name:            "missing_owner_stays_empty",
			manifestContent: "/missing.txt\n",
			expectedEntries: []manifest.StaleEntry{
				{LineNumber: 1, Pattern: "/missing.txt", Owner: "", Text: "/missing.txt"},
			},
			expectedLines: []string{"/missing.txt"},
		},
		{
			name:            "owner_keeps_internal_spacing",
			manifestContent: "/missing.txt @owner-one  @owner-two\n",
			expectedEntries: []manifest.StaleEntry{
				{LineNumber: 1, Pattern: "/missing.txt", Owner: "@owner-one  @owner-two", Text: "/missing.txt @owner-one  @owner-two"},
			},
			expectedLines: []string{"/missing.txt @owner-one  @owner-two"},
		},
		{
			name:            "end_to_end_scenario",
			manifestContent: "# comment\n\n/a.txt owner1\n/missing.txt owner2\n",
			existingFiles:   []string{"a.txt"},
			expectedEntries: []manifest.StaleEntry{
				{LineNumber: 4, Pattern: "/missing.txt", Owner: "owner2", Text: "/missing.txt owner2"},
			},
			expectedLines: []string{"# comment", "", "/a.txt owner1", "/missing.txt owner2"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			resolutionRoot := testInstance.TempDir()
			manifestDirectory := testInstance.TempDir()
			for _, existingFile := range testCase.existingFiles {
				createFile(testInstance, resolutionRoot, existingFile)
			}
			manifestPath := writeManifest(testInstance, manifestDirectory, testCase.manifestContent)

			staleEntries, manifestLines, parseError := manifest.Parse(manifestPath, resolutionRoot)
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expectedLines, manifestLines)

			if len(testCase.expectedEntries) == 0 {
				require.Empty(testInstance, staleEntries)
				return
			}
			require.Equal(testInstance, testCase.expectedEntries, staleEntries)
		})
	}
}

func TestParseIsIdempotent(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	createFile(testInstance, resolutionRoot, "kept.txt")
	manifestPath := writeManifest(testInstance, testInstance.TempDir(), "/kept.txt owner\n/gone-one.txt owner\n/gone-two.txt\n")

	firstEntries, firstLines, firstError := manifest.Parse(manifestPath, resolutionRoot)
	require.NoError(testInstance, firstError)

	secondEntries, secondLines, secondError := manifest.Parse(manifestPath, resolutionRoot)
	require.NoError(testInstance, secondError)

	require.Equal(testInstance, firstEntries, secondEntries)
	require.Equal(testInstance, firstLines, secondLines)
	require.Len(testInstance, firstEntries, 2)
	require.Equal(testInstance, 2, firstEntries[0].LineNumber)
	require.Equal(testInstance, 3, firstEntries[1].LineNumber)
}

func TestDisplayOwnerSentinel(testInstance *testing.T) {
	require.Equal(testInstance, manifest.NoOwnerSentinel, manifest.StaleEntry{}.DisplayOwner())
	require.Equal(testInstance, "@owner", manifest.StaleEntry{Owner: "@owner"}.DisplayOwner())
}

func TestParseDirectoryPatternsResolve(testInstance *testing.T) {
	resolutionRoot := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(resolutionRoot, "docs"), 0o755))
	manifestPath := writeManifest(testInstance, testInstance.TempDir(), "/docs @team/docs\n")

	staleEntries, _, parseError := manifest.Parse(manifestPath, resolutionRoot)
	require.NoError(testInstance, parseError)
	require.Empty(testInstance, staleEntries)
}
