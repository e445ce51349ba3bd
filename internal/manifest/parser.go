package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

// Parse reads the manifest at manifestPath and checks every entry against
// resolutionRoot.
//
// It returns the stale entries in file order and every original line with its
// terminator stripped. Blank lines and lines beginning with # are skipped for
// classification but preserved in the returned line slice. A missing manifest
// yields NotFoundError.
//
// Filesystem errors during an existence check (including permission errors)
// are treated as "does not exist": the entry is reported stale.
func Parse(manifestPath string, resolutionRoot string) ([]StaleEntry, []string, error) {
	manifestContent, readError := os.ReadFile(manifestPath)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return nil, nil, NotFoundError{Path: manifestPath}
		}
		return nil, nil, fmt.Errorf(manifestReadErrorTemplateConstant, manifestPath, readError)
	}

	manifestLines := splitLines(string(manifestContent))

	var staleEntries []StaleEntry
	for lineIndex, rawLine := range manifestLines {
		trimmedLine := strings.TrimSpace(rawLine)
		if len(trimmedLine) == 0 || strings.HasPrefix(trimmedLine, commentPrefixConstant) {
			continue
		}

		pattern, owner := splitPatternAndOwner(trimmedLine)
		if patternResolves(pattern, resolutionRoot) {
			continue
		}

		staleEntries = append(staleEntries, StaleEntry{
			LineNumber: lineIndex + 1,
			Pattern:    pattern,
			Owner:      owner,
			Text:       rawLine,
		})
	}

	return staleEntries, manifestLines, nil
}

// splitLines breaks manifest content into lines without terminators. A final
// trailing newline does not produce a phantom empty line.
func splitLines(content string) []string {
	if len(content) == 0 {
		return nil
	}
	trimmedContent := strings.TrimSuffix(content, "\n")
	lines := strings.Split(trimmedContent, "\n")
	for lineIndex := range lines {
		lines[lineIndex] = strings.TrimSuffix(lines[lineIndex], "\r")
	}
	return lines
}

// splitPatternAndOwner divides an entry on the first run of whitespace. The
// owner keeps its internal spacing; it is empty when the line holds only a
// pattern.
func splitPatternAndOwner(entryText string) (string, string) {
	whitespaceIndex := strings.IndexFunc(entryText, unicode.IsSpace)
	if whitespaceIndex < 0 {
		return entryText, ""
	}

	pattern := entryText[:whitespaceIndex]
	owner := strings.TrimLeftFunc(entryText[whitespaceIndex:], unicode.IsSpace)
	return pattern, owner
}

// patternResolves reports whether the pattern matches at least one existing
// file or directory under the resolution root.
func patternResolves(pattern string, resolutionRoot string) bool {
	relativePattern := pattern
	if strings.HasPrefix(pattern, rootAnchorPrefixConstant) {
		relativePattern = strings.TrimPrefix(pattern, rootAnchorPrefixConstant)
	}

	// filepath.Join also normalizes "." and ".." segments.
	checkTarget := filepath.Join(resolutionRoot, filepath.FromSlash(relativePattern))

	if strings.ContainsAny(pattern, globMetacharactersConstant) {
		matches, globError := filepath.Glob(checkTarget)
		return globError == nil && len(matches) > 0
	}

	_, statError := os.Stat(checkTarget)
	return statError == nil
}
