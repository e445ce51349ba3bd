package patch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/temirov/codeowners_check/internal/manifest"
)

const (
	originalFileHeaderTemplateConstant = "--- a/%s\n"
	modifiedFileHeaderTemplateConstant = "+++ b/%s\n"
	hunkHeaderTemplateConstant         = "@@ -1,%d +1,%d @@\n"
	deletionLinePrefixConstant         = "-"
	contextLinePrefixConstant          = " "
	lineTerminatorConstant             = "\n"
	parentDirectoryReferenceConstant   = ".."
	parentDirectoryPrefixConstant      = "../"
)

// RepositoryRootResolver locates the enclosing version-control root for a directory.
type RepositoryRootResolver interface {
	ResolveRepositoryRoot(executionContext context.Context, workingDirectory string) (string, error)
}

// WorkingDirectoryResolver supplies the current working directory.
type WorkingDirectoryResolver func() (string, error)

// Generator produces unified diffs deleting stale manifest entries.
//
// The generator never inserts or modifies lines: every stale line becomes a
// deletion and every other line is emitted as unchanged context.
type Generator struct {
	rootResolver             RepositoryRootResolver
	workingDirectoryResolver WorkingDirectoryResolver
}

// NewGenerator constructs a Generator. The root resolver may be nil, in which
// case the display path degrades to the path-based fallbacks immediately.
func NewGenerator(rootResolver RepositoryRootResolver) *Generator {
	return &Generator{
		rootResolver:             rootResolver,
		workingDirectoryResolver: os.Getwd,
	}
}

// NewGeneratorWithWorkingDirectoryResolver constructs a Generator with an explicit
// working directory lookup, used by tests to avoid ambient state.
func NewGeneratorWithWorkingDirectoryResolver(rootResolver RepositoryRootResolver, workingDirectoryResolver WorkingDirectoryResolver) *Generator {
	if workingDirectoryResolver == nil {
		workingDirectoryResolver = os.Getwd
	}
	return &Generator{
		rootResolver:             rootResolver,
		workingDirectoryResolver: workingDirectoryResolver,
	}
}

// Generate renders the unified diff removing the stale lines from the manifest.
// The output always ends with a trailing newline.
func (generator *Generator) Generate(executionContext context.Context, manifestPath string, staleEntries []manifest.StaleEntry, manifestLines []string) string {
	staleLineNumbers := make(map[int]struct{}, len(staleEntries))
	for _, staleEntry := range staleEntries {
		staleLineNumbers[staleEntry.LineNumber] = struct{}{}
	}

	displayPath := generator.displayPath(executionContext, manifestPath)

	var patchBuilder strings.Builder
	fmt.Fprintf(&patchBuilder, originalFileHeaderTemplateConstant, displayPath)
	fmt.Fprintf(&patchBuilder, modifiedFileHeaderTemplateConstant, displayPath)
	fmt.Fprintf(&patchBuilder, hunkHeaderTemplateConstant, len(manifestLines), len(manifestLines)-len(staleLineNumbers))

	for lineIndex, lineContent := range manifestLines {
		linePrefix := contextLinePrefixConstant
		if _, isStale := staleLineNumbers[lineIndex+1]; isStale {
			linePrefix = deletionLinePrefixConstant
		}
		patchBuilder.WriteString(linePrefix)
		patchBuilder.WriteString(lineContent)
		patchBuilder.WriteString(lineTerminatorConstant)
	}

	return patchBuilder.String()
}

// displayPath prefers the manifest path relative to the version-control root,
// then relative to the working directory, then the bare filename.
func (generator *Generator) displayPath(executionContext context.Context, manifestPath string) string {
	absolutePath, absError := filepath.Abs(manifestPath)
	if absError != nil {
		return filepath.Base(manifestPath)
	}

	if generator.rootResolver != nil {
		repositoryRoot, rootError := generator.rootResolver.ResolveRepositoryRoot(executionContext, filepath.Dir(absolutePath))
		if rootError == nil {
			if relativePath, usable := relativeWithin(repositoryRoot, absolutePath); usable {
				return relativePath
			}
		}
	}

	if workingDirectory, workingDirectoryError := generator.workingDirectoryResolver(); workingDirectoryError == nil {
		if relativePath, usable := relativeWithin(workingDirectory, absolutePath); usable {
			return relativePath
		}
	}

	return filepath.Base(absolutePath)
}

// relativeWithin computes targetPath relative to basePath, rejecting results
// that escape basePath or remain absolute.
func relativeWithin(basePath string, targetPath string) (string, bool) {
	relativePath, relativeError := filepath.Rel(basePath, targetPath)
	if relativeError != nil {
		return "", false
	}
	if filepath.IsAbs(relativePath) {
		return "", false
	}

	slashedPath := filepath.ToSlash(relativePath)
	if slashedPath == parentDirectoryReferenceConstant || strings.HasPrefix(slashedPath, parentDirectoryPrefixConstant) {
		return "", false
	}

	return slashedPath, true
}
