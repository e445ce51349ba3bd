package gitrepo

import (
	"context"
	"errors"
	"strings"

	"github.com/temirov/codeowners_check/internal/execshell"
)

const (
	gitRevParseSubcommandConstant   = "rev-parse"
	gitShowTopLevelFlagConstant     = "--show-toplevel"
	emptyRepositoryRootMessage      = "git reported an empty repository root"
	executorNotConfiguredMessage    = "git executor not configured"
	repositoryRootNewlineCutSetting = "\r\n \t"
)

// ErrExecutorNotConfigured indicates the resolver was constructed without a git executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessage)

// GitExecutor exposes the subset of shell execution required to query git.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// RepositoryRootResolver locates the top level directory of the enclosing git repository.
type RepositoryRootResolver struct {
	gitExecutor GitExecutor
}

// NewRepositoryRootResolver validates the executor dependency and constructs a resolver.
func NewRepositoryRootResolver(gitExecutor GitExecutor) (*RepositoryRootResolver, error) {
	if gitExecutor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &RepositoryRootResolver{gitExecutor: gitExecutor}, nil
}

// ResolveRepositoryRoot runs `git rev-parse --show-toplevel` in the supplied directory.
//
// The query is one-shot: any failure is returned to the caller, which is
// expected to degrade to a path-based fallback rather than abort.
func (resolver *RepositoryRootResolver) ResolveRepositoryRoot(executionContext context.Context, workingDirectory string) (string, error) {
	commandDetails := execshell.CommandDetails{
		Arguments:        []string{gitRevParseSubcommandConstant, gitShowTopLevelFlagConstant},
		WorkingDirectory: workingDirectory,
	}

	executionResult, executionError := resolver.gitExecutor.ExecuteGit(executionContext, commandDetails)
	if executionError != nil {
		return "", executionError
	}

	repositoryRoot := strings.Trim(executionResult.StandardOutput, repositoryRootNewlineCutSetting)
	if len(repositoryRoot) == 0 {
		return "", errors.New(emptyRepositoryRootMessage)
	}

	return repositoryRoot, nil
}
