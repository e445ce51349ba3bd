package validate

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/codeowners_check/internal/execshell"
	"github.com/temirov/codeowners_check/internal/gitrepo"
	"github.com/temirov/codeowners_check/internal/patch"
	"github.com/temirov/codeowners_check/internal/ui"
)

const (
	commandUseConstant              = "check <codeowners-path>"
	commandShortDescriptionConstant = "Report CODEOWNERS entries whose paths no longer exist"
	commandLongDescriptionConstant  = "check validates every pattern in a CODEOWNERS-style manifest against the project root and reports entries that match nothing on disk. With --patch it writes a unified diff deleting the stale lines instead of printing a report."
	projectRootFlagNameConstant     = "project-root"
	projectRootFlagUsageConstant    = "Directory patterns are resolved against (default: current directory)."
	patchFlagNameConstant           = "patch"
	patchFlagUsageConstant          = "Write a unified diff removing stale entries instead of reporting them."
	patchFileFlagNameConstant       = "patch-file"
	patchFileFlagUsageConstant      = "Destination for the generated patch (default: <manifest>.stale.patch)."
	formatFlagNameConstant          = "format"
	formatFlagUsageConstant         = "Report format: table or csv."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// CommandBuilder assembles the check cobra command with configurable dependencies.
type CommandBuilder struct {
	LoggerProvider               LoggerProvider
	HumanReadableLoggingProvider func() bool
	ConfigurationProvider        func() CommandConfiguration
	Parser                       ManifestParser
	PatchGenerator               PatchGenerator
	FileSystem                   FileSystem
	GitExecutor                  gitrepo.GitExecutor
}

// Build constructs the cobra command for the validation workflow.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandUseConstant,
		Short: commandShortDescriptionConstant,
		Long:  commandLongDescriptionConstant,
		Args:  cobra.ExactArgs(1),
		RunE:  builder.run,
	}

	command.Flags().String(projectRootFlagNameConstant, "", projectRootFlagUsageConstant)
	command.Flags().Bool(patchFlagNameConstant, false, patchFlagUsageConstant)
	command.Flags().String(patchFileFlagNameConstant, "", patchFileFlagUsageConstant)
	command.Flags().String(formatFlagNameConstant, "", formatFlagUsageConstant)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options, optionsError := builder.parseOptions(command, arguments)
	if optionsError != nil {
		return optionsError
	}

	logger := builder.resolveLogger()

	patchGenerator, generatorError := builder.resolvePatchGenerator(logger)
	if generatorError != nil {
		return generatorError
	}

	service := NewService(builder.Parser, patchGenerator, builder.FileSystem, command.OutOrStdout(), logger)
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command, arguments []string) (CommandOptions, error) {
	configuration := builder.resolveConfiguration()

	projectRoot := configuration.ProjectRoot
	if command.Flags().Changed(projectRootFlagNameConstant) {
		projectRoot, _ = command.Flags().GetString(projectRootFlagNameConstant)
	}

	patchFilePath := configuration.PatchFile
	if command.Flags().Changed(patchFileFlagNameConstant) {
		patchFilePath, _ = command.Flags().GetString(patchFileFlagNameConstant)
	}

	rawFormat := configuration.Format
	if command.Flags().Changed(formatFlagNameConstant) {
		rawFormat, _ = command.Flags().GetString(formatFlagNameConstant)
	}
	reportFormat, formatError := parseReportFormat(rawFormat)
	if formatError != nil {
		return CommandOptions{}, formatError
	}

	patchMode, _ := command.Flags().GetBool(patchFlagNameConstant)

	options := CommandOptions{
		ManifestPath:  arguments[0],
		ProjectRoot:   projectRoot,
		PatchMode:     patchMode,
		PatchFilePath: patchFilePath,
		Format:        reportFormat,
	}

	return options, nil
}

func (builder *CommandBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

func (builder *CommandBuilder) resolvePatchGenerator(logger *zap.Logger) (PatchGenerator, error) {
	if builder.PatchGenerator != nil {
		return builder.PatchGenerator, nil
	}

	gitExecutor := builder.GitExecutor
	if gitExecutor == nil {
		var eventObservers []execshell.CommandEventObserver
		if builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider() {
			eventObservers = append(eventObservers, ui.NewConsoleCommandEventLogger(logger))
		}

		shellExecutor, executorError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), eventObservers...)
		if executorError != nil {
			return nil, executorError
		}
		gitExecutor = shellExecutor
	}

	rootResolver, resolverError := gitrepo.NewRepositoryRootResolver(gitExecutor)
	if resolverError != nil {
		return nil, resolverError
	}

	return patch.NewGenerator(rootResolver), nil
}
