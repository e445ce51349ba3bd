package validate

import "strings"

const (
	projectRootConfigurationKeyConstant = "project_root"
	patchFileConfigurationKeyConstant   = "patch_file"
	formatConfigurationKeyConstant      = "format"
	configurationKeySeparatorConstant   = "."
	defaultProjectRootConstant          = "."
)

// CommandConfiguration captures persistent settings for the check command.
type CommandConfiguration struct {
	ProjectRoot string `mapstructure:"project_root"`
	PatchFile   string `mapstructure:"patch_file"`
	Format      string `mapstructure:"format"`
}

// DefaultCommandConfiguration returns baseline configuration values for the check command.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ProjectRoot: defaultProjectRootConstant,
		PatchFile:   "",
		Format:      string(ReportFormatTable),
	}
}

// DefaultConfigurationValues exposes viper defaults keyed beneath the provided prefix.
func DefaultConfigurationValues(configurationKeyPrefix string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		configurationKeyPrefix + configurationKeySeparatorConstant + projectRootConfigurationKeyConstant: defaults.ProjectRoot,
		configurationKeyPrefix + configurationKeySeparatorConstant + patchFileConfigurationKeyConstant:   defaults.PatchFile,
		configurationKeyPrefix + configurationKeySeparatorConstant + formatConfigurationKeyConstant:      defaults.Format,
	}
}

// sanitize trims whitespace and applies defaults to unset configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration

	sanitized.ProjectRoot = strings.TrimSpace(configuration.ProjectRoot)
	if len(sanitized.ProjectRoot) == 0 {
		sanitized.ProjectRoot = defaultProjectRootConstant
	}

	sanitized.PatchFile = strings.TrimSpace(configuration.PatchFile)

	sanitized.Format = strings.TrimSpace(configuration.Format)
	if len(sanitized.Format) == 0 {
		sanitized.Format = string(ReportFormatTable)
	}

	return sanitized
}
