package validate

// ReportFormat enumerates supported stale-entry report renderings.
type ReportFormat string

// Supported report formats.
const (
	ReportFormatTable ReportFormat = "table"
	ReportFormatCSV   ReportFormat = "csv"
)

// CommandOptions captures the configurable parameters for the check command.
type CommandOptions struct {
	ManifestPath  string
	ProjectRoot   string
	PatchMode     bool
	PatchFilePath string
	Format        ReportFormat
}
