package validate

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	successMessageTemplateConstant        = "All files/patterns listed in %s exist.\n"
	staleSummaryTemplateConstant          = "%d files/patterns in %s do not exist (anymore).\n"
	nothingToPatchMessageTemplateConstant = "No stale entries in %s; nothing to patch.\n"
	patchWrittenMessageTemplateConstant   = "Wrote %s removing %d stale entries.\n"
	patchFileSuffixConstant               = ".stale.patch"
	patchWriteErrorTemplateConstant       = "unable to write patch file %s: %w"
	unsupportedFormatTemplateConstant     = "unsupported report format: %s"
	tableHeaderConstant                   = "LINE\tPATTERN\tOWNER\tTEXT"
	tableRowTemplateConstant              = "%d\t%s\t%s\t%s\n"
	csvHeaderLineConstant                 = "line"
	csvHeaderPatternConstant              = "pattern"
	csvHeaderOwnerConstant                = "owner"
	csvHeaderTextConstant                 = "text"
)

// parseReportFormat validates a textual report format selection.
func parseReportFormat(rawFormat string) (ReportFormat, error) {
	normalizedFormat := strings.ToLower(strings.TrimSpace(rawFormat))
	switch ReportFormat(normalizedFormat) {
	case ReportFormatTable:
		return ReportFormatTable, nil
	case ReportFormatCSV:
		return ReportFormatCSV, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, rawFormat)
	}
}

// defaultPatchFilePath derives the patch file name from the manifest name.
func defaultPatchFilePath(manifestPath string) string {
	return filepath.Base(manifestPath) + patchFileSuffixConstant
}
